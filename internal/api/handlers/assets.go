// assets.go — обработчики реестра ассетов.
// POST   /api/v1/assets        — регистрация ассета
// GET    /api/v1/assets        — список с фильтрацией и пагинацией
// GET    /api/v1/assets/{id}   — ассет по ID
// PATCH  /api/v1/assets/{id}   — частичное обновление
// DELETE /api/v1/assets/{id}   — soft delete
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/goassetstore/export-module/internal/api/errors"
	"github.com/bigkaa/goassetstore/export-module/internal/api/middleware"
	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
	"github.com/bigkaa/goassetstore/export-module/internal/repository"
	"github.com/bigkaa/goassetstore/export-module/internal/service"
)

// registerAssetRequest — тело запроса регистрации ассета.
type registerAssetRequest struct {
	AssetID         string                       `json:"asset_id"`
	Title           string                       `json:"title"`
	Description     string                       `json:"description"`
	Status          string                       `json:"status,omitempty"`
	CreatedAt       *time.Time                   `json:"created_at,omitempty"`
	ModifiedAt      *time.Time                   `json:"modified_at,omitempty"`
	ExpiresAt       *time.Time                   `json:"expires_at,omitempty"`
	Copyright       *model.Copyright             `json:"copyright,omitempty"`
	Tags            []model.Tag                  `json:"tags,omitempty"`
	Licenses        []model.License              `json:"licenses,omitempty"`
	PreviewURL      string                       `json:"preview_url,omitempty"`
	DownloadURL     string                       `json:"download_url,omitempty"`
	AlternativeText string                       `json:"alternative_text,omitempty"`
	Duration        *float64                     `json:"duration,omitempty"`
	CustomMetadata  []model.CustomMetadataEntry  `json:"custom_metadata,omitempty"`
}

// updateAssetRequest — тело запроса частичного обновления.
// nil-поля не изменяются.
type updateAssetRequest struct {
	Title           *string                      `json:"title,omitempty"`
	Description     *string                      `json:"description,omitempty"`
	Status          *string                      `json:"status,omitempty"`
	Tags            *[]model.Tag                 `json:"tags,omitempty"`
	Licenses        *[]model.License             `json:"licenses,omitempty"`
	CustomMetadata  *[]model.CustomMetadataEntry `json:"custom_metadata,omitempty"`
	AlternativeText *string                      `json:"alternative_text,omitempty"`
}

// assetListResponse — ответ списка ассетов.
type assetListResponse struct {
	Items  []*model.AssetRecord `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// RegisterAsset — POST /api/v1/assets.
// Авторизация: admin / assets:write — на уровне middleware.
func (h *APIHandler) RegisterAsset(w http.ResponseWriter, r *http.Request) {
	var req registerAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.AssetID == "" {
		apierrors.ValidationError(w, "Поле asset_id обязательно")
		return
	}

	a := &model.AssetRecord{
		AssetID:         req.AssetID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		CreatedAt:       req.CreatedAt,
		ModifiedAt:      req.ModifiedAt,
		ExpiresAt:       req.ExpiresAt,
		Copyright:       req.Copyright,
		Tags:            req.Tags,
		Licenses:        req.Licenses,
		PreviewURL:      req.PreviewURL,
		DownloadURL:     req.DownloadURL,
		AlternativeText: req.AlternativeText,
		Duration:        req.Duration,
		CustomMetadata:  req.CustomMetadata,
		CreatedBy:       middleware.SubjectFromContext(r.Context()),
	}

	if err := h.assetService.Register(r.Context(), a); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrConflict):
			apierrors.Conflict(w, err.Error())
		default:
			h.logger.Error("Ошибка регистрации ассета",
				slog.String("asset_id", req.AssetID),
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w, "Внутренняя ошибка при регистрации ассета")
		}
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

// ListAssets — GET /api/v1/assets.
// Query-параметры: status, tag, created_by, limit, offset.
// Авторизация: admin, readonly / assets:read — на уровне middleware.
func (h *APIHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	filters := repository.AssetListFilters{
		Status:    optionalQuery(r, "status"),
		Tag:       optionalQuery(r, "tag"),
		CreatedBy: optionalQuery(r, "created_by"),
	}

	limit, offset := paginationDefaults(
		r.URL.Query().Get("limit"),
		r.URL.Query().Get("offset"),
	)

	assets, total, err := h.assetService.List(r.Context(), filters, limit, offset)
	if err != nil {
		h.logger.Error("Ошибка получения списка ассетов",
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка при получении списка ассетов")
		return
	}

	if assets == nil {
		assets = []*model.AssetRecord{}
	}

	writeJSON(w, http.StatusOK, assetListResponse{
		Items:  assets,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetAsset — GET /api/v1/assets/{asset_id}.
// Авторизация: admin, readonly / assets:read — на уровне middleware.
func (h *APIHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "asset_id")

	a, err := h.assetService.Get(r.Context(), assetID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Ассет не найден")
			return
		}
		h.logger.Error("Ошибка получения ассета",
			slog.String("asset_id", assetID),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка при получении ассета")
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// UpdateAsset — PATCH /api/v1/assets/{asset_id}.
// Авторизация: admin / assets:write — на уровне middleware.
func (h *APIHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "asset_id")

	var req updateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	a, err := h.assetService.Update(r.Context(), assetID, service.AssetUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Tags:            req.Tags,
		Licenses:        req.Licenses,
		CustomMetadata:  req.CustomMetadata,
		AlternativeText: req.AlternativeText,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Ассет не найден")
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		default:
			h.logger.Error("Ошибка обновления ассета",
				slog.String("asset_id", assetID),
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w, "Внутренняя ошибка при обновлении ассета")
		}
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// DeleteAsset — DELETE /api/v1/assets/{asset_id}.
// Soft delete: ассет помечается статусом deleted.
// Авторизация: admin / assets:write — на уровне middleware.
func (h *APIHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "asset_id")

	if err := h.assetService.Delete(r.Context(), assetID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Ассет не найден")
			return
		}
		h.logger.Error("Ошибка удаления ассета",
			slog.String("asset_id", assetID),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка при удалении ассета")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
