// exports.go — обработчик GET /api/v1/exports/csv.
// Формирует CSV со сводом метаданных ассетов и отдаёт его как attachment.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apierrors "github.com/bigkaa/goassetstore/export-module/internal/api/errors"
	"github.com/bigkaa/goassetstore/export-module/internal/service"
)

// ExportCSV — GET /api/v1/exports/csv.
// Query-параметры:
//   - label      — метка источника для имени файла (по умолчанию "all")
//   - status     — фильтр по статусу ассета
//   - tag        — фильтр по значению тега
//   - created_by — фильтр по создателю
//
// Ответ: text/csv с Content-Disposition attachment.
// 422 NO_DATA, если под фильтры не попал ни один ассет.
// Авторизация: admin, readonly / exports:read — на уровне middleware.
func (h *APIHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	if label == "" {
		label = "all"
	}

	params := service.ExportParams{
		Label:     label,
		Status:    optionalQuery(r, "status"),
		Tag:       optionalQuery(r, "tag"),
		CreatedBy: optionalQuery(r, "created_by"),
	}

	result, err := h.exportService.Export(r.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			apierrors.NoData(w, "Под указанные фильтры не попал ни один ассет")
			return
		}
		h.logger.Error("Ошибка формирования CSV экспорта",
			slog.String("label", label),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка при формировании экспорта")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}
