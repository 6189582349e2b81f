// assets.go — сервис реестра ассетов.
// CRUD ассетов: регистрация, получение, обновление, soft delete.
// Любая мутация реестра инвалидирует кэш результатов экспорта.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
	"github.com/bigkaa/goassetstore/export-module/internal/repository"
)

// AssetService — сервис реестра ассетов.
type AssetService struct {
	assetRepo repository.AssetRepository
	cache     *CacheService
	logger    *slog.Logger
}

// NewAssetService создаёт сервис реестра ассетов.
// cache может быть nil — инвалидация при этом не выполняется.
func NewAssetService(
	assetRepo repository.AssetRepository,
	cache *CacheService,
	logger *slog.Logger,
) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		cache:     cache,
		logger:    logger.With(slog.String("component", "asset_service")),
	}
}

// Register регистрирует ассет в реестре.
func (s *AssetService) Register(ctx context.Context, a *model.AssetRecord) error {
	if a.AssetID == "" {
		return fmt.Errorf("%w: asset_id обязателен", ErrValidation)
	}

	// Устанавливаем значения по умолчанию
	if a.Status == "" {
		a.Status = model.StatusActive
	}
	if a.CreatedAt == nil {
		now := time.Now().UTC()
		a.CreatedAt = &now
	}

	if err := s.assetRepo.Register(ctx, a); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%w: ассет с ID '%s' уже зарегистрирован", ErrConflict, a.AssetID)
		}
		return fmt.Errorf("регистрация ассета: %w", err)
	}

	s.invalidateExports()

	s.logger.Info("Ассет зарегистрирован",
		slog.String("asset_id", a.AssetID),
		slog.String("title", a.Title),
		slog.Int("custom_properties", len(a.CustomMetadata)),
	)

	return nil
}

// List возвращает список ассетов с фильтрацией и пагинацией.
func (s *AssetService) List(ctx context.Context, filters repository.AssetListFilters, limit, offset int) ([]*model.AssetRecord, int, error) {
	assets, err := s.assetRepo.List(ctx, filters, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("получение списка ассетов: %w", err)
	}

	total, err := s.assetRepo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("подсчёт ассетов: %w", err)
	}

	return assets, total, nil
}

// Get возвращает ассет по ID.
func (s *AssetService) Get(ctx context.Context, assetID string) (*model.AssetRecord, error) {
	a, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение ассета: %w", err)
	}
	return a, nil
}

// AssetUpdate — частичное обновление ассета. nil-поля не изменяются.
type AssetUpdate struct {
	Title           *string
	Description     *string
	Status          *string
	Tags            *[]model.Tag
	Licenses        *[]model.License
	CustomMetadata  *[]model.CustomMetadataEntry
	AlternativeText *string
}

// Update обновляет метаданные ассета.
func (s *AssetService) Update(ctx context.Context, assetID string, upd AssetUpdate) (*model.AssetRecord, error) {
	// Получаем текущий ассет
	a, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение ассета для обновления: %w", err)
	}

	// Применяем обновления
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Status != nil {
		if !validStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: недопустимый статус %q", ErrValidation, *upd.Status)
		}
		a.Status = *upd.Status
	}
	if upd.Tags != nil {
		a.Tags = *upd.Tags
	}
	if upd.Licenses != nil {
		a.Licenses = *upd.Licenses
	}
	if upd.CustomMetadata != nil {
		a.CustomMetadata = *upd.CustomMetadata
	}
	if upd.AlternativeText != nil {
		a.AlternativeText = *upd.AlternativeText
	}

	now := time.Now().UTC()
	a.ModifiedAt = &now

	// Обновляем в БД
	if err := s.assetRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("обновление ассета: %w", err)
	}

	s.invalidateExports()

	s.logger.Info("Ассет обновлён",
		slog.String("asset_id", assetID),
	)

	return a, nil
}

// Delete выполняет soft delete ассета (status → deleted).
func (s *AssetService) Delete(ctx context.Context, assetID string) error {
	if err := s.assetRepo.Delete(ctx, assetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("soft delete ассета: %w", err)
	}

	s.invalidateExports()

	s.logger.Info("Ассет помечен как удалённый",
		slog.String("asset_id", assetID),
	)

	return nil
}

// invalidateExports сбрасывает кэш результатов экспорта.
func (s *AssetService) invalidateExports() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// validStatus проверяет допустимость статуса ассета.
func validStatus(status string) bool {
	switch status {
	case model.StatusActive, model.StatusDeleted, model.StatusExpired:
		return true
	}
	return false
}
