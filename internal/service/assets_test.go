package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
	"github.com/bigkaa/goassetstore/export-module/internal/repository"
)

// --- Тесты AssetService ---

// TestAssetService_Register проверяет регистрацию ассета со значениями по умолчанию.
func TestAssetService_Register(t *testing.T) {
	var registered *model.AssetRecord
	repo := &mockAssetRepo{
		registerFn: func(_ context.Context, a *model.AssetRecord) error {
			registered = a
			return nil
		},
	}

	svc := NewAssetService(repo, nil, slog.Default())

	a := &model.AssetRecord{AssetID: "a1", Title: "Logo"}
	if err := svc.Register(context.Background(), a); err != nil {
		t.Fatalf("Register ошибка: %v", err)
	}

	if registered == nil {
		t.Fatal("репозиторий не был вызван")
	}
	if registered.Status != model.StatusActive {
		t.Errorf("Status = %q, ожидался active", registered.Status)
	}
	if registered.CreatedAt == nil {
		t.Error("CreatedAt должен быть установлен по умолчанию")
	}
}

// TestAssetService_RegisterValidation проверяет обязательность asset_id.
func TestAssetService_RegisterValidation(t *testing.T) {
	svc := NewAssetService(&mockAssetRepo{}, nil, slog.Default())

	err := svc.Register(context.Background(), &model.AssetRecord{Title: "No ID"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, ожидался ErrValidation", err)
	}
}

// TestAssetService_RegisterConflict проверяет маппинг конфликта репозитория.
func TestAssetService_RegisterConflict(t *testing.T) {
	repo := &mockAssetRepo{
		registerFn: func(_ context.Context, _ *model.AssetRecord) error {
			return repository.ErrConflict
		},
	}

	svc := NewAssetService(repo, nil, slog.Default())

	err := svc.Register(context.Background(), &model.AssetRecord{AssetID: "dup"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, ожидался ErrConflict", err)
	}
}

// TestAssetService_RegisterInvalidatesCache проверяет сброс кэша
// экспортов при регистрации ассета.
func TestAssetService_RegisterInvalidatesCache(t *testing.T) {
	cache := NewCacheService(10, 5*time.Minute)
	cache.Set("key", &ExportResult{Filename: "x_assets.csv"})

	svc := NewAssetService(&mockAssetRepo{}, cache, slog.Default())

	if err := svc.Register(context.Background(), &model.AssetRecord{AssetID: "a1"}); err != nil {
		t.Fatalf("Register ошибка: %v", err)
	}

	if _, ok := cache.Get("key"); ok {
		t.Error("кэш должен быть сброшен после регистрации ассета")
	}
}

// TestAssetService_Get проверяет получение ассета и маппинг NotFound.
func TestAssetService_Get(t *testing.T) {
	repo := &mockAssetRepo{
		getByIDFn: func(_ context.Context, assetID string) (*model.AssetRecord, error) {
			if assetID == "exists" {
				return &model.AssetRecord{AssetID: "exists", Title: "Found"}, nil
			}
			return nil, repository.ErrNotFound
		},
	}

	svc := NewAssetService(repo, nil, slog.Default())

	a, err := svc.Get(context.Background(), "exists")
	if err != nil {
		t.Fatalf("Get ошибка: %v", err)
	}
	if a.Title != "Found" {
		t.Errorf("Title = %q, ожидался Found", a.Title)
	}

	_, err = svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, ожидался ErrNotFound", err)
	}
}

// TestAssetService_Update проверяет частичное обновление полей.
func TestAssetService_Update(t *testing.T) {
	var updated *model.AssetRecord
	repo := &mockAssetRepo{
		getByIDFn: func(_ context.Context, _ string) (*model.AssetRecord, error) {
			return &model.AssetRecord{
				AssetID:     "a1",
				Title:       "Old Title",
				Description: "Keep me",
				Status:      model.StatusActive,
			}, nil
		},
		updateFn: func(_ context.Context, a *model.AssetRecord) error {
			updated = a
			return nil
		},
	}

	svc := NewAssetService(repo, nil, slog.Default())

	newTitle := "New Title"
	a, err := svc.Update(context.Background(), "a1", AssetUpdate{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update ошибка: %v", err)
	}

	if a.Title != "New Title" {
		t.Errorf("Title = %q, ожидался New Title", a.Title)
	}
	if a.Description != "Keep me" {
		t.Errorf("Description = %q, не должен меняться", a.Description)
	}
	if a.ModifiedAt == nil {
		t.Error("ModifiedAt должен быть установлен")
	}
	if updated == nil {
		t.Fatal("репозиторий Update не был вызван")
	}
}

// TestAssetService_UpdateInvalidStatus проверяет валидацию статуса.
func TestAssetService_UpdateInvalidStatus(t *testing.T) {
	repo := &mockAssetRepo{
		getByIDFn: func(_ context.Context, _ string) (*model.AssetRecord, error) {
			return &model.AssetRecord{AssetID: "a1", Status: model.StatusActive}, nil
		},
	}

	svc := NewAssetService(repo, nil, slog.Default())

	bad := "archived"
	_, err := svc.Update(context.Background(), "a1", AssetUpdate{Status: &bad})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, ожидался ErrValidation", err)
	}
}

// TestAssetService_Delete проверяет soft delete и сброс кэша.
func TestAssetService_Delete(t *testing.T) {
	deleted := ""
	repo := &mockAssetRepo{
		deleteFn: func(_ context.Context, assetID string) error {
			deleted = assetID
			return nil
		},
	}

	cache := NewCacheService(10, 5*time.Minute)
	cache.Set("key", &ExportResult{})

	svc := NewAssetService(repo, cache, slog.Default())

	if err := svc.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("Delete ошибка: %v", err)
	}
	if deleted != "a1" {
		t.Errorf("удалён %q, ожидался a1", deleted)
	}
	if _, ok := cache.Get("key"); ok {
		t.Error("кэш должен быть сброшен после удаления ассета")
	}
}

// TestAssetService_DeleteNotFound проверяет маппинг NotFound при удалении.
func TestAssetService_DeleteNotFound(t *testing.T) {
	repo := &mockAssetRepo{
		deleteFn: func(_ context.Context, _ string) error {
			return repository.ErrNotFound
		},
	}

	svc := NewAssetService(repo, nil, slog.Default())

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, ожидался ErrNotFound", err)
	}
}
