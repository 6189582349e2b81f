// asset.go — CRUD реестра ассетов (таблица asset_registry).
// Структурированные поля (теги, лицензии, пользовательские метаданные,
// copyright) хранятся как JSONB и декодируются напрямую в доменные модели.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
)

// assetColumns — список колонок asset_registry для SELECT-запросов.
const assetColumns = `asset_id, title, description, status,
	created_at, modified_at, expires_at, copyright, tags, licenses,
	preview_url, download_url, alternative_text, duration,
	custom_metadata, created_by, registered_at, updated_at`

// AssetRepository — интерфейс CRUD для таблицы asset_registry.
type AssetRepository interface {
	// Register создаёт новую запись ассета в реестре.
	Register(ctx context.Context, a *model.AssetRecord) error
	// GetByID возвращает ассет по UUID.
	GetByID(ctx context.Context, assetID string) (*model.AssetRecord, error)
	// List возвращает список ассетов с фильтрацией и пагинацией.
	List(ctx context.Context, filters AssetListFilters, limit, offset int) ([]*model.AssetRecord, error)
	// ListForExport возвращает выборку для экспорта в детерминированном порядке.
	ListForExport(ctx context.Context, filters AssetListFilters, max int) ([]*model.AssetRecord, error)
	// Count возвращает количество ассетов с фильтрацией.
	Count(ctx context.Context, filters AssetListFilters) (int, error)
	// Update обновляет метаданные ассета.
	Update(ctx context.Context, a *model.AssetRecord) error
	// Delete выполняет soft delete (status → deleted).
	Delete(ctx context.Context, assetID string) error
}

// AssetListFilters — фильтры для выборки ассетов.
type AssetListFilters struct {
	Status    *string
	Tag       *string
	CreatedBy *string
}

// assetRepo — реализация AssetRepository.
type assetRepo struct {
	db DBTX
}

// NewAssetRepository создаёт репозиторий реестра ассетов.
func NewAssetRepository(db DBTX) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) Register(ctx context.Context, a *model.AssetRecord) error {
	query := `
		INSERT INTO asset_registry (asset_id, title, description, status,
			created_at, modified_at, expires_at, copyright, tags, licenses,
			preview_url, download_url, alternative_text, duration,
			custom_metadata, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING registered_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		a.AssetID, a.Title, a.Description, a.Status,
		a.CreatedAt, a.ModifiedAt, a.ExpiresAt, a.Copyright, a.Tags, a.Licenses,
		a.PreviewURL, a.DownloadURL, a.AlternativeText, a.Duration,
		a.CustomMetadata, a.CreatedBy,
	).Scan(&a.RegisteredAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ассет с таким ID уже зарегистрирован", ErrConflict)
		}
		return fmt.Errorf("ошибка регистрации ассета: %w", err)
	}
	return nil
}

func (r *assetRepo) GetByID(ctx context.Context, assetID string) (*model.AssetRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM asset_registry
		WHERE asset_id = $1`, assetColumns)

	a, err := scanAsset(r.db.QueryRow(ctx, query, assetID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения ассета: %w", err)
	}
	return a, nil
}

// buildAssetWhere строит WHERE-условие и аргументы для фильтрации ассетов.
func buildAssetWhere(filters AssetListFilters, startArg int) (string, []any) {
	var conditions []string
	var args []any
	argNum := startArg

	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *filters.Status)
		argNum++
	}
	if filters.Tag != nil {
		// Containment по значению тега — запрос обслуживается GIN-индексом
		// jsonb_path_ops по колонке tags
		conditions = append(conditions, fmt.Sprintf(
			"tags @> jsonb_build_array(jsonb_build_object('value', $%d::text))", argNum))
		args = append(args, *filters.Tag)
		argNum++
	}
	if filters.CreatedBy != nil {
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", argNum))
		args = append(args, *filters.CreatedBy)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (r *assetRepo) List(ctx context.Context, filters AssetListFilters, limit, offset int) ([]*model.AssetRecord, error) {
	where, args := buildAssetWhere(filters, 1)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s
		FROM asset_registry
		%s
		ORDER BY registered_at DESC
		LIMIT $%d OFFSET $%d`, assetColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)
	return r.queryAssets(ctx, query, args...)
}

// ListForExport возвращает выборку для экспорта.
// Порядок фиксирован (registered_at, asset_id): схема колонок CSV зависит
// от порядка строк, поэтому одинаковая выборка обязана давать одинаковый
// порядок при повторных вызовах.
func (r *assetRepo) ListForExport(ctx context.Context, filters AssetListFilters, max int) ([]*model.AssetRecord, error) {
	where, args := buildAssetWhere(filters, 1)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s
		FROM asset_registry
		%s
		ORDER BY registered_at, asset_id
		LIMIT $%d`, assetColumns, where, argNum)

	args = append(args, max)
	return r.queryAssets(ctx, query, args...)
}

func (r *assetRepo) Count(ctx context.Context, filters AssetListFilters) (int, error) {
	where, args := buildAssetWhere(filters, 1)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM asset_registry %s`, where)

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта ассетов: %w", err)
	}
	return count, nil
}

func (r *assetRepo) Update(ctx context.Context, a *model.AssetRecord) error {
	query := `
		UPDATE asset_registry
		SET title = $2, description = $3, status = $4,
			created_at = $5, modified_at = $6, expires_at = $7,
			copyright = $8, tags = $9, licenses = $10,
			preview_url = $11, download_url = $12, alternative_text = $13,
			duration = $14, custom_metadata = $15, updated_at = now()
		WHERE asset_id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		a.AssetID, a.Title, a.Description, a.Status,
		a.CreatedAt, a.ModifiedAt, a.ExpiresAt,
		a.Copyright, a.Tags, a.Licenses,
		a.PreviewURL, a.DownloadURL, a.AlternativeText,
		a.Duration, a.CustomMetadata,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления ассета: %w", err)
	}
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, assetID string) error {
	query := `
		UPDATE asset_registry
		SET status = 'deleted', updated_at = now()
		WHERE asset_id = $1 AND status != 'deleted'`

	tag, err := r.db.Exec(ctx, query, assetID)
	if err != nil {
		return fmt.Errorf("ошибка удаления ассета: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// queryAssets выполняет SELECT и сканирует результат в доменные модели.
func (r *assetRepo) queryAssets(ctx context.Context, query string, args ...any) ([]*model.AssetRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка ассетов: %w", err)
	}
	defer rows.Close()

	var result []*model.AssetRecord
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования ассета: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// scanAsset сканирует одну строку asset_registry в доменную модель.
func scanAsset(row pgx.Row) (*model.AssetRecord, error) {
	a := &model.AssetRecord{}
	err := row.Scan(
		&a.AssetID, &a.Title, &a.Description, &a.Status,
		&a.CreatedAt, &a.ModifiedAt, &a.ExpiresAt, &a.Copyright, &a.Tags, &a.Licenses,
		&a.PreviewURL, &a.DownloadURL, &a.AlternativeText, &a.Duration,
		&a.CustomMetadata, &a.CreatedBy, &a.RegisteredAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
