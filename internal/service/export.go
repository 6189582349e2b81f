// export.go — сервис экспорта метаданных ассетов в CSV.
// Оркестрация: выборка ассетов из реестра -> построение строк ->
// вывод схемы колонок -> сериализация CSV -> имя файла.
// Результаты кэшируются по параметрам запроса.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goassetstore/export-module/internal/export"
	"github.com/bigkaa/goassetstore/export-module/internal/repository"
)

// --- Метрики экспорта ---

var (
	exportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "em_export_total",
			Help: "Общее количество запросов экспорта CSV",
		},
		[]string{"status"},
	)

	exportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "em_export_duration_seconds",
			Help:    "Длительность формирования CSV экспорта",
			Buckets: prometheus.DefBuckets,
		},
	)

	exportRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "em_export_rows",
			Help:    "Количество строк в сформированном экспорте",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)
)

// ExportParams — параметры запроса экспорта.
type ExportParams struct {
	// Label — метка источника, из которой выводится имя файла.
	Label string
	// Фильтры выборки ассетов. nil — без фильтра.
	Status    *string
	Tag       *string
	CreatedBy *string
}

// ExportResult — сформированный CSV экспорт.
type ExportResult struct {
	Filename string
	Data     []byte
	Rows     int
	Columns  int
}

// ExportService — сервис экспорта метаданных в CSV.
type ExportService struct {
	assetRepo repository.AssetRepository
	cache     *CacheService
	maxAssets int
	logger    *slog.Logger
}

// NewExportService создаёт сервис экспорта.
// cache может быть nil — кэширование при этом отключено.
func NewExportService(
	assetRepo repository.AssetRepository,
	cache *CacheService,
	maxAssets int,
	logger *slog.Logger,
) *ExportService {
	return &ExportService{
		assetRepo: assetRepo,
		cache:     cache,
		maxAssets: maxAssets,
		logger:    logger.With(slog.String("component", "export_service")),
	}
}

// Export формирует CSV экспорт метаданных ассетов.
// Возвращает ErrNoData, если под фильтры не попал ни один ассет.
func (s *ExportService) Export(ctx context.Context, params ExportParams) (*ExportResult, error) {
	start := time.Now()

	key := cacheKey(params)
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			exportTotal.WithLabelValues("cached").Inc()
			return res, nil
		}
	}

	filters := repository.AssetListFilters{
		Status:    params.Status,
		Tag:       params.Tag,
		CreatedBy: params.CreatedBy,
	}

	assets, err := s.assetRepo.ListForExport(ctx, filters, s.maxAssets)
	if err != nil {
		exportTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("выборка ассетов для экспорта: %w", err)
	}

	rows := make([]*export.Row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, export.BuildRow(a))
	}

	columns := export.BuildColumnSchema(rows)

	data, err := export.Serialize(rows, columns)
	if err != nil {
		if errors.Is(err, export.ErrNoData) {
			exportTotal.WithLabelValues("no_data").Inc()
			return nil, ErrNoData
		}
		exportTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("сериализация CSV: %w", err)
	}

	filename := export.DeriveFilename(params.Label)
	if !containsAlphanumeric(params.Label) {
		s.logger.Warn("Метка источника не содержит букв и цифр",
			slog.String("label", params.Label),
			slog.String("filename", filename),
		)
	}

	result := &ExportResult{
		Filename: filename,
		Data:     data,
		Rows:     len(rows),
		Columns:  len(columns),
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}

	exportTotal.WithLabelValues("success").Inc()
	exportDuration.Observe(time.Since(start).Seconds())
	exportRows.Observe(float64(len(rows)))

	s.logger.Info("Экспорт CSV сформирован",
		slog.String("filename", filename),
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(columns)),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// cacheKey строит ключ кэша из параметров запроса.
func cacheKey(params ExportParams) string {
	var b strings.Builder
	b.WriteString("label=")
	b.WriteString(params.Label)
	b.WriteString(";status=")
	b.WriteString(deref(params.Status))
	b.WriteString(";tag=")
	b.WriteString(deref(params.Tag))
	b.WriteString(";created_by=")
	b.WriteString(deref(params.CreatedBy))
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// containsAlphanumeric сообщает, есть ли в строке буквы или цифры ASCII.
func containsAlphanumeric(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}
