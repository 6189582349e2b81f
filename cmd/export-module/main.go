// Точка входа Export Module — модуль экспорта метаданных системы Assetstore.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// создаёт сервисный слой и API handlers, запускает мониторинг зависимостей
// (topologymetrics), HTTP-сервер с JWT middleware и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/goassetstore/export-module/internal/api/handlers"
	"github.com/bigkaa/goassetstore/export-module/internal/api/middleware"
	"github.com/bigkaa/goassetstore/export-module/internal/api/openapi"
	"github.com/bigkaa/goassetstore/export-module/internal/config"
	"github.com/bigkaa/goassetstore/export-module/internal/database"
	"github.com/bigkaa/goassetstore/export-module/internal/repository"
	"github.com/bigkaa/goassetstore/export-module/internal/server"
	"github.com/bigkaa/goassetstore/export-module/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Export Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// Предупреждения о дефолтных значениях topologymetrics
	if os.Getenv("EM_DEPHEALTH_GROUP") == "" {
		logger.Warn("EM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья PostgreSQL будет идти через существующий пул соединений,
	// что позволяет обнаружить его исчерпание.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Repositories
	assetRepo := repository.NewAssetRepository(pool)

	// 6. Кэш результатов экспорта
	cache := service.NewCacheService(cfg.ExportCacheSize, cfg.ExportCacheTTL)

	// 7. Services
	assetSvc := service.NewAssetService(assetRepo, cache, logger)
	exportSvc := service.NewExportService(assetRepo, cache, cfg.ExportMaxAssets, logger)

	// 8. Readiness checker и health handler
	pgChecker := database.NewReadinessChecker(pool)
	healthHandler := handlers.NewHealthHandler(pgChecker)

	// 9. API handler
	apiHandler := handlers.NewAPIHandler(healthHandler, assetSvc, exportSvc, logger)

	// 10. Middleware: metrics, логирование, OpenAPI валидация, JWT
	middlewares := []func(http.Handler) http.Handler{
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	}

	// 10.1 OpenAPI валидация запросов (health и metrics — без валидации тел)
	doc, err := openapi.Load(ctx)
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI контракта", slog.String("error", err.Error()))
		os.Exit(1)
	}
	validationMw, err := openapi.ValidationMiddleware(doc)
	if err != nil {
		logger.Error("Ошибка создания OpenAPI middleware", slog.String("error", err.Error()))
		os.Exit(1)
	}
	middlewares = append(middlewares,
		server.JWTAuthWithExclusions(validationMw, "/health/", "/metrics"))

	// 10.2 JWT middleware (пустой EM_JWKS_URL — auth отключён, dev-режим)
	if cfg.JWKSURL != "" {
		jwtAuth, jwtErr := middleware.NewJWTAuth(
			cfg.JWKSURL,
			cfg.JWKSCACertPath,
			cfg.JWTIssuer,
			cfg.RoleAdminGroups,
			cfg.RoleReadonlyGroups,
			cfg.JWKSClientTimeout,
			cfg.JWKSRefreshInterval,
			cfg.JWTLeeway,
			logger,
		)
		if jwtErr != nil {
			logger.Error("Ошибка создания JWT middleware", slog.String("error", jwtErr.Error()))
			os.Exit(1)
		}
		defer jwtAuth.Close()
		logger.Info("JWT middleware инициализирован",
			slog.String("jwks_url", cfg.JWKSURL),
			slog.String("issuer", cfg.JWTIssuer),
		)

		middlewares = append(middlewares,
			server.JWTAuthWithExclusions(jwtAuth.Middleware(), "/health/", "/metrics"))
	} else {
		logger.Warn("EM_JWKS_URL не задан, JWT-аутентификация отключена")
	}

	// 11. topologymetrics — мониторинг зависимостей (PostgreSQL)
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"export-module",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.DephealthCheckInterval,
		cfg.DephealthIsEntry,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
			defer dephealthSvc.Stop()
		}
	}

	// 12. HTTP-сервер (блокирующий вызов с graceful shutdown)
	srv := server.New(cfg, logger, apiHandler, middlewares...)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Export Module остановлен")
}
