// Пакет config — загрузка и валидация конфигурации Export Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Export Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8040-8049)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 120s — экспорт больших выборок)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Пользователь БД
	DBUser string
	// Пароль пользователя БД
	DBPassword string
	// Режим SSL (disable, require, verify-ca, verify-full)
	DBSSLMode string

	// --- Экспорт ---

	// Максимальное количество ассетов в одном экспорте
	ExportMaxAssets int
	// Размер LRU-кэша результатов экспорта
	ExportCacheSize int
	// TTL записи кэша результатов экспорта
	ExportCacheTTL time.Duration

	// --- JWT / JWKS ---

	// URL JWKS endpoint (пусто — JWT middleware отключён)
	JWKSURL string
	// Путь к CA-сертификату для TLS к JWKS (опционально)
	JWKSCACertPath string
	// Ожидаемый issuer JWT (пусто — не проверяется)
	JWTIssuer string
	// Группы IdP, маппящиеся в роль admin
	RoleAdminGroups []string
	// Группы IdP, маппящиеся в роль readonly
	RoleReadonlyGroups []string
	// Таймаут HTTP-клиента JWKS
	JWKSClientTimeout time.Duration
	// Интервал обновления JWKS-ключей
	JWKSRefreshInterval time.Duration
	// Допустимое отклонение времени при проверке JWT
	JWTLeeway time.Duration

	// --- Topologymetrics ---

	// Имя группы в метриках dephealth
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration
	// Признак entry point в графе зависимостей
	DephealthIsEntry bool

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
//
//nolint:cyclop // линейная последовательность чтения переменных
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// EM_PORT — порт HTTP-сервера (по умолчанию 8040)
	cfg.Port, err = getEnvInt("EM_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("EM_PORT: %w", err)
	}

	// EM_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("EM_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("EM_LOG_LEVEL: %w", err)
	}

	// EM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("EM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("EM_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	// EM_HTTP_READ_TIMEOUT — таймаут чтения (по умолчанию 30s)
	cfg.HTTPReadTimeout, err = getEnvDuration("EM_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EM_HTTP_READ_TIMEOUT: %w", err)
	}

	// EM_HTTP_WRITE_TIMEOUT — таймаут записи (по умолчанию 120s)
	cfg.HTTPWriteTimeout, err = getEnvDuration("EM_HTTP_WRITE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EM_HTTP_WRITE_TIMEOUT: %w", err)
	}

	// EM_HTTP_IDLE_TIMEOUT — таймаут простоя (по умолчанию 120s)
	cfg.HTTPIdleTimeout, err = getEnvDuration("EM_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EM_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- PostgreSQL ---

	// EM_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("EM_DB_HOST")
	if err != nil {
		return nil, err
	}

	// EM_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("EM_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("EM_DB_PORT: %w", err)
	}

	// EM_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("EM_DB_NAME")
	if err != nil {
		return nil, err
	}

	// EM_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("EM_DB_USER")
	if err != nil {
		return nil, err
	}

	// EM_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("EM_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// EM_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("EM_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("EM_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Экспорт ---

	// EM_EXPORT_MAX_ASSETS — лимит выборки одного экспорта (по умолчанию 10000)
	cfg.ExportMaxAssets, err = getEnvInt("EM_EXPORT_MAX_ASSETS", 10000)
	if err != nil {
		return nil, fmt.Errorf("EM_EXPORT_MAX_ASSETS: %w", err)
	}
	if cfg.ExportMaxAssets < 1 {
		return nil, fmt.Errorf("EM_EXPORT_MAX_ASSETS: значение должно быть > 0")
	}

	// EM_EXPORT_CACHE_SIZE — размер LRU-кэша результатов (по умолчанию 32)
	cfg.ExportCacheSize, err = getEnvInt("EM_EXPORT_CACHE_SIZE", 32)
	if err != nil {
		return nil, fmt.Errorf("EM_EXPORT_CACHE_SIZE: %w", err)
	}

	// EM_EXPORT_CACHE_TTL — TTL записи кэша (по умолчанию 5m)
	cfg.ExportCacheTTL, err = getEnvDuration("EM_EXPORT_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("EM_EXPORT_CACHE_TTL: %w", err)
	}

	// --- JWT / JWKS ---

	// EM_JWKS_URL — URL JWKS endpoint (пусто — auth отключён)
	cfg.JWKSURL = getEnvDefault("EM_JWKS_URL", "")

	// EM_JWKS_CA_CERT — путь к CA-сертификату (опционально)
	cfg.JWKSCACertPath = getEnvDefault("EM_JWKS_CA_CERT", "")

	// EM_JWT_ISSUER — ожидаемый issuer (опционально)
	cfg.JWTIssuer = getEnvDefault("EM_JWT_ISSUER", "")

	// EM_ROLE_ADMIN_GROUPS — группы роли admin (через запятую)
	cfg.RoleAdminGroups = splitList(getEnvDefault("EM_ROLE_ADMIN_GROUPS", "assetstore-admins"))

	// EM_ROLE_READONLY_GROUPS — группы роли readonly (через запятую)
	cfg.RoleReadonlyGroups = splitList(getEnvDefault("EM_ROLE_READONLY_GROUPS", "assetstore-viewers"))

	// EM_JWKS_CLIENT_TIMEOUT — таймаут HTTP-клиента JWKS (по умолчанию 10s)
	cfg.JWKSClientTimeout, err = getEnvDuration("EM_JWKS_CLIENT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EM_JWKS_CLIENT_TIMEOUT: %w", err)
	}

	// EM_JWKS_REFRESH_INTERVAL — интервал обновления ключей (по умолчанию 1h)
	cfg.JWKSRefreshInterval, err = getEnvDuration("EM_JWKS_REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("EM_JWKS_REFRESH_INTERVAL: %w", err)
	}

	// EM_JWT_LEEWAY — допустимое отклонение времени (по умолчанию 30s)
	cfg.JWTLeeway, err = getEnvDuration("EM_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EM_JWT_LEEWAY: %w", err)
	}

	// --- Topologymetrics ---

	// EM_DEPHEALTH_GROUP — имя группы (по умолчанию assetstore)
	cfg.DephealthGroup = getEnvDefault("EM_DEPHEALTH_GROUP", "assetstore")

	// EM_DEPHEALTH_CHECK_INTERVAL — интервал проверок (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("EM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// DEPHEALTH_ISENTRY — признак entry point (по умолчанию false)
	cfg.DephealthIsEntry, err = getEnvBool("DEPHEALTH_ISENTRY", false)
	if err != nil {
		return nil, fmt.Errorf("DEPHEALTH_ISENTRY: %w", err)
	}

	// --- Graceful shutdown ---

	// EM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("EM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL (key=value формат).
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL.
// Используется для topologymetrics (лейблы зависимости).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// splitList разбирает список значений через запятую, отбрасывая пустые элементы.
func splitList(val string) []string {
	var result []string
	for _, item := range strings.Split(val, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
