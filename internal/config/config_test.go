package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"EM_DB_HOST":     "localhost",
		"EM_DB_NAME":     "assetstore",
		"EM_DB_USER":     "assetstore",
		"EM_DB_PASSWORD": "secret",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	// Проверяем значения по умолчанию
	if cfg.Port != 8040 {
		t.Errorf("Port = %d, ожидается 8040", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, ожидается localhost", cfg.DBHost)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, ожидается disable", cfg.DBSSLMode)
	}
	if cfg.ExportMaxAssets != 10000 {
		t.Errorf("ExportMaxAssets = %d, ожидается 10000", cfg.ExportMaxAssets)
	}
	if cfg.ExportCacheSize != 32 {
		t.Errorf("ExportCacheSize = %d, ожидается 32", cfg.ExportCacheSize)
	}
	if cfg.ExportCacheTTL != 5*time.Minute {
		t.Errorf("ExportCacheTTL = %v, ожидается 5m", cfg.ExportCacheTTL)
	}
	if cfg.JWKSURL != "" {
		t.Errorf("JWKSURL = %q, ожидается пустая строка", cfg.JWKSURL)
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 15s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	envs := minimalEnvs()
	delete(envs, "EM_DB_HOST")
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() без EM_DB_HOST должен вернуть ошибку")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	envs := minimalEnvs()
	envs["EM_LOG_LEVEL"] = "verbose"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() с некорректным EM_LOG_LEVEL должен вернуть ошибку")
	}
}

func TestLoad_InvalidSSLMode(t *testing.T) {
	envs := minimalEnvs()
	envs["EM_DB_SSL_MODE"] = "sometimes"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() с некорректным EM_DB_SSL_MODE должен вернуть ошибку")
	}
}

func TestLoad_InvalidExportMaxAssets(t *testing.T) {
	envs := minimalEnvs()
	envs["EM_EXPORT_MAX_ASSETS"] = "0"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() с EM_EXPORT_MAX_ASSETS=0 должен вернуть ошибку")
	}
}

func TestLoad_GroupLists(t *testing.T) {
	envs := minimalEnvs()
	envs["EM_ROLE_ADMIN_GROUPS"] = "ops, platform-admins"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if len(cfg.RoleAdminGroups) != 2 || cfg.RoleAdminGroups[0] != "ops" || cfg.RoleAdminGroups[1] != "platform-admins" {
		t.Errorf("RoleAdminGroups = %v, ожидается [ops platform-admins]", cfg.RoleAdminGroups)
	}
}

func TestDatabaseDSN(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	want := "host=localhost port=5432 dbname=assetstore user=assetstore password=secret sslmode=disable"
	if got := cfg.DatabaseDSN(); got != want {
		t.Errorf("DatabaseDSN() = %q, ожидается %q", got, want)
	}
}
