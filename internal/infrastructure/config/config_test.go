package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/gobooks/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.JWTSecret != "" {
		t.Fatalf("expected JWT secret default to be empty, got %q", cfg.JWTSecret)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.MigrationsPath != "migrations" || cfg.AccountCacheTTL != time.Hour {
		t.Fatalf("unexpected defaults: migrations=%s cacheTTL=%s", cfg.MigrationsPath, cfg.AccountCacheTTL)
	}

	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://books.example,https://admin.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CHART_OF_ACCOUNTS_FILE", "/etc/gobooks/chart.yaml")
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}

	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.example" {
		t.Fatalf("expected two CORS origins, got %v", cfg.CORSAllowedOrigins)
	}

	if cfg.RateLimitRPS != 2.5 || cfg.ChartOfAccountsFile != "/etc/gobooks/chart.yaml" {
		t.Fatalf("unexpected overrides: rps=%v chart=%s", cfg.RateLimitRPS, cfg.ChartOfAccountsFile)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "7070")
	os.Unsetenv("LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	content := "LOG_LEVEL=debug\nHTTP_PORT=6060\n"
	if err := os.WriteFile(filepath.Join(dir, config.DotEnvFile), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("expected LOG_LEVEL from .env, got %s", cfg.LogLevel)
	}
	if cfg.HTTPPort != "7070" {
		t.Fatalf("environment must win over .env, got %s", cfg.HTTPPort)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Chdir(t.TempDir())

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRequiresSecretWhenAuthEnabled(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "")
	t.Chdir(t.TempDir())

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when auth is enabled without a secret")
	}
}
