package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env

	cfg := Load(":8088", "aiproxy")

	if cfg.ServerAddr != ":8088" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, ":8088")
	}
	if cfg.AppName != "aiproxy" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "aiproxy")
	}
	if cfg.StorageBackend != BackendPostgres {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendPostgres)
	}
	if cfg.UpstreamTimeout != 30*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 30s", cfg.UpstreamTimeout)
	}
	if cfg.UpstreamMaxBody != 16*1024*1024 {
		t.Errorf("UpstreamMaxBody = %d, want 16MiB", cfg.UpstreamMaxBody)
	}
	if !cfg.IsDev() {
		t.Error("IsDev() should be true by default")
	}
	if !cfg.EnableDiagnostics {
		t.Error("diagnostics should default to enabled in development")
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() should be false without OIDC_ISSUER")
	}
	if cfg.PurgeRetention != 0 {
		t.Errorf("PurgeRetention = %v, want 0", cfg.PurgeRetention)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "production")
	t.Setenv("SERVER_ADDR", "0.0.0.0:9000")
	t.Setenv("STORAGE_BACKEND", "Badger")
	t.Setenv("RATE_LIMIT_MAX", "7")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("PURGE_RETENTION", "720h")
	t.Setenv("OIDC_ISSUER", "https://issuer.example.com")

	cfg := Load(":8088", "aiproxy")

	if cfg.IsDev() {
		t.Error("IsDev() should be false in production")
	}
	if cfg.EnableDiagnostics {
		t.Error("diagnostics should default to disabled outside development")
	}
	if cfg.StorageBackend != BackendBadger {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendBadger)
	}
	if cfg.RateLimitMax != 7 {
		t.Errorf("RateLimitMax = %d, want 7", cfg.RateLimitMax)
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 5s", cfg.UpstreamTimeout)
	}
	if cfg.PurgeRetention != 720*time.Hour {
		t.Errorf("PurgeRetention = %v, want 720h", cfg.PurgeRetention)
	}
	if cfg.Port() != "9000" {
		t.Errorf("Port() = %q, want %q", cfg.Port(), "9000")
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled() should be true with OIDC_ISSUER")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RATE_LIMIT_MAX", "lots")
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	t.Setenv("ENABLE_DIAGNOSTICS", "maybe")

	cfg := Load(":8080", "catalog")

	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want 100", cfg.RateLimitMax)
	}
	if cfg.UpstreamTimeout != 30*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 30s", cfg.UpstreamTimeout)
	}
	if !cfg.EnableDiagnostics {
		t.Error("invalid ENABLE_DIAGNOSTICS should fall back to the development default")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JSEARCH_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JSEARCH_API_KEY", "")
	os.Unsetenv("JSEARCH_API_KEY")

	cfg := Load(":8088", "aiproxy")
	t.Cleanup(func() { os.Unsetenv("JSEARCH_API_KEY") })

	if cfg.JSearch.APIKey != "from-dotenv" {
		t.Errorf("JSearch.APIKey = %q, want %q", cfg.JSearch.APIKey, "from-dotenv")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	dev := &Config{Env: "development", LogLevel: "debug"}
	if _, ok := dev.Logger().Handler().(*slog.TextHandler); !ok {
		t.Errorf("development logger handler = %T, want *slog.TextHandler", dev.Logger().Handler())
	}
	if !dev.Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled")
	}

	prod := &Config{Env: "production", LogLevel: "warn"}
	if _, ok := prod.Logger().Handler().(*slog.JSONHandler); !ok {
		t.Errorf("production logger handler = %T, want *slog.JSONHandler", prod.Logger().Handler())
	}
	if prod.Logger().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info level should be disabled at warn")
	}
}
