package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spreadpool/against-the-spread/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORAGE_CONNECTION_STRING", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected default env %q, got %q", EnvDev, cfg.AppEnv)
	}
	if cfg.ServiceName != "against-the-spread-api" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.StorageContainer != "gamefiles" {
		t.Fatalf("unexpected storage container %q", cfg.StorageContainer)
	}
	if cfg.UploadMaxBytes != 5<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.UploadMaxBytes)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Fatalf("unexpected read timeout %s", cfg.ReadTimeout)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level %s", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoadProdRequiresAdminToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_UPLOAD_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error when admin token missing in prod")
	}
	if !strings.Contains(err.Error(), "ADMIN_UPLOAD_TOKEN") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("APP_HTTP_ADDR", ":9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://pool.example.com, https://admin.example.com")
	t.Setenv("STORAGE_CONTAINER", "testfiles")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("ADMIN_UPLOAD_TOKEN", "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level %s", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.StorageContainer != "testfiles" {
		t.Fatalf("unexpected container %q", cfg.StorageContainer)
	}
	if cfg.UploadMaxBytes != 1<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.UploadMaxBytes)
	}
	if cfg.AdminUploadToken != "hunter2" {
		t.Fatalf("unexpected admin token %q", cfg.AdminUploadToken)
	}
}

func TestLoadInvalidUploadLimit(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative UPLOAD_MAX_BYTES")
	}
}
