package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"INSIGHTIFY_API_BASE_URL", "INSIGHTIFY_API_TIMEOUT_SECONDS", "INSIGHTIFY_API_MAX_RETRIES",
		"REDIS_ENABLED", "REDIS_HOST", "CACHE_TTL_MINUTES", "LOG_LEVEL", "LOG_FILE", "BATCH_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("redis should be disabled by default")
	}
	if cfg.Cache.TTL != time.Hour {
		t.Fatalf("unexpected cache TTL %v", cfg.Cache.TTL)
	}
	if cfg.Batch.Concurrency != 3 {
		t.Fatalf("unexpected batch concurrency %d", cfg.Batch.Concurrency)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("INSIGHTIFY_API_BASE_URL", "https://api.example.com/")
	t.Setenv("INSIGHTIFY_API_TIMEOUT_SECONDS", "5")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("BATCH_CONCURRENCY", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected overrides to validate, got %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Port != 6380 {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.Batch.Concurrency != 3 {
		t.Fatalf("expected invalid int to fall back to default, got %d", cfg.Batch.Concurrency)
	}
}

func TestValidateRejectsRelativeBaseURL(t *testing.T) {
	cfg := &Config{
		API:   APIConfig{BaseURL: "localhost:8000", Timeout: time.Second, MaxRetries: 1},
		Batch: BatchConfig{Concurrency: 1},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "absolute URL") {
		t.Fatalf("expected absolute URL error, got %v", err)
	}
}
