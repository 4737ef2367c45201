package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigWithRoot(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())

	if cfg.APIBaseURL != "http://localhost:3001" {
		t.Fatalf("expected default api base url, got %s", cfg.APIBaseURL)
	}
	if cfg.RequestTimeoutSecs != 120 {
		t.Fatalf("expected 120s request timeout, got %d", cfg.RequestTimeoutSecs)
	}
	if cfg.StepTimeoutSecs != 60 {
		t.Fatalf("expected 60s step timeout, got %d", cfg.StepTimeoutSecs)
	}
	if !cfg.AnalyticsEnabled {
		t.Fatalf("expected analytics enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STONK_API_URL", "https://api.example.com")
	t.Setenv("STONK_ANALYTICS_ENABLED", "false")
	t.Setenv("STONK_STEP_TIMEOUT_SECS", "30")

	cfg := DefaultConfigWithRoot(t.TempDir())
	cfg.loadFromEnv()

	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("env override not applied, got %s", cfg.APIBaseURL)
	}
	if cfg.AnalyticsEnabled {
		t.Fatalf("expected analytics disabled via env")
	}
	if cfg.StepTimeoutSecs != 30 {
		t.Fatalf("expected 30s step timeout, got %d", cfg.StepTimeoutSecs)
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	fileCfg := `{
		"data_dir": "` + dir + `",
		"api_base_url": "https://file.example.com",
		"request_timeout_secs": 90,
		"step_timeout_secs": 45,
		"analytics_enabled": false,
		"log_level": "warn"
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(fileCfg), 0o644); err != nil {
		t.Fatalf("seed config file: %v", err)
	}

	cfg := Load(WithConfigDir(dir))
	if cfg.APIBaseURL != "https://file.example.com" {
		t.Fatalf("config.json value not applied, got %s", cfg.APIBaseURL)
	}
	if cfg.StepTimeoutSecs != 45 {
		t.Fatalf("expected 45s step timeout from file, got %d", cfg.StepTimeoutSecs)
	}

	// Environment wins over the file.
	t.Setenv("STONK_API_URL", "https://env.example.com")
	cfg = Load(WithConfigDir(dir))
	if cfg.APIBaseURL != "https://env.example.com" {
		t.Fatalf("env should override config.json, got %s", cfg.APIBaseURL)
	}
	if cfg.StepTimeoutSecs != 45 {
		t.Fatalf("untouched file values must survive the env pass, got %d", cfg.StepTimeoutSecs)
	}
}

func TestLoadCreatesConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg := Load(WithConfigDir(dir))
	if cfg.APIBaseURL != "http://localhost:3001" {
		t.Fatalf("first run should use defaults, got %s", cfg.APIBaseURL)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config.json not created on first run: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())
	cfg.APIBaseURL = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty api base url")
	}

	cfg = DefaultConfigWithRoot(t.TempDir())
	cfg.RequestTimeoutSecs = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero request timeout")
	}

	cfg = DefaultConfigWithRoot(t.TempDir())
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}
