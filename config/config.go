package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client settings. Values come from defaults, an optional
// config.json managed by Manager, and environment variables (highest
// precedence).
type Config struct {
	DataDir string `json:"data_dir"`

	APIBaseURL     string `json:"api_base_url"`
	GoogleClientID string `json:"google_client_id"`

	RequestTimeoutSecs int `json:"request_timeout_secs"`
	StepTimeoutSecs    int `json:"step_timeout_secs"`

	AnalyticsEnabled bool   `json:"analytics_enabled"`
	Debug            bool   `json:"debug"`
	LogLevel         string `json:"log_level"`
}

// DefaultConfig builds a configuration from defaults plus environment
// overrides. A .env file in the working directory is honored.
func DefaultConfig() *Config {
	cfg := DefaultConfigWithRoot(defaultDataDir())

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

// Load builds the effective configuration: built-in defaults, then the
// managed config.json (created on first run), then environment overrides
// with the highest precedence. A broken or unwritable config file degrades
// to defaults rather than failing startup.
func Load(opts ...ManagerOption) *Config {
	_ = godotenv.Load()

	cfg := DefaultConfigWithRoot(defaultDataDir())
	if mgr, err := NewManager(append([]ManagerOption{WithInitialConfig(cfg)}, opts...)...); err == nil {
		fileCfg := mgr.Get()
		cfg = &fileCfg
	}

	cfg.loadFromEnv()
	return cfg
}

// DefaultConfigWithRoot returns the built-in defaults with DataDir rooted
// at the provided directory.
func DefaultConfigWithRoot(root string) *Config {
	return &Config{
		DataDir:            root,
		APIBaseURL:         "http://localhost:3001",
		GoogleClientID:     "",
		RequestTimeoutSecs: 120,
		StepTimeoutSecs:    60,
		AnalyticsEnabled:   true,
		Debug:              false,
		LogLevel:           "info",
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stonk")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".stonk")
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("STONK_DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("STONK_API_URL"); val != "" {
		c.APIBaseURL = val
	}
	if val := os.Getenv("STONK_GOOGLE_CLIENT_ID"); val != "" {
		c.GoogleClientID = val
	}

	if val := os.Getenv("STONK_REQUEST_TIMEOUT_SECS"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil {
			c.RequestTimeoutSecs = secs
		}
	}
	if val := os.Getenv("STONK_STEP_TIMEOUT_SECS"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil {
			c.StepTimeoutSecs = secs
		}
	}

	if val := os.Getenv("STONK_ANALYTICS_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.AnalyticsEnabled = enabled
		}
	}
	if val := os.Getenv("STONK_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
	if val := os.Getenv("STONK_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
}

// RequestTimeout is the blanket transport timeout for backend calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// StepTimeout is the wall-clock limit the guided research flow enforces on
// a single step, independent of the transport timeout.
func (c *Config) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutSecs) * time.Second
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.RequestTimeoutSecs < 1 {
		return fmt.Errorf("request_timeout_secs must be at least 1")
	}
	if c.StepTimeoutSecs < 1 {
		return fmt.Errorf("step_timeout_secs must be at least 1")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	return nil
}

// EnsureDirectories creates the data directory when missing.
func (c *Config) EnsureDirectories() error {
	path := strings.TrimSpace(c.DataDir)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}
