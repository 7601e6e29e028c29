package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the OnlyVentilateur CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - StateDir: directory for durable client state (the session record).
//   - HTTPTimeout: per-request timeout for API calls.
//   - FeedPageSize: number of feed posts shown per page.
type Config struct {
	APIBaseURL   string
	StateDir     string
	HTTPTimeout  time.Duration
	FeedPageSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StateDir = defaultStateDir()
	c.HTTPTimeout = 15 * time.Second
	c.FeedPageSize = 9
}

// defaultStateDir resolves to a per-user config location, falling back to
// the working directory when none is available.
func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ovcli")
	}
	return ".ovcli"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present), and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
