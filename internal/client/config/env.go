package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a .env file
// from the working directory first if one exists. Already-set process
// variables win over .env entries (godotenv does not override).
//
// Recognized variables:
//
//	OV_API_BASE_URL    base URL of the backend HTTP API
//	OV_STATE_DIR       directory for durable client state
//	OV_HTTP_TIMEOUT    Go duration string, e.g. "15s"
//	OV_FEED_PAGE_SIZE  integer page size
//
// Malformed values are skipped, keeping the earlier-stage value.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("OV_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("OV_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("OV_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("OV_FEED_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FeedPageSize = n
		}
	}
}
