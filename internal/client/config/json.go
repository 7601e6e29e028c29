package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/onlyventilateur/ovcli/internal/flagx"
	"github.com/onlyventilateur/ovcli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "15s" or as integer nanoseconds. After parsing, values are copied
// into the runtime Config.
type JsonConfig struct {
	APIBaseURL   string         `json:"api_base_url"`
	StateDir     string         `json:"state_dir"`
	HTTPTimeout  timex.Duration `json:"http_timeout"`
	FeedPageSize int            `json:"feed_page_size"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JSONConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the file override earlier-stage values; absent
// fields keep what defaults and the environment produced. Panics on read
// or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.FeedPageSize > 0 {
		cfg.FeedPageSize = jc.FeedPageSize
	}
}
