// Package config loads runtime configuration for the OnlyVentilateur CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-d string   directory holding durable client state (session record)
//	-t string   HTTP request timeout, as a Go duration ("15s")
//	-p int      feed page size
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.onlyventilateur.example",
//	  "state_dir": "/home/fan/.ovcli",
//	  "http_timeout": "15s",
//	  "feed_page_size": 9
//	}
package config
