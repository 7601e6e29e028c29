package config

import (
	"flag"
	"os"
	"time"

	"github.com/onlyventilateur/ovcli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API (default from Config)
//	-d string   state directory (default from Config)
//	-t string   HTTP timeout as a Go duration (default from Config)
//	-p int      feed page size (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend HTTP API")
	fs.StringVar(&cfg.StateDir, "d", cfg.StateDir, "directory for durable client state")
	timeout := fs.String("t", cfg.HTTPTimeout.String(), "HTTP request timeout (Go duration)")
	fs.IntVar(&cfg.FeedPageSize, "p", cfg.FeedPageSize, "feed page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if d, err := time.ParseDuration(*timeout); err == nil {
		cfg.HTTPTimeout = d
	}
}
