package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/crmclient/internal/flagx"
)

var knownFlags = []string{"-a", "-s", "-d", "-r", "-t", "-l"}

// parseFlags overlays cfg with the short flags listed in the package doc.
// Other arguments (such as -c) are filtered out beforehand.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("crmclient", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the CRM API")
	fs.StringVar(&cfg.Store, "s", cfg.Store, "credential store backend: sqlite | redis | memory")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "SQLite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "t" {
			return
		}
		if *timeout <= 0 {
			err = fmt.Errorf("request timeout must be positive, got %d", *timeout)
			return
		}
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	})
	return err
}
