package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Addr == "" {
		// PORT is what most container runtimes set
		if v := os.Getenv("ADDR"); v != "" {
			cfg.Addr = v
		} else if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
			cfg.Addr = ":" + p
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("DEFAULT_USER_AGENT")
	}
	if cfg.JournalPath == "" {
		cfg.JournalPath = os.Getenv("JOURNAL_PATH")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}

	if cfg.FetchTimeout == 0 {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.FetchTimeout = d
			}
		}
	}
	if cfg.FetchMaxBytes == 0 {
		if n, err := strconv.ParseInt(strings.TrimSpace(os.Getenv("FETCH_MAX_BYTES")), 10, 64); err == nil && n > 0 {
			cfg.FetchMaxBytes = n
		}
	}
	if cfg.FetchMaxRedirects == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("FETCH_MAX_REDIRECTS"))); err == nil && n > 0 {
			cfg.FetchMaxRedirects = n
		}
	}

	if !cfg.Verbose {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("VERBOSE"))) {
		case "1", "true", "yes", "on":
			cfg.Verbose = true
		}
	}
}
