package app

import (
	"errors"
	"strings"
	"time"
)

// Defaults applied after flags, env and config file have been consulted.
const (
	DefaultAddr              = ":8080"
	DefaultUserAgent         = "default"
	DefaultFetchTimeout      = 30 * time.Second
	DefaultFetchMaxBytes     = 5 << 20
	DefaultFetchMaxRedirects = 5
	DefaultLogFormat         = "console"
)

// Config holds runtime configuration for the binaries.
type Config struct {
	// HTTP shell
	Addr string

	// Extraction
	UserAgent         string
	FetchTimeout      time.Duration
	FetchMaxBytes     int64
	FetchMaxRedirects int

	// Journal is disabled when empty.
	JournalPath string

	// Logging
	LogFormat string
	Verbose   bool
}

// ApplyDefaults fills every field that is still zero.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = DefaultAddr
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.FetchMaxBytes == 0 {
		cfg.FetchMaxBytes = DefaultFetchMaxBytes
	}
	if cfg.FetchMaxRedirects == 0 {
		cfg.FetchMaxRedirects = DefaultFetchMaxRedirects
	}
	if strings.TrimSpace(cfg.LogFormat) == "" {
		cfg.LogFormat = DefaultLogFormat
	}
}

// ValidateConfig rejects settings the binaries cannot run with.
func ValidateConfig(cfg Config) error {
	if cfg.FetchTimeout < 0 || cfg.FetchMaxBytes < 0 || cfg.FetchMaxRedirects < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "console", "json":
	default:
		return errors.New("config: log.format must be console or json")
	}
	return nil
}

// Resolve layers cfg (normally built from flags) over env vars, then the
// optional config file, then defaults, and validates the result.
func Resolve(cfg Config, configPath string) (Config, error) {
	ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := LoadConfigFile(configPath)
		if err != nil {
			return cfg, err
		}
		ApplyFileConfig(&cfg, fc)
	}
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
