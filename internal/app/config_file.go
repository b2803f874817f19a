package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	UserAgent string `yaml:"userAgent" json:"userAgent"`

	Fetch struct {
		Timeout      string `yaml:"timeout" json:"timeout"`
		MaxBytes     int64  `yaml:"maxBytes" json:"maxBytes"`
		MaxRedirects int    `yaml:"maxRedirects" json:"maxRedirects"`
	} `yaml:"fetch" json:"fetch"`

	Journal struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"journal" json:"journal"`

	Log struct {
		Format string `yaml:"format" json:"format"`
	} `yaml:"log" json:"log"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	if fc.Fetch.Timeout != "" {
		if _, err := time.ParseDuration(fc.Fetch.Timeout); err != nil {
			return fc, fmt.Errorf("parse config: fetch.timeout: %w", err)
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset/zero in cfg. Flags and env should already be applied.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Addr == "" && fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if cfg.UserAgent == "" && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout != "" {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if cfg.FetchMaxBytes == 0 && fc.Fetch.MaxBytes > 0 {
		cfg.FetchMaxBytes = fc.Fetch.MaxBytes
	}
	if cfg.FetchMaxRedirects == 0 && fc.Fetch.MaxRedirects > 0 {
		cfg.FetchMaxRedirects = fc.Fetch.MaxRedirects
	}
	if cfg.JournalPath == "" && fc.Journal.Path != "" {
		cfg.JournalPath = fc.Journal.Path
	}
	if cfg.LogFormat == "" && fc.Log.Format != "" {
		cfg.LogFormat = fc.Log.Format
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
