package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates the process environment.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("FOO", "")
	t.Setenv("BAR", "")
	t.Setenv("BAZ", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nFOO=alpha\nexport BAR=\"beta gamma\"\nBAZ=delta # trailing\nmalformed\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	if got := os.Getenv("FOO"); got != "alpha" {
		t.Fatalf("FOO=%q, want alpha", got)
	}
	if got := os.Getenv("BAR"); got != "beta gamma" {
		t.Fatalf("BAR=%q, want beta gamma", got)
	}
	if got := os.Getenv("BAZ"); got != "delta" {
		t.Fatalf("BAZ=%q, want delta", got)
	}
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

// ApplyEnvToConfig reads settings from env without clobbering explicit values.
func TestApplyEnvToConfig_FromEnv(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_USER_AGENT", "RecipeBot/2")
	t.Setenv("FETCH_TIMEOUT", "12s")
	t.Setenv("FETCH_MAX_BYTES", "1024")
	t.Setenv("FETCH_MAX_REDIRECTS", "not-a-number")
	t.Setenv("JOURNAL_PATH", "/tmp/journal.db")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("VERBOSE", "yes")

	cfg := Config{FetchMaxBytes: 2048}
	ApplyEnvToConfig(&cfg)
	if cfg.Addr != ":9090" {
		t.Fatalf("Addr=%q, want fallback from PORT", cfg.Addr)
	}
	if cfg.UserAgent != "RecipeBot/2" || cfg.JournalPath != "/tmp/journal.db" || cfg.LogFormat != "json" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.FetchTimeout != 12*time.Second {
		t.Fatalf("FetchTimeout=%v", cfg.FetchTimeout)
	}
	if cfg.FetchMaxBytes != 2048 {
		t.Fatalf("explicit FetchMaxBytes overwritten: %d", cfg.FetchMaxBytes)
	}
	if cfg.FetchMaxRedirects != 0 {
		t.Fatalf("invalid FETCH_MAX_REDIRECTS applied: %d", cfg.FetchMaxRedirects)
	}
	if !cfg.Verbose {
		t.Fatalf("VERBOSE=yes should enable verbose")
	}
}
