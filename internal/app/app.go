package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/gorecipe/internal/adapter"
	"github.com/hyperifyio/gorecipe/internal/fetch"
	"github.com/hyperifyio/gorecipe/internal/journal"
	"github.com/hyperifyio/gorecipe/internal/scrape"
)

// App wires the fetch client, the scraper, the optional journal and the
// adapter from a resolved Config.
type App struct {
	cfg     Config
	logger  zerolog.Logger
	journal *journal.Journal
	adapter *adapter.Adapter
}

// New builds an App. cfg is expected to have passed Resolve.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	fc := &fetch.Client{
		HTTPClient:      newFetchHTTPClient(cfg),
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.FetchTimeout,
		MaxBytes:        cfg.FetchMaxBytes,
		RedirectMaxHops: cfg.FetchMaxRedirects,
	}
	sc := &scrape.Scraper{Fetcher: fc, Logger: logger.With().Str("component", "scrape").Logger()}

	opts := []adapter.Option{
		adapter.WithLogger(logger.With().Str("component", "adapter").Logger()),
		adapter.WithDefaultUserAgent(cfg.UserAgent),
	}
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		a.journal = j
		opts = append(opts, adapter.WithRecorder(j))
		logger.Debug().Str("path", j.Path()).Msg("extraction journal enabled")
	}
	a.adapter = adapter.New(sc, opts...)
	return a, nil
}

// Adapter returns the configured extraction adapter.
func (a *App) Adapter() *adapter.Adapter {
	return a.adapter
}

// Config returns the configuration the App was built with.
func (a *App) Config() Config {
	return a.cfg
}

// Close releases the journal, if any.
func (a *App) Close() error {
	if a.journal == nil {
		return nil
	}
	return a.journal.Close()
}
