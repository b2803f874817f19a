// Package scrape reads schema.org Recipe data from recipe pages. It is the
// extraction capability behind the adapter and knows nothing about
// envelopes or transports.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/gorecipe/internal/adapter"
)

// ErrNoRecipe is returned when a page carries no recognizable recipe data.
var ErrNoRecipe = errors.New("no recipe found")

// Fetcher downloads a page. *fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, header http.Header) ([]byte, string, error)
}

// Scraper implements adapter.Extractor.
type Scraper struct {
	Fetcher Fetcher
	Logger  zerolog.Logger
}

var _ adapter.Extractor = (*Scraper)(nil)

// Extract fetches rawURL and parses it.
func (s *Scraper) Extract(ctx context.Context, rawURL string, header http.Header) (adapter.Scraped, error) {
	if s.Fetcher == nil {
		return nil, errors.New("scraper has no fetcher")
	}
	body, _, err := s.Fetcher.Get(ctx, rawURL, header)
	if err != nil {
		return nil, err
	}
	r, err := Parse(body, rawURL)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug().Str("url", rawURL).Str("source", r.source).Msg("recipe parsed")
	return r, nil
}

// Parse reads the first recipe found in page. JSON-LD wins over microdata;
// OpenGraph and readability metadata only fill a missing title or image.
func Parse(page []byte, pageURL string) (*Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, _ := url.Parse(pageURL)

	r, ok := fromJSONLD(doc)
	if !ok {
		r, ok = fromMicrodata(doc)
	}
	if !ok {
		return nil, fmt.Errorf("%w at %s", ErrNoRecipe, pageURL)
	}
	if r.title == "" || r.image == "" {
		fillFromMetadata(r, page, base)
	}
	r.image = resolveURL(base, r.image)
	return r, nil
}

// Recipe is the parsed result. It implements adapter.Scraped.
type Recipe struct {
	title        string
	image        string
	totalTime    int
	hasTime      bool
	yields       string
	ingredients  []string
	instructions []string
	canonicalURL string
	source       string
}

func (r *Recipe) Title() string { return r.title }

func (r *Recipe) Image() (string, bool) { return r.image, r.image != "" }

func (r *Recipe) TotalTime() (int, bool) { return r.totalTime, r.hasTime }

func (r *Recipe) Yields() string { return r.yields }

func (r *Recipe) Ingredients() []string { return r.ingredients }

func (r *Recipe) Instructions() []string { return r.instructions }

// CanonicalURL is the url the page reports for itself, if any.
func (r *Recipe) CanonicalURL() string { return r.canonicalURL }

func resolveURL(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return base.ResolveReference(u).String()
}
