// Package adapter turns a recipe-page URL into a normalized recipe envelope by
// delegating extraction to an Extractor capability.
package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/gorecipe/internal/recipe"
)

// DefaultUserAgent is sent to the extractor when the caller supplies none.
const DefaultUserAgent = "default"

// Scraped is the result of a successful extraction. Every accessor is
// optional from the adapter's point of view: the second return value of
// Image and TotalTime reports whether the page carried the field at all.
type Scraped interface {
	Title() string
	Image() (string, bool)
	TotalTime() (int, bool)
	Yields() string
	Ingredients() []string
	Instructions() []string
}

// Extractor fetches url and reads recipe fields from it. Implementations
// may perform network I/O and return any error for pages they cannot handle.
type Extractor interface {
	Extract(ctx context.Context, url string, header http.Header) (Scraped, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(ctx context.Context, url string, header http.Header) (Scraped, error)

func (f ExtractorFunc) Extract(ctx context.Context, url string, header http.Header) (Scraped, error) {
	return f(ctx, url, header)
}

// Request is a single extraction call.
type Request struct {
	URL       string
	UserAgent string
}

// Adapter is safe for concurrent use; it keeps no per-call state.
type Adapter struct {
	extractor Extractor
	userAgent string
	logger    zerolog.Logger
	recorder  Recorder
	now       func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// WithRecorder attaches an extraction journal.
func WithRecorder(r Recorder) Option {
	return func(a *Adapter) { a.recorder = r }
}

// WithDefaultUserAgent overrides the sentinel user agent used when a request
// has none. Empty values are ignored.
func WithDefaultUserAgent(ua string) Option {
	return func(a *Adapter) {
		if s := strings.TrimSpace(ua); s != "" {
			a.userAgent = s
		}
	}
}

// New returns an Adapter calling ex for every request with a URL.
func New(ex Extractor, opts ...Option) *Adapter {
	a := &Adapter{
		extractor: ex,
		userAgent: DefaultUserAgent,
		logger:    zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle runs one extraction and always returns a well-formed envelope.
func (a *Adapter) Handle(ctx context.Context, req Request) recipe.Envelope {
	if strings.TrimSpace(req.URL) == "" {
		a.logger.Debug().Msg("rejecting request without url")
		return recipe.Fail(ErrURLRequired)
	}
	ua := req.UserAgent
	if ua == "" {
		ua = a.userAgent
	}
	a.record(ctx, StageInit, req.URL, ua, nil)

	log := a.logger.With().Str("url", req.URL).Logger()
	log.Debug().Str("user_agent", ua).Msg("extracting recipe")
	a.record(ctx, StageFetchStart, req.URL, ua, nil)

	start := a.now()
	doc, err := a.extract(ctx, req.URL, ua)
	if err != nil {
		xerr := &ExtractionError{URL: req.URL, Err: err}
		log.Warn().Err(err).Dur("took", a.now().Sub(start)).Msg("extraction failed")
		a.record(ctx, StageFetchFailure, req.URL, ua, xerr)
		return recipe.Fail(xerr)
	}

	log.Debug().
		Str("title", doc.Title).
		Int("ingredients", len(doc.Prep.Ingredients)).
		Int("steps", len(doc.Cook.Steps)).
		Dur("took", a.now().Sub(start)).
		Msg("extraction succeeded")
	a.record(ctx, StageFetchSuccess, req.URL, ua, nil)
	return recipe.OK(doc)
}

// extract calls the capability and maps its result. A panic in the
// capability or in any result accessor, or an empty result, becomes an
// ordinary error.
func (a *Adapter) extract(ctx context.Context, url, ua string) (doc recipe.Document, err error) {
	if a.extractor == nil {
		return recipe.Document{}, errNoExtractor
	}
	defer func() {
		if r := recover(); r != nil {
			doc, err = recipe.Document{}, fmt.Errorf("extractor panic: %v", r)
		}
	}()
	header := http.Header{}
	header.Set("User-Agent", ua)
	s, err := a.extractor.Extract(ctx, url, header)
	if err != nil {
		return recipe.Document{}, err
	}
	if s == nil {
		return recipe.Document{}, errNoResult
	}
	return toDocument(url, s), nil
}

func toDocument(sourceURL string, s Scraped) recipe.Document {
	doc := recipe.Document{
		Title:     s.Title(),
		Yields:    s.Yields(),
		SourceURL: sourceURL,
	}
	if img, ok := s.Image(); ok && img != "" {
		doc.Image = &img
	}
	if mins, ok := s.TotalTime(); ok && mins > 0 {
		doc.TotalTime = mins
	}

	raw := s.Ingredients()
	doc.Prep.Ingredients = make([]recipe.Ingredient, 0, len(raw))
	for _, item := range raw {
		doc.Prep.Ingredients = append(doc.Prep.Ingredients, recipe.Ingredient{Item: item})
	}

	steps := s.Instructions()
	doc.Cook.Steps = make([]string, len(steps))
	copy(doc.Cook.Steps, steps)
	return doc
}
