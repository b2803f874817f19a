package adapter

import "errors"

// ErrURLRequired is returned for requests without a URL. The extractor is
// never called for these.
var ErrURLRequired = errors.New("URL is required")

var (
	errNoExtractor = errors.New("no extractor configured")
	errNoResult    = errors.New("extractor returned no recipe")
)

// ExtractionError wraps any failure reported by the extractor. Its message is
// the extractor's message verbatim.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string { return e.Err.Error() }

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsClientError reports whether err is a caller input problem rather than an
// extraction failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrURLRequired)
}
