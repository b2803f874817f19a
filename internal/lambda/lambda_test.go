package lambda

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/gorecipe/internal/adapter"
)

type titled string

func (t titled) Title() string        { return string(t) }
func (titled) Image() (string, bool)  { return "https://example.com/a.jpg", true }
func (titled) TotalTime() (int, bool) { return 0, false }
func (titled) Yields() string         { return "" }
func (titled) Ingredients() []string  { return nil }
func (titled) Instructions() []string { return nil }

func newHandler(fn adapter.ExtractorFunc) *Handler {
	return &Handler{Adapter: adapter.New(fn), Logger: zerolog.Nop()}
}

func TestHandle_Success(t *testing.T) {
	var ua string
	h := newHandler(func(_ context.Context, url string, hdr http.Header) (adapter.Scraped, error) {
		ua = hdr.Get("User-Agent")
		return titled("Toast"), nil
	})
	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            "GET",
		QueryStringParameters: map[string]string{"url": "https://example.com/toast"},
		Headers:               map[string]string{"user-agent": "Mobile/2"},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != 200 || resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("status=%d headers=%v", resp.StatusCode, resp.Headers)
	}
	want := `{"title":"Toast","image":"https://example.com/a.jpg","totalTime":0,"yields":"","sourceUrl":"https://example.com/toast","prep":{"ingredients":[]},"cook":{"steps":[]}}`
	if resp.Body != want {
		t.Fatalf("body=%s", resp.Body)
	}
	if ua != "Mobile/2" {
		t.Fatalf("ua=%q", ua)
	}
}

func TestHandle_MissingURL(t *testing.T) {
	called := false
	h := newHandler(func(context.Context, string, http.Header) (adapter.Scraped, error) {
		called = true
		return nil, nil
	})
	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "GET"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != 400 || resp.Body != `{"error":"URL is required"}` || called {
		t.Fatalf("status=%d body=%s called=%v", resp.StatusCode, resp.Body, called)
	}
}

func TestHandle_ExtractionFailure(t *testing.T) {
	h := newHandler(func(_ context.Context, _ string, hdr http.Header) (adapter.Scraped, error) {
		if hdr.Get("User-Agent") != adapter.DefaultUserAgent {
			t.Errorf("ua=%q", hdr.Get("User-Agent"))
		}
		return nil, errors.New("unexpected status: 404")
	})
	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		MultiValueQueryStringParameters: map[string][]string{"url": {"https://example.com/gone"}},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != 500 || resp.Body != `{"error":"unexpected status: 404"}` {
		t.Fatalf("status=%d body=%s", resp.StatusCode, resp.Body)
	}
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	h := newHandler(func(context.Context, string, http.Header) (adapter.Scraped, error) {
		t.Fatalf("extractor must not run")
		return nil, nil
	})
	resp, _ := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "POST"})
	if resp.StatusCode != 405 || resp.Headers["Allow"] != "GET" {
		t.Fatalf("status=%d headers=%v", resp.StatusCode, resp.Headers)
	}
}

func TestHeader_CaseInsensitive(t *testing.T) {
	hs := map[string]string{"USER-AGENT": "X"}
	if got := header(hs, "User-Agent"); got != "X" {
		t.Fatalf("got %q", got)
	}
	if got := header(nil, "User-Agent"); got != "" {
		t.Fatalf("got %q", got)
	}
}
