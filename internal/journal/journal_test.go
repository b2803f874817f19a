package journal

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/gorecipe/internal/adapter"
	"github.com/hyperifyio/gorecipe/internal/recipe"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecord_RoundTrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := j.Record(ctx, adapter.Attempt{Stage: adapter.StageInit, URL: "https://example.com/r", UserAgent: "default", At: at}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := j.Record(ctx, adapter.Attempt{Stage: adapter.StageFetchFailure, URL: "https://example.com/r", UserAgent: "default", Error: "boom", At: at.Add(time.Second)}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Stage != adapter.StageFetchFailure || got[0].Error != "boom" || got[0].Success {
		t.Errorf("newest = %+v", got[0])
	}
	if got[1].Stage != adapter.StageInit || got[1].UserAgent != "default" {
		t.Errorf("oldest = %+v", got[1])
	}
	if !got[1].CreatedAt.Equal(at) {
		t.Errorf("created_at = %v, want %v", got[1].CreatedAt, at)
	}
}

func TestRecent_Limit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := j.Record(ctx, adapter.Attempt{Stage: adapter.StageFetchStart, URL: "u"}); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	got, err := j.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestOpen_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := j.Record(context.Background(), adapter.Attempt{Stage: adapter.StageFetchSuccess, URL: "u", Success: true}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	_ = j.Close()

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer j.Close()
	got, err := j.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(got) != 1 || !got[0].Success {
		t.Fatalf("got %+v", got)
	}
	if j.Path() != path {
		t.Errorf("Path() = %q", j.Path())
	}
}

type okScraped struct{}

func (okScraped) Title() string          { return "T" }
func (okScraped) Image() (string, bool)  { return "", false }
func (okScraped) TotalTime() (int, bool) { return 0, false }
func (okScraped) Yields() string         { return "" }
func (okScraped) Ingredients() []string  { return nil }
func (okScraped) Instructions() []string { return nil }

func TestJournal_AsAdapterRecorder(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	ok := adapter.New(adapter.ExtractorFunc(func(context.Context, string, http.Header) (adapter.Scraped, error) {
		return okScraped{}, nil
	}), adapter.WithRecorder(j))
	if env := ok.Handle(ctx, adapter.Request{URL: "https://example.com/ok"}); !env.Success {
		t.Fatalf("unexpected failure: %s", env.Error)
	}

	bad := adapter.New(adapter.ExtractorFunc(func(context.Context, string, http.Header) (adapter.Scraped, error) {
		return nil, errors.New("network down")
	}), adapter.WithRecorder(j))
	var env recipe.Envelope = bad.Handle(ctx, adapter.Request{URL: "https://example.com/bad"})
	if env.Success {
		t.Fatalf("expected failure")
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	var stages []adapter.Stage
	for i := len(got) - 1; i >= 0; i-- {
		stages = append(stages, got[i].Stage)
	}
	want := []adapter.Stage{
		adapter.StageInit, adapter.StageFetchStart, adapter.StageFetchSuccess,
		adapter.StageInit, adapter.StageFetchStart, adapter.StageFetchFailure,
	}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", stages, want)
		}
	}
	if got[0].Error != "network down" {
		t.Errorf("failure message = %q", got[0].Error)
	}
}
