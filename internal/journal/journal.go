// Package journal persists extraction attempts to SQLite. It mirrors the
// stages the adapter reports and is never read on the request path.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hyperifyio/gorecipe/internal/adapter"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    stage TEXT NOT NULL,
    url TEXT NOT NULL,
    user_agent TEXT,
    success BOOLEAN NOT NULL DEFAULT 0,
    error_message TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_extraction_log_url ON extraction_log(url);
CREATE INDEX IF NOT EXISTS idx_extraction_log_created ON extraction_log(created_at);
`

// Entry is one stored row.
type Entry struct {
	ID        int64
	Stage     adapter.Stage
	URL       string
	UserAgent string
	Success   bool
	Error     string
	CreatedAt time.Time
}

// Journal implements adapter.Recorder.
type Journal struct {
	db   *sql.DB
	path string
}

var _ adapter.Recorder = (*Journal)(nil)

// Open opens or creates the database at path and ensures the schema.
// ":memory:" gives a private in-process database.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// one connection keeps ":memory:" coherent and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Journal{db: db, path: path}, nil
}

// Path returns the database file path.
func (j *Journal) Path() string {
	return j.path
}

// Record stores one attempt.
func (j *Journal) Record(ctx context.Context, a adapter.Attempt) error {
	at := a.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO extraction_log (stage, url, user_agent, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(a.Stage), a.URL, a.UserAgent, a.Success, a.Error, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert extraction log: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, stage, url, COALESCE(user_agent, ''), success, COALESCE(error_message, ''), created_at
		FROM extraction_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query extraction log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			stage   string
			created string
		)
		if err := rows.Scan(&e.ID, &stage, &e.URL, &e.UserAgent, &e.Success, &e.Error, &created); err != nil {
			return nil, fmt.Errorf("scan extraction log: %w", err)
		}
		e.Stage = adapter.Stage(stage)
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
