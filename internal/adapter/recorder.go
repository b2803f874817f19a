package adapter

import (
	"context"
	"time"
)

// Stage names one step of an extraction attempt.
type Stage string

const (
	StageInit         Stage = "init"
	StageFetchStart   Stage = "fetch_start"
	StageFetchSuccess Stage = "fetch_success"
	StageFetchFailure Stage = "fetch_failure"
)

// Attempt is one journal line.
type Attempt struct {
	Stage     Stage
	URL       string
	UserAgent string
	Success   bool
	Error     string
	At        time.Time
}

// Recorder persists extraction attempts. Failures are logged by the adapter
// and otherwise ignored.
type Recorder interface {
	Record(ctx context.Context, a Attempt) error
}

func (a *Adapter) record(ctx context.Context, stage Stage, url, ua string, err error) {
	if a.recorder == nil {
		return
	}
	at := Attempt{
		Stage:     stage,
		URL:       url,
		UserAgent: ua,
		Success:   stage == StageFetchSuccess,
		At:        a.now().UTC(),
	}
	if err != nil {
		at.Error = err.Error()
	}
	if rerr := a.recorder.Record(ctx, at); rerr != nil {
		a.logger.Warn().Err(rerr).Str("stage", string(stage)).Msg("journal write failed")
	}
}
