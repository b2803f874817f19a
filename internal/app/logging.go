package app

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: human-readable console output by
// default, one JSON object per line when format is "json". It leaves
// zerolog's global settings alone; binaries set those once in main.
func NewLogger(out io.Writer, format string, verbose bool) zerolog.Logger {
	w := out
	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
