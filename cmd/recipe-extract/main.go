package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/hyperifyio/gorecipe/internal/adapter"
	"github.com/hyperifyio/gorecipe/internal/app"
	"github.com/hyperifyio/gorecipe/internal/recipe"
	"github.com/hyperifyio/gorecipe/internal/render"
)

var errURLArgRequired = errors.New("URL argument is required")

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code. A non-nil ex
// replaces the page scraper.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, ex adapter.Extractor) int {
	code := 0
	cliApp := &cli.App{
		Name:      "recipe-extract",
		Usage:     "extract a recipe from a web page and print it as JSON",
		UsageText: "recipe-extract [flags] <url>\n\nFlags must come before the url; anything after it counts as another argument.",
		Version:   app.VersionString(),
		// stdout carries only the envelope; help and usage errors go to stderr
		Writer:    stderr,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML or JSON config file"},
			&cli.StringSliceFlag{Name: "env-file", Value: cli.NewStringSlice(".env"), Usage: "dotenv files loaded before reading env vars"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging on stderr"},
			&cli.DurationFlag{Name: "timeout", Usage: "page fetch timeout (default 30s)"},
			&cli.StringFlag{Name: "journal", Usage: "SQLite file recording extraction attempts"},
			&cli.StringFlag{Name: "pdf", Usage: "also write a PDF recipe card to this path on success"},
		},
		Action: func(c *cli.Context) error {
			code = extract(c, stdout, stderr, ex)
			return nil
		},
	}
	if err := cliApp.RunContext(ctx, args); err != nil {
		printEnvelope(stdout, recipe.Fail(err))
		return 1
	}
	return code
}

func extract(c *cli.Context, stdout, stderr io.Writer, ex adapter.Extractor) int {
	if c.NArg() != 1 {
		printEnvelope(stdout, recipe.Fail(errURLArgRequired))
		return 1
	}
	if err := app.LoadEnvFiles(c.StringSlice("env-file")...); err != nil {
		printEnvelope(stdout, recipe.Fail(err))
		return 1
	}
	cfg, err := app.Resolve(app.Config{
		FetchTimeout: c.Duration("timeout"),
		JournalPath:  c.String("journal"),
		Verbose:      c.Bool("verbose"),
	}, c.String("config"))
	if err != nil {
		printEnvelope(stdout, recipe.Fail(err))
		return 1
	}
	logger := app.NewLogger(stderr, cfg.LogFormat, cfg.Verbose)

	var a *adapter.Adapter
	if ex != nil {
		a = adapter.New(ex, adapter.WithLogger(logger))
	} else {
		built, err := app.New(c.Context, cfg, logger)
		if err != nil {
			printEnvelope(stdout, recipe.Fail(err))
			return 1
		}
		defer func() {
			if err := built.Close(); err != nil {
				logger.Warn().Err(err).Msg("close failed")
			}
		}()
		a = built.Adapter()
	}

	env := a.Handle(c.Context, adapter.Request{URL: c.Args().First()})
	printEnvelope(stdout, env)
	if !env.Success {
		return 1
	}
	if path := c.String("pdf"); path != "" {
		if err := render.WritePDF(*env.Data, path); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("pdf write failed")
			return 1
		}
		logger.Info().Str("path", path).Msg("wrote recipe card")
	}
	return 0
}

func printEnvelope(w io.Writer, env recipe.Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		b = []byte(`{"success":false,"error":"internal error"}`)
	}
	fmt.Fprintln(w, string(b))
}
