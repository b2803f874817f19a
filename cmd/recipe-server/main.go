package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hyperifyio/gorecipe/internal/app"
	"github.com/hyperifyio/gorecipe/internal/server"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:    "recipe-server",
		Usage:   "serve recipe extraction over HTTP",
		Version: app.VersionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default :8080, env ADDR or PORT)"},
			&cli.StringFlag{Name: "config", Usage: "YAML or JSON config file"},
			&cli.StringSliceFlag{Name: "env-file", Value: cli.NewStringSlice(".env"), Usage: "dotenv files loaded before reading env vars"},
			&cli.StringFlag{Name: "user-agent", Usage: "user agent sent when the client supplies none"},
			&cli.DurationFlag{Name: "timeout", Usage: "page fetch timeout (default 30s)"},
			&cli.StringFlag{Name: "journal", Usage: "SQLite file recording extraction attempts"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
		},
		Action: serve,
	}
	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("server failed")
		stop()
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	if err := app.LoadEnvFiles(c.StringSlice("env-file")...); err != nil {
		return err
	}
	cfg, err := app.Resolve(app.Config{
		Addr:         c.String("addr"),
		UserAgent:    c.String("user-agent"),
		FetchTimeout: c.Duration("timeout"),
		JournalPath:  c.String("journal"),
		Verbose:      c.Bool("verbose"),
	}, c.String("config"))
	if err != nil {
		return err
	}
	log.Logger = app.NewLogger(os.Stderr, cfg.LogFormat, cfg.Verbose)

	a, err := app.New(c.Context, cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}()

	log.Info().Str("version", app.BuildVersion).Str("commit", app.BuildCommit).Msg("recipe-server starting")
	return server.Run(c.Context, cfg.Addr, server.NewMux(a.Adapter(), log.Logger), log.Logger)
}
