package main

import (
	"context"
	"os"
	"time"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gorecipe/internal/app"
	"github.com/hyperifyio/gorecipe/internal/lambda"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	// Lambda configuration comes from the function's environment only.
	if os.Getenv("LOG_FORMAT") == "" {
		_ = os.Setenv("LOG_FORMAT", "json")
	}
	cfg, err := app.Resolve(app.Config{}, os.Getenv("CONFIG_FILE"))
	log.Logger = app.NewLogger(os.Stdout, cfg.LogFormat, cfg.Verbose)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	a, err := app.New(context.Background(), cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("init app")
	}

	// Start never returns; the journal, if any, lives as long as the process.
	h := &lambda.Handler{Adapter: a.Adapter(), Logger: log.Logger}
	awslambda.Start(h.Handle)
}
