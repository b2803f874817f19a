// Package server is the HTTP shell around the extraction adapter.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/gorecipe/internal/adapter"
	"github.com/hyperifyio/gorecipe/internal/recipe"
)

// Handler answers a request with the adapter's result.
type Handler interface {
	Handle(ctx context.Context, req adapter.Request) recipe.Envelope
}

// NewMux routes GET / and GET /api/extract-recipe to h, plus /healthz.
func NewMux(h Handler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	extract := extractHandler(h)
	mux.Handle("/api/extract-recipe", extract)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []byte(`{"status":"ok"}`))
	})
	mux.Handle("/", exactRoot(extract))
	return AccessLog(logger, mux)
}

func extractHandler(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			writeJSON(w, http.StatusMethodNotAllowed, errorJSON("method not allowed"))
			return
		}
		env := h.Handle(r.Context(), adapter.Request{
			URL:       r.URL.Query().Get("url"),
			UserAgent: r.Header.Get("User-Agent"),
		})
		status, body := Respond(env)
		writeJSON(w, status, body)
	})
}

// exactRoot keeps the catch-all pattern from swallowing unknown paths.
func exactRoot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeJSON(w, http.StatusNotFound, errorJSON("not found"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownGrace.
func Run(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, handler, logger)
}

const shutdownGrace = 10 * time.Second

// Serve is Run over an existing listener.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// covers a full page fetch on the request path
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
