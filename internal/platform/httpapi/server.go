// Package httpapi exposes the rule engine, the leaderboard and online match
// history as a small JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-rps/internal/game"
	"github.com/vovakirdan/tui-rps/internal/multiplayer"
	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

// Options configures a Server. Every field is optional.
type Options struct {
	Store       *storage.Store
	Coordinator *multiplayer.Coordinator // Reported by /health
	Logger      *log.Logger
	Seed        int64 // Seed for computer moves, 0 = time based
}

// Server handles HTTP requests.
type Server struct {
	store       *storage.Store
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
	startTime   time.Time

	mu      sync.Mutex
	dealers map[rules.Variant]*game.Game // Draw computer moves
}

// NewServer creates a new API server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rps-http",
		})
	}

	dealers := make(map[rules.Variant]*game.Game, len(rules.Variants()))
	for i, v := range rules.Variants() {
		seed := opts.Seed
		if seed != 0 {
			seed += int64(i)
		}
		dealers[v] = game.New(v, seed)
	}

	return &Server{
		store:       opts.Store,
		coordinator: opts.Coordinator,
		logger:      logger,
		startTime:   time.Now(),
		dealers:     dealers,
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrTypeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrTypeValidation, "method not allowed")
	})

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/variants", s.handleListVariants)
		r.Get("/variants/{variant}", s.handleGetVariant)
		r.Get("/variants/{variant}/slots/{slot}", s.handleSlot)
		r.Post("/rounds", s.handlePlayRound)
		r.Get("/phrase", s.handlePhrase)
		r.Get("/leaderboard/{variant}", s.handleLeaderboard)
		r.Get("/stats/{variant}", s.handleVariantStats)
		r.Get("/matches", s.handleRecentMatches)
		r.Get("/matches/{matchID}", s.handleGetMatch)
	})

	return r
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// computerMove draws a computer move for v.
func (s *Server) computerMove(v rules.Variant) rules.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dealers[v].ComputerMove()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// writeJSON writes a JSON response with proper headers.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	//nolint:errcheck // Headers are sent, nothing left to report to
	json.NewEncoder(w).Encode(data)
}
