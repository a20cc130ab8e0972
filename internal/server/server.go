// Package server exposes formula analysis over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/leaplogic/internal/analysis"
	"github.com/leapstack-labs/leaplogic/pkg/formula"
	"github.com/leapstack-labs/leaplogic/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes caps the size of an /analyze request body.
const maxBodyBytes = 1 << 20

// Config holds configuration for the API server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxFormulas     int
	Concurrency     int
	Logger          *slog.Logger
}

// Server is the analysis API server.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	maxFormulas     int
	concurrency     int
	logger          *slog.Logger
}

// New creates a new API server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		maxFormulas:     cfg.MaxFormulas,
		concurrency:     cfg.Concurrency,
		logger:          logger,
	}
}

// Handler returns the router serving the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/operators", s.handleOperators)
	r.With(middleware.AllowContentType("application/json")).Post("/analyze", s.handleAnalyze)

	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting API server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// requestLogger logs one line per request through the server's slog logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// AnalyzeRequest is the body of POST /analyze. Either field may be used;
// Formula is analyzed first when both are set.
type AnalyzeRequest struct {
	Formula  string   `json:"formula,omitempty"`
	Formulas []string `json:"formulas,omitempty"`
}

// AnalyzeResponse is the body returned by POST /analyze.
type AnalyzeResponse struct {
	Reports []*analysis.Report `json:"reports"`
	Summary analysis.Summary   `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	lines := req.Formulas
	if req.Formula != "" {
		lines = append([]string{req.Formula}, lines...)
	}
	if len(lines) == 0 {
		s.writeError(w, http.StatusBadRequest, "no formula given")
		return
	}
	if len(lines) > s.maxFormulas {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("too many formulas: %d > %d", len(lines), s.maxFormulas))
		return
	}

	reports, err := analysis.AnalyzeAll(r.Context(), s.logger, lines, s.concurrency)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, AnalyzeResponse{Reports: reports, Summary: analysis.Summarize(reports)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"max_propositions": formula.MaxPropositions,
	})
}

func (s *Server) handleOperators(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, parser.Operators())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
