// Package server exposes the dataset and its charts over HTTP.
//
// Routes:
//
//	GET /                                  HTML page of every session
//	GET /sessions                          session list (JSON)
//	GET /sessions/{no}                     one session (JSON)
//	GET /sessions/{no}/{chamber}.{format}  chart as svg, json, png or pdf
//	GET /healthz                           liveness and dataset size
//	GET /metrics                           Prometheus metrics
//
// The dataset is held in memory and replaced atomically by [Server.SetDataset],
// typically from a [Scheduler] that re-runs the collector.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Server serves one dataset.
type Server struct {
	mu        sync.RWMutex
	ds        congress.Dataset
	updatedAt time.Time

	runner  *pipeline.Runner
	render  pipeline.Options
	logger  *log.Logger
	metrics *Metrics
}

// Option configures a [Server].
type Option func(*Server)

// WithRunner sets the pipeline runner used for rendering (and its cache).
func WithRunner(r *pipeline.Runner) Option { return func(s *Server) { s.runner = r } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics enables request metrics and the /metrics route.
func WithMetrics(m *Metrics) Option { return func(s *Server) { s.metrics = m } }

// WithRenderOptions sets the default chart size and style.
func WithRenderOptions(opts pipeline.Options) Option {
	return func(s *Server) { s.render = opts }
}

// New creates a Server for ds.
func New(ds congress.Dataset, opts ...Option) *Server {
	s := &Server{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.SetDataset(ds)
	return s
}

// Dataset returns the current dataset. Callers must not modify it.
func (s *Server) Dataset() congress.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// SetDataset replaces the served dataset.
func (s *Server) SetDataset(ds congress.Dataset) {
	s.mu.Lock()
	s.ds = ds
	s.updatedAt = time.Now()
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.datasetSessions.Set(float64(len(ds)))
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Get("/sessions", s.handleSessions)
	r.Get("/sessions/{no}", s.handleSession)
	r.Get("/sessions/{no}/{chamber}.{format}", s.handleChart)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "sessions", len(s.Dataset()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}
