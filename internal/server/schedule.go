package server

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
)

// RefreshFunc produces a new dataset, usually by running the collector
// and saving the result.
type RefreshFunc func(ctx context.Context) (congress.Dataset, error)

// Scheduler re-runs a RefreshFunc on a cron schedule and swaps the result
// into a Server. Runs never overlap; a tick that arrives while a refresh
// is in progress is skipped.
type Scheduler struct {
	cron    *cron.Cron
	server  *Server
	refresh RefreshFunc
	logger  *log.Logger
	timeout time.Duration

	mu      sync.Mutex
	running bool
	ctx     context.Context
}

// NewScheduler parses spec, a standard 5-field cron expression such as
// "0 6 * * *" (daily at 06:00).
func NewScheduler(spec string, srv *Server, refresh RefreshFunc, logger *log.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
		server:  srv,
		refresh: refresh,
		logger:  logger,
		timeout: 30 * time.Minute,
		ctx:     context.Background(),
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(s.context()) }); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid scrape schedule %q", spec)
	}
	return s, nil
}

// Start begins scheduling. Refreshes started by the schedule are cancelled
// when ctx is.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.cron.Start()
	s.logger.Info("scrape scheduled", "next", s.Next().Format("Mon Jan 2 15:04"))
}

// Stop halts scheduling and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next returns the time of the next scheduled refresh.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if next := entries[0].Next; !next.IsZero() {
		return next
	}
	return entries[0].Schedule.Next(time.Now())
}

// RunOnce refreshes immediately. It reports whether a new dataset was
// installed.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("scrape still running, skipping tick")
		return false
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	ds, err := s.refresh(ctx)
	if err != nil {
		s.logger.Error("scheduled scrape failed", "err", err)
		return false
	}
	s.server.SetDataset(ds)
	s.logger.Info("dataset refreshed", "sessions", len(ds), "duration", time.Since(start).Round(time.Millisecond))
	return true
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}
