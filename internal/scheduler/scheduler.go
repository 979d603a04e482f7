// Package scheduler periodically recomputes and persists object priorities,
// which drift as passports age.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gidroatlas/gidroatlas/pkg/lifecycle"
)

// Recalculator recomputes priorities as of now and returns the number updated.
type Recalculator interface {
	Recalculate(ctx context.Context, now time.Time) (int, error)
}

// Scheduler runs the recalculation job on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	target  Recalculator
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time

	ctx     context.Context
	running atomic.Bool
	lastRun atomic.Pointer[Run]
}

// Run records the outcome of one recalculation.
type Run struct {
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Updated  int           `json:"updated"`
	Err      string        `json:"error,omitempty"`
}

// New creates a Scheduler for a finalized config. The job is not scheduled
// until Start.
func New(cfg *Config, target Recalculator, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		target:  target,
		timeout: cfg.TimeoutDuration(),
		logger:  logger.With("system", "scheduler"),
		now:     time.Now,
		ctx:     context.Background(),
	}

	if _, err := s.cron.AddFunc(cfg.Spec, s.tick); err != nil {
		return nil, fmt.Errorf("schedule recalculation: %w", err)
	}
	return s, nil
}

// Start registers the cron runner with the lifecycle coordinator. Runs are
// bound to the coordinator context and shutdown waits for a running job.
func (s *Scheduler) Start(lc *lifecycle.Coordinator) error {
	s.ctx = lc.Context()

	lc.OnStartup(func() {
		s.cron.Start()
		s.logger.Info("scheduler started", "next", s.Next())
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-s.cron.Stop().Done()
		s.logger.Info("scheduler stopped")
	})

	return nil
}

// Next returns the next scheduled run, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// LastRun returns the most recent run, or nil if none has finished.
func (s *Scheduler) LastRun() *Run {
	return s.lastRun.Load()
}

func (s *Scheduler) tick() {
	if _, err := s.RunNow(s.ctx); err != nil {
		s.logger.Error("scheduled recalculation failed", "error", err)
	}
}

// RunNow performs one recalculation. Overlapping runs are skipped.
func (s *Scheduler) RunNow(ctx context.Context) (*Run, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("recalculation already running, skipped")
		return nil, ErrBusy
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	run := &Run{Started: s.now()}
	updated, err := s.target.Recalculate(ctx, run.Started)
	run.Duration = time.Since(run.Started)
	run.Updated = updated
	if err != nil {
		run.Err = err.Error()
	}
	s.lastRun.Store(run)

	if err != nil {
		return run, fmt.Errorf("recalculate priorities: %w", err)
	}
	s.logger.Info("priorities recalculated", "updated", updated, "duration", run.Duration)
	return run, nil
}
