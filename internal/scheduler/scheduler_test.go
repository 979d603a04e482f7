package scheduler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gidroatlas/gidroatlas/internal/scheduler"
	"github.com/gidroatlas/gidroatlas/pkg/lifecycle"
)

type recalculator struct {
	mu      sync.Mutex
	calls   []time.Time
	updated int
	err     error
	block   chan struct{}
}

func (r *recalculator) Recalculate(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	r.calls = append(r.calls, now)
	r.mu.Unlock()

	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return r.updated, r.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func finalized(t *testing.T, cfg scheduler.Config) *scheduler.Config {
	t.Helper()
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func TestRunNow(t *testing.T) {
	target := &recalculator{updated: 3}
	s, err := scheduler.New(finalized(t, scheduler.Config{}), target, discard())
	if err != nil {
		t.Fatal(err)
	}

	run, err := s.RunNow(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.Updated != 3 || run.Err != "" {
		t.Errorf("run: got %+v", run)
	}
	if s.LastRun() != run {
		t.Error("last run not recorded")
	}
	if len(target.calls) != 1 || target.calls[0].IsZero() {
		t.Errorf("calls: got %v", target.calls)
	}
}

func TestRunNowFailure(t *testing.T) {
	target := &recalculator{err: errors.New("db down")}
	s, err := scheduler.New(finalized(t, scheduler.Config{}), target, discard())
	if err != nil {
		t.Fatal(err)
	}

	run, err := s.RunNow(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if run == nil || run.Err != "db down" {
		t.Errorf("run: got %+v", run)
	}
}

func TestRunNowSkipsOverlap(t *testing.T) {
	target := &recalculator{block: make(chan struct{})}
	s, err := scheduler.New(finalized(t, scheduler.Config{}), target, discard())
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		s.RunNow(context.Background())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		target.mu.Lock()
		started := len(target.calls) == 1
		target.mu.Unlock()
		if started {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first run never started")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, err := s.RunNow(context.Background()); !errors.Is(err, scheduler.ErrBusy) {
		t.Errorf("overlapping run: got %v, want ErrBusy", err)
	}

	close(target.block)
	<-done
}

func TestRunNowTimeout(t *testing.T) {
	target := &recalculator{block: make(chan struct{})}
	s, err := scheduler.New(finalized(t, scheduler.Config{Timeout: "20ms"}), target, discard())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.RunNow(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want deadline exceeded", err)
	}
}

func TestLifecycle(t *testing.T) {
	s, err := scheduler.New(finalized(t, scheduler.Config{Spec: "@every 1h"}), &recalculator{}, discard())
	if err != nil {
		t.Fatal(err)
	}

	lc := lifecycle.New()
	if err := s.Start(lc); err != nil {
		t.Fatal(err)
	}
	lc.WaitForStartup()

	if next := s.Next(); next.IsZero() || time.Until(next) > time.Hour+time.Minute {
		t.Errorf("next run: %v", next)
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestConfig(t *testing.T) {
	cfg := scheduler.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	if !cfg.IsEnabled() || cfg.Spec != "@daily" || cfg.TimeoutDuration() != 5*time.Minute {
		t.Errorf("defaults: got %+v", cfg)
	}

	t.Setenv("TEST_SCHED_ENABLED", "false")
	t.Setenv("TEST_SCHED_SPEC", "0 3 * * *")
	env := scheduler.Config{}
	if err := env.Finalize(&scheduler.Env{Enabled: "TEST_SCHED_ENABLED", Spec: "TEST_SCHED_SPEC"}); err != nil {
		t.Fatal(err)
	}
	if env.IsEnabled() || env.Spec != "0 3 * * *" {
		t.Errorf("env: got %+v", env)
	}

	for _, spec := range []string{"every day", "61 * * * *"} {
		bad := scheduler.Config{Spec: spec}
		if err := bad.Finalize(nil); err == nil {
			t.Errorf("spec %q: expected error", spec)
		}
	}
}

func TestStatusHandler(t *testing.T) {
	target := &recalculator{updated: 4}
	s, err := scheduler.New(finalized(t, scheduler.Config{}), target, discard())
	if err != nil {
		t.Fatal(err)
	}
	h := scheduler.NewHandler(s, discard())

	status := func() scheduler.Status {
		t.Helper()
		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest("GET", "/scheduler", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d", rec.Code)
		}
		var got scheduler.Status
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		return got
	}

	if got := status(); got.LastRun != nil || got.Running {
		t.Errorf("before any run: got %+v", got)
	}

	if _, err := s.RunNow(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := status()
	if got.LastRun == nil || got.LastRun.Updated != 4 || got.LastRun.Err != "" {
		t.Errorf("last run: got %+v", got.LastRun)
	}
}
