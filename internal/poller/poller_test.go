package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/teststubs"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPoller(t *testing.T, runner Runner, cfg Config) *Poller {
	t.Helper()
	p, err := New(runner, cfg, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	if _, err := New(&teststubs.StubRunner{}, Config{Schedule: "not a cron"}, nil); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	p := newTestPoller(t, &teststubs.StubRunner{}, Config{})
	if p.cfg.Schedule != defaultSchedule {
		t.Fatalf("expected default schedule, got %q", p.cfg.Schedule)
	}
	if p.cfg.Location != time.UTC {
		t.Fatalf("expected UTC location, got %v", p.cfg.Location)
	}
	if p.cfg.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %v", p.cfg.Timeout)
	}
}

func TestRunRecordsSuccess(t *testing.T) {
	runner := &teststubs.StubRunner{Result: setter.Result{RunID: "run-1", Outcome: "submitted"}}
	p := newTestPoller(t, runner, Config{})

	res, err := p.Run(context.Background(), "2024-01-15", setter.WithDryRun(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Date != "2024-01-15" {
		t.Fatalf("expected date passthrough, got %q", res.Date)
	}
	if dr := runner.DryRuns(); len(dr) != 1 || !dr[0] {
		t.Fatalf("expected dry run option forwarded, got %v", dr)
	}

	st := p.Status()
	if !st.IsReady() {
		t.Fatalf("expected ready after success, got %+v", st)
	}
	if st.LastRunID != "run-1" || st.LastOutcome != "submitted" {
		t.Fatalf("unexpected status %+v", st)
	}
	if st.Running {
		t.Fatalf("expected running to be cleared")
	}
}

func TestRunRecordsFailures(t *testing.T) {
	runner := &teststubs.StubRunner{Err: errors.New("boom"), Result: setter.Result{Outcome: "failed"}}
	p := newTestPoller(t, runner, Config{})

	for i := 0; i < readyFailures; i++ {
		if _, err := p.Run(context.Background(), ""); err == nil {
			t.Fatalf("expected error")
		}
	}

	st := p.Status()
	if st.ConsecutiveFailures != readyFailures {
		t.Fatalf("expected %d failures, got %d", readyFailures, st.ConsecutiveFailures)
	}
	if st.LastError != "boom" || st.LastOutcome != "failed" {
		t.Fatalf("unexpected status %+v", st)
	}
	if st.IsReady() {
		t.Fatalf("expected not ready")
	}
}

func TestSuccessResetsFailures(t *testing.T) {
	runner := &teststubs.StubRunner{Err: errors.New("boom")}
	p := newTestPoller(t, runner, Config{})
	_, _ = p.Run(context.Background(), "")

	runner.Err = nil
	_, _ = p.Run(context.Background(), "")

	st := p.Status()
	if st.ConsecutiveFailures != 0 || st.LastError != "" {
		t.Fatalf("expected failures reset, got %+v", st)
	}
}

func TestStatusIsReady(t *testing.T) {
	cases := []struct {
		name string
		st   Status
		want bool
	}{
		{"never succeeded", Status{}, false},
		{"healthy", Status{LastSuccess: time.Now()}, true},
		{"few failures", Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}, true},
		{"too many failures", Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}, false},
	}
	for _, tc := range cases {
		if got := tc.st.IsReady(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestTryRunReturnsBusyWhileRunning(t *testing.T) {
	runner := &teststubs.StubRunner{Block: make(chan struct{}), Notify: make(chan struct{})}
	p := newTestPoller(t, runner, Config{})

	done := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background(), "")
		done <- err
	}()
	<-runner.Notify

	if _, err := p.TryRun(context.Background(), ""); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if !p.Status().Running {
		t.Fatalf("expected running status")
	}

	close(runner.Block)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.TryRun(context.Background(), ""); err != nil {
		t.Fatalf("expected run after release, got %v", err)
	}
}

func TestRunAppliesTimeout(t *testing.T) {
	runner := &teststubs.StubRunner{Block: make(chan struct{})}
	p := newTestPoller(t, runner, Config{Timeout: 10 * time.Millisecond})

	if _, err := p.Run(context.Background(), ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestStartRunsOnStartAndStops(t *testing.T) {
	runner := &teststubs.StubRunner{Notify: make(chan struct{})}
	p := newTestPoller(t, runner, Config{RunOnStart: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// second start is a no-op
	if err := p.Start(ctx); err != nil {
		t.Fatalf("unexpected error on second start: %v", err)
	}

	select {
	case <-runner.Notify:
	case <-time.After(time.Second):
		t.Fatalf("expected run on start")
	}

	if p.Status().NextRun.IsZero() {
		t.Fatalf("expected next run to be scheduled")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
	// stop is idempotent
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("unexpected error on second stop: %v", err)
	}
	if got := runner.Calls.Load(); got != 1 {
		t.Fatalf("expected one run, got %d", got)
	}
}

func TestStartWithoutRunOnStartDoesNotRun(t *testing.T) {
	runner := &teststubs.StubRunner{}
	p := newTestPoller(t, runner, Config{Schedule: "0 0 1 1 *"})

	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	_ = p.Stop(stopCtx)
	if got := runner.Calls.Load(); got != 0 {
		t.Fatalf("expected no runs, got %d", got)
	}
}

func TestCronLoggerHandlesNil(t *testing.T) {
	l := cronLogger{}
	l.Info("tick", "k", "v")
	l.Error(errors.New("boom"), "failed")

	l = cronLogger{logger: quietLogger()}
	l.Info("tick")
	l.Error(errors.New("boom"), "failed")
}
