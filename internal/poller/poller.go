package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
)

const (
	defaultSchedule = "0 9 * * *"
	defaultTimeout  = 2 * time.Minute
	readyFailures   = 3
)

// ErrBusy is returned by TryRun while another run is in progress.
var ErrBusy = errors.New("lineup run already in progress")

// Runner performs one lineup pass.
type Runner interface {
	Run(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error)
}

// Config controls when scheduled runs fire.
type Config struct {
	Schedule   string
	Location   *time.Location
	RunOnStart bool
	Timeout    time.Duration
}

// Poller fires lineup runs on a cron schedule. Scheduled and manual runs
// share one mutex so they never overlap.
type Poller struct {
	runner  Runner
	cfg     Config
	logger  *slog.Logger
	cron    *cron.Cron
	entryID cron.EntryID
	now     func() time.Time

	runMu    sync.Mutex
	startMu  sync.Mutex
	started  bool
	stopOnce sync.Once
	wg       sync.WaitGroup

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of scheduled and manual runs.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	LastOutcome         string    `json:"lastOutcome,omitempty"`
	LastRunID           string    `json:"lastRunId,omitempty"`
	NextRun             time.Time `json:"nextRun"`
	Running             bool      `json:"running"`
}

// IsReady reports whether a run has succeeded and runs are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// New constructs a Poller. The schedule uses standard five-field cron syntax.
func New(runner Runner, cfg Config, logger *slog.Logger) (*Poller, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = defaultSchedule
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("invalid run schedule %q: %w", cfg.Schedule, err)
	}

	cl := cronLogger{logger: logger}
	return &Poller{
		runner: runner,
		cfg:    cfg,
		logger: logger,
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		now: time.Now,
	}, nil
}

// Start schedules runs until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return nil
	}

	id, err := p.cron.AddFunc(p.cfg.Schedule, func() {
		_, _ = p.Run(ctx, "")
	})
	if err != nil {
		return fmt.Errorf("schedule lineup run: %w", err)
	}
	p.entryID = id
	p.started = true
	p.cron.Start()

	logging.Info(p.logger, "scheduler started",
		"schedule", p.cfg.Schedule,
		"location", p.cfg.Location.String(),
		"next_run", p.cron.Entry(id).Next,
	)

	if p.cfg.RunOnStart {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			_, _ = p.Run(ctx, "")
		}()
	}

	go func() {
		<-ctx.Done()
		_ = p.Stop(context.Background())
	}()
	return nil
}

// Stop halts scheduling and waits for an in-flight run or ctx, whichever ends first.
func (p *Poller) Stop(ctx context.Context) error {
	var err error
	p.stopOnce.Do(func() {
		cronDone := p.cron.Stop().Done()
		waitDone := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(waitDone)
		}()
		for _, done := range []<-chan struct{}{cronDone, waitDone} {
			select {
			case <-done:
			case <-ctx.Done():
				err = ctx.Err()
				return
			}
		}
		logging.Info(p.logger, "scheduler stopped")
	})
	return err
}

// Run performs a lineup pass, waiting for any run already in progress.
func (p *Poller) Run(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.runLocked(ctx, date, opts...)
}

// TryRun performs a lineup pass unless one is already running.
func (p *Poller) TryRun(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error) {
	if !p.runMu.TryLock() {
		return setter.Result{}, ErrBusy
	}
	defer p.runMu.Unlock()
	return p.runLocked(ctx, date, opts...)
}

func (p *Poller) runLocked(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := p.now()
	p.recordAttempt(start)
	res, err := p.runner.Run(runCtx, date, opts...)
	if err != nil {
		p.recordFailure(res, err, start)
		return res, err
	}
	p.recordSuccess(res, start)
	return res, nil
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
	p.status.Running = true
}

func (p *Poller) recordSuccess(res setter.Result, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastOutcome = res.Outcome
	p.status.LastRunID = res.RunID
	p.status.Running = false
}

func (p *Poller) recordFailure(res setter.Result, err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
	p.status.LastOutcome = res.Outcome
	p.status.LastRunID = res.RunID
	p.status.Running = false
}

// Status returns a snapshot of recent run health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	st := p.status
	p.statusMu.RUnlock()

	p.startMu.Lock()
	if p.started {
		st.NextRun = p.cron.Entry(p.entryID).Next
	}
	p.startMu.Unlock()
	return st
}

// cronLogger routes scheduler logs through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug(l.logger, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error(l.logger, "cron: "+msg, err, keysAndValues...)
}
