package testutil

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/poller"
)

// StubPoller stands in for the lineup scheduler. Run records the requested
// date and whether a dry run was asked for.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	RunCalls   int
	Err        error // returned by Stop
	StartErr   error
	RunErr     error
	StatusVal  poller.Status
	ResultVal  setter.Result
	Dates      []string
	DryRuns    []bool

	mu sync.Mutex
}

func (p *StubPoller) Start(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StartCalls++
	return p.StartErr
}

func (p *StubPoller) Run(_ context.Context, date string, opts ...setter.RunOption) (setter.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RunCalls++
	p.Dates = append(p.Dates, date)
	dry := setter.DryRunRequested(p.ResultVal.DryRun, opts...)
	p.DryRuns = append(p.DryRuns, dry)

	res := p.ResultVal
	res.Date = date
	res.DryRun = dry
	return res, p.RunErr
}

func (p *StubPoller) TryRun(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error) {
	return p.Run(ctx, date, opts...)
}

func (p *StubPoller) Stop(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// StubHTTPServer fakes the server's listener. ListenErr is returned from
// ListenAndServe (use http.ErrServerClosed for a clean close). A non-nil
// Block makes Shutdown wait for it to close or for ctx to end.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	ListenCalls   atomic.Int32
	ShutdownCalls int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.ShutdownCalls++
	if s.Block == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Block:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}
