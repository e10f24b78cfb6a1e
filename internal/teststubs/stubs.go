package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/snapshots"
)

// StubRunner is a test double for a lineup run.
type StubRunner struct {
	Result setter.Result
	Err    error
	Calls  atomic.Int32
	// Notify is closed on the first call.
	Notify chan struct{}
	// Block, when set, holds each run until it is closed or ctx ends.
	Block chan struct{}

	mu      sync.Mutex
	dates   []string
	dryRuns []bool
}

// Run records the call and returns the configured result and error.
func (s *StubRunner) Run(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error) {
	s.mu.Lock()
	s.dates = append(s.dates, date)
	s.dryRuns = append(s.dryRuns, setter.DryRunRequested(false, opts...))
	s.mu.Unlock()

	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)

	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return setter.Result{}, ctx.Err()
		}
	}
	res := s.Result
	if date != "" {
		res.Date = date
	}
	return res, s.Err
}

// Dates returns the dates passed to Run in call order.
func (s *StubRunner) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dates...)
}

// DryRuns returns whether each call asked for a dry run.
func (s *StubRunner) DryRuns() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.dryRuns...)
}

// StubRecordStore is a test double for snapshots.Store.
type StubRecordStore struct {
	Records  map[string]lineup.Record // keyed by date
	LoadErr  error
	DatesErr error
}

// LoadRecord returns the record for date if present.
func (s *StubRecordStore) LoadRecord(date string) (lineup.Record, error) {
	if s.LoadErr != nil {
		return lineup.Record{}, s.LoadErr
	}
	rec, ok := s.Records[date]
	if !ok {
		return lineup.Record{}, snapshots.ErrNotFound
	}
	return rec, nil
}

// Dates returns the stored dates in no particular order.
func (s *StubRecordStore) Dates() ([]string, error) {
	if s.DatesErr != nil {
		return nil, s.DatesErr
	}
	out := make([]string, 0, len(s.Records))
	for d := range s.Records {
		out = append(out, d)
	}
	return out, nil
}

// StubHistoryWriter records written lineup records.
type StubHistoryWriter struct {
	mu      sync.Mutex
	Written []lineup.Record
	Err     error
}

// WriteRecord stores rec for verification in tests.
func (w *StubHistoryWriter) WriteRecord(rec lineup.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Written = append(w.Written, rec)
	return nil
}
