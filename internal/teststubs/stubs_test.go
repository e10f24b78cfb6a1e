package teststubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/snapshots"
)

func TestStubRunnerTracksCalls(t *testing.T) {
	err := errors.New("boom")
	r := &StubRunner{Result: setter.Result{Outcome: "submitted"}, Err: err, Notify: make(chan struct{})}

	res, got := r.Run(context.Background(), "2024-01-01", setter.WithDryRun(true))
	if !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if res.Date != "2024-01-01" || res.Outcome != "submitted" {
		t.Fatalf("unexpected result %+v", res)
	}
	if r.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", r.Calls.Load())
	}
	select {
	case <-r.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
	if dr := r.DryRuns(); len(dr) != 1 || !dr[0] {
		t.Fatalf("expected dry run recorded, got %v", dr)
	}

	// second call must not panic on the closed channel
	_, _ = r.Run(context.Background(), "")
	if d := r.Dates(); len(d) != 2 || d[1] != "" {
		t.Fatalf("unexpected dates %v", d)
	}
}

func TestStubRunnerBlockHonorsContext(t *testing.T) {
	r := &StubRunner{Block: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := r.Run(ctx, ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestStubRecordStore(t *testing.T) {
	s := &StubRecordStore{Records: map[string]lineup.Record{"2024-01-01": {RunID: "r1"}}}

	rec, err := s.LoadRecord("2024-01-01")
	if err != nil || rec.RunID != "r1" {
		t.Fatalf("expected record, got %+v %v", rec, err)
	}
	if _, err := s.LoadRecord("2024-01-02"); !errors.Is(err, snapshots.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if dates, _ := s.Dates(); len(dates) != 1 {
		t.Fatalf("expected one date, got %v", dates)
	}

	s.LoadErr = errors.New("load")
	if _, err := s.LoadRecord("2024-01-01"); err == nil {
		t.Fatalf("expected load error")
	}
	s.DatesErr = errors.New("dates")
	if _, err := s.Dates(); err == nil {
		t.Fatalf("expected dates error")
	}
}

func TestStubHistoryWriter(t *testing.T) {
	w := &StubHistoryWriter{}
	if err := w.WriteRecord(lineup.Record{Date: "2024-01-01"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Written) != 1 {
		t.Fatalf("expected one record, got %d", len(w.Written))
	}
	w.Err = errors.New("disk")
	if err := w.WriteRecord(lineup.Record{}); err == nil {
		t.Fatalf("expected error")
	}
}
