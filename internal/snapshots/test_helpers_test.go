package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

func simpleRecord(date string) lineup.Record {
	a := lineup.NewAssignment(lineup.SlotTable{{Position: "C", Capacity: 1}})
	a.Positions["C"] = []players.Player{{Key: "p1", Name: "Center", Eligible: []string{"C"}}}
	return lineup.Record{RunID: "run-" + date, Date: date, TeamKey: "t", Outcome: "submitted", Changed: true, Submitted: true, StatusCode: 200, Assignment: a}
}

func fixedWriter(dir string, retention int, now time.Time) *Writer {
	w := NewWriter(dir, retention)
	w.now = func() time.Time { return now }
	return w
}

func writeRecord(t *testing.T, w *Writer, date string) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteRecord(simpleRecord(date)); err != nil {
		t.Fatalf("failed to write record %s: %v", date, err)
	}
}

func requireRecordExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(LineupRecordPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected record for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
