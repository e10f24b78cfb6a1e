package testutil

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/nhl-lineup-service/internal/snapshots"
)

// NewTempWriter returns a lineup record writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteRecord writes SampleRecord(date) through w.
func WriteRecord(t *testing.T, w *snapshots.Writer, date string) {
	t.Helper()
	if err := writeRecordPayload(w, date); err != nil {
		t.Fatalf("failed to write record %s: %v", date, err)
	}
}

func writeRecordPayload(w *snapshots.Writer, date string) error {
	if w == nil {
		return errors.New("nil writer")
	}
	return w.WriteRecord(SampleRecord(date))
}

// RecordPath returns the expected file path for a record date.
func RecordPath(w *snapshots.Writer, date string) string {
	return snapshots.LineupRecordPath(w.BasePath(), date)
}
