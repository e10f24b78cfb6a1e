package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var writerNow = time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC)

func TestWriterWritesRecordAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := fixedWriter(dir, 10, writerNow)

	writeRecord(t, w, "2024-11-20")
	requireRecordExists(t, w, "2024-11-20")

	m, err := readManifest(filepath.Join(dir, "manifest.json"), 10)
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	assertDatesEqual(t, m.Lineups.Dates, []string{"2024-11-20"})
	if m.Lineups.LastRunID != "run-2024-11-20" || !m.Lineups.LastRun.Equal(writerNow) ||
		m.Lineups.LastDate != "2024-11-20" || m.Lineups.LastOutcome != "submitted" {
		t.Fatalf("unexpected manifest %+v", m.Lineups)
	}
	if m.Retention.LineupDays != 10 {
		t.Fatalf("expected retention in manifest, got %d", m.Retention.LineupDays)
	}
}

func TestWriterPrunesOldRecords(t *testing.T) {
	dir := t.TempDir()
	w := fixedWriter(dir, 1, writerNow)

	writeRecord(t, w, "2024-11-10")
	writeRecord(t, w, "2024-11-20")

	if _, err := os.Stat(LineupRecordPath(dir, "2024-11-10")); !os.IsNotExist(err) {
		t.Fatalf("expected old record pruned, stat err %v", err)
	}
	m, _ := readManifest(filepath.Join(dir, "manifest.json"), 1)
	assertDatesEqual(t, m.Lineups.Dates, []string{"2024-11-20"})
}

func TestWriterKeepsBackfilledRecordUntilNextWrite(t *testing.T) {
	dir := t.TempDir()
	w := fixedWriter(dir, 1, writerNow)

	writeRecord(t, w, "2024-10-01")
	requireRecordExists(t, w, "2024-10-01")
}

func TestWriterReplacesSameDate(t *testing.T) {
	dir := t.TempDir()
	w := fixedWriter(dir, 10, writerNow)

	first := simpleRecord("2024-11-20")
	second := simpleRecord("2024-11-20")
	second.RunID = "second"
	if err := w.WriteRecord(first); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.WriteRecord(second); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewFSStore(dir).LoadRecord("2024-11-20")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RunID != "second" {
		t.Fatalf("expected latest record, got %s", got.RunID)
	}
}

func TestWriterRejectsBadInput(t *testing.T) {
	w := NewWriter(t.TempDir(), 0)
	if w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected default retention, got %d", w.retentionDays)
	}
	if err := w.WriteRecord(simpleRecord("")); err == nil {
		t.Fatalf("expected error for empty date")
	}
	if err := w.WriteRecord(simpleRecord("11/20/2024")); err == nil {
		t.Fatalf("expected error for bad date")
	}

	var nilWriter *Writer
	if err := nilWriter.WriteRecord(simpleRecord("2024-11-20")); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
}
