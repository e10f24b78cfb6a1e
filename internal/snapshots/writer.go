package snapshots

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/timeutil"
)

const defaultRetentionDays = 30

// Writer persists one lineup record per date plus a manifest, pruning old dates.
// A later run on the same date replaces the earlier record.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
	mu            sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteRecord stores rec under its date and refreshes the manifest.
func (w *Writer) WriteRecord(rec lineup.Record) error {
	if w == nil {
		return fmt.Errorf("lineup writer not configured")
	}
	if _, err := timeutil.ParseDate(rec.Date); err != nil {
		return fmt.Errorf("record date must be YYYY-MM-DD: %q", rec.Date)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := LineupRecordPath(w.basePath, rec.Date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := writeJSONAtomic(target, rec); err != nil {
		return err
	}
	return w.updateManifest(rec)
}

func (w *Writer) updateManifest(rec lineup.Record) error {
	m, _ := readManifest(manifestPath(w.basePath), w.retentionDays)
	now := w.now().UTC()

	dates, err := listDates(w.basePath)
	if err != nil {
		return err
	}
	m.Lineups.Dates = w.prune(dates, now, rec.Date)
	m.Lineups.LastRun = now
	m.Lineups.LastRunID = rec.RunID
	m.Lineups.LastDate = rec.Date
	m.Lineups.LastOutcome = rec.Outcome
	m.Retention.LineupDays = w.retentionDays
	return writeManifest(w.basePath, m, now)
}

// prune drops dates older than the retention window, except current.
func (w *Writer) prune(dates []string, now time.Time, current string) []string {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err == nil && d != current && parsed.Before(cutoff) {
			_ = os.Remove(LineupRecordPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
