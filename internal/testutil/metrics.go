package testutil

import (
	"testing"

	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
)

// AssertLastRun fails unless rec saw exactly runs runs and the last ended with outcome.
func AssertLastRun(t *testing.T, rec *metrics.Recorder, runs int, outcome string) {
	t.Helper()
	snap := rec.Runs()
	if snap.Runs != runs || snap.LastOutcome != outcome {
		t.Fatalf("expected %d runs ending %q, got %+v", runs, outcome, snap)
	}
}
