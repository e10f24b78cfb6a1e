package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("yahoo", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("yahoo", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("yahoo"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("yahoo"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("yahoo"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("yahoo")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("yahoo", 5*time.Second)
	rec.RecordRateLimit("yahoo", 0)

	if got := rec.RateLimitHits("yahoo"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("yahoo"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksRunsSubmissionsAndNotifications(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRun(time.Second, OutcomeUnchanged, nil)
	rec.RecordRun(time.Second, OutcomeFailed, errors.New("token"))
	rec.RecordSubmission(200)
	rec.RecordSubmission(200)
	rec.RecordSubmission(400)
	rec.RecordNotification("email", nil)
	rec.RecordNotification("email", errors.New("smtp down"))

	snap := rec.Runs()
	if snap.Runs != 2 || snap.Failures != 1 || snap.LastOutcome != OutcomeFailed {
		t.Fatalf("unexpected run snapshot %+v", snap)
	}
	if snap.Submissions[200] != 2 || snap.Submissions[400] != 1 {
		t.Fatalf("unexpected submissions %+v", snap.Submissions)
	}
	if snap.Notifications["email"] != 2 || snap.NotifyErrors["email"] != 1 {
		t.Fatalf("unexpected notifications %+v / %+v", snap.Notifications, snap.NotifyErrors)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordRun(time.Second, OutcomeFailed, nil)
	rec.RecordSubmission(500)
	rec.RecordNotification("sms", nil)
	if rec.Runs().Runs != 0 {
		t.Fatal("expected zero snapshot from nil recorder")
	}
}
