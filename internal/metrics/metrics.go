package metrics

import (
	"sync"
	"time"
)

type runStats struct {
	runs          int
	failures      int
	lastOutcome   string
	submissions   map[int]int
	notifications map[string]int
	notifyErrors  map[string]int
}

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// lineup runs, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	runs  runStats
	otel  *otelInstruments
}

// NewRecorder returns an in-memory recorder with no exporter.
func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		runs: runStats{
			submissions:   make(map[int]int),
			notifications: make(map[string]int),
			notifyErrors:  make(map[string]int),
		},
		otel: otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// Snapshot returns a copy of the current stats for the provider.
func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRun tracks a lineup run and how it ended.
func (r *Recorder) RecordRun(duration time.Duration, outcome string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.runs.runs++
	r.runs.lastOutcome = outcome
	if err != nil {
		r.runs.failures++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRun(duration, outcome, err)
	}
}

// RecordSubmission tracks a lineup submission by upstream status code.
func (r *Recorder) RecordSubmission(status int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.runs.submissions[status]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSubmission(status)
	}
}

// RecordNotification tracks a delivery attempt on a notification channel.
func (r *Recorder) RecordNotification(channel string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.runs.notifications[channel]++
	if err != nil {
		r.runs.notifyErrors[channel]++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordNotification(channel, err)
	}
}

// RunSnapshot summarizes lineup runs seen so far.
type RunSnapshot struct {
	Runs          int
	Failures      int
	LastOutcome   string
	Submissions   map[int]int
	Notifications map[string]int
	NotifyErrors  map[string]int
}

// Runs returns a copy of the run counters.
func (r *Recorder) Runs() RunSnapshot {
	if r == nil {
		return RunSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSnapshot{
		Runs:          r.runs.runs,
		Failures:      r.runs.failures,
		LastOutcome:   r.runs.lastOutcome,
		Submissions:   copyCounts(r.runs.submissions),
		Notifications: copyCounts(r.runs.notifications),
		NotifyErrors:  copyCounts(r.runs.notifyErrors),
	}
}

func copyCounts[K comparable](in map[K]int) map[K]int {
	out := make(map[K]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
