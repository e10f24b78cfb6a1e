package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = time.Minute
)

// BreakerSettings tunes when a provider circuit opens and how long it stays open.
type BreakerSettings struct {
	Name                string
	ConsecutiveFailures uint32
	Timeout             time.Duration
}

func newBreaker(settings BreakerSettings, logger *slog.Logger) *gobreaker.CircuitBreaker {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logWithProvider(context.Background(), logger, slog.LevelWarn, name, "circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// breakerScheduleProvider fails fast while the upstream schedule feed keeps erroring.
type breakerScheduleProvider struct {
	next ScheduleProvider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerScheduleProvider wraps a ScheduleProvider with a circuit breaker.
func NewBreakerScheduleProvider(next ScheduleProvider, settings BreakerSettings, logger *slog.Logger) ScheduleProvider {
	return &breakerScheduleProvider{
		next: next,
		cb:   newBreaker(settings, logger),
	}
}

func (p *breakerScheduleProvider) ActiveTeams(ctx context.Context, date string) (map[string]struct{}, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.ActiveTeams(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	active, _ := out.(map[string]struct{})
	return active, nil
}

// State reports the breaker state, mainly for tests and diagnostics.
func (p *breakerScheduleProvider) State() gobreaker.State {
	return p.cb.State()
}
