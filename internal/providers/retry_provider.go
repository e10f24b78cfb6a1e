package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retrier runs an operation with exponential backoff and records every attempt.
type retrier struct {
	name        string
	logger      *slog.Logger
	recorder    *metrics.Recorder
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

func newRetrier(name string, logger *slog.Logger, recorder *metrics.Recorder, maxAttempts int, initial time.Duration) *retrier {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retrier{
		name:        name,
		logger:      logger,
		recorder:    recorder,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retrier) do(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		err := fn()
		r.recorder.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.name, rl.RetryAfter)
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider retry",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("wait", wait),
			slog.Any("err", err),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider call failed",
			slog.String("op", op),
			slog.Int("attempts", attempt),
			slog.Any("err", err),
		)
		return err
	}
	return nil
}

// retryable reports whether another attempt may succeed.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	if errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	var temp interface{ Temporary() bool }
	if errors.As(err, &temp) {
		return temp.Temporary()
	}
	return true
}

// retryingTeamProvider retries roster fetches. Submissions pass through once.
type retryingTeamProvider struct {
	inner TeamProvider
	retry *retrier
}

// NewRetryingTeamProvider wraps roster fetches with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingTeamProvider(inner TeamProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) TeamProvider {
	return &retryingTeamProvider{
		inner: inner,
		retry: newRetrier(name, logger, recorder, maxAttempts, initial),
	}
}

func (p *retryingTeamProvider) FetchRoster(ctx context.Context, teamKey string) ([]players.Player, error) {
	var roster []players.Player
	err := p.retry.do(ctx, "fetch_roster", func() error {
		var err error
		roster, err = p.inner.FetchRoster(ctx, teamKey)
		return err
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (p *retryingTeamProvider) SubmitLineup(ctx context.Context, teamKey, date string, a lineup.Assignment) (int, string, error) {
	return p.inner.SubmitLineup(ctx, teamKey, date, a)
}

type retryingScheduleProvider struct {
	inner ScheduleProvider
	retry *retrier
}

// NewRetryingScheduleProvider wraps a ScheduleProvider with retries.
func NewRetryingScheduleProvider(inner ScheduleProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) ScheduleProvider {
	return &retryingScheduleProvider{
		inner: inner,
		retry: newRetrier(name, logger, recorder, maxAttempts, initial),
	}
}

func (p *retryingScheduleProvider) ActiveTeams(ctx context.Context, date string) (map[string]struct{}, error) {
	var active map[string]struct{}
	err := p.retry.do(ctx, "active_teams", func() error {
		var err error
		active, err = p.inner.ActiveTeams(ctx, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	return active, nil
}
