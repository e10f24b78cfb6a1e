package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

// rateLimitedProvider wraps a TeamProvider and spaces out upstream calls.
// Roster reads and lineup writes share one limiter.
type rateLimitedProvider struct {
	next    TeamProvider
	limiter *rate.Limiter
	logger  *slog.Logger
	name    string
}

// NewRateLimitedProvider returns a TeamProvider that allows one call per interval.
// Calls block until a token is available or the context ends.
func NewRateLimitedProvider(next TeamProvider, name string, interval time.Duration, logger *slog.Logger) TeamProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
		name:    name,
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "rate-limited call canceled", slog.String("op", op), slog.Any("err", err))
		return err
	}
	return nil
}

func (p *rateLimitedProvider) FetchRoster(ctx context.Context, teamKey string) ([]players.Player, error) {
	if err := p.wait(ctx, "fetch_roster"); err != nil {
		return nil, err
	}
	return p.next.FetchRoster(ctx, teamKey)
}

func (p *rateLimitedProvider) SubmitLineup(ctx context.Context, teamKey, date string, a lineup.Assignment) (int, string, error) {
	if err := p.wait(ctx, "submit_lineup"); err != nil {
		return 0, "", err
	}
	return p.next.SubmitLineup(ctx, teamKey, date, a)
}
