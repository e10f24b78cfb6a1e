package providers

import (
	"context"
	"log/slog"
)

// softScheduleProvider turns schedule failures into an empty active set.
type softScheduleProvider struct {
	next   ScheduleProvider
	logger *slog.Logger
	name   string
}

// NewSoftScheduleProvider never returns an error: failures are logged and
// reported as an empty set, which callers treat as an unknown schedule.
func NewSoftScheduleProvider(next ScheduleProvider, name string, logger *slog.Logger) ScheduleProvider {
	return &softScheduleProvider{next: next, logger: logger, name: name}
}

func (p *softScheduleProvider) ActiveTeams(ctx context.Context, date string) (map[string]struct{}, error) {
	if p.next == nil {
		return map[string]struct{}{}, nil
	}
	active, err := p.next.ActiveTeams(ctx, date)
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "schedule unavailable, skipping adjustment",
			slog.String("date", date),
			slog.Any("err", err),
		)
		return map[string]struct{}{}, nil
	}
	if active == nil {
		active = map[string]struct{}{}
	}
	return active, nil
}
