package server

import (
	"log/slog"

	"github.com/preston-bernstein/nhl-lineup-service/internal/auth"
	"github.com/preston-bernstein/nhl-lineup-service/internal/config"
	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers"
)

// providerFactory assembles the providers with shared wrappers (rate limit, breaker, retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

type wrappedProviders struct {
	name     string
	team     providers.TeamProvider
	schedule providers.ScheduleProvider
}

func (f providerFactory) build(cfg config.Config, tokens *auth.Provider) wrappedProviders {
	base := selectProvider(cfg, tokens, f.logger)
	name := providerName(base.name, base.team)

	team := base.team
	schedule := base.schedule
	if base.remote {
		team = providers.NewRateLimitedProvider(team, name, cfg.Yahoo.RateInterval, f.logger)
		schedule = providers.NewBreakerScheduleProvider(schedule, providers.BreakerSettings{Name: base.scheduleName}, f.logger)
	}
	team = providers.NewRetryingTeamProvider(team, f.logger, f.metrics, name, 0, 0)
	schedule = providers.NewRetryingScheduleProvider(schedule, f.logger, f.metrics, base.scheduleName, cfg.Schedule.MaxRetries, 0)
	schedule = providers.NewSoftScheduleProvider(schedule, base.scheduleName, f.logger)

	return wrappedProviders{name: name, team: team, schedule: schedule}
}
