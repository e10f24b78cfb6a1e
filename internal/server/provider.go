package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/auth"
	"github.com/preston-bernstein/nhl-lineup-service/internal/config"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers/fixture"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers/nhle"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers/yahoo"
	"github.com/preston-bernstein/nhl-lineup-service/internal/rankings"
)

const (
	providerFixture = "fixture"
	providerYahoo   = "yahoo"
	scheduleNHLE    = "nhle"
)

// baseProviders are the unwrapped upstream clients for one provider choice.
type baseProviders struct {
	name         string
	team         providers.TeamProvider
	schedule     providers.ScheduleProvider
	scheduleName string
	// remote marks upstreams that get rate limiting and circuit breaking.
	remote bool
}

func selectProvider(cfg config.Config, tokens *auth.Provider, logger *slog.Logger) baseProviders {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case providerYahoo:
		if tokens == nil {
			logging.Warn(logger, "yahoo provider has no token source, falling back to fixture")
			return fixtureProviders()
		}
		client := yahoo.NewClient(yahoo.Config{
			BaseURL:  cfg.Yahoo.BaseURL,
			Tokens:   tokens,
			Rankings: rankings.FileSource{Path: cfg.Lineup.RankingsFile},
			Logger:   logger,
		})
		schedule := nhle.NewClient(nhle.Config{
			BaseURL:  cfg.Schedule.BaseURL,
			Timezone: cfg.Run.Timezone,
			Logger:   logger,
		})
		return baseProviders{
			name:         providerYahoo,
			team:         client,
			schedule:     schedule,
			scheduleName: scheduleNHLE,
			remote:       true,
		}
	case providerFixture, "":
		return fixtureProviders()
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixtureProviders()
	}
}

func fixtureProviders() baseProviders {
	fx := fixture.New()
	return baseProviders{
		name:         providerFixture,
		team:         fx,
		schedule:     fx,
		scheduleName: providerFixture,
	}
}

// providerName is the label used in logs and metrics: the configured name, or
// the package of the client type ("fixture" for *fixture.Provider).
func providerName(raw string, provider any) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if provider == nil {
		return "provider"
	}
	typ := strings.TrimLeft(fmt.Sprintf("%T", provider), "*")
	pkg, _, _ := strings.Cut(typ, ".")
	return strings.ToLower(pkg)
}
