package providers

import (
	"context"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

// RosterProvider fetches a team's roster normalized into players.
// Players carry their current selected position and a rank.
type RosterProvider interface {
	FetchRoster(ctx context.Context, teamKey string) ([]players.Player, error)
}

// ScheduleProvider reports which teams play on a date (YYYY-MM-DD).
// Team codes in the returned set are normalized.
type ScheduleProvider interface {
	ActiveTeams(ctx context.Context, date string) (map[string]struct{}, error)
}

// LineupSubmitter applies an assignment for a date and returns the upstream
// status code and response body.
type LineupSubmitter interface {
	SubmitLineup(ctx context.Context, teamKey, date string, a lineup.Assignment) (int, string, error)
}

// TeamProvider combines roster reads and lineup writes against one upstream.
type TeamProvider interface {
	RosterProvider
	LineupSubmitter
}
