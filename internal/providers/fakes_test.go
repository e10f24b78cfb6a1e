package providers

import (
	"context"
	"errors"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

type flakeyTeamProvider struct {
	failures    int
	err         error
	calls       int
	submissions int
}

func (f *flakeyTeamProvider) FetchRoster(ctx context.Context, teamKey string) ([]players.Player, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("boom")
	}
	return []players.Player{{Key: "p1", Name: "Skater", Eligible: []string{"C"}}}, nil
}

func (f *flakeyTeamProvider) SubmitLineup(ctx context.Context, teamKey, date string, a lineup.Assignment) (int, string, error) {
	f.submissions++
	return 500, "nope", nil
}

type flakeySchedule struct {
	failures int
	err      error
	calls    int
	active   map[string]struct{}
}

func (f *flakeySchedule) ActiveTeams(ctx context.Context, date string) (map[string]struct{}, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("schedule down")
	}
	return f.active, nil
}
