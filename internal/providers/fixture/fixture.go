package fixture

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
	schedule "github.com/preston-bernstein/nhl-lineup-service/internal/lineup"
)

// Provider serves a static roster and schedule and accepts every submission.
// It backs local runs and dry runs without Yahoo credentials.
type Provider struct {
	mu          sync.Mutex
	submissions []Submission
}

// Submission is a lineup the fixture provider accepted.
type Submission struct {
	TeamKey string
	Date    string
	Entries []lineup.Entry
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchRoster returns a deterministic roster with every player on the bench.
func (p *Provider) FetchRoster(_ context.Context, _ string) ([]players.Player, error) {
	return Roster(), nil
}

// ActiveTeams reports a fixed slate where ANA, SEA and VGK are idle.
func (p *Provider) ActiveTeams(_ context.Context, _ string) (map[string]struct{}, error) {
	return schedule.ActiveSet("EDM", "TOR", "COL", "BOS", "LAK", "NJD", "NYR", "TBL", "FLA", "DAL"), nil
}

// SubmitLineup records the assignment and reports success.
func (p *Provider) SubmitLineup(_ context.Context, teamKey, date string, a lineup.Assignment) (int, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submissions = append(p.submissions, Submission{TeamKey: teamKey, Date: date, Entries: a.Entries()})
	return http.StatusOK, "fixture accepted", nil
}

// Submissions returns a copy of the accepted lineups.
func (p *Provider) Submissions() []Submission {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Submission, len(p.submissions))
	copy(out, p.submissions)
	return out
}

// Roster returns the fixture players.
func Roster() []players.Player {
	return []players.Player{
		{Key: "fx.p.1", Name: "Connor McDavid", Eligible: []string{"C"}, Selected: "BN", Team: "EDM", Rank: 1},
		{Key: "fx.p.2", Name: "Auston Matthews", Eligible: []string{"C"}, Selected: "BN", Team: "TOR", Rank: 2},
		{Key: "fx.p.3", Name: "Nathan MacKinnon", Eligible: []string{"C"}, Selected: "BN", Team: "COL", Rank: 3},
		{Key: "fx.p.4", Name: "Leon Draisaitl", Eligible: []string{"C", "LW"}, Selected: "BN", Team: "EDM", Rank: 4},
		{Key: "fx.p.5", Name: "Brad Marchand", Eligible: []string{"LW"}, Selected: "BN", Team: "BOS", Rank: 8},
		{Key: "fx.p.6", Name: "Adrian Kempe", Eligible: []string{"LW", "RW"}, Selected: "BN", Team: "LA", Rank: 12},
		{Key: "fx.p.7", Name: "Mikko Rantanen", Eligible: []string{"RW"}, Selected: "BN", Team: "DAL", Rank: 5},
		{Key: "fx.p.8", Name: "Nikita Kucherov", Eligible: []string{"RW"}, Selected: "BN", Team: "TB", Rank: 6},
		{Key: "fx.p.9", Name: "Troy Terry", Eligible: []string{"RW"}, Selected: "BN", Team: "ANA", Rank: 20},
		{Key: "fx.p.10", Name: "Cale Makar", Eligible: []string{"D"}, Selected: "BN", Team: "COL", Rank: 7},
		{Key: "fx.p.11", Name: "Adam Fox", Eligible: []string{"D"}, Selected: "BN", Team: "NYR", Rank: 9},
		{Key: "fx.p.12", Name: "Dougie Hamilton", Eligible: []string{"D"}, Selected: "BN", Team: "NJ", Rank: 14},
		{Key: "fx.p.13", Name: "Vince Dunn", Eligible: []string{"D"}, Selected: "BN", Team: "SEA", Rank: 15},
		{Key: "fx.p.14", Name: "Gustav Forsling", Eligible: []string{"D"}, Selected: "BN", Team: "FLA", Rank: 16},
		{Key: "fx.p.15", Name: "Igor Shesterkin", Eligible: []string{"G"}, Selected: "BN", Team: "NYR", Rank: 10},
		{Key: "fx.p.16", Name: "Adin Hill", Eligible: []string{"G"}, Selected: "BN", Team: "VGK", Rank: 11},
		{Key: "fx.p.17", Name: "Jake Oettinger", Eligible: []string{"G"}, Selected: "BN", Team: "DAL", Rank: 13},
	}
}
