package lineup

import (
	domainlineup "github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

// Move describes one player whose position differs from the current lineup.
type Move struct {
	PlayerKey string `json:"playerKey"`
	Name      string `json:"name"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Moves lists the players whose proposed position differs from their current one.
// A player missing from the proposal shows up with an empty To.
func Moves(roster []players.Player, a domainlineup.Assignment) []Move {
	proposed := a.PositionOf()
	var out []Move
	for _, p := range roster {
		to, ok := proposed[p.Key]
		if ok && to == p.Selected {
			continue
		}
		out = append(out, Move{PlayerKey: p.Key, Name: p.Name, From: p.Selected, To: to})
	}
	return out
}

// Changed reports whether submitting a would alter the current lineup.
func Changed(roster []players.Player, a domainlineup.Assignment) bool {
	return len(Moves(roster, a)) > 0
}
