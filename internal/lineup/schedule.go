package lineup

import (
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

// IdlePenalty is added to the rank of players whose team is not playing.
const IdlePenalty = 9999

// The schedule feed and the fantasy roster disagree on a few abbreviations.
var teamCodeAliases = map[string]string{
	"LAK": "LA",
	"NJD": "NJ",
	"SJS": "SJ",
	"TBL": "TB",
}

// NormalizeTeamCode maps a team abbreviation from either feed to the roster form.
func NormalizeTeamCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if alias, ok := teamCodeAliases[code]; ok {
		return alias
	}
	return code
}

// ActiveSet builds a normalized set of team codes.
func ActiveSet(codes ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c = NormalizeTeamCode(c); c != "" {
			out[c] = struct{}{}
		}
	}
	return out
}

// AdjustForSchedule returns a copy of roster where every player whose team has
// no game in active is pushed down by IdlePenalty.
// An empty active set means the schedule is unknown and nothing is adjusted.
func AdjustForSchedule(roster []players.Player, active map[string]struct{}) []players.Player {
	out := make([]players.Player, len(roster))
	copy(out, roster)
	if len(active) == 0 {
		return out
	}
	for i := range out {
		if _, playing := active[NormalizeTeamCode(out[i].Team)]; !playing {
			out[i].Rank += IdlePenalty
		}
	}
	return out
}
