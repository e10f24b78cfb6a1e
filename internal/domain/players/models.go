package players

// Position codes used by the fantasy roster feed.
const (
	PositionCenter     = "C"
	PositionLeftWing   = "LW"
	PositionRightWing  = "RW"
	PositionDefense    = "D"
	PositionGoalie     = "G"
	PositionBench      = "BN"
	PositionInjured    = "IR"
	PositionInjuredAlt = "IR+"
)

// SentinelRank is the rank given to players without a ranking override.
// Anything at or above it is treated as unranked.
const SentinelRank = 9999

// Player represents one rostered player for a single lineup run.
type Player struct {
	Key      string   `json:"playerKey"`
	Name     string   `json:"name"`
	Eligible []string `json:"eligible"`
	// Selected is the position the player currently occupies; empty when unset.
	Selected string `json:"selected,omitempty"`
	Team     string `json:"team"`
	Rank     int    `json:"rank"`
}

// IsGoalie reports whether the player is eligible for exactly the goalie slot.
func (p Player) IsGoalie() bool {
	return len(p.Eligible) == 1 && p.Eligible[0] == PositionGoalie
}

// EligibleFor reports whether the player may fill the given position.
func (p Player) EligibleFor(position string) bool {
	for _, pos := range p.Eligible {
		if pos == position {
			return true
		}
	}
	return false
}

// Ranked reports whether the player carries a real ranking.
func (p Player) Ranked() bool {
	return p.Rank < SentinelRank
}
