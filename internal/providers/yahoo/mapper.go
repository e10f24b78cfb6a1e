package yahoo

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-lineup-service/internal/rankings"
)

// ParseError reports a roster document that cannot be normalized.
type ParseError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("yahoo: parse roster: %s: %v", e.Reason, e.Err)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("yahoo: parse roster: player %d: %s", e.Index, e.Reason)
	}
	return "yahoo: parse roster: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Temporary is false: the same document will fail the same way.
func (e *ParseError) Temporary() bool { return false }

// ParseRoster decodes a roster document into players. Ranks come from
// overrides keyed by full name; unknown players get players.SentinelRank.
// Players without a key or eligible positions are rejected.
func ParseRoster(data []byte, overrides rankings.Overrides) ([]players.Player, error) {
	var doc rosterDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Index: -1, Reason: "decode xml", Err: err}
	}

	roster := make([]players.Player, 0, len(doc.Team.Players))
	seen := make(map[string]struct{}, len(doc.Team.Players))
	for i, raw := range doc.Team.Players {
		p, err := mapPlayer(raw, overrides)
		if err != nil {
			return nil, &ParseError{Index: i, Reason: err.Error()}
		}
		if _, dup := seen[p.Key]; dup {
			return nil, &ParseError{Index: i, Reason: "duplicate player_key " + p.Key}
		}
		seen[p.Key] = struct{}{}
		roster = append(roster, p)
	}
	return roster, nil
}

func mapPlayer(raw playerXML, overrides rankings.Overrides) (players.Player, error) {
	key := strings.TrimSpace(raw.PlayerKey)
	if key == "" {
		return players.Player{}, fmt.Errorf("missing player_key")
	}

	eligible := make([]string, 0, len(raw.EligiblePositions))
	for _, pos := range raw.EligiblePositions {
		if pos = strings.TrimSpace(pos); pos != "" {
			eligible = append(eligible, pos)
		}
	}
	if len(eligible) == 0 {
		return players.Player{}, fmt.Errorf("player %s has no eligible positions", key)
	}

	name := strings.TrimSpace(raw.Name.Full)
	if name == "" {
		name = strings.TrimSpace(raw.Name.Text)
	}

	rank := players.SentinelRank
	if overrides != nil {
		if r, ok := overrides.Rank(name); ok {
			rank = r
		}
	}

	return players.Player{
		Key:      key,
		Name:     name,
		Eligible: eligible,
		Selected: strings.TrimSpace(raw.SelectedPosition.Position),
		Team:     strings.TrimSpace(raw.EditorialTeamAbbr),
		Rank:     rank,
	}, nil
}
