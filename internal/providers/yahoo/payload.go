package yahoo

import (
	"encoding/xml"
	"fmt"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
)

const xmlDeclaration = `<?xml version="1.0"?>`

// BuildRosterPayload renders the roster PUT body for date: assigned players
// in slot order, then bench players as BN.
func BuildRosterPayload(date string, a lineup.Assignment) ([]byte, error) {
	entries := a.Entries()
	body := rosterPayload{
		Roster: rosterPayloadBody{
			CoverageType: coverageDate,
			Date:         date,
			Players:      make([]payloadPlayer, 0, len(entries)),
		},
	}
	for _, e := range entries {
		body.Roster.Players = append(body.Roster.Players, payloadPlayer{PlayerKey: e.PlayerKey, Position: e.Position})
	}

	out, err := xml.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("yahoo: encode roster payload: %w", err)
	}
	return append([]byte(xmlDeclaration), out...), nil
}
