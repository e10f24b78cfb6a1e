package yahoo

import "encoding/xml"

// Element names are matched without the base.rng namespace so both
// namespaced API responses and bare test documents decode.

type rosterDocument struct {
	XMLName xml.Name `xml:"fantasy_content"`
	Team    teamXML  `xml:"team"`
}

type teamXML struct {
	TeamKey string      `xml:"team_key"`
	Name    string      `xml:"name"`
	Players []playerXML `xml:"roster>players>player"`
}

type playerXML struct {
	PlayerKey         string      `xml:"player_key"`
	Name              nameXML     `xml:"name"`
	EditorialTeamAbbr string      `xml:"editorial_team_abbr"`
	EligiblePositions []string    `xml:"eligible_positions>position"`
	SelectedPosition  selectedXML `xml:"selected_position"`
}

type nameXML struct {
	Full string `xml:"full"`
	Text string `xml:",chardata"`
}

type selectedXML struct {
	Date     string `xml:"date"`
	Position string `xml:"position"`
}

type rosterPayload struct {
	XMLName xml.Name          `xml:"fantasy_content"`
	Roster  rosterPayloadBody `xml:"roster"`
}

type rosterPayloadBody struct {
	CoverageType string          `xml:"coverage_type"`
	Date         string          `xml:"date"`
	Players      []payloadPlayer `xml:"players>player"`
}

type payloadPlayer struct {
	PlayerKey string `xml:"player_key"`
	Position  string `xml:"position"`
}
