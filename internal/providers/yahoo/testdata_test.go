package yahoo

import (
	"context"
	"net/http"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type staticTokens struct {
	token string
	err   error
	calls int
}

func (s *staticTokens) AccessToken(ctx context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

const sampleRoster = `<?xml version="1.0" encoding="UTF-8"?>
<fantasy_content xmlns:yahoo="http://www.yahooapis.com/v1/base.rng" xmlns="http://fantasysports.yahooapis.com/fantasy/v2/base.rng" xml:lang="en-US">
  <team>
    <team_key>453.l.1234.t.5</team_key>
    <name>Ice Cold</name>
    <roster>
      <coverage_type>date</coverage_type>
      <date>2024-11-05</date>
      <players count="3">
        <player>
          <player_key>453.p.6743</player_key>
          <name><full>Connor McDavid</full><first>Connor</first><last>McDavid</last></name>
          <editorial_team_abbr>EDM</editorial_team_abbr>
          <eligible_positions><position>C</position><position>Util</position></eligible_positions>
          <selected_position><coverage_type>date</coverage_type><date>2024-11-05</date><position>C</position></selected_position>
        </player>
        <player>
          <player_key>453.p.7000</player_key>
          <name><full>Adrian Kempe</full></name>
          <editorial_team_abbr>LA</editorial_team_abbr>
          <eligible_positions><position>LW</position><position>RW</position></eligible_positions>
          <selected_position><position>BN</position></selected_position>
        </player>
        <player>
          <player_key>453.p.5000</player_key>
          <name>Goalie Plain</name>
          <editorial_team_abbr>NJ</editorial_team_abbr>
          <eligible_positions><position>G</position></eligible_positions>
          <selected_position><position>G</position></selected_position>
        </player>
      </players>
    </roster>
  </team>
</fantasy_content>`
