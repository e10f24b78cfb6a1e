package nhle

import "github.com/preston-bernstein/nhl-lineup-service/internal/lineup"

// activeTeams collects normalized team codes playing on date. The feed
// returns a week starting at the requested day; the matching day wins and
// the first day is used when none matches.
func activeTeams(resp scheduleResponse, date string) map[string]struct{} {
	if len(resp.GameWeek) == 0 {
		return map[string]struct{}{}
	}
	day := resp.GameWeek[0]
	for _, d := range resp.GameWeek {
		if d.Date == date {
			day = d
			break
		}
	}

	codes := make([]string, 0, len(day.Games)*2)
	for _, g := range day.Games {
		codes = append(codes, g.AwayTeam.Abbrev, g.HomeTeam.Abbrev)
	}
	return lineup.ActiveSet(codes...)
}
