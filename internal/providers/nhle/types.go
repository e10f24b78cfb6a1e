package nhle

type scheduleResponse struct {
	GameWeek []gameDay `json:"gameWeek"`
}

type gameDay struct {
	Date  string `json:"date"`
	Games []game `json:"games"`
}

type game struct {
	ID        int64   `json:"id"`
	GameState string  `json:"gameState"`
	AwayTeam  teamRef `json:"awayTeam"`
	HomeTeam  teamRef `json:"homeTeam"`
}

type teamRef struct {
	Abbrev string `json:"abbrev"`
}
