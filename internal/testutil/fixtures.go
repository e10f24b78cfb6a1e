package testutil

import (
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

// SamplePlayer returns a ranked skater or goalie fixture eligible for the given positions.
func SamplePlayer(key, team string, rank int, eligible ...string) players.Player {
	return players.Player{
		Key:      key,
		Name:     "Player " + key,
		Eligible: eligible,
		Team:     team,
		Rank:     rank,
	}
}

// SampleRecord builds a lineup record for date with one goalie and one benched skater.
func SampleRecord(date string) lineup.Record {
	a := lineup.NewAssignment(lineup.DefaultSlots())
	a.Positions[players.PositionGoalie] = append(a.Positions[players.PositionGoalie],
		SamplePlayer("g1", "BOS", 1, players.PositionGoalie))
	a.Bench = append(a.Bench, SamplePlayer("s1", "TOR", 50, players.PositionCenter))
	return lineup.Record{
		RunID:         "run-" + date,
		Date:          date,
		TeamKey:       "nhl.l.1.t.1",
		Outcome:       "submitted",
		Changed:       true,
		Submitted:     true,
		ScheduleKnown: true,
		StatusCode:    200,
		Assignment:    a,
	}
}
