package notify

import (
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

func sampleAssignment() lineup.Assignment {
	a := lineup.NewAssignment(lineup.SlotTable{
		{Position: "C", Capacity: 2},
		{Position: "D", Capacity: 1},
		{Position: "G", Capacity: 1},
	})
	a.Positions["C"] = []players.Player{{Key: "1", Name: "Connor McDavid"}, {Key: "2", Name: "Auston Matthews"}}
	a.Positions["G"] = []players.Player{{Key: "3", Name: "Igor Shesterkin"}}
	a.Bench = []players.Player{{Key: "4", Name: "Adam Fox"}}
	return a
}
