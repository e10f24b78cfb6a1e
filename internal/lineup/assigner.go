// Package lineup decides which rostered players start on a given day.
// Everything here is pure: callers pass a roster snapshot and a slot table and
// get back a fresh Assignment.
package lineup

import (
	"cmp"
	"slices"

	domainlineup "github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

// Choose assigns players to slots.
//
// Skaters are placed in two passes. The forced pass walks skaters best rank
// first and locks in every ranked player that has exactly one open position
// left. The scarcity pass then repeatedly picks the open position with the
// fewest remaining candidates per open slot and gives it the best remaining
// candidate. Goalies (eligible for G only) fill G by rank. Everyone else is
// benched, best rank first.
func Choose(roster []players.Player, slots domainlineup.SlotTable) domainlineup.Assignment {
	a := domainlineup.NewAssignment(slots)
	placed := make([]bool, len(roster))

	var goalies, skaters []int
	for i, p := range roster {
		if p.IsGoalie() {
			goalies = append(goalies, i)
		} else {
			skaters = append(skaters, i)
		}
	}
	byRank := func(i, j int) int { return cmp.Compare(roster[i].Rank, roster[j].Rank) }
	slices.SortStableFunc(skaters, byRank)
	slices.SortStableFunc(goalies, byRank)

	s := &skaterPlan{
		roster:    roster,
		slots:     slots,
		positions: skaterPositions(slots),
		order:     skaters,
		placed:    placed,
		out:       &a,
	}
	s.forcedPass()
	s.scarcityPass()

	limit := slots.Capacity(players.PositionGoalie)
	for n, i := range goalies {
		if n >= limit {
			break
		}
		a.Positions[players.PositionGoalie] = append(a.Positions[players.PositionGoalie], roster[i])
		placed[i] = true
	}

	bench := make([]players.Player, 0, len(roster))
	for i, p := range roster {
		if !placed[i] {
			bench = append(bench, p)
		}
	}
	slices.SortStableFunc(bench, func(x, y players.Player) int { return cmp.Compare(x.Rank, y.Rank) })
	a.Bench = bench
	return a
}

// skaterPositions returns every non-goalie position in slot order.
func skaterPositions(slots domainlineup.SlotTable) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.Position != players.PositionGoalie {
			out = append(out, s.Position)
		}
	}
	return out
}

type skaterPlan struct {
	roster    []players.Player
	slots     domainlineup.SlotTable
	positions []string
	order     []int // roster indexes sorted by rank
	placed    []bool
	out       *domainlineup.Assignment
}

func (s *skaterPlan) forcedPass() {
	for _, i := range s.order {
		p := s.roster[i]
		if s.placed[i] || !p.Ranked() {
			continue
		}
		if open := s.available(p); len(open) == 1 {
			s.place(i, open[0])
		}
	}
}

func (s *skaterPlan) scarcityPass() {
	total := 0
	for _, pos := range s.positions {
		total += s.slots.Capacity(pos)
	}
	for s.filled() < total {
		pos, ok := s.scarcest()
		if !ok {
			return
		}
		for _, i := range s.order {
			if !s.placed[i] && s.roster[i].EligibleFor(pos) {
				s.place(i, pos)
				break
			}
		}
	}
}

// scarcest returns the open position with the lowest candidates-per-slot ratio.
// Positions with no open slot or no remaining candidate are skipped; ties go to
// the earlier position in slot order.
func (s *skaterPlan) scarcest() (string, bool) {
	best := ""
	bestRatio := 0.0
	for _, pos := range s.positions {
		open := s.open(pos)
		if open <= 0 {
			continue
		}
		candidates := 0
		for _, i := range s.order {
			if !s.placed[i] && s.roster[i].EligibleFor(pos) {
				candidates++
			}
		}
		if candidates == 0 {
			continue
		}
		ratio := float64(candidates) / float64(open)
		if best == "" || ratio < bestRatio {
			best, bestRatio = pos, ratio
		}
	}
	return best, best != ""
}

func (s *skaterPlan) available(p players.Player) []string {
	var out []string
	for _, pos := range s.positions {
		if p.EligibleFor(pos) && s.open(pos) > 0 {
			out = append(out, pos)
		}
	}
	return out
}

func (s *skaterPlan) open(pos string) int {
	return s.slots.Capacity(pos) - len(s.out.Positions[pos])
}

func (s *skaterPlan) filled() int {
	n := 0
	for _, pos := range s.positions {
		n += len(s.out.Positions[pos])
	}
	return n
}

func (s *skaterPlan) place(i int, pos string) {
	s.out.Positions[pos] = append(s.out.Positions[pos], s.roster[i])
	s.placed[i] = true
}
