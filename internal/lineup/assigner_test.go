package lineup

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainlineup "github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

func player(key string, rank int, eligible ...string) players.Player {
	return players.Player{Key: key, Name: "Player " + key, Eligible: eligible, Rank: rank}
}

func keys(list []players.Player) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Key)
	}
	return out
}

func TestChooseEmptyRoster(t *testing.T) {
	a := Choose(nil, domainlineup.DefaultSlots())

	assert.Empty(t, a.Bench)
	assert.Equal(t, 0, a.Count())
	assert.Equal(t, []string{"C", "LW", "RW", "D", "G"}, a.Order)
}

func TestChooseForcedPassPlacesSinglePositionPlayers(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 2}}
	roster := []players.Player{
		player("c-late", 40, "C"),
		player("c-early", 3, "C"),
	}

	a := Choose(roster, slots)

	assert.Equal(t, []string{"c-early", "c-late"}, keys(a.Assigned("C")))
	assert.Empty(t, a.Bench)
}

func TestChooseForcedPassUsesRemainingCapacity(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 1}, {Position: "LW", Capacity: 1}}
	roster := []players.Player{
		player("flex", 2, "C", "LW"),
		player("center", 1, "C"),
	}

	a := Choose(roster, slots)

	assert.Equal(t, []string{"center"}, keys(a.Assigned("C")))
	assert.Equal(t, []string{"flex"}, keys(a.Assigned("LW")))
}

func TestChooseScarcityFillsHardestPositionFirst(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 1}, {Position: "LW", Capacity: 2}}
	roster := []players.Player{
		player("wing-1", players.SentinelRank, "LW"),
		player("wing-2", players.SentinelRank, "LW"),
		player("wing-3", players.SentinelRank, "LW"),
		player("flex", 1, "C", "LW"),
	}

	a := Choose(roster, slots)

	assert.Equal(t, []string{"flex"}, keys(a.Assigned("C")))
	assert.Equal(t, []string{"wing-1", "wing-2"}, keys(a.Assigned("LW")))
	assert.Equal(t, []string{"wing-3"}, keys(a.Bench))
}

func TestChooseScarcityTieGoesToEarlierSlot(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 1}, {Position: "LW", Capacity: 1}}
	roster := []players.Player{
		player("first", players.SentinelRank, "LW", "C"),
		player("second", players.SentinelRank, "LW", "C"),
	}

	a := Choose(roster, slots)

	assert.Equal(t, []string{"first"}, keys(a.Assigned("C")))
	assert.Equal(t, []string{"second"}, keys(a.Assigned("LW")))
}

func TestChooseUnrankedSkatersStillFillOpenSlots(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 2}}
	roster := []players.Player{
		player("a", players.SentinelRank, "C"),
		player("b", players.SentinelRank, "C"),
		player("c", players.SentinelRank, "C"),
	}

	a := Choose(roster, slots)

	assert.Equal(t, []string{"a", "b"}, keys(a.Assigned("C")))
	assert.Equal(t, []string{"c"}, keys(a.Bench))
}

func TestChooseLeavesShortPositionsUnfilled(t *testing.T) {
	roster := []players.Player{
		player("c1", 1, "C"),
		player("lw1", 2, "LW"),
		player("g1", 3, "G"),
	}

	a := Choose(roster, domainlineup.DefaultSlots())

	assert.Len(t, a.Assigned("C"), 1)
	assert.Len(t, a.Assigned("LW"), 1)
	assert.Empty(t, a.Assigned("D"))
	assert.Len(t, a.Assigned("G"), 1)
	assert.Empty(t, a.Bench)
}

func TestChooseGoaliesTopNByRank(t *testing.T) {
	roster := []players.Player{
		player("g-3", 30, "G"),
		player("g-1", 10, "G"),
		player("g-2", 20, "G"),
	}

	a := Choose(roster, domainlineup.DefaultSlots())

	assert.Equal(t, []string{"g-1", "g-2"}, keys(a.Assigned("G")))
	assert.Equal(t, []string{"g-3"}, keys(a.Bench))
}

func TestChooseUnrankedGoaliesBelowCapacity(t *testing.T) {
	roster := []players.Player{player("only-goalie", players.SentinelRank, "G")}

	a := Choose(roster, domainlineup.DefaultSlots())

	assert.Equal(t, []string{"only-goalie"}, keys(a.Assigned("G")))
	assert.Empty(t, a.Bench)
}

func TestChooseWithoutGoalieSlotBenchesGoalies(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 1}}
	roster := []players.Player{player("g", 1, "G"), player("c", 2, "C")}

	a := Choose(roster, slots)

	assert.Empty(t, a.Assigned("G"))
	assert.Equal(t, []string{"g"}, keys(a.Bench))
}

func TestChooseHybridGoalieTakesSkaterPath(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 1}, {Position: "G", Capacity: 1}}
	roster := []players.Player{
		player("hybrid", 1, "C", "G"),
		player("goalie", 2, "G"),
	}

	a := Choose(roster, slots)

	assert.Equal(t, []string{"hybrid"}, keys(a.Assigned("C")))
	assert.Equal(t, []string{"goalie"}, keys(a.Assigned("G")))
}

func TestChooseBenchSortedByRankStable(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 1}}
	roster := []players.Player{
		player("starter", 1, "C"),
		player("bench-b", 50, "D"),
		player("bench-a", 10, "RW"),
		player("bench-c", 50, "LW"),
		player("injured", players.SentinelRank, "IR+"),
	}

	a := Choose(roster, slots)

	assert.Equal(t, []string{"bench-a", "bench-b", "bench-c", "injured"}, keys(a.Bench))
}

func TestChooseIdlePlayerPushedToBench(t *testing.T) {
	slots := domainlineup.SlotTable{{Position: "C", Capacity: 1}}
	roster := []players.Player{
		{Key: "idle-star", Eligible: []string{"C"}, Team: "TOR", Rank: 1},
		{Key: "playing", Eligible: []string{"C"}, Team: "LA", Rank: 50},
	}

	adjusted := AdjustForSchedule(roster, ActiveSet("LAK", "BOS"))
	a := Choose(adjusted, slots)

	assert.Equal(t, []string{"playing"}, keys(a.Assigned("C")))
	require.Len(t, a.Bench, 1)
	assert.Equal(t, "idle-star", a.Bench[0].Key)
	assert.Equal(t, 1+IdlePenalty, a.Bench[0].Rank)
}

func TestChooseInvariantsOnRandomRosters(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	skaterCodes := []string{"C", "LW", "RW", "D"}
	slots := domainlineup.DefaultSlots()

	for round := 0; round < 200; round++ {
		roster := randomRoster(rng, skaterCodes, round)

		a := Choose(roster, slots)
		again := Choose(roster, slots)
		require.Equal(t, a, again, "round %d not deterministic", round)

		seen := make(map[string]int)
		for _, pos := range a.Order {
			assigned := a.Assigned(pos)
			require.LessOrEqual(t, len(assigned), slots.Capacity(pos), "round %d over capacity at %s", round, pos)
			for _, p := range assigned {
				seen[p.Key]++
				if pos != players.PositionGoalie {
					require.True(t, p.EligibleFor(pos), "round %d: %s not eligible for %s", round, p.Key, pos)
				} else {
					require.True(t, p.IsGoalie(), "round %d: %s placed at G", round, p.Key)
				}
			}
		}
		for _, p := range a.Bench {
			seen[p.Key]++
		}
		require.Len(t, seen, len(roster), "round %d lost players", round)
		for key, n := range seen {
			require.Equal(t, 1, n, "round %d: %s appears %d times", round, key, n)
		}
	}
}

func randomRoster(rng *rand.Rand, skaterCodes []string, round int) []players.Player {
	size := rng.Intn(24)
	roster := make([]players.Player, 0, size)
	for i := 0; i < size; i++ {
		var eligible []string
		switch rng.Intn(10) {
		case 0, 1:
			eligible = []string{"G"}
		case 2:
			eligible = []string{"C", "G"}
		default:
			for _, code := range skaterCodes {
				if rng.Intn(3) == 0 {
					eligible = append(eligible, code)
				}
			}
			if len(eligible) == 0 {
				eligible = []string{skaterCodes[rng.Intn(len(skaterCodes))]}
			}
		}
		rank := players.SentinelRank
		if rng.Intn(4) != 0 {
			rank = 1 + rng.Intn(200)
		}
		roster = append(roster, players.Player{
			Key:      fmt.Sprintf("r%d.p%d", round, i),
			Eligible: eligible,
			Rank:     rank,
		})
	}
	return roster
}
