package lineup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

// Slot is the capacity of a single position.
type Slot struct {
	Position string `json:"position"`
	Capacity int    `json:"capacity"`
}

// SlotTable lists position capacities in league order.
// The order is significant: it breaks ties when two positions are equally hard to fill.
type SlotTable []Slot

// DefaultSlots is the standard head-to-head hockey roster.
func DefaultSlots() SlotTable {
	return SlotTable{
		{Position: players.PositionCenter, Capacity: 2},
		{Position: players.PositionLeftWing, Capacity: 2},
		{Position: players.PositionRightWing, Capacity: 2},
		{Position: players.PositionDefense, Capacity: 4},
		{Position: players.PositionGoalie, Capacity: 2},
	}
}

// ParseSlots reads a table in the form "C:2,LW:2,RW:2,D:4,G:2".
func ParseSlots(raw string) (SlotTable, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("slot table is empty")
	}
	seen := make(map[string]struct{})
	table := make(SlotTable, 0, 5)
	for _, part := range strings.Split(raw, ",") {
		pos, count, ok := strings.Cut(strings.TrimSpace(part), ":")
		pos = strings.ToUpper(strings.TrimSpace(pos))
		if !ok || pos == "" {
			return nil, fmt.Errorf("invalid slot %q: want POS:COUNT", part)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || capacity < 0 {
			return nil, fmt.Errorf("invalid capacity for %s: %q", pos, count)
		}
		if _, dup := seen[pos]; dup {
			return nil, fmt.Errorf("duplicate slot %s", pos)
		}
		seen[pos] = struct{}{}
		table = append(table, Slot{Position: pos, Capacity: capacity})
	}
	return table, nil
}

// Capacity returns the number of slots at position, zero when absent.
func (t SlotTable) Capacity(position string) int {
	for _, s := range t {
		if s.Position == position {
			return s.Capacity
		}
	}
	return 0
}

// Positions returns the position codes in table order.
func (t SlotTable) Positions() []string {
	out := make([]string, 0, len(t))
	for _, s := range t {
		out = append(out, s.Position)
	}
	return out
}

// String renders the table in the same form ParseSlots accepts.
func (t SlotTable) String() string {
	parts := make([]string, 0, len(t))
	for _, s := range t {
		parts = append(parts, fmt.Sprintf("%s:%d", s.Position, s.Capacity))
	}
	return strings.Join(parts, ",")
}

// Assignment is a proposed lineup: players per position plus the bench.
type Assignment struct {
	// Order lists positions in slot-table order so output is stable.
	Order     []string                    `json:"order"`
	Positions map[string][]players.Player `json:"positions"`
	Bench     []players.Player            `json:"bench"`
}

// NewAssignment returns an empty assignment pre-sized from the slot table.
func NewAssignment(slots SlotTable) Assignment {
	a := Assignment{
		Order:     slots.Positions(),
		Positions: make(map[string][]players.Player, len(slots)),
	}
	for _, s := range slots {
		a.Positions[s.Position] = make([]players.Player, 0, s.Capacity)
	}
	return a
}

// Entry pairs a player with the position it is submitted at.
type Entry struct {
	PlayerKey string `json:"playerKey"`
	Position  string `json:"position"`
}

// Entries flattens the assignment in slot order followed by bench entries marked BN.
func (a Assignment) Entries() []Entry {
	out := make([]Entry, 0, a.Count())
	for _, pos := range a.Order {
		for _, p := range a.Positions[pos] {
			out = append(out, Entry{PlayerKey: p.Key, Position: pos})
		}
	}
	for _, p := range a.Bench {
		out = append(out, Entry{PlayerKey: p.Key, Position: players.PositionBench})
	}
	return out
}

// PositionOf maps player key to proposed position, bench players to BN.
func (a Assignment) PositionOf() map[string]string {
	out := make(map[string]string, a.Count())
	for _, e := range a.Entries() {
		out[e.PlayerKey] = e.Position
	}
	return out
}

// Assigned returns the players placed at a position (nil when none).
func (a Assignment) Assigned(position string) []players.Player {
	return a.Positions[position]
}

// Count returns the number of players across positions and bench.
func (a Assignment) Count() int {
	n := len(a.Bench)
	for _, list := range a.Positions {
		n += len(list)
	}
	return n
}

// Record is the persisted outcome of one lineup run.
type Record struct {
	RunID         string     `json:"runId"`
	Date          string     `json:"date"`
	TeamKey       string     `json:"teamKey"`
	Outcome       string     `json:"outcome,omitempty"`
	Changed       bool       `json:"changed"`
	Submitted     bool       `json:"submitted"`
	DryRun        bool       `json:"dryRun,omitempty"`
	ScheduleKnown bool       `json:"scheduleKnown"`
	StatusCode    int        `json:"statusCode,omitempty"`
	Message       string     `json:"message,omitempty"`
	Error         string     `json:"error,omitempty"`
	Assignment    Assignment `json:"assignment"`
}
