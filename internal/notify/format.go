package notify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
)

const (
	senderName     = "Fantasy Setter"
	successSubject = "Fantasy Lineup Updated"
	failureSubject = "Fantasy Lineup Error"
	benchLabel     = "Bench"
	emptyValue     = "-"
)

func names(list []players.Player) string {
	if len(list) == 0 {
		return emptyValue
	}
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return strings.Join(out, ", ")
}

// summaryLines renders one "POS: names" line per slot position plus the bench.
func summaryLines(a lineup.Assignment) []string {
	lines := make([]string, 0, len(a.Order)+1)
	for _, pos := range a.Order {
		lines = append(lines, fmt.Sprintf("%s: %s", pos, names(a.Positions[pos])))
	}
	return append(lines, fmt.Sprintf("%s: %s", benchLabel, names(a.Bench)))
}

func failureBody(status int, message string) string {
	return fmt.Sprintf("Error code %d:\n\n%s", status, message)
}

// Truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
