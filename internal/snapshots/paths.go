package snapshots

import (
	"fmt"
	"path/filepath"
)

const lineupsDir = "lineups"

// LineupRecordPath builds the path to the lineup record for a given date.
func LineupRecordPath(basePath, date string) string {
	return filepath.Join(basePath, lineupsDir, fmt.Sprintf("%s.json", date))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, "manifest.json")
}
