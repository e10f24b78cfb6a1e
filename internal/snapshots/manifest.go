package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

const manifestVersion = 2

// Manifest summarizes the history directory for operators and backups.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Retention   Retention   `json:"retention"`
	Lineups     LineupsMeta `json:"lineups"`
}

type Retention struct {
	LineupDays int `json:"lineupDays"`
}

type LineupsMeta struct {
	Dates       []string  `json:"dates"`
	LastRun     time.Time `json:"lastRun"`
	LastRunID   string    `json:"lastRunId,omitempty"`
	LastDate    string    `json:"lastDate,omitempty"`
	LastOutcome string    `json:"lastOutcome,omitempty"`
}

// readManifest returns a fresh manifest when the file is missing or unreadable.
func readManifest(path string, retentionDays int) (Manifest, error) {
	fresh := Manifest{
		Version:   manifestVersion,
		Retention: Retention{LineupDays: retentionDays},
		Lineups:   LineupsMeta{Dates: []string{}},
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fresh, err
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return fresh, err
	}
	m.Version = manifestVersion
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	return writeJSONAtomic(manifestPath(basePath), m)
}

// writeJSONAtomic writes v as indented JSON through a temp file and rename.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
