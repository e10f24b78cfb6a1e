package snapshots

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/timeutil"
)

// ErrNotFound is returned when no record exists for a date.
var ErrNotFound = errors.New("lineup record not found")

// Store defines how lineup records are read back.
type Store interface {
	LoadRecord(date string) (lineup.Record, error)
	Dates() ([]string, error)
}

// FSStore loads lineup records from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed record store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadRecord reads the record for the given date (YYYY-MM-DD).
// Files are expected at {basePath}/lineups/{date}.json.
func (s *FSStore) LoadRecord(date string) (lineup.Record, error) {
	if s == nil {
		return lineup.Record{}, errors.New("lineup store not configured")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return lineup.Record{}, errors.New("lineup date must be YYYY-MM-DD")
	}

	f, err := os.Open(LineupRecordPath(s.basePath, date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lineup.Record{}, ErrNotFound
		}
		return lineup.Record{}, err
	}
	defer f.Close()

	var rec lineup.Record
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		return lineup.Record{}, err
	}
	if rec.Date == "" {
		rec.Date = date
	}
	return rec, nil
}

// Dates lists stored record dates in ascending order.
func (s *FSStore) Dates() ([]string, error) {
	if s == nil {
		return nil, errors.New("lineup store not configured")
	}
	return listDates(s.basePath)
}

func listDates(basePath string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(basePath, lineupsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}
