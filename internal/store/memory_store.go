package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/snapshots"
)

// MemoryStore keeps lineup records in memory, one per date.
// It backs run history when no history directory is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]lineup.Record
	limit   int
}

// NewMemoryStore constructs an empty MemoryStore holding at most limit dates.
// A non-positive limit keeps every date.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]lineup.Record),
		limit:   limit,
	}
}

// WriteRecord stores rec under its date, replacing any earlier run that day.
// Pruning never evicts the record just written.
func (s *MemoryStore) WriteRecord(rec lineup.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.Date] = rec
	if s.limit <= 0 || len(s.records) <= s.limit {
		return nil
	}
	excess := len(s.records) - s.limit
	for _, d := range s.sortedDatesLocked() {
		if excess == 0 {
			break
		}
		if d == rec.Date {
			continue
		}
		delete(s.records, d)
		excess--
	}
	return nil
}

// LoadRecord returns the record for date or snapshots.ErrNotFound.
func (s *MemoryStore) LoadRecord(date string) (lineup.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[date]
	if !ok {
		return lineup.Record{}, snapshots.ErrNotFound
	}
	return rec, nil
}

// Dates lists stored dates in ascending order.
func (s *MemoryStore) Dates() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDatesLocked(), nil
}

func (s *MemoryStore) sortedDatesLocked() []string {
	dates := make([]string, 0, len(s.records))
	for d := range s.records {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
