// Package rankings loads operator-maintained player rank overrides.
package rankings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides maps a player's full name to a rank. Lower is better.
type Overrides interface {
	Rank(name string) (int, bool)
}

// Table is an in-memory Overrides keyed by exact player name.
type Table map[string]int

// Rank returns the override for name, if any.
func (t Table) Rank(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	rank, ok := t[name]
	return rank, ok
}

// Overrides lets a fixed Table serve as its own Source.
func (t Table) Overrides(_ context.Context) (Overrides, error) {
	return t, nil
}

// Source yields the overrides to apply for one roster fetch.
type Source interface {
	Overrides(ctx context.Context) (Overrides, error)
}

// FileSource rereads a rankings file on every call so edits apply to the next run.
type FileSource struct {
	Path string
}

// Overrides loads the file at Path.
func (s FileSource) Overrides(_ context.Context) (Overrides, error) {
	return LoadFile(s.Path)
}

// LoadFile reads a JSON or YAML object of name to rank.
// A missing file yields an empty table.
func LoadFile(path string) (Table, error) {
	if path == "" {
		return Table{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("read rankings: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes rankings data. ext selects YAML for ".yaml"/".yml", JSON otherwise.
func Parse(data []byte, ext string) (Table, error) {
	table := Table{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return table, nil
	}
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &table)
	default:
		err = json.Unmarshal(data, &table)
	}
	if err != nil {
		return nil, fmt.Errorf("decode rankings: %w", err)
	}
	return table, nil
}
