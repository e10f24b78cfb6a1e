package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/config"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-lineup-service/internal/store"
)

type historyComponents struct {
	store  snapshots.Store
	writer setter.HistoryWriter
}

// buildHistory persists run records under HistoryDir, or in memory when it is empty.
func buildHistory(cfg config.LineupConfig, logger *slog.Logger) historyComponents {
	dir := strings.TrimSpace(cfg.HistoryDir)
	if dir == "" {
		logging.Info(logger, "lineup history kept in memory")
		mem := store.NewMemoryStore(historyMemoryDays)
		return historyComponents{store: mem, writer: mem}
	}
	logging.Info(logger, "lineup history on disk", logging.FieldPath, dir)
	return historyComponents{
		store:  snapshots.NewFSStore(dir),
		writer: snapshots.NewWriter(dir, cfg.RetentionDays),
	}
}
