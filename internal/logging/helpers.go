package logging

import (
	"context"
	"log/slog"
)

// Debug logs at debug level; a nil logger is ignored like the other helpers.
func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Debug(msg, args...)
}

func Info(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, args...)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}

// Error logs msg with err under the "error" key. A nil err logs msg alone.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, FieldError, err)
	}
	logger.Error(msg, args...)
}

// ForRun scopes the context logger (or fallback) to a single lineup run and
// stores it back on the returned context. Empty fields are omitted.
func ForRun(ctx context.Context, fallback *slog.Logger, runID, teamKey, date string) (context.Context, *slog.Logger) {
	logger := FromContext(ctx, fallback)
	if logger == nil {
		return ctx, nil
	}
	var attrs []any
	for _, f := range [][2]string{{FieldRunID, runID}, {FieldTeamKey, teamKey}, {FieldDate, date}} {
		if f[1] != "" {
			attrs = append(attrs, slog.String(f[0], f[1]))
		}
	}
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	return WithLogger(ctx, logger), logger
}
