package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/http/requestutil"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
)

// LoggingMiddleware tags each request with an id and a scoped logger, turns
// handler panics into 500s, and records latency by normalized route. Probe
// traffic is logged at debug level.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get(requestutil.HeaderRequestID))
		w.Header().Set(requestutil.HeaderRequestID, reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		ctx := withRequestID(logging.WithLogger(r.Context(), logger), reqID)
		ww := &responseWriter{ResponseWriter: w}

		defer func() {
			if rec := recover(); rec != nil {
				logging.Error(logger, "handler panic", fmt.Errorf("%v", rec))
				if !ww.wrote {
					http.Error(ww, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}

			status := ww.statusCode()
			duration := time.Since(start)
			route := normalizePath(r.URL.Path)
			recorder.RecordHTTPRequest(r.Method, route, status, duration)

			level := slog.LevelInfo
			if isProbe(route) && status < http.StatusInternalServerError {
				level = slog.LevelDebug
			}
			logger.Log(ctx, level, "request complete",
				slog.Int(logging.FieldStatusCode, status),
				slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.wrote {
		w.status = status
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func isProbe(route string) bool {
	return route == "/health" || route == "/ready"
}

// normalizePath collapses per-date paths so metrics keep a bounded label set.
func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	path, _, _ = strings.Cut(path, "?")
	switch path {
	case "/", "/health", "/ready", "/authorize", "/callback", "/admin/run", "/lineups":
		return path
	}
	if strings.HasPrefix(path, "/lineups/") {
		return "/lineups/:date"
	}
	return "other"
}
