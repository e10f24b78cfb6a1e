package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/poller"
	"github.com/preston-bernstein/nhl-lineup-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-lineup-service/internal/timeutil"
)

// Handler serves probes and the lineup run history.
type Handler struct {
	records  snapshots.Store
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. records and statusFn may be nil.
func NewHandler(records snapshots.Store, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		records:  records,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet, nethttp.MethodHead) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether lineup runs are succeeding.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet, nethttp.MethodHead) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	st := h.statusFn()
	if st.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready", "scheduler": st}, h.logger)
		return
	}
	msg := st.LastError
	if msg == "" {
		msg = "no successful lineup run yet"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// LineupDates lists the dates with a stored run record.
func (h *Handler) LineupDates(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	if h.records == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "lineup history not configured", h.logger)
		return
	}
	dates, err := h.records.Dates()
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "list lineup records failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to list lineup records", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"dates": dates}, h.logger)
}

// LineupByDate returns the stored run record for /lineups/{date}.
func (h *Handler) LineupByDate(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/lineups/")
	date, err := url.PathUnescape(raw)
	if err != nil || date == "" || strings.Contains(date, "/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid lineup date", h.logger)
		return
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}
	if h.records == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "lineup history not configured", h.logger)
		return
	}

	rec, err := h.records.LoadRecord(date)
	if err != nil {
		if errors.Is(err, snapshots.ErrNotFound) {
			writeError(w, r, nethttp.StatusNotFound, "no lineup run recorded for date", h.logger)
			return
		}
		logging.Error(loggerFromContext(r, h.logger), "load lineup record failed", err, logging.FieldDate, date)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load lineup record", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, rec, h.logger)
}
