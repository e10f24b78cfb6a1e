package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/http/requestutil"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/poller"
	"github.com/preston-bernstein/nhl-lineup-service/internal/timeutil"
)

// Trigger starts a lineup run unless one is already in progress.
type Trigger interface {
	TryRun(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	trigger Trigger
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(trigger Trigger, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		trigger: trigger,
		token:   token,
		logger:  logger,
	}
}

type runResponse struct {
	Status string        `json:"status"`
	Error  string        `json:"error,omitempty"`
	Result setter.Result `json:"result"`
}

// Run triggers a lineup run for ?date= (default today), optionally with ?dry_run=1.
// Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodPost) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.trigger == nil {
		writeError(w, r, http.StatusServiceUnavailable, "lineup runner not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if date != "" {
		if _, err := timeutil.ParseDate(date); err != nil {
			logging.Warn(logger, "admin run invalid date", slog.String(logging.FieldDate, date))
			writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
			return
		}
	}
	var opts []setter.RunOption
	if raw := strings.TrimSpace(q.Get("dry_run")); raw != "" {
		dry, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid dry_run value", logger)
			return
		}
		opts = append(opts, setter.WithDryRun(dry))
	}

	res, err := h.trigger.TryRun(r.Context(), date, opts...)
	switch {
	case errors.Is(err, poller.ErrBusy):
		writeError(w, r, http.StatusConflict, "lineup run already in progress", logger)
	case err != nil:
		logging.Warn(logger, "admin run failed", slog.String(logging.FieldDate, res.Date), slog.Any("err", err))
		writeJSON(w, http.StatusBadGateway, runResponse{Status: "failed", Error: err.Error(), Result: res}, logger)
	default:
		logging.Info(logger, "admin run complete",
			slog.String(logging.FieldDate, res.Date),
			slog.String(logging.FieldRunID, res.RunID),
			slog.String(logging.FieldOutcome, res.Outcome),
		)
		writeJSON(w, http.StatusOK, runResponse{Status: "ok", Result: res}, logger)
	}
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got, ok := requestutil.BearerToken(r)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
