package handlers

import (
	"context"
	"crypto/subtle"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/preston-bernstein/nhl-lineup-service/internal/auth"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

// Authorizer is the OAuth surface the setup pages need.
type Authorizer interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Status(ctx context.Context) (auth.Status, error)
}

// AuthHandler serves the one-time OAuth setup flow.
type AuthHandler struct {
	auth     Authorizer
	teamKey  string
	logger   *slog.Logger
	newState func() string
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(a Authorizer, teamKey string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     a,
		teamKey:  teamKey,
		logger:   logger,
		newState: uuid.NewString,
	}
}

var setupPage = template.Must(template.New("setup").Parse(`<!doctype html>
<html>
<head><title>Lineup setter</title></head>
<body>
<h1>Lineup setter</h1>
<p>Team: {{if .TeamKey}}{{.TeamKey}}{{else}}not configured{{end}}</p>
{{if .Status.HasToken}}
<p>Authorized. Token expires {{.Status.Expiry.Format "2006-01-02 15:04 MST"}}{{if not .Status.Refreshable}} and cannot be refreshed{{end}}.</p>
<p><a href="/authorize">Re-authorize</a></p>
{{else}}
<p>No token stored.</p>
<p><a href="/authorize">Authorize with Yahoo</a></p>
{{end}}
{{if .Message}}<p>{{.Message}}</p>{{end}}
</body>
</html>
`))

type setupView struct {
	TeamKey string
	Status  auth.Status
	Message string
}

// Setup renders the setup page showing whether a token is stored.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
		return
	}
	if !requireMethod(w, r, h.logger, http.MethodGet) {
		return
	}
	h.render(w, r, http.StatusOK, "")
}

// Authorize redirects to the provider consent page.
func (h *AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodGet) {
		return
	}
	if h.auth == nil {
		writeError(w, r, http.StatusServiceUnavailable, "oauth not configured", h.logger)
		return
	}
	state := h.newState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

// Callback exchanges the authorization code and persists the token.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodGet) {
		return
	}
	if h.auth == nil {
		writeError(w, r, http.StatusServiceUnavailable, "oauth not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		logging.Warn(logger, "oauth consent denied", "error", e)
		h.render(w, r, http.StatusBadRequest, "Authorization was not granted: "+e)
		return
	}
	if !h.validState(r, q.Get("state")) {
		logging.Warn(logger, "oauth state mismatch")
		writeError(w, r, http.StatusBadRequest, "invalid oauth state", h.logger)
		return
	}
	code := q.Get("code")
	if code == "" {
		writeError(w, r, http.StatusBadRequest, "missing code", h.logger)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	if _, err := h.auth.Exchange(r.Context(), code); err != nil {
		logging.Error(logger, "oauth exchange failed", err)
		writeError(w, r, http.StatusBadGateway, "token exchange failed", h.logger)
		return
	}
	h.render(w, r, http.StatusOK, "Authorization complete. Lineups will be set automatically.")
}

func (h *AuthHandler) validState(r *http.Request, state string) bool {
	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || state == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(state)) == 1
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, status int, message string) {
	view := setupView{TeamKey: h.teamKey, Message: message}
	if h.auth != nil {
		st, err := h.auth.Status(r.Context())
		if err != nil {
			logging.Error(loggerFromContext(r, h.logger), "load token status failed", err)
		}
		view.Status = st
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := setupPage.Execute(w, view); err != nil {
		logging.Error(h.logger, "render setup page failed", err)
	}
}
