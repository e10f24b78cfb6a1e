package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nhl-lineup-service/internal/http/handlers"
)

// Routes groups the handlers mounted by NewRouter. Nil groups are skipped.
type Routes struct {
	Probes *handlers.Handler
	Auth   *handlers.AuthHandler
	Admin  *handlers.AdminHandler
}

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(routes Routes) nethttp.Handler {
	mux := nethttp.NewServeMux()
	if h := routes.Probes; h != nil {
		mux.HandleFunc("/health", h.Health)
		mux.HandleFunc("/ready", h.Ready)
		mux.HandleFunc("/lineups", h.LineupDates)
		mux.HandleFunc("/lineups/", h.LineupByDate)
	}
	if a := routes.Auth; a != nil {
		mux.HandleFunc("/", a.Setup)
		mux.HandleFunc("/authorize", a.Authorize)
		mux.HandleFunc("/callback", a.Callback)
	}
	if a := routes.Admin; a != nil {
		mux.HandleFunc("/admin/run", a.Run)
	}
	return mux
}
