package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/http/handlers"
	"github.com/preston-bernstein/nhl-lineup-service/internal/teststubs"
	"github.com/preston-bernstein/nhl-lineup-service/internal/testutil"
)

func newTestRoutes() Routes {
	store := &teststubs.StubRecordStore{Records: map[string]lineup.Record{
		"2024-01-02": testutil.SampleRecord("2024-01-02"),
	}}
	return Routes{
		Probes: handlers.NewHandler(store, nil, nil),
		Auth:   handlers.NewAuthHandler(nil, "", nil),
		Admin:  handlers.NewAdminHandler(&testutil.StubPoller{}, "secret", nil),
	}
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := NewRouter(newTestRoutes())

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/lineups", http.StatusOK},
		{http.MethodGet, "/lineups/2024-01-02", http.StatusOK},
		{http.MethodGet, "/lineups/2024-01-03", http.StatusNotFound},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/authorize", http.StatusServiceUnavailable},
		{http.MethodPost, "/admin/run", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("%s %s expected status %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := NewRouter(newTestRoutes())

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}

func TestRouterSkipsNilGroups(t *testing.T) {
	router := NewRouter(Routes{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with no routes mounted, got %d", rr.Code)
	}
}
