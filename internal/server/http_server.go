package server

import (
	"context"
	"net"
	"net/http"
	"sync"
)

// httpServer abstracts the HTTP server implementation for easier testing.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// netHTTPServer binds its own listener so Addr reports the real port when
// the configured one is ":0".
type netHTTPServer struct {
	srv *http.Server

	mu       sync.Mutex
	listener net.Listener
}

func newNetHTTPServer(srv *http.Server) *netHTTPServer {
	return &netHTTPServer{srv: srv}
}

func (s *netHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	ln := s.listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", s.srv.Addr)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.listener = ln
	}
	s.mu.Unlock()
	return s.srv.Serve(ln)
}

func (s *netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func (s *netHTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}

func (s *netHTTPServer) Handler() http.Handler { return s.srv.Handler }
