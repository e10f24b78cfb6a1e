package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/auth"
	"github.com/preston-bernstein/nhl-lineup-service/internal/config"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	httpserver "github.com/preston-bernstein/nhl-lineup-service/internal/http"
	"github.com/preston-bernstein/nhl-lineup-service/internal/http/handlers"
	"github.com/preston-bernstein/nhl-lineup-service/internal/http/middleware"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
	"github.com/preston-bernstein/nhl-lineup-service/internal/poller"
	"github.com/preston-bernstein/nhl-lineup-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-lineup-service/internal/timeutil"
)

const fixtureTeamKey = "fixture.l.0.t.0"

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	setter        *setter.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	closers       []io.Closer
}

// New constructs a server with provider, scheduler and HTTP wiring from cfg.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var closers []io.Closer
	authProvider, tokenCloser := buildAuth(cfg, logger)
	if tokenCloser != nil {
		closers = append(closers, tokenCloser)
	}
	provs := newProviderFactory(logger, recorder).build(cfg, authProvider)
	history := buildHistory(cfg.Lineup, logger)
	notifier := buildNotifier(cfg.Notify, logger, recorder)
	loc := timeutil.LoadLocation(cfg.Run.Timezone)

	teamKey := cfg.Yahoo.TeamKey
	if teamKey == "" && provs.name == providerFixture {
		teamKey = fixtureTeamKey
	}
	if teamKey == "" {
		logging.Warn(logger, "no team key configured, runs will fail until YAHOO_TEAM_KEY is set")
	}

	deps := setter.Deps{
		Roster:    provs.team,
		Schedule:  provs.schedule,
		Submitter: provs.team,
		Notifier:  notifier,
		History:   history.writer,
		Metrics:   recorder,
		Logger:    logger,
	}
	if provs.name == providerYahoo && authProvider != nil {
		deps.Tokens = authProvider
	}
	svc := setter.NewService(deps, setter.Options{
		TeamKey:  teamKey,
		Slots:    buildSlots(cfg.Lineup.Slots, logger),
		DryRun:   cfg.Run.DryRun,
		Location: loc,
	})

	plr, err := poller.New(svc, poller.Config{
		Schedule:   cfg.Run.Schedule,
		Location:   loc,
		RunOnStart: cfg.Run.OnStart,
		Timeout:    cfg.Run.Timeout,
	}, logger)
	if err != nil {
		closeAll(closers, logger)
		return nil, err
	}

	var authorizer handlers.Authorizer
	if authProvider != nil {
		authorizer = authProvider
	}
	httpSrv := buildHTTPServer(cfg, history.store, authorizer, teamKey, plr, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		setter:        svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		closers:       closers,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildSlots(raw string, logger *slog.Logger) lineup.SlotTable {
	slots, err := lineup.ParseSlots(raw)
	if err != nil {
		logging.Warn(logger, "invalid slot table, using default", "slots", raw, "err", err)
		return lineup.DefaultSlots()
	}
	return slots
}

func buildHTTPServer(cfg config.Config, records snapshots.Store, authorizer handlers.Authorizer, teamKey string, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	var trigger handlers.Trigger
	if plr != nil {
		statusFn = plr.Status
		trigger = plr
	}

	routes := httpserver.Routes{
		Probes: handlers.NewHandler(records, logger, statusFn),
		Auth:   handlers.NewAuthHandler(authorizer, teamKey, logger),
	}
	// Admin endpoint is only mounted when a token is set.
	if cfg.AdminToken != "" {
		routes.Admin = handlers.NewAdminHandler(trigger, cfg.AdminToken, logger)
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, httpserver.NewRouter(routes))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return newNetHTTPServer(srv)
}

// Run starts the scheduler and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if err := s.poller.Start(ctx); err != nil {
		logging.Error(s.logger, "scheduler failed to start", err)
		if stop != nil {
			stop()
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// RunOnce performs a single lineup run for date and releases resources.
// The run's error is returned so callers can set an exit status.
func (s *Server) RunOnce(ctx context.Context, date string) (setter.Result, error) {
	defer s.release()
	if s.poller == nil {
		return setter.Result{}, errors.New("scheduler not configured")
	}
	res, err := s.poller.Run(ctx, date)
	if err != nil {
		return res, fmt.Errorf("lineup run %s: %w", res.Date, err)
	}
	return res, nil
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop scheduler", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "err", err)
		}
	}

	s.releaseWith(shutdownCtx)
	logging.Info(s.logger, "shutdown complete")
}

func (s *Server) release() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.releaseWith(ctx)
}

func (s *Server) releaseWith(ctx context.Context) {
	if s.metricsStop != nil {
		if err := s.metricsStop(ctx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "err", err)
		}
		s.metricsStop = nil
	}
	closeAll(s.closers, s.logger)
	s.closers = nil
}

func closeAll(closers []io.Closer, logger *slog.Logger) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logging.Warn(logger, "close failed", "err", err)
		}
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:        cfg.Metrics.Enabled,
		Port:           cfg.Metrics.Port,
		ServiceName:    cfg.Metrics.ServiceName,
		OtlpEndpoint:   cfg.Metrics.OtlpEndpoint,
		OtlpInsecure:   cfg.Metrics.OtlpInsecure,
		ExportInterval: cfg.Metrics.ExportInterval,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(&http.Server{
			Addr:              ":" + recCfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readTimeout,
		})
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "err", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

var _ handlers.Authorizer = (*auth.Provider)(nil)
