package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nhl-lineup-service/internal/config"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run(config.Load()))
}

func run(cfg config.Config) int {
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "nhl-lineup-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		return 1
	}

	if cfg.Run.Once {
		res, err := srv.RunOnce(ctx, cfg.Run.Date)
		if err != nil {
			logging.Error(logger, "lineup run failed", err, logging.FieldRunID, res.RunID)
			return 1
		}
		logging.Info(logger, "lineup run finished",
			logging.FieldRunID, res.RunID,
			logging.FieldDate, res.Date,
			logging.FieldOutcome, res.Outcome,
		)
		return 0
	}

	srv.Run(ctx, stop)
	return 0
}
