package server

import (
	"context"

	"github.com/preston-bernstein/nhl-lineup-service/internal/app/setter"
	"github.com/preston-bernstein/nhl-lineup-service/internal/poller"
)

// Poller defines the scheduler behavior needed by the server.
type Poller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() poller.Status
	Run(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error)
	TryRun(ctx context.Context, date string, opts ...setter.RunOption) (setter.Result, error)
}
