// Package notify reports lineup outcomes to the operator.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
)

// Notifier reports the outcome of a lineup submission.
type Notifier interface {
	NotifySuccess(ctx context.Context, a lineup.Assignment) error
	NotifyFailure(ctx context.Context, status int, message string) error
}

// Channel is one delivery mechanism.
type Channel interface {
	Notifier
	Name() string
}

// Multi delivers to every channel. A failing channel never stops the others.
type Multi struct {
	channels []Channel
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewMulti fans out to channels. With no channels every call is a no-op.
func NewMulti(logger *slog.Logger, recorder *metrics.Recorder, channels ...Channel) *Multi {
	return &Multi{channels: channels, logger: logger, recorder: recorder}
}

// Channels returns the configured channel names.
func (m *Multi) Channels() []string {
	names := make([]string, 0, len(m.channels))
	for _, c := range m.channels {
		names = append(names, c.Name())
	}
	return names
}

func (m *Multi) NotifySuccess(ctx context.Context, a lineup.Assignment) error {
	return m.each(ctx, "success", func(c Channel) error {
		return c.NotifySuccess(ctx, a)
	})
}

func (m *Multi) NotifyFailure(ctx context.Context, status int, message string) error {
	return m.each(ctx, "failure", func(c Channel) error {
		return c.NotifyFailure(ctx, status, message)
	})
}

func (m *Multi) each(ctx context.Context, kind string, send func(Channel) error) error {
	logger := logging.FromContext(ctx, m.logger)
	var errs []error
	for _, c := range m.channels {
		err := send(c)
		m.recorder.RecordNotification(c.Name(), err)
		if err != nil {
			logging.Warn(logger, "notification failed",
				logging.FieldChannel, c.Name(),
				"kind", kind,
				"err", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			continue
		}
		logging.Info(logger, "notification sent", logging.FieldChannel, c.Name(), "kind", kind)
	}
	return errors.Join(errs...)
}
