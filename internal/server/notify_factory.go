package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/config"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
	"github.com/preston-bernstein/nhl-lineup-service/internal/notify"
)

const notifyTimeout = 10 * time.Second

// buildNotifier enables every channel whose settings are complete.
func buildNotifier(cfg config.NotifyConfig, logger *slog.Logger, recorder *metrics.Recorder) *notify.Multi {
	var channels []notify.Channel
	if cfg.DiscordWebhookURL != "" {
		channels = append(channels, notify.NewDiscord(cfg.DiscordWebhookURL, &http.Client{Timeout: notifyTimeout}))
	}
	if cfg.EmailEnabled() {
		channels = append(channels, notify.NewEmail(notify.EmailConfig{
			From:     cfg.EmailFrom,
			To:       cfg.EmailTo,
			Password: cfg.EmailPassword,
			Host:     cfg.SMTPServer,
			Port:     cfg.SMTPPort,
		}))
	}
	if cfg.SMSEnabled() {
		channels = append(channels, notify.NewSMS(notify.SMSConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioFrom,
			To:         cfg.TwilioTo,
		}))
	}

	m := notify.NewMulti(logger, recorder, channels...)
	if len(channels) == 0 {
		logging.Warn(logger, "no notification channels configured")
	} else {
		logging.Info(logger, "notification channels configured", "channels", m.Channels())
	}
	return m
}
