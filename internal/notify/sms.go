package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
)

const smsMaxLen = 320

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSConfig holds Twilio credentials and numbers in E.164 form.
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
}

// SMS sends short text messages through Twilio.
type SMS struct {
	api  messageCreator
	from string
	to   string
}

// NewSMS returns an SMS channel backed by the Twilio REST client.
func NewSMS(cfg SMSConfig) *SMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &SMS{api: client.Api, from: cfg.From, to: cfg.To}
}

func (s *SMS) Name() string { return "sms" }

func (s *SMS) NotifySuccess(ctx context.Context, a lineup.Assignment) error {
	starters := a.Count() - len(a.Bench)
	return s.send(ctx, fmt.Sprintf("%s: %d starters set, %d on bench.", successSubject, starters, len(a.Bench)))
}

func (s *SMS) NotifyFailure(ctx context.Context, status int, message string) error {
	return s.send(ctx, fmt.Sprintf("%s (%d): %s", failureSubject, status, message))
}

func (s *SMS) send(ctx context.Context, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(Truncate(body, smsMaxLen))

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}
