package notify

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailConfig holds SMTP settings. The sender address doubles as the login.
type EmailConfig struct {
	From     string
	To       string
	Password string
	Host     string
	Port     int
}

// Email sends plain-text mail over SMTP with STARTTLS and PLAIN auth.
type Email struct {
	cfg  EmailConfig
	auth smtp.Auth
	send sendMailFunc
	now  func() time.Time
}

// NewEmail returns an Email channel.
func NewEmail(cfg EmailConfig) *Email {
	var auth smtp.Auth
	if cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)
	}
	return &Email{cfg: cfg, auth: auth, send: smtp.SendMail, now: time.Now}
}

func (e *Email) Name() string { return "email" }

func (e *Email) NotifySuccess(ctx context.Context, a lineup.Assignment) error {
	return e.deliver(ctx, successSubject, strings.Join(summaryLines(a), "\n"))
}

func (e *Email) NotifyFailure(ctx context.Context, status int, message string) error {
	return e.deliver(ctx, failureSubject, failureBody(status, message))
}

func (e *Email) deliver(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := net.JoinHostPort(e.cfg.Host, strconv.Itoa(e.cfg.Port))
	if err := e.send(addr, e.auth, e.cfg.From, []string{e.cfg.To}, e.message(subject, body)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (e *Email) message(subject, body string) []byte {
	from := mail.Address{Name: senderName, Address: e.cfg.From}
	to := mail.Address{Address: e.cfg.To}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", to.String())
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", e.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	buf.WriteString("\r\n")
	return buf.Bytes()
}
