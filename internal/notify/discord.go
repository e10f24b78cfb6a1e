package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
)

const (
	discordGreen   = 0x2ECC71
	discordTimeout = 10 * time.Second
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type discordMessage struct {
	Username string         `json:"username,omitempty"`
	Content  string         `json:"content,omitempty"`
	Embeds   []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Color       int            `json:"color"`
	Description string         `json:"description"`
	Fields      []discordField `json:"fields"`
	Footer      discordFooter  `json:"footer"`
	Timestamp   string         `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// Discord posts to a channel webhook.
type Discord struct {
	webhookURL string
	httpClient httpDoer
	now        func() time.Time
}

// NewDiscord returns a Discord channel. A nil client gets a default timeout.
func NewDiscord(webhookURL string, client *http.Client) *Discord {
	var doer httpDoer = client
	if client == nil {
		doer = &http.Client{Timeout: discordTimeout}
	}
	return &Discord{webhookURL: webhookURL, httpClient: doer, now: time.Now}
}

func (d *Discord) Name() string { return "discord" }

// NotifySuccess posts an embed with one inline field per position and the bench last.
func (d *Discord) NotifySuccess(ctx context.Context, a lineup.Assignment) error {
	now := d.now()
	fields := make([]discordField, 0, len(a.Order)+1)
	for _, pos := range a.Order {
		fields = append(fields, discordField{Name: pos, Value: names(a.Positions[pos]), Inline: true})
	}
	fields = append(fields, discordField{Name: benchLabel, Value: names(a.Bench)})

	return d.post(ctx, discordMessage{
		Username: senderName,
		Embeds: []discordEmbed{{
			Title:       successSubject,
			Color:       discordGreen,
			Description: "Lineup successfully applied at " + now.Format("2006-01-02 15:04:05"),
			Fields:      fields,
			Footer:      discordFooter{Text: senderName},
			Timestamp:   now.UTC().Format(time.RFC3339),
		}},
	})
}

// NotifyFailure posts a plain message with the status and upstream body.
func (d *Discord) NotifyFailure(ctx context.Context, status int, message string) error {
	content := fmt.Sprintf("**%s**\n```%s```", failureSubject, Truncate(failureBody(status, message), 1800))
	return d.post(ctx, discordMessage{Username: senderName, Content: content})
}

func (d *Discord) post(ctx context.Context, msg discordMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode discord message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord webhook status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}
