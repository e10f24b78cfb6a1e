package nhle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers"
)

// Config controls how the schedule client reaches the NHL web API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timezone   string
	Logger     *slog.Logger
}

// Client reads the public NHL schedule.
type Client struct {
	baseURL    string
	httpClient httpDoer
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

// NewClient constructs a schedule client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		loc:        resolveLocation(cfg.Timezone),
		now:        time.Now,
		logger:     cfg.Logger,
	}
}

// ActiveTeams returns the normalized codes of teams playing on date.
// An empty date means today in the configured timezone.
func (c *Client) ActiveTeams(ctx context.Context, date string) (map[string]struct{}, error) {
	date = c.resolveDate(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schedule/"+date, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &providers.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nhle: decode schedule: %w", err)
	}

	active := activeTeams(payload, date)
	logging.Info(logging.FromContext(ctx, c.logger), "schedule fetched",
		logging.FieldProvider, providerName,
		logging.FieldDate, date,
		logging.FieldCount, len(active),
	)
	return active, nil
}

func (c *Client) resolveDate(date string) string {
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err == nil {
			return date
		}
	}
	return c.now().In(c.loc).Format(dateLayout)
}

func resolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
