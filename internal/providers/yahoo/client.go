package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers"
	"github.com/preston-bernstein/nhl-lineup-service/internal/rankings"
)

// TokenSource yields a valid bearer token for each request.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Config controls how the Yahoo client reaches the Fantasy Sports API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Rankings   rankings.Source
	Logger     *slog.Logger
}

// Client reads rosters from and writes lineups to the Yahoo Fantasy API.
type Client struct {
	baseURL    string
	httpClient httpDoer
	tokens     TokenSource
	rankings   rankings.Source
	logger     *slog.Logger
}

// NewClient constructs a Yahoo client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		tokens:     cfg.Tokens,
		rankings:   cfg.Rankings,
		logger:     cfg.Logger,
	}
}

// FetchRoster retrieves the team's current roster and ranks it with the configured overrides.
func (c *Client) FetchRoster(ctx context.Context, teamKey string) ([]players.Player, error) {
	req, err := c.newRequest(ctx, http.MethodGet, teamKey, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("yahoo: read roster: %w", err)
	}

	roster, err := ParseRoster(body, c.overrides(ctx))
	if err != nil {
		return nil, err
	}
	logging.Info(logging.FromContext(ctx, c.logger), "roster fetched",
		logging.FieldProvider, providerName,
		logging.FieldTeamKey, teamKey,
		logging.FieldCount, len(roster),
	)
	return roster, nil
}

// SubmitLineup PUTs the assignment for date. A non-2xx answer is not an
// error: the status and body are returned for the caller to report.
func (c *Client) SubmitLineup(ctx context.Context, teamKey, date string, a lineup.Assignment) (int, string, error) {
	payload, err := BuildRosterPayload(date, a)
	if err != nil {
		return 0, "", err
	}

	req, err := c.newRequest(ctx, http.MethodPut, teamKey, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", contentTypeXML)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	return resp.StatusCode, string(body), nil
}

func (c *Client) newRequest(ctx context.Context, method, teamKey string, body io.Reader) (*http.Request, error) {
	if strings.TrimSpace(teamKey) == "" {
		return nil, fmt.Errorf("yahoo: team key is required")
	}
	if c.tokens == nil {
		return nil, providers.ErrProviderUnavailable
	}
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/team/" + url.PathEscape(teamKey) + "/roster"
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", contentTypeXML)
	return req, nil
}

func (c *Client) overrides(ctx context.Context) rankings.Overrides {
	if c.rankings == nil {
		return nil
	}
	o, err := c.rankings.Overrides(ctx)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "rankings unavailable, using default ranks",
			logging.FieldProvider, providerName,
			"err", err,
		)
		return nil
	}
	return o
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: providers.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    "yahoo rate limited",
		}
	}
	return &providers.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: string(body)}
}
