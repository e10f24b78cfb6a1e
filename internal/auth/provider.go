// Package auth runs the OAuth2 authorization-code flow against Yahoo and
// keeps a refreshed access token available for API calls.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
)

const (
	defaultAuthURL  = "https://api.login.yahoo.com/oauth2/request_auth"
	defaultTokenURL = "https://api.login.yahoo.com/oauth2/get_token"
	// ScopeFantasyWrite grants read/write access to fantasy sports data.
	ScopeFantasyWrite = "fspt-w"
)

// Config describes the OAuth client registered with Yahoo.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	Scopes       []string
	HTTPClient   *http.Client
}

// Status summarizes the stored token without exposing it.
type Status struct {
	HasToken    bool      `json:"hasToken"`
	Expiry      time.Time `json:"expiry,omitempty"`
	Refreshable bool      `json:"refreshable"`
}

// Provider hands out valid access tokens and persists rotated ones.
type Provider struct {
	oauth      *oauth2.Config
	store      TokenStore
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
	mu         sync.Mutex
}

// NewProvider builds a Provider. Missing endpoints default to Yahoo's.
func NewProvider(cfg Config, store TokenStore, logger *slog.Logger) *Provider {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{ScopeFantasyWrite}
	}
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		store:      store,
		httpClient: cfg.HTTPClient,
		logger:     logger,
		now:        time.Now,
	}
}

func (p *Provider) configured() bool {
	return p.oauth.ClientID != "" && p.oauth.ClientSecret != ""
}

func (p *Provider) clientContext(ctx context.Context) context.Context {
	if p.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	return ctx
}

// AuthCodeURL returns the consent page URL the operator visits once.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token and stores it.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if !p.configured() {
		return nil, &Error{Op: "exchange", Kind: ErrNotConfigured}
	}
	if code == "" {
		return nil, &Error{Op: "exchange", Kind: ErrExchange, Err: errors.New("missing code")}
	}
	tok, err := p.oauth.Exchange(p.clientContext(ctx), code)
	if err != nil {
		return nil, &Error{Op: "exchange", Kind: ErrExchange, Err: err}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Save(ctx, tok); err != nil {
		return nil, &Error{Op: "exchange", Kind: ErrExchange, Err: err}
	}
	logging.Info(logging.FromContext(ctx, p.logger), "oauth token stored", "expiry", tok.Expiry)
	return tok, nil
}

// AccessToken returns a valid access token, refreshing and persisting it when
// it has expired. A refresh response without a refresh token keeps the old one.
func (p *Provider) AccessToken(ctx context.Context) (string, error) {
	if !p.configured() {
		return "", &Error{Op: "access_token", Kind: ErrNotConfigured}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	stored, err := p.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return "", &Error{Op: "access_token", Kind: ErrNoToken}
		}
		return "", &Error{Op: "access_token", Kind: ErrNoToken, Err: err}
	}

	current := *stored
	if current.Expiry.IsZero() {
		// Tokens saved without an expiry cannot be trusted to still be live.
		current.Expiry = p.now().Add(-time.Second)
	}

	fresh, err := p.oauth.TokenSource(p.clientContext(ctx), &current).Token()
	if err != nil {
		return "", &Error{Op: "access_token", Kind: ErrRefresh, Err: err}
	}

	if fresh.AccessToken != stored.AccessToken || fresh.RefreshToken != stored.RefreshToken {
		if err := p.store.Save(ctx, fresh); err != nil {
			logging.Error(logging.FromContext(ctx, p.logger), "persist refreshed token failed", err)
		} else {
			logging.Info(logging.FromContext(ctx, p.logger), "oauth token refreshed", "expiry", fresh.Expiry)
		}
	}
	return fresh.AccessToken, nil
}

// Status reports whether a token is stored, for the setup page.
func (p *Provider) Status(ctx context.Context) (Status, error) {
	tok, err := p.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return Status{}, nil
		}
		return Status{}, err
	}
	return Status{HasToken: true, Expiry: tok.Expiry, Refreshable: tok.RefreshToken != ""}, nil
}
