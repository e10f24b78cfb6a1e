package config

import "time"

const (
	envYahooClientID     = "YAHOO_CLIENT_ID"
	envYahooClientSecret = "YAHOO_CLIENT_SECRET"
	envYahooRedirectURI  = "YAHOO_REDIRECT_URI"
	envYahooTeamKey      = "YAHOO_TEAM_KEY"
	envYahooBaseURL      = "YAHOO_BASE_URL"
	envYahooAuthURL      = "YAHOO_AUTH_URL"
	envYahooTokenURL     = "YAHOO_TOKEN_URL"
	envYahooRateInterval = "YAHOO_RATE_INTERVAL"

	defaultYahooRedirectURI = "http://localhost:5000/callback"
	defaultYahooBaseURL     = "https://fantasysports.yahooapis.com/fantasy/v2"
	defaultYahooAuthURL     = "https://api.login.yahoo.com/oauth2/request_auth"
	defaultYahooTokenURL    = "https://api.login.yahoo.com/oauth2/get_token"
	defaultYahooRate        = time.Second
)

// YahooConfig controls how we talk to the Yahoo Fantasy Sports API.
type YahooConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TeamKey      string
	BaseURL      string
	AuthURL      string
	TokenURL     string
	RateInterval time.Duration // minimum spacing between API calls
}

// HasCredentials reports whether OAuth client credentials are configured.
func (c YahooConfig) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func loadYahoo() YahooConfig {
	return YahooConfig{
		ClientID:     envOrDefault(envYahooClientID, ""),
		ClientSecret: secretEnv(envYahooClientSecret),
		RedirectURI:  envOrDefault(envYahooRedirectURI, defaultYahooRedirectURI),
		TeamKey:      envOrDefault(envYahooTeamKey, ""),
		BaseURL:      envOrDefault(envYahooBaseURL, defaultYahooBaseURL),
		AuthURL:      envOrDefault(envYahooAuthURL, defaultYahooAuthURL),
		TokenURL:     envOrDefault(envYahooTokenURL, defaultYahooTokenURL),
		RateInterval: durationEnvOrDefault(envYahooRateInterval, defaultYahooRate),
	}
}

// ScheduleConfig controls the NHL schedule lookup.
type ScheduleConfig struct {
	BaseURL    string
	MaxRetries int
}

func loadSchedule() ScheduleConfig {
	return ScheduleConfig{
		BaseURL:    envOrDefault(envScheduleURL, defaultScheduleURL),
		MaxRetries: intEnvOrDefault(envScheduleRetry, defaultScheduleRetry, 1),
	}
}
