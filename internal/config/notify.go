package config

const (
	envDiscordWebhook = "DISCORD_WEBHOOK_URL"
	envEmailFrom      = "EMAIL_FROM"
	envEmailTo        = "EMAIL_TO"
	envEmailPass      = "EMAIL_PASS"
	envSMTPServer     = "SMTP_SERVER"
	envSMTPPort       = "SMTP_PORT"
	envTwilioSID      = "TWILIO_ACCOUNT_SID"
	envTwilioToken    = "TWILIO_AUTH_TOKEN"
	envTwilioFrom     = "TWILIO_FROM_NUMBER"
	envTwilioTo       = "TWILIO_TO_NUMBER"

	defaultSMTPPort = 587
)

// NotifyConfig holds credentials for each notification channel.
// A channel is enabled only when all of its required fields are set.
type NotifyConfig struct {
	DiscordWebhookURL string

	EmailFrom     string
	EmailTo       string
	EmailPassword string
	SMTPServer    string
	SMTPPort      int

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	TwilioTo         string
}

// EmailEnabled reports whether SMTP settings are complete.
func (c NotifyConfig) EmailEnabled() bool {
	return c.EmailFrom != "" && c.EmailTo != "" && c.SMTPServer != ""
}

// SMSEnabled reports whether Twilio settings are complete.
func (c NotifyConfig) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFrom != "" && c.TwilioTo != ""
}

func loadNotify() NotifyConfig {
	return NotifyConfig{
		DiscordWebhookURL: envOrDefault(envDiscordWebhook, ""),
		EmailFrom:         envOrDefault(envEmailFrom, ""),
		EmailTo:           envOrDefault(envEmailTo, ""),
		EmailPassword:     secretEnv(envEmailPass),
		SMTPServer:        envOrDefault(envSMTPServer, ""),
		SMTPPort:          intEnvOrDefault(envSMTPPort, defaultSMTPPort, 1),
		TwilioAccountSID:  envOrDefault(envTwilioSID, ""),
		TwilioAuthToken:   secretEnv(envTwilioToken),
		TwilioFrom:        envOrDefault(envTwilioFrom, ""),
		TwilioTo:          envOrDefault(envTwilioTo, ""),
	}
}
