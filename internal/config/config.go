package config

// Config holds runtime configuration for the service.
type Config struct {
	Port       string
	Provider   string
	AdminToken string
	Run        RunConfig
	Lineup     LineupConfig
	Yahoo      YahooConfig
	Schedule   ScheduleConfig
	Tokens     TokenConfig
	Notify     NotifyConfig
	Metrics    MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Provider:   envOrDefault(envProvider, defaultProvider),
		AdminToken: secretEnv(envAdminToken),
		Run:        loadRun(),
		Lineup:     loadLineup(),
		Yahoo:      loadYahoo(),
		Schedule:   loadSchedule(),
		Tokens:     loadTokens(),
		Notify:     loadNotify(),
		Metrics:    loadMetrics(),
	}
}
