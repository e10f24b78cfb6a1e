package config

import "time"

const (
	envPort          = "PORT"
	envProvider      = "PROVIDER"
	envAdminToken    = "ADMIN_TOKEN"
	envRunSchedule   = "RUN_SCHEDULE"
	envRunTimezone   = "RUN_TIMEZONE"
	envRunOnStart    = "RUN_ON_START"
	envRunTimeout    = "RUN_TIMEOUT"
	envDryRun        = "DRY_RUN"
	envRunOnce       = "RUN_ONCE"
	envRunDate       = "RUN_DATE"
	envSlots         = "LINEUP_SLOTS"
	envRankingsFile  = "RANKINGS_FILE"
	envHistoryDir    = "HISTORY_DIR"
	envHistoryDays   = "HISTORY_RETENTION_DAYS"
	envScheduleURL   = "NHL_SCHEDULE_BASE_URL"
	envScheduleRetry = "NHL_SCHEDULE_RETRIES"

	// Must match the port in the registered OAuth redirect URI.
	defaultPort          = "5000"
	defaultProvider      = "fixture"
	defaultRunSchedule   = "0 9 * * *"
	defaultRunTimezone   = "America/New_York"
	defaultRunTimeout    = 2 * time.Minute
	defaultSlots         = "C:2,LW:2,RW:2,D:4,G:2"
	defaultRankingsFile  = "rankings.json"
	defaultHistoryDir    = "data/lineups"
	defaultHistoryDays   = 30
	defaultScheduleURL   = "https://api-web.nhle.com/v1"
	defaultScheduleRetry = 3
)
