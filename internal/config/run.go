package config

import "time"

// RunConfig controls when lineup runs happen and how they behave.
type RunConfig struct {
	Schedule string // cron spec, minute resolution
	Timezone string
	OnStart  bool // run once immediately at boot
	Timeout  time.Duration
	DryRun   bool // compute and report without submitting
	Once     bool // run a single pass and exit instead of serving
	Date     string
}

// LineupConfig holds league shape and local state locations.
type LineupConfig struct {
	Slots         string
	RankingsFile  string
	HistoryDir    string
	RetentionDays int
}

func loadRun() RunConfig {
	return RunConfig{
		Schedule: envOrDefault(envRunSchedule, defaultRunSchedule),
		Timezone: envOrDefault(envRunTimezone, defaultRunTimezone),
		OnStart:  boolEnvOrDefault(envRunOnStart, false),
		Timeout:  durationEnvOrDefault(envRunTimeout, defaultRunTimeout),
		DryRun:   boolEnvOrDefault(envDryRun, false),
		Once:     boolEnvOrDefault(envRunOnce, false),
		Date:     envOrDefault(envRunDate, ""),
	}
}

func loadLineup() LineupConfig {
	return LineupConfig{
		Slots:         envOrDefault(envSlots, defaultSlots),
		RankingsFile:  envOrDefault(envRankingsFile, defaultRankingsFile),
		HistoryDir:    envOrDefault(envHistoryDir, defaultHistoryDir),
		RetentionDays: intEnvOrDefault(envHistoryDays, defaultHistoryDays, 1),
	}
}
