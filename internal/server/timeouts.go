package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 3 * time.Minute // admin runs are synchronous
	idleTimeout  = 60 * time.Second

	historyMemoryDays = 30
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
