package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// secretFileSuffix names the companion variable that points at a mounted secret.
const secretFileSuffix = "_FILE"

func envOrDefault(key, defaultValue string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultValue
}

// secretEnv reads key directly, or the contents of the file named by key_FILE.
// An unreadable file yields "".
func secretEnv(key string) string {
	if val := envOrDefault(key, ""); val != "" {
		return val
	}
	path := envOrDefault(key+secretFileSuffix, "")
	if path == "" {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := envOrDefault(key, "")
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// intEnvOrDefault accepts values >= min; anything else keeps the default.
func intEnvOrDefault(key string, defaultValue, min int) int {
	raw := envOrDefault(key, "")
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < min {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw := strings.ToLower(envOrDefault(key, ""))
	switch raw {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return val
}
