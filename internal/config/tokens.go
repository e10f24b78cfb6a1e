package config

const (
	envTokenStore    = "TOKEN_STORE"
	envTokenFile     = "TOKEN_FILE"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"
	envTokenRedisKey = "TOKEN_REDIS_KEY"

	defaultTokenStore    = "file"
	defaultTokenFile     = "yahoo_tokens.json"
	defaultRedisAddr     = "localhost:6379"
	defaultTokenRedisKey = "nhl-lineup:yahoo-token"
)

// TokenConfig selects where OAuth tokens are persisted.
type TokenConfig struct {
	Store         string // "file" or "redis"
	File          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

func loadTokens() TokenConfig {
	return TokenConfig{
		Store:         envOrDefault(envTokenStore, defaultTokenStore),
		File:          envOrDefault(envTokenFile, defaultTokenFile),
		RedisAddr:     envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisPassword: secretEnv(envRedisPassword),
		RedisDB:       intEnvOrDefault(envRedisDB, 0, 0),
		RedisKey:      envOrDefault(envTokenRedisKey, defaultTokenRedisKey),
	}
}
