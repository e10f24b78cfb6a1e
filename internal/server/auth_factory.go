package server

import (
	"io"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nhl-lineup-service/internal/auth"
	"github.com/preston-bernstein/nhl-lineup-service/internal/config"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
)

const tokenStoreRedis = "redis"

// buildTokenStore selects file or Redis persistence. The closer is nil for files.
func buildTokenStore(cfg config.TokenConfig, logger *slog.Logger) (auth.TokenStore, io.Closer) {
	if strings.EqualFold(strings.TrimSpace(cfg.Store), tokenStoreRedis) {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		logging.Info(logger, "token store configured", "store", tokenStoreRedis, "addr", cfg.RedisAddr)
		return auth.NewRedisStore(client, cfg.RedisKey), client
	}
	logging.Info(logger, "token store configured", "store", "file", logging.FieldPath, cfg.File)
	return auth.NewFileStore(cfg.File), nil
}

// buildAuth returns the OAuth provider, or nil when no client credentials are set.
func buildAuth(cfg config.Config, logger *slog.Logger) (*auth.Provider, io.Closer) {
	if !cfg.Yahoo.HasCredentials() {
		return nil, nil
	}
	store, closer := buildTokenStore(cfg.Tokens, logger)
	p := auth.NewProvider(auth.Config{
		ClientID:     cfg.Yahoo.ClientID,
		ClientSecret: cfg.Yahoo.ClientSecret,
		RedirectURL:  cfg.Yahoo.RedirectURI,
		AuthURL:      cfg.Yahoo.AuthURL,
		TokenURL:     cfg.Yahoo.TokenURL,
	}, store, logger)
	return p, closer
}
