package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/scoreboard-service/internal/cache"
	"github.com/preston-bernstein/scoreboard-service/internal/config"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

// buildRegistry loads the league file when configured, falling back to the
// embedded registry on error so a bad file never blocks startup.
func buildRegistry(cfg config.Config, logger *slog.Logger) *leagues.Registry {
	if cfg.LeaguesFile == "" {
		return leagues.Builtin()
	}
	reg, err := leagues.Load(cfg.LeaguesFile)
	if err != nil {
		logging.Warn(logger, "league file unreadable, using built-in leagues",
			"file", cfg.LeaguesFile,
			"error", err,
		)
		return leagues.Builtin()
	}
	return reg
}

// buildCache opens the configured news cache. A redis failure degrades to
// the in-memory store.
func buildCache(ctx context.Context, cfg config.Config, logger *slog.Logger) cache.Store {
	store, err := cache.New(ctx, cache.Config{
		Backend: cfg.Cache.Backend,
		Redis: cache.RedisConfig{
			URL:      cfg.Cache.RedisURL,
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   cfg.Cache.RedisPrefix,
		},
	})
	if err != nil {
		logging.Warn(logger, "news cache unavailable, using memory store",
			logging.FieldCache, cfg.Cache.Backend,
			"error", err,
		)
		return cache.NewMemoryStore()
	}
	return store
}
