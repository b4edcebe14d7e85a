package config

import "strings"

// CacheConfig selects the news response cache backend.
type CacheConfig struct {
	Backend       string // none, memory or redis
	TTL           Duration
	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

func loadCache() CacheConfig {
	return CacheConfig{
		Backend:       strings.ToLower(envOrDefault(envCacheBackend, defaultCacheBackend)),
		TTL:           durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		RedisURL:      envOrDefault(envRedisURL, ""),
		RedisAddr:     envOrDefault(envRedisAddr, ""),
		RedisPassword: envOrDefault(envRedisPassword, ""),
		RedisDB:       intEnvOrDefault(envRedisDB, 0),
		RedisPrefix:   envOrDefault(envRedisPrefix, defaultRedisPrefix),
	}
}
