package config

import "time"

const (
	envPort          = "PORT"
	envProvider      = "PROVIDER"
	envLeaguesFile   = "LEAGUES_FILE"
	envCORSOrigins   = "CORS_ALLOWED_ORIGINS"
	envShutdownGrace = "SHUTDOWN_TIMEOUT"

	envESPNBaseURL   = "ESPN_BASE_URL"
	envESPNUserAgent = "ESPN_USER_AGENT"
	envESPNTimeout   = "ESPN_TIMEOUT"
	envMaxInFlight   = "UPSTREAM_MAX_IN_FLIGHT"

	envCacheBackend  = "NEWS_CACHE_BACKEND"
	envCacheTTL      = "NEWS_CACHE_TTL"
	envRedisURL      = "REDIS_URL"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"
	envRedisPrefix   = "REDIS_PREFIX"

	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"
	envLogFile   = "LOG_FILE"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort          = "4000"
	defaultProvider      = "espn"
	defaultShutdownGrace = 10 * Duration(time.Second)

	defaultESPNBaseURL   = "https://site.api.espn.com/apis/site/v2/sports"
	defaultESPNUserAgent = "rtg-sports/1.0"
	defaultESPNTimeout   = 10 * Duration(time.Second)
	defaultMaxInFlight   = 8

	defaultCacheBackend = "memory"
	// News is advertised with a five minute refresh, so the cache matches it.
	defaultCacheTTL    = 5 * Duration(time.Minute)
	defaultRedisPrefix = "scoreboard:"

	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	defaultMetricsPort = "9090"
	defaultServiceName = "scoreboard-service"
)
