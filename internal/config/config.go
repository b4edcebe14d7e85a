package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Provider        string
	LeaguesFile     string
	CORSOrigins     []string
	ShutdownTimeout Duration
	ESPN            ESPNConfig
	Cache           CacheConfig
	Logging         LoggingConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        envOrDefault(envProvider, defaultProvider),
		LeaguesFile:     envOrDefault(envLeaguesFile, ""),
		CORSOrigins:     listEnvOrDefault(envCORSOrigins, []string{"*"}),
		ShutdownTimeout: durationEnvOrDefault(envShutdownGrace, defaultShutdownGrace),
		ESPN:            loadESPN(),
		Cache:           loadCache(),
		Logging:         loadLogging(),
		Metrics:         loadMetrics(),
	}
}
