package config

// LoggingConfig is passed through to logging.NewLogger.
type LoggingConfig struct {
	Level  string
	Format string
	File   string // empty disables the rotating file sink
}

func loadLogging() LoggingConfig {
	return LoggingConfig{
		Level:  envOrDefault(envLogLevel, defaultLogLevel),
		Format: envOrDefault(envLogFormat, defaultLogFormat),
		File:   envOrDefault(envLogFile, ""),
	}
}
