package config

// ESPNConfig controls how we talk to the ESPN site API.
type ESPNConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   Duration

	// MaxInFlight caps concurrent upstream calls across all requests.
	MaxInFlight int
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		BaseURL:     envOrDefault(envESPNBaseURL, defaultESPNBaseURL),
		UserAgent:   envOrDefault(envESPNUserAgent, defaultESPNUserAgent),
		Timeout:     durationEnvOrDefault(envESPNTimeout, defaultESPNTimeout),
		MaxInFlight: intEnvOrDefault(envMaxInFlight, defaultMaxInFlight),
	}
}
