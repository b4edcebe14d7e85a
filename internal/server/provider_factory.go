package server

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/scoreboard-service/internal/config"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/espn"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/fixture"
)

// providerFactory assembles the provider with shared wrappers (concurrency cap + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	limited := providers.NewLimitedProvider(base, cfg.ESPN.MaxInFlight, f.logger)
	return providers.NewInstrumentedProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base))
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "espn", "":
		return espn.NewClient(espn.Config{
			BaseURL:    cfg.ESPN.BaseURL,
			UserAgent:  cfg.ESPN.UserAgent,
			HTTPClient: &http.Client{Timeout: cfg.ESPN.Timeout},
		})
	case "fixture":
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
