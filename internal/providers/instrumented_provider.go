package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
)

// instrumentedProvider records metrics and logs around each upstream call.
// It performs exactly one attempt; retry cadence belongs to clients.
type instrumentedProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	now          func() time.Time
}

// NewInstrumentedProvider wraps inner with logging and metrics.
func NewInstrumentedProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string) DataProvider {
	if providerName == "" {
		providerName = "provider"
	}
	return &instrumentedProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		now:          time.Now,
	}
}

func (p *instrumentedProvider) FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error) {
	if p.inner == nil {
		return feed.Node{}, ErrProviderUnavailable
	}

	start := p.now()
	root, err := p.inner.FetchScoreboard(ctx, league, date)
	elapsed := p.now().Sub(start)

	if empty, ok := AsEmptyFeed(err); ok {
		p.metrics.RecordProviderAttempt(p.providerName, elapsed, nil)
		p.metrics.RecordEmptyFeed(p.providerName, empty.StatusCode)
		logging.Info(logging.FromContext(ctx, p.logger), "upstream scoreboard empty",
			slog.String(logging.FieldProvider, p.providerName),
			slog.String(logging.FieldLeague, league.Key),
			slog.String(logging.FieldDate, date),
			slog.Int(logging.FieldStatusCode, empty.StatusCode),
		)
		return root, err
	}

	p.metrics.RecordProviderAttempt(p.providerName, elapsed, err)
	logUpstream(ctx, logging.FromContext(ctx, p.logger), p.providerName, "scoreboard", err, elapsed,
		slog.String(logging.FieldLeague, league.Key),
		slog.String(logging.FieldDate, date),
	)
	return root, err
}

func (p *instrumentedProvider) FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}

	start := p.now()
	articles, err := p.inner.FetchNews(ctx, league)
	elapsed := p.now().Sub(start)

	p.metrics.RecordProviderAttempt(p.providerName, elapsed, err)
	logUpstream(ctx, logging.FromContext(ctx, p.logger), p.providerName, "news", err, elapsed,
		slog.String(logging.FieldLeague, league.Key),
		slog.Int(logging.FieldCount, len(articles)),
	)
	return articles, err
}
