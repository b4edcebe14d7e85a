package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

const defaultMaxInFlight = 8

// limitedProvider caps concurrent upstream calls across every caller.
type limitedProvider struct {
	next   DataProvider
	slots  chan struct{}
	logger *slog.Logger
}

// NewLimitedProvider returns a DataProvider that admits at most maxInFlight
// upstream calls at once. Callers block until a slot frees or ctx ends.
func NewLimitedProvider(next DataProvider, maxInFlight int, logger *slog.Logger) DataProvider {
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &limitedProvider{
		next:   next,
		slots:  make(chan struct{}, maxInFlight),
		logger: logger,
	}
}

func (p *limitedProvider) FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error) {
	release, err := p.acquire(ctx)
	if err != nil {
		return feed.Node{}, err
	}
	defer release()
	return p.next.FetchScoreboard(ctx, league, date)
}

func (p *limitedProvider) FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error) {
	release, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return p.next.FetchNews(ctx, league)
}

func (p *limitedProvider) acquire(ctx context.Context) (func(), error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}
	select {
	case p.slots <- struct{}{}:
		return func() { <-p.slots }, nil
	case <-ctx.Done():
		logging.Debug(logging.FromContext(ctx, p.logger), "upstream slot wait canceled",
			"in_flight", len(p.slots),
		)
		return nil, ctx.Err()
	}
}

// InFlight reports calls currently holding a slot.
func (p *limitedProvider) InFlight() int {
	return len(p.slots)
}
