package providers

import (
	"context"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
)

// ScoreboardProvider fetches one raw scoreboard document.
// The date parameter, when provided, is YYYYMMDD or YYYY-MM-DD; empty means
// whatever day the upstream currently considers "today".
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error)
}

// NewsProvider fetches normalized headlines for a league.
type NewsProvider interface {
	FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScoreboardProvider
	NewsProvider
}
