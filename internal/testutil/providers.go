package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

// StaticProvider serves canned scoreboard documents keyed by date and
// canned articles keyed by league. Unknown dates answer with a 404 empty feed.
type StaticProvider struct {
	Docs     map[string]string
	Articles map[string][]news.Article
	Err      error
	Calls    atomic.Int32
}

func (p *StaticProvider) FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return feed.Node{}, p.Err
	}
	doc, ok := p.Docs[date]
	if !ok {
		return feed.Node{}, &providers.EmptyFeedError{Provider: "static", StatusCode: 404}
	}
	return feed.Parse([]byte(doc))
}

func (p *StaticProvider) FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Articles[league.Key], nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error) {
	return feed.Node{}, p.Err
}

func (p ErrProvider) FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error) {
	return nil, p.Err
}
