package espn

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

// FetchNews retrieves and normalizes league headlines.
func (c *Client) FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(league, "news"), nil)
	if err != nil {
		return nil, err
	}
	setFreshHeaders(req, c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	root, err := feed.Decode(resp.Body)
	if err != nil {
		return nil, &providers.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Detail:     "unreadable news body",
			Err:        err,
		}
	}
	return feed.Articles(root, league.Key, c.now()), nil
}
