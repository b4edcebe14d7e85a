package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// Config controls how the ESPN client reaches the upstream API.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

var _ providers.DataProvider = (*Client)(nil)

// Client fetches scoreboards and news from ESPN's public site API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchScoreboard performs one GET against the league scoreboard. A 204 or
// 404 yields *providers.EmptyFeedError; every other failure is a
// *providers.UpstreamError.
func (c *Client) FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error) {
	req, err := c.buildScoreboardRequest(ctx, league, date)
	if err != nil {
		return feed.Node{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return feed.Node{}, c.transportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound:
		return feed.Node{}, &providers.EmptyFeedError{Provider: providerName, StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return feed.Node{}, c.statusError(resp)
	}

	root, err := feed.Decode(resp.Body)
	if err != nil {
		return feed.Node{}, &providers.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Detail:     "unreadable scoreboard body",
			Err:        err,
		}
	}
	return root, nil
}

func (c *Client) buildScoreboardRequest(ctx context.Context, league leagues.League, date string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(league, "scoreboard"), nil)
	if err != nil {
		return nil, err
	}

	if date = strings.TrimSpace(date); date != "" {
		compact, ok := timeutil.CompactDate(date)
		if !ok || strings.Contains(date, "T") {
			return nil, fmt.Errorf("%w: %q", providers.ErrInvalidDate, date)
		}
		q := req.URL.Query()
		q.Set("dates", compact)
		req.URL.RawQuery = q.Encode()
	}

	setFreshHeaders(req, c.userAgent)
	return req, nil
}

func (c *Client) endpoint(league leagues.League, resource string) string {
	return c.baseURL + "/" + strings.Trim(league.Path, "/") + "/" + resource
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &providers.UpstreamError{
		Provider:   providerName,
		StatusCode: resp.StatusCode,
		Detail:     detail,
	}
}

func (c *Client) transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &providers.UpstreamError{Provider: providerName, Detail: err.Error(), Err: err}
}
