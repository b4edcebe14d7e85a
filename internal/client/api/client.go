package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "scorewatch/1.0"
	errorBodyLimit   = 4 << 10
)

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Message)
}

// Config controls how the client reaches the service.
type Config struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the scoreboard service API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient constructs a client. A nil HTTPClient gets one with Timeout.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Scoreboard fetches the current slate for league.
func (c *Client) Scoreboard(ctx context.Context, league string) (games.ScoreboardPayload, error) {
	q := url.Values{}
	if league != "" {
		q.Set("league", league)
	}
	var payload games.ScoreboardPayload
	err := c.getJSON(ctx, "/api/scoreboard", q, &payload)
	return payload, err
}

// News fetches the merged headline feed.
func (c *Client) News(ctx context.Context) (news.Payload, error) {
	var payload news.Payload
	err := c.getJSON(ctx, "/api/news", nil, &payload)
	return payload, err
}

// LeagueList is the /api/leagues response.
type LeagueList struct {
	Default string           `json:"default"`
	Leagues []leagues.League `json:"leagues"`
}

// Leagues lists the leagues the service supports.
func (c *Client) Leagues(ctx context.Context) (LeagueList, error) {
	var list LeagueList
	err := c.getJSON(ctx, "/api/leagues", nil, &list)
	return list, err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	var parsed struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		msg = parsed.Error
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}

// AsStatusError unwraps a *StatusError when present.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
