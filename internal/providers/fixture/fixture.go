package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

var _ providers.DataProvider = (*Provider)(nil)

type team struct {
	id, name, short, abbr string
}

var rosters = map[string][]team{
	"wnba": {
		{"17", "Las Vegas Aces", "Aces", "LV"},
		{"5", "Indiana Fever", "Fever", "IND"},
		{"18", "New York Liberty", "Liberty", "NY"},
		{"19", "Seattle Storm", "Storm", "SEA"},
	},
	"nwsl": {
		{"15362", "Portland Thorns FC", "Thorns", "POR"},
		{"15366", "San Diego Wave FC", "Wave", "SD"},
		{"15364", "Kansas City Current", "Current", "KC"},
		{"15360", "Washington Spirit", "Spirit", "WAS"},
	},
	"pwhl": {
		{"1", "Boston Fleet", "Fleet", "BOS"},
		{"2", "Minnesota Frost", "Frost", "MIN"},
		{"3", "Montreal Victoire", "Victoire", "MTL"},
		{"4", "Toronto Sceptres", "Sceptres", "TOR"},
	},
}

// Provider returns ESPN-shaped documents useful for local development.
// Each day carries two games, so sparse-slate expansion is exercised.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchScoreboard returns a deterministic scoreboard for league and date.
func (p *Provider) FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error) {
	if err := ctx.Err(); err != nil {
		return feed.Node{}, err
	}

	today := p.now().UTC().Truncate(24 * time.Hour)
	day := today
	if date != "" {
		normalized, ok := timeutil.NormalizeDate(date)
		if !ok {
			return feed.Node{}, fmt.Errorf("%w: %q", providers.ErrInvalidDate, date)
		}
		day, _ = timeutil.ParseDate(normalized)
	}

	roster, ok := rosters[league.Key]
	if !ok {
		return feed.Node{}, &providers.EmptyFeedError{Provider: "fixture", StatusCode: 404}
	}

	calendar := make([]any, 0, 4)
	for i := 0; i < 4; i++ {
		calendar = append(calendar, day.AddDate(0, 0, i).Add(7*time.Hour).Format("2006-01-02T15:04Z"))
	}

	live := day.Equal(today)
	offset := int(day.Unix()/86400) % 2
	events := []any{
		event(league, day, 0, roster[offset], roster[offset+2], live),
		event(league, day, 1, roster[1-offset], roster[3-offset], false),
	}

	return feed.Wrap(map[string]any{
		"day":     map[string]any{"date": timeutil.FormatDate(day)},
		"leagues": []any{map[string]any{"abbreviation": league.Label, "calendar": calendar}},
		"events":  events,
	}), nil
}

func event(league leagues.League, day time.Time, slot int, home, away team, live bool) map[string]any {
	id := fmt.Sprintf("%s-%s-%d", league.Key, timeutil.FormatCompact(day), slot)
	start := day.Add(time.Duration(22+slot) * time.Hour).Format("2006-01-02T15:04Z")

	status := map[string]any{"state": "pre", "detail": "Scheduled", "shortDetail": "7:00 PM"}
	var homeScore, awayScore any
	if live {
		status = map[string]any{"state": "in", "detail": "2nd Half", "shortDetail": "2nd"}
		homeScore, awayScore = "41", "38"
	}

	return map[string]any{
		"id":   id,
		"date": start,
		"competitions": []any{map[string]any{
			"id":         id,
			"date":       start,
			"venue":      map[string]any{"fullName": home.name + " Arena"},
			"broadcasts": []any{map[string]any{"names": []any{"ION"}}},
			"status":     map[string]any{"type": status},
			"competitors": []any{
				competitor(home, "home", homeScore),
				competitor(away, "away", awayScore),
			},
		}},
	}
}

func competitor(t team, side string, score any) map[string]any {
	c := map[string]any{
		"id":       t.id,
		"homeAway": side,
		"team": map[string]any{
			"id":               t.id,
			"displayName":      t.name,
			"shortDisplayName": t.short,
			"abbreviation":     t.abbr,
		},
		"records": []any{map[string]any{"type": "total", "summary": "10-5"}},
	}
	if score != nil {
		c["score"] = score
	}
	return c
}

// FetchNews returns two deterministic headlines per league.
func (p *Provider) FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now().UTC()
	return []news.Article{
		{
			ID:          league.Key + "-fixture-1",
			Title:       league.Label + " weekend preview",
			Summary:     "Storylines to watch across the " + league.Label + " slate.",
			League:      league.Key,
			PublishedAt: timeutil.FormatInstant(now.Add(-time.Hour)),
			Author:      "Fixture Desk",
			URL:         "https://example.com/" + league.Key + "/preview",
		},
		{
			ID:          league.Key + "-fixture-2",
			Title:       league.Label + " power rankings",
			Summary:     "Who is rising and who is slipping.",
			League:      league.Key,
			PublishedAt: timeutil.FormatInstant(now.Add(-5 * time.Hour)),
			URL:         "https://example.com/" + league.Key + "/rankings",
		},
	}, nil
}
