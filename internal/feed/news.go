package feed

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

var (
	whitespace   = regexp.MustCompile(`\s+`)
	bylinePrefix = regexp.MustCompile(`(?i)^by\s+`)
)

// Articles maps an upstream news payload for one league. Entries without a
// link are dropped; publish times that cannot be read become now.
func Articles(root Node, league string, now time.Time) []news.Article {
	raw := root.Get("articles").Items()
	if raw == nil {
		raw = root.Get("headlines").Items()
	}

	out := make([]news.Article, 0, len(raw))
	for i, item := range raw {
		url, ok := FirstNonEmpty(
			item.Get("links", "web", "href"),
			item.Get("links", "mobile", "href"),
			item.Get("link"),
			item.Get("href"),
		)
		if !ok {
			continue
		}

		title := cleanText(StringOr(url,
			item.Get("headline"), item.Get("title"), item.Get("name"),
			item.Get("shortHeadline"), item.Get("summary"),
		))
		if title == "" {
			title = url
		}

		id, ok := FirstNonEmpty(item.Get("id"), item.Get("guid"))
		if !ok {
			id = fmt.Sprintf("%s-%d-%s", league, i, url)
		}

		out = append(out, news.Article{
			ID:          id,
			Title:       title,
			Summary:     cleanText(StringOr("", item.Get("description"), item.Get("summary"), item.Get("subtitle"))),
			League:      league,
			PublishedAt: publishedAt(item, now),
			Author:      byline(item.Get("byline")),
			URL:         url,
		})
	}
	return out
}

func publishedAt(item Node, now time.Time) string {
	raw, _ := FirstString(
		item.Get("published"), item.Get("publishedAt"), item.Get("lastModified"),
		item.Get("updated"), item.Get("created"), item.Get("displayDate"),
	)
	if parsed, ok := timeutil.ParseInstant(raw); ok {
		return timeutil.FormatInstant(parsed)
	}
	return timeutil.FormatInstant(now)
}

func byline(n Node) string {
	s, _ := n.AsString()
	s = cleanText(s)
	return strings.TrimSpace(bylinePrefix.ReplaceAllString(s, ""))
}

func cleanText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
