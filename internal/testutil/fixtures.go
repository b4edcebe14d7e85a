package testutil

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
)

// Event renders a minimal upstream event with both sides present.
func Event(id, date, state string) string {
	return fmt.Sprintf(`{"id":"event-%[1]s","date":%[2]q,"competitions":[{"id":%[1]q,"date":%[2]q,`+
		`"status":{"type":{"state":%[3]q,"detail":"detail","shortDetail":"short"}},`+
		`"competitors":[`+
		`{"homeAway":"home","score":"2","team":{"id":"home","displayName":"Home Club","abbreviation":"HOM"}},`+
		`{"homeAway":"away","score":"1","team":{"id":"away","displayName":"Away Club","abbreviation":"AWY"}}]}]}`,
		id, date, state)
}

// ScoreboardDoc renders a scoreboard document with a day marker, an
// optional calendar and the given events.
func ScoreboardDoc(day string, calendar []string, events ...string) string {
	cal := "[]"
	if len(calendar) > 0 {
		cal = `["` + strings.Join(calendar, `","`) + `"]`
	}
	return fmt.Sprintf(`{"day":{"date":%q},"leagues":[{"calendar":%s}],"events":[%s]}`,
		day, cal, strings.Join(events, ","))
}

// SampleArticle returns an article for league with a stable URL.
func SampleArticle(league, id, published string) news.Article {
	return news.Article{
		ID:          id,
		Title:       "Headline " + id,
		Summary:     "Summary " + id,
		League:      league,
		PublishedAt: published,
		URL:         "https://example.com/" + league + "/" + id,
	}
}
