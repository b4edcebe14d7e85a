package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/scoreboard-service/internal/client/refresh"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

var (
	accent = lipgloss.Color("#bd93f9")
	live   = lipgloss.Color("#50fa7b")
	muted  = lipgloss.Color("#6272a4")
	amber  = lipgloss.Color("#ffb86c")
	alert  = lipgloss.Color("#ff5555")
)

// Renderer turns controller state into terminal text.
type Renderer struct {
	title   lipgloss.Style
	meta    lipgloss.Style
	card    lipgloss.Style
	winner  lipgloss.Style
	live    lipgloss.Style
	notice  lipgloss.Style
	failure lipgloss.Style

	loc *time.Location
}

// NewRenderer builds a renderer. With color off every style is plain.
func NewRenderer(color bool, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	r := &Renderer{
		title:   lipgloss.NewStyle(),
		meta:    lipgloss.NewStyle(),
		card:    lipgloss.NewStyle().PaddingLeft(2),
		winner:  lipgloss.NewStyle(),
		live:    lipgloss.NewStyle(),
		notice:  lipgloss.NewStyle(),
		failure: lipgloss.NewStyle(),
		loc:     loc,
	}
	if !color {
		return r
	}
	r.title = r.title.Foreground(accent).Bold(true)
	r.meta = r.meta.Foreground(muted)
	r.card = r.card.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(muted).BorderLeft(true).PaddingLeft(1)
	r.winner = r.winner.Bold(true).Foreground(accent)
	r.live = r.live.Foreground(live).Bold(true)
	r.notice = r.notice.Foreground(amber)
	r.failure = r.failure.Foreground(alert)
	return r
}

// Scoreboard renders one league's controller state.
func (r *Renderer) Scoreboard(label string, st refresh.State[games.ScoreboardPayload]) string {
	var b strings.Builder

	header := label
	if st.Data != nil {
		header = fmt.Sprintf("%s  %s", label, r.meta.Render(summary(st.Data, r.loc)))
	}
	if st.UsingCache {
		header += "  " + r.notice.Render("[offline]")
	}
	if st.Refreshing {
		header += "  " + r.meta.Render("refreshing")
	}
	b.WriteString(r.title.Render(header))
	b.WriteString("\n")

	if banner := Banner(label, st); banner != "" {
		style := r.notice
		if st.Error != "" {
			style = r.failure
		}
		b.WriteString(style.Render(banner))
		b.WriteString("\n")
	}

	if st.Loading && st.Data == nil {
		b.WriteString(r.meta.Render("Loading scores..."))
		b.WriteString("\n")
		return b.String()
	}
	if st.Data == nil {
		return b.String()
	}
	for _, g := range st.Data.Games {
		b.WriteString(r.card.Render(r.game(g)))
		b.WriteString("\n")
	}
	return b.String()
}

// Banner picks the single message shown above the games: the hard error,
// the saved-data notice, or the empty-slate message.
func Banner(label string, st refresh.State[games.ScoreboardPayload]) string {
	switch {
	case st.Error != "":
		return st.Error
	case st.UsingCache && st.CacheNotice != "":
		return st.CacheNotice
	case st.Loading || st.Data == nil || len(st.Data.Games) > 0:
		return ""
	}
	msg := "We don't see any scheduled or live games for " + label
	if span := DateRange(st.Data.Dates); span != "" {
		msg += " from " + span
	}
	msg += "."
	if st.Data.Notice != nil && *st.Data.Notice != "" {
		msg = *st.Data.Notice + "\n" + msg
	}
	return msg
}

// DateRange formats covered dates as "Jul 1" or "Jul 1 - Jul 3". Values that
// are not YYYY-MM-DD are skipped.
func DateRange(dates []string) string {
	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	var labels []string
	for _, d := range sorted {
		t, err := timeutil.ParseDate(d)
		if err != nil {
			continue
		}
		labels = append(labels, t.Format("Jan 2"))
	}
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return labels[0] + " - " + labels[len(labels)-1]
	}
}

func (r *Renderer) game(g games.Game) string {
	when := g.StartTime
	if t, ok := timeutil.ParseInstant(g.StartTime); ok {
		when = t.In(r.loc).Format("Mon Jan 2 3:04PM")
	}
	status := g.Status.ShortDetail
	if status == "" {
		status = string(g.Status.State)
	}
	statusText := r.meta.Render(status)
	if g.Status.State == games.StateIn {
		statusText = r.live.Render(status)
	}

	lines := []string{
		fmt.Sprintf("%s  %s", r.meta.Render(when), statusText),
		r.teamLine(g.Away, g.Home, g.Status.State),
		r.teamLine(g.Home, g.Away, g.Status.State),
	}
	if g.Venue != nil {
		lines = append(lines, r.meta.Render(*g.Venue))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) teamLine(team, opponent games.TeamScore, state games.GameState) string {
	line := fmt.Sprintf("%-4s %-24s %3s", strings.ToUpper(string(team.HomeAway)), team.DisplayName, ScoreText(team.Score))
	if team.Record != nil {
		line += "  " + r.meta.Render(*team.Record)
	}
	if Leading(team, opponent, state) {
		return r.winner.Render(line)
	}
	return line
}

// ScoreText renders a score, showing a missing value as "--" rather than 0.
func ScoreText(score *int) string {
	if score == nil {
		return "--"
	}
	return fmt.Sprintf("%d", *score)
}

// Leading reports whether team should be highlighted: the game has started
// and both scores are known with team ahead.
func Leading(team, opponent games.TeamScore, state games.GameState) bool {
	if state == games.StatePre || team.Score == nil || opponent.Score == nil {
		return false
	}
	return *team.Score > *opponent.Score
}

func summary(p *games.ScoreboardPayload, loc *time.Location) string {
	noun := "games"
	if len(p.Games) == 1 {
		noun = "game"
	}
	updated := "just now"
	if t, ok := timeutil.ParseInstant(p.LastUpdated); ok {
		updated = t.In(loc).Format("3:04PM")
	}
	return fmt.Sprintf("%d %s, updated %s", len(p.Games), noun, updated)
}

// News renders the headline feed.
func (r *Renderer) News(st refresh.State[news.Payload]) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Headlines"))
	b.WriteString("\n")

	switch {
	case st.Error != "":
		b.WriteString(r.failure.Render(st.Error))
		b.WriteString("\n")
	case st.UsingCache && st.CacheNotice != "":
		b.WriteString(r.notice.Render(st.CacheNotice))
		b.WriteString("\n")
	}
	if st.Data == nil {
		if st.Loading {
			b.WriteString(r.meta.Render("Loading headlines..."))
			b.WriteString("\n")
		}
		return b.String()
	}
	if len(st.Data.Articles) == 0 {
		b.WriteString(r.meta.Render("No headlines right now."))
		b.WriteString("\n")
		return b.String()
	}
	for _, a := range st.Data.Articles {
		meta := strings.ToUpper(a.League)
		if t, ok := timeutil.ParseInstant(a.PublishedAt); ok {
			meta += "  " + t.In(r.loc).Format("Jan 2 3:04PM")
		}
		if a.Author != "" {
			meta += "  " + a.Author
		}
		b.WriteString(r.card.Render(strings.Join([]string{
			a.Title,
			r.meta.Render(meta),
			r.meta.Render(a.URL),
		}, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}
