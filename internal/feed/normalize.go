package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

var (
	ErrNoCompetition = errors.New("event has no competition")
	ErrMissingSide   = errors.New("competition lacks a home or away competitor")
)

const (
	defaultDetail      = "Scheduled"
	defaultShortDetail = "TBD"
	defaultTeamName    = "TBD"
)

// Normalizer maps raw upstream events onto games.Game.
type Normalizer struct {
	now   func() time.Time
	newID func(prefix string) string
}

// NewNormalizer builds a Normalizer. A nil clock uses time.Now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	n := &Normalizer{now: now}
	n.newID = n.fallbackID
	return n
}

// Games normalizes events in order, dropping any that cannot be mapped.
// The second return value counts the rejected events.
func (n *Normalizer) Games(events []Node) ([]games.Game, int) {
	out := make([]games.Game, 0, len(events))
	rejected := 0
	for _, event := range events {
		g, err := n.Game(event)
		if err != nil {
			rejected++
			continue
		}
		out = append(out, g)
	}
	return out, rejected
}

// Game maps a single event. It fails only when the event lacks a
// competition or one of its two sides.
func (n *Normalizer) Game(event Node) (games.Game, error) {
	competition := event.Get("competitions").First()
	if competition.Missing() {
		return games.Game{}, ErrNoCompetition
	}

	competitors := competition.Get("competitors")
	home := competitors.Find(sideIs(games.SideHome))
	away := competitors.Find(sideIs(games.SideAway))
	if home.Missing() || away.Missing() {
		return games.Game{}, ErrMissingSide
	}

	id, ok := FirstNonEmpty(competition.Get("id"), event.Get("id"))
	if !ok {
		id = n.newID("game")
	}

	start, ok := FirstString(competition.Get("date"), event.Get("date"))
	if !ok {
		start = timeutil.FormatInstant(n.now())
	}

	return games.Game{
		ID:        id,
		StartTime: start,
		Venue:     optionalString(competition.Get("venue", "fullName")),
		Broadcast: optionalString(competition.Get("broadcasts").First().Get("names").First()),
		Note:      optionalString(competition.Get("notes").First().Get("headline")),
		Status:    MapStatus(competition.Get("status")),
		Home:      n.team(home, games.SideHome),
		Away:      n.team(away, games.SideAway),
	}, nil
}

// MapStatus reads status.type into a GameStatus.
func MapStatus(status Node) games.GameStatus {
	typ := status.Get("type")
	state := StringOr("pre", typ.Get("state"))

	return games.GameStatus{
		State:       MapState(state),
		Detail:      StringOr(defaultDetail, typ.Get("detail"), typ.Get("description")),
		ShortDetail: StringOr(defaultShortDetail, typ.Get("shortDetail"), typ.Get("detail"), typ.Get("description")),
	}
}

// MapState classifies free-form upstream state text. An exact "in" wins,
// then "post"/"final" substrings, then any remaining "in" substring
// ("in progress"). Everything else is pre-game.
func MapState(raw string) games.GameState {
	state := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case state == "in":
		return games.StateIn
	case strings.Contains(state, "post"), strings.Contains(state, "final"):
		return games.StatePost
	case strings.Contains(state, "in"):
		return games.StateIn
	default:
		return games.StatePre
	}
}

func (n *Normalizer) team(competitor Node, side games.HomeAway) games.TeamScore {
	team := competitor.Get("team")

	id, ok := FirstNonEmpty(team.Get("id"), competitor.Get("id"))
	if !ok {
		id = n.newID("team")
	}

	var score *int
	if v, ok := competitor.Get("score").Int(); ok {
		score = &v
	}

	records := competitor.Get("records")
	total := records.Find(func(r Node) bool {
		t, _ := r.Get("type").AsString()
		return t == "total"
	})

	return games.TeamScore{
		ID:               id,
		DisplayName:      StringOr(defaultTeamName, team.Get("displayName"), team.Get("shortDisplayName")),
		ShortDisplayName: StringOr("", team.Get("shortDisplayName"), team.Get("displayName")),
		Abbreviation:     StringOr("", team.Get("abbreviation"), team.Get("shortDisplayName")),
		Logo:             optionalString(team.Get("logo"), team.Get("logos").First().Get("href")),
		Score:            score,
		Record:           optionalString(total.Get("summary"), records.First().Get("summary")),
		HomeAway:         side,
	}
}

// fallbackID identifies games and teams the upstream left unnamed. The
// value is unique per call, so such games never deduplicate across fetches.
func (n *Normalizer) fallbackID(prefix string) string {
	return fmt.Sprintf("%s-%s-%d", prefix, uuid.NewString(), n.now().UnixMilli())
}

func sideIs(side games.HomeAway) func(Node) bool {
	return func(c Node) bool {
		v, _ := c.Get("homeAway").AsString()
		return v == string(side)
	}
}

func optionalString(candidates ...Node) *string {
	if s, ok := FirstString(candidates...); ok {
		return &s
	}
	return nil
}
