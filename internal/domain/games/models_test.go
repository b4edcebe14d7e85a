package games

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(Game{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"StartTime", "startTime"},
		{"Venue", "venue"},
		{"Broadcast", "broadcast"},
		{"Note", "note"},
		{"Status", "status"},
		{"Home", "home"},
		{"Away", "away"},
	}

	for _, fc := range fields {
		field, ok := gameType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != fc.tag {
			t.Fatalf("field %s expected json tag %s, got %s", fc.name, fc.tag, jsonTag)
		}
	}
}

func TestOptionalFieldsSerializeAsNull(t *testing.T) {
	g := Game{
		ID:     "1",
		Status: GameStatus{State: StatePre, Detail: "Scheduled", ShortDetail: "TBD"},
		Home:   TeamScore{ID: "h", DisplayName: "Home", HomeAway: SideHome},
		Away:   TeamScore{ID: "a", DisplayName: "Away", HomeAway: SideAway},
	}
	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, want := range []string{`"venue":null`, `"broadcast":null`, `"note":null`, `"score":null`, `"logo":null`, `"record":null`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestZeroScoreIsNotNull(t *testing.T) {
	zero := 0
	raw, _ := json.Marshal(TeamScore{Score: &zero})
	if !strings.Contains(string(raw), `"score":0`) {
		t.Fatalf("expected zero score to serialize as 0, got %s", raw)
	}
}

func TestPayloadOmitsEmptyNoticeAndDates(t *testing.T) {
	raw, _ := json.Marshal(ScoreboardPayload{League: "wnba", Games: []Game{}})
	body := string(raw)
	if strings.Contains(body, "notice") || strings.Contains(body, "dates") {
		t.Fatalf("expected notice and dates omitted, got %s", body)
	}
	if !strings.Contains(body, `"games":[]`) {
		t.Fatalf("expected empty games array, got %s", body)
	}
}

func TestRefreshIntervalFor(t *testing.T) {
	if got := RefreshIntervalFor(nil); got != IdleRefreshSeconds {
		t.Fatalf("expected idle interval for no games, got %d", got)
	}
	list := []Game{{Status: GameStatus{State: StatePost}}, {Status: GameStatus{State: StatePre}}}
	if got := RefreshIntervalFor(list); got != IdleRefreshSeconds {
		t.Fatalf("expected idle interval, got %d", got)
	}
	list = append(list, Game{Status: GameStatus{State: StateIn}})
	if got := RefreshIntervalFor(list); got != LiveRefreshSeconds {
		t.Fatalf("expected live interval, got %d", got)
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	if p := StringPtr("x"); p == nil || *p != "x" {
		t.Fatalf("expected pointer to x")
	}
}
