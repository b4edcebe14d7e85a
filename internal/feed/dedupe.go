package feed

import (
	"math"
	"sort"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// EventKey derives the identity used to collapse repeated events.
func EventKey(event Node) (string, bool) {
	if id, ok := FirstNonEmpty(event.Get("competitions").First().Get("id")); ok {
		return "competition:" + id, true
	}
	if id, ok := FirstNonEmpty(event.Get("id")); ok {
		return "event:" + id, true
	}
	return "", false
}

// DedupeAndSort keeps the first event per identity, appends events with no
// identity untouched, then stable-sorts everything by start time. Events
// without a start time sort as now; unparsable start times sort last.
func DedupeAndSort(events []Node, now time.Time) []Node {
	seen := make(map[string]struct{}, len(events))
	keyed := make([]Node, 0, len(events))
	var unknown []Node

	for _, event := range events {
		key, ok := EventKey(event)
		if !ok {
			unknown = append(unknown, event)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keyed = append(keyed, event)
	}

	ordered := append(keyed, unknown...)
	times := make([]float64, len(ordered))
	for i, event := range ordered {
		times[i] = eventTime(event, now)
	}

	idx := make([]int, len(ordered))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return times[idx[a]] < times[idx[b]]
	})

	out := make([]Node, len(ordered))
	for i, j := range idx {
		out[i] = ordered[j]
	}
	return out
}

func eventTime(event Node, now time.Time) float64 {
	raw, ok := FirstString(event.Get("competitions").First().Get("date"), event.Get("date"))
	if !ok {
		return float64(now.UnixMilli())
	}
	parsed, ok := timeutil.ParseInstant(raw)
	if !ok {
		return math.Inf(1)
	}
	return float64(parsed.UnixMilli())
}
