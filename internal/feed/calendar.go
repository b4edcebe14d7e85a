package feed

import (
	"sort"

	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// dateFields are object keys whose values may name a calendar date.
var dateFields = map[string]bool{
	"date":      true,
	"startDate": true,
	"endDate":   true,
	"next":      true,
	"nextDate":  true,
}

// DateSet is a set of YYYY-MM-DD dates.
type DateSet map[string]struct{}

// Add normalizes and inserts raw; unparsable values are ignored.
func (s DateSet) Add(raw string) bool {
	date, ok := timeutil.NormalizeDate(raw)
	if !ok {
		return false
	}
	s[date] = struct{}{}
	return true
}

// Has reports whether date (already normalized) is present.
func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Sorted returns the dates ascending.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Latest returns the greatest date, or "" for an empty set.
func (s DateSet) Latest() string {
	latest := ""
	for d := range s {
		if d > latest {
			latest = d
		}
	}
	return latest
}

// CoveredDates collects the requested date, the payload's day marker and
// every event's date.
func CoveredDates(requested string, root Node, events []Node) DateSet {
	covered := DateSet{}
	if requested != "" {
		covered.Add(requested)
	}
	if day, ok := root.Get("day", "date").AsString(); ok {
		covered.Add(day)
	}
	for _, event := range events {
		if raw, ok := FirstString(event.Get("competitions").First().Get("date"), event.Get("date")); ok {
			covered.Add(raw)
		}
	}
	return covered
}

// CandidateDates walks the payload's day pointer and league calendars and
// returns uncovered dates later than anything already covered, ascending.
// With nothing covered every discovered date qualifies.
func CandidateDates(root Node, covered DateSet) []string {
	found := DateSet{}
	walkDates(root.Get("day"), found, false)
	for _, league := range root.Get("leagues").Items() {
		walkDates(league.Get("calendar"), found, true)
	}

	latest := covered.Latest()
	out := make([]string, 0, len(found))
	for _, d := range found.Sorted() {
		if covered.Has(d) || d <= latest {
			continue
		}
		out = append(out, d)
	}
	return out
}

// walkDates recurses through objects and arrays. Inside calendars bare
// string elements are dates; elsewhere only known date keys are read.
func walkDates(n Node, found DateSet, calendar bool) {
	if items := n.Items(); items != nil {
		for _, item := range items {
			if s, ok := item.AsString(); ok {
				if calendar {
					found.Add(s)
				}
				continue
			}
			walkDates(item, found, calendar)
		}
		return
	}

	obj, ok := n.Object()
	if !ok {
		return
	}
	for key, value := range obj {
		child := Wrap(value)
		if s, ok := child.AsString(); ok {
			if dateFields[key] {
				found.Add(s)
			}
			continue
		}
		walkDates(child, found, calendar)
	}
}
