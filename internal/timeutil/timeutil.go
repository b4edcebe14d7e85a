package timeutil

import (
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// CompactLayout is the YYYYMMDD form the upstream scoreboard expects.
const CompactLayout = "20060102"

// InstantLayout is the UTC millisecond timestamp used in payloads.
const InstantLayout = "2006-01-02T15:04:05.000Z07:00"

// instantLayouts are tried in order by ParseInstant. Upstream feeds mix
// second and minute precision and occasionally omit the zone.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC1123Z,
	time.RFC1123,
	DateLayout,
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatCompact formats a time as YYYYMMDD in its current location.
func FormatCompact(t time.Time) string {
	return t.Format(CompactLayout)
}

// FormatInstant renders t in UTC with millisecond precision.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// ParseInstant parses the timestamp shapes seen in upstream feeds.
// Values without a zone are treated as UTC.
func ParseInstant(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate converts YYYYMMDD, YYYY-MM-DD or a full timestamp into the
// canonical YYYY-MM-DD form. Timestamps contribute their UTC calendar date.
func NormalizeDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(value) == len(CompactLayout) {
		if parsed, err := time.Parse(CompactLayout, value); err == nil {
			return FormatDate(parsed), true
		}
	}
	if len(value) == len(DateLayout) {
		if parsed, err := ParseDate(value); err == nil {
			return FormatDate(parsed), true
		}
		return "", false
	}
	parsed, ok := ParseInstant(value)
	if !ok {
		return "", false
	}
	return FormatDate(parsed.UTC()), true
}

// CompactDate converts any date NormalizeDate accepts into YYYYMMDD.
func CompactDate(value string) (string, bool) {
	normalized, ok := NormalizeDate(value)
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(normalized, "-", ""), true
}
