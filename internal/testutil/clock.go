package testutil

import (
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// NowAt returns a clock function fixed at t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustInstant parses any instant layout the feed accepts, including ESPN's
// minute-precision "2024-07-01T16:00Z", and panics otherwise.
func MustInstant(v string) time.Time {
	t, ok := timeutil.ParseInstant(v)
	if !ok {
		panic("testutil: unparsable instant " + v)
	}
	return t
}
