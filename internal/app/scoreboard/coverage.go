package scoreboard

import (
	"context"
	"sync"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

type extraFetch struct {
	date string
	root feed.Node
	err  error
}

// expandCoverage backfills a sparse slate from the payload's own calendar.
// Extra dates are fetched in parallel; each failure is logged and skipped.
func (s *Service) expandCoverage(
	ctx context.Context,
	league leagues.League,
	root feed.Node,
	events []feed.Node,
	current []games.Game,
	covered feed.DateSet,
) ([]games.Game, feed.DateSet) {
	candidates := feed.CandidateDates(root, covered)
	if len(candidates) > s.maxExtraDates {
		candidates = candidates[:s.maxExtraDates]
	}
	if len(candidates) == 0 {
		return current, covered
	}

	results := make([]extraFetch, len(candidates))
	var wg sync.WaitGroup
	for i, date := range candidates {
		wg.Add(1)
		go func(i int, date string) {
			defer wg.Done()
			extra, err := s.provider.FetchScoreboard(ctx, league, date)
			results[i] = extraFetch{date: date, root: extra, err: err}
		}(i, date)
	}
	wg.Wait()

	logger := logging.FromContext(ctx, s.logger)

	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		if key, ok := feed.EventKey(e); ok {
			seen[key] = struct{}{}
		}
	}

	aggregate := append([]feed.Node(nil), events...)
	appended := 0
	for _, r := range results {
		if r.err != nil {
			level := logging.Warn
			if _, empty := providers.AsEmptyFeed(r.err); empty {
				level = logging.Debug
			}
			level(logger, "coverage date skipped",
				logging.FieldLeague, league.Key,
				logging.FieldDate, r.date,
				"error", r.err,
			)
			continue
		}

		covered.Add(r.date)
		for _, e := range r.root.Get("events").Items() {
			if key, ok := feed.EventKey(e); ok {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			if raw, ok := feed.FirstString(e.Get("competitions").First().Get("date"), e.Get("date")); ok {
				covered.Add(raw)
			}
			aggregate = append(aggregate, e)
			appended++
		}
	}

	s.metrics.RecordCoverageExpansion(league.Key, len(candidates), appended)
	if appended == 0 {
		return current, covered
	}

	list, _ := s.normalizer.Games(feed.DedupeAndSort(aggregate, s.now()))
	logging.Debug(logger, "coverage expanded",
		logging.FieldLeague, league.Key,
		logging.FieldCount, appended,
	)
	return list, covered
}
