package scoreboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

const (
	NoticeNotPublished = "ESPN hasn't published scoreboard data for this league yet today."
	NoticeUnavailable  = "ESPN's scoreboard feed for this league isn't available right now. We'll keep checking for updates."

	// minSlateGames is the game count below which extra dates are fetched.
	minSlateGames = 4
	// maxExtraDates bounds upstream calls made by one expansion.
	maxExtraDates = 2
)

// UnknownLeagueError rejects a league key outside the registry.
type UnknownLeagueError struct {
	Value string
}

func (e *UnknownLeagueError) Error() string {
	return fmt.Sprintf("unsupported league %q", e.Value)
}

// Service builds scoreboard payloads. It holds no per-request state.
type Service struct {
	provider      providers.ScoreboardProvider
	leagues       *leagues.Registry
	normalizer    *feed.Normalizer
	metrics       *metrics.Recorder
	logger        *slog.Logger
	now           func() time.Time
	minGames      int
	maxExtraDates int
}

// NewService wires a Service to its upstream and league registry.
func NewService(provider providers.ScoreboardProvider, registry *leagues.Registry, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	if registry == nil {
		registry = leagues.Builtin()
	}
	s := &Service{
		provider:      provider,
		leagues:       registry,
		metrics:       recorder,
		logger:        logger,
		now:           time.Now,
		minGames:      minSlateGames,
		maxExtraDates: maxExtraDates,
	}
	s.normalizer = feed.NewNormalizer(func() time.Time { return s.now() })
	return s
}

// ResolveLeague maps a raw key onto a league. Empty selects the default.
func (s *Service) ResolveLeague(raw string) (leagues.League, error) {
	if raw == "" {
		return s.leagues.Default(), nil
	}
	league, ok := s.leagues.Lookup(raw)
	if !ok {
		return leagues.League{}, &UnknownLeagueError{Value: raw}
	}
	return league, nil
}

// Scoreboard fetches, normalizes and (when sparse) expands one league's
// slate. Empty upstream responses produce a notice, not an error; any
// other upstream failure is returned unchanged for the caller to map.
func (s *Service) Scoreboard(ctx context.Context, leagueKey, date string) (games.ScoreboardPayload, error) {
	league, err := s.ResolveLeague(leagueKey)
	if err != nil {
		return games.ScoreboardPayload{}, err
	}
	if s.provider == nil {
		return games.ScoreboardPayload{}, providers.ErrProviderUnavailable
	}

	logger := logging.FromContext(ctx, s.logger)

	root, err := s.provider.FetchScoreboard(ctx, league, date)
	if empty, ok := providers.AsEmptyFeed(err); ok {
		notice := NoticeUnavailable
		if empty.NotPublished() {
			notice = NoticeNotPublished
		}
		return s.payload(league, []games.Game{}, nil, &notice), nil
	}
	if err != nil {
		return games.ScoreboardPayload{}, fmt.Errorf("fetch %s scoreboard: %w", league.Key, err)
	}

	events := feed.DedupeAndSort(root.Get("events").Items(), s.now())
	list, rejected := s.normalizer.Games(events)
	if rejected > 0 {
		logging.Debug(logger, "dropped malformed events",
			logging.FieldLeague, league.Key,
			logging.FieldCount, rejected,
		)
	}

	covered := feed.CoveredDates(date, root, events)
	if len(list) < s.minGames {
		list, covered = s.expandCoverage(ctx, league, root, events, list, covered)
	}

	return s.payload(league, list, covered.Sorted(), nil), nil
}

func (s *Service) payload(league leagues.League, list []games.Game, dates []string, notice *string) games.ScoreboardPayload {
	return games.ScoreboardPayload{
		League:          league.Key,
		Label:           league.Label,
		Games:           list,
		LastUpdated:     timeutil.FormatInstant(s.now()),
		RefreshInterval: games.RefreshIntervalFor(list),
		Notice:          notice,
		Dates:           dates,
	}
}
