package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/client/storage"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
)

// User-facing messages for the scoreboard and news controllers.
const (
	ScoreboardOfflineNotice = "You're offline. Showing saved scores."
	ScoreboardErrorMessage  = "Unable to load the latest scores. Please try again in a moment."
	NewsOfflineNotice       = "You're offline. Showing saved headlines."
	NewsErrorMessage        = "Unable to load the latest headlines. Please try again soon."
)

// ScoreboardDefaultInterval applies until a scoreboard declares its own.
const ScoreboardDefaultInterval = games.IdleRefreshSeconds * time.Second

// ScoreboardSource fetches one league's scoreboard.
type ScoreboardSource interface {
	Scoreboard(ctx context.Context, league string) (games.ScoreboardPayload, error)
}

// NewsSource fetches the merged headline feed.
type NewsSource interface {
	News(ctx context.Context) (news.Payload, error)
}

// NewScoreboard returns a controller keyed by league.
func NewScoreboard(src ScoreboardSource, store storage.Store, logger *slog.Logger) *Controller[games.ScoreboardPayload] {
	return New(Options[games.ScoreboardPayload]{
		Name:            "scoreboard",
		Fetch:           src.Scoreboard,
		Store:           store,
		StorageKey:      storage.ScoreboardKey,
		Interval:        func(p games.ScoreboardPayload) time.Duration { return seconds(p.RefreshInterval) },
		DefaultInterval: ScoreboardDefaultInterval,
		OfflineNotice:   ScoreboardOfflineNotice,
		ErrorMessage:    ScoreboardErrorMessage,
		Logger:          logger,
	})
}

// NewNews returns a controller for the news feed. Its key is ignored; the
// feed polls only once the service has declared an interval.
func NewNews(src NewsSource, store storage.Store, logger *slog.Logger) *Controller[news.Payload] {
	return New(Options[news.Payload]{
		Name: "news",
		Fetch: func(ctx context.Context, _ string) (news.Payload, error) {
			return src.News(ctx)
		},
		Store:         store,
		StorageKey:    func(string) string { return storage.NewsKey },
		Interval:      func(p news.Payload) time.Duration { return seconds(p.RefreshInterval) },
		OfflineNotice: NewsOfflineNotice,
		ErrorMessage:  NewsErrorMessage,
		Logger:        logger,
	})
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
