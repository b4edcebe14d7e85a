package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/client/storage"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
)

type stubSource struct {
	board games.ScoreboardPayload
	feed  news.Payload
	err   error
}

func (s *stubSource) Scoreboard(ctx context.Context, league string) (games.ScoreboardPayload, error) {
	if s.err != nil {
		return games.ScoreboardPayload{}, s.err
	}
	board := s.board
	board.League = league
	return board, nil
}

func (s *stubSource) News(ctx context.Context) (news.Payload, error) {
	return s.feed, s.err
}

func TestScoreboardControllerUsesLeagueNamespace(t *testing.T) {
	store := storage.NewMemoryStore()
	src := &stubSource{board: games.ScoreboardPayload{Label: "WNBA", RefreshInterval: 30}}
	c := NewScoreboard(src, store, nil)
	defer c.Close()

	if err := c.Switch(context.Background(), "wnba"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := c.State(); st.RefreshInterval != 30*time.Second {
		t.Fatalf("expected 30s interval, got %s", st.RefreshInterval)
	}
	saved := storage.GetJSON[*games.ScoreboardPayload](context.Background(), store, storage.ScoreboardKey("wnba"), nil)
	if saved == nil || saved.League != "wnba" {
		t.Fatalf("expected payload under scoreboard key, got %+v", saved)
	}
	if _, ok, _ := store.Get(context.Background(), storage.NewsKey); ok {
		t.Fatalf("scoreboard must not write the news key")
	}
}

func TestScoreboardControllerShowsSavedScoresOffline(t *testing.T) {
	store := storage.NewMemoryStore()
	saved := games.ScoreboardPayload{League: "wnba", Games: []games.Game{{ID: "g-a"}}, RefreshInterval: 180}
	_ = storage.SetJSON(context.Background(), store, storage.ScoreboardKey("wnba"), saved)

	c := NewScoreboard(&stubSource{err: errors.New("offline")}, store, nil)
	defer c.Close()
	_ = c.Switch(context.Background(), "wnba")

	st := c.State()
	if !st.UsingCache || st.CacheNotice != ScoreboardOfflineNotice || st.Error != "" {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Data == nil || len(st.Data.Games) != 1 || st.Data.Games[0].ID != "g-a" {
		t.Fatalf("expected cached games, got %+v", st.Data)
	}
}

func TestScoreboardControllerHardErrorWithoutCache(t *testing.T) {
	c := NewScoreboard(&stubSource{err: errors.New("offline")}, storage.NewMemoryStore(), nil)
	defer c.Close()
	_ = c.Switch(context.Background(), "wnba")

	st := c.State()
	if st.Error != ScoreboardErrorMessage || st.Data != nil {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestNewsControllerWaitsForDeclaredInterval(t *testing.T) {
	store := storage.NewMemoryStore()
	c := NewNews(&stubSource{err: errors.New("offline")}, store, nil)
	defer c.Close()

	_ = c.Switch(context.Background(), "")
	st := c.State()
	if st.RefreshInterval != 0 {
		t.Fatalf("expected polling disabled without a payload, got %s", st.RefreshInterval)
	}
	if st.Error != NewsErrorMessage {
		t.Fatalf("expected news error message, got %q", st.Error)
	}
}

func TestNewsControllerAdoptsServerInterval(t *testing.T) {
	store := storage.NewMemoryStore()
	feed := news.NewPayload([]news.Article{{ID: "a", URL: "https://example.com/a"}})
	c := NewNews(&stubSource{feed: feed}, store, nil)
	defer c.Close()

	_ = c.Switch(context.Background(), "")
	if st := c.State(); st.RefreshInterval != news.RefreshSeconds*time.Second {
		t.Fatalf("expected news interval, got %s", st.RefreshInterval)
	}
	if _, ok, _ := store.Get(context.Background(), storage.NewsKey); !ok {
		t.Fatalf("expected news persisted under its own key")
	}
}
