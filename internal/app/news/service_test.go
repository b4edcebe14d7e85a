package news

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/preston-bernstein/scoreboard-service/internal/cache"
	domainnews "github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

type newsStub struct {
	mu       sync.Mutex
	articles map[string][]domainnews.Article
	errs     map[string]error
	calls    int
}

func (s *newsStub) FetchNews(ctx context.Context, league leagues.League) ([]domainnews.Article, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := s.errs[league.Key]; err != nil {
		return nil, err
	}
	return s.articles[league.Key], nil
}

func article(id, url, published string) domainnews.Article {
	return domainnews.Article{ID: id, Title: id, URL: url, PublishedAt: published}
}

func titles(list []domainnews.Article) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestMergeDedupesAndSortsNewestFirst(t *testing.T) {
	got := Merge([]domainnews.Article{
		article("old", "https://x/1", "2024-07-01T10:00:00Z"),
		article("dup", "https://x/1", "2024-07-02T10:00:00Z"),
		article("bad", "https://x/2", "not a date"),
		article("new", "https://x/3", "2024-07-03T10:00:00Z"),
		article("id-only", "", "2024-07-02T10:00:00Z"),
		article("id-only", "", "2024-07-04T10:00:00Z"),
	})

	want := []string{"new", "id-only", "old", "bad"}
	ids := titles(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
	if got[1].PublishedAt != "2024-07-02T10:00:00Z" {
		t.Fatalf("expected first id-only occurrence kept, got %s", got[1].PublishedAt)
	}
}

func TestHeadlinesSkipsFailedLeagues(t *testing.T) {
	stub := &newsStub{
		articles: map[string][]domainnews.Article{
			"wnba": {article("w", "https://x/w", "2024-07-01T10:00:00Z")},
			"pwhl": {article("p", "https://x/p", "2024-07-02T10:00:00Z")},
		},
		errs: map[string]error{"nwsl": &providers.UpstreamError{StatusCode: 500}},
	}
	svc := NewService(stub, Options{})

	payload, hit, err := svc.Headlines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if hit {
		t.Fatalf("expected miss without a store")
	}
	if ids := titles(payload.Articles); len(ids) != 2 || ids[0] != "p" || ids[1] != "w" {
		t.Fatalf("unexpected articles %v", ids)
	}
	if payload.RefreshInterval != 300 {
		t.Fatalf("unexpected refresh interval %d", payload.RefreshInterval)
	}
}

func TestHeadlinesCachesResponse(t *testing.T) {
	stub := &newsStub{articles: map[string][]domainnews.Article{
		"wnba": {article("w", "https://x/w", "2024-07-01T10:00:00Z")},
	}}
	rec := metrics.NewRecorder()
	svc := NewService(stub, Options{Store: cache.NewMemoryStore(), Metrics: rec})

	if _, hit, _ := svc.Headlines(context.Background()); hit {
		t.Fatalf("expected first call to miss")
	}
	payload, hit, _ := svc.Headlines(context.Background())
	if !hit {
		t.Fatalf("expected second call to hit")
	}
	if len(payload.Articles) != 1 || payload.Articles[0].ID != "w" {
		t.Fatalf("unexpected cached payload %+v", payload)
	}
	if stub.calls != 3 {
		t.Fatalf("expected one fan-out of 3 leagues, got %d calls", stub.calls)
	}
	if hits, misses := rec.CacheLookups(); hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestHeadlinesDoesNotCacheTotalFailure(t *testing.T) {
	boom := errors.New("boom")
	stub := &newsStub{errs: map[string]error{"wnba": boom, "nwsl": boom, "pwhl": boom}}
	store := cache.NewMemoryStore()
	svc := NewService(stub, Options{Store: store})

	payload, _, err := svc.Headlines(context.Background())
	if err != nil {
		t.Fatalf("expected soft failure, got %v", err)
	}
	if payload.Articles == nil || len(payload.Articles) != 0 {
		t.Fatalf("expected empty article list, got %v", payload.Articles)
	}
	if store.Len() != 0 {
		t.Fatalf("expected nothing cached after total failure")
	}
}

func TestHeadlinesDropsCorruptCacheEntry(t *testing.T) {
	store := cache.NewMemoryStore()
	_ = store.Set(context.Background(), cacheKey, []byte("{nope"), 0)
	stub := &newsStub{articles: map[string][]domainnews.Article{
		"wnba": {article("w", "https://x/w", "2024-07-01T10:00:00Z")},
	}}
	svc := NewService(stub, Options{Store: store})

	payload, hit, err := svc.Headlines(context.Background())
	if err != nil || hit {
		t.Fatalf("expected refetch on corrupt entry, got hit=%v err=%v", hit, err)
	}
	if len(payload.Articles) != 1 {
		t.Fatalf("expected fresh articles, got %d", len(payload.Articles))
	}
}

func TestHeadlinesWithoutProvider(t *testing.T) {
	svc := NewService(nil, Options{})
	if _, _, err := svc.Headlines(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}
