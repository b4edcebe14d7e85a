package providers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/feed"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
)

// gateProvider blocks every call until release is closed.
type gateProvider struct {
	release chan struct{}
	active  atomic.Int32
	peak    atomic.Int32
}

func (g *gateProvider) enter() {
	n := g.active.Add(1)
	for {
		peak := g.peak.Load()
		if n <= peak || g.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	<-g.release
	g.active.Add(-1)
}

func (g *gateProvider) FetchScoreboard(ctx context.Context, league leagues.League, date string) (feed.Node, error) {
	g.enter()
	return feed.Wrap(map[string]any{}), nil
}

func (g *gateProvider) FetchNews(ctx context.Context, league leagues.League) ([]news.Article, error) {
	g.enter()
	return nil, nil
}

func TestLimitedProviderCapsConcurrency(t *testing.T) {
	inner := &gateProvider{release: make(chan struct{})}
	p := NewLimitedProvider(inner, 2, nil).(*limitedProvider)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.FetchScoreboard(context.Background(), leagues.League{Key: "wnba"}, "")
		}()
	}

	deadline := time.After(time.Second)
	for p.InFlight() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected two calls in flight")
		case <-time.After(time.Millisecond):
		}
	}
	close(inner.release)
	wg.Wait()

	if peak := inner.peak.Load(); peak > 2 {
		t.Fatalf("expected at most 2 concurrent calls, saw %d", peak)
	}
	if p.InFlight() != 0 {
		t.Fatalf("expected slots released, got %d", p.InFlight())
	}
}

func TestLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &gateProvider{release: make(chan struct{})}
	p := NewLimitedProvider(inner, 1, nil)

	go func() { _, _ = p.FetchNews(context.Background(), leagues.League{Key: "wnba"}) }()
	for p.(*limitedProvider).InFlight() < 1 {
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.FetchNews(ctx, leagues.League{Key: "nwsl"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while waiting for a slot, got %v", err)
	}
	close(inner.release)
}

func TestLimitedProviderHandlesNilInner(t *testing.T) {
	p := NewLimitedProvider(nil, 1, nil)
	if _, err := p.FetchScoreboard(context.Background(), leagues.League{}, ""); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestLimitedProviderDefaultsCapacity(t *testing.T) {
	p := NewLimitedProvider(&gateProvider{}, 0, nil).(*limitedProvider)
	if cap(p.slots) != defaultMaxInFlight {
		t.Fatalf("expected default capacity %d, got %d", defaultMaxInFlight, cap(p.slots))
	}
}
