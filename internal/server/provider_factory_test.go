package server

import (
	"context"
	"testing"

	"github.com/preston-bernstein/scoreboard-service/internal/config"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/espn"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/fixture"
	"github.com/preston-bernstein/scoreboard-service/internal/testutil"
)

func TestProviderFactoryBuildsFixture(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov := factory.build(config.Config{Provider: "fixture"})
	if prov == nil {
		t.Fatalf("expected provider")
	}

	league, _ := leagues.Builtin().Lookup("wnba")
	if _, err := prov.FetchScoreboard(context.Background(), league, ""); err != nil {
		t.Fatalf("expected fixture scoreboard, got %v", err)
	}
}

func TestSelectProviderChoosesESPN(t *testing.T) {
	for _, name := range []string{"espn", ""} {
		provider := selectProvider(config.Config{
			Provider: name,
			ESPN:     config.ESPNConfig{BaseURL: "http://example.com"},
		}, nil)
		if _, ok := provider.(*espn.Client); !ok {
			t.Fatalf("expected espn client for %q, got %T", name, provider)
		}
	}
}

func TestSelectProviderChoosesFixture(t *testing.T) {
	if _, ok := selectProvider(config.Config{Provider: "fixture"}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture provider")
	}
}

func TestProviderFactoryWrapRecordsAttempts(t *testing.T) {
	rec := metrics.NewRecorder()
	factory := newProviderFactory(nil, rec)
	inner := &testutil.StaticProvider{}
	prov := factory.wrap(config.Config{Provider: "Static"}, inner)

	league, _ := leagues.Builtin().Lookup("wnba")
	_, _ = prov.FetchNews(context.Background(), league)

	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner provider to be called once, got %d", inner.Calls.Load())
	}
	if calls := rec.ProviderCalls("static"); calls == 0 {
		t.Fatalf("expected provider attempt to be recorded under normalized name")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("ESPN", nil); got != "espn" {
		t.Fatalf("expected lower-cased name, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected fallback name, got %q", got)
	}
	if got := normalizeProviderName("  Fixture ", nil); got != "fixture" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if got := normalizeProviderName("", fixture.New()); got != "fixture" {
		t.Fatalf("expected package-derived name, got %q", got)
	}
	if got := normalizeProviderName("", &testutil.StaticProvider{}); got != "testutil" {
		t.Fatalf("expected package-derived name, got %q", got)
	}
}
