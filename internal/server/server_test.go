package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/cache"
	"github.com/preston-bernstein/scoreboard-service/internal/config"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		Port:        "0",
		Provider:    "fixture",
		CORSOrigins: []string{"*"},
		ESPN:        config.ESPNConfig{MaxInFlight: 4},
		Cache:       config.CacheConfig{Backend: cache.BackendMemory, TTL: time.Minute},
	}
}

func TestServerServesHealthAndScoreboard(t *testing.T) {
	provider := &testutil.StaticProvider{
		Docs: map[string]string{
			"": testutil.ScoreboardDoc("2024-07-01", nil,
				testutil.Event("1", "2024-07-01T23:00Z", "pre"),
				testutil.Event("2", "2024-07-01T19:00Z", "in"),
				testutil.Event("3", "2024-07-01T20:00Z", "post"),
				testutil.Event("4", "2024-07-01T21:00Z", "pre"),
			),
		},
	}

	srv := newServerWithProvider(testConfig(), nil, provider)
	router := srv.Handler()

	health := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, health, http.StatusOK)

	rec := testutil.Serve(router, http.MethodGet, "/api/scoreboard?league=wnba", nil)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var payload games.ScoreboardPayload
	testutil.DecodeJSON(t, rec, &payload)
	if payload.League != "wnba" {
		t.Fatalf("expected wnba payload, got %q", payload.League)
	}
	if len(payload.Games) != 4 {
		t.Fatalf("expected 4 games, got %d", len(payload.Games))
	}
	if payload.Games[0].Status.State != games.StateIn {
		t.Fatalf("expected live game first, got %+v", payload.Games[0].Status)
	}
}

func TestServerServesNewsThroughCache(t *testing.T) {
	provider := &testutil.StaticProvider{
		Articles: map[string][]news.Article{
			"wnba": {testutil.SampleArticle("wnba", "a1", "2024-07-01T10:00:00Z")},
		},
	}
	srv := newServerWithProvider(testConfig(), nil, provider)
	router := srv.Handler()

	first := testutil.Serve(router, http.MethodGet, "/api/news", nil)
	testutil.AssertStatus(t, first, http.StatusOK)
	testutil.AssertHeader(t, first, "X-Cache", "MISS")

	second := testutil.Serve(router, http.MethodGet, "/api/news", nil)
	testutil.AssertHeader(t, second, "X-Cache", "HIT")
}

func TestServerMapsUpstreamFailureTo502(t *testing.T) {
	srv := newServerWithProvider(testConfig(), nil, testutil.ErrProvider{Err: errors.New("boom")})

	rec := testutil.Serve(srv.Handler(), http.MethodGet, "/api/scoreboard", nil)
	testutil.AssertStatus(t, rec, http.StatusBadGateway)
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	provider := selectProvider(config.Config{Provider: "unknown"}, nil)
	if provider == nil {
		t.Fatalf("expected provider fallback")
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := testConfig()
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.cache == nil {
		t.Fatalf("expected memory cache")
	}
}

func TestBuildRegistryFallsBackOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leagues.yaml")
	if err := os.WriteFile(path, []byte("leagues: [::"), 0o600); err != nil {
		t.Fatalf("write leagues file: %v", err)
	}
	logger, buf := testutil.NewBufferLogger()

	reg := buildRegistry(config.Config{LeaguesFile: path}, logger)
	if reg.Default().Key != "wnba" {
		t.Fatalf("expected builtin default, got %q", reg.Default().Key)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected warning to be logged")
	}
}

func TestBuildCacheFallsBackToMemory(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Backend = "memcached"

	store := buildCache(context.Background(), cfg, nil)
	if _, ok := store.(*cache.MemoryStore); !ok {
		t.Fatalf("expected memory store fallback, got %T", store)
	}
}

func TestBuildCacheNoneDisablesCaching(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Backend = cache.BackendNone

	if store := buildCache(context.Background(), cfg, nil); store != nil {
		t.Fatalf("expected nil store, got %T", store)
	}
}

func TestGracefulShutdownCallsShutdown(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, nil)
	srv.gracefulShutdown()

	if httpSrv.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.Shutdowns())
	}
}

type closingStore struct {
	*cache.MemoryStore
	closed int
}

func (c *closingStore) Close() error {
	c.closed++
	return nil
}

func TestGracefulShutdownClosesCache(t *testing.T) {
	store := &closingStore{MemoryStore: cache.NewMemoryStore()}
	srv := newServerWithDeps(config.Config{}, nil, &testutil.StubHTTPServer{}, store)
	srv.gracefulShutdown()

	if store.closed != 1 {
		t.Fatalf("expected cache Close once, got %d", store.closed)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &testutil.BlockingHTTPServer{
		StubHTTPServer: testutil.StubHTTPServer{AddrVal: ":0", HandlerVal: http.NewServeMux()},
		Unblock:        make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, nil)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.Shutdowns() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.Shutdowns())
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestShutdownTimeoutPrefersConfig(t *testing.T) {
	srv := newServerWithDeps(config.Config{ShutdownTimeout: 3 * time.Second}, nil, &testutil.StubHTTPServer{}, nil)
	if got := srv.shutdownTimeout(); got != 3*time.Second {
		t.Fatalf("expected configured timeout, got %s", got)
	}
	srv.cfg.ShutdownTimeout = 0
	if got := srv.shutdownTimeout(); got != shutdownTimeout {
		t.Fatalf("expected default timeout, got %s", got)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, testutil.NewErrHTTPServer(), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := testutil.NewClosedHTTPServer()
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, nil)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}
	if httpSrv.Shutdowns() != 1 {
		t.Fatalf("expected shutdown once, got %d", httpSrv.Shutdowns())
	}
}

func TestRunStartsMetricsServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	metricsSrv := &testutil.StubHTTPServer{AddrVal: ":9090"}
	srv := newServerWithDeps(config.Config{}, nil, testutil.NewClosedHTTPServer(), nil)
	srv.metricsServer = metricsSrv

	cancel()
	srv.Run(ctx, cancel)

	if metricsSrv.Shutdowns() != 1 {
		t.Fatalf("expected metrics server shutdown, got %d", metricsSrv.Shutdowns())
	}
}
