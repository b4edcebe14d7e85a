package news

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/cache"
	domainnews "github.com/preston-bernstein/scoreboard-service/internal/domain/news"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

const (
	cacheName  = "news"
	cacheKey   = "news:v1"
	DefaultTTL = 5 * time.Minute
)

// Service aggregates headlines across every registered league.
type Service struct {
	provider providers.NewsProvider
	leagues  *leagues.Registry
	store    cache.Store
	ttl      time.Duration
	metrics  *metrics.Recorder
	logger   *slog.Logger
}

// Options tune a Service. Zero values fall back to defaults.
type Options struct {
	Store    cache.Store
	TTL      time.Duration
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
	Registry *leagues.Registry
}

func NewService(provider providers.NewsProvider, opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = leagues.Builtin()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Service{
		provider: provider,
		leagues:  opts.Registry,
		store:    opts.Store,
		ttl:      opts.TTL,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
	}
}

// Headlines returns the merged feed and whether it was served from cache.
// Per-league failures are logged and skipped, so the call itself only
// fails when no provider is configured.
func (s *Service) Headlines(ctx context.Context) (domainnews.Payload, bool, error) {
	if s.provider == nil {
		return domainnews.Payload{}, false, providers.ErrProviderUnavailable
	}
	logger := logging.FromContext(ctx, s.logger)

	if payload, ok := s.cached(ctx, logger); ok {
		return payload, true, nil
	}

	articles, failures := s.gather(ctx, logger)
	payload := domainnews.NewPayload(articles)

	all := s.leagues.All()
	if failures < len(all) {
		s.save(ctx, logger, payload)
	}
	return payload, false, nil
}

func (s *Service) gather(ctx context.Context, logger *slog.Logger) ([]domainnews.Article, int) {
	all := s.leagues.All()
	results := make([][]domainnews.Article, len(all))
	errs := make([]error, len(all))

	var wg sync.WaitGroup
	for i, league := range all {
		wg.Add(1)
		go func(i int, league leagues.League) {
			defer wg.Done()
			results[i], errs[i] = s.provider.FetchNews(ctx, league)
		}(i, league)
	}
	wg.Wait()

	failures := 0
	var merged []domainnews.Article
	for i, err := range errs {
		if err != nil {
			failures++
			if !errors.Is(err, context.Canceled) {
				logging.Warn(logger, "news fetch failed",
					logging.FieldLeague, all[i].Key,
					"error", err,
				)
			}
			continue
		}
		merged = append(merged, results[i]...)
	}
	return Merge(merged), failures
}

// Merge dedupes articles by URL (falling back to id), keeping the first
// occurrence, and sorts newest first. Unparsable publish times sort last.
func Merge(articles []domainnews.Article) []domainnews.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]domainnews.Article, 0, len(articles))
	for _, a := range articles {
		key := a.URL
		if key == "" {
			key = a.ID
		}
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := timeutil.ParseInstant(out[i].PublishedAt)
		tj, okJ := timeutil.ParseInstant(out[j].PublishedAt)
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return out
}

func (s *Service) cached(ctx context.Context, logger *slog.Logger) (domainnews.Payload, bool) {
	if s.store == nil {
		return domainnews.Payload{}, false
	}
	raw, ok, err := s.store.Get(ctx, cacheKey)
	if err != nil {
		logging.Warn(logger, "news cache read failed", logging.FieldCache, cacheName, "error", err)
	}
	if !ok || err != nil {
		s.metrics.RecordCacheLookup(cacheName, false)
		return domainnews.Payload{}, false
	}

	var payload domainnews.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		logging.Warn(logger, "news cache entry corrupt", logging.FieldCache, cacheName, "error", err)
		_ = s.store.Delete(ctx, cacheKey)
		s.metrics.RecordCacheLookup(cacheName, false)
		return domainnews.Payload{}, false
	}
	s.metrics.RecordCacheLookup(cacheName, true)
	return payload, true
}

func (s *Service) save(ctx context.Context, logger *slog.Logger, payload domainnews.Payload) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, cacheKey, raw, s.ttl); err != nil {
		logging.Warn(logger, "news cache write failed", logging.FieldCache, cacheName, "error", err)
	}
}
