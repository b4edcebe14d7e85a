package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	emptyFeeds      int
	lastCallLatency time.Duration
}

type coverageStats struct {
	expansions int
	extraCalls int
	appended   int
}

// Recorder captures lightweight, in-memory metrics about upstream calls,
// coverage expansion and response caching. When built by Setup it also
// forwards every observation to OpenTelemetry instruments.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*providerStats
	coverage    map[string]*coverageStats
	cacheHits   int
	cacheMisses int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*providerStats),
		coverage: make(map[string]*coverageStats),
		otel:     otel,
	}
}

// RecordProviderAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordEmptyFeed counts upstream responses that carried no scoreboard (204/404).
func (r *Recorder) RecordEmptyFeed(provider string, status int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(provider).emptyFeeds++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordEmptyFeed(provider, status)
	}
}

// RecordCoverageExpansion tracks a sparse scoreboard that triggered extra date fetches.
func (r *Recorder) RecordCoverageExpansion(league string, requested, appended int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.coverage[league]
	if !ok {
		stats = &coverageStats{}
		r.coverage[league] = stats
	}
	stats.expansions++
	stats.extraCalls += requested
	stats.appended += appended
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCoverage(league, requested, appended)
	}
}

// RecordCacheLookup tracks a response cache hit or miss.
func (r *Recorder) RecordCacheLookup(cache string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(cache, hit)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	EmptyFeeds      int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		EmptyFeeds:      stats.emptyFeeds,
		LastCallLatency: stats.lastCallLatency,
	}
}

// CoverageSnapshot reports expansion totals for a league.
type CoverageSnapshot struct {
	Expansions int
	ExtraCalls int
	Appended   int
}

func (r *Recorder) Coverage(league string) CoverageSnapshot {
	if r == nil {
		return CoverageSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.coverage[league]
	if !ok {
		return CoverageSnapshot{}
	}
	return CoverageSnapshot{
		Expansions: stats.expansions,
		ExtraCalls: stats.extraCalls,
		Appended:   stats.appended,
	}
}

// CacheLookups returns hit and miss totals across all caches.
func (r *Recorder) CacheLookups() (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHits, r.cacheMisses
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// caller holds r.mu
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
