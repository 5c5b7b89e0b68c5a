package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about catalog calls and
// browse activity, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu            sync.Mutex
	stats         map[string]*endpointStats
	strategies    map[string]int
	staleDiscards int
	pollerCycles  map[string]int
	httpRequests  map[string]int
	otel          *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:        make(map[string]*endpointStats),
		strategies:   make(map[string]int),
		pollerCycles: make(map[string]int),
		httpRequests: make(map[string]int),
		otel:         otel,
	}
}

// RecordCatalogCall counts one upstream call for an endpoint and stores its latency.
func (r *Recorder) RecordCatalogCall(provider, endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCatalogCall(provider, endpoint, duration, err)
	}
}

// RecordRateLimit tracks an upstream or local quota rejection and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider, endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, endpoint, retryAfter)
	}
}

// RecordSuggestionStrategy counts which fallback step produced a similar-games list.
func (r *Recorder) RecordSuggestionStrategy(strategy string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.strategies[strategy]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStrategy(strategy)
	}
}

// RecordStaleDiscard counts a list response dropped because a newer query superseded it.
func (r *Recorder) RecordStaleDiscard() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.staleDiscards++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStaleDiscard()
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.httpRequests[path]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// RecordPollerCycle tracks background job cycles and errors.
func (r *Recorder) RecordPollerCycle(job string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.pollerCycles[job]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPoller(job, duration, err)
	}
}

// CatalogCalls returns the total calls recorded for an endpoint.
func (r *Recorder) CatalogCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// CatalogErrors returns the failed calls recorded for an endpoint.
func (r *Recorder) CatalogErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// RateLimitHits returns the number of rate limit events seen for an endpoint.
func (r *Recorder) RateLimitHits(endpoint string) int {
	return r.Snapshot(endpoint).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an endpoint.
func (r *Recorder) LastRetryAfter(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for an endpoint.
func (r *Recorder) LastCallLatency(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastCallLatency
}

// StrategyCount returns how often a suggestion strategy produced the result.
func (r *Recorder) StrategyCount(strategy string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.strategies[strategy]
}

// StaleDiscards returns the number of superseded list responses.
func (r *Recorder) StaleDiscards() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.staleDiscards
}

// PollerCycles returns the number of cycles recorded for a background job.
func (r *Recorder) PollerCycles(job string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pollerCycles[job]
}

// HTTPRequests returns the number of requests recorded for a route pattern.
func (r *Recorder) HTTPRequests(path string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.httpRequests[path]
}

// Snapshot returns a copy of the current stats for the endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStatsLocked(endpoint string) *endpointStats {
	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	return stats
}
