// Package listing accumulates paged game results for one browse screen.
//
// Every fetch captures a generation number when it is dispatched. A newer
// page-1 load or Dispose bumps the generation, so a completion that arrives
// late is discarded with ErrStale instead of overwriting newer state.
package listing

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/logging"
	"github.com/dinildamsith/game-explorer/internal/metrics"
)

var (
	// ErrStale marks a completion superseded by a newer query. Callers drop it silently.
	ErrStale = errors.New("listing: response superseded by a newer query")
	// ErrAppendInFlight is returned when a load-more is already running.
	ErrAppendInFlight = errors.New("listing: load more already in flight")
	// ErrLoadInFlight is returned by LoadMore while the first page is still loading.
	ErrLoadInFlight = errors.New("listing: first page still loading")
	// ErrDisposed is returned after the accumulator was disposed.
	ErrDisposed = errors.New("listing: accumulator disposed")
)

// Status is the render state of the listing.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusLoading     Status = "loading"
	StatusLoadingMore Status = "loading_more"
	StatusReady       Status = "ready"
	StatusEmpty       Status = "empty"
	StatusFailed      Status = "failed"
)

// Fetcher is the slice of the catalog the accumulator needs.
type Fetcher interface {
	ListGames(ctx context.Context, filters domain.QueryFilters) (domain.Page[games.GameSummary], error)
}

// Snapshot is a copy of the accumulator state safe to hand to renderers.
type Snapshot struct {
	Filters           domain.QueryFilters `json:"filters"`
	Page              int                 `json:"page"`
	Results           []games.GameSummary `json:"results"`
	Count             int                 `json:"count"`
	HasMore           bool                `json:"hasMore"`
	Status            Status              `json:"status"`
	Error             string              `json:"error,omitempty"`
	DuplicatesDropped int                 `json:"duplicatesDropped"`
	Generation        uint64              `json:"generation"`
}

// Accumulator owns {page, results, hasMore} for the current filters.
type Accumulator struct {
	fetcher  Fetcher
	logger   *slog.Logger
	recorder *metrics.Recorder

	mu         sync.Mutex
	filters    domain.QueryFilters
	page       int
	results    []games.GameSummary
	seen       map[int]struct{}
	count      int
	hasMore    bool
	loaded     bool
	status     Status
	lastErr    error
	dupes      int
	generation uint64
	appending  bool
	cancelLoad context.CancelFunc
	cancelMore context.CancelFunc
	disposed   bool
}

// New constructs an idle accumulator.
func New(fetcher Fetcher, logger *slog.Logger, recorder *metrics.Recorder) *Accumulator {
	return &Accumulator{
		fetcher:  fetcher,
		logger:   logger,
		recorder: recorder,
		status:   StatusIdle,
		seen:     make(map[int]struct{}),
	}
}

// PendingLoad is a page-1 load that has claimed its generation but not fetched yet.
type PendingLoad struct {
	acc      *Accumulator
	ctx      context.Context
	fetchCtx context.Context
	cancel   context.CancelFunc
	filters  domain.QueryFilters
	gen      uint64
}

// Load discards accumulated results and fetches page 1 for filters.
// Any in-flight load or append is canceled and its completion discarded.
func (a *Accumulator) Load(ctx context.Context, filters domain.QueryFilters) (Snapshot, error) {
	pending, err := a.Begin(ctx, filters)
	if err != nil {
		return a.Snapshot(), err
	}
	return pending.Run()
}

// Begin resets the listing for filters and claims a new generation without fetching.
// Callers that must order the generation with their own state call Begin under their
// lock and Run after releasing it. Run must be called exactly once.
func (a *Accumulator) Begin(ctx context.Context, filters domain.QueryFilters) (*PendingLoad, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return nil, ErrDisposed
	}
	a.cancelInFlightLocked()
	a.generation++

	f := filters.Normalized().WithPage(domain.DefaultPage)
	a.filters = f
	a.page = domain.DefaultPage
	a.results = nil
	a.seen = make(map[int]struct{})
	a.count = 0
	a.hasMore = true
	a.loaded = false
	a.status = StatusLoading
	a.lastErr = nil
	a.dupes = 0

	fetchCtx, cancel := context.WithCancel(ctx)
	a.cancelLoad = cancel
	return &PendingLoad{acc: a, ctx: ctx, fetchCtx: fetchCtx, cancel: cancel, filters: f, gen: a.generation}, nil
}

// Filters returns the normalized filters this load fetches.
func (p *PendingLoad) Filters() domain.QueryFilters {
	return p.filters
}

// Run fetches page 1 and applies it unless a newer load or Dispose superseded it.
func (p *PendingLoad) Run() (Snapshot, error) {
	a := p.acc
	page, err := a.fetcher.ListGames(p.fetchCtx, p.filters)
	p.cancel()

	a.mu.Lock()
	defer a.mu.Unlock()
	if p.gen != a.generation {
		a.discardLocked(p.ctx, "page 1")
		return a.snapshotLocked(), ErrStale
	}
	a.cancelLoad = nil

	if err != nil {
		// No page arrived, so hasMore keeps its reset value; LoadMore stays gated on loaded.
		a.status = StatusFailed
		a.lastErr = err
		logging.Warn(logging.FromContext(p.ctx, a.logger), "listing load failed", "error", err)
		return a.snapshotLocked(), err
	}

	a.loaded = true
	a.count = page.Count
	a.hasMore = page.HasMore()
	a.appendLocked(page.Results)
	a.status = a.settledStatusLocked()
	return a.snapshotLocked(), nil
}

// LoadMore fetches the next page with the current filters and appends it in server order.
// It is a no-op when the last page had no next cursor or page 1 has not loaded.
func (a *Accumulator) LoadMore(ctx context.Context) (Snapshot, error) {
	a.mu.Lock()
	switch {
	case a.disposed:
		defer a.mu.Unlock()
		return a.snapshotLocked(), ErrDisposed
	case a.appending:
		defer a.mu.Unlock()
		return a.snapshotLocked(), ErrAppendInFlight
	case a.status == StatusLoading:
		defer a.mu.Unlock()
		return a.snapshotLocked(), ErrLoadInFlight
	case !a.hasMore || !a.loaded:
		defer a.mu.Unlock()
		return a.snapshotLocked(), nil
	}

	gen := a.generation
	nextPage := a.page + 1
	f := a.filters.WithPage(nextPage)
	a.appending = true
	a.status = StatusLoadingMore
	a.lastErr = nil

	fetchCtx, cancel := context.WithCancel(ctx)
	a.cancelMore = cancel
	a.mu.Unlock()

	page, err := a.fetcher.ListGames(fetchCtx, f)
	cancel()

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		a.discardLocked(ctx, "append")
		return a.snapshotLocked(), ErrStale
	}
	a.appending = false
	a.cancelMore = nil

	if err != nil {
		// Accumulated results stay; hasMore is untouched so the caller can retry.
		a.status = StatusFailed
		a.lastErr = err
		logging.Warn(logging.FromContext(ctx, a.logger), "listing load more failed", "error", err, logging.FieldPage, nextPage)
		return a.snapshotLocked(), err
	}

	a.page = nextPage
	a.count = page.Count
	a.hasMore = page.HasMore()
	a.appendLocked(page.Results)
	a.status = a.settledStatusLocked()
	return a.snapshotLocked(), nil
}

// Dispose cancels in-flight fetches and rejects further use.
func (a *Accumulator) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.disposed = true
	a.generation++
	a.cancelInFlightLocked()
}

// Snapshot returns a copy of the current state.
func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Filters returns the filters of the most recent Load.
func (a *Accumulator) Filters() domain.QueryFilters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filters
}

func (a *Accumulator) appendLocked(items []games.GameSummary) {
	for _, g := range items {
		if _, dup := a.seen[g.ID]; dup {
			a.dupes++
			continue
		}
		a.seen[g.ID] = struct{}{}
		a.results = append(a.results, g)
	}
}

func (a *Accumulator) settledStatusLocked() Status {
	if len(a.results) == 0 {
		return StatusEmpty
	}
	return StatusReady
}

func (a *Accumulator) cancelInFlightLocked() {
	if a.cancelLoad != nil {
		a.cancelLoad()
		a.cancelLoad = nil
	}
	if a.cancelMore != nil {
		a.cancelMore()
		a.cancelMore = nil
	}
	a.appending = false
}

func (a *Accumulator) discardLocked(ctx context.Context, kind string) {
	a.recorder.RecordStaleDiscard()
	logging.Debug(logging.FromContext(ctx, a.logger), "listing discarded stale response", "kind", kind)
}

func (a *Accumulator) snapshotLocked() Snapshot {
	results := make([]games.GameSummary, len(a.results))
	copy(results, a.results)
	snap := Snapshot{
		Filters:           a.filters,
		Page:              a.page,
		Results:           results,
		Count:             a.count,
		HasMore:           a.hasMore,
		Status:            a.status,
		DuplicatesDropped: a.dupes,
		Generation:        a.generation,
	}
	if a.lastErr != nil {
		snap.Error = a.lastErr.Error()
	}
	return snap
}
