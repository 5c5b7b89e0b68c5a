// Package browse owns the filter state of one browse screen and drives its listing.
package browse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dinildamsith/game-explorer/internal/app/listing"
	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/logging"
)

// Patch carries the fields to change in one Apply call. Nil fields are left as they are;
// a pointer to "" clears that filter.
type Patch struct {
	Search    *string `json:"search,omitempty"`
	Genres    *string `json:"genres,omitempty"`
	Platforms *string `json:"platforms,omitempty"`
	Tags      *string `json:"tags,omitempty"`
	Stores    *string `json:"stores,omitempty"`
	Ordering  *string `json:"ordering,omitempty"`
	Dates     *string `json:"dates,omitempty"`
	PageSize  *int    `json:"pageSize,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Search == nil && p.Genres == nil && p.Platforms == nil && p.Tags == nil &&
		p.Stores == nil && p.Ordering == nil && p.Dates == nil && p.PageSize == nil
}

// Merge returns f with every non-nil field of p applied.
func (p Patch) Merge(f domain.QueryFilters) domain.QueryFilters {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Genres != nil {
		f.Genres = *p.Genres
	}
	if p.Platforms != nil {
		f.Platforms = *p.Platforms
	}
	if p.Tags != nil {
		f.Tags = *p.Tags
	}
	if p.Stores != nil {
		f.Stores = *p.Stores
	}
	if p.Ordering != nil {
		f.Ordering = *p.Ordering
	}
	if p.Dates != nil {
		f.Dates = *p.Dates
	}
	if p.PageSize != nil {
		f.PageSize = *p.PageSize
	}
	return f
}

// Coordinator holds the single authoritative QueryFilters for a screen.
// Every change merges one field into a copy, stores it, and reloads page 1.
type Coordinator struct {
	acc    *listing.Accumulator
	logger *slog.Logger

	mu      sync.Mutex
	filters domain.QueryFilters
}

// NewCoordinator wraps acc. The initial filters are stored but not loaded.
func NewCoordinator(acc *listing.Accumulator, initial domain.QueryFilters, logger *slog.Logger) *Coordinator {
	return &Coordinator{acc: acc, filters: initial.Normalized(), logger: logger}
}

// SetSearch replaces the search text and reloads page 1.
func (c *Coordinator) SetSearch(ctx context.Context, search string) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{Search: &search})
}

// SetGenre replaces the genre filter and reloads page 1.
func (c *Coordinator) SetGenre(ctx context.Context, genres string) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{Genres: &genres})
}

// SetPlatform replaces the platform filter and reloads page 1.
func (c *Coordinator) SetPlatform(ctx context.Context, platforms string) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{Platforms: &platforms})
}

// SetTag replaces the tag filter and reloads page 1.
func (c *Coordinator) SetTag(ctx context.Context, tags string) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{Tags: &tags})
}

// SetStore replaces the store filter and reloads page 1.
func (c *Coordinator) SetStore(ctx context.Context, stores string) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{Stores: &stores})
}

// SetOrdering replaces the sort key and reloads page 1.
func (c *Coordinator) SetOrdering(ctx context.Context, ordering string) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{Ordering: &ordering})
}

// SetDates replaces the release-date range and reloads page 1.
func (c *Coordinator) SetDates(ctx context.Context, dates string) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{Dates: &dates})
}

// SetPageSize replaces the page size and reloads page 1.
func (c *Coordinator) SetPageSize(ctx context.Context, size int) (listing.Snapshot, error) {
	return c.Apply(ctx, Patch{PageSize: &size})
}

// Apply merges every non-nil field of patch and reloads once.
func (c *Coordinator) Apply(ctx context.Context, patch Patch) (listing.Snapshot, error) {
	return c.ApplyChecked(ctx, patch, nil)
}

// ApplyChecked is Apply with check run against the merged filters before they are stored.
// A check error leaves the filters and the listing untouched.
func (c *Coordinator) ApplyChecked(ctx context.Context, patch Patch, check func(domain.QueryFilters) error) (listing.Snapshot, error) {
	c.mu.Lock()
	next := patch.Merge(c.filters).Normalized().WithPage(domain.DefaultPage)
	if check != nil {
		if err := check(next); err != nil {
			c.mu.Unlock()
			return c.acc.Snapshot(), err
		}
	}
	logging.Debug(logging.FromContext(ctx, c.logger), "browse filters changed", "filters", next)
	return c.storeAndLoadLocked(ctx, next)
}

// ClearFilters resets every field to its default and reloads page 1.
func (c *Coordinator) ClearFilters(ctx context.Context) (listing.Snapshot, error) {
	c.mu.Lock()
	return c.storeAndLoadLocked(ctx, domain.QueryFilters{}.Normalized())
}

// Reload fetches page 1 for the current filters.
func (c *Coordinator) Reload(ctx context.Context) (listing.Snapshot, error) {
	c.mu.Lock()
	return c.storeAndLoadLocked(ctx, c.filters)
}

// storeAndLoadLocked stores next and claims the listing generation in one step, so the
// stored filters always belong to the newest load. It releases c.mu before fetching.
func (c *Coordinator) storeAndLoadLocked(ctx context.Context, next domain.QueryFilters) (listing.Snapshot, error) {
	pending, err := c.acc.Begin(ctx, next)
	if err != nil {
		c.mu.Unlock()
		return c.acc.Snapshot(), err
	}
	c.filters = pending.Filters()
	c.mu.Unlock()
	return pending.Run()
}

// LoadMore appends the next page for the current filters.
func (c *Coordinator) LoadMore(ctx context.Context) (listing.Snapshot, error) {
	return c.acc.LoadMore(ctx)
}

// Snapshot returns the listing state for the current filters.
func (c *Coordinator) Snapshot() listing.Snapshot {
	return c.acc.Snapshot()
}

// Filters returns the current authoritative filters.
func (c *Coordinator) Filters() domain.QueryFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Close disposes the underlying accumulator.
func (c *Coordinator) Close() {
	c.acc.Dispose()
}
