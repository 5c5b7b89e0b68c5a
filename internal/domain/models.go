package domain

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 40
)

// PlaceholderImage is served in place of missing artwork.
const PlaceholderImage = "/placeholder.svg"

// Ordering values accepted by the catalog's games listing.
const (
	OrderingRatingDesc     = "-rating"
	OrderingAddedDesc      = "-added"
	OrderingReleasedDesc   = "-released"
	OrderingReleasedAsc    = "released"
	OrderingMetacriticDesc = "-metacritic"
	OrderingNameAsc        = "name"
	OrderingNameDesc       = "-name"
)

// KnownOrderings lists every ordering the catalog understands, ascending and descending.
var KnownOrderings = []string{
	"name", "-name",
	"released", "-released",
	"added", "-added",
	"created", "-created",
	"updated", "-updated",
	"rating", "-rating",
	"metacritic", "-metacritic",
}

// Page is the list envelope returned by every catalog collection endpoint.
// A nil Next marks the last page.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasMore reports whether another page can be requested.
func (p Page[T]) HasMore() bool {
	return p.Next != nil && *p.Next != ""
}

// IsEmpty reports a successful page with zero items.
func (p Page[T]) IsEmpty() bool {
	return len(p.Results) == 0
}

// QueryFilters is the single authoritative query for the games listing.
// Empty string fields mean "no filter" and are never sent upstream.
type QueryFilters struct {
	Search    string `json:"search,omitempty"`
	Genres    string `json:"genres,omitempty"`
	Platforms string `json:"platforms,omitempty"`
	Tags      string `json:"tags,omitempty"`
	Stores    string `json:"stores,omitempty"`
	Ordering  string `json:"ordering,omitempty"`
	Dates     string `json:"dates,omitempty"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize,omitempty"`
}

// Normalized trims every text field and fills page defaults.
func (f QueryFilters) Normalized() QueryFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.Genres = strings.TrimSpace(f.Genres)
	f.Platforms = strings.TrimSpace(f.Platforms)
	f.Tags = strings.TrimSpace(f.Tags)
	f.Stores = strings.TrimSpace(f.Stores)
	f.Ordering = strings.TrimSpace(f.Ordering)
	f.Dates = strings.TrimSpace(f.Dates)
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	return f
}

// WithPage returns a copy pointing at the given page.
func (f QueryFilters) WithPage(page int) QueryFilters {
	f.Page = page
	return f
}

// ReferenceQuery pages through reference collections (genres, stores, creators...).
type ReferenceQuery struct {
	Page     int
	PageSize int
}

// IsKnownOrdering reports whether the ordering is accepted upstream.
func IsKnownOrdering(ordering string) bool {
	for _, o := range KnownOrderings {
		if o == ordering {
			return true
		}
	}
	return false
}

// ImageOrPlaceholder falls back to the placeholder asset when url is blank.
func ImageOrPlaceholder(url string) string {
	if strings.TrimSpace(url) == "" {
		return PlaceholderImage
	}
	return url
}

// Section states for independently fetched parts of an aggregate view.
const (
	SectionOK    = "ok"
	SectionEmpty = "empty"
	SectionError = "error"
)

// Section is one independently fetched block of a page. A failed section
// carries its error message and never affects its siblings.
type Section[T any] struct {
	Status string `json:"status"`
	Items  []T    `json:"items"`
	Error  string `json:"error,omitempty"`
}

// SectionOf builds a section from a fetch outcome.
func SectionOf[T any](items []T, err error) Section[T] {
	switch {
	case err != nil:
		return Section[T]{Status: SectionError, Items: []T{}, Error: err.Error()}
	case len(items) == 0:
		return Section[T]{Status: SectionEmpty, Items: []T{}}
	default:
		return Section[T]{Status: SectionOK, Items: items}
	}
}
