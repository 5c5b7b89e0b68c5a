package rawg

import (
	"net/url"
	"strconv"

	"github.com/dinildamsith/game-explorer/internal/domain"
)

// gamesQuery always carries page and page_size; optional filters only when set.
func gamesQuery(filters domain.QueryFilters) url.Values {
	f := filters.Normalized()
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("page_size", strconv.Itoa(f.PageSize))
	setIfPresent(q, "search", f.Search)
	setIfPresent(q, "genres", f.Genres)
	setIfPresent(q, "platforms", f.Platforms)
	setIfPresent(q, "tags", f.Tags)
	setIfPresent(q, "stores", f.Stores)
	setIfPresent(q, "ordering", f.Ordering)
	setIfPresent(q, "dates", f.Dates)
	return q
}

func referenceQuery(rq domain.ReferenceQuery) url.Values {
	q := url.Values{}
	if rq.Page > 0 {
		q.Set("page", strconv.Itoa(rq.Page))
	}
	if rq.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(rq.PageSize))
	}
	return q
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
