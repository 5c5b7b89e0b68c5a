package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"github.com/dinildamsith/game-explorer/internal/domain"
)

var errInvalidParam = errors.New("invalid parameter")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidParam, fmt.Sprintf(format, args...))
}

// pathID reads a positive integer chi URL parameter.
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, ok := toPositiveInt(raw)
	if !ok {
		return 0, invalid("%s must be a positive integer", name)
	}
	return id, nil
}

func toPositiveInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if !govalidator.IsInt(raw) {
		return 0, false
	}
	v, err := govalidator.ToInt(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(v), true
}

// optionalInt returns def when the query parameter is absent.
func optionalInt(values url.Values, name string, def, max int) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return def, nil
	}
	v, ok := toPositiveInt(raw)
	if !ok {
		return 0, invalid("%s must be a positive integer", name)
	}
	if max > 0 && !govalidator.InRangeInt(v, 1, max) {
		return 0, invalid("%s must be at most %d", name, max)
	}
	return v, nil
}

// parseFilters maps query parameters onto QueryFilters.
// Date ranges are checked by the games service.
func parseFilters(values url.Values) (domain.QueryFilters, error) {
	f := domain.QueryFilters{
		Search:    values.Get("search"),
		Genres:    values.Get("genres"),
		Platforms: values.Get("platforms"),
		Tags:      values.Get("tags"),
		Stores:    values.Get("stores"),
		Ordering:  strings.TrimSpace(values.Get("ordering")),
		Dates:     values.Get("dates"),
	}
	if err := validateOrdering(f.Ordering); err != nil {
		return domain.QueryFilters{}, err
	}
	var err error
	if f.Page, err = optionalInt(values, "page", domain.DefaultPage, 0); err != nil {
		return domain.QueryFilters{}, err
	}
	if f.PageSize, err = optionalInt(values, "page_size", domain.DefaultPageSize, domain.MaxPageSize); err != nil {
		return domain.QueryFilters{}, err
	}
	return f, nil
}

func validateOrdering(ordering string) error {
	if ordering != "" && !govalidator.IsIn(ordering, domain.KnownOrderings...) {
		return invalid("ordering %q is not supported", ordering)
	}
	return nil
}

func parseReferenceQuery(values url.Values) (domain.ReferenceQuery, error) {
	page, err := optionalInt(values, "page", domain.DefaultPage, 0)
	if err != nil {
		return domain.ReferenceQuery{}, err
	}
	size, err := optionalInt(values, "page_size", domain.DefaultPageSize, domain.MaxPageSize)
	if err != nil {
		return domain.ReferenceQuery{}, err
	}
	return domain.ReferenceQuery{Page: page, PageSize: size}, nil
}
