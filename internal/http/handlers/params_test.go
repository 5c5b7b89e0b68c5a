package handlers

import (
	"errors"
	"net/url"
	"testing"

	"github.com/dinildamsith/game-explorer/internal/domain"
)

func TestParseFiltersDefaults(t *testing.T) {
	f, err := parseFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if f.Page != domain.DefaultPage || f.PageSize != domain.DefaultPageSize || f.Ordering != "" {
		t.Fatalf("unexpected defaults %+v", f)
	}
}

func TestParseFiltersValidation(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		ok     bool
	}{
		{"known ordering", url.Values{"ordering": {"-added"}}, true},
		{"ascending ordering", url.Values{"ordering": {"name"}}, true},
		{"unknown ordering", url.Values{"ordering": {"random"}}, false},
		{"page size at max", url.Values{"page_size": {"40"}}, true},
		{"page size over max", url.Values{"page_size": {"41"}}, false},
		{"decimal page", url.Values{"page": {"1.5"}}, false},
		{"zero page", url.Values{"page": {"0"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFilters(tc.values)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tc.ok && !errors.Is(err, errInvalidParam) {
				t.Fatalf("expected invalid param, got %v", err)
			}
		})
	}
}

func TestParseReferenceQuery(t *testing.T) {
	q, err := parseReferenceQuery(url.Values{"page": {"3"}, "page_size": {"15"}})
	if err != nil || q.Page != 3 || q.PageSize != 15 {
		t.Fatalf("unexpected query %+v err %v", q, err)
	}
	if _, err := parseReferenceQuery(url.Values{"page_size": {"-1"}}); err == nil {
		t.Fatalf("expected error for negative page size")
	}
}

func TestToPositiveInt(t *testing.T) {
	for raw, want := range map[string]bool{"12345": true, " 7 ": true, "": false, "abc": false, "-2": false, "0": false} {
		if _, ok := toPositiveInt(raw); ok != want {
			t.Fatalf("toPositiveInt(%q) = %v, want %v", raw, ok, want)
		}
	}
}
