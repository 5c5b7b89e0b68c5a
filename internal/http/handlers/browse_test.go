package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dinildamsith/game-explorer/internal/app/listing"
	"github.com/dinildamsith/game-explorer/internal/domain"
	domaingames "github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/providers/fixture"
	"github.com/dinildamsith/game-explorer/internal/teststubs"
	"github.com/dinildamsith/game-explorer/internal/testutil"
)

func decodeSession(t *testing.T, body string) sessionResponse {
	t.Helper()
	var resp sessionResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to decode session: %v (%s)", err, body)
	}
	return resp
}

func TestBrowseSessionLifecycle(t *testing.T) {
	_, router := newTestHandler(fixture.New(), nil)

	rr := testutil.Serve(router, http.MethodPost, "/browse", strings.NewReader(`{"pageSize":10}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := decodeSession(t, rr.Body.String())
	if created.ID == "" || len(created.Results) != 10 || !created.HasMore || created.Status != listing.StatusReady {
		t.Fatalf("unexpected created session %+v", created)
	}
	base := "/browse/" + created.ID

	rr = testutil.Serve(router, http.MethodPost, base+"/more", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	more := decodeSession(t, rr.Body.String())
	if more.Page != 2 || more.HasMore || len(more.Results) != more.Count {
		t.Fatalf("unexpected appended session %+v", more)
	}

	rr = testutil.Serve(router, http.MethodPatch, base+"/filters", strings.NewReader(`{"genres":"strategy"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	patched := decodeSession(t, rr.Body.String())
	if patched.Page != 1 || patched.Filters.Genres != "strategy" || patched.Filters.PageSize != 10 {
		t.Fatalf("expected reset to page 1 with merged filters, got %+v", patched)
	}

	rr = testutil.Serve(router, http.MethodGet, base, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := decodeSession(t, rr.Body.String()); got.Filters.Genres != "strategy" {
		t.Fatalf("expected stored filters, got %+v", got.Filters)
	}

	rr = testutil.Serve(router, http.MethodPost, base+"/clear", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if cleared := decodeSession(t, rr.Body.String()); cleared.Filters != (domain.QueryFilters{}).Normalized() {
		t.Fatalf("expected default filters after clear, got %+v", cleared.Filters)
	}

	rr = testutil.Serve(router, http.MethodDelete, base, nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, base, nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodDelete, base, nil), http.StatusNotFound)
}

func TestBrowseCreateWithoutBody(t *testing.T) {
	stub := &teststubs.StubCatalog{Games: teststubs.SummaryPage(false, 1)}
	_, router := newTestHandler(stub, nil)

	rr := testutil.Serve(router, http.MethodPost, "/browse", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	if q := stub.Queries()[0]; q != (domain.QueryFilters{}).Normalized() {
		t.Fatalf("expected default filters, got %+v", q)
	}
}

func TestBrowseRejectsInvalidInput(t *testing.T) {
	stub := &teststubs.StubCatalog{Games: teststubs.SummaryPage(true, 1)}
	_, router := newTestHandler(stub, nil)

	for _, body := range []string{`{"ordering":"popularity"}`, `{"pageSize":100}`, `{"unknown":1}`, `not json`} {
		rr := testutil.Serve(router, http.MethodPost, "/browse", strings.NewReader(body))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rr.Code)
		}
	}

	rr := testutil.Serve(router, http.MethodPost, "/browse", nil)
	id := decodeSession(t, rr.Body.String()).ID
	for _, body := range []string{`{}`, `{"dates":"2020-02-30,2020-03-01"}`, `{"ordering":"bogus"}`} {
		rr := testutil.Serve(router, http.MethodPatch, "/browse/"+id+"/filters", strings.NewReader(body))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("patch %s: expected 400, got %d", body, rr.Code)
		}
	}
	if calls := stub.CallsTo("ListGames"); calls != 1 {
		t.Fatalf("expected only the create fetch, got %d", calls)
	}
}

func TestBrowseRejectedPatchKeepsStoredFilters(t *testing.T) {
	stub := &teststubs.StubCatalog{Games: teststubs.SummaryPage(false, 1)}
	_, router := newTestHandler(stub, nil)

	rr := testutil.Serve(router, http.MethodPost, "/browse", strings.NewReader(`{"ordering":"-rating","genres":"rpg"}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	base := "/browse/" + decodeSession(t, rr.Body.String()).ID

	tests := []struct {
		name string
		body string
	}{
		{"unknown ordering", `{"ordering":"bogus","genres":"action"}`},
		{"impossible date", `{"genres":"action","dates":"2020-02-30,2020-03-01"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.Serve(router, http.MethodPatch, base+"/filters", strings.NewReader(tc.body))
			testutil.AssertStatus(t, rr, http.StatusBadRequest)

			rr = testutil.Serve(router, http.MethodGet, base, nil)
			testutil.AssertStatus(t, rr, http.StatusOK)
			got := decodeSession(t, rr.Body.String()).Filters
			if got.Ordering != "-rating" || got.Genres != "rpg" || got.Dates != "" {
				t.Fatalf("rejected patch changed filters: %+v", got)
			}
		})
	}
	if calls := stub.CallsTo("ListGames"); calls != 1 {
		t.Fatalf("rejected patches must not fetch, got %d calls", calls)
	}
}

func TestBrowseFetchFailureIsSessionState(t *testing.T) {
	stub := &teststubs.StubCatalog{GamesErr: errors.New("upstream down")}
	_, router := newTestHandler(stub, nil)

	rr := testutil.Serve(router, http.MethodPost, "/browse", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := decodeSession(t, rr.Body.String())
	if resp.Status != listing.StatusFailed || resp.Error == "" || len(resp.Results) != 0 {
		t.Fatalf("expected failed listing state, got %+v", resp)
	}

	rr = testutil.Serve(router, http.MethodPost, "/browse/"+resp.ID+"/more", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if calls := stub.CallsTo("ListGames"); calls != 1 {
		t.Fatalf("load more before page 1 loaded must not fetch, got %d calls", calls)
	}
}

func TestBrowseUnknownSession(t *testing.T) {
	_, router := newTestHandler(&teststubs.StubCatalog{}, nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/browse/nope"},
		{http.MethodPost, "/browse/nope/more"},
		{http.MethodPost, "/browse/nope/clear"},
		{http.MethodPatch, "/browse/nope/filters"},
	} {
		rr := testutil.Serve(router, tc.method, tc.path, strings.NewReader(`{"search":"x"}`))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, rr.Code)
		}
	}
}

func TestBrowseMoreWhileAppendInFlightConflicts(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	stub := &teststubs.StubCatalog{
		ListGamesFunc: func(_ context.Context, f domain.QueryFilters) (domain.Page[domaingames.GameSummary], error) {
			if f.Page == 1 {
				return teststubs.SummaryPage(true, 1), nil
			}
			started <- struct{}{}
			<-release
			return teststubs.SummaryPage(false, 2), nil
		},
	}
	_, router := newTestHandler(stub, nil)

	rr := testutil.Serve(router, http.MethodPost, "/browse", nil)
	id := decodeSession(t, rr.Body.String()).ID

	done := make(chan int, 1)
	go func() {
		done <- testutil.Serve(router, http.MethodPost, "/browse/"+id+"/more", nil).Code
	}()
	<-started

	rr = testutil.Serve(router, http.MethodPost, "/browse/"+id+"/more", nil)
	testutil.AssertStatus(t, rr, http.StatusConflict)

	close(release)
	if code := <-done; code != http.StatusOK {
		t.Fatalf("expected first append to succeed, got %d", code)
	}
}
