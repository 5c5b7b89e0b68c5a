package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dinildamsith/game-explorer/internal/app/details"
	"github.com/dinildamsith/game-explorer/internal/app/games"
	"github.com/dinildamsith/game-explorer/internal/store"
	"github.com/dinildamsith/game-explorer/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()
	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteFailureStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{invalid("page must be a positive integer"), http.StatusBadRequest},
		{fmt.Errorf("%w: bad dates", games.ErrInvalidFilters), http.StatusBadRequest},
		{details.ErrTrailerNotFound, http.StatusNotFound},
		{store.ErrSessionNotFound, http.StatusNotFound},
		{errors.New("anything else"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		writeFailure(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, "missing", nil)
		if rr.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, rr.Code)
		}
	}
}
