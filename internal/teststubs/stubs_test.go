package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
)

func TestStubCatalogTracksCallsAndQueries(t *testing.T) {
	err := errors.New("boom")
	c := &StubCatalog{GamesErr: err}

	if _, got := c.ListGames(context.Background(), domain.QueryFilters{Genres: "action"}); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	_, _ = c.ListGenres(context.Background(), domain.ReferenceQuery{})

	if c.Calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", c.Calls.Load())
	}
	if c.CallsTo("ListGames") != 1 || c.CallsTo("ListGenres") != 1 {
		t.Fatalf("unexpected per-method counts")
	}
	if q := c.Queries(); len(q) != 1 || q[0].Genres != "action" {
		t.Fatalf("unexpected queries %+v", q)
	}
}

func TestStubCatalogFuncOverrides(t *testing.T) {
	c := &StubCatalog{
		DetailFunc: func(ctx context.Context, id int) (games.GameDetail, error) {
			return games.GameDetail{GameSummary: games.GameSummary{ID: id}}, nil
		},
	}
	d, err := c.GetGameDetail(context.Background(), 42)
	if err != nil || d.ID != 42 {
		t.Fatalf("expected override detail, got %+v err %v", d, err)
	}
}

func TestStubCatalogNotifyClosesOnce(t *testing.T) {
	notify := make(chan struct{})
	c := &StubCatalog{Notify: notify}
	_, _ = c.ListTags(context.Background(), domain.ReferenceQuery{})
	_, _ = c.ListTags(context.Background(), domain.ReferenceQuery{})

	select {
	case <-notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
}

func TestSummaryPage(t *testing.T) {
	p := SummaryPage(true, 1, 22)
	if !p.HasMore() || len(p.Results) != 2 || p.Results[1].Slug != "game-22" {
		t.Fatalf("unexpected page %+v", p)
	}
	if SummaryPage(false).HasMore() {
		t.Fatalf("expected last page")
	}
}
