package teststubs

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
)

// StubCatalog is a test double for providers.Catalog.
// Each method returns its configured page and error; ListGamesFunc and
// DetailFunc override the static values when set.
type StubCatalog struct {
	Games         domain.Page[games.GameSummary]
	GamesErr      error
	ListGamesFunc func(ctx context.Context, filters domain.QueryFilters) (domain.Page[games.GameSummary], error)

	Detail     games.GameDetail
	DetailErr  error
	DetailFunc func(ctx context.Context, id int) (games.GameDetail, error)

	Trailers        domain.Page[games.Trailer]
	TrailersErr     error
	Screenshots     domain.Page[games.Screenshot]
	ScreenshotsErr  error
	Achievements    domain.Page[games.Achievement]
	AchievementsErr error
	Reviews         domain.Page[games.Review]
	ReviewsErr      error
	StoreLinks      domain.Page[games.StoreLink]
	StoreLinksErr   error
	Suggestions     domain.Page[games.GameSummary]
	SuggestionsErr  error
	Series          domain.Page[games.GameSummary]
	SeriesErr       error
	Additions       domain.Page[games.GameSummary]
	AdditionsErr    error

	Genres       domain.Page[refs.Genre]
	GenresErr    error
	Platforms    domain.Page[refs.Platform]
	PlatformsErr error
	Tags         domain.Page[refs.Tag]
	TagsErr      error
	Stores       domain.Page[refs.Store]
	StoresErr    error
	Creators     domain.Page[refs.Creator]
	CreatorsErr  error
	Creator      refs.CreatorDetail
	CreatorErr   error

	Calls  atomic.Int32
	Notify chan struct{}

	mu      sync.Mutex
	queries []domain.QueryFilters
	byName  map[string]int
}

// ListGames records the filters and returns the configured page.
func (s *StubCatalog) ListGames(ctx context.Context, filters domain.QueryFilters) (domain.Page[games.GameSummary], error) {
	s.track("ListGames")
	s.mu.Lock()
	s.queries = append(s.queries, filters)
	s.mu.Unlock()
	if s.ListGamesFunc != nil {
		return s.ListGamesFunc(ctx, filters)
	}
	return s.Games, s.GamesErr
}

func (s *StubCatalog) GetGameDetail(ctx context.Context, id int) (games.GameDetail, error) {
	s.track("GetGameDetail")
	if s.DetailFunc != nil {
		return s.DetailFunc(ctx, id)
	}
	if s.DetailErr != nil {
		return games.GameDetail{}, s.DetailErr
	}
	return s.Detail, nil
}

func (s *StubCatalog) ListGameTrailers(ctx context.Context, id int) (domain.Page[games.Trailer], error) {
	s.track("ListGameTrailers")
	return s.Trailers, s.TrailersErr
}

func (s *StubCatalog) ListGameScreenshots(ctx context.Context, id int) (domain.Page[games.Screenshot], error) {
	s.track("ListGameScreenshots")
	return s.Screenshots, s.ScreenshotsErr
}

func (s *StubCatalog) ListGameAchievements(ctx context.Context, id int) (domain.Page[games.Achievement], error) {
	s.track("ListGameAchievements")
	return s.Achievements, s.AchievementsErr
}

func (s *StubCatalog) ListGameReviews(ctx context.Context, id int) (domain.Page[games.Review], error) {
	s.track("ListGameReviews")
	return s.Reviews, s.ReviewsErr
}

func (s *StubCatalog) ListGameStores(ctx context.Context, id int) (domain.Page[games.StoreLink], error) {
	s.track("ListGameStores")
	return s.StoreLinks, s.StoreLinksErr
}

func (s *StubCatalog) ListGameSuggestions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	s.track("ListGameSuggestions")
	return s.Suggestions, s.SuggestionsErr
}

func (s *StubCatalog) ListGameSeries(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	s.track("ListGameSeries")
	return s.Series, s.SeriesErr
}

func (s *StubCatalog) ListGameAdditions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	s.track("ListGameAdditions")
	return s.Additions, s.AdditionsErr
}

func (s *StubCatalog) ListGenres(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Genre], error) {
	s.track("ListGenres")
	return s.Genres, s.GenresErr
}

func (s *StubCatalog) ListPlatforms(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Platform], error) {
	s.track("ListPlatforms")
	return s.Platforms, s.PlatformsErr
}

func (s *StubCatalog) ListTags(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Tag], error) {
	s.track("ListTags")
	return s.Tags, s.TagsErr
}

func (s *StubCatalog) ListStores(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Store], error) {
	s.track("ListStores")
	return s.Stores, s.StoresErr
}

func (s *StubCatalog) ListCreators(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Creator], error) {
	s.track("ListCreators")
	return s.Creators, s.CreatorsErr
}

func (s *StubCatalog) GetCreator(ctx context.Context, id int) (refs.CreatorDetail, error) {
	s.track("GetCreator")
	if s.CreatorErr != nil {
		return refs.CreatorDetail{}, s.CreatorErr
	}
	return s.Creator, nil
}

// Queries returns a copy of every filter set passed to ListGames, in call order.
func (s *StubCatalog) Queries() []domain.QueryFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.QueryFilters, len(s.queries))
	copy(out, s.queries)
	return out
}

// CallsTo returns how often the named method was invoked.
func (s *StubCatalog) CallsTo(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byName[method]
}

func (s *StubCatalog) track(method string) {
	if s.Notify != nil {
		s.mu.Lock()
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
		s.mu.Unlock()
	}
	s.Calls.Add(1)
	s.mu.Lock()
	if s.byName == nil {
		s.byName = make(map[string]int)
	}
	s.byName[method]++
	s.mu.Unlock()
}

// StrPtr returns a pointer to v; handy for Page.Next in fixtures.
func StrPtr(v string) *string {
	return &v
}

// SummaryPage builds a page of summaries with the given ids; next marks more pages.
func SummaryPage(next bool, ids ...int) domain.Page[games.GameSummary] {
	page := domain.Page[games.GameSummary]{Count: len(ids), Results: make([]games.GameSummary, 0, len(ids))}
	for _, id := range ids {
		page.Results = append(page.Results, games.GameSummary{ID: id, Slug: "game-" + strconv.Itoa(id), Name: "Game " + strconv.Itoa(id)})
	}
	if next {
		page.Next = StrPtr("next")
	}
	return page
}
