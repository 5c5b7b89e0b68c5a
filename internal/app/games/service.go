package games

import (
	"context"
	"errors"
	"fmt"

	"github.com/dinildamsith/game-explorer/internal/domain"
	domaingames "github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/providers"
	"github.com/dinildamsith/game-explorer/internal/timeutil"
)

// TopRatedPageSize is the size of the top-rated showcase listing.
const TopRatedPageSize = 20

// ErrInvalidFilters wraps every filter validation failure.
var ErrInvalidFilters = errors.New("invalid filters")

// Catalog is the game-facing part of the catalog.
type Catalog interface {
	providers.GameCatalog
	providers.GameResourceCatalog
}

// Listing is a page of games plus the flags renderers branch on.
type Listing struct {
	domain.Page[domaingames.GameSummary]
	HasMore bool `json:"hasMore"`
	Empty   bool `json:"empty"`
}

func listingOf(page domain.Page[domaingames.GameSummary]) Listing {
	if page.Results == nil {
		page.Results = []domaingames.GameSummary{}
	}
	return Listing{Page: page, HasMore: page.HasMore(), Empty: page.IsEmpty()}
}

// Service coordinates game reads against the catalog.
type Service struct {
	catalog Catalog
}

// NewService constructs a Service backed by catalog.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// ValidateFilters checks ordering, page size and the dates range.
func ValidateFilters(f domain.QueryFilters) error {
	if f.Ordering != "" && !domain.IsKnownOrdering(f.Ordering) {
		return fmt.Errorf("%w: unknown ordering %q", ErrInvalidFilters, f.Ordering)
	}
	if f.PageSize > domain.MaxPageSize {
		return fmt.Errorf("%w: page size %d exceeds %d", ErrInvalidFilters, f.PageSize, domain.MaxPageSize)
	}
	if f.Page < 0 || f.PageSize < 0 {
		return fmt.Errorf("%w: negative paging", ErrInvalidFilters)
	}
	if f.Dates != "" {
		if _, err := timeutil.ParseDateRange(f.Dates); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilters, err)
		}
	}
	return nil
}

// List returns one page of games for filters.
func (s *Service) List(ctx context.Context, filters domain.QueryFilters) (Listing, error) {
	f := filters.Normalized()
	if err := ValidateFilters(f); err != nil {
		return Listing{}, err
	}
	page, err := s.catalog.ListGames(ctx, f)
	if err != nil {
		return Listing{}, err
	}
	return listingOf(page), nil
}

// TopRated is the achievements showcase: highest rated games first.
func (s *Service) TopRated(ctx context.Context, page int) (Listing, error) {
	return s.List(ctx, domain.QueryFilters{
		Ordering: domain.OrderingRatingDesc,
		Page:     page,
		PageSize: TopRatedPageSize,
	})
}

// Game returns a single game's detail.
func (s *Service) Game(ctx context.Context, id int) (domaingames.GameDetail, error) {
	return s.catalog.GetGameDetail(ctx, id)
}

func (s *Service) Trailers(ctx context.Context, id int) (domain.Page[domaingames.Trailer], error) {
	return s.catalog.ListGameTrailers(ctx, id)
}

func (s *Service) Screenshots(ctx context.Context, id int) (domain.Page[domaingames.Screenshot], error) {
	return s.catalog.ListGameScreenshots(ctx, id)
}

func (s *Service) Achievements(ctx context.Context, id int) (domain.Page[domaingames.Achievement], error) {
	return s.catalog.ListGameAchievements(ctx, id)
}

func (s *Service) Reviews(ctx context.Context, id int) (domain.Page[domaingames.Review], error) {
	return s.catalog.ListGameReviews(ctx, id)
}

func (s *Service) StoreLinks(ctx context.Context, id int) (domain.Page[domaingames.StoreLink], error) {
	return s.catalog.ListGameStores(ctx, id)
}

// Suggested is the catalog's own "suggested" list, distinct from the resolver's similar games.
func (s *Service) Suggested(ctx context.Context, id int) (domain.Page[domaingames.GameSummary], error) {
	return s.catalog.ListGameSuggestions(ctx, id)
}

func (s *Service) Series(ctx context.Context, id int) (domain.Page[domaingames.GameSummary], error) {
	return s.catalog.ListGameSeries(ctx, id)
}

func (s *Service) Additions(ctx context.Context, id int) (domain.Page[domaingames.GameSummary], error) {
	return s.catalog.ListGameAdditions(ctx, id)
}
