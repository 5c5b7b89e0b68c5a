package providers

import (
	"context"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
)

// Endpoint names used for logging and per-endpoint metrics.
const (
	EndpointGames            = "games"
	EndpointGameDetail       = "game_detail"
	EndpointGameTrailers     = "game_movies"
	EndpointGameScreenshots  = "game_screenshots"
	EndpointGameAchievements = "game_achievements"
	EndpointGameReviews      = "game_reviews"
	EndpointGameStores       = "game_stores"
	EndpointGameSuggestions  = "game_suggested"
	EndpointGameSeries       = "game_series"
	EndpointGameAdditions    = "game_additions"
	EndpointGenres           = "genres"
	EndpointPlatforms        = "platforms"
	EndpointTags             = "tags"
	EndpointStores           = "stores"
	EndpointCreators         = "creators"
	EndpointCreatorDetail    = "creator_detail"
)

// GameCatalog lists and fetches games.
// Every optional filter left blank is omitted from the upstream query.
type GameCatalog interface {
	ListGames(ctx context.Context, filters domain.QueryFilters) (domain.Page[games.GameSummary], error)
	GetGameDetail(ctx context.Context, id int) (games.GameDetail, error)
}

// GameResourceCatalog fetches the sub-resources shown on a game's detail page.
type GameResourceCatalog interface {
	ListGameTrailers(ctx context.Context, id int) (domain.Page[games.Trailer], error)
	ListGameScreenshots(ctx context.Context, id int) (domain.Page[games.Screenshot], error)
	ListGameAchievements(ctx context.Context, id int) (domain.Page[games.Achievement], error)
	ListGameReviews(ctx context.Context, id int) (domain.Page[games.Review], error)
	ListGameStores(ctx context.Context, id int) (domain.Page[games.StoreLink], error)
	ListGameSuggestions(ctx context.Context, id int) (domain.Page[games.GameSummary], error)
	ListGameSeries(ctx context.Context, id int) (domain.Page[games.GameSummary], error)
	ListGameAdditions(ctx context.Context, id int) (domain.Page[games.GameSummary], error)
}

// ReferenceCatalog fetches the reference collections that back filter menus.
type ReferenceCatalog interface {
	ListGenres(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Genre], error)
	ListPlatforms(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Platform], error)
	ListTags(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Tag], error)
	ListStores(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Store], error)
	ListCreators(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Creator], error)
	GetCreator(ctx context.Context, id int) (refs.CreatorDetail, error)
}

// Catalog combines all catalog capabilities.
type Catalog interface {
	GameCatalog
	GameResourceCatalog
	ReferenceCatalog
}
