package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
)

const (
	rateLimitedName  = "rate-limited"
	defaultPerSecond = 5
	defaultBurst     = 5
)

// rateLimitedCatalog wraps a Catalog and admits calls through a token bucket.
type rateLimitedCatalog struct {
	next    Catalog
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedCatalog returns a Catalog that admits at most perSecond calls with the given burst.
// Calls block until a token is available or the context ends.
func NewRateLimitedCatalog(next Catalog, perSecond float64, burst int, logger *slog.Logger) Catalog {
	if perSecond <= 0 {
		perSecond = defaultPerSecond
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &rateLimitedCatalog{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

func (p *rateLimitedCatalog) wait(ctx context.Context, endpoint string) error {
	if p == nil || p.next == nil {
		var logger *slog.Logger
		if p != nil {
			logger = p.logger
		}
		logWithProvider(ctx, logger, slog.LevelWarn, rateLimitedName, endpoint, "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, endpoint, "rate-limited call canceled")
			return ctxErr
		}
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, endpoint, "local quota exhausted")
		return &RateLimitError{
			Provider:   rateLimitedName,
			RetryAfter: p.interval(),
			Message:    "local catalog quota exhausted",
		}
	}
	return nil
}

func (p *rateLimitedCatalog) interval() time.Duration {
	limit := float64(p.limiter.Limit())
	if limit <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / limit)
}

func limited[T any](p *rateLimitedCatalog, ctx context.Context, endpoint string, call func(Catalog) (T, error)) (T, error) {
	if err := p.wait(ctx, endpoint); err != nil {
		var zero T
		return zero, err
	}
	return call(p.next)
}

func (p *rateLimitedCatalog) ListGames(ctx context.Context, f domain.QueryFilters) (domain.Page[games.GameSummary], error) {
	return limited(p, ctx, EndpointGames, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGames(ctx, f) })
}

func (p *rateLimitedCatalog) GetGameDetail(ctx context.Context, id int) (games.GameDetail, error) {
	return limited(p, ctx, EndpointGameDetail, func(c Catalog) (games.GameDetail, error) { return c.GetGameDetail(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameTrailers(ctx context.Context, id int) (domain.Page[games.Trailer], error) {
	return limited(p, ctx, EndpointGameTrailers, func(c Catalog) (domain.Page[games.Trailer], error) { return c.ListGameTrailers(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameScreenshots(ctx context.Context, id int) (domain.Page[games.Screenshot], error) {
	return limited(p, ctx, EndpointGameScreenshots, func(c Catalog) (domain.Page[games.Screenshot], error) { return c.ListGameScreenshots(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameAchievements(ctx context.Context, id int) (domain.Page[games.Achievement], error) {
	return limited(p, ctx, EndpointGameAchievements, func(c Catalog) (domain.Page[games.Achievement], error) { return c.ListGameAchievements(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameReviews(ctx context.Context, id int) (domain.Page[games.Review], error) {
	return limited(p, ctx, EndpointGameReviews, func(c Catalog) (domain.Page[games.Review], error) { return c.ListGameReviews(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameStores(ctx context.Context, id int) (domain.Page[games.StoreLink], error) {
	return limited(p, ctx, EndpointGameStores, func(c Catalog) (domain.Page[games.StoreLink], error) { return c.ListGameStores(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameSuggestions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return limited(p, ctx, EndpointGameSuggestions, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGameSuggestions(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameSeries(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return limited(p, ctx, EndpointGameSeries, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGameSeries(ctx, id) })
}

func (p *rateLimitedCatalog) ListGameAdditions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return limited(p, ctx, EndpointGameAdditions, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGameAdditions(ctx, id) })
}

func (p *rateLimitedCatalog) ListGenres(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Genre], error) {
	return limited(p, ctx, EndpointGenres, func(c Catalog) (domain.Page[refs.Genre], error) { return c.ListGenres(ctx, q) })
}

func (p *rateLimitedCatalog) ListPlatforms(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Platform], error) {
	return limited(p, ctx, EndpointPlatforms, func(c Catalog) (domain.Page[refs.Platform], error) { return c.ListPlatforms(ctx, q) })
}

func (p *rateLimitedCatalog) ListTags(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Tag], error) {
	return limited(p, ctx, EndpointTags, func(c Catalog) (domain.Page[refs.Tag], error) { return c.ListTags(ctx, q) })
}

func (p *rateLimitedCatalog) ListStores(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Store], error) {
	return limited(p, ctx, EndpointStores, func(c Catalog) (domain.Page[refs.Store], error) { return c.ListStores(ctx, q) })
}

func (p *rateLimitedCatalog) ListCreators(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Creator], error) {
	return limited(p, ctx, EndpointCreators, func(c Catalog) (domain.Page[refs.Creator], error) { return c.ListCreators(ctx, q) })
}

func (p *rateLimitedCatalog) GetCreator(ctx context.Context, id int) (refs.CreatorDetail, error) {
	return limited(p, ctx, EndpointCreatorDetail, func(c Catalog) (refs.CreatorDetail, error) { return c.GetCreator(ctx, id) })
}
