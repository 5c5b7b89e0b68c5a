package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
	"github.com/dinildamsith/game-explorer/internal/metrics"
)

// instrumentedCatalog records per-endpoint call metrics and logs failures.
type instrumentedCatalog struct {
	next     Catalog
	name     string
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewInstrumentedCatalog wraps next so every call is timed and counted under providerName.
func NewInstrumentedCatalog(next Catalog, providerName string, recorder *metrics.Recorder, logger *slog.Logger) Catalog {
	if providerName == "" {
		providerName = "catalog"
	}
	return &instrumentedCatalog{
		next:     next,
		name:     providerName,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func observed[T any](p *instrumentedCatalog, ctx context.Context, endpoint string, call func(Catalog) (T, error)) (T, error) {
	if p.next == nil {
		var zero T
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, endpoint, "provider unavailable")
		return zero, ErrProviderUnavailable
	}

	start := p.now()
	out, err := call(p.next)
	elapsed := p.now().Sub(start)

	p.recorder.RecordCatalogCall(p.name, endpoint, elapsed, err)
	switch {
	case err == nil:
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, endpoint, "catalog call ok", slog.Int64("duration_ms", elapsed.Milliseconds()))
	case errors.Is(err, context.Canceled):
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, endpoint, "catalog call canceled")
	case IsRateLimited(err):
		p.recorder.RecordRateLimit(p.name, endpoint, RetryAfterOf(err))
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, endpoint, "catalog rate limited", slog.Duration("retry_after", RetryAfterOf(err)))
	default:
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, endpoint, "catalog call failed", slog.Any("error", err))
	}
	return out, err
}

func (p *instrumentedCatalog) ListGames(ctx context.Context, f domain.QueryFilters) (domain.Page[games.GameSummary], error) {
	return observed(p, ctx, EndpointGames, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGames(ctx, f) })
}

func (p *instrumentedCatalog) GetGameDetail(ctx context.Context, id int) (games.GameDetail, error) {
	return observed(p, ctx, EndpointGameDetail, func(c Catalog) (games.GameDetail, error) { return c.GetGameDetail(ctx, id) })
}

func (p *instrumentedCatalog) ListGameTrailers(ctx context.Context, id int) (domain.Page[games.Trailer], error) {
	return observed(p, ctx, EndpointGameTrailers, func(c Catalog) (domain.Page[games.Trailer], error) { return c.ListGameTrailers(ctx, id) })
}

func (p *instrumentedCatalog) ListGameScreenshots(ctx context.Context, id int) (domain.Page[games.Screenshot], error) {
	return observed(p, ctx, EndpointGameScreenshots, func(c Catalog) (domain.Page[games.Screenshot], error) { return c.ListGameScreenshots(ctx, id) })
}

func (p *instrumentedCatalog) ListGameAchievements(ctx context.Context, id int) (domain.Page[games.Achievement], error) {
	return observed(p, ctx, EndpointGameAchievements, func(c Catalog) (domain.Page[games.Achievement], error) { return c.ListGameAchievements(ctx, id) })
}

func (p *instrumentedCatalog) ListGameReviews(ctx context.Context, id int) (domain.Page[games.Review], error) {
	return observed(p, ctx, EndpointGameReviews, func(c Catalog) (domain.Page[games.Review], error) { return c.ListGameReviews(ctx, id) })
}

func (p *instrumentedCatalog) ListGameStores(ctx context.Context, id int) (domain.Page[games.StoreLink], error) {
	return observed(p, ctx, EndpointGameStores, func(c Catalog) (domain.Page[games.StoreLink], error) { return c.ListGameStores(ctx, id) })
}

func (p *instrumentedCatalog) ListGameSuggestions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return observed(p, ctx, EndpointGameSuggestions, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGameSuggestions(ctx, id) })
}

func (p *instrumentedCatalog) ListGameSeries(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return observed(p, ctx, EndpointGameSeries, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGameSeries(ctx, id) })
}

func (p *instrumentedCatalog) ListGameAdditions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return observed(p, ctx, EndpointGameAdditions, func(c Catalog) (domain.Page[games.GameSummary], error) { return c.ListGameAdditions(ctx, id) })
}

func (p *instrumentedCatalog) ListGenres(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Genre], error) {
	return observed(p, ctx, EndpointGenres, func(c Catalog) (domain.Page[refs.Genre], error) { return c.ListGenres(ctx, q) })
}

func (p *instrumentedCatalog) ListPlatforms(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Platform], error) {
	return observed(p, ctx, EndpointPlatforms, func(c Catalog) (domain.Page[refs.Platform], error) { return c.ListPlatforms(ctx, q) })
}

func (p *instrumentedCatalog) ListTags(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Tag], error) {
	return observed(p, ctx, EndpointTags, func(c Catalog) (domain.Page[refs.Tag], error) { return c.ListTags(ctx, q) })
}

func (p *instrumentedCatalog) ListStores(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Store], error) {
	return observed(p, ctx, EndpointStores, func(c Catalog) (domain.Page[refs.Store], error) { return c.ListStores(ctx, q) })
}

func (p *instrumentedCatalog) ListCreators(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Creator], error) {
	return observed(p, ctx, EndpointCreators, func(c Catalog) (domain.Page[refs.Creator], error) { return c.ListCreators(ctx, q) })
}

func (p *instrumentedCatalog) GetCreator(ctx context.Context, id int) (refs.CreatorDetail, error) {
	return observed(p, ctx, EndpointCreatorDetail, func(c Catalog) (refs.CreatorDetail, error) { return c.GetCreator(ctx, id) })
}
