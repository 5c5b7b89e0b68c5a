// Package suggestions picks "similar games" for a game through an ordered fallback chain.
package suggestions

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/logging"
	"github.com/dinildamsith/game-explorer/internal/metrics"
)

// Strategy names the query that produced a suggestion set.
type Strategy string

const (
	StrategyGenre     Strategy = "genre"
	StrategyTopRated  Strategy = "top_rated"
	StrategyMostAdded Strategy = "most_added"
)

const (
	// GenreLimit is how many of the source game's genres feed the genre query.
	GenreLimit = 2
	// PageSize is requested on every strategy.
	PageSize = 12
	// DefaultLimit is how many suggestions callers show after exclusion.
	DefaultLimit = 6
)

// ErrNoSuggestions is returned only when every strategy failed without an upstream error to report.
var ErrNoSuggestions = errors.New("suggestions: no strategy succeeded")

// Catalog is the catalog surface the resolver needs.
type Catalog interface {
	ListGames(ctx context.Context, filters domain.QueryFilters) (domain.Page[games.GameSummary], error)
	GetGameDetail(ctx context.Context, id int) (games.GameDetail, error)
}

// Result is the first successful strategy's page.
type Result struct {
	Strategy Strategy            `json:"strategy"`
	Games    []games.GameSummary `json:"games"`
}

// Resolver runs genre, top-rated and most-added queries in that order.
type Resolver struct {
	catalog  Catalog
	logger   *slog.Logger
	recorder *metrics.Recorder
}

func NewResolver(catalog Catalog, logger *slog.Logger, recorder *metrics.Recorder) *Resolver {
	return &Resolver{catalog: catalog, logger: logger, recorder: recorder}
}

type step struct {
	strategy Strategy
	filters  domain.QueryFilters
}

// Resolve fetches the game detail for its genres, then walks the fallback chain.
// A failed detail fetch skips the genre step rather than failing the whole resolution.
func (r *Resolver) Resolve(ctx context.Context, gameID int) (Result, error) {
	detail, err := r.catalog.GetGameDetail(ctx, gameID)
	if err != nil {
		logging.Warn(r.log(ctx), "suggestion detail lookup failed", "error", err, logging.FieldGameID, gameID)
		return r.run(ctx, gameID, nil, err)
	}
	return r.run(ctx, gameID, detail.GenreSlugs(GenreLimit), nil)
}

// FromGame walks the fallback chain using a detail the caller already holds.
func (r *Resolver) FromGame(ctx context.Context, detail games.GameDetail) (Result, error) {
	return r.run(ctx, detail.ID, detail.GenreSlugs(GenreLimit), nil)
}

func (r *Resolver) run(ctx context.Context, gameID int, slugs []string, lastErr error) (Result, error) {
	for _, s := range plan(slugs) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		page, err := r.catalog.ListGames(ctx, s.filters)
		if err != nil {
			lastErr = err
			logging.Warn(r.log(ctx), "suggestion strategy failed", "error", err,
				logging.FieldStrategy, string(s.strategy), logging.FieldGameID, gameID)
			continue
		}
		r.recorder.RecordSuggestionStrategy(string(s.strategy))
		logging.Debug(r.log(ctx), "suggestion strategy succeeded",
			logging.FieldStrategy, string(s.strategy), logging.FieldGameID, gameID, logging.FieldCount, len(page.Results))
		items := page.Results
		if items == nil {
			items = []games.GameSummary{}
		}
		return Result{Strategy: s.strategy, Games: items}, nil
	}
	if lastErr == nil {
		lastErr = ErrNoSuggestions
	}
	return Result{}, lastErr
}

func plan(slugs []string) []step {
	steps := make([]step, 0, 3)
	if len(slugs) > 0 {
		steps = append(steps, step{StrategyGenre, domain.QueryFilters{
			Genres:   strings.Join(slugs, ","),
			Ordering: domain.OrderingRatingDesc,
			Page:     domain.DefaultPage,
			PageSize: PageSize,
		}})
	}
	steps = append(steps,
		step{StrategyTopRated, domain.QueryFilters{Ordering: domain.OrderingRatingDesc, Page: domain.DefaultPage, PageSize: PageSize}},
		step{StrategyMostAdded, domain.QueryFilters{Ordering: domain.OrderingAddedDesc, Page: domain.DefaultPage, PageSize: PageSize}},
	)
	return steps
}

func (r *Resolver) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, r.logger)
}

// ExcludeAndLimit drops the source game and keeps at most limit items in order.
// limit <= 0 keeps everything.
func ExcludeAndLimit(items []games.GameSummary, sourceID, limit int) []games.GameSummary {
	out := make([]games.GameSummary, 0, len(items))
	for _, g := range items {
		if g.ID == sourceID {
			continue
		}
		out = append(out, g)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
