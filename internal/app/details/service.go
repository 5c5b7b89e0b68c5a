// Package details assembles the game detail page and the trailer playback view.
package details

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dinildamsith/game-explorer/internal/app/suggestions"
	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/logging"
	"github.com/dinildamsith/game-explorer/internal/providers"
)

// ErrTrailerNotFound is returned when the requested trailer is not attached to the game.
var ErrTrailerNotFound = errors.New("trailer not found")

// Catalog is the slice of the catalog the detail page reads.
type Catalog interface {
	providers.GameCatalog
	ListGameTrailers(ctx context.Context, id int) (domain.Page[games.Trailer], error)
	ListGameScreenshots(ctx context.Context, id int) (domain.Page[games.Screenshot], error)
	ListGameAchievements(ctx context.Context, id int) (domain.Page[games.Achievement], error)
	ListGameStores(ctx context.Context, id int) (domain.Page[games.StoreLink], error)
}

// Similar is the suggestions section with the strategy that filled it.
type Similar struct {
	domain.Section[games.GameSummary]
	Strategy suggestions.Strategy `json:"strategy,omitempty"`
}

// Overview is the full detail page. Game is primary; every other field is a section
// whose failure is reported in place.
type Overview struct {
	Game         games.GameDetail                  `json:"game"`
	Trailers     domain.Section[games.Trailer]     `json:"trailers"`
	Screenshots  domain.Section[games.Screenshot]  `json:"screenshots"`
	Achievements domain.Section[games.Achievement] `json:"achievements"`
	Stores       domain.Section[games.StoreLink]   `json:"stores"`
	Similar      Similar                           `json:"similar"`
}

// TrailerView is the playback screen: the chosen trailer, the others, and the game.
type TrailerView struct {
	Game    games.GameDetail `json:"game"`
	Current games.Trailer    `json:"current"`
	Others  []games.Trailer  `json:"others"`
}

// Service fans detail page reads out in parallel.
type Service struct {
	catalog  Catalog
	resolver *suggestions.Resolver
	logger   *slog.Logger
}

// NewService wires the detail page to catalog and the suggestion resolver.
func NewService(catalog Catalog, resolver *suggestions.Resolver, logger *slog.Logger) *Service {
	return &Service{catalog: catalog, resolver: resolver, logger: logger}
}

// Overview fetches the detail and every section concurrently.
// Only a detail failure fails the call.
func (s *Service) Overview(ctx context.Context, id int, similarLimit int) (Overview, error) {
	var out Overview
	var g errgroup.Group

	g.Go(func() error {
		detail, err := s.catalog.GetGameDetail(ctx, id)
		if err != nil {
			return err
		}
		out.Game = detail
		return nil
	})
	g.Go(func() error {
		page, err := s.catalog.ListGameTrailers(ctx, id)
		out.Trailers = domain.SectionOf(page.Results, s.logged(ctx, id, "trailers", err))
		return nil
	})
	g.Go(func() error {
		page, err := s.catalog.ListGameScreenshots(ctx, id)
		out.Screenshots = domain.SectionOf(page.Results, s.logged(ctx, id, "screenshots", err))
		return nil
	})
	g.Go(func() error {
		page, err := s.catalog.ListGameAchievements(ctx, id)
		out.Achievements = domain.SectionOf(page.Results, s.logged(ctx, id, "achievements", err))
		return nil
	})
	g.Go(func() error {
		page, err := s.catalog.ListGameStores(ctx, id)
		out.Stores = domain.SectionOf(page.Results, s.logged(ctx, id, "stores", err))
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	out.Similar = s.similarFor(ctx, out.Game, similarLimit)
	return out, nil
}

func (s *Service) similarFor(ctx context.Context, detail games.GameDetail, limit int) Similar {
	res, err := s.resolver.FromGame(ctx, detail)
	if err != nil {
		return Similar{Section: domain.SectionOf[games.GameSummary](nil, s.logged(ctx, detail.ID, "similar", err))}
	}
	items := suggestions.ExcludeAndLimit(res.Games, detail.ID, limitOrDefault(limit))
	return Similar{Section: domain.SectionOf(items, nil), Strategy: res.Strategy}
}

// Similar resolves suggestions for a game, excluding it and keeping at most limit.
func (s *Service) Similar(ctx context.Context, id int, limit int) (suggestions.Result, error) {
	res, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return suggestions.Result{}, err
	}
	res.Games = suggestions.ExcludeAndLimit(res.Games, id, limitOrDefault(limit))
	return res, nil
}

// Trailer loads the game and its trailers concurrently and selects trailerID.
func (s *Service) Trailer(ctx context.Context, gameID, trailerID int) (TrailerView, error) {
	var (
		detail   games.GameDetail
		trailers domain.Page[games.Trailer]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = s.catalog.GetGameDetail(gctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		trailers, err = s.catalog.ListGameTrailers(gctx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return TrailerView{}, err
	}

	view := TrailerView{Game: detail, Others: []games.Trailer{}}
	found := false
	for _, t := range trailers.Results {
		if t.ID == trailerID && !found {
			view.Current = t
			found = true
			continue
		}
		view.Others = append(view.Others, t)
	}
	if !found {
		return TrailerView{}, ErrTrailerNotFound
	}
	return view, nil
}

func (s *Service) logged(ctx context.Context, id int, section string, err error) error {
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "detail section failed",
			"error", err, "section", section, logging.FieldGameID, id)
	}
	return err
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return suggestions.DefaultLimit
	}
	return limit
}
