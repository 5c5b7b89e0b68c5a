// Package references serves the catalog reference collections behind filter menus.
package references

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
	"github.com/dinildamsith/game-explorer/internal/logging"
	"github.com/dinildamsith/game-explorer/internal/providers"
)

// MenuPageSize is requested for each filter menu when the caller does not choose one.
const MenuPageSize = 40

// Menus holds the four filter menus; each loads or fails on its own.
type Menus struct {
	Genres    domain.Section[refs.Genre]    `json:"genres"`
	Platforms domain.Section[refs.Platform] `json:"platforms"`
	Tags      domain.Section[refs.Tag]      `json:"tags"`
	Stores    domain.Section[refs.Store]    `json:"stores"`
}

// Service wraps the reference catalog.
type Service struct {
	catalog providers.ReferenceCatalog
	logger  *slog.Logger
}

func NewService(catalog providers.ReferenceCatalog, logger *slog.Logger) *Service {
	return &Service{catalog: catalog, logger: logger}
}

// FilterMenus fetches genres, platforms, tags and stores in parallel.
func (s *Service) FilterMenus(ctx context.Context, pageSize int) Menus {
	if pageSize <= 0 {
		pageSize = MenuPageSize
	}
	q := domain.ReferenceQuery{Page: domain.DefaultPage, PageSize: pageSize}

	var menus Menus
	var g errgroup.Group
	g.Go(func() error {
		page, err := s.catalog.ListGenres(ctx, q)
		menus.Genres = domain.SectionOf(page.Results, s.logged(ctx, providers.EndpointGenres, err))
		return nil
	})
	g.Go(func() error {
		page, err := s.catalog.ListPlatforms(ctx, q)
		menus.Platforms = domain.SectionOf(page.Results, s.logged(ctx, providers.EndpointPlatforms, err))
		return nil
	})
	g.Go(func() error {
		page, err := s.catalog.ListTags(ctx, q)
		menus.Tags = domain.SectionOf(page.Results, s.logged(ctx, providers.EndpointTags, err))
		return nil
	})
	g.Go(func() error {
		page, err := s.catalog.ListStores(ctx, q)
		menus.Stores = domain.SectionOf(page.Results, s.logged(ctx, providers.EndpointStores, err))
		return nil
	})
	_ = g.Wait()
	return menus
}

func (s *Service) Genres(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Genre], error) {
	return s.catalog.ListGenres(ctx, normalize(q))
}

func (s *Service) Platforms(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Platform], error) {
	return s.catalog.ListPlatforms(ctx, normalize(q))
}

func (s *Service) Tags(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Tag], error) {
	return s.catalog.ListTags(ctx, normalize(q))
}

func (s *Service) Stores(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Store], error) {
	return s.catalog.ListStores(ctx, normalize(q))
}

func (s *Service) Creators(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Creator], error) {
	return s.catalog.ListCreators(ctx, normalize(q))
}

// Creator returns one creator with biography.
func (s *Service) Creator(ctx context.Context, id int) (refs.CreatorDetail, error) {
	return s.catalog.GetCreator(ctx, id)
}

func normalize(q domain.ReferenceQuery) domain.ReferenceQuery {
	if q.Page <= 0 {
		q.Page = domain.DefaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = domain.DefaultPageSize
	}
	return q
}

func (s *Service) logged(ctx context.Context, endpoint string, err error) error {
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "filter menu failed", "error", err, logging.FieldEndpoint, endpoint)
	}
	return err
}
