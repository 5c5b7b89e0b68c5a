package fixture

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
	"github.com/dinildamsith/game-explorer/internal/providers"
	"github.com/dinildamsith/game-explorer/internal/timeutil"
)

const (
	providerName      = "fixture"
	maxFixtureReviews = 5
)

// Provider serves a deterministic offline catalog for local development and tests.
type Provider struct {
	byID map[int]games.GameDetail
	list []games.GameDetail
}

var _ providers.Catalog = (*Provider)(nil)

// New builds the fixture catalog.
func New() *Provider {
	p := &Provider{byID: make(map[int]games.GameDetail, len(seeds))}
	for _, s := range seeds {
		d := buildDetail(s)
		p.byID[d.ID] = d
		p.list = append(p.list, d)
	}
	return p
}

// ListGames filters, orders and pages the fixture games the way the live catalog would.
func (p *Provider) ListGames(ctx context.Context, filters domain.QueryFilters) (domain.Page[games.GameSummary], error) {
	if err := ctx.Err(); err != nil {
		return domain.Page[games.GameSummary]{}, err
	}
	f := filters.Normalized()

	var dates *timeutil.DateRange
	if f.Dates != "" {
		r, err := timeutil.ParseDateRange(f.Dates)
		if err != nil {
			return domain.Page[games.GameSummary]{}, upstreamError(http.StatusBadRequest, providers.EndpointGames, err.Error())
		}
		dates = &r
	}

	matched := make([]games.GameSummary, 0, len(p.list))
	for _, d := range p.list {
		if matches(d.GameSummary, f, dates) {
			matched = append(matched, d.GameSummary)
		}
	}
	orderGames(matched, f.Ordering)
	return paginate(matched, f.Page, f.PageSize, "games"), nil
}

func (p *Provider) GetGameDetail(ctx context.Context, id int) (games.GameDetail, error) {
	if err := ctx.Err(); err != nil {
		return games.GameDetail{}, err
	}
	d, ok := p.byID[id]
	if !ok {
		return games.GameDetail{}, upstreamError(http.StatusNotFound, providers.EndpointGameDetail, "Not found.")
	}
	return d, nil
}

func (p *Provider) ListGameTrailers(ctx context.Context, id int) (domain.Page[games.Trailer], error) {
	d, err := p.GetGameDetail(ctx, id)
	if err != nil {
		return domain.Page[games.Trailer]{}, err
	}
	out := make([]games.Trailer, 0, d.MoviesCount)
	for i := 1; i <= d.MoviesCount; i++ {
		out = append(out, games.Trailer{
			ID:       id*10 + i,
			GameID:   id,
			Name:     fmt.Sprintf("%s Trailer %d", d.Name, i),
			Preview:  fmt.Sprintf("https://media.fixture.local/%d/trailer-%d.jpg", id, i),
			VideoLow: fmt.Sprintf("https://media.fixture.local/%d/trailer-%d-480.mp4", id, i),
			VideoMax: fmt.Sprintf("https://media.fixture.local/%d/trailer-%d-max.mp4", id, i),
		})
	}
	return lastPage(out), nil
}

func (p *Provider) ListGameScreenshots(ctx context.Context, id int) (domain.Page[games.Screenshot], error) {
	d, err := p.GetGameDetail(ctx, id)
	if err != nil {
		return domain.Page[games.Screenshot]{}, err
	}
	out := make([]games.Screenshot, 0, d.ScreenshotsCount)
	for i := 1; i <= d.ScreenshotsCount; i++ {
		out = append(out, games.Screenshot{
			ID:     id*100 + i,
			GameID: id,
			Image:  fmt.Sprintf("https://media.fixture.local/%d/shot-%d.jpg", id, i),
			Width:  1920,
			Height: 1080,
		})
	}
	return lastPage(out), nil
}

func (p *Provider) ListGameAchievements(ctx context.Context, id int) (domain.Page[games.Achievement], error) {
	d, err := p.GetGameDetail(ctx, id)
	if err != nil {
		return domain.Page[games.Achievement]{}, err
	}
	out := make([]games.Achievement, 0, d.AchievementsCount)
	for i := 1; i <= d.AchievementsCount; i++ {
		out = append(out, games.Achievement{
			ID:          id*1000 + i,
			GameID:      id,
			Name:        fmt.Sprintf("Milestone %d", i),
			Description: fmt.Sprintf("Reach milestone %d in %s.", i, d.Name),
			Percent:     float64(100 / (i + 1)),
		})
	}
	return lastPage(out), nil
}

// ListGameReviews generates at most maxFixtureReviews reviews, cycling ratings from 5 down.
func (p *Provider) ListGameReviews(ctx context.Context, id int) (domain.Page[games.Review], error) {
	d, err := p.GetGameDetail(ctx, id)
	if err != nil {
		return domain.Page[games.Review]{}, err
	}
	n := min(d.ReviewsCount, maxFixtureReviews)
	out := make([]games.Review, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, games.Review{
			ID:      id*1000 + i,
			GameID:  id,
			Author:  fmt.Sprintf("player%d", i),
			Rating:  5 - (i-1)%5,
			Text:    fmt.Sprintf("Review %d of %s.", i, d.Name),
			Likes:   n - i,
			Created: d.Released,
		})
	}
	return lastPage(out), nil
}

func (p *Provider) ListGameStores(ctx context.Context, id int) (domain.Page[games.StoreLink], error) {
	if _, err := p.GetGameDetail(ctx, id); err != nil {
		return domain.Page[games.StoreLink]{}, err
	}
	var seedStores []int
	for _, s := range seeds {
		if s.id == id {
			seedStores = s.stores
		}
	}
	out := make([]games.StoreLink, 0, len(seedStores))
	for i, storeID := range seedStores {
		st := storeByID(storeID)
		out = append(out, games.StoreLink{
			ID:      id*10 + i + 1,
			GameID:  id,
			StoreID: storeID,
			URL:     fmt.Sprintf("https://%s/app/%d", st.Domain, id),
			Store:   &st,
		})
	}
	return lastPage(out), nil
}

// ListGameSuggestions returns games sharing the first genre, mirroring the live endpoint loosely.
func (p *Provider) ListGameSuggestions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	d, err := p.GetGameDetail(ctx, id)
	if err != nil {
		return domain.Page[games.GameSummary]{}, err
	}
	slugs := d.GenreSlugs(1)
	out := make([]games.GameSummary, 0)
	for _, other := range p.list {
		if other.ID != id && len(slugs) > 0 && hasGenre(other.GameSummary, slugs[0]) {
			out = append(out, other.GameSummary)
		}
	}
	return lastPage(out), nil
}

func (p *Provider) ListGameSeries(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	if _, err := p.GetGameDetail(ctx, id); err != nil {
		return domain.Page[games.GameSummary]{}, err
	}
	series := 0
	for _, s := range seeds {
		if s.id == id {
			series = s.series
		}
	}
	out := make([]games.GameSummary, 0)
	if series != 0 {
		for _, s := range seeds {
			if s.series == series && s.id != id {
				out = append(out, p.byID[s.id].GameSummary)
			}
		}
	}
	return lastPage(out), nil
}

func (p *Provider) ListGameAdditions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	if _, err := p.GetGameDetail(ctx, id); err != nil {
		return domain.Page[games.GameSummary]{}, err
	}
	out := make([]games.GameSummary, 0)
	for _, addID := range additions[id] {
		out = append(out, p.byID[addID].GameSummary)
	}
	return lastPage(out), nil
}

func (p *Provider) ListGenres(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Genre], error) {
	if err := ctx.Err(); err != nil {
		return domain.Page[refs.Genre]{}, err
	}
	out := make([]refs.Genre, 0, len(genres))
	for _, g := range genres {
		g.GamesCount = p.countWhere(func(s games.GameSummary) bool { return hasGenre(s, g.Slug) })
		out = append(out, g)
	}
	return paginateRefs(out, q, "genres"), nil
}

func (p *Provider) ListPlatforms(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Platform], error) {
	if err := ctx.Err(); err != nil {
		return domain.Page[refs.Platform]{}, err
	}
	out := make([]refs.Platform, 0, len(platforms))
	for _, pl := range platforms {
		id := strconv.Itoa(pl.ID)
		pl.GamesCount = p.countWhere(func(s games.GameSummary) bool { return hasPlatform(s, id) })
		out = append(out, pl)
	}
	return paginateRefs(out, q, "platforms"), nil
}

func (p *Provider) ListTags(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Tag], error) {
	if err := ctx.Err(); err != nil {
		return domain.Page[refs.Tag]{}, err
	}
	out := make([]refs.Tag, 0, len(tags))
	for _, t := range tags {
		t.GamesCount = p.countWhere(func(s games.GameSummary) bool { return hasTag(s, t.Slug) })
		out = append(out, t)
	}
	return paginateRefs(out, q, "tags"), nil
}

func (p *Provider) ListStores(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Store], error) {
	if err := ctx.Err(); err != nil {
		return domain.Page[refs.Store]{}, err
	}
	out := make([]refs.Store, 0, len(stores))
	for _, st := range stores {
		st.GamesCount = countSeeds(func(s seed) bool { return slices.Contains(s.stores, st.ID) })
		out = append(out, st)
	}
	return paginateRefs(out, q, "stores"), nil
}

func (p *Provider) ListCreators(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Creator], error) {
	if err := ctx.Err(); err != nil {
		return domain.Page[refs.Creator]{}, err
	}
	out := make([]refs.Creator, len(creators))
	copy(out, creators)
	return paginateRefs(out, q, "creators"), nil
}

func (p *Provider) GetCreator(ctx context.Context, id int) (refs.CreatorDetail, error) {
	if err := ctx.Err(); err != nil {
		return refs.CreatorDetail{}, err
	}
	for _, c := range creators {
		if c.ID == id {
			bio := fmt.Sprintf("%s is credited on fixture titles.", c.Name)
			return refs.CreatorDetail{
				Creator:         c,
				Description:     "<p>" + bio + "</p>",
				DescriptionText: bio,
				Rating:          4.2,
				ReviewsCount:    12,
			}, nil
		}
	}
	return refs.CreatorDetail{}, upstreamError(http.StatusNotFound, providers.EndpointCreatorDetail, "Not found.")
}

func buildDetail(s seed) games.GameDetail {
	summary := games.GameSummary{
		ID:           s.id,
		Slug:         slugify(s.name),
		Name:         s.name,
		Released:     s.released,
		Rating:       s.rating,
		RatingTop:    5,
		RatingsCount: s.added / 3,
		Metacritic:   s.metacritic,
		Playtime:     int(s.rating * 10),
		Added:        s.added,
		Genres:       make([]refs.Genre, 0, len(s.genres)),
		Platforms:    make([]refs.PlatformRef, 0, len(s.platforms)),
		Tags:         make([]refs.Tag, 0, len(s.tags)),
	}
	if s.image {
		summary.BackgroundImage = fmt.Sprintf("https://media.fixture.local/%d/background.jpg", s.id)
	}
	summary.DisplayImage = domain.ImageOrPlaceholder(summary.BackgroundImage)
	for _, slug := range s.genres {
		for _, g := range genres {
			if g.Slug == slug {
				summary.Genres = append(summary.Genres, g)
			}
		}
	}
	for _, id := range s.platforms {
		for _, pl := range platforms {
			if pl.ID == id {
				summary.Platforms = append(summary.Platforms, refs.PlatformRef{Platform: pl, ReleasedAt: s.released})
			}
		}
	}
	for _, slug := range s.tags {
		for _, t := range tags {
			if t.Slug == slug {
				summary.Tags = append(summary.Tags, t)
			}
		}
	}

	desc := fmt.Sprintf("%s is a fixture title released on %s.", s.name, s.released)
	return games.GameDetail{
		GameSummary:       summary,
		NameOriginal:      s.name,
		Description:       "<p>" + desc + "</p>",
		DescriptionText:   desc,
		Developers:        []refs.Company{{Reference: refs.Reference{ID: 900 + s.id%7, Name: "Fixture Studio", Slug: "fixture-studio"}}},
		Publishers:        []refs.Company{{Reference: refs.Reference{ID: 800, Name: "Fixture Publishing", Slug: "fixture-publishing"}}},
		ReviewsCount:      s.added / 10,
		AdditionsCount:    len(additions[s.id]),
		AchievementsCount: s.id%4 + 1,
		MoviesCount:       s.id % 3,
		ScreenshotsCount:  3,
	}
}

func matches(g games.GameSummary, f domain.QueryFilters, dates *timeutil.DateRange) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Genres != "" && !anyOf(f.Genres, func(v string) bool { return hasGenre(g, v) }) {
		return false
	}
	if f.Platforms != "" && !anyOf(f.Platforms, func(v string) bool { return hasPlatform(g, v) }) {
		return false
	}
	if f.Tags != "" && !anyOf(f.Tags, func(v string) bool { return hasTag(g, v) }) {
		return false
	}
	if f.Stores != "" && !anyOf(f.Stores, func(v string) bool { return hasStore(g.ID, v) }) {
		return false
	}
	if dates != nil {
		released, err := timeutil.ParseDate(g.Released)
		if err != nil || !dates.Contains(released) {
			return false
		}
	}
	return true
}

func orderGames(list []games.GameSummary, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")
	var less func(a, b games.GameSummary) bool
	switch key {
	case "name":
		less = func(a, b games.GameSummary) bool { return a.Name < b.Name }
	case "released":
		less = func(a, b games.GameSummary) bool { return a.Released < b.Released }
	case "rating":
		less = func(a, b games.GameSummary) bool { return a.Rating < b.Rating }
	case "metacritic":
		less = func(a, b games.GameSummary) bool { return a.Metacritic < b.Metacritic }
	case "added", "created", "updated":
		less = func(a, b games.GameSummary) bool { return a.Added < b.Added }
	default:
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

func paginate[T any](all []T, page, size int, path string) domain.Page[T] {
	start := (page - 1) * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	out := domain.Page[T]{Count: len(all), Results: append([]T(nil), all[start:end]...)}
	if out.Results == nil {
		out.Results = []T{}
	}
	if end < len(all) {
		next := fmt.Sprintf("fixture://%s?page=%d&page_size=%d", path, page+1, size)
		out.Next = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("fixture://%s?page=%d&page_size=%d", path, page-1, size)
		out.Previous = &prev
	}
	return out
}

func paginateRefs[T any](all []T, q domain.ReferenceQuery, path string) domain.Page[T] {
	page, size := q.Page, q.PageSize
	if page <= 0 {
		page = domain.DefaultPage
	}
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	return paginate(all, page, size, path)
}

func lastPage[T any](items []T) domain.Page[T] {
	return domain.Page[T]{Count: len(items), Results: items}
}

func upstreamError(status int, endpoint, body string) error {
	return &providers.UpstreamError{Provider: providerName, Endpoint: endpoint, Status: status, Body: body}
}

func (p *Provider) countWhere(pred func(games.GameSummary) bool) int {
	n := 0
	for _, d := range p.list {
		if pred(d.GameSummary) {
			n++
		}
	}
	return n
}

func countSeeds(pred func(seed) bool) int {
	n := 0
	for _, s := range seeds {
		if pred(s) {
			n++
		}
	}
	return n
}

func anyOf(csv string, pred func(string) bool) bool {
	for _, v := range strings.Split(csv, ",") {
		if v = strings.TrimSpace(v); v != "" && pred(v) {
			return true
		}
	}
	return false
}

func hasGenre(g games.GameSummary, v string) bool {
	for _, genre := range g.Genres {
		if genre.Slug == v || strconv.Itoa(genre.ID) == v {
			return true
		}
	}
	return false
}

func hasPlatform(g games.GameSummary, v string) bool {
	for _, pl := range g.Platforms {
		if pl.Platform.Slug == v || strconv.Itoa(pl.Platform.ID) == v {
			return true
		}
	}
	return false
}

func hasTag(g games.GameSummary, v string) bool {
	for _, t := range g.Tags {
		if t.Slug == v || strconv.Itoa(t.ID) == v {
			return true
		}
	}
	return false
}

func hasStore(gameID int, v string) bool {
	for _, s := range seeds {
		if s.id != gameID {
			continue
		}
		for _, id := range s.stores {
			st := storeByID(id)
			if st.Slug == v || strconv.Itoa(id) == v {
				return true
			}
		}
	}
	return false
}

func storeByID(id int) refs.Store {
	for _, st := range stores {
		if st.ID == id {
			return st
		}
	}
	return refs.Store{Reference: refs.Reference{ID: id}}
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
