package rawg

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
)

func mapPage[D any, T any](p pageResponse[D], fn func(D) T) domain.Page[T] {
	out := domain.Page[T]{
		Count:    p.Count,
		Next:     p.Next,
		Previous: p.Previous,
		Results:  make([]T, 0, len(p.Results)),
	}
	for _, item := range p.Results {
		out.Results = append(out.Results, fn(item))
	}
	return out
}

func mapGame(g gameResponse) games.GameSummary {
	summary := games.GameSummary{
		ID:              g.ID,
		Slug:            g.Slug,
		Name:            g.Name,
		BackgroundImage: g.BackgroundImage,
		DisplayImage:    domain.ImageOrPlaceholder(g.BackgroundImage),
		Released:        g.Released,
		Rating:          g.Rating,
		RatingTop:       g.RatingTop,
		RatingsCount:    g.RatingsCount,
		Playtime:        g.Playtime,
		Added:           g.Added,
		Genres:          make([]refs.Genre, 0, len(g.Genres)),
		Platforms:       make([]refs.PlatformRef, 0, len(g.Platforms)),
		Tags:            make([]refs.Tag, 0, len(g.Tags)),
	}
	if g.Metacritic != nil {
		summary.Metacritic = *g.Metacritic
	}
	for _, genre := range g.Genres {
		summary.Genres = append(summary.Genres, refs.Genre{Reference: mapReference(genre)})
	}
	for _, p := range g.Platforms {
		summary.Platforms = append(summary.Platforms, mapPlatformEntry(p))
	}
	for _, t := range g.Tags {
		summary.Tags = append(summary.Tags, mapTag(t))
	}
	return summary
}

func mapGameDetail(d gameDetailResponse) games.GameDetail {
	detail := games.GameDetail{
		GameSummary:       mapGame(d.gameResponse),
		NameOriginal:      d.NameOriginal,
		Description:       d.Description,
		DescriptionText:   strings.TrimSpace(d.DescriptionRaw),
		Website:           d.Website,
		RedditURL:         d.RedditURL,
		MetacriticURL:     d.MetacriticURL,
		Developers:        mapCompanies(d.Developers),
		Publishers:        mapCompanies(d.Publishers),
		ReviewsCount:      d.ReviewsCount,
		SuggestionsCount:  d.SuggestionsCount,
		AdditionsCount:    d.AdditionsCount,
		AchievementsCount: d.AchievementsCount,
		MoviesCount:       d.MoviesCount,
		ScreenshotsCount:  d.ScreenshotsCount,
	}
	if detail.DescriptionText == "" {
		detail.DescriptionText = htmlToText(d.Description)
	}
	if d.ESRBRating != nil {
		detail.ESRBRating = &refs.ESRBRating{ID: d.ESRBRating.ID, Name: d.ESRBRating.Name, Slug: d.ESRBRating.Slug}
	}
	return detail
}

func mapReference(r referenceResponse) refs.Reference {
	return refs.Reference{
		ID:              r.ID,
		Name:            r.Name,
		Slug:            r.Slug,
		GamesCount:      r.GamesCount,
		ImageBackground: r.ImageBackground,
	}
}

func mapGenre(r referenceResponse) refs.Genre {
	return refs.Genre{Reference: mapReference(r)}
}

func mapTag(t tagResponse) refs.Tag {
	return refs.Tag{Reference: mapReference(t.referenceResponse), Language: t.Language}
}

func mapPlatform(p platformResponse) refs.Platform {
	out := refs.Platform{Reference: mapReference(p.referenceResponse), Image: p.Image}
	if p.YearStart != nil {
		out.YearStart = *p.YearStart
	}
	if p.YearEnd != nil {
		out.YearEnd = *p.YearEnd
	}
	return out
}

func mapPlatformEntry(p platformEntry) refs.PlatformRef {
	out := refs.PlatformRef{Platform: mapPlatform(p.Platform), ReleasedAt: p.ReleasedAt}
	if p.RequirementsEN != nil && (p.RequirementsEN.Minimum != "" || p.RequirementsEN.Recommended != "") {
		out.Requirements = &refs.Requirements{
			Minimum:     p.RequirementsEN.Minimum,
			Recommended: p.RequirementsEN.Recommended,
		}
	}
	return out
}

func mapStore(s storeResponse) refs.Store {
	return refs.Store{Reference: mapReference(s.referenceResponse), Domain: s.Domain}
}

func mapCompanies(in []referenceResponse) []refs.Company {
	out := make([]refs.Company, 0, len(in))
	for _, c := range in {
		out = append(out, refs.Company{Reference: mapReference(c)})
	}
	return out
}

func mapCreator(c creatorResponse) refs.Creator {
	out := refs.Creator{
		Reference: mapReference(c.referenceResponse),
		Image:     c.Image,
		Positions: make([]refs.Position, 0, len(c.Positions)),
	}
	for _, p := range c.Positions {
		out.Positions = append(out.Positions, refs.Position{ID: p.ID, Name: p.Name, Slug: p.Slug})
	}
	return out
}

func mapCreatorDetail(c creatorDetailResponse) refs.CreatorDetail {
	return refs.CreatorDetail{
		Creator:         mapCreator(c.creatorResponse),
		Description:     c.Description,
		DescriptionText: htmlToText(c.Description),
		Rating:          float64(c.Rating),
		ReviewsCount:    c.ReviewsCount,
	}
}

func mapTrailer(gameID int) func(movieResponse) games.Trailer {
	return func(m movieResponse) games.Trailer {
		return games.Trailer{
			ID:       m.ID,
			GameID:   gameID,
			Name:     m.Name,
			Preview:  m.Preview,
			VideoLow: m.Data["480"],
			VideoMax: m.Data["max"],
		}
	}
}

func mapScreenshot(gameID int) func(screenshotResponse) games.Screenshot {
	return func(s screenshotResponse) games.Screenshot {
		return games.Screenshot{ID: s.ID, GameID: gameID, Image: s.Image, Width: s.Width, Height: s.Height}
	}
}

func mapAchievement(gameID int) func(achievementResponse) games.Achievement {
	return func(a achievementResponse) games.Achievement {
		return games.Achievement{
			ID:          a.ID,
			GameID:      gameID,
			Name:        a.Name,
			Description: a.Description,
			Image:       a.Image,
			Percent:     float64(a.Percent),
		}
	}
}

func mapReview(gameID int) func(reviewResponse) games.Review {
	return func(r reviewResponse) games.Review {
		review := games.Review{
			ID:      r.ID,
			GameID:  gameID,
			Rating:  r.Rating,
			Text:    htmlToText(r.Text),
			Likes:   r.Likes,
			Created: r.Created,
		}
		if r.User != nil {
			review.Author = r.User.Username
		}
		return review
	}
}

func mapStoreLink(gameID int) func(storeLinkResponse) games.StoreLink {
	return func(s storeLinkResponse) games.StoreLink {
		id := s.GameID
		if id == 0 {
			id = gameID
		}
		return games.StoreLink{ID: s.ID, GameID: id, StoreID: s.StoreID, URL: s.URL}
	}
}

// htmlToText flattens catalog description markup into paragraphs separated by blank lines.
func htmlToText(markup string) string {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	doc.Find("br").ReplaceWithHtml("\n")

	var paragraphs []string
	doc.Find("p, h1, h2, h3, h4, li").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(paragraphs, "\n\n")
}
