package games

import "github.com/dinildamsith/game-explorer/internal/domain/refs"

// GameSummary is the card-level game record returned by listings.
// ID is the de-duplication key across every listing operation.
type GameSummary struct {
	ID              int                `json:"id"`
	Slug            string             `json:"slug"`
	Name            string             `json:"name"`
	BackgroundImage string             `json:"backgroundImage,omitempty"`
	DisplayImage    string             `json:"displayImage"`
	Released        string             `json:"released,omitempty"`
	Rating          float64            `json:"rating"`
	RatingTop       int                `json:"ratingTop,omitempty"`
	RatingsCount    int                `json:"ratingsCount"`
	Metacritic      int                `json:"metacritic,omitempty"`
	Playtime        int                `json:"playtime"`
	Added           int                `json:"added,omitempty"`
	Genres          []refs.Genre       `json:"genres"`
	Platforms       []refs.PlatformRef `json:"platforms"`
	Tags            []refs.Tag         `json:"tags"`
}

// GenreSlugs returns up to limit genre slugs in upstream order; limit <= 0 returns all.
func (g GameSummary) GenreSlugs(limit int) []string {
	slugs := make([]string, 0, len(g.Genres))
	for _, genre := range g.Genres {
		if genre.Slug == "" {
			continue
		}
		slugs = append(slugs, genre.Slug)
		if limit > 0 && len(slugs) == limit {
			break
		}
	}
	return slugs
}

// GameDetail is the full record returned by the single-game endpoint.
type GameDetail struct {
	GameSummary
	NameOriginal      string           `json:"nameOriginal,omitempty"`
	Description       string           `json:"description,omitempty"`
	DescriptionText   string           `json:"descriptionText,omitempty"`
	Website           string           `json:"website,omitempty"`
	RedditURL         string           `json:"redditUrl,omitempty"`
	MetacriticURL     string           `json:"metacriticUrl,omitempty"`
	Developers        []refs.Company   `json:"developers"`
	Publishers        []refs.Company   `json:"publishers"`
	ESRBRating        *refs.ESRBRating `json:"esrbRating,omitempty"`
	ReviewsCount      int              `json:"reviewsCount"`
	SuggestionsCount  int              `json:"suggestionsCount"`
	AdditionsCount    int              `json:"additionsCount"`
	AchievementsCount int              `json:"achievementsCount"`
	MoviesCount       int              `json:"moviesCount"`
	ScreenshotsCount  int              `json:"screenshotsCount"`
}

// Trailer is a video attached to a game.
type Trailer struct {
	ID       int    `json:"id"`
	GameID   int    `json:"gameId"`
	Name     string `json:"name"`
	Preview  string `json:"preview,omitempty"`
	VideoLow string `json:"video480,omitempty"`
	VideoMax string `json:"videoMax,omitempty"`
}

// Screenshot is a still image attached to a game.
type Screenshot struct {
	ID     int    `json:"id"`
	GameID int    `json:"gameId"`
	Image  string `json:"image"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Achievement is an in-game achievement with its unlock rate.
type Achievement struct {
	ID          int     `json:"id"`
	GameID      int     `json:"gameId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Percent     float64 `json:"percent"`
}

// Review is a player review. Text is plain text with paragraphs separated by blank lines.
type Review struct {
	ID      int    `json:"id"`
	GameID  int    `json:"gameId"`
	Author  string `json:"author,omitempty"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
	Likes   int    `json:"likes"`
	Created string `json:"created,omitempty"`
}

// StoreLink is a purchase link for a game on a storefront.
type StoreLink struct {
	ID      int         `json:"id"`
	GameID  int         `json:"gameId"`
	StoreID int         `json:"storeId"`
	URL     string      `json:"url"`
	Store   *refs.Store `json:"store,omitempty"`
}
