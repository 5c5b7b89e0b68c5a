package rawg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type pageResponse[T any] struct {
	Count    int     `json:"count" validate:"gte=0"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results" validate:"required,dive"`
}

type gameResponse struct {
	ID              int                 `json:"id" validate:"gt=0"`
	Slug            string              `json:"slug"`
	Name            string              `json:"name" validate:"required"`
	Released        string              `json:"released"`
	BackgroundImage string              `json:"background_image"`
	Rating          float64             `json:"rating" validate:"gte=0"`
	RatingTop       int                 `json:"rating_top" validate:"gte=0"`
	RatingsCount    int                 `json:"ratings_count" validate:"gte=0"`
	Metacritic      *int                `json:"metacritic"`
	Playtime        int                 `json:"playtime" validate:"gte=0"`
	Added           int                 `json:"added" validate:"gte=0"`
	Genres          []referenceResponse `json:"genres" validate:"dive"`
	Platforms       []platformEntry     `json:"platforms" validate:"dive"`
	Tags            []tagResponse       `json:"tags" validate:"dive"`
}

type gameDetailResponse struct {
	gameResponse
	NameOriginal      string              `json:"name_original"`
	Description       string              `json:"description"`
	DescriptionRaw    string              `json:"description_raw"`
	Website           string              `json:"website"`
	RedditURL         string              `json:"reddit_url"`
	MetacriticURL     string              `json:"metacritic_url"`
	Developers        []referenceResponse `json:"developers" validate:"dive"`
	Publishers        []referenceResponse `json:"publishers" validate:"dive"`
	ESRBRating        *esrbResponse       `json:"esrb_rating" validate:"omitempty"`
	ReviewsCount      int                 `json:"reviews_count" validate:"gte=0"`
	SuggestionsCount  int                 `json:"suggestions_count" validate:"gte=0"`
	AdditionsCount    int                 `json:"additions_count" validate:"gte=0"`
	AchievementsCount int                 `json:"achievements_count" validate:"gte=0"`
	MoviesCount       int                 `json:"movies_count" validate:"gte=0"`
	ScreenshotsCount  int                 `json:"screenshots_count" validate:"gte=0"`
}

type referenceResponse struct {
	ID              int    `json:"id" validate:"gt=0"`
	Name            string `json:"name" validate:"required"`
	Slug            string `json:"slug"`
	GamesCount      int    `json:"games_count" validate:"gte=0"`
	ImageBackground string `json:"image_background"`
}

type tagResponse struct {
	referenceResponse
	Language string `json:"language"`
}

type platformResponse struct {
	referenceResponse
	Image     string `json:"image"`
	YearStart *int   `json:"year_start"`
	YearEnd   *int   `json:"year_end"`
}

type requirementsResponse struct {
	Minimum     string `json:"minimum"`
	Recommended string `json:"recommended"`
}

type platformEntry struct {
	Platform       platformResponse      `json:"platform"`
	ReleasedAt     string                `json:"released_at"`
	RequirementsEN *requirementsResponse `json:"requirements_en" validate:"omitempty"`
}

type storeResponse struct {
	referenceResponse
	Domain string `json:"domain"`
}

type esrbResponse struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

type movieResponse struct {
	ID      int               `json:"id" validate:"gt=0"`
	Name    string            `json:"name"`
	Preview string            `json:"preview"`
	Data    map[string]string `json:"data"`
}

type screenshotResponse struct {
	ID     int    `json:"id" validate:"gt=0"`
	Image  string `json:"image" validate:"required"`
	Width  int    `json:"width" validate:"gte=0"`
	Height int    `json:"height" validate:"gte=0"`
}

type achievementResponse struct {
	ID          int           `json:"id" validate:"gt=0"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Percent     flexibleFloat `json:"percent"`
}

type reviewResponse struct {
	ID      int                 `json:"id" validate:"gt=0"`
	Text    string              `json:"text"`
	Rating  int                 `json:"rating" validate:"gte=0,lte=5"`
	Likes   int                 `json:"likes_count" validate:"gte=0"`
	Created string              `json:"created"`
	User    *reviewUserResponse `json:"user"`
}

type reviewUserResponse struct {
	Username string `json:"username"`
}

type storeLinkResponse struct {
	ID      int    `json:"id" validate:"gt=0"`
	GameID  int    `json:"game_id" validate:"gte=0"`
	StoreID int    `json:"store_id" validate:"gt=0"`
	URL     string `json:"url"`
}

type positionResponse struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

type creatorResponse struct {
	referenceResponse
	Image     string             `json:"image"`
	Positions []positionResponse `json:"positions" validate:"dive"`
}

type creatorDetailResponse struct {
	creatorResponse
	Description  string        `json:"description"`
	Rating       flexibleFloat `json:"rating"`
	ReviewsCount int           `json:"reviews_count" validate:"gte=0"`
}

// flexibleFloat decodes numbers the catalog sometimes sends as strings ("12.34").
type flexibleFloat float64

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*f = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}
	*f = flexibleFloat(v)
	return nil
}
