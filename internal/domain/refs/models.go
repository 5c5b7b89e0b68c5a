package refs

// Reference holds the fields shared by every flat catalog reference record.
// ID is the identity; Slug is the secondary key used in derived queries.
type Reference struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	GamesCount      int    `json:"gamesCount"`
	ImageBackground string `json:"imageBackground,omitempty"`
}

// Genre is a catalog genre (action, rpg, ...).
type Genre struct {
	Reference
}

// Tag is a user-facing catalog tag.
type Tag struct {
	Reference
	Language string `json:"language,omitempty"`
}

// Platform is a gaming platform.
type Platform struct {
	Reference
	Image     string `json:"image,omitempty"`
	YearStart int    `json:"yearStart,omitempty"`
	YearEnd   int    `json:"yearEnd,omitempty"`
}

// Requirements are the PC requirements attached to a platform release.
type Requirements struct {
	Minimum     string `json:"minimum,omitempty"`
	Recommended string `json:"recommended,omitempty"`
}

// PlatformRef is a platform as it appears inside a game record.
type PlatformRef struct {
	Platform     Platform      `json:"platform"`
	ReleasedAt   string        `json:"releasedAt,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
}

// Store is a digital storefront.
type Store struct {
	Reference
	Domain string `json:"domain,omitempty"`
}

// Position is a role a creator held (director, writer, ...).
type Position struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Creator is a person credited on games.
type Creator struct {
	Reference
	Image     string     `json:"image,omitempty"`
	Positions []Position `json:"positions"`
}

// CreatorDetail adds the biography returned by the single-creator endpoint.
type CreatorDetail struct {
	Creator
	Description     string  `json:"description,omitempty"`
	DescriptionText string  `json:"descriptionText,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
	ReviewsCount    int     `json:"reviewsCount,omitempty"`
}

// Company is a developer or publisher.
type Company struct {
	Reference
}

// ESRBRating is the age rating attached to a game.
type ESRBRating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
