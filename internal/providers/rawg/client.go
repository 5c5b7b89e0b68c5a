package rawg

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
	"github.com/dinildamsith/game-explorer/internal/providers"
)

// Config controls how the RAWG client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches catalog data from RAWG, validates it and maps it to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

var _ providers.Catalog = (*Client)(nil)

// NewClient constructs a RAWG client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// ListGames fetches one page of games matching filters.
func (c *Client) ListGames(ctx context.Context, filters domain.QueryFilters) (domain.Page[games.GameSummary], error) {
	page, err := fetch[pageResponse[gameResponse]](ctx, c, providers.EndpointGames, "/games", gamesQuery(filters))
	if err != nil {
		return domain.Page[games.GameSummary]{}, err
	}
	return mapPage(page, mapGame), nil
}

// GetGameDetail fetches a single game. A missing game yields an UpstreamError with status 404.
func (c *Client) GetGameDetail(ctx context.Context, id int) (games.GameDetail, error) {
	detail, err := fetch[gameDetailResponse](ctx, c, providers.EndpointGameDetail, gamePath(id, ""), nil)
	if err != nil {
		return games.GameDetail{}, err
	}
	return mapGameDetail(detail), nil
}

func (c *Client) ListGameTrailers(ctx context.Context, id int) (domain.Page[games.Trailer], error) {
	page, err := fetch[pageResponse[movieResponse]](ctx, c, providers.EndpointGameTrailers, gamePath(id, "movies"), nil)
	if err != nil {
		return domain.Page[games.Trailer]{}, err
	}
	return mapPage(page, mapTrailer(id)), nil
}

func (c *Client) ListGameScreenshots(ctx context.Context, id int) (domain.Page[games.Screenshot], error) {
	page, err := fetch[pageResponse[screenshotResponse]](ctx, c, providers.EndpointGameScreenshots, gamePath(id, "screenshots"), nil)
	if err != nil {
		return domain.Page[games.Screenshot]{}, err
	}
	return mapPage(page, mapScreenshot(id)), nil
}

func (c *Client) ListGameAchievements(ctx context.Context, id int) (domain.Page[games.Achievement], error) {
	page, err := fetch[pageResponse[achievementResponse]](ctx, c, providers.EndpointGameAchievements, gamePath(id, "achievements"), nil)
	if err != nil {
		return domain.Page[games.Achievement]{}, err
	}
	return mapPage(page, mapAchievement(id)), nil
}

func (c *Client) ListGameReviews(ctx context.Context, id int) (domain.Page[games.Review], error) {
	page, err := fetch[pageResponse[reviewResponse]](ctx, c, providers.EndpointGameReviews, gamePath(id, "reviews"), nil)
	if err != nil {
		return domain.Page[games.Review]{}, err
	}
	return mapPage(page, mapReview(id)), nil
}

func (c *Client) ListGameStores(ctx context.Context, id int) (domain.Page[games.StoreLink], error) {
	page, err := fetch[pageResponse[storeLinkResponse]](ctx, c, providers.EndpointGameStores, gamePath(id, "stores"), nil)
	if err != nil {
		return domain.Page[games.StoreLink]{}, err
	}
	return mapPage(page, mapStoreLink(id)), nil
}

func (c *Client) ListGameSuggestions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return c.listRelated(ctx, providers.EndpointGameSuggestions, id, "suggested")
}

func (c *Client) ListGameSeries(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return c.listRelated(ctx, providers.EndpointGameSeries, id, "game-series")
}

func (c *Client) ListGameAdditions(ctx context.Context, id int) (domain.Page[games.GameSummary], error) {
	return c.listRelated(ctx, providers.EndpointGameAdditions, id, "additions")
}

func (c *Client) listRelated(ctx context.Context, endpoint string, id int, sub string) (domain.Page[games.GameSummary], error) {
	page, err := fetch[pageResponse[gameResponse]](ctx, c, endpoint, gamePath(id, sub), nil)
	if err != nil {
		return domain.Page[games.GameSummary]{}, err
	}
	return mapPage(page, mapGame), nil
}

func (c *Client) ListGenres(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Genre], error) {
	page, err := fetch[pageResponse[referenceResponse]](ctx, c, providers.EndpointGenres, "/genres", referenceQuery(q))
	if err != nil {
		return domain.Page[refs.Genre]{}, err
	}
	return mapPage(page, mapGenre), nil
}

func (c *Client) ListPlatforms(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Platform], error) {
	page, err := fetch[pageResponse[platformResponse]](ctx, c, providers.EndpointPlatforms, "/platforms", referenceQuery(q))
	if err != nil {
		return domain.Page[refs.Platform]{}, err
	}
	return mapPage(page, mapPlatform), nil
}

func (c *Client) ListTags(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Tag], error) {
	page, err := fetch[pageResponse[tagResponse]](ctx, c, providers.EndpointTags, "/tags", referenceQuery(q))
	if err != nil {
		return domain.Page[refs.Tag]{}, err
	}
	return mapPage(page, mapTag), nil
}

func (c *Client) ListStores(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Store], error) {
	page, err := fetch[pageResponse[storeResponse]](ctx, c, providers.EndpointStores, "/stores", referenceQuery(q))
	if err != nil {
		return domain.Page[refs.Store]{}, err
	}
	return mapPage(page, mapStore), nil
}

func (c *Client) ListCreators(ctx context.Context, q domain.ReferenceQuery) (domain.Page[refs.Creator], error) {
	page, err := fetch[pageResponse[creatorResponse]](ctx, c, providers.EndpointCreators, "/creators", referenceQuery(q))
	if err != nil {
		return domain.Page[refs.Creator]{}, err
	}
	return mapPage(page, mapCreator), nil
}

func (c *Client) GetCreator(ctx context.Context, id int) (refs.CreatorDetail, error) {
	creator, err := fetch[creatorDetailResponse](ctx, c, providers.EndpointCreatorDetail, "/creators/"+strconv.Itoa(id), nil)
	if err != nil {
		return refs.CreatorDetail{}, err
	}
	return mapCreatorDetail(creator), nil
}

func gamePath(id int, sub string) string {
	path := "/games/" + strconv.Itoa(id)
	if sub != "" {
		path += "/" + sub
	}
	return path
}

func (c *Client) buildRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// fetch performs a GET, classifies failures and returns the validated payload.
func fetch[T any](ctx context.Context, c *Client, endpoint, path string, query url.Values) (T, error) {
	var payload T

	req, err := c.buildRequest(ctx, path, query)
	if err != nil {
		return payload, &providers.NetworkError{Provider: providerName, Endpoint: endpoint, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return payload, &providers.NetworkError{Provider: providerName, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return payload, &providers.UpstreamError{
			Provider:   providerName,
			Endpoint:   endpoint,
			Status:     resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var decoded T
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return payload, &providers.ParseError{Provider: providerName, Endpoint: endpoint, Err: err}
	}
	if err := validatePayload(&decoded); err != nil {
		return payload, &providers.ParseError{Provider: providerName, Endpoint: endpoint, Err: err}
	}
	return decoded, nil
}
