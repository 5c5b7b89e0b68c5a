package rawg

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/domain/games"
	"github.com/dinildamsith/game-explorer/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	return NewClient(Config{
		BaseURL:    "http://example.com/api/",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})
}

const gamesPageBody = `{
	"count": 2,
	"next": "http://example.com/api/games?page=2",
	"previous": null,
	"results": [
		{
			"id": 3498,
			"slug": "grand-theft-auto-v",
			"name": "Grand Theft Auto V",
			"released": "2013-09-17",
			"background_image": "https://media.example.com/gta.jpg",
			"rating": 4.47,
			"rating_top": 5,
			"ratings_count": 6000,
			"metacritic": 92,
			"playtime": 74,
			"genres": [{"id": 4, "name": "Action", "slug": "action"}],
			"platforms": [{"platform": {"id": 4, "name": "PC", "slug": "pc"}, "released_at": "2013-09-17", "requirements_en": {"minimum": "4GB"}}],
			"tags": [{"id": 31, "name": "Singleplayer", "slug": "singleplayer", "language": "eng"}]
		},
		{
			"id": 3328,
			"slug": "the-witcher-3-wild-hunt",
			"name": "The Witcher 3: Wild Hunt",
			"background_image": null,
			"rating": 4.66,
			"metacritic": null,
			"genres": [],
			"platforms": [],
			"tags": []
		}
	]
}`

func TestListGamesBuildsQueryAndMapsResponse(t *testing.T) {
	var captured *http.Request
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, gamesPageBody), nil
	})

	page, err := client.ListGames(context.Background(), domain.QueryFilters{Genres: "action", Search: "  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if captured.URL.Path != "/api/games" {
		t.Fatalf("expected /api/games path, got %s", captured.URL.Path)
	}
	q := captured.URL.Query()
	if q.Get("key") != "secret" || q.Get("page") != "1" || q.Get("page_size") != "20" || q.Get("genres") != "action" {
		t.Fatalf("unexpected query %s", captured.URL.RawQuery)
	}
	if q.Has("search") || q.Has("ordering") || q.Has("platforms") {
		t.Fatalf("expected blank filters omitted, got %s", captured.URL.RawQuery)
	}

	if !page.HasMore() || page.Count != 2 || len(page.Results) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	gta := page.Results[0]
	if gta.ID != 3498 || gta.Metacritic != 92 || gta.DisplayImage != "https://media.example.com/gta.jpg" {
		t.Fatalf("unexpected summary %+v", gta)
	}
	if len(gta.Genres) != 1 || gta.Genres[0].Slug != "action" {
		t.Fatalf("unexpected genres %+v", gta.Genres)
	}
	if gta.Platforms[0].Requirements == nil || gta.Platforms[0].Requirements.Minimum != "4GB" {
		t.Fatalf("expected requirements mapped, got %+v", gta.Platforms[0])
	}
	witcher := page.Results[1]
	if witcher.DisplayImage != domain.PlaceholderImage || witcher.Metacritic != 0 {
		t.Fatalf("expected placeholder image and zero metacritic, got %+v", witcher)
	}
}

func TestListGamesLastPageHasNoMore(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"count":0,"next":null,"previous":null,"results":[]}`), nil
	})

	page, err := client.ListGames(context.Background(), domain.QueryFilters{Search: "zzzz"})
	if err != nil {
		t.Fatalf("expected empty page to succeed, got %v", err)
	}
	if page.HasMore() || !page.IsEmpty() {
		t.Fatalf("expected empty last page, got %+v", page)
	}
}

func TestGetGameDetailNotFound(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/games/999999" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusNotFound, `{"detail":"Not found."}`), nil
	})

	detail, err := client.GetGameDetail(context.Background(), 999999)
	if !providers.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if detail.ID != 0 || detail.Name != "" {
		t.Fatalf("expected zero detail on error, got %+v", detail)
	}
	upErr, _ := providers.AsUpstreamError(err)
	if upErr.Endpoint != providers.EndpointGameDetail || !strings.Contains(upErr.Body, "Not found") {
		t.Fatalf("unexpected upstream error %+v", upErr)
	}
}

func TestGetGameDetailMapsDescription(t *testing.T) {
	body := `{
		"id": 12345,
		"slug": "quest",
		"name": "Quest",
		"description": "<p>First part.</p>\n<p>Second<br/>line.</p>",
		"description_raw": "",
		"genres": [{"id": 4, "name": "Action", "slug": "action"}, {"id": 5, "name": "RPG", "slug": "role-playing-games-rpg"}],
		"developers": [{"id": 1, "name": "Studio", "slug": "studio"}],
		"publishers": [],
		"esrb_rating": {"id": 4, "name": "Mature", "slug": "mature"},
		"movies_count": 2
	}`
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	})

	detail, err := client.GetGameDetail(context.Background(), 12345)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if detail.DescriptionText != "First part.\n\nSecond\nline." {
		t.Fatalf("unexpected description text %q", detail.DescriptionText)
	}
	if detail.ESRBRating == nil || detail.ESRBRating.Name != "Mature" {
		t.Fatalf("expected esrb rating, got %+v", detail.ESRBRating)
	}
	if got := detail.GenreSlugs(2); len(got) != 2 || got[1] != "role-playing-games-rpg" {
		t.Fatalf("unexpected genre slugs %v", got)
	}
	if len(detail.Developers) != 1 || detail.MoviesCount != 2 {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestSubResourcesMapPerGame(t *testing.T) {
	bodies := map[string]string{
		"/api/games/7/movies":       `{"count":1,"results":[{"id":11,"name":"Launch","preview":"p.jpg","data":{"480":"low.mp4","max":"max.mp4"}}]}`,
		"/api/games/7/screenshots":  `{"count":1,"results":[{"id":21,"image":"s.jpg","width":1920,"height":1080}]}`,
		"/api/games/7/achievements": `{"count":1,"results":[{"id":31,"name":"First Blood","percent":"12.50"}]}`,
		"/api/games/7/reviews":      `{"count":2,"results":[{"id":51,"text":"<p>Great.</p><p>Long.</p>","rating":5,"likes_count":3,"created":"2021-01-02T03:04:05","user":{"username":"gal"}},{"id":52,"text":"ok","rating":3}]}`,
		"/api/games/7/stores":       `{"count":1,"results":[{"id":41,"game_id":7,"store_id":1,"url":"https://store.example.com/7"}]}`,
	}
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		body, ok := bodies[req.URL.Path]
		if !ok {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, body), nil
	})
	ctx := context.Background()

	trailers, err := client.ListGameTrailers(ctx, 7)
	if err != nil || trailers.Results[0].VideoLow != "low.mp4" || trailers.Results[0].VideoMax != "max.mp4" || trailers.Results[0].GameID != 7 {
		t.Fatalf("unexpected trailers %+v err %v", trailers, err)
	}
	shots, err := client.ListGameScreenshots(ctx, 7)
	if err != nil || shots.Results[0].Width != 1920 || shots.Results[0].GameID != 7 {
		t.Fatalf("unexpected screenshots %+v err %v", shots, err)
	}
	achievements, err := client.ListGameAchievements(ctx, 7)
	if err != nil || achievements.Results[0].Percent != 12.5 {
		t.Fatalf("unexpected achievements %+v err %v", achievements, err)
	}
	reviews, err := client.ListGameReviews(ctx, 7)
	if err != nil || len(reviews.Results) != 2 {
		t.Fatalf("unexpected reviews %+v err %v", reviews, err)
	}
	if r := reviews.Results[0]; r.GameID != 7 || r.Author != "gal" || r.Text != "Great.\n\nLong." || r.Likes != 3 || r.Rating != 5 {
		t.Fatalf("unexpected first review %+v", r)
	}
	if r := reviews.Results[1]; r.Author != "" || r.Text != "ok" {
		t.Fatalf("review without user must map cleanly, got %+v", r)
	}
	stores, err := client.ListGameStores(ctx, 7)
	if err != nil || stores.Results[0].StoreID != 1 || stores.Results[0].URL == "" {
		t.Fatalf("unexpected stores %+v err %v", stores, err)
	}
}

func TestRelatedGameEndpoints(t *testing.T) {
	var paths []string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.Path)
		return jsonResponse(http.StatusOK, `{"count":1,"next":null,"results":[{"id":2,"name":"Two","slug":"two"}]}`), nil
	})
	ctx := context.Background()

	for _, call := range []func(context.Context, int) (domain.Page[games.GameSummary], error){
		client.ListGameSuggestions, client.ListGameSeries, client.ListGameAdditions,
	} {
		page, err := call(ctx, 5)
		if err != nil || len(page.Results) != 1 {
			t.Fatalf("unexpected page %+v err %v", page, err)
		}
	}
	want := []string{"/api/games/5/suggested", "/api/games/5/game-series", "/api/games/5/additions"}
	for i, p := range want {
		if paths[i] != p {
			t.Fatalf("expected %s, got %s", p, paths[i])
		}
	}
}

func TestReferenceEndpoints(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/api/genres":
			if req.URL.Query().Get("page_size") != "40" {
				t.Fatalf("expected page_size=40, got %s", req.URL.RawQuery)
			}
			return jsonResponse(http.StatusOK, `{"count":1,"results":[{"id":4,"name":"Action","slug":"action","games_count":100}]}`), nil
		case "/api/platforms":
			return jsonResponse(http.StatusOK, `{"count":1,"results":[{"id":4,"name":"PC","slug":"pc","year_start":null}]}`), nil
		case "/api/tags":
			return jsonResponse(http.StatusOK, `{"count":1,"results":[{"id":31,"name":"Singleplayer","slug":"singleplayer","language":"eng"}]}`), nil
		case "/api/stores":
			return jsonResponse(http.StatusOK, `{"count":1,"results":[{"id":1,"name":"Steam","slug":"steam","domain":"store.steampowered.com"}]}`), nil
		case "/api/creators":
			return jsonResponse(http.StatusOK, `{"count":1,"results":[{"id":9,"name":"Hideo","slug":"hideo","positions":[{"id":1,"name":"director","slug":"director"}]}]}`), nil
		case "/api/creators/9":
			return jsonResponse(http.StatusOK, `{"id":9,"name":"Hideo","slug":"hideo","description":"<p>Designer.</p>","rating":"4.50","reviews_count":3,"positions":[]}`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})
	ctx := context.Background()

	genres, err := client.ListGenres(ctx, domain.ReferenceQuery{PageSize: 40})
	if err != nil || genres.Results[0].GamesCount != 100 {
		t.Fatalf("unexpected genres %+v err %v", genres, err)
	}
	platforms, err := client.ListPlatforms(ctx, domain.ReferenceQuery{})
	if err != nil || platforms.Results[0].Slug != "pc" {
		t.Fatalf("unexpected platforms %+v err %v", platforms, err)
	}
	tags, err := client.ListTags(ctx, domain.ReferenceQuery{})
	if err != nil || tags.Results[0].Language != "eng" {
		t.Fatalf("unexpected tags %+v err %v", tags, err)
	}
	stores, err := client.ListStores(ctx, domain.ReferenceQuery{})
	if err != nil || stores.Results[0].Domain == "" {
		t.Fatalf("unexpected stores %+v err %v", stores, err)
	}
	creators, err := client.ListCreators(ctx, domain.ReferenceQuery{})
	if err != nil || creators.Results[0].Positions[0].Name != "director" {
		t.Fatalf("unexpected creators %+v err %v", creators, err)
	}
	creator, err := client.GetCreator(ctx, 9)
	if err != nil || creator.Rating != 4.5 || creator.DescriptionText != "Designer." {
		t.Fatalf("unexpected creator %+v err %v", creator, err)
	}
}

func TestFetchClassifiesFailures(t *testing.T) {
	cases := []struct {
		name  string
		rt    roundTripperFunc
		check func(error) bool
	}{
		{
			name: "network",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			check: func(err error) bool { _, ok := providers.AsNetworkError(err); return ok },
		},
		{
			name: "server error",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadGateway, "bad gateway"), nil
			},
			check: func(err error) bool {
				upErr, ok := providers.AsUpstreamError(err)
				return ok && upErr.Status == http.StatusBadGateway
			},
		},
		{
			name: "malformed json",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, "{not json"), nil
			},
			check: func(err error) bool { _, ok := providers.AsParseError(err); return ok },
		},
		{
			name: "missing results",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"count":1}`), nil
			},
			check: func(err error) bool { _, ok := providers.AsParseError(err); return ok },
		},
		{
			name: "invalid item",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"count":1,"results":[{"id":0,"name":""}]}`), nil
			},
			check: func(err error) bool { _, ok := providers.AsParseError(err); return ok },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(tc.rt)
			page, err := client.ListGames(context.Background(), domain.QueryFilters{})
			if err == nil || !tc.check(err) {
				t.Fatalf("unexpected error classification: %v", err)
			}
			if len(page.Results) != 0 {
				t.Fatalf("expected no partial results, got %+v", page)
			}
		})
	}
}

func TestFetchCapturesRetryAfterOn429(t *testing.T) {
	client := newTestClient(func(*http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "slow down")
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})

	_, err := client.ListGenres(context.Background(), domain.ReferenceQuery{})
	if !providers.IsRateLimited(err) || providers.RetryAfterOf(err) != 7*time.Second {
		t.Fatalf("expected 429 with retry-after, got %v", err)
	}
}

func TestFetchHonoursCanceledContext(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListGames(ctx, domain.QueryFilters{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestNoKeyParamWhenUnconfigured(t *testing.T) {
	client := NewClient(Config{HTTPClient: &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Has("key") {
			t.Fatalf("expected no key param, got %s", req.URL.RawQuery)
		}
		if req.URL.Host != "api.rawg.io" {
			t.Fatalf("expected default base url, got %s", req.URL.Host)
		}
		return jsonResponse(http.StatusOK, `{"count":0,"results":[]}`), nil
	})}})

	if _, err := client.ListTags(context.Background(), domain.ReferenceQuery{}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
