package handlers

import (
	"context"
	nethttp "net/http"

	"github.com/dinildamsith/game-explorer/internal/app/suggestions"
	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/logging"
)

const gameNotFound = "game not found"

type pageResponse[T any] struct {
	domain.Page[T]
	HasMore bool `json:"hasMore"`
	Empty   bool `json:"empty"`
}

func newPageResponse[T any](page domain.Page[T]) pageResponse[T] {
	if page.Results == nil {
		page.Results = []T{}
	}
	return pageResponse[T]{Page: page, HasMore: page.HasMore(), Empty: page.IsEmpty()}
}

// serveGamePage handles the /games/{id}/<resource> family.
func serveGamePage[T any](h *Handler, w nethttp.ResponseWriter, r *nethttp.Request, fetch func(context.Context, int) (domain.Page[T], error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	page, err := fetch(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, newPageResponse(page), h.logger)
}

// ListGames serves one page of the games listing.
func (h *Handler) ListGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	listing, err := h.games.List(r.Context(), filters)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "served games",
		logging.FieldCount, len(listing.Results), logging.FieldPage, filters.Page)
	writeJSON(w, nethttp.StatusOK, listing, h.logger)
}

// TopRated serves the achievements showcase listing.
func (h *Handler) TopRated(w nethttp.ResponseWriter, r *nethttp.Request) {
	page, err := optionalInt(r.URL.Query(), "page", domain.DefaultPage, 0)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	listing, err := h.games.TopRated(r.Context(), page)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, listing, h.logger)
}

func (h *Handler) GameDetail(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	detail, err := h.games.Game(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, detail, h.logger)
}

// GameOverview serves the detail page with its independently loaded sections.
func (h *Handler) GameOverview(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	limit, err := optionalInt(r.URL.Query(), "similar_limit", suggestions.DefaultLimit, suggestions.PageSize)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	overview, err := h.details.Overview(r.Context(), id, limit)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, overview, h.logger)
}

func (h *Handler) GameTrailers(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.Trailers)
}

func (h *Handler) GameScreenshots(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.Screenshots)
}

func (h *Handler) GameAchievements(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.Achievements)
}

func (h *Handler) GameReviews(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.Reviews)
}

func (h *Handler) GameStores(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.StoreLinks)
}

func (h *Handler) GameSuggested(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.Suggested)
}

func (h *Handler) GameSeries(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.Series)
}

func (h *Handler) GameAdditions(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveGamePage(h, w, r, h.games.Additions)
}

// GameSimilar runs the suggestion fallback chain for a game.
func (h *Handler) GameSimilar(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	limit, err := optionalInt(r.URL.Query(), "limit", suggestions.DefaultLimit, suggestions.PageSize)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	res, err := h.details.Similar(r.Context(), id, limit)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, res, h.logger)
}

// GameTrailer serves the trailer playback view.
func (h *Handler) GameTrailer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	trailerID, err := pathID(r, "trailerID")
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	view, err := h.details.Trailer(r.Context(), id, trailerID)
	if err != nil {
		writeFailure(w, r, err, gameNotFound, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}
