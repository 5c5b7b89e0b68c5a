package handlers

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dinildamsith/game-explorer/internal/app/browse"
	"github.com/dinildamsith/game-explorer/internal/app/details"
	"github.com/dinildamsith/game-explorer/internal/app/games"
	"github.com/dinildamsith/game-explorer/internal/app/references"
	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/poller"
	"github.com/dinildamsith/game-explorer/internal/store"
)

// Services bundles the application services the handlers call.
type Services struct {
	Games      *games.Service
	Details    *details.Service
	References *references.Service
	Sessions   *store.MemoryStore
	// NewBrowse builds a coordinator with its own listing for a new browse session.
	NewBrowse func(initial domain.QueryFilters) *browse.Coordinator
}

// Handler wires HTTP routes to the application services.
type Handler struct {
	games     *games.Service
	details   *details.Service
	refs      *references.Service
	sessions  *store.MemoryStore
	newBrowse func(domain.QueryFilters) *browse.Coordinator
	logger    *slog.Logger
	statusFn  func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case /ready always succeeds.
func NewHandler(svcs Services, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		games:     svcs.Games,
		details:   svcs.Details,
		refs:      svcs.References,
		sessions:  svcs.Sessions,
		newBrowse: svcs.NewBrowse,
		logger:    logger,
		statusFn:  statusFn,
	}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/games", func(r chi.Router) {
		r.Get("/", h.ListGames)
		r.Get("/top-rated", h.TopRated)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GameDetail)
			r.Get("/overview", h.GameOverview)
			r.Get("/movies", h.GameTrailers)
			r.Get("/trailers/{trailerID}", h.GameTrailer)
			r.Get("/screenshots", h.GameScreenshots)
			r.Get("/achievements", h.GameAchievements)
			r.Get("/reviews", h.GameReviews)
			r.Get("/stores", h.GameStores)
			r.Get("/suggested", h.GameSuggested)
			r.Get("/game-series", h.GameSeries)
			r.Get("/additions", h.GameAdditions)
			r.Get("/similar", h.GameSimilar)
		})
	})

	r.Get("/filters", h.FilterMenus)
	r.Get("/genres", h.Genres)
	r.Get("/platforms", h.Platforms)
	r.Get("/tags", h.Tags)
	r.Get("/stores", h.Stores)
	r.Get("/creators", h.Creators)
	r.Get("/creators/{id}", h.Creator)

	r.Route("/browse", func(r chi.Router) {
		r.Post("/", h.CreateBrowse)
		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", h.GetBrowse)
			r.Delete("/", h.DeleteBrowse)
			r.Patch("/filters", h.PatchBrowse)
			r.Post("/clear", h.ClearBrowse)
			r.Post("/more", h.MoreBrowse)
		})
	})

	r.NotFound(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	})
	r.MethodNotAllowed(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	})
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: the catalog probe must have succeeded recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}
