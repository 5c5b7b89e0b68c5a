package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dinildamsith/game-explorer/internal/http/handlers"
	"github.com/dinildamsith/game-explorer/internal/http/middleware"
	"github.com/dinildamsith/game-explorer/internal/metrics"
)

// RouterConfig carries the cross-cutting settings of the router.
type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
}

// NewRouter builds the chi router: panic recovery, compression, CORS for the
// browser UI, request logging, then every handler route.
func NewRouter(handler *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodPatch, nethttp.MethodDelete, nethttp.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.LoggingMiddleware(cfg.Logger, cfg.Recorder))

	handler.Routes(r)
	return r
}
