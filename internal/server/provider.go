package server

import (
	"log/slog"
	"net/http"

	"github.com/dinildamsith/game-explorer/internal/config"
	"github.com/dinildamsith/game-explorer/internal/providers"
	"github.com/dinildamsith/game-explorer/internal/providers/fixture"
	"github.com/dinildamsith/game-explorer/internal/providers/rawg"
)

func selectCatalog(cfg config.Config, logger *slog.Logger) providers.Catalog {
	switch cfg.Provider {
	case config.ProviderRawg:
		if cfg.Rawg.APIKey == "" && logger != nil {
			logger.Warn("RAWG_API_KEY is empty, upstream calls may be rejected")
		}
		return rawg.NewClient(rawg.Config{
			BaseURL:    cfg.Rawg.BaseURL,
			APIKey:     cfg.Rawg.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.Rawg.Timeout},
		})
	case config.ProviderFixture, "":
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown catalog provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
