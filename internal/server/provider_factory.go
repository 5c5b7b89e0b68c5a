package server

import (
	"log/slog"

	"github.com/dinildamsith/game-explorer/internal/config"
	"github.com/dinildamsith/game-explorer/internal/metrics"
	"github.com/dinildamsith/game-explorer/internal/providers"
)

// providerFactory assembles the catalog with shared wrappers (local quota + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.Catalog {
	return f.wrap(cfg, selectCatalog(cfg, f.logger))
}

// wrap puts the limiter inside the instrumentation so local quota rejections are counted.
func (f providerFactory) wrap(cfg config.Config, base providers.Catalog) providers.Catalog {
	limited := providers.NewRateLimitedCatalog(base, cfg.Rawg.RatePerSecond, cfg.Rawg.Burst, f.logger)
	return providers.NewInstrumentedCatalog(limited, normalizeProviderName(cfg.Provider, base), f.metrics, f.logger)
}
