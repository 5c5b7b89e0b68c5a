package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dinildamsith/game-explorer/internal/app/browse"
	"github.com/dinildamsith/game-explorer/internal/app/details"
	"github.com/dinildamsith/game-explorer/internal/app/games"
	"github.com/dinildamsith/game-explorer/internal/app/listing"
	"github.com/dinildamsith/game-explorer/internal/app/references"
	"github.com/dinildamsith/game-explorer/internal/app/suggestions"
	"github.com/dinildamsith/game-explorer/internal/config"
	"github.com/dinildamsith/game-explorer/internal/domain"
	httpserver "github.com/dinildamsith/game-explorer/internal/http"
	"github.com/dinildamsith/game-explorer/internal/http/handlers"
	"github.com/dinildamsith/game-explorer/internal/logging"
	"github.com/dinildamsith/game-explorer/internal/metrics"
	"github.com/dinildamsith/game-explorer/internal/poller"
	"github.com/dinildamsith/game-explorer/internal/providers"
	"github.com/dinildamsith/game-explorer/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	catalog       providers.Catalog
	sessions      *store.MemoryStore
	httpServer    httpServer
	metricsServer httpServer
	pollers       []Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured catalog provider and background jobs.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithCatalog(cfg config.Config, logger *slog.Logger, catalog providers.Catalog) *Server {
	return newServerWithMetrics(cfg, logger, catalog, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, catalog providers.Catalog, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if catalog == nil {
		catalog = factory.build(cfg)
	} else {
		catalog = factory.wrap(cfg, catalog)
	}

	sessions := store.NewMemoryStore()
	probe := poller.New(healthProbeJob, catalogProbe(catalog), logger, recorder, cfg.HealthProbe)
	sweeper := poller.New(sessionSweepJob, sessionSweep(sessions, cfg.Sessions.TTL, logger), logger, recorder, cfg.Sessions.SweepInterval)
	httpSrv := buildHTTPServer(cfg, buildServices(catalog, sessions, logger, recorder), logger, recorder, probe)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		catalog:       catalog,
		sessions:      sessions,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		pollers:       []Poller{probe, sweeper},
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, sessions *store.MemoryStore, httpSrv httpServer, pollers ...Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		sessions:   sessions,
		httpServer: httpSrv,
		pollers:    pollers,
	}
}

func buildServices(catalog providers.Catalog, sessions *store.MemoryStore, logger *slog.Logger, recorder *metrics.Recorder) handlers.Services {
	resolver := suggestions.NewResolver(catalog, logger, recorder)
	return handlers.Services{
		Games:      games.NewService(catalog),
		Details:    details.NewService(catalog, resolver, logger),
		References: references.NewService(catalog, logger),
		Sessions:   sessions,
		NewBrowse: func(initial domain.QueryFilters) *browse.Coordinator {
			return browse.NewCoordinator(listing.New(catalog, logger, recorder), initial, logger)
		},
	}
}

func buildHTTPServer(cfg config.Config, svcs handlers.Services, logger *slog.Logger, recorder *metrics.Recorder, probe Poller) httpServer {
	var statusFn func() poller.Status
	if probe != nil {
		statusFn = probe.Status
	}

	handler := handlers.NewHandler(svcs, logger, statusFn)
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		Recorder:       recorder,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the pollers and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	for _, p := range s.pollers {
		p.Start(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	for _, p := range s.pollers {
		if err := p.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop poller", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Cancel in-flight listing fetches left behind by open browse sessions.
	if s.sessions != nil {
		s.sessions.CloseAll()
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
