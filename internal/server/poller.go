package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/poller"
	"github.com/dinildamsith/game-explorer/internal/providers"
	"github.com/dinildamsith/game-explorer/internal/store"
)

const (
	healthProbeJob  = "catalog-health"
	sessionSweepJob = "session-sweep"
	probeTimeout    = 5 * time.Second
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// catalogProbe issues the cheapest catalog call so /ready reflects upstream reachability.
func catalogProbe(catalog providers.ReferenceCatalog) poller.Job {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		_, err := catalog.ListGenres(ctx, domain.ReferenceQuery{Page: 1, PageSize: 1})
		return err
	}
}

// sessionSweep evicts browse sessions idle for longer than ttl.
func sessionSweep(sessions *store.MemoryStore, ttl time.Duration, logger *slog.Logger) poller.Job {
	return func(context.Context) error {
		if evicted := sessions.Sweep(ttl); evicted > 0 && logger != nil {
			logger.Info("evicted idle browse sessions", slog.Int("count", evicted), slog.Int("remaining", sessions.Len()))
		}
		return nil
	}
}
