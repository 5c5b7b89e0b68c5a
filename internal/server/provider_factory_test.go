package server

import (
	"context"
	"testing"

	"github.com/dinildamsith/game-explorer/internal/config"
	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/metrics"
	"github.com/dinildamsith/game-explorer/internal/providers"
	"github.com/dinildamsith/game-explorer/internal/providers/fixture"
)

func TestProviderFactoryBuildsWithDefaults(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	if catalog := factory.build(config.Config{Provider: config.ProviderFixture}); catalog == nil {
		t.Fatalf("expected catalog")
	}
}

func TestProviderFactoryWrapInstrumentsCalls(t *testing.T) {
	rec := metrics.NewRecorder()
	catalog := newProviderFactory(nil, rec).wrap(config.Config{Provider: config.ProviderFixture}, fixture.New())

	if _, err := catalog.ListGenres(context.Background(), domain.ReferenceQuery{Page: 1, PageSize: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.CatalogCalls(providers.EndpointGenres) != 1 {
		t.Fatalf("expected one instrumented genres call, got %d", rec.CatalogCalls(providers.EndpointGenres))
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("RAWG", nil); got != "rawg" {
		t.Fatalf("expected lower-cased name, got %s", got)
	}
	if got := normalizeProviderName("", fixture.New()); got != "*fixture.provider" {
		t.Fatalf("expected type-derived name, got %s", got)
	}
	if got := normalizeProviderName("", nil); got != "catalog" {
		t.Fatalf("expected fallback name, got %s", got)
	}
}
