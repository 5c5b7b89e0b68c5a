package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected noop shutdown, got %v", err)
	}
}

func TestSetupEnabledExposesCatalogMetrics(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "game-explorer-test",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()
	if handler == nil {
		t.Fatalf("expected handler when enabled")
	}

	rec.RecordHTTPRequest("GET", "/games", 200, time.Millisecond)
	rec.RecordPollerCycle("health", time.Millisecond, errors.New("down"))
	rec.RecordCatalogCall("rawg", "games", time.Millisecond, nil)
	rec.RecordRateLimit("rawg", "games", time.Second)
	rec.RecordSuggestionStrategy("genre")
	rec.RecordStaleDiscard()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	for _, name := range []string{"catalog_calls_total", "suggestion_strategy_total", "listing_stale_discards_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in exposition, got:\n%s", name, body)
		}
	}
}

func TestSetupPropagatesReaderError(t *testing.T) {
	orig := promReaderFactory
	t.Cleanup(func() { promReaderFactory = orig })
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("no registry")
	}

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatalf("expected reader error")
	}
}

func TestSetupPropagatesInstrumentError(t *testing.T) {
	orig := instrumentFactory
	t.Cleanup(func() { instrumentFactory = orig })
	instrumentFactory = func(metric.MeterProvider) (*otelInstruments, error) {
		return nil, errors.New("bad instrument")
	}

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatalf("expected instrument error")
	}
}

func TestSetupUsesOTLPReaderWhenEndpointSet(t *testing.T) {
	orig := otlpReaderFactory
	t.Cleanup(func() { otlpReaderFactory = orig })
	called := false
	otlpReaderFactory = func(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
		called = true
		if endpoint != "collector:4318" || !insecure {
			t.Fatalf("unexpected otlp args %s %v", endpoint, insecure)
		}
		return sdkmetric.NewManualReader(), nil
	}

	_, _, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:      true,
		OtlpEndpoint: "collector:4318",
		OtlpInsecure: true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_ = shutdown(context.Background())
	if !called {
		t.Fatalf("expected otlp reader factory to be used")
	}
}
