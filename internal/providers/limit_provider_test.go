package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/teststubs"
)

func TestRateLimitedCatalogPassesThroughWithinBurst(t *testing.T) {
	inner := &teststubs.StubCatalog{Games: teststubs.SummaryPage(false, 1, 2)}
	rl := NewRateLimitedCatalog(inner, 100, 3, nil)

	for i := 0; i < 3; i++ {
		page, err := rl.ListGames(context.Background(), domain.QueryFilters{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.Results) != 2 {
			t.Fatalf("expected passthrough results, got %+v", page)
		}
	}
	if inner.Calls.Load() != 3 {
		t.Fatalf("expected inner catalog called 3 times, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedCatalogBlocksAfterBurst(t *testing.T) {
	inner := &teststubs.StubCatalog{}
	rl := NewRateLimitedCatalog(inner, 50, 1, nil)

	start := time.Now()
	_, _ = rl.ListGenres(context.Background(), domain.ReferenceQuery{})
	_, _ = rl.ListGenres(context.Background(), domain.ReferenceQuery{})
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("expected second call to wait for a token, elapsed %s", elapsed)
	}
}

func TestRateLimitedCatalogRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubCatalog{}
	rl := NewRateLimitedCatalog(inner, 1, 1, nil)
	_, _ = rl.ListTags(context.Background(), domain.ReferenceQuery{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.ListTags(ctx, domain.ReferenceQuery{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.CallsTo("ListTags") != 1 {
		t.Fatalf("expected inner catalog not called on canceled context")
	}
}

func TestRateLimitedCatalogReportsQuotaWhenDeadlineTooShort(t *testing.T) {
	inner := &teststubs.StubCatalog{}
	rl := NewRateLimitedCatalog(inner, 0.01, 1, nil)
	_, _ = rl.GetGameDetail(context.Background(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := rl.GetGameDetail(ctx, 1)
	if !IsRateLimited(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if RetryAfterOf(err) <= 0 {
		t.Fatalf("expected retry-after hint")
	}
}

func TestRateLimitedCatalogHandlesNilInner(t *testing.T) {
	rl := NewRateLimitedCatalog(nil, 1, 1, nil)

	_, err := rl.ListStores(context.Background(), domain.ReferenceQuery{})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedCatalogDefaults(t *testing.T) {
	rl := NewRateLimitedCatalog(&teststubs.StubCatalog{}, 0, 0, nil).(*rateLimitedCatalog)
	if rl.limiter.Limit() != defaultPerSecond || rl.limiter.Burst() != defaultBurst {
		t.Fatalf("expected defaults, got limit=%v burst=%d", rl.limiter.Limit(), rl.limiter.Burst())
	}
}
