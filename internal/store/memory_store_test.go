package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dinildamsith/game-explorer/internal/app/browse"
	"github.com/dinildamsith/game-explorer/internal/app/listing"
	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/teststubs"
)

func newSession() *browse.Coordinator {
	stub := &teststubs.StubCatalog{Games: teststubs.SummaryPage(true, 1)}
	return browse.NewCoordinator(listing.New(stub, nil, nil), domain.QueryFilters{}, nil)
}

func isDisposed(c *browse.Coordinator) bool {
	_, err := c.LoadMore(context.Background())
	return errors.Is(err, listing.ErrDisposed)
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore()
	c := newSession()

	id := s.Create(c)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid session id, got %q", id)
	}
	got, err := s.Get(id)
	if err != nil || got != c {
		t.Fatalf("expected stored session, got %v err %v", got, err)
	}
	if _, err := s.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected one session, got %d", s.Len())
	}
}

func TestMemoryStoreDeleteDisposes(t *testing.T) {
	s := NewMemoryStore()
	c := newSession()
	id := s.Create(c)

	if err := s.Delete(id); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !isDisposed(c) {
		t.Fatalf("expected deleted session disposed")
	}
	if err := s.Delete(id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestMemoryStoreSweepEvictsIdleSessions(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	idle := newSession()
	active := newSession()
	idleID := s.Create(idle)
	activeID := s.Create(active)

	now = now.Add(20 * time.Minute)
	if _, err := s.Get(activeID); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	now = now.Add(15 * time.Minute)

	if evicted := s.Sweep(30 * time.Minute); evicted != 1 {
		t.Fatalf("expected one eviction, got %d", evicted)
	}
	if _, err := s.Get(idleID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected idle session evicted")
	}
	if !isDisposed(idle) || isDisposed(active) {
		t.Fatalf("expected only idle session disposed")
	}
}

func TestMemoryStoreCloseAll(t *testing.T) {
	s := NewMemoryStore()
	a, b := newSession(), newSession()
	s.Create(a)
	s.Create(b)
	s.CloseAll()
	if s.Len() != 0 || !isDisposed(a) || !isDisposed(b) {
		t.Fatalf("expected every session closed")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := s.Create(newSession())
			_, _ = s.Get(id)
			s.Sweep(time.Hour)
		}()
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Fatalf("expected 20 sessions, got %d", s.Len())
	}
}
