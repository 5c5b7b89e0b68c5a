package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dinildamsith/game-explorer/internal/app/browse"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("browse session not found")

type entry struct {
	coordinator *browse.Coordinator
	lastSeen    time.Time
}

// MemoryStore keeps browse sessions in memory, keyed by a random id.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
	newID    func() string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*entry),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Create stores c under a fresh id and returns the id.
func (s *MemoryStore) Create(c *browse.Coordinator) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.sessions[id] = &entry{coordinator: c, lastSeen: s.now()}
	return id
}

// Get returns the session and marks it as recently used.
func (s *MemoryStore) Get(id string) (*browse.Coordinator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = s.now()
	return e.coordinator, nil
}

// Delete closes and removes the session.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.coordinator.Close()
	return nil
}

// Sweep closes and removes every session idle for longer than ttl, returning how many were evicted.
func (s *MemoryStore) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var expired []*entry
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, e := range expired {
		e.coordinator.Close()
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CloseAll disposes every session; used at shutdown.
func (s *MemoryStore) CloseAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range all {
		e.coordinator.Close()
	}
}
