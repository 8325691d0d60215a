// Package memory implements the volatile session tier: a process-local map
// that loses its contents on restart. Sessions are never evicted; a
// deployment wanting eviction fronts this store with its own policy.
package memory

import (
	"context"
	"sync"

	"github.com/turingmystery/backend/internal/model/game"
	"github.com/turingmystery/backend/internal/storage"
)

// Store keeps sessions in an RWMutex-guarded map. Reads and writes deep-copy
// so callers never share mutable state with the map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string]*game.Session)}
}

// Get implements storage.Store.
func (s *Store) Get(_ context.Context, sessionID string) (*game.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Put implements storage.Store.
func (s *Store) Put(_ context.Context, session *game.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session.Clone()
	return nil
}

// Len reports the number of stored sessions. Used by tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
