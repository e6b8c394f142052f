// Package memory keeps every session's ledger in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/iho/saku/internal/domain"
)

// Store implements usecase.LedgerStore. Each session owns one ledger
// guarded by its own lock, so sessions never contend with each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu     sync.RWMutex
	ledger *domain.Ledger
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
	}
}

// Create registers a session with a fresh ledger.
func (s *Store) Create(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return domain.ErrSessionExists
	}
	s.sessions[session.ID] = &entry{ledger: domain.NewLedger()}
	return nil
}

// Drop removes a session and its ledger.
func (s *Store) Drop(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Update runs fn against the session's ledger under an exclusive lock.
func (s *Store) Update(_ context.Context, id string, fn func(*domain.Ledger) error) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.ledger)
}

// View runs fn against the session's ledger under a shared lock. fn must
// not retain the ledger after returning.
func (s *Store) View(_ context.Context, id string, fn func(*domain.Ledger) error) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.ledger)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) get(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}
