package session

import (
	"sync"
	"time"
)

// Store is an in-memory keyed session store. The map key guarantees the
// one-session-per-customer invariant by construction.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory Store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for a customer, or nil if none is in progress.
func (s *Store) Get(customerID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[customerID]
}

// Start creates a fresh session at the condition step, replacing any
// previous one for the same customer.
func (s *Store) Start(customerID int64, now time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		CustomerID: customerID,
		Step:       StepCondition,
		StartedAt:  now,
		UpdatedAt:  now,
	}
	s.sessions[customerID] = sess
	return sess
}

// Touch updates the session's activity timestamp.
func (s *Store) Touch(customerID int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[customerID]; ok {
		sess.UpdatedAt = now
	}
}

// Delete removes the customer's session.
func (s *Store) Delete(customerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, customerID)
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictOlderThan deletes sessions idle since before the cutoff and returns
// the evicted customer ids.
func (s *Store) EvictOlderThan(cutoff time.Time) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var evicted []int64
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
