// Package stores holds the keyed stores: the in-memory session registry and
// the SQLite-backed inspection journal.
package stores

import (
	"sync"
	"time"

	"github.com/marinops/fleetcheck/internal/core/inspection"
)

// SessionStore is the process-wide registry of active dialogue sessions,
// keyed by chat ID. Sessions are in-memory only and do not survive a
// restart.
//
// The store guards only the map itself. Session contents are mutated
// exclusively by the owning chat's dispatch worker, which processes events
// one at a time.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*inspection.Session
}

// NewSessionStore creates an empty registry.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*inspection.Session)}
}

// Create starts a fresh session for the chat, replacing any existing one.
// Replacement discards the prior session's unfinalized state.
func (s *SessionStore) Create(chatID int64, now time.Time) *inspection.Session {
	sess := inspection.New(chatID, now)
	s.mu.Lock()
	s.sessions[chatID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the chat's active session, if any.
func (s *SessionStore) Get(chatID int64) (*inspection.Session, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[chatID]
	s.mu.Unlock()
	return sess, ok
}

// Destroy removes the chat's session. Destroying an absent session is a
// no-op.
func (s *SessionStore) Destroy(chatID int64) {
	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()
}

// Len returns the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
