// Package sessionstore keeps open form sessions in memory. Sessions are
// short-lived working state, not records; losing them on restart only means
// the form has to be reopened.
package sessionstore

import (
	"sync"
	"time"

	"github.com/dukahub/reception-api/internal/domain/entity"
	"github.com/dukahub/reception-api/pkg/apperror"
	"github.com/google/uuid"
)

// Config holds session store configuration
type Config struct {
	SessionTTL      time.Duration // How long an idle session survives
	CleanupInterval time.Duration // How often stale sessions are swept
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		SessionTTL:      30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Store holds form sessions keyed by session id
type Store struct {
	sessions    map[uuid.UUID]*entity.FormSession
	mu          sync.RWMutex
	sessionTTL  time.Duration
	cleanupTick time.Duration
	done        chan struct{}
}

// NewStore creates a session store and starts its background sweep
func NewStore(cfg Config) *Store {
	s := &Store{
		sessions:    make(map[uuid.UUID]*entity.FormSession),
		sessionTTL:  cfg.SessionTTL,
		cleanupTick: cfg.CleanupInterval,
		done:        make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

// Put registers a session.
func (s *Store) Put(session *entity.FormSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Get returns the session if it exists and belongs to the given user.
// Ownership is checked here so a leaked session id is useless to anyone
// else.
func (s *Store) Get(sessionID, userID uuid.UUID) (*entity.FormSession, error) {
	s.mu.RLock()
	session, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists || session.UserID != userID {
		return nil, apperror.NewNotFoundError("Form session")
	}
	return session, nil
}

// Delete removes a session. Removing an absent session is a no-op.
func (s *Store) Delete(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background sweep
func (s *Store) Close() {
	close(s.done)
}

// cleanupLoop periodically removes idle sessions
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup removes sessions that have been idle past the TTL
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.sessionTTL)
	for id, session := range s.sessions {
		if session.LastActive.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
