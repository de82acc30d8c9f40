// Package memory provides an in-memory SessionStore. It backs tests and
// serves as the default when no database is configured, so the engines
// always have a working store to talk to.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/store"
)

// SessionStore is a mutex-guarded in-memory implementation of
// store.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions []domain.StudySession
	usage    domain.DailyUsage
}

// Compile-time interface check.
var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates an empty in-memory store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// GetHistory returns the saved sessions, most recent first.
func (s *SessionStore) GetHistory(ctx context.Context) ([]domain.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]domain.StudySession, len(s.sessions))
	copy(history, s.sessions)
	return history, nil
}

// SaveSession upserts by ID, moves the session to the front, and evicts
// entries past store.HistoryLimit.
func (s *SessionStore) SaveSession(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.StudySession, 0, len(s.sessions)+1)
	kept = append(kept, *session)
	for _, existing := range s.sessions {
		if existing.ID == session.ID {
			continue
		}
		kept = append(kept, existing)
	}
	if len(kept) > store.HistoryLimit {
		kept = kept[:store.HistoryLimit]
	}
	s.sessions = kept
	return nil
}

// DeleteSession removes the session with the given ID.
func (s *SessionStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.sessions {
		if existing.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return nil
		}
	}
	return store.ErrSessionNotFound
}

// GetDailyUsage returns the stored usage counter.
func (s *SessionStore) GetDailyUsage(ctx context.Context) (domain.DailyUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usage, nil
}

// SetDailyUsage replaces the stored usage counter.
func (s *SessionStore) SetDailyUsage(ctx context.Context, usage domain.DailyUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = usage
	return nil
}
