// Package store defines the persistence port for generated study sessions
// and the daily usage counter. Implementations live under
// internal/platform; the engines and services only ever see this
// interface and must treat unavailable or corrupt data as empty/default
// state, never as a fatal condition.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
)

// HistoryLimit caps how many sessions the history keeps. SaveSession
// evicts the oldest entries past this limit.
const HistoryLimit = 20

// SessionStore persists generated study sessions and the daily usage
// counter.
type SessionStore interface {
	// GetHistory returns the saved sessions, most recent first. Corrupt
	// entries are skipped; a missing or unreadable history yields an empty
	// slice, not an error.
	GetHistory(ctx context.Context) ([]domain.StudySession, error)

	// SaveSession upserts a session by ID, places it at the front of the
	// history, and evicts entries past HistoryLimit.
	SaveSession(ctx context.Context, session *domain.StudySession) error

	// DeleteSession removes the session with the given ID. Returns
	// ErrSessionNotFound if no such session exists.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// GetDailyUsage returns the stored usage counter. Missing or corrupt
	// data yields the zero value, not an error.
	GetDailyUsage(ctx context.Context) (domain.DailyUsage, error)

	// SetDailyUsage stores the usage counter, replacing any previous
	// value.
	SetDailyUsage(ctx context.Context, usage domain.DailyUsage) error
}
