package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/store"
)

// SessionStore implements store.SessionStore on top of a DB. Session
// content is serialized to JSON; a row whose content no longer
// unmarshals is skipped rather than surfaced as an error, per the rule
// that corrupt persisted data degrades to empty state.
type SessionStore struct {
	db     *DB
	logger *slog.Logger
}

// Compile-time interface check.
var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore over an opened DB.
func NewSessionStore(db *DB, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "sql_session_store")),
	}
}

// GetHistory returns the saved sessions, most recent first.
func (s *SessionStore) GetHistory(ctx context.Context) ([]domain.StudySession, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, content FROM study_sessions ORDER BY created_at DESC LIMIT ?",
		store.HistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history []domain.StudySession
	for rows.Next() {
		var id, content string
		if err := rows.Scan(&id, &content); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}

		var session domain.StudySession
		if err := json.Unmarshal([]byte(content), &session); err != nil {
			s.logger.Warn("skipping corrupt session row",
				slog.String("session_id", id),
				slog.String("error", err.Error()))
			continue
		}
		history = append(history, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return history, nil
}

// SaveSession upserts by ID and evicts entries past store.HistoryLimit.
func (s *SessionStore) SaveSession(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	content, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"DELETE FROM study_sessions WHERE id = ?",
		session.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO study_sessions (id, topic, content, created_at) VALUES (?, ?, ?, ?)",
		session.ID.String(), session.Topic, string(content), session.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM study_sessions WHERE id NOT IN (
			SELECT id FROM study_sessions ORDER BY created_at DESC LIMIT ?
		)`,
		store.HistoryLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	return nil
}

// DeleteSession removes the session with the given ID.
func (s *SessionStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM study_sessions WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return store.ErrSessionNotFound
	}
	return nil
}

// GetDailyUsage returns the stored usage counter, or the zero value when
// none has been written yet.
func (s *SessionStore) GetDailyUsage(ctx context.Context) (domain.DailyUsage, error) {
	var usage domain.DailyUsage
	err := s.db.QueryRowContext(ctx, "SELECT count, usage_date FROM daily_usage WHERE id = 1").
		Scan(&usage.Count, &usage.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DailyUsage{}, nil
	}
	if err != nil {
		return domain.DailyUsage{}, fmt.Errorf("failed to read daily usage: %w", err)
	}
	return usage, nil
}

// SetDailyUsage replaces the stored usage counter.
func (s *SessionStore) SetDailyUsage(ctx context.Context, usage domain.DailyUsage) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM daily_usage WHERE id = 1")
	if err != nil {
		return fmt.Errorf("failed to reset daily usage: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO daily_usage (id, count, usage_date) VALUES (1, ?, ?)",
		usage.Count, usage.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to write daily usage: %w", err)
	}
	return nil
}
