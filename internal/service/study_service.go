// Package service orchestrates the application use cases: generating a
// study set (behind the daily usage ceiling), browsing history, and
// reading usage. It owns the policy; persistence and AI generation are
// injected ports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/generation"
	"github.com/rayn18370-max/Study-Buddy/internal/store"
	"github.com/samber/lo"
)

// Service-level errors.
var (
	// ErrDailyLimitReached is returned when the day's generation ceiling
	// has been hit.
	ErrDailyLimitReached = errors.New("daily generation limit reached")

	// ErrGenerationUnavailable is returned when no generator is
	// configured (for example, no API key was provided).
	ErrGenerationUnavailable = errors.New("study set generation is not available")

	// ErrSessionNotFound is returned when the requested session is not in
	// the history.
	ErrSessionNotFound = errors.New("study session not found")
)

// UsageReport is the externally visible daily usage state.
type UsageReport struct {
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
}

// StudyService implements the application use cases over the injected
// store and generator.
type StudyService struct {
	store      store.SessionStore
	generator  generation.Generator
	dailyLimit int
	logger     *slog.Logger
	now        func() time.Time
}

// NewStudyService creates a StudyService. The generator may be nil, in
// which case Generate returns ErrGenerationUnavailable. The store is
// required.
func NewStudyService(sessionStore store.SessionStore, generator generation.Generator, dailyLimit int, logger *slog.Logger) *StudyService {
	if sessionStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session store cannot be nil for StudyService")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if dailyLimit < 1 {
		dailyLimit = 1
	}

	return &StudyService{
		store:      sessionStore,
		generator:  generator,
		dailyLimit: dailyLimit,
		logger:     logger.With(slog.String("component", "study_service")),
		now:        time.Now,
	}
}

// WithClock overrides the service's time source. Tests use it to pin the
// usage-reset day boundary.
func (s *StudyService) WithClock(now func() time.Time) *StudyService {
	s.now = now
	return s
}

// Generate creates a study set for the topic, persists it as a session,
// and counts it against today's usage. The stored usage counter resets
// automatically when its date is not today.
func (s *StudyService) Generate(ctx context.Context, topic string) (*domain.StudySession, error) {
	if s.generator == nil {
		return nil, ErrGenerationUnavailable
	}

	usage := s.currentUsage(ctx)
	if usage.Count >= s.dailyLimit {
		return nil, ErrDailyLimitReached
	}

	set, err := s.generator.GenerateStudySet(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	session, err := domain.NewStudySession(topic, set.Notes, set.Flashcards, set.Exam)
	if err != nil {
		return nil, fmt.Errorf("%w: generated material was unusable", generation.ErrInvalidResponse)
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	usage.Count++
	if err := s.store.SetDailyUsage(ctx, usage); err != nil {
		// The session is already saved; a usage write failure is not worth
		// failing the request over.
		s.logger.Warn("failed to persist daily usage", slog.String("error", err.Error()))
	}

	s.logger.Info("study session generated",
		slog.String("session_id", session.ID.String()),
		slog.Int("notes", len(session.Notes)),
		slog.Int("flashcards", len(session.Flashcards)),
		slog.Int("usage_count", usage.Count))

	return session, nil
}

// History returns the saved sessions, most recent first. Store failures
// degrade to an empty history rather than propagating.
func (s *StudyService) History(ctx context.Context) []domain.StudySession {
	history, err := s.store.GetHistory(ctx)
	if err != nil {
		s.logger.Warn("failed to load history, treating as empty",
			slog.String("error", err.Error()))
		return nil
	}
	return history
}

// GetSession returns the session with the given ID from the history.
func (s *StudyService) GetSession(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	session, found := lo.Find(s.History(ctx), func(s domain.StudySession) bool {
		return s.ID == id
	})
	if !found {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// DeleteSession removes the session with the given ID.
func (s *StudyService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteSession(ctx, id)
	if store.IsNotFoundError(err) {
		return ErrSessionNotFound
	}
	return err
}

// Usage reports today's generation usage against the configured limit.
func (s *StudyService) Usage(ctx context.Context) UsageReport {
	usage := s.currentUsage(ctx)
	remaining := s.dailyLimit - usage.Count
	if remaining < 0 {
		remaining = 0
	}
	return UsageReport{
		Used:      usage.Count,
		Limit:     s.dailyLimit,
		Date:      usage.Date,
		Remaining: remaining,
	}
}

// currentUsage loads the stored counter, resetting it when stale. Store
// failures degrade to a fresh counter for today.
func (s *StudyService) currentUsage(ctx context.Context) domain.DailyUsage {
	usage, err := s.store.GetDailyUsage(ctx)
	if err != nil {
		s.logger.Warn("failed to load daily usage, treating as zero",
			slog.String("error", err.Error()))
		usage = domain.DailyUsage{}
	}
	return usage.ResetIfStale(s.now())
}
