package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/generation"
	"github.com/rayn18370-max/Study-Buddy/internal/platform/memory"
	"github.com/rayn18370-max/Study-Buddy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns a fixed study set or error.
type stubGenerator struct {
	set   *generation.StudySet
	err   error
	calls int
}

func (g *stubGenerator) GenerateStudySet(ctx context.Context, topic string) (*generation.StudySet, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.set, nil
}

// failingStore errors on every operation, to exercise the degradation
// paths.
type failingStore struct{}

func (failingStore) GetHistory(context.Context) ([]domain.StudySession, error) {
	return nil, errors.New("store offline")
}
func (failingStore) SaveSession(context.Context, *domain.StudySession) error {
	return errors.New("store offline")
}
func (failingStore) DeleteSession(context.Context, uuid.UUID) error {
	return errors.New("store offline")
}
func (failingStore) GetDailyUsage(context.Context) (domain.DailyUsage, error) {
	return domain.DailyUsage{}, errors.New("store offline")
}
func (failingStore) SetDailyUsage(context.Context, domain.DailyUsage) error {
	return errors.New("store offline")
}

var _ store.SessionStore = failingStore{}

func validSet() *generation.StudySet {
	return &generation.StudySet{
		Notes:      []domain.Note{{Heading: "H", Points: []string{"a: 1", "b: 2"}}},
		Flashcards: []domain.Flashcard{{Front: "f", Back: "b"}},
	}
}

func fixedClock(day string) func() time.Time {
	parsed, _ := time.Parse(domain.UsageDateFormat, day)
	return func() time.Time { return parsed }
}

func TestGeneratePersistsSessionAndCountsUsage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := memory.NewSessionStore()
	gen := &stubGenerator{set: validSet()}

	svc := NewStudyService(mem, gen, 5, nil).WithClock(fixedClock("2026-08-30"))

	session, err := svc.Generate(ctx, "Biology")
	require.NoError(t, err)
	assert.Equal(t, "Biology", session.Topic)

	history := svc.History(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, session.ID, history[0].ID)

	report := svc.Usage(ctx)
	assert.Equal(t, 1, report.Used)
	assert.Equal(t, 5, report.Limit)
	assert.Equal(t, 4, report.Remaining)
	assert.Equal(t, "2026-08-30", report.Date)
}

func TestGenerateEnforcesDailyLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := memory.NewSessionStore()
	gen := &stubGenerator{set: validSet()}

	svc := NewStudyService(mem, gen, 2, nil).WithClock(fixedClock("2026-08-30"))

	_, err := svc.Generate(ctx, "first")
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "second")
	require.NoError(t, err)

	_, err = svc.Generate(ctx, "third")
	assert.ErrorIs(t, err, ErrDailyLimitReached)
	assert.Equal(t, 2, gen.calls, "generator is not called past the limit")
}

func TestDailyLimitResetsOnNewDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := memory.NewSessionStore()
	gen := &stubGenerator{set: validSet()}

	svc := NewStudyService(mem, gen, 1, nil).WithClock(fixedClock("2026-08-30"))
	_, err := svc.Generate(ctx, "first")
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "blocked")
	require.ErrorIs(t, err, ErrDailyLimitReached)

	svc.WithClock(fixedClock("2026-08-31"))
	_, err = svc.Generate(ctx, "next day")
	assert.NoError(t, err)
	assert.Equal(t, 1, svc.Usage(ctx).Used)
}

func TestGenerateWithoutGenerator(t *testing.T) {
	t.Parallel()
	svc := NewStudyService(memory.NewSessionStore(), nil, 5, nil)

	_, err := svc.Generate(context.Background(), "topic")
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
}

func TestGeneratePropagatesGeneratorFailure(t *testing.T) {
	t.Parallel()
	gen := &stubGenerator{err: generation.ErrContentBlocked}
	svc := NewStudyService(memory.NewSessionStore(), gen, 5, nil)

	_, err := svc.Generate(context.Background(), "topic")
	assert.ErrorIs(t, err, generation.ErrContentBlocked)
	assert.Empty(t, svc.History(context.Background()), "nothing is persisted on failure")
}

func TestStoreFailureDegradesToDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gen := &stubGenerator{set: validSet()}
	svc := NewStudyService(failingStore{}, gen, 5, nil).WithClock(fixedClock("2026-08-30"))

	// History degrades to empty, usage to a fresh counter; neither is a
	// hard failure.
	assert.Empty(t, svc.History(ctx))
	report := svc.Usage(ctx)
	assert.Zero(t, report.Used)
	assert.Equal(t, "2026-08-30", report.Date)

	// Saving the generated session has nowhere to go, so Generate fails,
	// but with a wrapped store error rather than a panic.
	_, err := svc.Generate(ctx, "topic")
	assert.Error(t, err)
}

func TestGetSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := memory.NewSessionStore()
	gen := &stubGenerator{set: validSet()}
	svc := NewStudyService(mem, gen, 5, nil)

	created, err := svc.Generate(ctx, "topic")
	require.NoError(t, err)

	found, err := svc.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetSession(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSessionMapsNotFound(t *testing.T) {
	t.Parallel()
	svc := NewStudyService(memory.NewSessionStore(), nil, 5, nil)

	err := svc.DeleteSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
