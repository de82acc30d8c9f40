package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, topic string) *domain.StudySession {
	t.Helper()
	session, err := domain.NewStudySession(topic,
		[]domain.Note{{Heading: "H", Points: []string{"a: 1"}}}, nil, domain.Exam{})
	require.NoError(t, err)
	return session
}

func TestSaveSessionOrdersMostRecentFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewSessionStore()

	first := newSession(t, "first")
	second := newSession(t, "second")
	require.NoError(t, s.SaveSession(ctx, first))
	require.NoError(t, s.SaveSession(ctx, second))

	history, err := s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Topic)
	assert.Equal(t, "first", history[1].Topic)
}

func TestSaveSessionUpsertsByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewSessionStore()

	session := newSession(t, "original")
	require.NoError(t, s.SaveSession(ctx, session))

	other := newSession(t, "other")
	require.NoError(t, s.SaveSession(ctx, other))

	session.Topic = "updated"
	require.NoError(t, s.SaveSession(ctx, session))

	history, err := s.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "updated", history[0].Topic, "updated session moves to the front")
	assert.Equal(t, "other", history[1].Topic)
}

func TestSaveSessionEnforcesHistoryLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewSessionStore()

	for i := 0; i < store.HistoryLimit+5; i++ {
		require.NoError(t, s.SaveSession(ctx, newSession(t, fmt.Sprintf("topic-%d", i))))
	}

	history, err := s.GetHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, store.HistoryLimit)
	assert.Equal(t, fmt.Sprintf("topic-%d", store.HistoryLimit+4), history[0].Topic)
}

func TestSaveSessionRejectsInvalid(t *testing.T) {
	t.Parallel()
	s := NewSessionStore()

	session := newSession(t, "valid")
	session.Topic = ""
	assert.Error(t, s.SaveSession(context.Background(), session))
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewSessionStore()

	session := newSession(t, "topic")
	require.NoError(t, s.SaveSession(ctx, session))

	require.NoError(t, s.DeleteSession(ctx, session.ID))
	history, err := s.GetHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	err = s.DeleteSession(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestDailyUsageRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewSessionStore()

	usage, err := s.GetDailyUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DailyUsage{}, usage, "fresh store yields the zero value")

	want := domain.DailyUsage{Count: 2, Date: "2026-08-30"}
	require.NoError(t, s.SetDailyUsage(ctx, want))

	usage, err = s.GetDailyUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, usage)
}
