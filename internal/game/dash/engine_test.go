package dash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool() []domain.Pair {
	return []domain.Pair{
		{Term: "A", Definition: "1"},
		{Term: "B", Definition: "2"},
		{Term: "C", Definition: "3"},
	}
}

func newTestEngine(t *testing.T) (*Engine, *scheduler.Manual) {
	t.Helper()
	sched := scheduler.NewManual()
	engine := NewEngine(testPool(), DefaultConfig(), sched, rand.New(rand.NewSource(1)), nil)
	return engine, sched
}

// answerCorrectly submits the answer matching the active question and
// advances through the settle delay.
func answerCorrectly(t *testing.T, e *Engine, sched *scheduler.Manual) {
	t.Helper()
	q := e.State().Question
	require.NotNil(t, q)
	e.Answer(q.IsCorrect)
	sched.Advance(DefaultConfig().SettleDelay)
}

// answerWrongly submits the opposite of the active question's answer and
// advances through the settle delay.
func answerWrongly(t *testing.T, e *Engine, sched *scheduler.Manual) {
	t.Helper()
	q := e.State().Question
	require.NotNil(t, q)
	e.Answer(!q.IsCorrect)
	sched.Advance(DefaultConfig().SettleDelay)
}

func TestStartRequiresTwoPairs(t *testing.T) {
	t.Parallel()

	engine := NewEngine([]domain.Pair{{Term: "A", Definition: "1"}}, DefaultConfig(), scheduler.NewManual(), nil, nil)
	assert.ErrorIs(t, engine.Start(), ErrInsufficientPairs)
	assert.Equal(t, PhaseIdle, engine.State().Phase)
}

func TestStartResetsState(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)

	require.NoError(t, engine.Start())
	answerCorrectly(t, engine, sched)
	require.NotZero(t, engine.State().Score)

	require.NoError(t, engine.Start())
	state := engine.State()
	assert.Equal(t, PhasePlaying, state.Phase)
	assert.Zero(t, state.Score)
	assert.Zero(t, state.Streak)
	assert.Equal(t, 3, state.Lives)
	assert.Equal(t, 30, state.TimeLeft)
	assert.NotNil(t, state.Question)
}

func TestStreakMultiplicativeScoring(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	// Three consecutive correct answers: 10 + 20 + 30.
	answerCorrectly(t, engine, sched)
	answerCorrectly(t, engine, sched)
	answerCorrectly(t, engine, sched)

	state := engine.State()
	assert.Equal(t, 60, state.Score)
	assert.Equal(t, 3, state.Streak)
	assert.Equal(t, 3, state.Lives)
	assert.Equal(t, PhasePlaying, state.Phase)
}

func TestWrongAnswerCostsLifeAndResetsStreak(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	answerCorrectly(t, engine, sched)
	answerCorrectly(t, engine, sched)
	answerWrongly(t, engine, sched)

	state := engine.State()
	assert.Equal(t, 30, state.Score, "score is kept on a wrong answer")
	assert.Zero(t, state.Streak)
	assert.Equal(t, 2, state.Lives)
	assert.Equal(t, PhasePlaying, state.Phase)

	// The streak multiplier starts over.
	answerCorrectly(t, engine, sched)
	assert.Equal(t, 40, engine.State().Score)
}

func TestLosingThirdLifeEndsRound(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	answerWrongly(t, engine, sched)
	answerWrongly(t, engine, sched)
	require.Equal(t, PhasePlaying, engine.State().Phase)

	q := engine.State().Question
	require.NotNil(t, q)
	engine.Answer(!q.IsCorrect)

	// Ended within one settle delay, regardless of remaining time.
	require.Equal(t, PhasePlaying, engine.State().Phase)
	sched.Advance(DefaultConfig().SettleDelay)

	state := engine.State()
	assert.Equal(t, PhaseEnded, state.Phase)
	assert.Zero(t, state.Lives)
	assert.Nil(t, state.Question)
}

func TestTimeoutEndsRoundWithLivesRemaining(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	sched.Advance(29 * time.Second)
	state := engine.State()
	require.Equal(t, PhasePlaying, state.Phase)
	require.Equal(t, 1, state.TimeLeft)

	sched.Advance(time.Second)
	state = engine.State()
	assert.Equal(t, PhaseEnded, state.Phase)
	assert.Zero(t, state.TimeLeft)
	assert.Equal(t, 3, state.Lives, "time-out is a loss independent of lives")
}

func TestAnswerIgnoredWhileFeedbackPending(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	q := engine.State().Question
	require.NotNil(t, q)
	engine.Answer(q.IsCorrect)
	require.Equal(t, FeedbackCorrect, engine.State().Feedback)

	// Double-submitting within the settle window cannot score twice.
	engine.Answer(q.IsCorrect)
	engine.Answer(!q.IsCorrect)

	sched.Advance(DefaultConfig().SettleDelay)
	state := engine.State()
	assert.Equal(t, 10, state.Score)
	assert.Equal(t, 1, state.Streak)
	assert.Equal(t, 3, state.Lives)
}

func TestAnswerIgnoredWhenNotPlaying(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	engine.Answer(true)
	assert.Equal(t, PhaseIdle, engine.State().Phase)
	assert.Zero(t, engine.State().Score)
}

func TestRestartInvalidatesPendingSettle(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	// Leave a wrong-answer settle outstanding, then restart before it
	// fires. The stale callback must not touch the new round.
	q := engine.State().Question
	require.NotNil(t, q)
	engine.Answer(!q.IsCorrect)

	require.NoError(t, engine.Start())
	sched.Advance(DefaultConfig().SettleDelay)

	state := engine.State()
	assert.Equal(t, PhasePlaying, state.Phase)
	assert.Equal(t, 3, state.Lives)
	assert.Equal(t, FeedbackNone, state.Feedback)
}

func TestStopInvalidatesPendingCallbacks(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	q := engine.State().Question
	require.NotNil(t, q)
	engine.Answer(q.IsCorrect)
	engine.Stop()

	sched.Advance(time.Minute)
	state := engine.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Nil(t, state.Question)
}

func TestCountdownPausesForNothing(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	// The countdown keeps running during answer feedback.
	q := engine.State().Question
	require.NotNil(t, q)
	engine.Answer(q.IsCorrect)
	sched.Advance(2 * time.Second)

	assert.Equal(t, 28, engine.State().TimeLeft)
}

// TestFinalStreakIsLiteralNotPeak documents intended-literal behavior:
// the round reports the streak at the moment it ended, not a running
// maximum. A long streak wiped by a wrong answer just before the end
// reports as zero.
func TestFinalStreakIsLiteralNotPeak(t *testing.T) {
	t.Parallel()
	engine, sched := newTestEngine(t)
	require.NoError(t, engine.Start())

	answerCorrectly(t, engine, sched)
	answerCorrectly(t, engine, sched)
	answerCorrectly(t, engine, sched)
	require.Equal(t, 3, engine.State().Streak)

	answerWrongly(t, engine, sched)

	// Run out the clock.
	sched.Advance(time.Minute)

	state := engine.State()
	require.Equal(t, PhaseEnded, state.Phase)
	assert.Equal(t, 60, state.Score)
	assert.Zero(t, state.Streak, "reported streak is the value at the end, not the peak of 3")
}
