package dash

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/scheduler"
)

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseEnded
)

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Feedback is the transient per-answer indicator shown during the settle
// delay.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackWrong
)

// Config holds the tunable parameters of a round.
type Config struct {
	// Lives is the number of wrong answers allowed before the round ends.
	Lives int

	// RoundSeconds is the countdown length of one round.
	RoundSeconds int

	// SettleDelay is how long answer feedback stays on screen before the
	// next question appears or the round ends.
	SettleDelay time.Duration

	// TickInterval is the countdown granularity.
	TickInterval time.Duration
}

// DefaultConfig returns the standard round parameters.
func DefaultConfig() Config {
	return Config{
		Lives:        3,
		RoundSeconds: 30,
		SettleDelay:  600 * time.Millisecond,
		TickInterval: time.Second,
	}
}

// State is a point-in-time snapshot of the round, safe to read after the
// engine has moved on.
type State struct {
	Score    int
	Streak   int
	Lives    int
	TimeLeft int
	Phase    Phase
	Feedback Feedback
	Question *Question
}

// answerOutcome snapshots the result of an answer at decision time. The
// deferred settle transition consumes this record instead of re-reading
// engine state that may have advanced underneath it.
type answerOutcome struct {
	correct   bool
	livesLeft int
}

// Engine runs one Knowledge Dash round at a time. All methods are safe
// for concurrent use; internally every event is serialized behind one
// mutex, matching the game's single-threaded event model.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	pool   []domain.Pair
	rng    *rand.Rand
	sched  scheduler.Scheduler
	logger *slog.Logger

	// round is the generation counter. Start and Stop bump it, which
	// invalidates every callback scheduled by the previous round.
	round uint64

	score    int
	streak   int
	lives    int
	timeLeft int
	phase    Phase
	feedback Feedback
	question *Question

	tickHandle   scheduler.Handle
	settleHandle scheduler.Handle
}

// NewEngine creates an engine over the given pair pool. A nil scheduler
// falls back to the wall clock, a nil rng to a time-seeded source, and a
// nil logger to slog.Default.
func NewEngine(pool []domain.Pair, cfg Config, sched scheduler.Scheduler, rng *rand.Rand, logger *slog.Logger) *Engine {
	if sched == nil {
		sched = scheduler.NewReal()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cfg:    cfg,
		pool:   pool,
		rng:    rng,
		sched:  sched,
		logger: logger.With(slog.String("component", "dash_engine")),
		phase:  PhaseIdle,
	}
}

// Start begins a fresh round, fully resetting score, streak, lives, and
// the countdown, and generating the first question. Calling Start while a
// round is playing or ended restarts: the previous round's pending
// callbacks are invalidated and its state discarded.
//
// Returns ErrInsufficientPairs when the pool cannot produce questions.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pool) < 2 {
		return ErrInsufficientPairs
	}

	e.invalidateLocked()

	e.score = 0
	e.streak = 0
	e.lives = e.cfg.Lives
	e.timeLeft = e.cfg.RoundSeconds
	e.feedback = FeedbackNone
	e.phase = PhasePlaying

	q, err := GenerateQuestion(e.pool, e.rng)
	if err != nil {
		e.phase = PhaseIdle
		return err
	}
	e.question = &q

	e.logger.Debug("round started",
		slog.Int("pool_size", len(e.pool)),
		slog.Int("lives", e.lives),
		slog.Int("time_left", e.timeLeft))

	e.scheduleTickLocked()
	return nil
}

// Answer judges the player's true/false choice against the active
// question. It is ignored when no round is playing, no question is
// active, or feedback from the previous answer is still settling, so an
// answer can never score twice.
func (e *Engine) Answer(choice bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePlaying || e.question == nil || e.feedback != FeedbackNone {
		return
	}

	outcome := answerOutcome{correct: choice == e.question.IsCorrect}
	if outcome.correct {
		e.score += 10 * (e.streak + 1)
		e.streak++
		e.feedback = FeedbackCorrect
	} else {
		e.lives--
		e.streak = 0
		e.feedback = FeedbackWrong
	}
	outcome.livesLeft = e.lives

	round := e.round
	e.settleHandle = e.sched.AfterFunc(e.cfg.SettleDelay, func() {
		e.settle(round, outcome)
	})
}

// settle clears answer feedback after the settle delay and either ends
// the round (lives exhausted) or advances to the next question. The
// outcome record was snapshotted when the answer was judged.
func (e *Engine) settle(round uint64, outcome answerOutcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if round != e.round || e.phase != PhasePlaying {
		return
	}

	e.feedback = FeedbackNone

	if !outcome.correct && outcome.livesLeft <= 0 {
		e.endLocked("lives exhausted")
		return
	}

	q, err := GenerateQuestion(e.pool, e.rng)
	if err != nil {
		// Pool size was checked at Start; this cannot regress mid-round.
		e.endLocked("question generation failed")
		return
	}
	e.question = &q
}

// scheduleTickLocked arms the next countdown tick. Caller holds e.mu.
func (e *Engine) scheduleTickLocked() {
	round := e.round
	e.tickHandle = e.sched.AfterFunc(e.cfg.TickInterval, func() {
		e.tick(round)
	})
}

// tick decrements the countdown. Reaching zero ends the round
// immediately, regardless of remaining lives or pending feedback.
func (e *Engine) tick(round uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if round != e.round || e.phase != PhasePlaying {
		return
	}

	e.timeLeft--
	if e.timeLeft <= 0 {
		e.timeLeft = 0
		e.endLocked("time expired")
		return
	}

	e.scheduleTickLocked()
}

// endLocked transitions to PhaseEnded and invalidates pending callbacks.
// Caller holds e.mu.
func (e *Engine) endLocked(reason string) {
	e.phase = PhaseEnded
	e.question = nil
	e.feedback = FeedbackNone
	e.cancelHandlesLocked()

	// Note: the reported final streak is the streak at this moment, not a
	// tracked maximum. A streak reset by a wrong answer just before the
	// round ends reports as zero.
	e.logger.Debug("round ended",
		slog.String("reason", reason),
		slog.Int("score", e.score),
		slog.Int("streak", e.streak))
}

// Stop tears the engine down, invalidating any pending callbacks and
// returning to idle. Safe to call at any time.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.invalidateLocked()
	e.phase = PhaseIdle
	e.question = nil
	e.feedback = FeedbackNone
}

// invalidateLocked bumps the round generation and cancels live handles.
// Caller holds e.mu.
func (e *Engine) invalidateLocked() {
	e.round++
	e.cancelHandlesLocked()
}

func (e *Engine) cancelHandlesLocked() {
	if e.tickHandle != nil {
		e.tickHandle.Cancel()
		e.tickHandle = nil
	}
	if e.settleHandle != nil {
		e.settleHandle.Cancel()
		e.settleHandle = nil
	}
}

// State returns a snapshot of the current round.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := State{
		Score:    e.score,
		Streak:   e.streak,
		Lives:    e.lives,
		TimeLeft: e.timeLeft,
		Phase:    e.phase,
		Feedback: e.feedback,
	}
	if e.question != nil {
		q := *e.question
		s.Question = &q
	}
	return s
}
