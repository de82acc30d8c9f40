// Package scheduler abstracts delayed callback execution so the game
// engines can schedule settle delays and countdown ticks without touching
// ambient timers. Handles are cancellable, which lets an engine invalidate
// every pending callback on restart or teardown instead of letting a stale
// timer mutate a later session's state.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Handle identifies a scheduled callback.
type Handle interface {
	// Cancel prevents the callback from firing. Cancelling a handle whose
	// callback already fired (or was already cancelled) is a no-op.
	Cancel()
}

// Scheduler schedules one-shot deferred callbacks.
type Scheduler interface {
	// AfterFunc runs fn after d has elapsed. fn runs on an unspecified
	// goroutine; callers serialize their own state.
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real is the wall-clock Scheduler backed by time.AfterFunc.
type Real struct{}

// NewReal returns the wall-clock scheduler.
func NewReal() *Real {
	return &Real{}
}

type realHandle struct {
	timer *time.Timer
}

func (h *realHandle) Cancel() {
	h.timer.Stop()
}

// AfterFunc implements Scheduler using the runtime timer.
func (r *Real) AfterFunc(d time.Duration, fn func()) Handle {
	return &realHandle{timer: time.AfterFunc(d, fn)}
}

// Manual is a Scheduler driven by explicit Advance calls instead of the
// wall clock. Tests use it to step through settle delays and countdown
// ticks deterministically.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	next  int
	tasks []*manualTask
}

type manualTask struct {
	owner     *Manual
	seq       int
	due       time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	t.cancelled = true
}

// NewManual returns a manually advanced scheduler starting at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Scheduler. The callback fires during a future
// Advance call once enough virtual time has passed.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := &manualTask{owner: m, seq: m.next, due: m.now + d, fn: fn}
	m.next++
	m.tasks = append(m.tasks, task)
	return task
}

// Advance moves virtual time forward by d, firing every due, uncancelled
// callback in due-time order. Callbacks scheduled while firing (a re-armed
// countdown tick, for example) fire in the same Advance call when they
// fall within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		task := m.popDue(target)
		if task == nil {
			break
		}
		m.now = task.due
		m.mu.Unlock()
		task.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Pending reports how many scheduled callbacks have not yet fired or been
// cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest due task at or before target,
// or nil if none. Caller holds m.mu.
func (m *Manual) popDue(target time.Duration) *manualTask {
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due != m.tasks[j].due {
			return m.tasks[i].due < m.tasks[j].due
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})

	for i, t := range m.tasks {
		if t.cancelled {
			continue
		}
		if t.due <= target {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return t
		}
		break
	}

	// Drop cancelled tasks that are already due so the slice does not grow
	// without bound.
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.cancelled && t.due <= target {
			continue
		}
		kept = append(kept, t)
	}
	m.tasks = kept
	return nil
}
