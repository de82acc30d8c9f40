// Package practice implements the exam walkthrough: a non-randomized pass
// over pre-generated multiple-choice and short-answer questions with
// per-question answer and reveal state plus a global reveal-all toggle.
// There is no timer, no scoring, and no terminal state; everything lives
// in memory and one atomic Reset is the only way to re-attempt.
package practice

import (
	"sync"

	"github.com/rayn18370-max/Study-Buddy/internal/domain"
)

// OptionStatus is the rendering state of one multiple-choice option.
type OptionStatus int

const (
	// OptionNeutral means the option carries no correctness styling.
	OptionNeutral OptionStatus = iota

	// OptionCorrect marks the known correct answer once the question is
	// answered or global reveal is on.
	OptionCorrect

	// OptionIncorrect marks a revealed option that is not the correct
	// answer, or the learner's wrong selection.
	OptionIncorrect
)

// MCQView is the derived per-question state of a multiple-choice question.
type MCQView struct {
	Selected string
	Answered bool
}

// ShortView is the derived per-question state of a short-answer question.
type ShortView struct {
	Draft    string
	Revealed bool
}

// Session tracks the learner's progress through one exam. All methods are
// safe for concurrent use.
type Session struct {
	mu   sync.Mutex
	exam domain.Exam

	mcqSelections map[int]string
	drafts        map[int]string
	revealed      map[int]bool
	showAll       bool
}

// NewSession creates a session over the given exam with no answers
// recorded.
func NewSession(exam domain.Exam) *Session {
	return &Session{
		exam:          exam,
		mcqSelections: make(map[int]string),
		drafts:        make(map[int]string),
		revealed:      make(map[int]bool),
	}
}

// SelectOption records the learner's choice for the multiple-choice
// question at index q. The first selection is final: re-selecting,
// selecting while global reveal is on, or selecting an option that is not
// one of the question's options are all silently ignored. Only Reset
// allows a re-attempt.
func (s *Session) SelectOption(q int, option string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q < 0 || q >= len(s.exam.MCQ) {
		return
	}
	if s.showAll {
		return
	}
	if _, answered := s.mcqSelections[q]; answered {
		return
	}
	if !containsOption(s.exam.MCQ[q].Options, option) {
		return
	}

	s.mcqSelections[q] = option
}

// SetDraft stores the learner's scratch text for the short-answer
// question at index q. Drafts are never graded.
func (s *Session) SetDraft(q int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q < 0 || q >= len(s.exam.Short) {
		return
	}
	s.drafts[q] = text
}

// ToggleReveal flips the model-answer reveal for the short-answer
// question at index q. Each question's reveal is independent.
func (s *Session) ToggleReveal(q int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q < 0 || q >= len(s.exam.Short) {
		return
	}
	s.revealed[q] = !s.revealed[q]
}

// SetShowAll turns the global reveal on or off. While on, every short
// answer is force-revealed and every multiple-choice option is recolored
// by correctness; recorded selections are kept, so turning it back off
// restores the exact per-question state from before.
func (s *Session) SetShowAll(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAll = on
}

// ShowAll reports whether the global reveal is on.
func (s *Session) ShowAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showAll
}

// Reset atomically clears every selection, draft, reveal flag, and the
// global toggle. It is idempotent.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mcqSelections = make(map[int]string)
	s.drafts = make(map[int]string)
	s.revealed = make(map[int]bool)
	s.showAll = false
}

// MCQ returns the derived state of the multiple-choice question at
// index q.
func (s *Session) MCQ(q int) MCQView {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected, answered := s.mcqSelections[q]
	return MCQView{Selected: selected, Answered: answered}
}

// OptionStatus returns the rendering state of one option of the
// multiple-choice question at index q. Correctness styling applies once
// the question is answered or while global reveal is on; an unanswered
// question with global reveal off is entirely neutral.
func (s *Session) OptionStatus(q int, option string) OptionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q < 0 || q >= len(s.exam.MCQ) {
		return OptionNeutral
	}

	question := s.exam.MCQ[q]
	selected, answered := s.mcqSelections[q]

	if s.showAll {
		if option == question.CorrectAnswer {
			return OptionCorrect
		}
		return OptionIncorrect
	}

	if !answered {
		return OptionNeutral
	}

	if option == question.CorrectAnswer {
		return OptionCorrect
	}
	if option == selected {
		return OptionIncorrect
	}
	return OptionNeutral
}

// Short returns the derived state of the short-answer question at
// index q. The reveal accounts for the global toggle.
func (s *Session) Short(q int) ShortView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ShortView{
		Draft:    s.drafts[q],
		Revealed: s.showAll || s.revealed[q],
	}
}

func containsOption(options []string, option string) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}
