// Package generation defines the boundary between the application core
// and the external AI service that produces study material. The game
// engines never call this directly; the service layer does, gated by the
// daily usage ceiling.
package generation

import (
	"context"

	"github.com/rayn18370-max/Study-Buddy/internal/domain"
)

// StudySet is the raw material one generation call produces, before it is
// wrapped into a persisted StudySession.
type StudySet struct {
	Notes      []domain.Note
	Flashcards []domain.Flashcard
	Exam       domain.Exam
}

// Generator turns a topic or pasted source text into a full study set.
type Generator interface {
	// GenerateStudySet creates notes, flashcards, and exam questions for
	// the given topic. Implementations map provider failures onto the
	// sentinel errors in errors.go.
	GenerateStudySet(ctx context.Context, topic string) (*StudySet, error)
}
