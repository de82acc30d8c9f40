package dash

import (
	"errors"
	"math/rand"

	"github.com/rayn18370-max/Study-Buddy/internal/domain"
)

// Question pairs a term with a definition that either belongs to it or
// was drawn from another pair. IsCorrect records which, and is the value
// the player's true/false answer is judged against.
type Question struct {
	Term       string
	Definition string
	IsCorrect  bool
}

// ErrInsufficientPairs is returned when the pool is too small to generate
// questions. Callers are expected to pre-check pool size and present a
// non-game fallback instead of starting the engine.
var ErrInsufficientPairs = errors.New("need at least two pairs to generate questions")

// GenerateQuestion draws the next question from the pool using the given
// random source. The base pair is drawn uniformly; with probability 1/2
// the question is true (the pair's own definition), otherwise a second
// pair is redrawn until its term differs from the base term, guaranteeing
// a false question never shows a term with its own definition.
//
// When every pool entry shares the base term (possible, since extraction
// keeps duplicates) no valid mismatch exists and the question falls back
// to true rather than looping forever.
func GenerateQuestion(pool []domain.Pair, rng *rand.Rand) (Question, error) {
	if len(pool) < 2 {
		return Question{}, ErrInsufficientPairs
	}

	base := pool[rng.Intn(len(pool))]
	if rng.Intn(2) == 0 {
		return Question{Term: base.Term, Definition: base.Definition, IsCorrect: true}, nil
	}

	if !hasOtherTerm(pool, base.Term) {
		return Question{Term: base.Term, Definition: base.Definition, IsCorrect: true}, nil
	}

	for {
		other := pool[rng.Intn(len(pool))]
		if other.Term != base.Term {
			return Question{Term: base.Term, Definition: other.Definition, IsCorrect: false}, nil
		}
	}
}

func hasOtherTerm(pool []domain.Pair, term string) bool {
	for _, p := range pool {
		if p.Term != term {
			return true
		}
	}
	return false
}
