package domain

import (
	"strings"

	"github.com/samber/lo"
)

// Pair is a (term, definition) tuple: the atomic unit both quiz games are
// built over.
type Pair struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// pairDelimiters are the separators a bullet point is split on, in no
// particular order of preference: the earliest occurrence in the string
// wins.
var pairDelimiters = []string{":", "-", "–", "—"}

// Limits applied by ExtractGamePairs.
const (
	maxGameTermLen       = 40
	maxGameDefinitionLen = 100
	maxFallbackPairs     = 4
	minGamePairs         = 3
)

// splitPoint splits a bullet string at the first occurrence of any pair
// delimiter. It returns the trimmed term and definition and whether both
// segments are non-empty.
func splitPoint(point string) (term, definition string, ok bool) {
	idx := -1
	width := 0
	for _, d := range pairDelimiters {
		if i := strings.Index(point, d); i >= 0 && (idx < 0 || i < idx) {
			idx = i
			width = len(d)
		}
	}
	if idx < 0 {
		return "", "", false
	}

	term = strings.TrimSpace(point[:idx])
	definition = strings.TrimSpace(point[idx+width:])
	if term == "" || definition == "" {
		return "", "", false
	}
	return term, definition, true
}

// ExtractPairs mines term/definition pairs out of free-text study
// material. Every flashcard becomes one pair unconditionally; every bullet
// point that splits into two non-empty trimmed segments becomes one pair.
// Duplicate terms are retained and pool order is insertion order.
//
// ExtractPairs never fails: input with no splittable bullets simply yields
// a small or empty pool, and callers decide whether that is enough to
// start a game.
func ExtractPairs(notes []Note, flashcards []Flashcard) []Pair {
	pairs := lo.Map(flashcards, func(c Flashcard, _ int) Pair {
		return Pair{Term: c.Front, Definition: c.Back}
	})

	for _, note := range notes {
		for _, point := range note.Points {
			if term, definition, ok := splitPoint(point); ok {
				pairs = append(pairs, Pair{Term: term, Definition: definition})
			}
		}
	}

	return pairs
}

// ExtractGamePairs is the matching-game variant of ExtractPairs. On top of
// the base extraction it truncates long definitions, drops pairs whose
// term is too long to fit on a tile, and falls back to heading/first-point
// pairs when the notes are too loosely structured to yield enough
// material. The fallback guarantees the matching game has usable tiles
// even when no bullet contains a delimiter.
func ExtractGamePairs(notes []Note, flashcards []Flashcard) []Pair {
	base := ExtractPairs(notes, flashcards)

	pairs := make([]Pair, 0, len(base))
	for _, p := range base {
		if len([]rune(p.Term)) > maxGameTermLen {
			continue
		}
		pairs = append(pairs, Pair{Term: p.Term, Definition: truncateDefinition(p.Definition)})
	}

	if len(pairs) >= minGamePairs {
		return pairs
	}

	added := 0
	for _, note := range notes {
		if added >= maxFallbackPairs {
			break
		}
		if note.Heading == "" || len(note.Points) == 0 {
			continue
		}
		pairs = append(pairs, Pair{
			Term:       note.Heading,
			Definition: truncateDefinition(note.Points[0]),
		})
		added++
	}

	return pairs
}

func truncateDefinition(definition string) string {
	runes := []rune(definition)
	if len(runes) <= maxGameDefinitionLen {
		return definition
	}
	return string(runes[:maxGameDefinitionLen]) + "..."
}
