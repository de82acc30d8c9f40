// Package domain contains the core entities of the study material system:
// notes, flashcards, exam questions, generated study sessions, and the
// term/definition pairs the quiz games are built on.
//
// Everything in this package is persistence-agnostic and free of side
// effects. Pair extraction in particular is a pure function so the game
// engines can call it from any context.
package domain
