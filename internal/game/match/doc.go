// Package match implements the memory matching game: term and definition
// tiles laid out face-down, flipped two at a time, with move and match
// counters. Settle delays (short for a match, longer for a mismatch so
// both faces stay readable) run through a scheduler.Scheduler and carry a
// session generation so a restart invalidates any pending resolution.
package match
