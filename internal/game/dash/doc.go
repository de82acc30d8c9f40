// Package dash implements the Knowledge Dash game: a timed, lives-based
// true/false round over term/definition pairs. The engine is a small state
// machine (idle, playing, ended) whose every mutation happens on a
// serialized event: a player answer, a one-second countdown tick, or the
// expiry of the post-answer settle delay.
//
// Deferred work goes through a scheduler.Scheduler and every scheduled
// callback captures the round generation it belongs to; a callback landing
// after a restart or teardown sees a newer generation and is discarded.
package dash
