// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

// LoopState represents the state of the run loop.
//
//	StateIdle    → StateRunning  [Run()]
//	StateRunning → StatePaused   [first tick after RunLoop is disabled]
//	StatePaused  → StateRunning  [SetOptions() re-enabling RunLoop]
//	any          → StateIdle     [Run() returns]
type LoopState uint64

const (
	// StateIdle indicates Run is not active.
	StateIdle LoopState = iota
	// StateRunning indicates Run is stepping, once per frame interval.
	StateRunning
	// StatePaused indicates Run is active, but RunLoop is disabled.
	StatePaused
)

// String returns a human-readable representation of the state.
func (s LoopState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
