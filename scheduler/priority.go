// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"math"
	"time"
)

// Priority is a coarse tier, derived from the latency of the current frame,
// used to decide whether expensive work (e.g. certain animations) should
// run. See [Thresholds.Resolve].
type Priority int

const (
	// Critical is selected when no tighter threshold is satisfied.
	Critical Priority = iota + 1
	// Normal is the common case, for frames under its threshold.
	Normal
	// Generous is selected for frames under its (typically zero) threshold.
	Generous
)

// priorities are in resolution order.
var priorities = [...]Priority{Critical, Normal, Generous}

// String returns the name of the priority.
func (p Priority) String() string {
	switch p {
	case Critical:
		return `critical`
	case Normal:
		return `normal`
	case Generous:
		return `generous`
	default:
		return `unknown`
	}
}

// Unbounded is a threshold that every frame satisfies.
const Unbounded time.Duration = math.MaxInt64

// Thresholds configures the frame latency bound of each Priority.
type Thresholds struct {
	Critical time.Duration
	Normal   time.Duration
	Generous time.Duration
}

// DefaultThresholds returns the default thresholds: critical is unbounded,
// normal is 130ms, and generous is 0 (never satisfied).
func DefaultThresholds() Thresholds {
	return Thresholds{
		Critical: Unbounded,
		Normal:   130 * time.Millisecond,
		Generous: 0,
	}
}

// Of returns the threshold of p, or Unbounded for unknown values.
func (t Thresholds) Of(p Priority) time.Duration {
	switch p {
	case Critical:
		return t.Critical
	case Normal:
		return t.Normal
	case Generous:
		return t.Generous
	default:
		return Unbounded
	}
}

// Resolve returns the priority with the tightest threshold that delta is
// still under, and that threshold. If no threshold is satisfied, the result
// is Critical, with an Unbounded threshold.
func (t Thresholds) Resolve(delta time.Duration) (Priority, time.Duration) {
	level, best := Critical, Unbounded
	for _, p := range priorities {
		if v := t.Of(p); delta < v && v <= best {
			level, best = p, v
		}
	}
	return level, best
}
