// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"context"
	"time"
)

// Run drives the scheduler, stepping once per frame interval, until ctx is
// canceled, returning ctx.Err(). While the RunLoop option is disabled, the
// loop pauses (no steps) until it is re-enabled. Functions passed to Submit
// are run between steps, including while paused.
//
// Panics from steps are not recovered, and propagate out of Run.
func (x *Scheduler) Run(ctx context.Context) error {
	if !x.state.CompareAndSwap(uint64(StateIdle), uint64(StateRunning)) {
		return ErrAlreadyRunning
	}
	defer x.state.Store(uint64(StateIdle))

	x.logger.Info().
		Dur(`interval`, x.frameInterval).
		Log(`scheduler: run loop started`)

	ticker := time.NewTicker(x.frameInterval)
	defer ticker.Stop()

	for {
		var tick <-chan time.Time
		if x.loopEnabled {
			tick = ticker.C
		}

		select {
		case <-ctx.Done():
			x.logger.Info().
				Uint64(`frame`, x.currentFrame).
				Log(`scheduler: run loop stopped`)
			return ctx.Err()

		case <-x.wake:
			x.runIngress()

		case <-tick:
			if x.options.RunLoop {
				x.Step()
			} else {
				x.loopEnabled = false
				x.state.CompareAndSwap(uint64(StateRunning), uint64(StatePaused))
				x.logger.Info().
					Uint64(`frame`, x.currentFrame).
					Log(`scheduler: run loop paused`)
			}
		}
	}
}

// State returns the state of the run loop. It is safe to call from any
// goroutine.
func (x *Scheduler) State() LoopState {
	return LoopState(x.state.Load())
}

// Submit queues fn to run on the goroutine driving Run, between steps. It is
// safe to call from any goroutine. Functions submitted while Run is not
// active run once it starts.
func (x *Scheduler) Submit(fn func()) {
	if fn == nil {
		return
	}
	x.ingressMu.Lock()
	x.ingress = append(x.ingress, fn)
	x.ingressMu.Unlock()
	select {
	case x.wake <- struct{}{}:
	default:
	}
}

func (x *Scheduler) runIngress() {
	x.ingressMu.Lock()
	tasks := x.ingress
	x.ingress = nil
	x.ingressMu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}
