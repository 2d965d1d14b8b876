// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package scheduler implements the frame scheduler, which drives the render
// roots, once per frame.
//
// Each [Scheduler.Step]:
//
//  1. advances the frame counter, and throttles (returns early) if a frame
//     rate cap is configured and the elapsed time is under the frame floor
//  2. resolves the [Priority] of the frame, from the elapsed time
//  3. emits [EventPrerender]
//  4. runs the next-tick callbacks queued before the step began
//  5. runs deferred callbacks, until the defer budget is spent
//  6. updates every registered [Root], in registration order
//  7. flushes the batched write buffer
//  8. emits [EventPostrender]
//  9. steps once more, if [Scheduler.DoubleStep] was called
//
// There is exactly one goroutine driving a Scheduler, normally the one
// calling [Scheduler.Run]. Panics raised by listeners, callbacks, or roots
// are not recovered, and abort the step.
package scheduler
