// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package channel implements the publish/subscribe primitive used by the
// rest of the renderer: named event types, ordered listeners, self-removing
// "once" listeners that resolve a [Thenable], and a rebindable owner.
//
// Listener panics are never recovered.
package channel
