// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package router implements delegated dispatch of native document events.
//
// Rather than attaching one listener per element, a [Router] installs at
// most one passive listener per event type on the document, and routes each
// native event by the routing identifier ([IDAttribute]) carried by its
// target. Two channels exist per event type:
//
//   - inclusion, keyed by identifier, notifying only the owner
//   - exclusion, notifying every "all others" subscriber, which filter out
//     events targeting their own identifier (e.g. outside click dismissal)
//
// A few event types don't usefully delegate (focus, blur, submit, etc), and
// are attached directly to the element instead.
package router
