// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package channel

import (
	"reflect"
)

// Event is passed to every listener, by [Channel.Emit].
type Event struct {
	// Owner is the channel's owner at the time of the emit, see
	// [Channel.BindThis].
	Owner any

	// Type is the emitted event type.
	Type string

	// Args are the emitted arguments, in order.
	Args []any
}

// Arg returns the i-th argument, or nil if out of range.
func (e *Event) Arg(i int) any {
	if i < 0 || i >= len(e.Args) {
		return nil
	}
	return e.Args[i]
}

// Listener is implemented by values that may be registered via
// [Channel.AddListener]. Listeners that are comparable are deduplicated, per
// event type.
type Listener interface {
	HandleEvent(event *Event)
}

// Handler is a func adapter for Listener. Func values are not comparable, so
// every registration of a Handler is distinct, and is removed by the
// ListenerID returned by [Channel.On].
type Handler func(event *Event)

// HandleEvent calls h(event).
func (h Handler) HandleEvent(event *Event) { h(event) }

// ListenerID identifies a registration, for removal.
type ListenerID uint64

type listenerEntry struct {
	listener Listener
	id       ListenerID
}

// Channel is a publish/subscribe primitive, mapping event type names to
// ordered lists of listeners. Listeners are called synchronously, in
// registration order. A panicking listener aborts the remaining listeners
// for that emit, and propagates to the caller of Emit.
//
// The zero value is ready to use, with a nil owner. Channel is not safe for
// concurrent use.
type Channel struct {
	listeners map[string][]listenerEntry
	owner     any
	nextID    ListenerID
}

// New returns a Channel bound to owner, see [Channel.BindThis].
func New(owner any) *Channel {
	return &Channel{owner: owner}
}

// BindThis changes the owner passed to listeners, as [Event.Owner], for
// future emits only.
func (x *Channel) BindThis(owner any) {
	x.owner = owner
}

// Owner returns the current owner.
func (x *Channel) Owner() any {
	return x.owner
}

// On registers handler for eventType. A nil handler is ignored, returning
// 0.
func (x *Channel) On(eventType string, handler Handler) ListenerID {
	if handler == nil {
		return 0
	}
	return x.AddListener(eventType, handler)
}

// AddListener registers listener for eventType. If listener is comparable
// and already registered for eventType, the existing ListenerID is returned,
// and the listener is not added again.
func (x *Channel) AddListener(eventType string, listener Listener) ListenerID {
	if listener == nil {
		return 0
	}
	if isComparable(listener) {
		for _, entry := range x.listeners[eventType] {
			if isComparable(entry.listener) && entry.listener == listener {
				return entry.id
			}
		}
	}
	if x.listeners == nil {
		x.listeners = make(map[string][]listenerEntry)
	}
	x.nextID++
	x.listeners[eventType] = append(x.listeners[eventType], listenerEntry{
		listener: listener,
		id:       x.nextID,
	})
	return x.nextID
}

// RemoveListener removes a registration by ID. Unknown IDs are ignored.
func (x *Channel) RemoveListener(eventType string, id ListenerID) bool {
	entries := x.listeners[eventType]
	for i, entry := range entries {
		if entry.id == id {
			x.listeners[eventType] = append(entries[:i:i], entries[i+1:]...)
			if len(x.listeners[eventType]) == 0 {
				delete(x.listeners, eventType)
			}
			return true
		}
	}
	return false
}

// Remove removes a comparable listener. Listeners that are not comparable,
// or not registered, are ignored.
func (x *Channel) Remove(eventType string, listener Listener) bool {
	if listener == nil || !isComparable(listener) {
		return false
	}
	for _, entry := range x.listeners[eventType] {
		if isComparable(entry.listener) && entry.listener == listener {
			return x.RemoveListener(eventType, entry.id)
		}
	}
	return false
}

// ReplaceListeners removes every listener for eventType, then registers
// handler.
func (x *Channel) ReplaceListeners(eventType string, handler Handler) ListenerID {
	delete(x.listeners, eventType)
	return x.On(eventType, handler)
}

// ListenerCount returns the number of listeners for eventType.
func (x *Channel) ListenerCount(eventType string) int {
	return len(x.listeners[eventType])
}

// Emit calls every listener registered for eventType, in order. Listeners
// added or removed during the emit do not affect it. Emitting an event type
// with no listeners is a no-op.
func (x *Channel) Emit(eventType string, args ...any) *Channel {
	entries := x.listeners[eventType]
	if len(entries) == 0 {
		return x
	}
	entries = append([]listenerEntry(nil), entries...)
	event := &Event{Owner: x.owner, Type: eventType, Args: args}
	for _, entry := range entries {
		entry.listener.HandleEvent(event)
	}
	return x
}

// isComparable reports whether == on v cannot panic, which depends on the
// dynamic values held by any interface fields, not just the type.
func isComparable(v any) bool {
	return reflect.ValueOf(v).Comparable()
}
