// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dom

// Listener is a callback registered via AddEventListener.
type Listener func(event *Event)

// ListenerID identifies a registered listener, for removal. Go function
// values cannot be compared, so every registration is assigned an ID, unique
// within a Document.
type ListenerID uint64

// ListenerOptions mirrors the subset of the DOM addEventListener options
// that influence dispatch.
type ListenerOptions struct {
	// Capture registers the listener for the capture phase.
	Capture bool
	// Passive listeners cannot cancel the event (PreventDefault is ignored).
	Passive bool
}

type listenerEntry struct { //nolint:govet // betteralign:ignore
	id       ListenerID
	listener Listener
	capture  bool
	passive  bool
}

// eventTarget is the listener registry shared by Element and Document.
type eventTarget struct {
	listeners map[string][]listenerEntry
}

// Event is a native event, dispatched by [Document.Dispatch].
//
// Event is NOT safe for concurrent access.
type Event struct { //nolint:govet // betteralign:ignore
	// Type is the name of the event (e.g., "click", "resize").
	Type string

	// Target is the element the event was dispatched at, nil for events
	// dispatched at the document itself.
	Target *Element

	// CurrentTarget is the element whose listeners are currently running,
	// nil while the document's own listeners run.
	CurrentTarget *Element

	// Detail holds arbitrary, caller supplied data.
	Detail any

	// Bubbles indicates whether the event propagates to ancestors.
	Bubbles bool

	// Cancelable indicates whether PreventDefault has any effect.
	Cancelable bool

	// DefaultPrevented is true if a non-passive listener called PreventDefault.
	DefaultPrevented bool

	propagationStopped          bool
	immediatePropagationStopped bool
	inPassiveListener           bool
}

// NewEvent returns a bubbling, cancelable event, the common case for input
// events (click, keydown, etc).
func NewEvent(eventType string) *Event {
	return &Event{
		Type:       eventType,
		Bubbles:    true,
		Cancelable: true,
	}
}

// PreventDefault marks the event as having its default action canceled,
// unless the event is not cancelable, or the running listener is passive.
func (e *Event) PreventDefault() {
	if e.Cancelable && !e.inPassiveListener {
		e.DefaultPrevented = true
	}
}

// StopPropagation prevents the event reaching further targets. Remaining
// listeners on the current target still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation prevents any further listeners from being called.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediatePropagationStopped = true
}

// IsPropagationStopped reports whether StopPropagation or
// StopImmediatePropagation was called.
func (e *Event) IsPropagationStopped() bool {
	return e.propagationStopped
}

func (x *eventTarget) add(doc *Document, eventType string, listener Listener, opts ListenerOptions) ListenerID {
	if listener == nil {
		return 0
	}
	if x.listeners == nil {
		x.listeners = make(map[string][]listenerEntry)
	}
	doc.nextListenerID++
	id := doc.nextListenerID
	x.listeners[eventType] = append(x.listeners[eventType], listenerEntry{
		id:       id,
		listener: listener,
		capture:  opts.Capture,
		passive:  opts.Passive,
	})
	return id
}

func (x *eventTarget) remove(eventType string, id ListenerID) bool {
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

func (x *eventTarget) count(eventType string) int {
	return len(x.listeners[eventType])
}

// invoke runs the listeners for the given phase, returning false if
// immediate propagation was stopped. Panics propagate to the caller.
func (x *eventTarget) invoke(event *Event, capture bool, target bool) bool {
	// copy, so listeners may add/remove listeners while dispatching
	entries := append([]listenerEntry(nil), x.listeners[event.Type]...)
	for _, entry := range entries {
		if !target && entry.capture != capture {
			continue
		}
		event.inPassiveListener = entry.passive
		entry.listener(event)
		event.inPassiveListener = false
		if event.immediatePropagationStopped {
			return false
		}
	}
	return true
}
