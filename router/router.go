// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package router

import (
	"errors"

	"github.com/joeycumines/go-renderloop/channel"
	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/dombuf"
	"github.com/joeycumines/logiface"
)

// IDAttribute is the attribute carrying the routing identifier of the
// element's logical owner.
const IDAttribute = `data-arvaid`

var (
	// ErrNotNativeEvent is returned when registering an all-others listener
	// for an event type the document does not support natively.
	ErrNotNativeEvent = errors.New(`router: cannot set an exclusion event on a non-native event`)

	// ErrNilDocument is returned by New if the document is nil.
	ErrNilDocument = errors.New(`router: nil document`)
)

// Callback receives native events routed to a logical owner.
type Callback func(event *dom.Event)

// Router demultiplexes native events, received by a single document level
// listener per event type, to the logical owner identified by the
// IDAttribute of the event target.
//
// Router is not safe for concurrent use.
type Router struct {
	doc          *dom.Document
	buffer       *dombuf.Buffer
	logger       *logiface.Logger[logiface.Event]
	nonDelegable map[string]struct{}
	native       map[string]bool
	installed    map[string]*registration
}

// registration is the state for a single event type.
type registration struct {
	// inclusion is keyed by routing identifier
	inclusion *channel.Channel
	// exclusion is keyed by event type, emitting (identifier, event)
	exclusion *channel.Channel
	listener  dom.ListenerID
}

// handleKind distinguishes the three ways a listener may be registered.
type handleKind int

const (
	handleNone handleKind = iota
	handleDirect
	handleInclusion
	handleExclusion
)

// Handle identifies a registration, for removal. The zero value is valid,
// and identifies nothing.
type Handle struct {
	element   *dom.Element
	eventType string
	id        string
	kind      handleKind
	direct    dom.ListenerID
	listener  channel.ListenerID
}

// Valid reports whether the handle identifies a registration.
func (h Handle) Valid() bool { return h.kind != handleNone }

// Type returns the event type.
func (h Handle) Type() string { return h.eventType }

// Delegated reports whether the registration is routed via the document
// level listener, as opposed to being attached directly to the element.
func (h Handle) Delegated() bool { return h.kind == handleInclusion || h.kind == handleExclusion }

// singleElementEvents don't bubble reliably, or need native single target
// semantics, and are attached directly to the element.
var singleElementEvents = [...]string{
	`submit`, `focus`, `blur`, `load`, `unload`, `change`, `reset`, `scroll`,
}

// touchSingleElementEvents extend singleElementEvents on touch platforms.
var touchSingleElementEvents = [...]string{`click`, `touchstart`, `touchend`}

// New returns a Router for doc.
func New(doc *dom.Document, opts ...Option) (*Router, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	cfg, err := resolveOptions(doc, opts)
	if err != nil {
		return nil, err
	}
	x := &Router{
		doc:          doc,
		buffer:       cfg.buffer,
		logger:       cfg.logger,
		nonDelegable: make(map[string]struct{}, len(singleElementEvents)+len(touchSingleElementEvents)),
		native:       make(map[string]bool),
		installed:    make(map[string]*registration),
	}
	for _, v := range singleElementEvents {
		x.nonDelegable[v] = struct{}{}
	}
	if cfg.touch {
		for _, v := range touchSingleElementEvents {
			x.nonDelegable[v] = struct{}{}
		}
	}
	return x, nil
}

// Document returns the routed document.
func (x *Router) Document() *dom.Document { return x.doc }

// IsNativeEvent reports whether eventType is natively supported by the
// document. The result is memoized per type. The touch events are always
// considered native, to support touch emulation.
func (x *Router) IsNativeEvent(eventType string) bool {
	if v, ok := x.native[eventType]; ok {
		return v
	}
	var v bool
	switch eventType {
	case `touchmove`, `touchstart`, `touchend`:
		v = true
	default:
		v = x.doc.IsEventSupported(eventType)
	}
	x.native[eventType] = v
	return v
}

// IsDelegated reports whether listeners for eventType are routed via the
// document, rather than attached directly to elements.
func (x *Router) IsDelegated(eventType string) bool {
	if !x.IsNativeEvent(eventType) {
		return false
	}
	_, ok := x.nonDelegable[eventType]
	return !ok
}

// NativeListenerInstalled reports whether the document level listener for
// eventType has been installed.
func (x *Router) NativeListenerInstalled(eventType string) bool {
	_, ok := x.installed[eventType]
	return ok
}

// AddEventListener registers callback for events of eventType targeting
// element, on behalf of the owner identified by id. Event types that are not
// native are ignored, returning the zero Handle.
//
// Delegated registrations tag element with IDAttribute (via the write
// buffer, if configured), and install the document level listener for
// eventType, on first use.
func (x *Router) AddEventListener(id string, element *dom.Element, eventType string, callback Callback) Handle {
	if callback == nil || element == nil || !x.IsNativeEvent(eventType) {
		return Handle{}
	}

	if _, ok := x.nonDelegable[eventType]; ok {
		x.logger.Debug().
			Str(`type`, eventType).
			Str(`id`, id).
			Log(`router: attaching non-delegable listener directly`)
		return Handle{
			element:   element,
			eventType: eventType,
			id:        id,
			kind:      handleDirect,
			direct:    element.AddEventListener(eventType, dom.Listener(callback), dom.ListenerOptions{}),
		}
	}

	if x.buffer != nil {
		x.buffer.SetAttribute(element, IDAttribute, id)
	} else {
		element.SetAttribute(IDAttribute, id)
	}

	reg := x.install(eventType)
	return Handle{
		element:   element,
		eventType: eventType,
		id:        id,
		kind:      handleInclusion,
		listener: reg.inclusion.On(id, func(event *channel.Event) {
			callback(event.Arg(0).(*dom.Event))
		}),
	}
}

// RemoveEventListener removes a registration made by AddEventListener.
// Returns false if it was not registered.
func (x *Router) RemoveEventListener(h Handle) bool {
	switch h.kind {
	case handleDirect:
		return h.element.RemoveEventListener(h.eventType, h.direct)
	case handleInclusion:
		if reg := x.installed[h.eventType]; reg != nil {
			return reg.inclusion.RemoveListener(h.id, h.listener)
		}
	}
	return false
}

// AddEventListenerForAllOthers registers callback for every native event of
// eventType, except those targeting an element tagged with id. Untagged
// targets are included.
func (x *Router) AddEventListenerForAllOthers(id string, eventType string, callback Callback) (Handle, error) {
	if !x.IsNativeEvent(eventType) {
		return Handle{}, ErrNotNativeEvent
	}
	if callback == nil {
		return Handle{}, nil
	}
	reg := x.install(eventType)
	return Handle{
		eventType: eventType,
		id:        id,
		kind:      handleExclusion,
		listener: reg.exclusion.On(eventType, func(event *channel.Event) {
			if received, _ := event.Arg(0).(string); received != id {
				callback(event.Arg(1).(*dom.Event))
			}
		}),
	}, nil
}

// RemoveEventListenerForAllOthers removes a registration made by
// AddEventListenerForAllOthers. Returns false if it was not registered.
func (x *Router) RemoveEventListenerForAllOthers(h Handle) bool {
	if h.kind != handleExclusion {
		return false
	}
	if reg := x.installed[h.eventType]; reg != nil {
		return reg.exclusion.RemoveListener(h.eventType, h.listener)
	}
	return false
}

// ListenerCount returns the number of delegated listeners, for eventType,
// as (inclusion listeners for id, all-others listeners).
func (x *Router) ListenerCount(id string, eventType string) (inclusion, exclusion int) {
	if reg := x.installed[eventType]; reg != nil {
		inclusion = reg.inclusion.ListenerCount(id)
		exclusion = reg.exclusion.ListenerCount(eventType)
	}
	return
}

// install registers the document level listener for eventType, once.
func (x *Router) install(eventType string) *registration {
	if reg := x.installed[eventType]; reg != nil {
		return reg
	}
	reg := &registration{
		inclusion: channel.New(x),
		exclusion: channel.New(x),
	}
	reg.listener = x.doc.AddEventListener(eventType, func(event *dom.Event) {
		var received string
		if event.Target != nil {
			received, _ = event.Target.GetAttribute(IDAttribute)
		}
		if received != `` {
			reg.inclusion.Emit(received, event)
		}
		reg.exclusion.Emit(event.Type, received, event)
	}, dom.ListenerOptions{Passive: true})
	x.installed[eventType] = reg
	x.logger.Debug().
		Str(`type`, eventType).
		Log(`router: installed native listener`)
	return reg
}
