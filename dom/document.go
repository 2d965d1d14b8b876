// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dom

import (
	"strings"
)

// Document is a headless document, the root of an element tree, and the
// "window" level event target.
//
// Document is not safe for concurrent use. All access is expected to occur
// on the goroutine driving the render loop.
type Document struct {
	eventTarget

	root           *Element
	body           *Element
	active         *Element
	supported      map[string]struct{}
	nextListenerID ListenerID
	touch          bool
}

// DocumentOption configures a Document, see NewDocument.
type DocumentOption interface {
	applyDocument(*documentConfig)
}

type documentConfig struct {
	extraEvents []string
	touch       bool
}

// documentOptionImpl implements DocumentOption.
type documentOptionImpl struct {
	applyDocumentFunc func(*documentConfig)
}

func (o *documentOptionImpl) applyDocument(c *documentConfig) {
	o.applyDocumentFunc(c)
}

// WithTouch marks the document as running on a touch-capable platform,
// which enables the touch event handlers.
func WithTouch(touch bool) DocumentOption {
	return &documentOptionImpl{func(c *documentConfig) {
		c.touch = touch
	}}
}

// WithSupportedEvents adds to the set of event types that have an "on"
// handler property, see [Document.IsEventSupported].
func WithSupportedEvents(eventTypes ...string) DocumentOption {
	return &documentOptionImpl{func(c *documentConfig) {
		c.extraEvents = append(c.extraEvents, eventTypes...)
	}}
}

// resolveDocumentOptions applies DocumentOption instances, skipping nil.
func resolveDocumentOptions(opts []DocumentOption) *documentConfig {
	c := &documentConfig{}
	for _, o := range opts {
		if o != nil {
			o.applyDocument(c)
		}
	}
	return c
}

// handlerEvents are the event types with an on<type> property on the body.
var handlerEvents = [...]string{
	`abort`, `blur`, `change`, `click`, `contextmenu`, `dblclick`, `drag`,
	`dragend`, `dragenter`, `dragleave`, `dragover`, `dragstart`, `drop`,
	`error`, `focus`, `input`, `keydown`, `keypress`, `keyup`, `load`,
	`mousedown`, `mouseenter`, `mouseleave`, `mousemove`, `mouseout`,
	`mouseover`, `mouseup`, `pointercancel`, `pointerdown`, `pointerenter`,
	`pointerleave`, `pointermove`, `pointerout`, `pointerover`, `pointerup`,
	`reset`, `resize`, `scroll`, `select`, `submit`, `unload`, `wheel`,
}

var touchEvents = [...]string{`touchcancel`, `touchend`, `touchmove`, `touchstart`}

// NewDocument returns a document with an html root element and a body.
func NewDocument(options ...DocumentOption) *Document {
	c := resolveDocumentOptions(options)

	doc := &Document{
		supported: make(map[string]struct{}, len(handlerEvents)+len(touchEvents)+len(c.extraEvents)),
		touch:     c.touch,
	}
	for _, v := range handlerEvents {
		doc.supported[v] = struct{}{}
	}
	if c.touch {
		for _, v := range touchEvents {
			doc.supported[v] = struct{}{}
		}
	}
	for _, v := range c.extraEvents {
		doc.supported[v] = struct{}{}
	}

	doc.root = doc.CreateElement(`html`)
	doc.body = doc.CreateElement(`body`)
	doc.root.AppendChild(doc.body)

	return doc
}

// CreateElement returns a new, detached element.
func (x *Document) CreateElement(tag string) *Element {
	return &Element{
		doc:      x,
		nodeType: ElementNode,
		tag:      strings.ToLower(tag),
	}
}

// CreateTextNode returns a new, detached text node.
func (x *Document) CreateTextNode(text string) *Element {
	return &Element{
		doc:      x,
		nodeType: TextNode,
		text:     text,
	}
}

// CreateDocumentFragment returns a new, empty fragment.
func (x *Document) CreateDocumentFragment() *Element {
	return &Element{
		doc:      x,
		nodeType: FragmentNode,
	}
}

// DocumentElement returns the html element.
func (x *Document) DocumentElement() *Element { return x.root }

// Body returns the body element.
func (x *Document) Body() *Element { return x.body }

// ActiveElement returns the focused element, or nil.
func (x *Document) ActiveElement() *Element { return x.active }

// TouchCapable reports whether the document was configured WithTouch.
func (x *Document) TouchCapable() bool { return x.touch }

// IsEventSupported reports whether the body has an "on" handler property
// for the event type, i.e. whether it is a native event.
func (x *Document) IsEventSupported(eventType string) bool {
	_, ok := x.supported[eventType]
	return ok
}

// AddEventListener registers a document (window) level listener.
func (x *Document) AddEventListener(eventType string, listener Listener, opts ListenerOptions) ListenerID {
	return x.add(x, eventType, listener, opts)
}

// RemoveEventListener removes a document level listener by ID.
func (x *Document) RemoveEventListener(eventType string, id ListenerID) bool {
	return x.remove(eventType, id)
}

// ListenerCount returns the number of document level listeners for
// eventType.
func (x *Document) ListenerCount(eventType string) int {
	return x.count(eventType)
}

// Dispatch dispatches event at target, which may be nil to dispatch at the
// document only. Propagation follows the DOM model: capture listeners from
// the document down to the target's parent, all listeners on the target,
// then (for bubbling events) non-capture listeners from the parent up to the
// document. Panics raised by listeners propagate to the caller.
//
// Returns false if the default action was prevented.
func (x *Document) Dispatch(target *Element, event *Event) bool {
	if event == nil {
		return true
	}
	event.Target = target

	var path []*Element // target's ancestors, nearest first
	if target != nil {
		for node := target.parent; node != nil; node = node.parent {
			path = append(path, node)
		}
	}

	// capture
	event.CurrentTarget = nil
	if !x.invoke(event, true, false) || event.propagationStopped {
		return !event.DefaultPrevented
	}
	for i := len(path) - 1; i >= 0; i-- {
		event.CurrentTarget = path[i]
		if !path[i].invoke(event, true, false) || event.propagationStopped {
			return !event.DefaultPrevented
		}
	}

	// target
	if target != nil {
		event.CurrentTarget = target
		if !target.invoke(event, false, true) || event.propagationStopped {
			return !event.DefaultPrevented
		}
	}

	// bubble
	if event.Bubbles || target == nil {
		for _, node := range path {
			event.CurrentTarget = node
			if !node.invoke(event, false, false) || event.propagationStopped {
				return !event.DefaultPrevented
			}
		}
		event.CurrentTarget = nil
		x.invoke(event, false, false)
	}

	return !event.DefaultPrevented
}
