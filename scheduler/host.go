// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"github.com/joeycumines/go-renderloop/dom"
)

// Host returns the host document, or nil.
func (x *Scheduler) Host() *dom.Document {
	return x.host
}

// HandleResize emits EventResize on every registered root, then on the
// scheduler's channel. It is called automatically when the host document
// receives a resize event.
func (x *Scheduler) HandleResize() {
	for i := 0; i < len(x.contexts); i++ {
		x.contexts[i].Emit(EventResize)
	}
	x.events.Emit(EventResize)
}

// DisableTouchMove installs a capture phase touchmove listener on the host,
// which prevents the default action (scrolling) unless the target is a
// textarea. Subsequent calls are no-ops.
func (x *Scheduler) DisableTouchMove() error {
	if x.host == nil {
		return ErrNoHost
	}
	if !x.touchMoveEnabled {
		return nil
	}
	x.host.AddEventListener(`touchmove`, func(event *dom.Event) {
		if event.Target != nil && event.Target.TagName() == `TEXTAREA` {
			return
		}
		event.PreventDefault()
	}, dom.ListenerOptions{Capture: true})
	x.touchMoveEnabled = false
	return nil
}

// TouchMoveEnabled reports whether DisableTouchMove has not been called.
func (x *Scheduler) TouchMoveEnabled() bool {
	return x.touchMoveEnabled
}

// Mount registers root, and returns a new, detached container element, per
// the ContainerType and ContainerClass options. On the next step, the
// container is appended to the host body, then root is notified of
// EventResize. In app mode, the first Mount also schedules adding RootClass
// to the host body and html elements.
func (x *Scheduler) Mount(root Root) (*dom.Element, error) {
	if x.host == nil {
		return nil, ErrNoHost
	}
	if err := x.RegisterContext(root); err != nil {
		return nil, err
	}

	x.priority, x.priorityValue = Critical, x.thresholds.Critical

	if x.options.AppMode && !x.rootClassesAdded {
		x.rootClassesAdded = true
		x.NextTick(func(uint64) {
			x.host.Body().ClassList().Add(RootClass)
			x.host.DocumentElement().ClassList().Add(RootClass)
		})
	}

	el := x.host.CreateElement(x.options.ContainerType)
	el.ClassList().Add(x.options.ContainerClass)

	x.NextTick(func(uint64) {
		x.host.Body().AppendChild(el)
		root.Emit(EventResize)
	})

	return el, nil
}
