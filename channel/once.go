// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package channel

// Thenable is the result of [Channel.Once]. It resolves, at most once, with
// the first argument of the first matching emit.
type Thenable struct {
	value     any
	callbacks []func(value any)
	resolved  bool
}

// Then registers fn to be called with the resolved value. If already
// resolved, fn is called immediately, with the cached value. Returns x, for
// chaining.
func (x *Thenable) Then(fn func(value any)) *Thenable {
	if fn == nil {
		return x
	}
	if x.resolved {
		fn(x.value)
	} else {
		x.callbacks = append(x.callbacks, fn)
	}
	return x
}

// Resolved reports whether the thenable has resolved, and with what value.
func (x *Thenable) Resolved() (value any, ok bool) {
	return x.value, x.resolved
}

func (x *Thenable) resolve(value any) {
	if x.resolved {
		return
	}
	x.value, x.resolved = value, true
	callbacks := x.callbacks
	x.callbacks = nil
	for _, fn := range callbacks {
		fn(value)
	}
}

// Once registers a listener that removes itself before the first matching
// emit calls handler (which may be nil). The returned Thenable resolves after
// handler returns.
func (x *Channel) Once(eventType string, handler Handler) *Thenable {
	var (
		t  Thenable
		id ListenerID
	)
	id = x.On(eventType, func(event *Event) {
		x.RemoveListener(eventType, id)
		if handler != nil {
			handler(event)
		}
		t.resolve(event.Arg(0))
	})
	return &t
}
