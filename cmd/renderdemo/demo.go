// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package main

import (
	"fmt"
	"time"

	"github.com/joeycumines/go-renderloop/alloc"
	"github.com/joeycumines/go-renderloop/channel"
	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/dombuf"
	"github.com/joeycumines/go-renderloop/router"
	"github.com/joeycumines/go-renderloop/scheduler"
	"github.com/joeycumines/go-renderloop/surface"
	"github.com/joeycumines/logiface"
)

const (
	frameInterval = 16 * time.Millisecond
	clickInterval = 50 * time.Millisecond
)

// viewport is the size reported for the mounted container, as there is no
// layout engine to measure it.
var viewport = [2]float64{320, 240}

type demo struct {
	logger   *logiface.Logger[logiface.Event]
	doc      *dom.Document
	sched    *scheduler.Scheduler
	root     *demoRoot
	counter  *surface.Surface
	greeting *surface.Surface
	input    *surface.InputSurface
	clicks   int
	outside  int
}

// demoRoot commits its renderables, in order, once per frame.
type demoRoot struct {
	container   *dom.Element
	allocator   *alloc.ElementAllocator
	renderables []surface.Renderable
	size        [2]float64
}

func (x *demoRoot) Update() {
	ctx := surface.CommitContext{Allocator: x.allocator, Size: x.size}
	for _, r := range x.renderables {
		r.Commit(ctx)
	}
}

func (x *demoRoot) Emit(eventType string) {
	if eventType == scheduler.EventResize {
		x.size = [2]float64{x.container.OffsetWidth(), x.container.OffsetHeight()}
	}
}

func newDemo(options scheduler.Options, clock *simClock, logger *logiface.Logger[logiface.Event]) (*demo, error) {
	d := &demo{logger: logger, doc: dom.NewDocument()}

	buffer, err := dombuf.New(dombuf.WithLogger(logger), dombuf.WithCapacity(64))
	if err != nil {
		return nil, err
	}

	r, err := router.New(d.doc, router.WithBuffer(buffer), router.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	schedulerOpts := []scheduler.Option{
		scheduler.WithLogger(logger),
		scheduler.WithHost(d.doc),
		scheduler.WithFlusher(buffer),
		scheduler.WithOptions(options),
		scheduler.WithFrameInterval(frameInterval),
		scheduler.WithMetrics(true),
	}
	if clock != nil {
		schedulerOpts = append(schedulerOpts, scheduler.WithClock(clock.Now))
	}
	if d.sched, err = scheduler.New(schedulerOpts...); err != nil {
		return nil, err
	}

	d.root = new(demoRoot)
	if d.root.container, err = d.sched.Mount(d.root); err != nil {
		return nil, err
	}
	d.root.container.SetOffsetSize(viewport[0], viewport[1])
	d.root.allocator = alloc.New(d.root.container)

	rt := surface.Runtime{Buffer: buffer, Router: r, Logger: logger}

	if d.counter, err = surface.New(rt, `counter`, surface.Options{
		Classes: []string{`counter`},
		Size:    &surface.Size{surface.Measured(), surface.Px(24)},
	}); err != nil {
		return nil, err
	}

	if d.greeting, err = surface.New(rt, `greeting`, surface.Options{
		Content:    surface.Text(`<p>hello <b>world</b></p>`),
		Properties: map[string]string{`color`: `teal`},
		Attributes: map[string]string{`role`: `banner`},
	}); err != nil {
		return nil, err
	}
	d.greeting.On(`click`, func(e *channel.Event) {
		d.clicks++
		d.greeting.ToggleClass(`clicked`)
		if event, ok := e.Arg(0).(*dom.Event); ok {
			logger.Info().
				Str(`target`, event.Target.TagName()).
				Log(`renderdemo: greeting clicked`)
		}
	})

	placeholder := `type here`
	if d.input, err = surface.NewInput(rt, `name`, surface.Options{
		Input: &surface.InputOptions{Placeholder: &placeholder},
	}); err != nil {
		return nil, err
	}

	if _, err := r.AddEventListenerForAllOthers(d.input.ID(), `click`, func(*dom.Event) {
		d.outside++
	}); err != nil {
		return nil, err
	}

	d.root.renderables = []surface.Renderable{d.counter, d.greeting, d.input}

	d.sched.On(scheduler.EventPrerender, func(*channel.Event) {
		d.counter.SetContent(surface.Text(fmt.Sprintf(`frame %d`, d.sched.CurrentFrame())))
	})

	return d, nil
}

// clickGreeting dispatches a click at the bold text within the greeting.
func (x *demo) clickGreeting() {
	target := x.greeting.Target()
	if target == nil {
		return
	}
	target.Walk(func(node *dom.Element) bool {
		if node.TagName() == `B` {
			target = node
			return false
		}
		return true
	})
	x.doc.Dispatch(target, dom.NewEvent(`click`))
}
