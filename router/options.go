// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package router

import (
	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/dombuf"
	"github.com/joeycumines/logiface"
)

// routerOptions holds configuration options for Router creation.
type routerOptions struct {
	logger *logiface.Logger[logiface.Event]
	buffer *dombuf.Buffer
	touch  bool
}

// Option configures a Router instance.
type Option interface {
	applyRouter(*routerOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyRouterFunc func(*routerOptions) error
}

func (o *optionImpl) applyRouter(opts *routerOptions) error {
	return o.applyRouterFunc(opts)
}

// WithLogger configures structured logging. A nil logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *routerOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithBuffer routes identifier tagging through the batched write buffer,
// instead of writing to the element immediately.
func WithBuffer(buffer *dombuf.Buffer) Option {
	return &optionImpl{func(opts *routerOptions) error {
		opts.buffer = buffer
		return nil
	}}
}

// WithTouch overrides whether the platform is touch capable, which
// determines whether click, touchstart, and touchend are attached directly to
// elements. Defaults to [dom.Document.TouchCapable].
func WithTouch(touch bool) Option {
	return &optionImpl{func(opts *routerOptions) error {
		opts.touch = touch
		return nil
	}}
}

// resolveOptions applies Option instances to routerOptions.
func resolveOptions(doc *dom.Document, opts []Option) (*routerOptions, error) {
	cfg := &routerOptions{
		touch: doc.TouchCapable(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRouter(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
