// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dombuf

import (
	"github.com/joeycumines/logiface"
)

// bufferOptions holds configuration options for Buffer creation.
type bufferOptions struct {
	logger   *logiface.Logger[logiface.Event]
	capacity int
}

// Option configures a Buffer instance.
type Option interface {
	applyBuffer(*bufferOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyBufferFunc func(*bufferOptions) error
}

func (o *optionImpl) applyBuffer(opts *bufferOptions) error {
	return o.applyBufferFunc(opts)
}

// WithLogger configures the logger used to report failed writes. A nil
// logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *bufferOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithCapacity preallocates room for n queued operations, after New and
// after every flush. Negative values are rejected with ErrInvalidCapacity.
func WithCapacity(n int) Option {
	return &optionImpl{func(opts *bufferOptions) error {
		if n < 0 {
			return ErrInvalidCapacity
		}
		opts.capacity = n
		return nil
	}}
}

// resolveOptions applies Option instances to bufferOptions.
func resolveOptions(opts []Option) (*bufferOptions, error) {
	cfg := &bufferOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyBuffer(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
