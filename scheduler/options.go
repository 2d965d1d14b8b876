// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/logiface"
)

// Flusher applies batched document writes, e.g. [dombuf.Buffer].
type Flusher interface {
	FlushUpdates()
}

// schedulerOptions holds configuration options for Scheduler creation.
type schedulerOptions struct {
	logger             *logiface.Logger[logiface.Event]
	host               *dom.Document
	flusher            Flusher
	now                func() time.Time
	options            Options
	thresholds         Thresholds
	deferBudget        time.Duration
	frameInterval      time.Duration
	slowFrameThreshold time.Duration
	metricsEnabled     bool
}

// Option configures a Scheduler instance.
type Option interface {
	applyScheduler(*schedulerOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applySchedulerFunc func(*schedulerOptions) error
}

func (o *optionImpl) applyScheduler(opts *schedulerOptions) error {
	return o.applySchedulerFunc(opts)
}

// WithLogger configures structured logging. A nil logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithHost configures the host document, which enables forwarding of native
// events via On, resize handling, DisableTouchMove, and Mount.
func WithHost(doc *dom.Document) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		opts.host = doc
		return nil
	}}
}

// WithFlusher configures the batched write buffer, flushed once per step.
func WithFlusher(flusher Flusher) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		opts.flusher = flusher
		return nil
	}}
}

// WithClock overrides the time source, which defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		if now == nil {
			return errors.New(`scheduler: nil clock`)
		}
		opts.now = now
		return nil
	}}
}

// WithOptions sets the initial Options, which default to DefaultOptions.
func WithOptions(options Options) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		if err := options.validate(); err != nil {
			return err
		}
		opts.options = options
		return nil
	}}
}

// WithThresholds sets the priority thresholds, which default to
// DefaultThresholds.
func WithThresholds(thresholds Thresholds) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		opts.thresholds = thresholds
		return nil
	}}
}

// WithDeferBudget sets the time, measured from the start of a step, after
// which no more deferred callbacks are started, defaulting to 10ms.
func WithDeferBudget(budget time.Duration) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		if budget < 0 {
			return fmt.Errorf(`scheduler: invalid defer budget: %s`, budget)
		}
		opts.deferBudget = budget
		return nil
	}}
}

// WithFrameInterval sets the interval between steps, when using Run,
// defaulting to 16ms.
func WithFrameInterval(interval time.Duration) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		if interval <= 0 {
			return fmt.Errorf(`scheduler: invalid frame interval: %s`, interval)
		}
		opts.frameInterval = interval
		return nil
	}}
}

// WithSlowFrameThreshold sets the frame time delta at or above which a
// (rate limited) warning is logged, defaulting to 250ms. Zero disables the
// warning.
func WithSlowFrameThreshold(threshold time.Duration) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		if threshold < 0 {
			return fmt.Errorf(`scheduler: invalid slow frame threshold: %s`, threshold)
		}
		opts.slowFrameThreshold = threshold
		return nil
	}}
}

// WithMetrics enables frame metrics collection, see [Scheduler.Metrics].
func WithMetrics(enabled bool) Option {
	return &optionImpl{func(opts *schedulerOptions) error {
		opts.metricsEnabled = enabled
		return nil
	}}
}

// resolveOptions applies Option instances to schedulerOptions.
func resolveOptions(opts []Option) (*schedulerOptions, error) {
	cfg := &schedulerOptions{
		now:                time.Now,
		options:            DefaultOptions(),
		thresholds:         DefaultThresholds(),
		deferBudget:        10 * time.Millisecond,
		frameInterval:      16 * time.Millisecond,
		slowFrameThreshold: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyScheduler(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
