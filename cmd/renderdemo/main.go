// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Command renderdemo mounts a few surfaces on a headless document, drives
// the frame scheduler, then prints the resulting markup.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/joeycumines/go-renderloop/scheduler"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"golang.org/x/sync/errgroup"
)

const version = `0.1.0`

const usage = `Render loop demo.

Mounts a counter, some markup, and an input, on a headless document, steps
the frame scheduler, then prints the document.

Usage:
    renderdemo [--config=<path>] [--frames=<n>] [--fps=<cap>] [--log-level=<level>] [--run=<duration>]
    renderdemo -h | --help
    renderdemo --version

Options:
    -h --help              Show this screen.
    --version              Show version.
    --config=<path>        YAML scheduler options file.
    --frames=<n>           Number of simulated frames to step [default: 60].
    --fps=<cap>            Frame rate cap, overrides the config file.
    --log-level=<level>    One of emerg, alert, crit, err, warning, notice, info, debug, trace [default: info].
    --run=<duration>       Drive the real time loop for this long, instead of stepping simulated frames.`

type config struct {
	options scheduler.Options
	frames  int
	runFor  time.Duration
	level   logiface.Level
}

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		panic(err)
	}

	cfg, err := parseConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, `renderdemo:`, err)
		os.Exit(2)
	}

	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
		stumpy.L.WithLevel(cfg.level),
	).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Err().
			Err(err).
			Log(`renderdemo: failed`)
		os.Exit(1)
	}
}

func parseConfig(opts docopt.Opts) (cfg config, err error) {
	cfg.options = scheduler.DefaultOptions()
	if path, _ := opts.String(`--config`); path != `` {
		cfg.options, err = loadOptionsFile(path)
		if err != nil {
			return
		}
	}

	if cfg.frames, err = opts.Int(`--frames`); err != nil {
		return cfg, fmt.Errorf(`invalid --frames: %w`, err)
	}
	if cfg.frames < 0 {
		return cfg, fmt.Errorf(`invalid --frames: %d`, cfg.frames)
	}

	if s, _ := opts.String(`--fps`); s != `` {
		if cfg.options.FPSCap, err = opts.Float64(`--fps`); err != nil {
			return cfg, fmt.Errorf(`invalid --fps: %w`, err)
		}
	}

	if s, _ := opts.String(`--run`); s != `` {
		if cfg.runFor, err = time.ParseDuration(s); err != nil {
			return cfg, fmt.Errorf(`invalid --run: %w`, err)
		}
	}

	s, _ := opts.String(`--log-level`)
	if cfg.level, err = parseLevel(s); err != nil {
		return
	}

	return cfg, nil
}

func loadOptionsFile(path string) (scheduler.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return scheduler.Options{}, err
	}
	defer f.Close()
	options, err := scheduler.LoadOptions(f)
	if err != nil {
		return scheduler.Options{}, fmt.Errorf(`%s: %w`, path, err)
	}
	return options, nil
}

func parseLevel(s string) (logiface.Level, error) {
	for level := logiface.LevelEmergency; level <= logiface.LevelTrace; level++ {
		if level.String() == s {
			return level, nil
		}
	}
	return logiface.LevelDisabled, fmt.Errorf(`invalid --log-level: %q`, s)
}

// run builds the demo, and drives it, either for cfg.frames simulated
// frames, or in real time for cfg.runFor, writing the document to w.
func run(ctx context.Context, cfg config, w io.Writer, logger *logiface.Logger[logiface.Event]) error {
	var clock *simClock
	if cfg.runFor <= 0 {
		clock = &simClock{now: time.Unix(0, 0)}
	}

	d, err := newDemo(cfg.options, clock, logger)
	if err != nil {
		return err
	}

	if clock != nil {
		for range cfg.frames {
			clock.advance(frameInterval)
			d.sched.Step()
		}
	} else if err := d.runFor(ctx, cfg.runFor); err != nil {
		return err
	}

	d.clickGreeting()
	// one more frame, to commit anything the click changed
	if clock != nil {
		clock.advance(frameInterval)
	}
	d.sched.Step()

	stats := d.sched.Metrics().Stats()
	logger.Info().
		Uint64(`frames`, stats.Frames).
		Uint64(`throttled`, stats.Throttled).
		Uint64(`slow`, stats.Slow).
		Dur(`p50`, stats.P50).
		Dur(`max`, stats.Max).
		Int(`clicks`, d.clicks).
		Int(`outside`, d.outside).
		Log(`renderdemo: done`)

	_, err = fmt.Fprintln(w, d.doc.DocumentElement().OuterHTML())
	return err
}

// runFor drives the real time loop for duration, clicking the greeting
// periodically, from another goroutine, via Submit.
func (x *demo) runFor(ctx context.Context, duration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return x.sched.Run(ctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(clickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				x.sched.Submit(x.clickGreeting)
			}
		}
	})

	if err := g.Wait(); err != nil &&
		!errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// simClock is a manually advanced clock, for deterministic stepping.
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time { return c.now }

func (c *simClock) advance(d time.Duration) { c.now = c.now.Add(d) }
