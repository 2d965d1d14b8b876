// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"slices"
	"sync"
	"time"
)

// frameWindowSize is the number of recent frames the percentiles cover,
// roughly four seconds at 60 frames per second.
const frameWindowSize = 240

// queueAlpha is the smoothing factor of the queue depth averages.
const queueAlpha = 0.1

// Metrics tracks frame statistics, see WithMetrics.
//
// Metrics is recorded by the goroutine driving the scheduler, but may be read
// (via Stats) from any goroutine.
type Metrics struct {
	mu sync.Mutex

	// wall time spent within recent accepted steps
	window frameWindow

	// queue depths left at the end of each accepted step
	nextTick depthGauge
	deferred depthGauge

	frames    uint64
	throttled uint64
	slow      uint64
}

// Stats is a point-in-time copy of Metrics. The durations describe the
// wall time spent within each step, over the most recent frames.
type Stats struct {
	Frames    uint64
	Throttled uint64
	// Slow counts accepted frames whose time delta reached the slow frame
	// threshold.
	Slow uint64

	P50  time.Duration
	P90  time.Duration
	P95  time.Duration
	P99  time.Duration
	Max  time.Duration
	Mean time.Duration

	NextTickCurrent int
	NextTickMax     int
	NextTickAvg     float64
	DeferCurrent    int
	DeferMax        int
	DeferAvg        float64
}

func (m *Metrics) recordFrame(duration time.Duration, slow bool, nextTick, deferred int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames++
	if slow {
		m.slow++
	}
	m.window.push(duration)
	m.nextTick.observe(nextTick)
	m.deferred.observe(deferred)
}

func (m *Metrics) recordThrottled() {
	m.mu.Lock()
	m.throttled++
	m.mu.Unlock()
}

// Stats returns a copy of the current metrics.
func (m *Metrics) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Frames:          m.frames,
		Throttled:       m.throttled,
		Slow:            m.slow,
		NextTickCurrent: m.nextTick.current,
		NextTickMax:     m.nextTick.max,
		NextTickAvg:     m.nextTick.avg,
		DeferCurrent:    m.deferred.current,
		DeferMax:        m.deferred.max,
		DeferAvg:        m.deferred.avg,
	}

	if samples := m.window.sorted(); len(samples) != 0 {
		s.P50 = nearestRank(samples, 50)
		s.P90 = nearestRank(samples, 90)
		s.P95 = nearestRank(samples, 95)
		s.P99 = nearestRank(samples, 99)
		s.Max = samples[len(samples)-1]
		s.Mean = m.window.sum / time.Duration(len(samples))
	}

	return s
}

// frameWindow is a ring of the most recent frame durations.
type frameWindow struct {
	samples [frameWindowSize]time.Duration
	sum     time.Duration
	next    int
	full    bool
}

func (w *frameWindow) push(d time.Duration) {
	if w.full {
		w.sum -= w.samples[w.next]
	}
	w.samples[w.next] = d
	w.sum += d
	if w.next++; w.next == frameWindowSize {
		w.next, w.full = 0, true
	}
}

func (w *frameWindow) sorted() []time.Duration {
	n := w.next
	if w.full {
		n = frameWindowSize
	}
	samples := slices.Clone(w.samples[:n])
	slices.Sort(samples)
	return samples
}

// nearestRank returns the smallest sample such that at least p percent of
// samples are less than or equal to it. The samples must be sorted.
func nearestRank(samples []time.Duration, p int) time.Duration {
	rank := (p*len(samples) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return samples[rank-1]
}

// depthGauge tracks the last, highest, and smoothed depth of a queue. The
// average starts at the first observation.
type depthGauge struct {
	current int
	max     int
	avg     float64
	seen    bool
}

func (g *depthGauge) observe(depth int) {
	g.current = depth
	g.max = max(g.max, depth)
	if !g.seen {
		g.avg, g.seen = float64(depth), true
		return
	}
	g.avg += queueAlpha * (float64(depth) - g.avg)
}
