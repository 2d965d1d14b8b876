// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/go-renderloop/channel"
	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/logiface"
)

// Event types emitted by the scheduler.
const (
	EventPrerender  = `prerender`
	EventPostrender = `postrender`
	EventResize     = `resize`
)

// Root is a render root, driven once per step.
//
// Roots are compared for (de)registration, and must be comparable, e.g.
// pointers.
type Root interface {
	// Update is called once per step, in registration order.
	Update()
	// Emit notifies the root of an event, at minimum EventResize.
	Emit(eventType string)
}

// Scheduler is the frame scheduler, see the package docs.
//
// With the exception of Submit, Metrics, and State, methods must only be
// called from the goroutine driving the scheduler: while Run is active, that
// means from callbacks, listeners, roots, or functions passed to Submit.
type Scheduler struct {
	logger     *logiface.Logger[logiface.Event]
	host       *dom.Document
	flusher    Flusher
	now        func() time.Time
	metrics    *Metrics
	slowFrames *catrate.Limiter
	events     *channel.Channel
	wake       chan struct{}

	forwarders   map[string]dom.ListenerID
	restrictions map[string]Priority

	contexts      []Root
	nextTickQueue []func(frame uint64)
	deferQueue    []func()
	ingress       []func()

	lastTime time.Time

	options    Options
	thresholds Thresholds

	deferBudget        time.Duration
	frameInterval      time.Duration
	slowFrameThreshold time.Duration
	lastFrameTimeDelta time.Duration
	frameTime          time.Duration
	frameTimeLimit     time.Duration
	priorityValue      time.Duration

	currentFrame uint64
	priority     Priority

	state     atomic.Uint64
	ingressMu sync.Mutex

	doubleStep       bool
	loopEnabled      bool
	touchMoveEnabled bool
	rootClassesAdded bool
}

// New creates a Scheduler. The first frame's time delta is measured from
// the time New is called.
func New(opts ...Option) (*Scheduler, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	x := &Scheduler{
		logger:             cfg.logger,
		host:               cfg.host,
		flusher:            cfg.flusher,
		now:                cfg.now,
		wake:               make(chan struct{}, 1),
		forwarders:         make(map[string]dom.ListenerID),
		thresholds:         cfg.thresholds,
		deferBudget:        cfg.deferBudget,
		frameInterval:      cfg.frameInterval,
		slowFrameThreshold: cfg.slowFrameThreshold,
		priority:           Critical,
		priorityValue:      cfg.thresholds.Critical,
		loopEnabled:        true,
		touchMoveEnabled:   true,
	}
	x.events = channel.New(x)
	if cfg.metricsEnabled {
		x.metrics = new(Metrics)
	}
	if x.slowFrameThreshold > 0 {
		x.slowFrames = catrate.NewLimiter(map[time.Duration]int{
			time.Second: 1,
			time.Minute: 10,
		})
	}

	x.options = cfg.options
	if err := x.SetFPSCap(x.options.FPSCap); err != nil {
		return nil, err
	}

	if x.host != nil {
		x.host.AddEventListener(EventResize, func(*dom.Event) { x.HandleResize() }, dom.ListenerOptions{})
	}

	x.lastTime = x.now()

	return x, nil
}

// Step runs a single frame, see the package docs.
func (x *Scheduler) Step() {
	x.currentFrame++
	frame := x.currentFrame

	currentTime := x.now()

	x.lastFrameTimeDelta = currentTime.Sub(x.lastTime)
	// throttled frames leave lastTime alone, so the next delta includes them
	if x.frameTimeLimit > 0 && x.lastFrameTimeDelta < x.frameTimeLimit {
		if x.metrics != nil {
			x.metrics.recordThrottled()
		}
		return
	}

	x.priority, x.priorityValue = x.thresholds.Resolve(x.lastFrameTimeDelta)

	x.frameTime = x.lastFrameTimeDelta
	x.lastTime = currentTime

	x.events.Emit(EventPrerender)

	// callbacks queued while draining run next frame
	for n := len(x.nextTickQueue); n > 0; n-- {
		fn := x.nextTickQueue[0]
		x.nextTickQueue[0] = nil
		x.nextTickQueue = x.nextTickQueue[1:]
		fn(frame)
	}

	for len(x.deferQueue) != 0 && x.now().Sub(currentTime) < x.deferBudget {
		fn := x.deferQueue[0]
		x.deferQueue[0] = nil
		x.deferQueue = x.deferQueue[1:]
		fn()
	}

	for i := 0; i < len(x.contexts); i++ {
		x.contexts[i].Update()
	}

	if x.flusher != nil {
		x.flusher.FlushUpdates()
	}

	x.events.Emit(EventPostrender)

	slow := x.slowFrameThreshold > 0 && x.frameTime >= x.slowFrameThreshold

	if x.metrics != nil {
		x.metrics.recordFrame(x.now().Sub(currentTime), slow, len(x.nextTickQueue), len(x.deferQueue))
	}

	if slow {
		if _, ok := x.slowFrames.Allow(`slow-frame`); ok {
			x.logger.Warning().
				Uint64(`frame`, frame).
				Dur(`delta`, x.frameTime).
				Str(`priority`, x.priority.String()).
				Log(`scheduler: slow frame`)
		}
	}

	if x.doubleStep {
		x.doubleStep = false
		x.Step()
	}
}

// DoubleStep requests one additional, immediate step, at the end of the
// current (or next) step.
func (x *Scheduler) DoubleStep() {
	x.doubleStep = true
}

// CurrentFrame returns the frame counter, which is incremented by every
// step, including throttled ones.
func (x *Scheduler) CurrentFrame() uint64 {
	return x.currentFrame
}

// FrameTimeDelta returns the time elapsed between the last accepted frame
// and the most recent step (accepted or throttled).
func (x *Scheduler) FrameTimeDelta() time.Duration {
	return x.lastFrameTimeDelta
}

// Now returns the current time, per the scheduler's clock.
func (x *Scheduler) Now() time.Time {
	return x.now()
}

// FPS returns the frame rate, derived from the last accepted frame time.
// Returns +Inf prior to the first frame.
func (x *Scheduler) FPS() float64 {
	if x.frameTime <= 0 {
		return math.Inf(1)
	}
	return float64(time.Second) / float64(x.frameTime)
}

// SetFPSCap sets the maximum frame rate. Steps that occur sooner than
// floor(1000/fps) milliseconds after the last accepted frame are throttled.
// A cap of 0 (or +Inf) disables throttling.
func (x *Scheduler) SetFPSCap(fps float64) error {
	if err := validateFPSCap(fps); err != nil {
		return err
	}
	if fps == 0 {
		x.frameTimeLimit = 0
	} else {
		x.frameTimeLimit = time.Duration(math.Floor(1000/fps)) * time.Millisecond
	}
	x.options.FPSCap = fps
	return nil
}

// PriorityLevel returns the priority resolved for the most recent accepted
// frame, or Critical, prior to the first frame.
func (x *Scheduler) PriorityLevel() Priority {
	return x.priority
}

// RestrictAnimations configures, per property name, the priority
// below which the property should animate, see ShouldPropertyAnimate.
// Passing nil clears all restrictions.
func (x *Scheduler) RestrictAnimations(restrictions map[string]Priority) {
	if restrictions == nil {
		x.restrictions = nil
		return
	}
	x.restrictions = make(map[string]Priority, len(restrictions))
	for k, v := range restrictions {
		x.restrictions[k] = v
	}
}

// ShouldPropertyAnimate returns true if the property is unrestricted, or if
// the threshold of the current priority is strictly less than the threshold
// of the restricting priority.
func (x *Scheduler) ShouldPropertyAnimate(property string) bool {
	p, ok := x.restrictions[property]
	if !ok {
		return true
	}
	return x.priorityValue < x.thresholds.Of(p)
}

// RegisterContext adds root to the registry. Registering a root that is
// already registered is a no-op.
func (x *Scheduler) RegisterContext(root Root) error {
	if root == nil {
		return ErrNilRoot
	}
	for _, v := range x.contexts {
		if v == root {
			return nil
		}
	}
	x.contexts = append(x.contexts, root)
	x.logger.Debug().
		Int(`contexts`, len(x.contexts)).
		Log(`scheduler: registered context`)
	return nil
}

// DeregisterContext removes root from the registry, if present. The root is
// not otherwise cleaned up.
func (x *Scheduler) DeregisterContext(root Root) {
	for i, v := range x.contexts {
		if v == root {
			x.contexts = append(x.contexts[:i:i], x.contexts[i+1:]...)
			x.logger.Debug().
				Int(`contexts`, len(x.contexts)).
				Log(`scheduler: deregistered context`)
			return
		}
	}
}

// Contexts returns a copy of the registered roots, in update order.
func (x *Scheduler) Contexts() []Root {
	return append([]Root(nil), x.contexts...)
}

// NextTick queues fn to run at the start of the next step, receiving the
// frame counter of that step. Callbacks queued by a running next-tick
// callback run in the step after.
func (x *Scheduler) NextTick(fn func(frame uint64)) {
	if fn == nil {
		return
	}
	x.nextTickQueue = append(x.nextTickQueue, fn)
}

// Defer queues fn to run during a step, when the defer budget allows. The
// budget is only checked between callbacks.
func (x *Scheduler) Defer(fn func()) {
	if fn == nil {
		return
	}
	x.deferQueue = append(x.deferQueue, fn)
}

// Metrics returns the frame metrics, or nil, if not enabled.
func (x *Scheduler) Metrics() *Metrics {
	return x.metrics
}

// Options returns the current options.
func (x *Scheduler) Options() Options {
	return x.options
}

// SetOptions replaces the options. A changed FPSCap recomputes the frame
// floor. Re-enabling RunLoop resumes Run, if it had paused.
func (x *Scheduler) SetOptions(options Options) error {
	if err := options.validate(); err != nil {
		return err
	}
	prev := x.options
	x.options = options
	if options.FPSCap != prev.FPSCap {
		_ = x.SetFPSCap(options.FPSCap)
	}
	if options.RunLoop && !prev.RunLoop && !x.loopEnabled {
		x.loopEnabled = true
		x.state.CompareAndSwap(uint64(StatePaused), uint64(StateRunning))
		x.logger.Info().Log(`scheduler: run loop restarted`)
	}
	return nil
}

// On registers handler for eventType, on the scheduler's channel. If a host
// is configured, the first registration for each type also installs a
// listener on the host body, forwarding native events (as the first
// argument) through the channel.
func (x *Scheduler) On(eventType string, handler channel.Handler) channel.ListenerID {
	x.forward(eventType)
	return x.events.On(eventType, handler)
}

// Once is like On, but the handler is removed after the first event, see
// [channel.Channel.Once].
func (x *Scheduler) Once(eventType string, handler channel.Handler) *channel.Thenable {
	x.forward(eventType)
	return x.events.Once(eventType, handler)
}

// Emit emits on the scheduler's channel.
func (x *Scheduler) Emit(eventType string, args ...any) *Scheduler {
	x.events.Emit(eventType, args...)
	return x
}

// RemoveListener removes a registration made by On.
func (x *Scheduler) RemoveListener(eventType string, id channel.ListenerID) bool {
	return x.events.RemoveListener(eventType, id)
}

func (x *Scheduler) forward(eventType string) {
	if x.host == nil {
		return
	}
	if _, ok := x.forwarders[eventType]; ok {
		return
	}
	x.forwarders[eventType] = x.host.Body().AddEventListener(eventType, func(event *dom.Event) {
		x.events.Emit(eventType, event)
	}, dom.ListenerOptions{})
}
