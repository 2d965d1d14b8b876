// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package surface

import (
	"errors"
	"strconv"

	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/dombuf"
	"github.com/joeycumines/go-renderloop/router"
	"github.com/joeycumines/logiface"
)

// ElementClass is added to every allocated element, while set up.
const ElementClass = `surface`

// Events emitted on a renderable's channel.
const (
	EventResize = `resize`
	EventDeploy = `deploy`
	EventRecall = `recall`
)

var (
	// ErrStyleAttribute is returned when setting the style attribute via
	// SetAttributes. Inline styles must be set via SetProperties.
	ErrStyleAttribute = errors.New(`surface: cannot set styles via attributes, use properties`)

	// ErrNilBuffer is returned by constructors, if the Runtime has no buffer.
	ErrNilBuffer = errors.New(`surface: nil buffer`)
)

// Runtime holds the collaborators shared by every renderable in a process.
type Runtime struct {
	// Buffer receives every write, and is required.
	Buffer *dombuf.Buffer
	// Router, if set, routes native events to listeners registered via On.
	Router *router.Router
	// Logger is optional.
	Logger *logiface.Logger[logiface.Event]
}

// Allocator is the pooled element allocator, e.g. [alloc.ElementAllocator].
type Allocator interface {
	Allocate(tag string) *dom.Element
	Deallocate(el *dom.Element)
}

// CommitContext is provided by the render root, for each Commit.
type CommitContext struct {
	// Allocator is used to set up renderables without a target.
	Allocator Allocator
	// Size is the parent-provided size, used for inherited axes.
	Size [2]float64
}

// Renderable is the capability shared by every renderable variant.
type Renderable interface {
	ID() string
	Target() *dom.Element
	Setup(allocator Allocator)
	Commit(ctx CommitContext)
	Cleanup(allocator Allocator)
	Deploy(target *dom.Element)
	SetOptions(options Options) error
}

// Options configures a renderable, see SetOptions. Nil fields are absent,
// and leave the corresponding state unchanged.
type Options struct {
	Size       *Size
	EncodeHTML *bool
	Input      *InputOptions
	Content    Content
	Properties map[string]string
	Attributes map[string]string
	Classes    []string
}

// InputOptions are the fields specific to InputSurface. They are ignored by
// other variants.
type InputOptions struct {
	Placeholder *string
	Value       *string
	Type        *string
	Name        *string
}

// LengthKind determines how a Length is resolved.
type LengthKind int

const (
	// Inherit uses the parent-provided size.
	Inherit LengthKind = iota
	// Pixels uses Length.Value.
	Pixels
	// Measure reads the size of the rendered element.
	Measure
)

// Length is the target size of a single axis.
type Length struct {
	Kind  LengthKind
	Value float64
}

// Px returns a fixed length.
func Px(v float64) Length { return Length{Kind: Pixels, Value: v} }

// Measured returns a length resolved by measuring the rendered element.
func Measured() Length { return Length{Kind: Measure} }

// String returns e.g. "10px", "inherit", or "measure".
func (l Length) String() string {
	switch l.Kind {
	case Pixels:
		return formatPx(l.Value)
	case Measure:
		return `measure`
	default:
		return `inherit`
	}
}

// Size is a target size, as [width, height]. The zero value inherits both
// axes.
type Size [2]Length

// Content is the content of a Surface, either Text or Fragment.
type Content interface {
	isContent()
}

// Text is string content. Text containing "<" is parsed as markup, unless
// the EncodeHTML option is set.
type Text string

func (Text) isContent() {}

// Fragment is pre-built content, moved into the target wholesale.
type Fragment struct {
	Node *dom.Element
}

func (Fragment) isContent() {}

// Dirty is a snapshot of the dirty flags.
type Dirty struct {
	Classes    bool
	Styles     bool
	Attributes bool
	Size       bool
	Content    bool
	// Remeasure indicates measured axes will be re-read on next commit.
	Remeasure bool
}

// Clean reports whether no aspect is pending a write. Remeasure is ignored.
func (d Dirty) Clean() bool {
	return !d.Classes && !d.Styles && !d.Attributes && !d.Size && !d.Content
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + `px`
}
