// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package surface

import (
	"strings"

	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/router"
)

// Surface is the generic renderable, a div holding text, markup, or a
// fragment.
type Surface struct {
	core
}

var _ Renderable = (*Surface)(nil)

// New returns a Surface, with the given routing identifier (a ULID is
// generated if empty), and initial options.
func New(rt Runtime, id string, options Options) (*Surface, error) {
	x := new(Surface)
	if err := x.init(rt, id, `div`, x); err != nil {
		return nil, err
	}
	if err := x.SetOptions(options); err != nil {
		return nil, err
	}
	return x, nil
}

// SetOptions applies every present (non-nil) option. The options are
// validated before any are applied.
func (x *Surface) SetOptions(options Options) error {
	return x.setOptions(options)
}

// Commit writes every dirty aspect to the target, setting up first, if
// necessary. Aspects are written in order: classes, styles, attributes,
// size, content.
func (x *Surface) Commit(ctx CommitContext) {
	x.commit(ctx, x.Deploy)
}

// Cleanup strips the target, and returns it to allocator. Calling Cleanup
// when not set up is a no-op.
func (x *Surface) Cleanup(allocator Allocator) {
	x.cleanup(allocator, x.recallChildren)
}

// Deploy writes the content to target. Fragments replace the children.
// Text containing markup is parsed (unless EncodeHTML is set), and every
// resulting element is tagged with the routing identifier. Otherwise, text
// is written literally.
func (x *Surface) Deploy(target *dom.Element) {
	switch content := x.content.(type) {
	case Fragment:
		for _, child := range target.ChildNodes() {
			x.buffer.RemoveChild(target, child)
		}
		if content.Node != nil {
			x.buffer.AppendChild(target, content.Node)
		}
	case Text:
		if s := string(content); !x.encodeHTML && strings.Contains(s, `<`) {
			x.buffer.AssignProperty(target, `innerHTML`, s)
			x.buffer.SetAttributeOnDescendants(target, router.IDAttribute, x.id)
		} else {
			x.buffer.AssignProperty(target, `textContent`, s)
		}
	default:
		x.buffer.AssignProperty(target, `textContent`, ``)
	}
}
