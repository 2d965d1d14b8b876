// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package dombuf implements a batched write buffer for document mutations.
// Writes are queued in order, then applied exactly once by FlushUpdates,
// which the frame scheduler calls once per step.
package dombuf

import (
	"errors"

	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/logiface"
)

// ErrInvalidCapacity is returned by New if WithCapacity is negative.
var ErrInvalidCapacity = errors.New(`dombuf: invalid capacity`)

// OpKind identifies the mutation performed by an Op.
type OpKind int

const (
	// OpSetStyle assigns an inline style declaration, the empty value
	// removes it.
	OpSetStyle OpKind = iota + 1
	// OpSetAttribute assigns an attribute.
	OpSetAttribute
	// OpRemoveAttribute removes an attribute.
	OpRemoveAttribute
	// OpAddClass adds a class token.
	OpAddClass
	// OpRemoveClass removes a class token.
	OpRemoveClass
	// OpAppendChild appends Node to Target.
	OpAppendChild
	// OpRemoveChild removes Node from Target.
	OpRemoveChild
	// OpSetProperty assigns a whole property, e.g. textContent or innerHTML.
	OpSetProperty
	// OpSetAttributeOnDescendants assigns an attribute on every descendant
	// element of Target.
	OpSetAttributeOnDescendants
)

// String returns a short name for the kind.
func (k OpKind) String() string {
	switch k {
	case OpSetStyle:
		return `style`
	case OpSetAttribute:
		return `attr`
	case OpRemoveAttribute:
		return `-attr`
	case OpAddClass:
		return `class`
	case OpRemoveClass:
		return `-class`
	case OpAppendChild:
		return `append`
	case OpRemoveChild:
		return `remove`
	case OpSetProperty:
		return `prop`
	case OpSetAttributeOnDescendants:
		return `attr*`
	default:
		return `unknown`
	}
}

// Op is a single queued mutation.
type Op struct {
	Target *dom.Element
	Node   *dom.Element // for OpAppendChild and OpRemoveChild
	Name   string
	Value  string
	Kind   OpKind
}

// Apply performs the mutation against the document. Every kind is
// idempotent: applying an Op twice has the same effect as once.
func (x Op) Apply() error {
	switch x.Kind {
	case OpSetStyle:
		x.Target.Style().Set(x.Name, x.Value)
	case OpSetAttribute:
		x.Target.SetAttribute(x.Name, x.Value)
	case OpRemoveAttribute:
		x.Target.RemoveAttribute(x.Name)
	case OpAddClass:
		x.Target.ClassList().Add(x.Name)
	case OpRemoveClass:
		x.Target.ClassList().Remove(x.Name)
	case OpAppendChild:
		x.Target.AppendChild(x.Node)
	case OpRemoveChild:
		x.Target.RemoveChild(x.Node)
	case OpSetProperty:
		return x.Target.SetProperty(x.Name, x.Value)
	case OpSetAttributeOnDescendants:
		x.Target.Walk(func(node *dom.Element) bool {
			if node.NodeType() == dom.ElementNode {
				node.SetAttribute(x.Name, x.Value)
			}
			return true
		})
	}
	return nil
}

// Buffer queues document mutations, see the package docs.
//
// Buffer is not safe for concurrent use, it is expected to be appended to and
// flushed from the render loop goroutine.
type Buffer struct {
	logger   *logiface.Logger[logiface.Event]
	ops      []Op
	capacity int
	flushes  uint64
	applied  uint64
}

// New returns an empty Buffer.
func New(opts ...Option) (*Buffer, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	b := &Buffer{
		logger:   cfg.logger,
		capacity: cfg.capacity,
	}
	b.ops = b.newQueue()
	return b, nil
}

func (x *Buffer) newQueue() []Op {
	if x.capacity == 0 {
		return nil
	}
	return make([]Op, 0, x.capacity)
}

func (x *Buffer) push(op Op) {
	if op.Target == nil {
		return
	}
	x.ops = append(x.ops, op)
}

// SetStyle queues an inline style assignment, the empty value removes the
// declaration.
func (x *Buffer) SetStyle(target *dom.Element, name, value string) {
	x.push(Op{Kind: OpSetStyle, Target: target, Name: name, Value: value})
}

// SetAttribute queues an attribute assignment.
func (x *Buffer) SetAttribute(target *dom.Element, name, value string) {
	x.push(Op{Kind: OpSetAttribute, Target: target, Name: name, Value: value})
}

// RemoveAttribute queues an attribute removal.
func (x *Buffer) RemoveAttribute(target *dom.Element, name string) {
	x.push(Op{Kind: OpRemoveAttribute, Target: target, Name: name})
}

// AddClass queues adding a class token.
func (x *Buffer) AddClass(target *dom.Element, token string) {
	x.push(Op{Kind: OpAddClass, Target: target, Name: token})
}

// RemoveClass queues removing a class token.
func (x *Buffer) RemoveClass(target *dom.Element, token string) {
	x.push(Op{Kind: OpRemoveClass, Target: target, Name: token})
}

// AppendChild queues appending child to parent.
func (x *Buffer) AppendChild(parent, child *dom.Element) {
	x.push(Op{Kind: OpAppendChild, Target: parent, Node: child})
}

// RemoveChild queues removing child from parent.
func (x *Buffer) RemoveChild(parent, child *dom.Element) {
	x.push(Op{Kind: OpRemoveChild, Target: parent, Node: child})
}

// AssignProperty queues a whole property assignment, e.g. textContent.
func (x *Buffer) AssignProperty(target *dom.Element, name, value string) {
	x.push(Op{Kind: OpSetProperty, Target: target, Name: name, Value: value})
}

// SetAttributeOnDescendants queues assigning an attribute to every
// descendant element of target, as they exist at flush time.
func (x *Buffer) SetAttributeOnDescendants(target *dom.Element, name, value string) {
	x.push(Op{Kind: OpSetAttributeOnDescendants, Target: target, Name: name, Value: value})
}

// Pending returns a copy of the queued operations.
func (x *Buffer) Pending() []Op {
	return append([]Op(nil), x.ops...)
}

// Len returns the number of queued operations.
func (x *Buffer) Len() int {
	return len(x.ops)
}

// Discard drops all queued operations without applying them.
func (x *Buffer) Discard() {
	clear(x.ops)
	x.ops = x.ops[:0]
}

// FlushUpdates applies all queued operations, in order, then clears the
// queue. Operations queued by listeners running during the flush (e.g. in
// reaction to focus changes) are applied by the next flush. A failed
// operation is logged and skipped.
func (x *Buffer) FlushUpdates() {
	ops := x.ops
	x.ops = x.newQueue()
	x.flushes++
	for _, op := range ops {
		if err := op.Apply(); err != nil {
			x.logger.Err().
				Err(err).
				Str(`op`, op.Kind.String()).
				Str(`name`, op.Name).
				Log(`dombuf: write failed`)
			continue
		}
		x.applied++
	}
}

// Stats returns the number of flushes, and the total number of operations
// successfully applied.
func (x *Buffer) Stats() (flushes, applied uint64) {
	return x.flushes, x.applied
}
