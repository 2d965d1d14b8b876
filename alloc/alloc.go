// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package alloc implements a pooled element allocator, which recycles
// document elements between renderables, within a single container.
package alloc

import (
	"github.com/joeycumines/go-renderloop/dom"
)

// ElementAllocator hands out elements, created as children of a container,
// reusing previously deallocated elements of the same tag.
//
// An allocated element is never handed out again until it is deallocated.
// ElementAllocator is not safe for concurrent use, and is expected to be
// owned by exactly one render root.
type ElementAllocator struct {
	container *dom.Element
	free      map[string][]*dom.Element
	live      map[*dom.Element]struct{}
	created   int
}

// Stats describes the state of an ElementAllocator.
type Stats struct {
	// Created is the total number of elements ever created.
	Created int
	// Live is the number of elements currently allocated.
	Live int
	// Free is the number of pooled elements, available for reuse.
	Free int
}

// New returns an allocator that parents elements under container.
func New(container *dom.Element) *ElementAllocator {
	if container == nil {
		panic(`alloc: nil container`)
	}
	return &ElementAllocator{
		container: container,
		free:      make(map[string][]*dom.Element),
		live:      make(map[*dom.Element]struct{}),
	}
}

// Container returns the element that allocated elements are parented under.
func (x *ElementAllocator) Container() *dom.Element {
	return x.container
}

// Allocate returns an element of the given tag, reusing a pooled element if
// one is available.
func (x *ElementAllocator) Allocate(tag string) *dom.Element {
	var el *dom.Element
	if pool := x.free[tag]; len(pool) != 0 {
		el = pool[len(pool)-1]
		pool[len(pool)-1] = nil
		x.free[tag] = pool[:len(pool)-1]
	} else {
		el = x.container.Document().CreateElement(tag)
		x.container.AppendChild(el)
		x.created++
	}
	x.live[el] = struct{}{}
	return el
}

// Deallocate returns an element to the pool. Elements not currently
// allocated by this allocator are ignored.
func (x *ElementAllocator) Deallocate(el *dom.Element) {
	if _, ok := x.live[el]; !ok {
		return
	}
	delete(x.live, el)
	x.free[el.LocalName()] = append(x.free[el.LocalName()], el)
}

// Stats returns the current counts.
func (x *ElementAllocator) Stats() Stats {
	s := Stats{Created: x.created, Live: len(x.live)}
	for _, pool := range x.free {
		s.Free += len(pool)
	}
	return s
}
