// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package surface implements the renderable commit pipeline: renderables
// accumulate mutations (classes, inline styles, attributes, size, content),
// tracked by per-aspect dirty flags, then, once per frame, Commit writes the
// minimal patch to the renderable's pooled element, via the batched write
// buffer.
//
// Lifecycle:
//
//	unattached → Setup (element allocated, every aspect dirty)
//	           → Commit (zero or more frames)
//	           → Cleanup (managed state stripped, element deallocated)
//	           → unattached
//
// Two variants are provided, [Surface] (generic content) and [InputSurface]
// (an input element), both implementing [Renderable].
package surface
