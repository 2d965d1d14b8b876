// Package dom implements a headless document model: elements with
// attributes, inline styles, class lists and properties, markup parsing and
// serialization, and native event dispatch with capture and bubbling.
//
// It is the host that the render loop writes to. A browser binding would
// implement the same surface over the real DOM; the headless model exists
// so the render loop can run (and be tested) without one.
//
// Nothing in this package is safe for concurrent use.
package dom
