// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dom

import (
	"strings"
)

// NodeType distinguishes the kinds of node modeled by Element.
type NodeType int

const (
	// ElementNode is a regular element, e.g. a div.
	ElementNode NodeType = iota + 1
	// TextNode is literal text, it never has children.
	TextNode
	// FragmentNode is a document fragment, appending it moves its children.
	FragmentNode
)

// Attr is a single attribute, as returned by [Element.Attributes].
type Attr struct {
	Name  string
	Value string
}

// Element is a node in a headless document tree. Despite the name, text
// nodes and document fragments are also modeled as Element values, see
// [Element.NodeType].
//
// Element is not safe for concurrent use.
type Element struct {
	eventTarget

	doc       *Document
	parent    *Element
	children  []*Element
	props     map[string]string
	style     Style
	classList ClassList
	tag       string
	text      string
	attrs     []Attr
	nodeType  NodeType

	offsetWidth  float64
	offsetHeight float64
}

// Document returns the owning document.
func (x *Element) Document() *Document { return x.doc }

// NodeType returns the kind of node.
func (x *Element) NodeType() NodeType { return x.nodeType }

// TagName returns the upper-cased tag name, e.g. "DIV", or "#text".
func (x *Element) TagName() string {
	switch x.nodeType {
	case TextNode:
		return `#text`
	case FragmentNode:
		return `#document-fragment`
	default:
		return strings.ToUpper(x.tag)
	}
}

// LocalName returns the lower-cased tag name.
func (x *Element) LocalName() string { return x.tag }

// Parent returns the parent node, or nil.
func (x *Element) Parent() *Element { return x.parent }

// ChildNodes returns a copy of the child nodes.
func (x *Element) ChildNodes() []*Element {
	return append([]*Element(nil), x.children...)
}

// AppendChild moves child to the end of this node's children, detaching it
// from any previous parent. Appending a fragment moves the fragment's
// children instead, leaving it empty.
func (x *Element) AppendChild(child *Element) {
	if child == nil || child == x {
		return
	}
	if child.nodeType == FragmentNode {
		for _, c := range child.ChildNodes() {
			x.AppendChild(c)
		}
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = x
	x.children = append(x.children, child)
}

// RemoveChild detaches child, returning false if it was not a child.
func (x *Element) RemoveChild(child *Element) bool {
	for i, c := range x.children {
		if c == child {
			x.children = append(x.children[:i:i], x.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Walk calls fn for every descendant, depth first, in document order.
// Returning false from fn skips the descendants of that node.
func (x *Element) Walk(fn func(node *Element) bool) {
	for _, c := range x.ChildNodes() {
		if fn(c) {
			c.Walk(fn)
		}
	}
}

// Contains reports whether node is this node or one of its descendants.
func (x *Element) Contains(node *Element) bool {
	for ; node != nil; node = node.parent {
		if node == x {
			return true
		}
	}
	return false
}

// SetAttribute assigns an attribute. The "class" and "style" attributes
// are reflected by [Element.ClassList] and [Element.Style], respectively.
func (x *Element) SetAttribute(name, value string) {
	if x.nodeType != ElementNode {
		return
	}
	switch name {
	case `class`:
		x.classList.parse(value)
		return
	case `style`:
		x.style.parse(value)
		return
	}
	for i := range x.attrs {
		if x.attrs[i].Name == name {
			x.attrs[i].Value = value
			return
		}
	}
	x.attrs = append(x.attrs, Attr{Name: name, Value: value})
}

// GetAttribute returns the value of an attribute, and whether it was present.
func (x *Element) GetAttribute(name string) (string, bool) {
	switch name {
	case `class`:
		return x.classList.String(), x.classList.Len() != 0
	case `style`:
		return x.style.String(), x.style.Len() != 0
	}
	for _, attr := range x.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return ``, false
}

// HasAttribute reports whether the attribute is present.
func (x *Element) HasAttribute(name string) bool {
	_, ok := x.GetAttribute(name)
	return ok
}

// RemoveAttribute deletes an attribute, it is a no-op if not present.
func (x *Element) RemoveAttribute(name string) {
	switch name {
	case `class`:
		x.classList.parse(``)
		return
	case `style`:
		x.style.parse(``)
		return
	}
	for i, attr := range x.attrs {
		if attr.Name == name {
			x.attrs = append(x.attrs[:i:i], x.attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns all attributes, including class and style (if
// non-empty), in a stable order.
func (x *Element) Attributes() []Attr {
	attrs := append([]Attr(nil), x.attrs...)
	if x.classList.Len() != 0 {
		attrs = append(attrs, Attr{Name: `class`, Value: x.classList.String()})
	}
	if x.style.Len() != 0 {
		attrs = append(attrs, Attr{Name: `style`, Value: x.style.String()})
	}
	return attrs
}

// Style returns the inline style declarations.
func (x *Element) Style() *Style { return &x.style }

// ClassList returns the class tokens.
func (x *Element) ClassList() *ClassList { return &x.classList }

// SetProperty assigns a DOM property. The properties "textContent" and
// "innerHTML" replace the children, see [Element.SetTextContent] and
// [Element.SetInnerHTML]. Any other property is stored verbatim (e.g. an
// input's value).
func (x *Element) SetProperty(name, value string) error {
	switch name {
	case `textContent`:
		x.SetTextContent(value)
		return nil
	case `innerHTML`:
		return x.SetInnerHTML(value)
	}
	if x.props == nil {
		x.props = make(map[string]string)
	}
	x.props[name] = value
	return nil
}

// Property returns a DOM property, see also [Element.SetProperty].
func (x *Element) Property(name string) string {
	switch name {
	case `textContent`:
		return x.TextContent()
	case `innerHTML`:
		return x.InnerHTML()
	}
	return x.props[name]
}

// TextContent returns the concatenated text of all descendant text nodes.
func (x *Element) TextContent() string {
	if x.nodeType == TextNode {
		return x.text
	}
	var b strings.Builder
	x.Walk(func(node *Element) bool {
		if node.nodeType == TextNode {
			b.WriteString(node.text)
		}
		return true
	})
	return b.String()
}

// SetTextContent replaces all children with a single text node (or none,
// for the empty string). The value is never parsed as markup.
func (x *Element) SetTextContent(value string) {
	if x.nodeType == TextNode {
		x.text = value
		return
	}
	x.removeChildren()
	if value != `` {
		x.AppendChild(x.doc.CreateTextNode(value))
	}
}

func (x *Element) removeChildren() {
	for _, c := range x.children {
		c.parent = nil
	}
	x.children = nil
}

// SetOffsetSize sets the size reported by [Element.OffsetWidth] and
// [Element.OffsetHeight]. A headless document has no layout engine, so the
// host (or a test) supplies measurements.
func (x *Element) SetOffsetSize(width, height float64) {
	x.offsetWidth, x.offsetHeight = width, height
}

// OffsetWidth returns the last measured width.
func (x *Element) OffsetWidth() float64 { return x.offsetWidth }

// OffsetHeight returns the last measured height.
func (x *Element) OffsetHeight() float64 { return x.offsetHeight }

// AddEventListener registers a listener on this element.
func (x *Element) AddEventListener(eventType string, listener Listener, opts ListenerOptions) ListenerID {
	return x.add(x.doc, eventType, listener, opts)
}

// RemoveEventListener removes a listener by ID, returning false if it was
// not registered for eventType.
func (x *Element) RemoveEventListener(eventType string, id ListenerID) bool {
	return x.remove(eventType, id)
}

// ListenerCount returns the number of listeners registered directly on this
// element, for eventType.
func (x *Element) ListenerCount(eventType string) int {
	return x.count(eventType)
}

// Focus makes this element the document's active element, dispatching a
// (non-bubbling) focus event, and a blur event on the previous one.
func (x *Element) Focus() {
	if x.doc.active == x {
		return
	}
	if prev := x.doc.active; prev != nil {
		prev.Blur()
	}
	x.doc.active = x
	x.doc.Dispatch(x, &Event{Type: `focus`})
}

// Blur clears focus, if this element is the active element.
func (x *Element) Blur() {
	if x.doc.active != x {
		return
	}
	x.doc.active = nil
	x.doc.Dispatch(x, &Event{Type: `blur`})
}
