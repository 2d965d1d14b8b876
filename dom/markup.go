// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SetInnerHTML parses markup as a fragment in the context of this element,
// replacing all children. On error, the children are left unmodified.
func (x *Element) SetInnerHTML(markup string) error {
	if x.nodeType == TextNode {
		x.text = markup
		return nil
	}
	tag := x.tag
	if tag == `` {
		tag = `div`
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
	if err != nil {
		return fmt.Errorf(`dom: parse markup: %w`, err)
	}
	x.removeChildren()
	for _, n := range nodes {
		if c := x.doc.fromHTML(n); c != nil {
			x.AppendChild(c)
		}
	}
	return nil
}

// InnerHTML serializes the children as markup.
func (x *Element) InnerHTML() string {
	var b strings.Builder
	for _, c := range x.children {
		_ = html.Render(&b, c.toHTML())
	}
	return b.String()
}

// OuterHTML serializes this node, and its children, as markup.
func (x *Element) OuterHTML() string {
	if x.nodeType == FragmentNode {
		return x.InnerHTML()
	}
	var b strings.Builder
	_ = html.Render(&b, x.toHTML())
	return b.String()
}

func (x *Document) fromHTML(n *html.Node) *Element {
	switch n.Type {
	case html.TextNode:
		return x.CreateTextNode(n.Data)
	case html.ElementNode:
		el := x.CreateElement(n.Data)
		for _, attr := range n.Attr {
			el.SetAttribute(attr.Key, attr.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := x.fromHTML(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		// comments, doctypes, etc, are not modeled
		return nil
	}
}

func (x *Element) toHTML() *html.Node {
	if x.nodeType == TextNode {
		return &html.Node{Type: html.TextNode, Data: x.text}
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     x.tag,
		DataAtom: atom.Lookup([]byte(x.tag)),
	}
	for _, attr := range x.Attributes() {
		n.Attr = append(n.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
	}
	for _, c := range x.children {
		n.AppendChild(c.toHTML())
	}
	return n
}
