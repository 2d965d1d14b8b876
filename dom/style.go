// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package dom

import (
	"strings"
)

// Style models an element's inline style declarations, preserving
// insertion order.
type Style struct {
	names  []string
	values map[string]string
}

// Set assigns a declaration. Assigning the empty string removes it, as
// assigning to element.style[name] does in a browser.
func (x *Style) Set(name, value string) {
	if value == `` {
		x.Remove(name)
		return
	}
	if x.values == nil {
		x.values = make(map[string]string)
	}
	if _, ok := x.values[name]; !ok {
		x.names = append(x.names, name)
	}
	x.values[name] = value
}

// Get returns the value of a declaration, or the empty string.
func (x *Style) Get(name string) string {
	return x.values[name]
}

// Remove deletes a declaration, it is a no-op if not present.
func (x *Style) Remove(name string) {
	if _, ok := x.values[name]; !ok {
		return
	}
	delete(x.values, name)
	for i, v := range x.names {
		if v == name {
			x.names = append(x.names[:i:i], x.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of declarations.
func (x *Style) Len() int {
	return len(x.names)
}

// Names returns the declared property names, in insertion order.
func (x *Style) Names() []string {
	return append([]string(nil), x.names...)
}

// String serializes the declarations as a style attribute value.
func (x *Style) String() string {
	var b strings.Builder
	for i, name := range x.names {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteString(`: `)
		b.WriteString(x.values[name])
		b.WriteByte(';')
	}
	return b.String()
}

// parse replaces all declarations with those in a style attribute value.
func (x *Style) parse(s string) {
	x.names, x.values = nil, nil
	for _, decl := range strings.Split(s, `;`) {
		name, value, ok := strings.Cut(decl, `:`)
		if !ok {
			continue
		}
		x.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}

// ClassList models an element's ordered set of class tokens.
type ClassList struct {
	tokens []string
}

// Add appends the token, unless it is already present.
func (x *ClassList) Add(token string) {
	if token == `` || x.Contains(token) {
		return
	}
	x.tokens = append(x.tokens, token)
}

// Remove deletes the token, it is a no-op if not present.
func (x *ClassList) Remove(token string) {
	for i, v := range x.tokens {
		if v == token {
			x.tokens = append(x.tokens[:i:i], x.tokens[i+1:]...)
			return
		}
	}
}

// Toggle removes the token if present, otherwise adds it, returning true if
// the token is present after the call.
func (x *ClassList) Toggle(token string) bool {
	if x.Contains(token) {
		x.Remove(token)
		return false
	}
	x.Add(token)
	return true
}

// Contains reports whether the token is present.
func (x *ClassList) Contains(token string) bool {
	for _, v := range x.tokens {
		if v == token {
			return true
		}
	}
	return false
}

// Len returns the number of tokens.
func (x *ClassList) Len() int {
	return len(x.tokens)
}

// Tokens returns a copy of the tokens, in order.
func (x *ClassList) Tokens() []string {
	return append([]string(nil), x.tokens...)
}

// String joins the tokens, as the class attribute value.
func (x *ClassList) String() string {
	return strings.Join(x.tokens, ` `)
}

func (x *ClassList) parse(s string) {
	x.tokens = nil
	for _, token := range strings.Fields(s) {
		x.Add(token)
	}
}
