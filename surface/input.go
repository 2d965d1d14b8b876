// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package surface

import (
	"github.com/joeycumines/go-renderloop/channel"
	"github.com/joeycumines/go-renderloop/dom"
)

// InputSurface is a renderable input element. Rather than content, it
// deploys the placeholder, type, value, and name properties. Clicking it
// focuses it.
type InputSurface struct {
	core
	placeholder string
	value       string
	inputType   string
	name        string
}

var _ Renderable = (*InputSurface)(nil)

// NewInput returns an InputSurface, see New. The type defaults to "text".
func NewInput(rt Runtime, id string, options Options) (*InputSurface, error) {
	x := &InputSurface{inputType: `text`}
	if err := x.init(rt, id, `input`, x); err != nil {
		return nil, err
	}
	if err := x.SetOptions(options); err != nil {
		return nil, err
	}
	x.On(`click`, func(*channel.Event) { x.Focus() })
	return x, nil
}

// SetOptions applies the options, see [Surface.SetOptions]. Content is only
// marked dirty if an input field actually changed, the Content and
// EncodeHTML options are ignored.
func (x *InputSurface) SetOptions(options Options) error {
	if _, ok := options.Attributes[`style`]; ok {
		return ErrStyleAttribute
	}
	x.captureValue()
	if in := options.Input; in != nil {
		changed := diffField(&x.placeholder, in.Placeholder)
		changed = diffField(&x.value, in.Value) || changed
		changed = diffField(&x.inputType, in.Type) || changed
		changed = diffField(&x.name, in.Name) || changed
		if changed {
			x.contentDirty = true
		}
	}
	// content is never deployed to an input
	options.Content, options.EncodeHTML = nil, nil
	return x.setOptions(options)
}

func diffField(field *string, value *string) bool {
	if value == nil || *value == *field {
		return false
	}
	*field = *value
	return true
}

// SetPlaceholder sets the placeholder.
func (x *InputSurface) SetPlaceholder(placeholder string) {
	x.captureValue()
	x.placeholder = placeholder
	x.contentDirty = true
}

// GetPlaceholder returns the placeholder.
func (x *InputSurface) GetPlaceholder() string { return x.placeholder }

// SetValue sets the value, replacing any value entered into the element.
func (x *InputSurface) SetValue(value string) {
	x.value = value
	x.contentDirty = true
}

// GetValue returns the live value of the element, unless not set up, or
// a new value is pending a commit.
func (x *InputSurface) GetValue() string {
	if x.target == nil || x.contentDirty {
		return x.value
	}
	return x.target.Property(`value`)
}

// SetType sets the input type, e.g. "text" or "button".
func (x *InputSurface) SetType(inputType string) {
	x.captureValue()
	x.inputType = inputType
	x.contentDirty = true
}

// GetType returns the input type.
func (x *InputSurface) GetType() string { return x.inputType }

// SetName sets the name.
func (x *InputSurface) SetName(name string) {
	x.captureValue()
	x.name = name
	x.contentDirty = true
}

// GetName returns the name.
func (x *InputSurface) GetName() string { return x.name }

// captureValue copies the live value of the element, so that rewriting the
// other properties preserves anything entered.
func (x *InputSurface) captureValue() {
	x.value = x.GetValue()
}

// Focus focuses the element, if set up.
func (x *InputSurface) Focus() {
	if x.target != nil {
		x.target.Focus()
	}
}

// Blur blurs the element, if set up.
func (x *InputSurface) Blur() {
	if x.target != nil {
		x.target.Blur()
	}
}

// Commit writes every dirty aspect, see [Surface.Commit].
func (x *InputSurface) Commit(ctx CommitContext) {
	x.commit(ctx, x.Deploy)
}

// Cleanup strips the target, see [Surface.Cleanup]. The live value is
// captured first, so it survives being set up again.
func (x *InputSurface) Cleanup(allocator Allocator) {
	x.cleanup(allocator, x.recall)
}

func (x *InputSurface) recall(target *dom.Element) {
	x.captureValue()
	x.recallChildren(target)
}

// Deploy writes the input properties to target.
func (x *InputSurface) Deploy(target *dom.Element) {
	x.buffer.AssignProperty(target, `placeholder`, x.placeholder)
	x.buffer.AssignProperty(target, `type`, x.inputType)
	x.buffer.AssignProperty(target, `value`, x.value)
	x.buffer.AssignProperty(target, `name`, x.name)
}
