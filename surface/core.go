// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package surface

import (
	"maps"
	"slices"

	"github.com/joeycumines/go-renderloop/channel"
	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/dombuf"
	"github.com/joeycumines/go-renderloop/router"
	"github.com/joeycumines/logiface"
	"github.com/oklog/ulid/v2"
)

// core is the dirty-flag machinery shared by every variant. Variants embed
// it, and provide their own deploy and recall behavior.
//
// Every mutator that changes observable state marks the affected aspect
// dirty. Flags are only cleared by commit. While an aspect's "all" flag is
// set (after setup), every value of that aspect is written, otherwise only
// the pending keys are.
type core struct {
	buffer *dombuf.Buffer
	router *router.Router
	logger *logiface.Logger[logiface.Event]
	events *channel.Channel
	target *dom.Element

	id          string
	elementType string

	properties map[string]string
	attributes map[string]string
	handles    map[string]router.Handle
	classList  []string
	content    Content
	size       *Size

	nativeTypes       keySet
	pendingStyles     keySet
	pendingAttributes keySet
	removedAttributes keySet
	pendingClasses    keySet
	removedClasses    keySet

	resolved [2]float64

	hasResolved     bool
	classesDirty    bool
	stylesDirty     bool
	attributesDirty bool
	sizeDirty       bool
	contentDirty    bool
	trueSizeCheck   bool
	allStyles       bool
	allAttributes   bool
	allClasses      bool
	encodeHTML      bool
}

func (x *core) init(rt Runtime, id string, elementType string, owner any) error {
	if rt.Buffer == nil {
		return ErrNilBuffer
	}
	if id == `` {
		id = ulid.Make().String()
	}
	*x = core{
		buffer:          rt.Buffer,
		router:          rt.Router,
		logger:          rt.Logger,
		events:          channel.New(owner),
		id:              id,
		elementType:     elementType,
		properties:      make(map[string]string),
		attributes:      make(map[string]string),
		handles:         make(map[string]router.Handle),
		content:         Text(``),
		classesDirty:    true,
		stylesDirty:     true,
		attributesDirty: true,
		sizeDirty:       true,
		contentDirty:    true,
		trueSizeCheck:   true,
	}
	return nil
}

// ID returns the routing identifier.
func (x *core) ID() string { return x.id }

// Target returns the allocated element, or nil, if not set up.
func (x *core) Target() *dom.Element { return x.target }

// Dirty returns a snapshot of the dirty flags.
func (x *core) Dirty() Dirty {
	return Dirty{
		Classes:    x.classesDirty,
		Styles:     x.stylesDirty,
		Attributes: x.attributesDirty,
		Size:       x.sizeDirty,
		Content:    x.contentDirty,
		Remeasure:  x.trueSizeCheck,
	}
}

// On registers handler on the renderable's channel. Native event types are
// also routed from the element, via the runtime's router, while set up.
func (x *core) On(eventType string, handler channel.Handler) channel.ListenerID {
	id := x.events.On(eventType, handler)
	if id != 0 && x.router != nil && x.router.IsNativeEvent(eventType) {
		x.nativeTypes.add(eventType)
		if x.target != nil {
			x.bind(eventType)
		}
	}
	return id
}

// RemoveListener removes a registration made by On. Removing the last
// listener for a native event type also removes the routing.
func (x *core) RemoveListener(eventType string, id channel.ListenerID) bool {
	if !x.events.RemoveListener(eventType, id) {
		return false
	}
	if x.events.ListenerCount(eventType) == 0 && x.nativeTypes.has(eventType) {
		x.nativeTypes.remove(eventType)
		if h, ok := x.handles[eventType]; ok {
			delete(x.handles, eventType)
			x.router.RemoveEventListener(h)
		}
	}
	return true
}

// Emit emits on the renderable's channel.
func (x *core) Emit(eventType string, args ...any) {
	x.events.Emit(eventType, args...)
}

// SetProperties merges inline style properties. An empty value removes the
// property from the element, on commit.
func (x *core) SetProperties(properties map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(properties)) {
		x.properties[k] = properties[k]
		x.pendingStyles.add(k)
	}
	x.stylesDirty = true
}

// GetProperties returns a copy of the inline style properties.
func (x *core) GetProperties() map[string]string {
	return maps.Clone(x.properties)
}

// SetAttributes merges attributes. Setting "style" fails with
// ErrStyleAttribute, without modifying any attribute.
func (x *core) SetAttributes(attributes map[string]string) error {
	if _, ok := attributes[`style`]; ok {
		return ErrStyleAttribute
	}
	for _, k := range slices.Sorted(maps.Keys(attributes)) {
		x.attributes[k] = attributes[k]
		x.pendingAttributes.add(k)
		x.removedAttributes.remove(k)
	}
	x.attributesDirty = true
	return nil
}

// GetAttributes returns a copy of the attributes.
func (x *core) GetAttributes() map[string]string {
	return maps.Clone(x.attributes)
}

// RemoveAttributes deletes attributes, which are removed from the element on
// commit.
func (x *core) RemoveAttributes(names ...string) {
	for _, k := range names {
		delete(x.attributes, k)
		x.pendingAttributes.remove(k)
		x.removedAttributes.add(k)
	}
	x.attributesDirty = true
}

// AddClass adds a class, if not present.
func (x *core) AddClass(class string) {
	if class == `` || slices.Contains(x.classList, class) {
		return
	}
	x.classList = append(x.classList, class)
	x.removedClasses.remove(class)
	x.pendingClasses.add(class)
	x.classesDirty = true
}

// RemoveClass removes a class, if present.
func (x *core) RemoveClass(class string) {
	i := slices.Index(x.classList, class)
	if i < 0 {
		return
	}
	x.classList = slices.Delete(x.classList, i, i+1)
	x.pendingClasses.remove(class)
	x.removedClasses.add(class)
	x.classesDirty = true
}

// ToggleClass removes the class if present, otherwise adds it.
func (x *core) ToggleClass(class string) {
	if slices.Contains(x.classList, class) {
		x.RemoveClass(class)
	} else {
		x.AddClass(class)
	}
}

// SetClasses replaces the class list, retaining the order of classes that
// were already present.
func (x *core) SetClasses(classes []string) {
	for _, v := range slices.Clone(x.classList) {
		if !slices.Contains(classes, v) {
			x.RemoveClass(v)
		}
	}
	for _, v := range classes {
		x.AddClass(v)
	}
}

// GetClassList returns a copy of the class list.
func (x *core) GetClassList() []string {
	return slices.Clone(x.classList)
}

// SetContent replaces the content. Setting content equal to the current
// content is a no-op.
func (x *core) SetContent(content Content) {
	if content == x.content {
		return
	}
	x.content = content
	x.contentDirty = true
}

// GetContent returns the content.
func (x *core) GetContent() Content {
	return x.content
}

// SetSize sets the target size.
func (x *core) SetSize(size Size) {
	x.size = &size
	x.sizeDirty = true
}

// ClearSize removes the target size, inheriting the parent-provided size.
func (x *core) ClearSize() {
	x.size = nil
	x.sizeDirty = true
}

// GetSize returns the last committed size, if any, otherwise the target
// size.
func (x *core) GetSize() Size {
	if x.hasResolved {
		return Size{Px(x.resolved[0]), Px(x.resolved[1])}
	}
	if x.size != nil {
		return *x.size
	}
	return Size{}
}

// ResolvedSize returns the last committed size, in pixels.
func (x *core) ResolvedSize() ([2]float64, bool) {
	return x.resolved, x.hasResolved
}

func (x *core) setOptions(options Options) error {
	if _, ok := options.Attributes[`style`]; ok {
		return ErrStyleAttribute
	}
	if options.Size != nil {
		x.SetSize(*options.Size)
	}
	if options.Classes != nil {
		x.SetClasses(options.Classes)
	}
	if options.Properties != nil {
		x.SetProperties(options.Properties)
	}
	if options.Attributes != nil {
		if err := x.SetAttributes(options.Attributes); err != nil {
			return err
		}
	}
	if options.Content != nil {
		x.SetContent(options.Content)
	}
	if options.EncodeHTML != nil && *options.EncodeHTML != x.encodeHTML {
		x.encodeHTML = *options.EncodeHTML
		x.contentDirty = true
	}
	return nil
}

// Setup allocates an element, and marks every aspect dirty, such that the
// next commit writes everything. It is a no-op if already set up.
func (x *core) Setup(allocator Allocator) {
	if x.target != nil {
		return
	}
	target := allocator.Allocate(x.elementType)
	x.buffer.AddClass(target, ElementClass)
	x.buffer.SetStyle(target, `display`, ``)
	x.attach(target)

	x.target = target
	x.hasResolved = false
	x.classesDirty, x.allClasses = true, true
	x.stylesDirty, x.allStyles = true, true
	x.attributesDirty, x.allAttributes = true, true
	x.sizeDirty = true
	x.contentDirty = true
	x.trueSizeCheck = true

	x.logger.Debug().
		Str(`id`, x.id).
		Str(`tag`, x.elementType).
		Log(`surface: setup`)
}

func (x *core) attach(target *dom.Element) {
	x.buffer.SetAttribute(target, router.IDAttribute, x.id)
	x.target = target
	for _, eventType := range x.nativeTypes.keys {
		x.bind(eventType)
	}
}

func (x *core) bind(eventType string) {
	if _, ok := x.handles[eventType]; ok {
		return
	}
	h := x.router.AddEventListener(x.id, x.target, eventType, func(event *dom.Event) {
		x.events.Emit(eventType, event)
	})
	if h.Valid() {
		x.handles[eventType] = h
	}
}

func (x *core) detach() {
	for eventType, h := range x.handles {
		x.router.RemoveEventListener(h)
		delete(x.handles, eventType)
	}
}

func (x *core) commit(ctx CommitContext, deploy func(target *dom.Element)) {
	if x.target == nil {
		x.Setup(ctx.Allocator)
	}
	target := x.target

	if x.classesDirty {
		for _, v := range x.removedClasses.keys {
			x.buffer.RemoveClass(target, v)
		}
		added := x.pendingClasses.keys
		if x.allClasses {
			added = x.classList
		}
		for _, v := range added {
			x.buffer.AddClass(target, v)
		}
		x.removedClasses.reset()
		x.pendingClasses.reset()
		x.allClasses = false
		x.classesDirty = false
		x.trueSizeCheck = true
	}

	if x.stylesDirty {
		names := x.pendingStyles.keys
		if x.allStyles {
			names = slices.Sorted(maps.Keys(x.properties))
		}
		for _, k := range names {
			x.buffer.SetStyle(target, k, x.properties[k])
		}
		x.pendingStyles.reset()
		x.allStyles = false
		x.stylesDirty = false
		x.trueSizeCheck = true
	}

	if x.attributesDirty {
		names := x.pendingAttributes.keys
		if x.allAttributes {
			names = slices.Sorted(maps.Keys(x.attributes))
		}
		for _, k := range names {
			x.buffer.SetAttribute(target, k, x.attributes[k])
		}
		for _, k := range x.removedAttributes.keys {
			x.buffer.RemoveAttribute(target, k)
		}
		x.pendingAttributes.reset()
		x.removedAttributes.reset()
		x.allAttributes = false
		x.attributesDirty = false
		x.trueSizeCheck = true
	}

	x.commitSize(ctx, target)

	if x.contentDirty {
		deploy(target)
		x.events.Emit(EventDeploy)
		x.contentDirty = false
		x.trueSizeCheck = true
	}
}

func (x *core) commitSize(ctx CommitContext, target *dom.Element) {
	size := ctx.Size
	var measured [2]bool

	if x.size != nil {
		for i, length := range x.size {
			switch length.Kind {
			case Pixels:
				size[i] = length.Value
			case Measure:
				measured[i] = true
				if x.trueSizeCheck {
					v := target.OffsetWidth()
					if i == 1 {
						v = target.OffsetHeight()
					}
					if x.hasResolved && x.resolved[i] != v {
						x.logger.Debug().
							Str(`id`, x.id).
							Int(`axis`, i).
							Float64(`from`, x.resolved[i]).
							Float64(`to`, v).
							Log(`surface: measured size changed`)
						x.resolved[i] = v
						x.sizeDirty = true
					}
					size[i] = v
				} else {
					size[i] = x.resolved[i]
				}
			}
		}
		if measured[0] || measured[1] {
			x.trueSizeCheck = false
		}
	}

	if !x.hasResolved || x.resolved != size {
		x.resolved, x.hasResolved = size, true
		x.sizeDirty = true
	}

	if !x.sizeDirty {
		return
	}

	// measured axes are left to the content
	var width, height string
	if !measured[0] {
		width = formatPx(size[0])
	}
	if !measured[1] {
		height = formatPx(size[1])
	}
	x.buffer.SetStyle(target, `width`, width)
	x.buffer.SetStyle(target, `height`, height)
	x.events.Emit(EventResize)
	x.sizeDirty = false
}

// cleanup strips every managed style, attribute, and class from the target,
// and deallocates it. It is a no-op if not set up.
func (x *core) cleanup(allocator Allocator, recall func(target *dom.Element)) {
	target := x.target
	if target == nil {
		return
	}

	x.events.Emit(EventRecall)
	recall(target)

	x.buffer.SetStyle(target, `display`, `none`)
	x.buffer.SetStyle(target, `opacity`, ``)
	x.buffer.SetStyle(target, `width`, ``)
	x.buffer.SetStyle(target, `height`, ``)
	for _, k := range slices.Sorted(maps.Keys(x.properties)) {
		x.buffer.SetStyle(target, k, ``)
	}

	for _, k := range slices.Sorted(maps.Keys(x.attributes)) {
		x.buffer.RemoveAttribute(target, k)
	}
	for _, k := range x.removedAttributes.keys {
		x.buffer.RemoveAttribute(target, k)
	}
	x.removedAttributes.reset()
	x.buffer.RemoveAttribute(target, router.IDAttribute)

	for _, v := range x.removedClasses.keys {
		x.buffer.RemoveClass(target, v)
	}
	x.removedClasses.reset()
	for _, v := range x.classList {
		x.buffer.RemoveClass(target, v)
	}
	x.buffer.RemoveClass(target, ElementClass)

	x.detach()
	x.target = nil
	allocator.Deallocate(target)

	x.logger.Debug().
		Str(`id`, x.id).
		Log(`surface: cleanup`)
}

// recallChildren moves the target's children out, and marks content dirty,
// so the content is written again on the next setup.
func (x *core) recallChildren(target *dom.Element) {
	fragment := target.Document().CreateDocumentFragment()
	for _, child := range target.ChildNodes() {
		x.buffer.AppendChild(fragment, child)
	}
	x.contentDirty = true
}

// keySet is an insertion ordered set.
type keySet struct {
	keys []string
}

func (s *keySet) has(k string) bool { return slices.Contains(s.keys, k) }

func (s *keySet) add(k string) {
	if !s.has(k) {
		s.keys = append(s.keys, k)
	}
}

func (s *keySet) remove(k string) {
	if i := slices.Index(s.keys, k); i >= 0 {
		s.keys = slices.Delete(s.keys, i, i+1)
	}
}

func (s *keySet) reset() { s.keys = nil }
