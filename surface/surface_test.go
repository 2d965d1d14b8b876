package surface

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joeycumines/go-renderloop/alloc"
	"github.com/joeycumines/go-renderloop/channel"
	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/dombuf"
	"github.com/joeycumines/go-renderloop/router"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	doc       *dom.Document
	buf       *dombuf.Buffer
	router    *router.Router
	allocator *alloc.ElementAllocator
	rt        Runtime
	ctx       CommitContext
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{doc: dom.NewDocument()}
	var err error
	h.buf, err = dombuf.New()
	require.NoError(t, err)
	h.router, err = router.New(h.doc, router.WithBuffer(h.buf))
	require.NoError(t, err)
	h.allocator = alloc.New(h.doc.Body())
	h.rt = Runtime{Buffer: h.buf, Router: h.router}
	h.ctx = CommitContext{Allocator: h.allocator, Size: [2]float64{100, 50}}
	return h
}

// commit commits then flushes.
func (h *harness) commit(r Renderable) {
	r.Commit(h.ctx)
	h.buf.FlushUpdates()
}

var cmpElements = cmp.Comparer(func(a, b *dom.Element) bool { return a == b })

func TestSurface_endToEnd(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `7`, Options{Content: Text(`hello`), Classes: []string{`a`}})
	require.NoError(t, err)

	s.Setup(h.allocator)
	h.commit(s)

	el := s.Target()
	require.NotNil(t, el)
	assert.Equal(t, []string{ElementClass, `a`}, el.ClassList().Tokens())
	assert.Equal(t, `hello`, el.TextContent())
	assert.True(t, s.Dirty().Clean())
	id, _ := el.GetAttribute(router.IDAttribute)
	assert.Equal(t, `7`, id)

	assert.ErrorIs(t, s.SetAttributes(map[string]string{`style`: `x`, `title`: `y`}), ErrStyleAttribute)
	assert.Empty(t, s.GetAttributes())
	assert.False(t, s.Dirty().Attributes)
	assert.Equal(t, 0, h.buf.Len())
}

func TestSurface_oneWritePerChangedAspect(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{})
	require.NoError(t, err)
	h.commit(s)
	el := s.Target()

	// nothing pending, nothing written
	s.Commit(h.ctx)
	assert.Equal(t, 0, h.buf.Len())

	s.SetProperties(map[string]string{`color`: `red`})
	require.NoError(t, s.SetAttributes(map[string]string{`title`: `t`}))
	s.AddClass(`b`)
	s.AddClass(`b`)
	s.Commit(h.ctx)

	if diff := cmp.Diff([]dombuf.Op{
		{Kind: dombuf.OpAddClass, Target: el, Name: `b`},
		{Kind: dombuf.OpSetStyle, Target: el, Name: `color`, Value: `red`},
		{Kind: dombuf.OpSetAttribute, Target: el, Name: `title`, Value: `t`},
	}, h.buf.Pending(), cmpElements); diff != `` {
		t.Errorf("unexpected ops (-want +got):\n%s", diff)
	}

	h.buf.FlushUpdates()
	assert.Equal(t, `red`, el.Style().Get(`color`))
	assert.True(t, el.ClassList().Contains(`b`))
	v, _ := el.GetAttribute(`title`)
	assert.Equal(t, `t`, v)
}

func TestSurface_Cleanup_twice(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{
		Content:    Text(`x`),
		Classes:    []string{`a`},
		Properties: map[string]string{`color`: `red`},
		Attributes: map[string]string{`title`: `t`},
	})
	require.NoError(t, err)
	h.commit(s)
	el := s.Target()

	s.Cleanup(h.allocator)
	n := h.buf.Len()
	require.NotZero(t, n)
	assert.NotPanics(t, func() { s.Cleanup(h.allocator) })
	assert.Equal(t, n, h.buf.Len())
	assert.Nil(t, s.Target())

	h.buf.FlushUpdates()
	assert.Equal(t, []dom.Attr{{Name: `style`, Value: `display: none;`}}, el.Attributes())
	assert.Empty(t, el.ChildNodes())
	assert.Equal(t, alloc.Stats{Created: 1, Live: 0, Free: 1}, h.allocator.Stats())

	// set up again, against the recycled element, everything is written
	h.commit(s)
	assert.Same(t, el, s.Target())
	assert.Equal(t, `x`, el.TextContent())
	assert.Equal(t, []string{ElementClass, `a`}, el.ClassList().Tokens())
	assert.Equal(t, `red`, el.Style().Get(`color`))
	assert.Empty(t, el.Style().Get(`display`))
}

func TestSurface_recycledElementIsClean(t *testing.T) {
	h := newHarness(t)
	a, err := New(h.rt, `a`, Options{
		Classes:    []string{`x`},
		Properties: map[string]string{`color`: `red`},
		Attributes: map[string]string{`title`: `t`},
	})
	require.NoError(t, err)
	h.commit(a)
	el := a.Target()
	a.RemoveAttributes(`title`)
	a.Cleanup(h.allocator)

	b, err := New(h.rt, `b`, Options{})
	require.NoError(t, err)
	h.commit(b)
	require.Same(t, el, b.Target())
	assert.Equal(t, []string{ElementClass}, el.ClassList().Tokens())
	assert.False(t, el.HasAttribute(`title`))
	assert.Empty(t, el.Style().Get(`color`))
	id, _ := el.GetAttribute(router.IDAttribute)
	assert.Equal(t, `b`, id)
}

func TestSurface_attributes(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{Attributes: map[string]string{`disabled`: ``, `title`: `t`}})
	require.NoError(t, err)
	h.commit(s)
	el := s.Target()
	assert.True(t, el.HasAttribute(`disabled`))

	s.RemoveAttributes(`disabled`)
	assert.Equal(t, map[string]string{`title`: `t`}, s.GetAttributes())
	h.commit(s)
	assert.False(t, el.HasAttribute(`disabled`))

	// setting cancels a pending removal
	s.RemoveAttributes(`title`)
	require.NoError(t, s.SetAttributes(map[string]string{`title`: `u`}))
	h.commit(s)
	v, _ := el.GetAttribute(`title`)
	assert.Equal(t, `u`, v)
}

func TestSurface_classes(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{Classes: []string{`a`, `b`}})
	require.NoError(t, err)
	h.commit(s)
	el := s.Target()

	s.SetClasses([]string{`b`, `c`})
	assert.Equal(t, []string{`b`, `c`}, s.GetClassList())
	s.ToggleClass(`b`)
	s.ToggleClass(`d`)
	assert.Equal(t, []string{`c`, `d`}, s.GetClassList())
	assert.True(t, s.Dirty().Classes)
	h.commit(s)
	assert.Equal(t, []string{ElementClass, `c`, `d`}, el.ClassList().Tokens())

	s.RemoveClass(`missing`)
	assert.False(t, s.Dirty().Classes)
}

func TestSurface_SetContent_sameIsNoop(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{Content: Text(`x`)})
	require.NoError(t, err)
	var deploys int
	s.On(EventDeploy, func(*channel.Event) { deploys++ })
	h.commit(s)
	assert.Equal(t, 1, deploys)

	s.SetContent(Text(`x`))
	assert.False(t, s.Dirty().Content)
	s.SetContent(Text(`y`))
	assert.True(t, s.Dirty().Content)
	h.commit(s)
	assert.Equal(t, 2, deploys)
	assert.Equal(t, Text(`y`), s.GetContent())
}

func TestSurface_Deploy_markupIsTaggedAndRouted(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `7`, Options{Content: Text(`<p>hi <b>there</b></p>`)})
	require.NoError(t, err)

	var clicks []*dom.Event
	s.On(`click`, func(e *channel.Event) {
		assert.Same(t, s, e.Owner)
		clicks = append(clicks, e.Arg(0).(*dom.Event))
	})
	h.commit(s)

	el := s.Target()
	assert.Equal(t, `<p>hi <b>there</b></p>`, stripIDs(el))
	bold := el.ChildNodes()[0].ChildNodes()[1]
	require.Equal(t, `B`, bold.TagName())
	id, _ := bold.GetAttribute(router.IDAttribute)
	assert.Equal(t, `7`, id)

	ev := dom.NewEvent(`click`)
	h.doc.Dispatch(bold, ev)
	require.Len(t, clicks, 1)
	assert.Same(t, ev, clicks[0])
}

func stripIDs(el *dom.Element) string {
	clone := el.Document().CreateElement(`div`)
	_ = clone.SetInnerHTML(el.InnerHTML())
	clone.Walk(func(node *dom.Element) bool {
		node.RemoveAttribute(router.IDAttribute)
		return true
	})
	return clone.InnerHTML()
}

func TestSurface_Deploy_encodeHTML(t *testing.T) {
	h := newHarness(t)
	encode := true
	s, err := New(h.rt, `1`, Options{Content: Text(`<b>x</b>`), EncodeHTML: &encode})
	require.NoError(t, err)
	h.commit(s)
	el := s.Target()
	require.Len(t, el.ChildNodes(), 1)
	assert.Equal(t, dom.TextNode, el.ChildNodes()[0].NodeType())
	assert.Equal(t, `&lt;b&gt;x&lt;/b&gt;`, el.InnerHTML())
}

func TestSurface_Deploy_fragment(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{Content: Text(`old`)})
	require.NoError(t, err)
	h.commit(s)
	el := s.Target()

	frag := h.doc.CreateDocumentFragment()
	span := h.doc.CreateElement(`span`)
	frag.AppendChild(span)
	s.SetContent(Fragment{Node: frag})
	h.commit(s)

	assert.Equal(t, []*dom.Element{span}, el.ChildNodes())
}

func TestSurface_size(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{Size: &Size{Px(10), {}}})
	require.NoError(t, err)
	var resizes int
	s.On(EventResize, func(*channel.Event) { resizes++ })

	h.commit(s)
	el := s.Target()
	assert.Equal(t, `10px`, el.Style().Get(`width`))
	assert.Equal(t, `50px`, el.Style().Get(`height`))
	assert.Equal(t, 1, resizes)

	h.commit(s)
	assert.Equal(t, 1, resizes)

	h.ctx.Size = [2]float64{100, 60}
	h.commit(s)
	assert.Equal(t, `60px`, el.Style().Get(`height`))
	assert.Equal(t, 2, resizes)
	assert.Equal(t, Size{Px(10), Px(60)}, s.GetSize())

	s.ClearSize()
	h.commit(s)
	assert.Equal(t, `100px`, el.Style().Get(`width`))
	assert.Equal(t, 3, resizes)
}

func TestSurface_size_measured(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{Size: &Size{Measured(), Px(20)}})
	require.NoError(t, err)
	assert.Equal(t, Size{Measured(), Px(20)}, s.GetSize())
	var resizes int
	s.On(EventResize, func(*channel.Event) { resizes++ })

	h.commit(s)
	el := s.Target()
	assert.Empty(t, el.Style().Get(`width`))
	assert.Equal(t, `20px`, el.Style().Get(`height`))
	assert.Equal(t, 1, resizes)
	assert.True(t, s.Dirty().Remeasure, `content was written`)

	el.SetOffsetSize(42, 999)
	h.commit(s)
	assert.Equal(t, 2, resizes)
	assert.False(t, s.Dirty().Remeasure)
	resolved, ok := s.ResolvedSize()
	assert.True(t, ok)
	assert.Equal(t, [2]float64{42, 20}, resolved)

	// cached until another write invalidates it
	el.SetOffsetSize(50, 999)
	h.commit(s)
	assert.Equal(t, 2, resizes)

	s.AddClass(`wide`)
	h.commit(s)
	assert.Equal(t, 3, resizes)
	assert.Equal(t, Size{Px(50), Px(20)}, s.GetSize())
}

func TestSurface_listenersUnboundOnCleanup(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{})
	require.NoError(t, err)
	var clicks int
	id := s.On(`click`, func(*channel.Event) { clicks++ })
	h.commit(s)
	el := s.Target()

	h.doc.Dispatch(el, dom.NewEvent(`click`))
	assert.Equal(t, 1, clicks)

	s.Cleanup(h.allocator)
	h.buf.FlushUpdates()
	in, _ := h.router.ListenerCount(`1`, `click`)
	assert.Equal(t, 0, in)
	h.doc.Dispatch(el, dom.NewEvent(`click`))
	assert.Equal(t, 1, clicks)

	// bound again on setup
	h.commit(s)
	h.doc.Dispatch(el, dom.NewEvent(`click`))
	assert.Equal(t, 2, clicks)

	assert.True(t, s.RemoveListener(`click`, id))
	in, _ = h.router.ListenerCount(`1`, `click`)
	assert.Equal(t, 0, in)
	assert.False(t, s.RemoveListener(`click`, id))
}

func TestSurface_recallEmitted(t *testing.T) {
	h := newHarness(t)
	s, err := New(h.rt, `1`, Options{Content: Text(`x`)})
	require.NoError(t, err)
	var recalls int
	s.On(EventRecall, func(*channel.Event) { recalls++ })
	h.commit(s)
	s.Cleanup(h.allocator)
	assert.Equal(t, 1, recalls)
	assert.True(t, s.Dirty().Content)
}

func TestNew_errors(t *testing.T) {
	_, err := New(Runtime{}, ``, Options{})
	assert.ErrorIs(t, err, ErrNilBuffer)

	buf, err := dombuf.New()
	require.NoError(t, err)

	_, err = New(Runtime{Buffer: buf}, ``, Options{Attributes: map[string]string{`style`: `x`}})
	assert.ErrorIs(t, err, ErrStyleAttribute)

	s, err := New(Runtime{Buffer: buf}, ``, Options{})
	require.NoError(t, err)
	assert.Len(t, s.ID(), 26, `ulid`)
}

func TestNew_defaultIDsRouteToTheirOwner(t *testing.T) {
	h := newHarness(t)
	a, err := New(h.rt, ``, Options{Content: Text(`<span>a</span>`)})
	require.NoError(t, err)
	b, err := New(h.rt, ``, Options{Content: Text(`b`)})
	require.NoError(t, err)

	require.NotEqual(t, a.ID(), b.ID())
	for _, id := range []string{a.ID(), b.ID()} {
		parsed, err := ulid.ParseStrict(id)
		require.NoError(t, err)
		assert.Equal(t, id, parsed.String())
	}

	var owners []any
	a.On(`click`, func(e *channel.Event) { owners = append(owners, e.Owner) })
	b.On(`click`, func(e *channel.Event) { owners = append(owners, e.Owner) })
	h.commit(a)
	h.commit(b)

	aEl, bEl := a.Target(), b.Target()
	span := aEl.ChildNodes()[0]
	id, _ := span.GetAttribute(router.IDAttribute)
	assert.Equal(t, a.ID(), id)

	h.doc.Dispatch(span, dom.NewEvent(`click`))
	h.doc.Dispatch(bEl, dom.NewEvent(`click`))
	require.Len(t, owners, 2)
	assert.Same(t, a, owners[0])
	assert.Same(t, b, owners[1])

	// the id goes with cleanup, so the element no longer routes to a
	a.Cleanup(h.allocator)
	h.buf.FlushUpdates()
	assert.False(t, aEl.HasAttribute(router.IDAttribute))
	h.doc.Dispatch(aEl, dom.NewEvent(`click`))
	assert.Len(t, owners, 2)
}

func TestLength_String(t *testing.T) {
	assert.Equal(t, `1.5px`, Px(1.5).String())
	assert.Equal(t, `measure`, Measured().String())
	assert.Equal(t, `inherit`, Length{}.String())
}
