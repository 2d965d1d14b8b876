package router

import (
	"strconv"
	"testing"

	"github.com/joeycumines/go-renderloop/dom"
	"github.com/joeycumines/go-renderloop/dombuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, opts ...Option) (*dom.Document, *Router) {
	t.Helper()
	doc := dom.NewDocument()
	r, err := New(doc, opts...)
	require.NoError(t, err)
	return doc, r
}

func TestNew_nilDocument(t *testing.T) {
	r, err := New(nil)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestRouter_singleNativeListenerPerType(t *testing.T) {
	doc, r := newRouter(t)
	for i := 0; i < 1000; i++ {
		el := doc.CreateElement(`div`)
		doc.Body().AppendChild(el)
		h := r.AddEventListener(strconv.Itoa(i), el, `click`, func(*dom.Event) {})
		require.True(t, h.Valid())
		require.True(t, h.Delegated())
	}
	assert.Equal(t, 1, doc.ListenerCount(`click`))
	assert.True(t, r.NativeListenerInstalled(`click`))
	assert.False(t, r.NativeListenerInstalled(`mousedown`))
}

func TestRouter_inclusionAndExclusion(t *testing.T) {
	doc, r := newRouter(t)

	seven := doc.CreateElement(`div`)
	eight := doc.CreateElement(`div`)
	doc.Body().AppendChild(seven)
	doc.Body().AppendChild(eight)

	var (
		included      int
		othersOfSeven int
		othersOfEight int
	)
	r.AddEventListener(`7`, seven, `click`, func(e *dom.Event) {
		included++
		assert.Same(t, seven, e.Target)
	})
	_, err := r.AddEventListenerForAllOthers(`7`, `click`, func(*dom.Event) { othersOfSeven++ })
	require.NoError(t, err)
	_, err = r.AddEventListenerForAllOthers(`8`, `click`, func(*dom.Event) { othersOfEight++ })
	require.NoError(t, err)

	v, ok := seven.GetAttribute(IDAttribute)
	require.True(t, ok)
	require.Equal(t, `7`, v)

	doc.Dispatch(seven, dom.NewEvent(`click`))
	assert.Equal(t, 1, included)
	assert.Equal(t, 0, othersOfSeven)
	assert.Equal(t, 1, othersOfEight)

	// untagged targets notify every all-others subscriber
	doc.Dispatch(doc.Body(), dom.NewEvent(`click`))
	assert.Equal(t, 1, included)
	assert.Equal(t, 1, othersOfSeven)
	assert.Equal(t, 2, othersOfEight)
}

func TestRouter_nestedMarkupRoutesToOwner(t *testing.T) {
	doc, r := newRouter(t)
	el := doc.CreateElement(`div`)
	doc.Body().AppendChild(el)
	require.NoError(t, el.SetInnerHTML(`<p><b>x</b></p>`))
	el.Walk(func(node *dom.Element) bool {
		if node.NodeType() == dom.ElementNode {
			node.SetAttribute(IDAttribute, `a`)
		}
		return true
	})

	var calls int
	r.AddEventListener(`a`, el, `click`, func(*dom.Event) { calls++ })
	bold := el.ChildNodes()[0].ChildNodes()[0]
	doc.Dispatch(bold, dom.NewEvent(`click`))
	assert.Equal(t, 1, calls)
}

func TestRouter_AddEventListener_nonNativeIgnored(t *testing.T) {
	doc, r := newRouter(t)
	el := doc.CreateElement(`div`)
	h := r.AddEventListener(`1`, el, `deploy`, func(*dom.Event) { t.Fatal(`unexpected`) })
	assert.False(t, h.Valid())
	assert.False(t, el.HasAttribute(IDAttribute))
	assert.False(t, r.NativeListenerInstalled(`deploy`))
	assert.False(t, r.RemoveEventListener(h))
}

func TestRouter_AddEventListenerForAllOthers_nonNative(t *testing.T) {
	_, r := newRouter(t)
	h, err := r.AddEventListenerForAllOthers(`1`, `deploy`, func(*dom.Event) {})
	assert.ErrorIs(t, err, ErrNotNativeEvent)
	assert.False(t, h.Valid())
}

func TestRouter_nonDelegableAttachedDirectly(t *testing.T) {
	doc, r := newRouter(t)
	el := doc.CreateElement(`input`)
	doc.Body().AppendChild(el)

	var calls int
	h := r.AddEventListener(`1`, el, `focus`, func(*dom.Event) { calls++ })
	require.True(t, h.Valid())
	assert.False(t, h.Delegated())
	assert.Equal(t, 1, el.ListenerCount(`focus`))
	assert.Equal(t, 0, doc.ListenerCount(`focus`))
	assert.False(t, el.HasAttribute(IDAttribute))

	el.Focus()
	assert.Equal(t, 1, calls)

	assert.True(t, r.RemoveEventListener(h))
	assert.False(t, r.RemoveEventListener(h))
	assert.Equal(t, 0, el.ListenerCount(`focus`))
}

func TestRouter_touchPlatform(t *testing.T) {
	doc := dom.NewDocument(dom.WithTouch(true))
	r, err := New(doc)
	require.NoError(t, err)
	el := doc.CreateElement(`div`)
	for _, v := range [...]string{`click`, `touchstart`, `touchend`} {
		assert.False(t, r.IsDelegated(v), v)
		h := r.AddEventListener(`1`, el, v, func(*dom.Event) {})
		assert.False(t, h.Delegated(), v)
	}
	assert.True(t, r.IsDelegated(`touchmove`))

	// explicitly overridden
	r, err = New(doc, WithTouch(false))
	require.NoError(t, err)
	assert.True(t, r.IsDelegated(`click`))
}

func TestRouter_IsNativeEvent(t *testing.T) {
	_, r := newRouter(t)
	assert.True(t, r.IsNativeEvent(`click`))
	assert.True(t, r.IsNativeEvent(`touchmove`), `emulated touch`)
	assert.False(t, r.IsNativeEvent(`prerender`))
	// memoized
	assert.Equal(t, map[string]bool{`click`: true, `touchmove`: true, `prerender`: false}, r.native)
}

func TestRouter_RemoveEventListener(t *testing.T) {
	doc, r := newRouter(t)
	el := doc.CreateElement(`div`)
	doc.Body().AppendChild(el)

	var calls int
	h := r.AddEventListener(`1`, el, `click`, func(*dom.Event) { calls++ })
	in, _ := r.ListenerCount(`1`, `click`)
	assert.Equal(t, 1, in)

	assert.True(t, r.RemoveEventListener(h))
	assert.False(t, r.RemoveEventListener(h))
	doc.Dispatch(el, dom.NewEvent(`click`))
	assert.Equal(t, 0, calls)
	// the native listener stays installed
	assert.Equal(t, 1, doc.ListenerCount(`click`))
}

func TestRouter_RemoveEventListenerForAllOthers(t *testing.T) {
	doc, r := newRouter(t)

	var a, b int
	cb := func(*dom.Event) { a++ }
	ha, err := r.AddEventListenerForAllOthers(`1`, `click`, cb)
	require.NoError(t, err)
	// the same callback, in a different scope, is independently removable
	hb, err := r.AddEventListenerForAllOthers(`2`, `click`, func(e *dom.Event) { b++; cb(e) })
	require.NoError(t, err)

	assert.False(t, r.RemoveEventListener(ha), `wrong removal method`)
	assert.True(t, r.RemoveEventListenerForAllOthers(ha))
	assert.False(t, r.RemoveEventListenerForAllOthers(ha))

	doc.Dispatch(doc.Body(), dom.NewEvent(`click`))
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	assert.True(t, r.RemoveEventListenerForAllOthers(hb))
	_, ex := r.ListenerCount(``, `click`)
	assert.Equal(t, 0, ex)
}

func TestRouter_WithBuffer(t *testing.T) {
	doc := dom.NewDocument()
	buf, err := dombuf.New()
	require.NoError(t, err)
	r, err := New(doc, WithBuffer(buf), nil)
	require.NoError(t, err)

	el := doc.CreateElement(`div`)
	r.AddEventListener(`x`, el, `click`, func(*dom.Event) {})
	assert.False(t, el.HasAttribute(IDAttribute))
	require.Equal(t, 1, buf.Len())

	buf.FlushUpdates()
	v, _ := el.GetAttribute(IDAttribute)
	assert.Equal(t, `x`, v)
}

func TestRouter_nativeListenerIsPassive(t *testing.T) {
	doc, r := newRouter(t)
	el := doc.CreateElement(`div`)
	doc.Body().AppendChild(el)
	r.AddEventListener(`1`, el, `click`, func(e *dom.Event) { e.PreventDefault() })
	assert.True(t, doc.Dispatch(el, dom.NewEvent(`click`)))
}
