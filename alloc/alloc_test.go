package alloc

import (
	"testing"

	"github.com/joeycumines/go-renderloop/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementAllocator_reuse(t *testing.T) {
	doc := dom.NewDocument()
	a := New(doc.Body())

	d1 := a.Allocate(`div`)
	d2 := a.Allocate(`div`)
	require.NotSame(t, d1, d2)
	assert.Equal(t, doc.Body(), d1.Parent())

	a.Deallocate(d1)
	assert.Equal(t, Stats{Created: 2, Live: 1, Free: 1}, a.Stats())

	// reused, for the same tag only
	in := a.Allocate(`input`)
	assert.NotSame(t, d1, in)
	assert.Same(t, d1, a.Allocate(`div`))
	assert.Equal(t, Stats{Created: 3, Live: 3, Free: 0}, a.Stats())
}

func TestElementAllocator_Deallocate_ignoresUnknownAndDouble(t *testing.T) {
	doc := dom.NewDocument()
	a := New(doc.Body())

	el := a.Allocate(`div`)
	a.Deallocate(el)
	a.Deallocate(el)
	a.Deallocate(doc.CreateElement(`div`))

	assert.Equal(t, Stats{Created: 1, Live: 0, Free: 1}, a.Stats())
	// the double deallocate must not hand the element out twice
	first := a.Allocate(`div`)
	second := a.Allocate(`div`)
	assert.NotSame(t, first, second)
}

func TestNew_nilContainer(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
