package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegListInsertAfter(t *testing.T) {
	t.Parallel()

	var l segList
	a := &Segment{base: 0x1000}
	b := &Segment{base: 0x2000}
	c := &Segment{base: 0x3000}

	l.insertAfter(nil, a)
	l.insertAfter(a, c)
	l.insertAfter(a, b)

	var got []uintptr
	for s := l.head; s != nil; s = s.next {
		got = append(got, s.base)
	}
	assert.Equal(t, []uintptr{0x1000, 0x2000, 0x3000}, got)
	assert.Same(t, c, l.tail)
}

func TestSegListRemove(t *testing.T) {
	t.Parallel()

	var l segList
	a, b, c := &Segment{base: 1}, &Segment{base: 2}, &Segment{base: 3}
	l.insertAfter(nil, a)
	l.insertAfter(a, b)
	l.insertAfter(b, c)

	l.remove(b)
	assert.Same(t, c, a.next)
	assert.Same(t, a, c.prev)

	l.remove(a)
	assert.Same(t, c, l.head)
	assert.Nil(t, c.prev)

	l.remove(c)
	assert.Nil(t, l.head)
	assert.Nil(t, l.tail)
}

func TestPredecessorSuccessor(t *testing.T) {
	t.Parallel()

	var l segList
	a, b := &Segment{base: 1}, &Segment{base: 2}
	l.insertAfter(nil, a)
	l.insertAfter(a, b)

	assert.True(t, predecessor(a).IsNone())
	p := predecessor(b)
	assert.True(t, p.IsSome())
	assert.Same(t, a, p.Unwrap())

	s := successor(a)
	assert.True(t, s.IsSome())
	assert.Same(t, b, s.Unwrap())
	assert.True(t, successor(b).IsNone())
}

func TestSegTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "span", SegSpan.String())
	assert.Equal(t, "free", SegFree.String())
	assert.Equal(t, "allocated", SegAllocated.String())
	assert.Contains(t, SegType(99).String(), "SegType")
}
