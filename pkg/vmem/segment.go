package vmem

import (
	"fmt"

	"github.com/Abb1x/vmem/pkg/opt"
)

// SegType is the state of a [Segment].
type SegType uint8

const (
	// SegSpan marks the sentinel segment covering a whole span added by
	// [Arena.AddSpan] or, eventually, imported from a parent arena.
	SegSpan SegType = iota
	// SegFree marks a segment available for allocation.
	SegFree
	// SegAllocated marks a segment currently handed out by [Arena.XAlloc].
	SegAllocated
)

var segTypeName = [...]string{"span", "free", "allocated"}

func (t SegType) String() string {
	if int(t) < len(segTypeName) {
		return segTypeName[t]
	}
	return fmt.Sprintf("SegType(%d)", uint8(t))
}

// Segment is a boundary tag: a tiling unit of a span, in exactly one of
// three states (§3). A Segment is always a member of its arena's address
// order and, depending on its type, of exactly one more secondary
// collection: the free-size bucket (SegFree) or the allocated hash chain
// (SegAllocated). SegSpan segments participate only in the order and the
// span list.
//
// Segment records are never allocated with new/make by arena code; they are
// checked out of and returned to the process-wide [segmentPool] (§4.1) so
// that servicing an allocation never recurses into another allocation.
type Segment struct {
	base, size uintptr
	typ        SegType
	imported   bool

	// Address order: always populated except for freshly-acquired, not yet
	// inserted records.
	prev, next *Segment

	// freeNext threads this segment into its free-size bucket's LIFO list.
	// Valid only when typ == SegFree.
	freeNext *Segment

	// hashNext threads this segment into its allocated-hash chain.
	// Valid only when typ == SegAllocated.
	hashNext *Segment
}

// Base returns the start of the segment's half-open range.
func (s *Segment) Base() uintptr { return s.base }

// Size returns the length of the segment's half-open range.
func (s *Segment) Size() uintptr { return s.size }

// End returns the exclusive end of the segment's half-open range.
func (s *Segment) End() uintptr { return s.base + s.size }

// Type returns the segment's current state.
func (s *Segment) Type() SegType { return s.typ }

// Imported reports whether this is a SegSpan obtained from a parent arena
// (§6.3, not produced by this core, always false here).
func (s *Segment) Imported() bool { return s.imported }

func (s *Segment) reset(base, size uintptr, typ SegType) {
	s.base, s.size, s.typ, s.imported = base, size, typ, false
	s.prev, s.next, s.freeNext, s.hashNext = nil, nil, nil, nil
}

// segList is the address-ordered total order of every segment in an arena
// (§4.2). It is a plain doubly-linked list: no balanced tree is needed
// because every traversal that matters starts from a bucket or hash lookup
// and only ever needs O(1) neighbors from there.
type segList struct {
	head, tail *Segment
}

// insertAfter places seg immediately after prev in the order. A nil prev
// means seg becomes the new head.
func (l *segList) insertAfter(prev, seg *Segment) {
	if prev == nil {
		seg.prev = nil
		seg.next = l.head
		if l.head != nil {
			l.head.prev = seg
		}
		l.head = seg
		if l.tail == nil {
			l.tail = seg
		}
		return
	}

	seg.prev = prev
	seg.next = prev.next
	if prev.next != nil {
		prev.next.prev = seg
	} else {
		l.tail = seg
	}
	prev.next = seg
}

// remove detaches seg from the order. seg's own links are left intact so
// callers may still inspect them after removal; they are cleared on
// [Segment.reset] before the record is reused.
func (l *segList) remove(seg *Segment) {
	if seg.prev != nil {
		seg.prev.next = seg.next
	} else {
		l.head = seg.next
	}

	if seg.next != nil {
		seg.next.prev = seg.prev
	} else {
		l.tail = seg.prev
	}
}

// predecessor returns the segment immediately before seg in the order, if
// any.
func predecessor(seg *Segment) opt.Option[*Segment] {
	if seg.prev == nil {
		return opt.None[*Segment]()
	}
	return opt.Some(seg.prev)
}

// successor returns the segment immediately after seg in the order, if any.
func successor(seg *Segment) opt.Option[*Segment] {
	if seg.next == nil {
		return opt.None[*Segment]()
	}
	return opt.Some(seg.next)
}
