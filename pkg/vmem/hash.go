package vmem

import "github.com/dolthub/maphash"

// hashBuckets is the fixed bucket count for the allocated hash (§4.4),
// chosen as a power of two so the modulo reduction is a mask.
const hashBuckets = 256

// allocHash is the allocated-segment hash (§4.4): a fixed-size bucket array
// indexed by a well-mixed hash of the segment's base address, with
// singly-linked collision chains. dolthub/maphash is the teacher's own hash
// dependency (used the same way in pkg/arena/swiss/map.go to hash generic
// keys); here it hashes a segment's base address directly.
type allocHash struct {
	hasher  maphash.Hasher[uintptr]
	buckets [hashBuckets]*Segment
}

func newAllocHash() allocHash {
	return allocHash{hasher: maphash.NewHasher[uintptr]()}
}

func (h *allocHash) bucket(base uintptr) int {
	return int(h.hasher.Hash(base) & (hashBuckets - 1))
}

// insert adds seg, a SegAllocated segment, to the chain selected by its
// base address.
func (h *allocHash) insert(seg *Segment) {
	b := h.bucket(seg.base)
	seg.hashNext = h.buckets[b]
	h.buckets[b] = seg
}

// lookup walks the chain for addr and returns the matching SegAllocated
// segment, if any.
func (h *allocHash) lookup(addr uintptr) (*Segment, bool) {
	for s := h.buckets[h.bucket(addr)]; s != nil; s = s.hashNext {
		if s.base == addr {
			return s, true
		}
	}
	return nil, false
}

// remove detaches seg from its chain. seg must be present, as established
// by a prior successful lookup.
func (h *allocHash) remove(seg *Segment) {
	b := h.bucket(seg.base)

	if h.buckets[b] == seg {
		h.buckets[b] = seg.hashNext
		seg.hashNext = nil
		return
	}

	for p := h.buckets[b]; p != nil; p = p.hashNext {
		if p.hashNext == seg {
			p.hashNext = seg.hashNext
			seg.hashNext = nil
			return
		}
	}

	debugAssert(false, "allocHash.remove: segment %p not found in bucket %d", seg, b)
}
