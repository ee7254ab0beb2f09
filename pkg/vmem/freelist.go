package vmem

import "math/bits"

// freelistN is the number of free-size buckets (§3: "typical N=64, one per
// bit width"), matching a 64-bit address space.
const freelistN = 64

// freeIndex is the free-size index (§4.3): an array of buckets, one per
// power-of-two size class, holding SegFree segments in LIFO order. Given
// size s, bucket index is floor(log2(s)); any segment reachable from a
// bucket is >= 2^index, so a request for s only ever needs to walk forward
// to higher buckets.
type freeIndex struct {
	buckets [freelistN]*Segment
}

// bucketIndex computes floor(log2(size)) via bits.Len64, the same
// `FREELISTS_N - clzl(size) - 1` identity the reference C computes with
// __builtin_clzl, adapted from `pkg/arena/recycle.go`'s sizeClassIndex
// (power-of-two size classing for a byte-oriented free list).
func bucketIndex(size uintptr) int {
	debugAssert(size > 0, "bucketIndex: size must be positive, got %d", size)

	return bits.Len64(uint64(size)) - 1
}

// insert adds seg, a SegFree segment, at the head of the bucket selected by
// its current size (§3 invariant 3: bucket coherence).
func (idx *freeIndex) insert(seg *Segment) {
	b := bucketIndex(seg.size)
	seg.freeNext = idx.buckets[b]
	idx.buckets[b] = seg
}

// remove detaches seg from the bucket selected by its current size. seg
// must actually be the head or reachable via freeNext links in that bucket.
func (idx *freeIndex) remove(seg *Segment) {
	b := bucketIndex(seg.size)

	if idx.buckets[b] == seg {
		idx.buckets[b] = seg.freeNext
		seg.freeNext = nil
		return
	}

	for p := idx.buckets[b]; p != nil; p = p.freeNext {
		if p.freeNext == seg {
			p.freeNext = seg.freeNext
			seg.freeNext = nil
			return
		}
	}

	debugAssert(false, "freeIndex.remove: segment %p not found in bucket %d", seg, b)
}
