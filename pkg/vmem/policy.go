package vmem

// searchInstantFit implements §4.6's INSTANTFIT policy: start at the
// bucket that is guaranteed to hold only segments >= size (bumping by one
// bucket when size isn't a power of two, since that bucket's segments may
// still be smaller than size), then probe exactly the head of each bucket
// in turn, advancing to the next bucket on a miss rather than walking the
// bucket's chain — the reference only ever takes `LIST_FIRST(list)` for
// INSTANTFIT (original_source/src/vmem.c), leaving the exhaustive
// per-bucket scan to BESTFIT. This keeps the O(1)-per-bucket probe count
// scenario 6 requires.
func searchInstantFit(idx *freeIndex, c constraint) (*Segment, uintptr, bool) {
	start := bucketIndex(c.size)
	if c.size&(c.size-1) != 0 { // not a power of two
		start++
	}

	for b := start; b < freelistN; b++ {
		seg := idx.buckets[b]
		if seg == nil {
			continue
		}
		if addr, ok := fit(seg, c); ok {
			return seg, addr, true
		}
	}

	return nil, 0, false
}

// searchBestFit implements §4.6's BESTFIT policy: walk buckets from the
// exact floor(log2(size)) bucket upward; within each bucket, scan every
// segment and keep the smallest one that fits. Stop at the first bucket
// that yielded any candidate, since any fit in a higher bucket is strictly
// larger than every fit in a lower one.
func searchBestFit(idx *freeIndex, c constraint) (*Segment, uintptr, bool) {
	start := bucketIndex(c.size)

	for b := start; b < freelistN; b++ {
		var best *Segment
		var bestAddr uintptr

		for seg := idx.buckets[b]; seg != nil; seg = seg.freeNext {
			addr, ok := fit(seg, c)
			if !ok {
				continue
			}
			if best == nil || seg.size < best.size {
				best, bestAddr = seg, addr
			}
		}

		if best != nil {
			return best, bestAddr, true
		}
	}

	return nil, 0, false
}
