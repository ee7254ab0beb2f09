package vmem

// constraint is the placement constraint tuple accepted by [Arena.XAlloc]
// and consumed by the fit engine (§4.5).
type constraint struct {
	size, align, phase, nocross uintptr
	minaddr, maxaddr            uintptr // 0 maxaddr means "unbounded"
}

// alignUp rounds addr up to the nearest multiple of align, the Go port of
// the reference's `VMEM_ALIGNUP` macro. align must be a power of two.
func alignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// fit attempts to place c's request inside seg, a SegFree candidate,
// returning the chosen start address on success (§4.5).
//
// Per §9's "Open question," the search window is the *intersection* of
// [minaddr, maxaddr] with seg's range (max of the two starts, min of the
// two ends) — not the reference C's apparently-swapped min/max, which the
// spec calls out as almost certainly a bug.
func fit(seg *Segment, c constraint) (uintptr, bool) {
	if c.nocross != 0 {
		// Reserved (§4.5 step 4, §9): no known caller uses it.
		return 0, false
	}

	winStart := seg.base
	if c.minaddr > winStart {
		winStart = c.minaddr
	}

	winEnd := seg.End()
	if c.maxaddr != 0 && c.maxaddr < winEnd {
		winEnd = c.maxaddr
	}

	if winStart >= winEnd {
		return 0, false
	}

	align := c.align
	if align == 0 {
		align = 1
	}

	start := alignUp(winStart-c.phase, align) + c.phase
	if start < winStart {
		start += align
	}

	if start < seg.base || start+c.size > winEnd {
		return 0, false
	}

	return start, true
}
