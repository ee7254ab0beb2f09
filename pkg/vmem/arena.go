package vmem

import (
	"fmt"
	"sync"

	"github.com/Abb1x/vmem/pkg/opt"
	"github.com/Abb1x/vmem/pkg/res"
)

// maxNameLen bounds Arena.name, per §3's "fixed upper bound, e.g. 64".
const maxNameLen = 64

// AllocFunc is the parent-arena import hook (§6.3): invoked by an arena
// with a non-None source when its free supply is exhausted. Not called by
// this core; reserved for the hierarchical-import feature explicitly left
// unspecified by §1/§9.
type AllocFunc func(source *Arena, size uintptr, flags Flags) res.Result[uintptr]

// FreeFunc is the counterpart of [AllocFunc], returning an imported range
// to the parent arena on destroy. Not called by this core.
type FreeFunc func(source *Arena, addr, size uintptr)

// Arena owns a set of disjoint spans of an integer address space and
// services sized/aligned/phased allocation requests against them (§2).
//
// All public operations serialize on a single arena-wide mutex (§5): this
// is the locking discipline the spec calls "sufficient and correct," and it
// is distinct from the process-global segment-pool mutex so that a pool
// refill never has to wait on an unrelated arena.
type Arena struct {
	mu sync.Mutex

	name              string
	base, size        uintptr
	quantum           uintptr
	qcacheMax         uintptr
	allocFn           opt.Option[AllocFunc]
	freeFn            opt.Option[FreeFunc]
	source            opt.Option[*Arena]
	flags             Flags

	order segList
	spans []*Segment
	free  freeIndex
	hash  allocHash
}

// Create initializes a new Arena (§4.8, §6.1). If source is None and size
// is non-zero, an initial span covering [base, base+size) is installed via
// [Arena.AddSpan].
//
// Create calls [Bootstrap] itself, so a fresh process need not call it
// separately before creating its first arena.
func Create(
	name string,
	base, size, quantum uintptr,
	allocFn opt.Option[AllocFunc],
	freeFn opt.Option[FreeFunc],
	source opt.Option[*Arena],
	qcacheMax uintptr,
	flags Flags,
) (*Arena, error) {
	Bootstrap()

	if len(name) > maxNameLen {
		return nil, &InvalidArgumentError{Reason: fmt.Sprintf("name %q exceeds %d bytes", name, maxNameLen)}
	}
	if quantum == 0 || quantum&(quantum-1) != 0 {
		return nil, &InvalidArgumentError{Reason: "quantum must be a power of two"}
	}
	if source.IsSome() {
		// §1/§6.3/§9: the fetch algorithm for hierarchical import is
		// explicitly not specified by this core; callers must set
		// source = None.
		return nil, &InvalidArgumentError{Reason: "arena import from a parent arena is not implemented"}
	}
	if _, err := flags.policy(); err != nil {
		return nil, err
	}

	a := &Arena{
		name:      name,
		base:      base,
		size:      size,
		quantum:   quantum,
		qcacheMax: qcacheMax,
		allocFn:   allocFn,
		freeFn:    freeFn,
		source:    source,
		flags:     flags,
		hash:      newAllocHash(),
	}

	if size > 0 {
		if err := a.AddSpan(base, size); err != nil {
			return nil, err
		}
	}

	debugLog(arenaContext(name), "create", "%q base=%#x size=%#x quantum=%#x", name, base, size, quantum)

	return a, nil
}

// Name returns the arena's identifier.
func (a *Arena) Name() string { return a.name }

// Quantum returns the arena's minimum allocation unit.
func (a *Arena) Quantum() uintptr { return a.quantum }

// AddSpan installs a new span [addr, addr+size) (§4.8). Spans are appended
// and never removed by this core. The new span's range must not overlap
// any existing span; a violation is a programming-contract error (§7
// Corruption): it panics in debug builds via debug.Assert and always
// returns a [CorruptionError] so release builds can recover.
func (a *Arena) AddSpan(addr, size uintptr) error {
	if size == 0 {
		return &InvalidArgumentError{Reason: "span size must be non-zero"}
	}
	if addr%a.quantum != 0 || size%a.quantum != 0 {
		return &InvalidArgumentError{Reason: "span base and size must be quantum-aligned"}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	end := addr + size
	for _, sp := range a.spans {
		if addr < sp.End() && sp.base < end {
			debugAssert(false, "AddSpan: [%#x,%#x) overlaps span [%#x,%#x)", addr, end, sp.base, sp.End())
			return newCorruptionError(
				"span [%#x,%#x) overlaps existing span [%#x,%#x)", addr, end, sp.base, sp.End())
		}
	}

	span, err := globalPool.acquire()
	if err != nil {
		return err
	}
	free, err := globalPool.acquire()
	if err != nil {
		globalPool.release(span)
		return err
	}

	span.reset(addr, size, SegSpan)
	free.reset(addr, size, SegFree)

	prev := a.insertionPoint(addr)
	a.order.insertAfter(prev, span)
	a.order.insertAfter(span, free)

	a.spans = append(a.spans, span)
	a.free.insert(free)

	debugLog(arenaContext(a.name), "add_span", "[%#x,%#x)", addr, end)

	return nil
}

// insertionPoint finds the segment after which a new span header belongs so
// that the address order (§4.2) stays address-sorted even when spans are
// added out of address order. Callers hold a.mu.
func (a *Arena) insertionPoint(addr uintptr) *Segment {
	var prev *Segment
	for s := a.order.head; s != nil && s.base <= addr; s = s.next {
		prev = s
	}
	return prev
}

// XAllocRequest is the constraint tuple accepted by [Arena.XAlloc] (§6.1).
// Align of zero means "use the arena's quantum" (§4.5). MinAddr/MaxAddr
// default to unbounded when None.
type XAllocRequest struct {
	Size, Align, Phase, NoCross uintptr
	MinAddr, MaxAddr            opt.Option[uintptr]
	Flags                       Flags
}

func (a *Arena) resolvePolicy(f Flags) (Flags, error) {
	eff := f
	if eff&(VMInstantFit|VMBestFit) == 0 {
		eff |= a.flags & (VMInstantFit | VMBestFit)
	}
	return eff.policy()
}

func (a *Arena) validate(req XAllocRequest) (constraint, Flags, error) {
	if req.Size == 0 {
		return constraint{}, 0, &InvalidArgumentError{Reason: "size must be non-zero"}
	}
	if req.Size%a.quantum != 0 {
		return constraint{}, 0, &InvalidArgumentError{Reason: "size must be a multiple of the arena quantum"}
	}

	align := req.Align
	if align == 0 {
		align = a.quantum
	}
	if align&(align-1) != 0 {
		return constraint{}, 0, &InvalidArgumentError{Reason: "align must be a power of two"}
	}
	if align%a.quantum != 0 {
		return constraint{}, 0, &InvalidArgumentError{Reason: "align must be a multiple of the arena quantum"}
	}
	if req.Phase >= align {
		return constraint{}, 0, &InvalidArgumentError{Reason: "phase must be less than align"}
	}
	if req.NoCross != 0 {
		// §4.5 step 4 / §9: reserved, no known caller uses it.
		return constraint{}, 0, &InvalidArgumentError{Reason: "nocross is not implemented"}
	}

	policy, err := a.resolvePolicy(req.Flags)
	if err != nil {
		return constraint{}, 0, err
	}

	c := constraint{
		size:    req.Size,
		align:   align,
		phase:   req.Phase,
		nocross: req.NoCross,
		minaddr: req.MinAddr.UnwrapOrDefault(),
		maxaddr: req.MaxAddr.UnwrapOrDefault(),
	}

	return c, policy, nil
}

// XAlloc services a sized/aligned/phased/bounded allocation request (§4.6,
// §6.1). It returns a [res.Result] carrying the base address of the newly
// allocated segment, or a tagged error; no partial state is left behind on
// failure (§7).
func (a *Arena) XAlloc(req XAllocRequest) res.Result[uintptr] {
	c, policy, err := a.validate(req)
	if err != nil {
		return res.Err[uintptr](err)
	}

	// Pre-acquire both records that might be needed for splitting *before*
	// taking any decision that requires them (§9 "Recursive-allocation
	// hazard"): worst case one for a low-side remainder, one for the
	// allocated segment itself.
	r1, err := globalPool.acquire()
	if err != nil {
		return res.Err[uintptr](err)
	}
	r2, err := globalPool.acquire()
	if err != nil {
		globalPool.release(r1)
		return res.Err[uintptr](err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var seg *Segment
	var start uintptr
	var ok bool

	if policy == VMBestFit {
		seg, start, ok = searchBestFit(&a.free, c)
	} else {
		seg, start, ok = searchInstantFit(&a.free, c)
	}

	if !ok {
		globalPool.release(r1)
		globalPool.release(r2)
		return res.Err[uintptr](&NoSpaceError{Size: c.size, Align: c.align, Phase: c.phase})
	}

	a.free.remove(seg)
	allocated := a.split(seg, start, c, r1, r2)

	debugLog(arenaContext(a.name), "xalloc", "%#x (size=%#x)", allocated.base, allocated.size)

	return res.Ok(allocated.base)
}

// split implements §4.6's splitting algorithm once seg and start have been
// chosen: carve off a low-side free remainder if start > seg.base, then
// either carve off a tail free remainder or award the whole segment,
// depending on whether the leftover is at least one quantum.
//
// r1 and r2 are pre-acquired records; any left unused are returned to the
// pool before this returns.
func (a *Arena) split(seg *Segment, start uintptr, c constraint, r1, r2 *Segment) *Segment {
	origBase, origEnd := seg.base, seg.End()

	take := func() *Segment {
		if r1 != nil {
			s := r1
			r1 = nil
			return s
		}
		s := r2
		r2 = nil
		return s
	}

	if start > origBase {
		low := take()
		low.reset(origBase, start-origBase, SegFree)
		a.order.insertAfter(seg.prev, low)
		a.free.insert(low)

		seg.base = start
		seg.size = origEnd - start
	}

	var allocated *Segment

	if seg.size > c.size && seg.size-c.size >= a.quantum {
		tailBase := start + c.size
		tailSize := seg.size - c.size

		allocated = take()
		allocated.reset(start, c.size, SegAllocated)
		a.order.insertAfter(seg.prev, allocated)

		seg.base = tailBase
		seg.size = tailSize
		a.free.insert(seg)
	} else {
		seg.typ = SegAllocated
		allocated = seg
	}

	a.hash.insert(allocated)

	if r1 != nil {
		globalPool.release(r1)
	}
	if r2 != nil {
		globalPool.release(r2)
	}

	return allocated
}

// XFree returns a previously allocated range to the arena (§4.7). size
// must match the size supplied to the XAlloc call that produced addr; a
// mismatch, a double free, or a free of an address this arena never
// allocated is a programming-contract violation and panics with a
// [CorruptionError] (§7: "xfree never fails at the public boundary").
func (a *Arena) XFree(addr, size uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()

	seg, ok := a.hash.lookup(addr)
	if !ok {
		panic(newCorruptionError("free of unallocated address %#x", addr))
	}
	if seg.size != size {
		panic(newCorruptionError("free size mismatch at %#x: allocated %#x, freed %#x", addr, seg.size, size))
	}

	a.hash.remove(seg)
	seg.typ = SegFree

	// A SegSpan neighbor marks a span boundary (§4.7 step 3): span headers
	// are never SegFree, so this check alone keeps coalescing from crossing
	// into a different span.
	if p := predecessor(seg); p.IsSome() {
		pr := *p.Value
		if pr.typ == SegFree {
			a.free.remove(pr)
			a.order.remove(pr)
			seg.base = pr.base
			seg.size += pr.size
			globalPool.release(pr)
		}
	}

	if s := successor(seg); s.IsSome() {
		sc := *s.Value
		if sc.typ == SegFree {
			a.free.remove(sc)
			a.order.remove(sc)
			seg.size += sc.size
			globalPool.release(sc)
		}
	}

	a.free.insert(seg)

	debugLog(arenaContext(a.name), "xfree", "%#x (size=%#x)", addr, size)
}

// Destroy releases every segment this arena owns back to the segment pool.
// §4.8 leaves this unspecified beyond "release all segments... and invoke
// free_fn on each imported SPAN (once import is implemented)"; since this
// core never produces imported spans, free_fn is never invoked here.
func (a *Arena) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for s := a.order.head; s != nil; {
		next := s.next
		globalPool.release(s)
		s = next
	}

	a.order = segList{}
	a.spans = nil
	a.free = freeIndex{}
	a.hash = newAllocHash()

	debugLog(arenaContext(a.name), "destroy", "%q", a.name)
}
