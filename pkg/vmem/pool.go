package vmem

import (
	"sync"

	"github.com/Abb1x/vmem/internal/xsync"
)

// minReserve is the low-water mark below which repopulate refills the pool
// (§4.1's NFREESEGS_MIN). refillSize is the number of records sliced out of
// one page-supplier call.
const (
	minReserve = 8
	refillSize = 64
)

// PageSupplier obtains n fresh [Segment] records backed by a new page-sized
// allocation, for use when the segment pool's reserve runs low. The default
// implementation asks the host heap for a slice, playing the role of
// vmem.c's `alloc_pages`; a kernel-hosted implementation would instead slice
// a real page obtained from the host's page allocator (§6.3).
//
// PageSupplier is a package variable rather than an [Arena] field because
// the segment pool itself is process-global (§5): every arena shares one
// reserve, and allocating a boundary tag must never recurse into an arena's
// own xalloc.
var PageSupplier = func(n int) []Segment { return make([]Segment, n) }

// pageCache hands out refill pages through the teacher's xsync.Pool
// wrapper over sync.Pool. Pages are never Put back, so every Get calls New
// and asks PageSupplier for a fresh page: the "host heap" degenerate case
// the §4.1 contract calls out explicitly ("On hosts where the language
// runtime provides general heap allocation, the pool may degenerate to
// direct host allocation").
var pageCache = xsync.Pool[[]Segment]{
	New: func() *[]Segment {
		s := PageSupplier(refillSize)
		return &s
	},
}

// segmentPool is the process-wide reserve of boundary-tag records (§4.1).
// It has its own mutex, independent of any arena's lock, so that a refill
// can take place while some other arena is mid-operation (§5).
type segmentPool struct {
	mu    sync.Mutex
	free  *Segment
	nfree int
}

var globalPool segmentPool

// push adds s to the free list. Caller must hold p.mu.
func (p *segmentPool) push(s *Segment) {
	s.prev, s.next, s.freeNext, s.hashNext = nil, nil, nil, nil
	s.next = p.free
	p.free = s
	p.nfree++
}

// pop removes and returns the head of the free list, or nil if empty.
// Caller must hold p.mu.
func (p *segmentPool) pop() *Segment {
	s := p.free
	if s == nil {
		return nil
	}
	p.free = s.next
	s.next = nil
	p.nfree--
	return s
}

// acquire returns an uninitialized segment record. Per §4.1 it must never
// fail under normal operation: it refills from the page supplier itself if
// the reserve has been exhausted, and only surfaces [PoolExhaustedError] if
// the page supplier itself fails to produce anything.
func (p *segmentPool) acquire() (*Segment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.nfree < minReserve {
		p.repopulateLocked()
	}

	s := p.pop()
	if s == nil {
		return nil, newPoolExhaustedError(p.nfree)
	}

	debugLog(nil, "seg_acquire", "%p (%d left)", s, p.nfree)

	return s, nil
}

// release returns s to the reserve for reuse.
func (p *segmentPool) release(s *Segment) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.push(s)

	debugLog(nil, "seg_release", "%p (%d left)", s, p.nfree)
}

// repopulate guarantees the reserve holds at least minReserve records,
// fetching one page-supplier call (sliced into refillSize records) if not.
func (p *segmentPool) repopulate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.repopulateLocked()
}

func (p *segmentPool) repopulateLocked() {
	if p.nfree >= minReserve {
		return
	}

	page := pageCache.Get()
	for i := range *page {
		p.push(&(*page)[i])
	}

	debugLog(nil, "repopulate", "added %d segments (%d total)", len(*page), p.nfree)
}
