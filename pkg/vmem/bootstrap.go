package vmem

import "sync"

// bootstrapSize is the number of statically-sized segment records seeded
// before any arena exists (§4.1). The reference C implementation keeps this
// reserve in `static VmemSegment static_segs[128]`.
const bootstrapSize = 128

var (
	bootstrapReserve [bootstrapSize]Segment
	bootstrapOnce    sync.Once
)

// Bootstrap seeds the global segment pool from the static reserve. It is
// idempotent and safe to call from multiple goroutines, but per §4.1 it is
// the prerequisite for any arena operation and is meant to be called exactly
// once at process init; [Create] calls it automatically so callers rarely
// need to invoke it directly.
func Bootstrap() {
	bootstrapOnce.Do(func() {
		globalPool.mu.Lock()
		defer globalPool.mu.Unlock()

		for i := range bootstrapReserve {
			globalPool.push(&bootstrapReserve[i])
		}

		debugLog(nil, "bootstrap", "seeded %d segments", bootstrapSize)
	})
}
