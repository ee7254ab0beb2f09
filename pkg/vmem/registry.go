package vmem

import "github.com/Abb1x/vmem/internal/xsync"

// registry is a process-wide, concurrency-safe lookup table of arenas by
// name, a convenience beyond spec.md's core contract: production tooling
// built on this allocator generally wants to find "the kmem arena" or "the
// heap arena" by name for introspection (dump, stats) without having to
// thread a handle through every caller. It is grounded on
// internal/xsync.Map, the teacher's strongly-typed wrapper over sync.Map.
var registry xsync.Map[string, *Arena]

// Register makes a reachable by [Lookup] under its own name. It does not
// affect the arena's behavior; forgetting to call it only means the
// arena is unreachable by name, not unusable.
func Register(a *Arena) { registry.Store(a.name, a) }

// Lookup finds a previously [Register]ed arena by name.
func Lookup(name string) (*Arena, bool) { return registry.Load(name) }
