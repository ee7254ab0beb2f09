package vmem

import (
	"fmt"
	"strings"
)

// Dump renders the arena's segment order and allocated-hash contents as
// stable, diffable text (§6.4): one line per segment in address order,
// `[base_hex, end_hex) (type)` with an `(imported)` tag where applicable,
// followed by a hash-table dump of allocated segments. Two Dumps taken
// without intervening operations produce identical output (§8 "Idempotent
// dump").
func (a *Arena) Dump() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var b strings.Builder

	fmt.Fprintf(&b, "arena %q quantum=%#x\n", a.name, a.quantum)

	for s := a.order.head; s != nil; s = s.next {
		fmt.Fprintf(&b, "  [%#x, %#x) (%s)", s.base, s.End(), segTypeName[s.typ])
		if s.imported {
			b.WriteString(" (imported)")
		}
		b.WriteByte('\n')
	}

	b.WriteString("allocated:\n")
	for i, chain := range a.hash.buckets {
		if chain == nil {
			continue
		}
		fmt.Fprintf(&b, "  bucket %d:", i)
		for s := chain; s != nil; s = s.hashNext {
			fmt.Fprintf(&b, " [%#x, %#x)", s.base, s.End())
		}
		b.WriteByte('\n')
	}

	return b.String()
}
