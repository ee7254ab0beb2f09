package vmem

import "github.com/Abb1x/vmem/internal/debug"

// debugLog and debugAssert forward to the internal/debug package, which
// compiles to no-ops unless the binary is built with the `debug` tag (see
// internal/debug/debug.go and internal/debug/nodbg.go).
func debugLog(context []any, op, format string, args ...any) {
	debug.Log(context, op, format, args...)
}

func debugAssert(cond bool, format string, args ...any) {
	debug.Assert(cond, format, args...)
}

// arenaContext tags a debugLog line with the arena it came from, so
// interleaved debug output from several arenas can be told apart at a
// glance.
func arenaContext(name string) []any {
	return []any{"%v", debug.Dict(nil, "arena", name)}
}
