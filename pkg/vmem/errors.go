package vmem

import (
	"fmt"

	"github.com/Abb1x/vmem/internal/debug"
	"github.com/Abb1x/vmem/pkg/xerrors"
)

// NoSpaceError is returned from [Arena.XAlloc] when no free segment
// satisfies the requested constraint tuple (§7).
type NoSpaceError struct {
	Size, Align, Phase uintptr
}

func (e *NoSpaceError) Error() string {
	return fmt.Sprintf("vmem: no space for size=%#x align=%#x phase=%#x", e.Size, e.Align, e.Phase)
}

// InvalidArgumentError is returned for zero size, non-quantum-aligned size
// or align, conflicting policy flags, or an unsupported nocross request
// (§7).
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "vmem: invalid argument: " + e.Reason
}

// PoolExhaustedError is returned when the segment pool could not be
// refilled (§7). It is recoverable in hosted contexts by surfacing it up to
// the caller, which is exactly what this Go port does; a kernel build would
// instead treat this as fatal. Stack captures where the exhausted acquire
// was made from, since by the time a caller sees this the pool's own state
// has already moved on.
type PoolExhaustedError struct {
	Reserve int
	Stack   string
}

func (e *PoolExhaustedError) Error() string {
	return fmt.Sprintf("vmem: segment pool exhausted (reserve=%d)", e.Reserve)
}

// newPoolExhaustedError builds a PoolExhaustedError with a stack trace
// captured at the acquire call site (skip past this function and acquire
// itself).
func newPoolExhaustedError(reserve int) *PoolExhaustedError {
	return &PoolExhaustedError{Reserve: reserve, Stack: debug.Stack(4)}
}

// CorruptionError reports a violated programming contract: a free of an
// unknown address, a double free, or a broken tiling invariant (§7). These
// are not supposed to be recoverable; [Arena.XFree] panics with one instead
// of returning it, matching §7's "a corrupt call is undefined behavior and
// may abort." Stack is captured at construction so the panic carries the
// call site that tripped the invariant, not just the invariant that broke.
type CorruptionError struct {
	Reason string
	Stack  string
}

func (e *CorruptionError) Error() string {
	return "vmem: corruption: " + e.Reason
}

// newCorruptionError builds a CorruptionError with a stack trace captured
// two frames up (past this function and its immediate caller in arena.go).
func newCorruptionError(format string, args ...any) *CorruptionError {
	return &CorruptionError{Reason: fmt.Sprintf(format, args...), Stack: debug.Stack(4)}
}

// IsNoSpace reports whether err is (or wraps) a [NoSpaceError], the only
// outcome of [Arena.XAlloc] a caller is generally expected to branch on.
func IsNoSpace(err error) bool {
	_, ok := xerrors.AsA[*NoSpaceError](err)
	return ok
}
