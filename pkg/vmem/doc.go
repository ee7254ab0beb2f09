// Package vmem is a Go port of the Bonwick-Adams "VMem" resource allocator
// core: an arena that tiles an integer address space into boundary-tagged
// segments and services instant-fit or best-fit allocation requests with
// alignment, phase, and address-bound constraints.
//
// See the segment pool, free-size index, allocated hash, fit engine, and
// allocation policy files for the components that make up an [Arena]; the
// quantum cache, hierarchical import, and the host page supplier's internals
// are external collaborators this package does not implement (see
// [PageSupplier] for the one hook it does expose).
package vmem
