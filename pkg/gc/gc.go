// Package gc implements mint's stop-the-world mark-and-sweep collector.
// It tracks and sweeps only the value.Data cells created through
// GC.Alloc; other packages also build value.Data literals directly, and
// those cells are never seen by Collect.
package gc

import (
	"sync"

	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/value"
)

// RootSource is implemented by anything the collector must ask for
// roots during a mark phase — in practice the scheduler, which knows
// about every live Cursor. Kept as an interface (rather than gc
// importing pkg/scheduler) so the dependency points the other way:
// scheduler imports gc, not the reverse.
type RootSource interface {
	// Roots returns every Reference reachable from process-global state
	// this source owns: operand stacks, symbol tables, waiting-call
	// slots, generator saved stacks, and so on.
	Roots() []*value.Reference
}

// GC is mint's garbage collector: a flat allocation list, a high-water
// mark that doubles after each cycle, and a single mutex serializing
// collect against allocation (the step lock already serializes mutator
// execution; this mutex exists for the narrower allocation-during-sweep
// check).
type GC struct {
	mu sync.Mutex
	allocs []*value.Data
	highWater int
	sweeping bool
	liveCount int
	roots []RootSource
	collections int
}

const defaultHighWater = 1024

// New creates a collector with the default initial high-water mark.
func New() *GC {
	return &GC{highWater: defaultHighWater}
}

// Register adds src as a root source consulted on every Collect. The
// scheduler registers itself once at startup.
func (g *GC) Register(src RootSource) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = append(g.roots, src)
}

// Alloc creates a fresh, zero-valued Data, links it into the GC's
// allocation list, and returns it uninitialized — callers must run
// Construct before the value is observed by mint code. Mirrors
// GarbageCollector::alloc<T> in 
func (g *GC) Alloc() (*value.Data, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sweeping {
		return nil, rt.NewHostError(rt.KindAllocDuringCollect, "alloc called while sweep is in progress")
	}
	d := &value.Data{Format: value.FormatNone}
	g.allocs = append(g.allocs, d)
	g.liveCount++
	return d, nil
}

// Construct runs the (trivial, VM-level) initializer for d: for object
// format this means nothing beyond what NewObject already lays out
// (member defaults are applied by the caller, since only the caller
// knows the class at hand); Construct exists as a contract point for
// parity with and to give a type-mismatch host error a
// home.
func (g *GC) Construct(d *value.Data, want value.Format) error {
	if d.Format != value.FormatNone && d.Format != want {
		return rt.NewHostError(rt.KindTypeMismatch, "construct expected %s, cell is %s", want, d.Format)
	}
	d.Format = want
	return nil
}

// ShouldCollect reports whether the live cell count has crossed the
// current high-water mark — the scheduler checks this at quiescence and
// calls Collect if true.
func (g *GC) ShouldCollect() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.liveCount >= g.highWater
}

// Use increments d's infinite-ref count, rooting it independent of
// tracing.
func Use(d *value.Data) {
	if d == nil {
		return
	}
	d.InfiniteRefs++
}

// Release decrements d's infinite-ref count. Reaching zero does not
// free d — it merely un-roots it, per 
func Release(d *value.Data) {
	if d == nil || d.InfiniteRefs == 0 {
		return
	}
	d.InfiniteRefs--
}

// Share returns another handle to the same Data — no allocation, no
// copy.
func Share(ref *value.Reference) *value.Reference {
	return value.NewReference(ref.Get(), ref.Flags)
}

// Clone performs mint's "value copy at top level only" semantics (see
// DESIGN.md's Open Question resolution): scalars copy the cell; objects
// copy the class pointer and slot array (the slots themselves keep
// pointing at the same Data as the original — a shallow copy of the
// slot array, not a shallow copy of the slot contents); containers copy
// their structure (e.g. the Array's element slice) but share inner
// references.
func (g *GC) Clone(ref *value.Reference) (*value.Reference, error) {
	src := ref.Get()
	if src == nil {
		return value.NewReference(nil, value.FlagDefault), nil
	}
	dst, err := g.Alloc()
	if err != nil {
		return nil, err
	}
	*dst = *src
	dst.Marked = false
	dst.InfiniteRefs = 0

	if src.Format == value.FormatObject && src.Obj != nil {
		dst.Obj = cloneObjectShallow(src.Obj)
	}
	return value.NewReference(dst, value.FlagDefault), nil
}

func cloneObjectShallow(o *value.Object) *value.Object {
	out := &value.Object{Class: o.Class}
	if len(o.Slots) > 0 {
		out.Slots = make([]*value.Reference, len(o.Slots))
		copy(out.Slots, o.Slots)
	}
	switch n := o.Native.(type) {
	case *value.ArrayData:
		elems := make([]*value.Reference, len(n.Elems))
		copy(elems, n.Elems)
		out.Native = value.NewArrayData(elems)
	case *value.HashData:
		out.Native = n.Clone()
	default:
		out.Native = o.Native
	}
	return out
}

// Stats exposes the counters useful for diagnostics and the
// GC-soundness test property (property 1).
type Stats struct {
	Live int
	HighWater int
	Collections int
}

func (g *GC) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{Live: g.liveCount, HighWater: g.highWater, Collections: g.collections}
}
