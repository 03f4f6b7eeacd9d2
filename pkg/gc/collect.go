package gc

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/value"
)

// Collect runs one stop-the-world mark-and-sweep cycle: mark roots from
// every registered RootSource plus every infinite-ref cell, sweep the
// allocation list, and double the high-water mark. Callers are
// responsible for having already stopped every mutator at the step
// lock — Collect itself does not know about cursors or the scheduler,
// only about RootSource.
func (g *GC) Collect() Stats {
	g.mu.Lock()
	g.sweeping = false // mark phase: allocation is still forbidden by convention, not enforced here
	roots := append([]RootSource(nil), g.roots...)
	g.mu.Unlock()

	marked := make(map[*value.Data]bool)
	for _, src := range roots {
		for _, ref := range src.Roots() {
			markReference(ref, marked)
		}
	}

	g.mu.Lock()
	for _, d := range g.allocs {
		if d.InfiniteRefs > 0 {
			markOne(d, marked)
		}
	}

	g.sweeping = true
	alive := g.allocs[:0]
	freed := 0
	for _, d := range g.allocs {
		if marked[d] {
			d.Marked = false // reset for next cycle
			alive = append(alive, d)
		} else {
			freed++
		}
	}
	g.allocs = alive
	g.liveCount = len(alive)
	g.sweeping = false

	g.highWater *= 2
	g.collections++
	stats := Stats{Live: g.liveCount, HighWater: g.highWater, Collections: g.collections}
	g.mu.Unlock()

	rt.Log.Debug("gc collect", "freed", freed, "live", stats.Live, "high_water", stats.HighWater)
	return stats
}

func markReference(ref *value.Reference, marked map[*value.Data]bool) {
	if ref == nil {
		return
	}
	markOne(ref.Get(), marked)
}

func markOne(d *value.Data, marked map[*value.Data]bool) {
	if d == nil || marked[d] {
		return
	}
	marked[d] = true
	d.Marked = true

	switch d.Format {
	case value.FormatObject:
		markObject(d.Obj, marked)
	case value.FormatPackage:
		markPackage(d.Pkg, marked)
	case value.FormatFunction:
		// Function handles reference modules/IPs, not live Data.
	}
}

func markObject(o *value.Object, marked map[*value.Data]bool) {
	if o == nil {
		return
	}
	for _, s := range o.Slots {
		markReference(s, marked)
	}
	switch n := o.Native.(type) {
	case *value.ArrayData:
		for _, e := range n.Elems {
			markReference(e, marked)
		}
	case *value.HashData:
		for _, k := range n.Keys() {
			markReference(k, marked)
			if v, ok := n.Get(k.Get()); ok {
				markReference(v, marked)
			}
		}
	}
	if o.Class != nil {
		markClass(o.Class, marked)
	}
}

func markClass(c *value.Class, marked map[*value.Data]bool) {
	for _, ref := range c.Globals {
		markReference(ref, marked)
	}
	if c.Package != nil {
		markPackage(c.Package, marked)
	}
}

func markPackage(p *value.Package, marked map[*value.Data]bool) {
	if p == nil {
		return
	}
	for _, ref := range p.Globals.All() {
		markReference(ref, marked)
	}
	for _, cls := range p.Classes() {
		markClass(cls, marked)
	}
	for _, child := range p.Packages() {
		markPackage(child, marked)
	}
}
