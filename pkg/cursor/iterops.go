package cursor

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/iterator"
	"github.com/mint-lang/mint/pkg/operator"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// iterInit materializes an Iterator object over the popped value
// (the construction rules, via operator.Init) and binds it
// into the fast slot the instruction names. range_init and find_init
// share this implementation; they differ only in what the compiler
// does with the resulting iterator (a for-in loop vs. a containment
// search).
func (c *Cursor) iterInit(n symbol.Node) error {
	ref := c.pop()
	obj := operator.Init(ref)
	iterRef := value.NewReference(&value.Data{Format: value.FormatObject, Obj: obj}, value.FlagDefault)
	slot := c.frame().Locals.DeclareAnonymous(iterRef)
	if slot != n.A {
		return rt.NewHostError(rt.KindUnsupported, "iterator fast slot mismatch: declared %d, instruction expects %d", slot, n.A)
	}
	return nil
}

func (c *Cursor) loadIterator(n symbol.Node) (iterator.Data, *value.Object, error) {
	ref, ok := c.frame().Locals.FastSlot(n.A)
	if !ok {
		return nil, nil, rt.NewHostError(rt.KindUnsupported, "iterator fast slot %d not declared", n.A)
	}
	d := ref.Get()
	if d == nil || d.Format != value.FormatObject || d.Obj == nil {
		return nil, nil, rt.NewHostError(rt.KindTypeMismatch, "fast slot %d is not an object", n.A)
	}
	data, ok := iterator.From(d.Obj)
	if !ok {
		return nil, nil, rt.NewHostError(rt.KindTypeMismatch, "fast slot %d is not an iterator", n.A)
	}
	return data, d.Obj, nil
}

// iterCheck pushes the iterator's current head and falls through when
// non-empty, or jumps to n.B (the loop's exit label) when exhausted.
func (c *Cursor) iterCheck(n symbol.Node) error {
	data, _, err := c.loadIterator(n)
	if err != nil {
		return err
	}
	if err := pumpIfSuspendedGenerator(data); err != nil {
		return err
	}
	if data.Empty() {
		c.IP = n.B
		return nil
	}
	val, err := data.Value()
	if err != nil {
		return err
	}
	c.push(val)
	return nil
}

// iterNext advances the iterator in the fast slot named by n.A.
func (c *Cursor) iterNext(n symbol.Node) error {
	data, _, err := c.loadIterator(n)
	if err != nil {
		return err
	}
	if err := pumpIfSuspendedGenerator(data); err != nil {
		return err
	}
	if data.Empty() {
		return nil
	}
	return data.Next()
}

// pumpIfSuspendedGenerator resumes a call-produced generator's detached
// cursor while its buffer is empty but it is still suspended mid-yield,
// one Pump at a time, until either a value is buffered or the generator
// actually finishes. This is the consumer side of create_generator: "on
// Iterator::next(), observe a non-null saved state ... and resume"
// (spec.md §4.4), applied lazily so a for-in loop only drives the
// generator as far as it is actually consumed.
func pumpIfSuspendedGenerator(data iterator.Data) error {
	gen, ok := data.(*iterator.Generator)
	if !ok {
		return nil
	}
	for gen.Empty() && gen.Suspended() {
		snap, ok := gen.State.FrameState.(frameSnapshot)
		if !ok || snap.Self == nil || snap.Self.Proc == nil {
			return rt.NewHostError(rt.KindUnsupported, "generator suspended with no resumable process")
		}
		if err := snap.Self.Proc.Pump(); err != nil {
			return err
		}
	}
	return nil
}
