package iterator

import "github.com/mint-lang/mint/pkg/value"

// Range is a numeric range iterator: head, tail, and a signed step
// rather than a separate direction boolean, so Empty()'s distance check
// generalizes to both ascending and descending ranges (matching
// original_source/iterator_range.cpp — see SPEC_FULL.md).
type Range struct {
	head, tail float64
	step       float64
}

// NewRange builds a numeric range from head to tail, where tail is the
// last value produced. step must be +1 or -1; callers (the `..`/`...`
// operators) pick the sign from head/tail ordering, and the exclusive
// `...` form passes its right operand minus step as tail.
func NewRange(head, tail, step float64) *Range {
	return &Range{head: head, tail: tail, step: step}
}

func (r *Range) Value() (*value.Reference, error) {
	if r.Empty() {
		return nil, unsupported("value() on an empty range")
	}
	return value.NewReference(&value.Data{Format: value.FormatNumber, Number: r.head}, value.FlagDefault), nil
}

func (r *Range) Next() error {
	if r.Empty() {
		return unsupported("next() on an empty range")
	}
	r.head += r.step
	return nil
}

func (r *Range) Empty() bool {
	d := r.head - (r.tail + r.step)
	if d < 0 {
		d = -d
	}
	return d < 1
}

func (r *Range) Size() int {
	n := 0
	cur := *r
	for !cur.Empty() {
		n++
		cur.head += cur.step
	}
	return n
}

func (r *Range) Capacity() int { return r.Size() }
func (r *Range) Reserve(int)   {}

func (r *Range) Yield(*value.Reference) error {
	return unsupported("yield on a range iterator")
}

func (r *Range) Copy() Data {
	items := NewItems()
	cur := *r
	for !cur.Empty() {
		items.items = append(items.items, value.NewReference(&value.Data{Format: value.FormatNumber, Number: cur.head}, value.FlagDefault))
		cur.head += cur.step
	}
	return items
}

func (r *Range) Mark(func(*value.Reference)) {} // numbers carry no References
