package operator

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/iterator"
	"github.com/mint-lang/mint/pkg/value"
)

// Subscript implements `ref[index]`, dispatching on the container's
// metatype; a class overload of OpSubscript is tried first by Binary's
// caller before falling here (cursor calls Subscript directly for
// builtins, Binary for user classes).
func Subscript(container, index *value.Reference) (*value.Reference, error) {
	d := container.Get()
	if d.IsNone() {
		return nil, invalidNone(value.OpSubscript)
	}
	obj, ok := isObjectOfClass(d)
	if !ok {
		return nil, noMatch(value.OpSubscript, d, index.Get())
	}
	switch obj.Class.Metatype {
	case value.MetaArray:
		ad := obj.Native.(*value.ArrayData)
		i, ok := asNumber(index.Get())
		if !ok {
			return nil, noMatch(value.OpSubscript, d, index.Get())
		}
		elem, ok := ad.At(int(i))
		if !ok {
			return nil, rt.NewHostError(rt.KindUnsupported, "array index %v out of range", i)
		}
		return elem, nil
	case value.MetaHash:
		hd := obj.Native.(*value.HashData)
		v, ok := hd.Get(index.Get())
		if !ok {
			v = value.NewReference(&value.Data{Format: value.FormatNone}, value.FlagDefault)
			hd.Set(index, v)
		}
		return v, nil
	case value.MetaString:
		sd := obj.Native.(*value.StringData)
		i, ok := asNumber(index.Get())
		if !ok {
			return nil, noMatch(value.OpSubscript, d, index.Get())
		}
		r, ok := sd.RuneAt(int(i))
		if !ok {
			return nil, rt.NewHostError(rt.KindUnsupported, "string index %v out of range", i)
		}
		return str(r), nil
	default:
		return nil, noMatch(value.OpSubscript, d, index.Get())
	}
}

// SubscriptSet implements `ref[index] = val`.
func SubscriptSet(container, index, val *value.Reference) error {
	d := container.Get()
	if d.IsNone() {
		return invalidNone(value.OpSubscriptSet)
	}
	obj, ok := isObjectOfClass(d)
	if !ok {
		return noMatch(value.OpSubscriptSet, d, index.Get())
	}
	switch obj.Class.Metatype {
	case value.MetaArray:
		ad := obj.Native.(*value.ArrayData)
		i, ok := asNumber(index.Get())
		if !ok {
			return noMatch(value.OpSubscriptSet, d, index.Get())
		}
		idx := int(i)
		if idx < 0 {
			return rt.NewHostError(rt.KindUnsupported, "array index %v out of range", i)
		}
		for idx >= len(ad.Elems) {
			ad.Elems = append(ad.Elems, value.NewReference(&value.Data{Format: value.FormatNone}, value.FlagDefault))
		}
		ad.Elems[idx] = val
		return nil
	case value.MetaHash:
		hd := obj.Native.(*value.HashData)
		hd.Set(index, val)
		return nil
	default:
		return noMatch(value.OpSubscriptSet, d, index.Get())
	}
}

// Range implements `..` (inclusive) and `...` (exclusive), producing a
// RangeIterator object.
func Range(lhs, rhs *value.Reference, inclusive bool) (*value.Reference, error) {
	a, aok := asNumber(lhs.Get())
	b, bok := asNumber(rhs.Get())
	if !aok || !bok {
		return nil, noMatch(value.OpRangeInclusive, lhs.Get(), rhs.Get())
	}
	step := 1.0
	if a > b {
		step = -1.0
	}
	tail := b
	if !inclusive {
		tail = b - step
	}
	r := iterator.NewRange(a, tail, step)
	obj := &value.Object{Class: value.Builtin(value.MetaIterator), Native: r}
	return ref(&value.Data{Format: value.FormatObject, Obj: obj}), nil
}

// In implements the `in` operator as a boolean membership test of elem
// in container. It does not produce the items-iterator form over a
// collection: the cursor's `in` instruction always calls In.
func In(elem, container *value.Reference) (*value.Reference, error) {
	obj := Init(container)
	data, _ := iterator.From(obj)
	if data == nil {
		return nil, noMatch(value.OpIn, elem.Get(), container.Get())
	}
	for {
		if data.Empty() {
			return boolean(false), nil
		}
		v, err := data.Value()
		if err != nil {
			return nil, err
		}
		if valueEqual(elem.Get(), v.Get()) {
			return boolean(true), nil
		}
		if err := data.Next(); err != nil {
			return nil, err
		}
	}
}

// Init is exported so pkg/cursor can build the `for x in c` iterator
// without importing pkg/iterator directly for that one call; it simply
// forwards to iterator.Init.
func Init(ref *value.Reference) *value.Object { return iterator.Init(ref) }
