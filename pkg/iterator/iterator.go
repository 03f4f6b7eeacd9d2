// Package iterator implements mint's iterator engine: the
// Items/Range/Generator variants unified behind one capability set, and
// the `iterator_init` construction rules.
package iterator

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/value"
)

// Data is the capability interface every IteratorData variant
// implements. Not every variant supports every capability: Range's
// Yield returns the `unsupported` host error, and its Reserve does
// nothing.
type Data interface {
	Value() (*value.Reference, error) // observe the head without advancing
	Next() error                      // advance (must be non-empty)
	Empty() bool
	Size() int
	Capacity() int
	Reserve(n int)
	Yield(ref *value.Reference) error
	Copy() Data // materialize into a fresh ItemsIterator
	Mark(visit func(*value.Reference))
}

// Init returns the Iterator object over ref, applying the construction
// rules: an iterator passes through unchanged; strings yield code
// points; arrays yield shared elements; hashes yield [key, value]
// sub-iterators; anything else yields itself as a single element.
func Init(ref *value.Reference) *value.Object {
	d := ref.Get()
	if d != nil && d.Format == value.FormatObject && d.Obj != nil && d.Obj.Class != nil && d.Obj.Class.Metatype == value.MetaIterator {
		return d.Obj // iterator_init(iter) === iter
	}

	items := NewItems()
	if d != nil && d.Format == value.FormatObject && d.Obj != nil {
		switch d.Obj.Class.Metatype {
		case value.MetaString:
			if sd, ok := d.Obj.Native.(*value.StringData); ok {
				for i := 0; i < sd.Len(); i++ {
					r, _ := sd.RuneAt(i)
					items.items = append(items.items, value.NewReference(&value.Data{
						Format: value.FormatObject,
						Obj:    value.NewStringObject(r),
					}, value.FlagDefault))
				}
				return wrap(items)
			}
		case value.MetaArray:
			if ad, ok := d.Obj.Native.(*value.ArrayData); ok {
				items.items = append(items.items, ad.Elems...)
				return wrap(items)
			}
		case value.MetaHash:
			if hd, ok := d.Obj.Native.(*value.HashData); ok {
				for _, k := range hd.Keys() {
					v, _ := hd.Get(k.Get())
					sub := NewItems()
					sub.items = append(sub.items, k, v)
					items.items = append(items.items, value.NewReference(&value.Data{
						Format: value.FormatObject,
						Obj:    wrap(sub),
					}, value.FlagDefault))
				}
				return wrap(items)
			}
		}
	}
	items.items = append(items.items, ref)
	return wrap(items)
}

func wrap(d Data) *value.Object {
	return &value.Object{Class: value.Builtin(value.MetaIterator), Native: d}
}

// From extracts the IteratorData native payload of an iterator Object,
// or nil if obj is not an iterator.
func From(obj *value.Object) (Data, bool) {
	if obj == nil || obj.Class == nil || obj.Class.Metatype != value.MetaIterator {
		return nil, false
	}
	d, ok := obj.Native.(Data)
	return d, ok
}

func unsupported(op string) error {
	return rt.NewHostError(rt.KindUnsupported, "%s is not supported by this iterator", op)
}
