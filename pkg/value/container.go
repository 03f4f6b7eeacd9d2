package value

import (
	"regexp"
	"unicode/utf8"
)

// StringData is the native payload of a MetaString object: an owned
// sequence of UTF-8 bytes indexed by code point, not by byte.
type StringData struct {
	bytes []byte
}

// NewStringData copies s into a fresh, owned StringData.
func NewStringData(s string) *StringData {
	return &StringData{bytes: []byte(s)}
}

func (s *StringData) String() string { return string(s.bytes) }

// Len returns the code point count, not the byte count.
func (s *StringData) Len() int { return utf8.RuneCount(s.bytes) }

// RuneAt returns the i-th code point as a single-rune string, matching
// how mint indexes strings ("a"[0] == "a").
func (s *StringData) RuneAt(i int) (string, bool) {
	if i < 0 {
		return "", false
	}
	n := 0
	for _, r := range string(s.bytes) {
		if n == i {
			return string(r), true
		}
		n++
	}
	return "", false
}

// Append mutates s in place by appending other's bytes. The `+`
// operator does not use it: concatenation builds a new StringData.
func (s *StringData) Append(other string) { s.bytes = append(s.bytes, other...) }

// ArrayData is the native payload of a MetaArray object: an ordered,
// O(1)-random-access sequence of References.
type ArrayData struct {
	Elems []*Reference
}

// NewArrayData wraps elems (no copy) as an ArrayData.
func NewArrayData(elems []*Reference) *ArrayData { return &ArrayData{Elems: elems} }

func (a *ArrayData) Len() int { return len(a.Elems) }

func (a *ArrayData) At(i int) (*Reference, bool) {
	if i < 0 || i >= len(a.Elems) {
		return nil, false
	}
	return a.Elems[i], true
}

func (a *ArrayData) Push(ref *Reference) { a.Elems = append(a.Elems, ref) }

// HashKey is the folded, comparable form of a value used as a Hash key.
// Numbers, booleans, and strings fold into comparable scalars; any other
// object keys by pointer identity of its underlying Data.
type HashKey struct {
	kind byte // 'n' number, 'b' boolean, 's' string, 'i' identity
	num float64
	str string
	ptr *Data
}

// HashKeyOf folds d into its HashKey.
func HashKeyOf(d *Data) HashKey {
	if d == nil {
		return HashKey{kind: 'i', ptr: nil}
	}
	switch d.Format {
	case FormatNumber:
		return HashKey{kind: 'n', num: d.Number}
	case FormatBoolean:
		n := 0.0
		if d.Boolean {
			n = 1.0
		}
		return HashKey{kind: 'n', num: n}
	case FormatObject:
		if d.Obj != nil && d.Obj.Class != nil && d.Obj.Class.Metatype == MetaString {
			if sd, ok := d.Obj.Native.(*StringData); ok {
				return HashKey{kind: 's', str: sd.String()}
			}
		}
		return HashKey{kind: 'i', ptr: d}
	default:
		return HashKey{kind: 'i', ptr: d}
	}
}

// HashData is the native payload of a MetaHash object: a mapping from
// folded key to value Reference, plus the original key Reference kept
// const so reads can share it (keys of a Hash, once inserted, are never
// mutated through the map).
type HashData struct {
	keys map[HashKey]*Reference
	values map[HashKey]*Reference
	order []HashKey
}

// NewHashData creates an empty hash.
func NewHashData() *HashData {
	return &HashData{keys: make(map[HashKey]*Reference), values: make(map[HashKey]*Reference)}
}

func (h *HashData) Len() int { return len(h.order) }

// Set inserts or overwrites the value bound to key's folded form. The
// key Reference is frozen const_value on first insertion.
func (h *HashData) Set(key, val *Reference) {
	hk := HashKeyOf(key.Get())
	if _, exists := h.values[hk]; !exists {
		h.order = append(h.order, hk)
		h.keys[hk] = NewReference(key.Get(), key.Flags|FlagConstValue)
	}
	h.values[hk] = val
}

func (h *HashData) Get(key *Data) (*Reference, bool) {
	v, ok := h.values[HashKeyOf(key)]
	return v, ok
}

// Keys returns the key References in insertion order.
func (h *HashData) Keys() []*Reference {
	out := make([]*Reference, 0, len(h.order))
	for _, hk := range h.order {
		out = append(out, h.keys[hk])
	}
	return out
}

// Clone returns a new HashData with its own key/value maps and order
// slice, so inserting or overwriting an entry in the clone leaves the
// original untouched. The key and value References themselves are
// shared, matching the same top-level-only copy semantics Clone uses
// for Array.
func (h *HashData) Clone() *HashData {
	out := &HashData{
		keys: make(map[HashKey]*Reference, len(h.keys)),
		values: make(map[HashKey]*Reference, len(h.values)),
		order: make([]HashKey, len(h.order)),
	}
	for k, v := range h.keys {
		out.keys[k] = v
	}
	for k, v := range h.values {
		out.values[k] = v
	}
	copy(out.order, h.order)
	return out
}

// RegexData is the native payload of a MetaRegex object: a compiled
// pattern plus the original initializer text so `/.../flags` round-trips
// on re-printing.
type RegexData struct {
	Source string // original literal text, including delimiters/flags
	Pattern string
	Flags string
	Compiled *regexp.Regexp
}
