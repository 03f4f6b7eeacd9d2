package value

import "sync"

// builtinClasses holds the one singleton Class per builtin metatype,
// lazily created: a package-level registry guarded by a mutex rather
// than a template instantiation, since Go has no per-type static
// storage to hang it off.
var (
	builtinMu sync.Mutex
	builtinClasses = make(map[Metatype]*Class)
)

// Builtin returns the singleton Class for metatype m, creating it
// (unparented: no package owns it) on first use.
func Builtin(m Metatype) *Class {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	if cls, ok := builtinClasses[m]; ok {
		return cls
	}
	cls := NewClass(m.String(), m, nil)
	builtinClasses[m] = cls
	return cls
}

// NewStringObject allocates (without going through the GC) an Object of
// MetaString wrapping s.
func NewStringObject(s string) *Object {
	return &Object{Class: Builtin(MetaString), Native: NewStringData(s)}
}

// NewArrayObject wraps elems as a MetaArray object.
func NewArrayObject(elems []*Reference) *Object {
	return &Object{Class: Builtin(MetaArray), Native: NewArrayData(elems)}
}

// NewHashObject wraps h as a MetaHash object.
func NewHashObject(h *HashData) *Object {
	return &Object{Class: Builtin(MetaHash), Native: h}
}

// NewRegexObject wraps r as a MetaRegex object.
func NewRegexObject(r *RegexData) *Object {
	return &Object{Class: Builtin(MetaRegex), Native: r}
}
