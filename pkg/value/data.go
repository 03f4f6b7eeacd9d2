// Package value implements mint's uniform value cell (Data), its handle
// type (Reference), and the class/object/package metadata that every
// Data of format object points into. It is the leaf package of the
// runtime: nothing here imports the GC, the cursor, or the scheduler,
// so that every other subsystem can build on a stable value model.
package value

// Format discriminates the kind of content a Data cell carries.
type Format int

const (
	FormatNone Format = iota
	FormatNull
	FormatNumber
	FormatBoolean
	FormatObject
	FormatPackage
	FormatFunction
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatNull:
		return "null"
	case FormatNumber:
		return "number"
	case FormatBoolean:
		return "boolean"
	case FormatObject:
		return "object"
	case FormatPackage:
		return "package"
	case FormatFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Data is the uniformly-sized heap cell every mint value is made of.
// Cells created through gc.Alloc are tracked by the collector; Data
// literals built directly elsewhere are not.
type Data struct {
	Format Format
	Number float64
	Boolean bool
	Obj *Object // valid when Format == FormatObject
	Pkg *Package // valid when Format == FormatPackage
	Fn *Function // valid when Format == FormatFunction

	// GC bookkeeping. Exported so pkg/gc (a separate package, by
	// design — see DESIGN.md) can mark and root without Data itself
	// knowing anything about collection policy.
	Marked bool
	InfiniteRefs int32
}

// IsNone reports whether d represents the "absent value" marker, which
// never participates in operators.
func (d *Data) IsNone() bool { return d == nil || d.Format == FormatNone }

// IsNull reports whether d is the raisable null marker.
func (d *Data) IsNull() bool { return d != nil && d.Format == FormatNull }

// Flags qualify how a Reference may be used, independent of what Data it
// currently points to.
type Flags int

const (
	FlagDefault Flags = 0
	FlagConstAddress Flags = 1 << iota
	FlagConstValue
	FlagGlobal
	FlagPrivate
	FlagProtected
	FlagPackage
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Reference is a handle to a Data cell. Two References can point at the
// same Data (Share) or each own an independent copy (Clone); neither
// operation is implemented here — pkg/gc owns that policy.
type Reference struct {
	Flags Flags
	data *Data
}

// NewReference wraps an already-allocated Data in a fresh handle with
// the given flags. It does not allocate or root anything.
func NewReference(d *Data, flags Flags) *Reference {
	return &Reference{Flags: flags, data: d}
}

// Get returns the pointee, or nil if the reference has never been bound.
func (r *Reference) Get() *Data {
	if r == nil {
		return nil
	}
	return r.data
}

// Set rebinds the reference to point at d. It fails with a const
// violation if the reference was created const_address.
func (r *Reference) Set(d *Data) error {
	if r.Flags.Has(FlagConstAddress) {
		return errConstAddress
	}
	r.data = d
	return nil
}

// CheckMutable returns an error if this reference forbids mutating its
// pointee (const_value), enforced at operator dispatch.
func (r *Reference) CheckMutable() error {
	if r.Flags.Has(FlagConstValue) {
		return errConstValue
	}
	return nil
}
