package symbol

import "github.com/mint-lang/mint/pkg/value"

// ClassDescription is the compile-time declaration of a class: its
// member list (before offsets are laid out) and base classes. Generate
// flattens inheritance by placing the base classes' members ahead of the
// description's own — no subclassing-with-inheritance is required at the
// VM level.
type ClassDescription struct {
	Name string
	Metatype value.Metatype
	Members []value.Member
	Bases []*value.Class
	Operators map[value.Operator]*value.Function
}

// NewClassDescription creates an empty description.
func NewClassDescription(name string) *ClassDescription {
	return &ClassDescription{Name: name, Metatype: value.MetaObject, Operators: make(map[value.Operator]*value.Function)}
}

// AddMember appends a declared member, auto-assigning the next instance
// slot offset unless static is true (value.InvalidOffset).
func (cd *ClassDescription) AddMember(name string, static bool, def *value.Data, vis value.Visibility) {
	offset := value.InvalidOffset
	if !static {
		offset = cd.nextSlot()
	}
	cd.Members = append(cd.Members, value.Member{Name: name, Offset: offset, Default: def, Visibility: vis})
}

func (cd *ClassDescription) nextSlot() int {
	n := 0
	for _, m := range cd.Members {
		if m.Offset != value.InvalidOffset {
			n++
		}
	}
	return n
}

// Generate realizes the description into a runtime Class, laying out
// member offsets (already assigned by AddMember), merging base class
// members ahead of this class's own (base fields occupy the lowest
// offsets), resolving operator overloads, and registering it in pkg.
func (cd *ClassDescription) Generate(pkg *value.Package) *value.Class {
	cls := value.NewClass(cd.Name, cd.Metatype, pkg)
	cls.Bases = cd.Bases

	members := make([]value.Member, 0, len(cd.Members))
	base := 0
	for _, b := range cd.Bases {
		for _, m := range b.Members {
			shifted := m
			if shifted.Offset != value.InvalidOffset {
				shifted.Offset += base
			}
			members = append(members, shifted)
		}
		base += b.SlotCount()
	}
	for _, m := range cd.Members {
		shifted := m
		if shifted.Offset != value.InvalidOffset {
			shifted.Offset += base
		}
		members = append(members, shifted)
	}
	cls.Members = members

	for op, fn := range cd.Operators {
		cls.Operators[op] = fn
	}
	if pkg != nil {
		pkg.RegisterClass(value.Symbol(cd.Name), cls)
	}
	return cls
}
