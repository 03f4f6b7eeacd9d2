package value

// Object is a Data of format object: a Class pointer plus an inline
// array of member slots, and — for builtin metatypes — a pointer to the
// native container data (String/Array/Hash/Regex/Iterator) that backs
// it. Native is nil for plain user objects.
type Object struct {
	Class *Class
	Slots []*Reference
	Native interface{}
}

// NewObject allocates the slot array for cls but does not run its
// constructor; that is gc.Construct's job (contract).
func NewObject(cls *Class) *Object {
	n := cls.SlotCount()
	slots := make([]*Reference, n)
	for i := range slots {
		slots[i] = NewReference(&Data{Format: FormatNone}, FlagDefault)
	}
	return &Object{Class: cls, Slots: slots}
}

// Slot returns the i-th member slot, or nil if i is out of range or
// InvalidOffset.
func (o *Object) Slot(i int) *Reference {
	if i < 0 || i >= len(o.Slots) {
		return nil
	}
	return o.Slots[i]
}
