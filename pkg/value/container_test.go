package value

import "testing"

func TestStringDataCodePointIndexing(t *testing.T) {
	s := NewStringData("héllo")
	if s.Len() != 5 {
		t.Fatalf("expected 5 code points, got %d", s.Len())
	}
	r, ok := s.RuneAt(1)
	if !ok || r != "é" {
		t.Fatalf("expected 'é' at index 1, got %q ok=%v", r, ok)
	}
}

func TestHashKeyFoldsScalars(t *testing.T) {
	a := &Data{Format: FormatNumber, Number: 1}
	b := &Data{Format: FormatBoolean, Boolean: true}
	if HashKeyOf(a) != HashKeyOf(b) {
		t.Fatalf("number 1 and boolean true should fold to the same key")
	}

	s1 := &Data{Format: FormatObject, Obj: NewStringObject("k")}
	s2 := &Data{Format: FormatObject, Obj: NewStringObject("k")}
	if HashKeyOf(s1) != HashKeyOf(s2) {
		t.Fatalf("equal strings should fold to the same key")
	}
}

func TestHashDataKeyIsFrozenConstValue(t *testing.T) {
	h := NewHashData()
	key := NewReference(&Data{Format: FormatObject, Obj: NewStringObject("a")}, FlagDefault)
	val := NewReference(&Data{Format: FormatNumber, Number: 1}, FlagDefault)
	h.Set(key, val)

	for _, k := range h.Keys() {
		if !k.Flags.Has(FlagConstValue) {
			t.Fatalf("hash keys must be frozen const_value once inserted")
		}
	}
}

func TestObjectSlotCountMatchesClass(t *testing.T) {
	pkg := NewPackage("main")
	cls := NewClass("Point", MetaObject, pkg)
	cls.Members = []Member{
		{Name: "x", Offset: 0},
		{Name: "y", Offset: 1},
		{Name: "label", Offset: InvalidOffset}, // static, no slot
	}
	obj := NewObject(cls)
	if len(obj.Slots) != 2 {
		t.Fatalf("expected 2 instance slots, got %d", len(obj.Slots))
	}
}

func TestReferenceConstAddressForbidsRebind(t *testing.T) {
	ref := NewReference(&Data{Format: FormatNumber, Number: 1}, FlagConstAddress)
	if err := ref.Set(&Data{Format: FormatNumber, Number: 2}); err == nil {
		t.Fatalf("expected const_address rebind to fail")
	}
}

func TestReferenceConstValueForbidsMutation(t *testing.T) {
	ref := NewReference(&Data{Format: FormatNumber, Number: 1}, FlagConstValue)
	if err := ref.CheckMutable(); err == nil {
		t.Fatalf("expected const_value reference to reject mutation")
	}
}
