package iterator

import (
	"testing"

	"github.com/mint-lang/mint/pkg/value"
)

func numRef(n float64) *value.Reference {
	return value.NewReference(&value.Data{Format: value.FormatNumber, Number: n}, value.FlagDefault)
}

func TestInitIsIdempotentOnIterator(t *testing.T) {
	obj := wrap(NewItems())
	ref := value.NewReference(&value.Data{Format: value.FormatObject, Obj: obj}, value.FlagDefault)
	again := Init(ref)
	if again != obj {
		t.Fatalf("iterator_init(iter) must return the same object")
	}
}

func TestInitOverArrayShareElements(t *testing.T) {
	elem := numRef(1)
	arr := value.NewArrayObject([]*value.Reference{elem, numRef(2), numRef(3)})
	ref := value.NewReference(&value.Data{Format: value.FormatObject, Obj: arr}, value.FlagDefault)

	obj := Init(ref)
	d, ok := From(obj)
	if !ok {
		t.Fatalf("expected an iterator")
	}
	v, err := d.Value()
	if err != nil || v != elem {
		t.Fatalf("expected iterator to share the first element reference, got %v err=%v", v, err)
	}
}

func TestRangeInclusiveAscending(t *testing.T) {
	r := NewRange(1, 5, 1)
	var got []float64
	for !r.Empty() {
		v, err := r.Value()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v.Get().Number)
		if err := r.Next(); err != nil {
			t.Fatal(err)
		}
	}
	want := []float64{1, 2, 3, 4, 5}
	assertFloats(t, got, want)
}

func TestRangeExclusiveDescending(t *testing.T) {
	r := NewRange(5, 2, -1) // 5...1: the exclusive operator passes tail = 1 - step
	var got []float64
	for !r.Empty() {
		v, _ := r.Value()
		got = append(got, v.Get().Number)
		_ = r.Next()
	}
	want := []float64{5, 4, 3, 2}
	assertFloats(t, got, want)
}

func assertFloats(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got, want)
		}
	}
}

func TestRangeYieldUnsupported(t *testing.T) {
	r := NewRange(1, 3, 1)
	if err := r.Yield(numRef(1)); err == nil {
		t.Fatalf("expected yield on range to fail")
	}
}

func TestItemsGrowByDoublingOnCompact(t *testing.T) {
	it := NewItems()
	for i := 0; i < 100; i++ {
		_ = it.Yield(numRef(float64(i)))
	}
	for i := 0; i < 70; i++ {
		if err := it.Next(); err != nil {
			t.Fatal(err)
		}
	}
	v, err := it.Value()
	if err != nil || v.Get().Number != 70 {
		t.Fatalf("expected head at 70 after compaction, got %v err=%v", v, err)
	}
}

func TestGeneratorSuspendResume(t *testing.T) {
	g := NewGenerator(Interruptible)
	_ = g.Yield(numRef(1))
	g.Suspend([]*value.Reference{numRef(99)}, "frame-marker")
	if !g.Suspended() {
		t.Fatalf("expected generator to be suspended")
	}
	state := g.Resume()
	if state == nil || state.FrameState != "frame-marker" {
		t.Fatalf("expected resumed state to carry frame marker")
	}
	if g.Suspended() {
		t.Fatalf("resume must clear suspended state")
	}
}
