package gc

import (
	"testing"

	"github.com/mint-lang/mint/pkg/value"
)

// fakeRootSource implements RootSource with a fixed set of references,
// standing in for a scheduler during unit tests.
type fakeRootSource struct {
	refs []*value.Reference
}

func (f *fakeRootSource) Roots() []*value.Reference { return f.refs }

func TestCollectFreesUnreachable(t *testing.T) {
	g := New()
	kept, err := g.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	kept.Format = value.FormatNumber
	kept.Number = 1

	if _, err := g.Alloc(); err != nil { // unreachable, no root
		t.Fatal(err)
	}

	root := &fakeRootSource{refs: []*value.Reference{value.NewReference(kept, value.FlagDefault)}}
	g.Register(root)

	before := g.Stats().Live
	if before != 2 {
		t.Fatalf("expected 2 live cells before collect, got %d", before)
	}

	stats := g.Collect()
	if stats.Live != 1 {
		t.Fatalf("expected 1 live cell after collect, got %d", stats.Live)
	}
}

func TestInfiniteRefsSurviveWithoutTracedRoot(t *testing.T) {
	g := New()
	d, _ := g.Alloc()
	d.Format = value.FormatNumber
	Use(d)

	g.Register(&fakeRootSource{}) // no traced roots at all
	stats := g.Collect()
	if stats.Live != 1 {
		t.Fatalf("infinite-ref cell should survive collect, live=%d", stats.Live)
	}

	Release(d)
	// Releasing to zero does not free by itself; only a subsequent
	// collect (now untraced) removes it.
	if stats2 := g.Collect(); stats2.Live != 0 {
		t.Fatalf("expected cell to be swept once un-rooted, live=%d", stats2.Live)
	}
}

func TestHighWaterMarkDoublesAfterCycle(t *testing.T) {
	g := New()
	g.highWater = 2
	var roots []*value.Reference
	for i := 0; i < 3; i++ {
		d, _ := g.Alloc()
		d.Format = value.FormatNumber
		roots = append(roots, value.NewReference(d, value.FlagDefault))
	}
	g.Register(&fakeRootSource{refs: roots})

	if !g.ShouldCollect() {
		t.Fatalf("expected high-water mark to be crossed")
	}
	stats := g.Collect()
	if stats.HighWater != 4 {
		t.Fatalf("expected high-water mark to double from 2 to 4, got %d", stats.HighWater)
	}
}

func TestAllocDuringSweepFails(t *testing.T) {
	g := New()
	g.sweeping = true
	if _, err := g.Alloc(); err == nil {
		t.Fatalf("expected allocation-during-collect error")
	}
}

func TestCloneTopLevelOnly(t *testing.T) {
	g := New()
	arrData, _ := g.Alloc()
	arrData.Format = value.FormatObject
	elem, _ := g.Alloc()
	elem.Format = value.FormatNumber
	elem.Number = 42
	arrData.Obj = value.NewArrayObject([]*value.Reference{value.NewReference(elem, value.FlagDefault)})

	src := value.NewReference(arrData, value.FlagDefault)
	clone, err := g.Clone(src)
	if err != nil {
		t.Fatal(err)
	}
	if clone.Get() == src.Get() {
		t.Fatalf("clone must allocate a distinct top-level cell")
	}
	cloneArr := clone.Get().Obj.Native.(*value.ArrayData)
	srcArr := src.Get().Obj.Native.(*value.ArrayData)
	if cloneArr.Elems[0] != srcArr.Elems[0] {
		t.Fatalf("clone must share inner element references, not deep copy them")
	}
}

func TestCloneHashDoesNotShareBackingMap(t *testing.T) {
	g := New()
	hashData, _ := g.Alloc()
	hashData.Format = value.FormatObject
	val, _ := g.Alloc()
	val.Format = value.FormatNumber
	val.Number = 1

	h := value.NewHashData()
	key := value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject("k")}, value.FlagDefault)
	h.Set(key, value.NewReference(val, value.FlagDefault))
	hashData.Obj = value.NewHashObject(h)

	src := value.NewReference(hashData, value.FlagDefault)
	clone, err := g.Clone(src)
	if err != nil {
		t.Fatal(err)
	}

	cloneHash := clone.Get().Obj.Native.(*value.HashData)
	other, _ := g.Alloc()
	other.Format = value.FormatNumber
	other.Number = 2
	cloneHash.Set(key, value.NewReference(other, value.FlagDefault))

	srcHash := src.Get().Obj.Native.(*value.HashData)
	v, ok := srcHash.Get(key.Get())
	if !ok || v.Get().Number != 1 {
		t.Fatalf("mutating the clone must not affect the source hash, got %v ok=%v", v, ok)
	}
}

func TestShareIsSameData(t *testing.T) {
	g := New()
	d, _ := g.Alloc()
	ref := value.NewReference(d, value.FlagDefault)
	shared := Share(ref)
	if shared.Get() != ref.Get() {
		t.Fatalf("share must point at the same Data")
	}
}
