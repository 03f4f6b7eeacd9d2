package symbol

import (
	"testing"

	"github.com/mint-lang/mint/pkg/value"
)

func TestASTRegistryRoundTrip(t *testing.T) {
	reg := NewASTRegistry()
	m := reg.CreateMain([]Node{{Command: ExitThread}})

	found, ok := reg.Find("main")
	if !ok || found.Id != m.Id {
		t.Fatalf("expected to find the registered main module")
	}
	name, err := reg.NameOf(m.Id)
	if err != nil || name != "main" {
		t.Fatalf("expected name round-trip, got %q err=%v", name, err)
	}
}

func TestModuleIdsAreUnique(t *testing.T) {
	reg := NewASTRegistry()
	a := reg.CreateFromBuffer("a", nil)
	b := reg.CreateFromBuffer("b", nil)
	if a.Id == b.Id {
		t.Fatalf("expected distinct module ids")
	}
}

func TestClassDescriptionGenerateLaysOutOffsets(t *testing.T) {
	cd := NewClassDescription("Point")
	cd.AddMember("x", false, nil, 0)
	cd.AddMember("y", false, nil, 0)
	cd.AddMember("label", true, nil, 0) // static

	pkg := value.NewPackage("main")
	cls := cd.Generate(pkg)
	if cls.SlotCount() != 2 {
		t.Fatalf("expected 2 instance slots, got %d", cls.SlotCount())
	}
}
