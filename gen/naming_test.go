package gen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vistra/gen/ir"
)

func TestNamingScheme(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	n := NewNamer()
	if got := n.VisitMethod("term"); got != "VisitTerm" {
		t.Errorf("VisitMethod(term) = %s", got)
	}
	if got := n.EnterHook("Node"); got != "EnterNode" {
		t.Errorf("EnterHook(Node) = %s", got)
	}
	if got := n.ExitHook("Node"); got != "ExitNode" {
		t.Errorf("ExitHook(Node) = %s", got)
	}
	if got := n.VarHook("a"); got != "VisitVarA" {
		t.Errorf("VarHook(a) = %s", got)
	}
	if got := n.FailHook("term"); got != "FailTerm" {
		t.Errorf("FailHook(term) = %s", got)
	}
}

// Title-casing may merge distinct schema identifiers. The namer must keep
// them apart, and do so identically on every run.
func TestNamingCollision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	run := func() (string, string) {
		n := NewNamer()
		return n.VisitMethod("term"), n.VisitMethod("Term")
	}
	a1, b1 := run()
	if a1 == b1 {
		t.Fatalf("colliding identifiers map to the same name %s", a1)
	}
	a2, b2 := run()
	if a1 != a2 || b1 != b2 {
		t.Errorf("collision resolution not deterministic: (%s,%s) vs (%s,%s)", a1, b1, a2, b2)
	}
	// asking again for the same identifier yields the same name
	n := NewNamer()
	first := n.EnterHook("Leaf")
	if again := n.EnterHook("Leaf"); again != first {
		t.Errorf("repeated request renamed the hook: %s vs %s", first, again)
	}
}

func TestLocalNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	n := NewNamer()
	if n.Subject(0, 1) != "subj" || n.Subject(1, 2) != "subj_1" {
		t.Error("subject naming wrong")
	}
	if n.Component(2, 0, 1) != "x2" || n.Component(2, 1, 3) != "x2_1" {
		t.Error("component naming wrong")
	}
	if n.TupleComponent(0, 0, 1) != "t0" || n.BodyVar(0, 2) != "body_0" {
		t.Error("tuple/body naming wrong")
	}
}

func TestExternalResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	mods := []ModuleRef{
		{Name: "Stdlib"},
		{Name: "Collections", Types: []string{"list"}},
	}
	if got := ModuleFor("list", mods); got != "Collections" {
		t.Errorf("list resolves to %s, want the most specific module", got)
	}
	if got := ModuleFor("option", mods); got != "Stdlib" {
		t.Errorf("option resolves to %s, want the wildcard module", got)
	}
	if got := ModuleFor("list", nil); got != "List" {
		t.Errorf("uncovered constructor resolves to %s, want title-case fallback", got)
	}
	if got := ExtFunc(ir.Map, 2); got != "Map2" {
		t.Errorf("ExtFunc(map,2) = %s", got)
	}
	if got := ExtFunc(ir.Iter, 1); got != "Iter" {
		t.Errorf("ExtFunc(iter,1) = %s", got)
	}
}
