package gen

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vistra/gen/ir"
	"github.com/npillmayer/vistra/schema"
)

// treeGroup declares the running example of most tests:
//
//	type term = Leaf(int) | Node(term, term)
func treeGroup(t *testing.T) *schema.DeclGroup {
	t.Helper()
	b := schema.NewGroupBuilder("terms")
	b.Decl("term").Sum().
		Con("Leaf").Of(schema.App("int")).
		Con("Node").Of(schema.App("term"), schema.App("term")).
		End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func mustGenerate(t *testing.T, g *schema.DeclGroup, opts ...Option) *ir.Family {
	t.Helper()
	fam, err := Generate(g, opts)
	if err != nil {
		t.Fatal(err)
	}
	return fam
}

func TestFamilyCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	fam := mustGenerate(t, treeGroup(t), opt("variety", "iter"), opt("name", "walk"))
	if fam.Name != "walk" || fam.Variant.Name != "walkIter" {
		t.Errorf("family names wrong: %s / %s", fam.Name, fam.Variant.Name)
	}
	for _, name := range []string{"VisitTerm", "EnterLeaf", "EnterNode", "ExitLeaf", "ExitNode"} {
		if fam.Base.Method(name) == nil {
			t.Errorf("base class lacks %s; has %v", name, fam.Base.MethodNames())
		}
	}
	// ascending hooks: virtual in the base, defaulted in the subclass
	if m := fam.Base.Method("ExitNode"); !m.Virtual || m.Body != nil {
		t.Error("ExitNode must be virtual without body in the base class")
	}
	if m := fam.Variant.Method("ExitNode"); m == nil || m.Body == nil {
		t.Error("ExitNode default missing in the variety subclass")
	}
	// descending hooks are concrete in the base
	if m := fam.Base.Method("EnterNode"); m.Virtual || m.Body == nil {
		t.Error("EnterNode must be a concrete base method")
	}
	if fam.Variant.InheritsFrom != fam.Base {
		t.Error("variety subclass must inherit from the base class")
	}
}

func TestVarietyDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	iter := mustGenerate(t, treeGroup(t), opt("variety", "iter"), opt("name", "w"))
	if _, ok := iter.Variant.Method("ExitLeaf").Body.(ir.Unit); !ok {
		t.Errorf("iter default should discard, got %v", iter.Variant.Method("ExitLeaf").Body)
	}
	mp := mustGenerate(t, treeGroup(t), opt("variety", "map"), opt("name", "w"))
	if mk, ok := mp.Variant.Method("ExitNode").Body.(ir.Make); !ok || mk.Con != "Node" {
		t.Errorf("map default should rebuild Node, got %v", mp.Variant.Method("ExitNode").Body)
	}
	red := mustGenerate(t, treeGroup(t), opt("variety", "reduce"), opt("name", "w"))
	if m := red.Base.Method("Plus"); m == nil || !m.Virtual {
		t.Error("reduce run must declare a virtual Plus hook")
	}
	if body := red.Variant.Method("ExitNode").Body.String(); !strings.Contains(body, "Plus") {
		t.Errorf("reduce default should fold with Plus, got %s", body)
	}
}

// Two generation runs over the same inputs must produce identical families.
func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	opts := []Option{opt("variety", "map2"), opt("name", "cmp")}
	a := mustGenerate(t, treeGroup(t), opts...)
	b := mustGenerate(t, treeGroup(t), opts...)
	an := append(a.Base.MethodNames(), a.Variant.MethodNames()...)
	bn := append(b.Base.MethodNames(), b.Variant.MethodNames()...)
	if strings.Join(an, ",") != strings.Join(bn, ",") {
		t.Errorf("method order differs:\n%v\n%v", an, bn)
	}
	for _, name := range a.Base.MethodNames() {
		if a.Base.Method(name).Body == nil {
			continue
		}
		if a.Base.Method(name).Body.String() != b.Base.Method(name).Body.String() {
			t.Errorf("body of %s differs between runs", name)
		}
	}
}

func TestFallbackOnlyAboveArityOne(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	one := mustGenerate(t, treeGroup(t), opt("variety", "iter"), opt("name", "w"))
	if one.Base.Method("VisitTerm").Body.(ir.Match).Fallback != nil {
		t.Error("arity-1 dispatch must not have a fallback case")
	}
	if one.Base.Method("FailTerm") != nil {
		t.Error("arity-1 run must not declare a failure hook")
	}
	two := mustGenerate(t, treeGroup(t), opt("variety", "iter2"), opt("name", "w"))
	if two.Base.Method("VisitTerm").Body.(ir.Match).Fallback == nil {
		t.Error("arity-2 dispatch over a multi-constructor sum needs a fallback case")
	}
	fail := two.Base.Method("FailTerm")
	if fail == nil {
		t.Fatal("arity-2 run must declare the failure hook")
	}
	if _, ok := fail.Body.(ir.Fail); !ok {
		t.Errorf("failure hook default should signal a mismatch, got %v", fail.Body)
	}
}

func TestSingleConstructorNoFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("wrap")
	b.Decl("box").Sum().Con("Box").Of(schema.App("int")).End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	fam := mustGenerate(t, g, opt("variety", "map2"), opt("name", "w"))
	if fam.Base.Method("VisitBox").Body.(ir.Match).Fallback != nil {
		t.Error("single-constructor sum cannot mismatch, no fallback expected")
	}
}

func TestRegularityCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	build := func() (*schema.DeclGroup, error) {
		b := schema.NewGroupBuilder("seqs")
		b.Decl("seq", "a").Sum().
			Con("Nil").
			Con("Cons").Of(schema.Var("a"), schema.App("seq", schema.Tuple(schema.Var("a"), schema.Var("a")))).
			End()
		return b.Group()
	}
	g, err := build()
	if err != nil {
		t.Fatal(err)
	}
	_, err = Generate(g, []Option{opt("variety", "iter"), opt("name", "w")})
	if codeOf(t, err) != IrregularRecursion {
		t.Fatalf("irregular instantiation must be rejected, got %v", err)
	}
	// the escape hatch admits the same group
	if _, err = Generate(g, []Option{opt("variety", "iter"), opt("name", "w"), opt("irregular", "")}); err != nil {
		t.Errorf("irregular option should admit the group, got %v", err)
	}
}

func TestLocalArityMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("bad")
	b.Decl("pair", "a", "b").Record().
		Field("fst", schema.Var("a")).
		Field("snd", schema.Var("b")).
		End()
	b.Decl("use").Abbrev(schema.App("pair", schema.App("int")))
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	_, err = Generate(g, []Option{opt("variety", "iter"), opt("name", "w")})
	if codeOf(t, err) != ArityMismatch {
		t.Fatalf("wrong argument count must be rejected, got %v", err)
	}
}

func TestNestedArityMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("nested")
	b.Decl("pair", "a", "b").Record().
		Field("fst", schema.Var("a")).
		Field("snd", schema.Var("b")).
		End()
	b.Decl("seq", "a").Sum().
		Con("Nil").
		Con("Cons").Of(schema.Var("a"), schema.App("seq", schema.App("pair", schema.App("int")))).
		End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	// the irregular escape hatch waives regularity, not argument counts
	_, err = Generate(g, []Option{opt("variety", "iter"), opt("name", "w"), opt("irregular", "")})
	if codeOf(t, err) != ArityMismatch {
		t.Fatalf("nested wrong argument count must be rejected, got %v", err)
	}
}

func TestFrozenVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("opts")
	b.Decl("cell", "a").Sum().Con("Cell").Of(schema.Var("a")).End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	fam := mustGenerate(t, g, opt("variety", "map"), opt("name", "w"), opt("freeze", "a"))
	if fam.Base.Method("VisitVarA") != nil {
		t.Error("frozen variable must not get a visit hook")
	}
	body := fam.Base.Method("EnterCell").Body.String()
	if !strings.Contains(body, "A.Map") {
		t.Errorf("frozen variable should be traversed externally, got %s", body)
	}
	// unfrozen: hook declared once, with the variety default in the subclass
	fam = mustGenerate(t, g, opt("variety", "map"), opt("name", "w"))
	if m := fam.Base.Method("VisitVarA"); m == nil || !m.Virtual {
		t.Fatal("unfrozen variable needs a virtual visit hook")
	}
	if m := fam.Variant.Method("VisitVarA"); m == nil || m.Body.String() != "subj" {
		t.Error("map default for a variable is the identity on its subject")
	}
}

func TestExternalTypeCall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("exprs")
	b.Decl("expr").Sum().
		Con("Num").Of(schema.App("int")).
		Con("Args").Of(schema.App("list", schema.App("expr"))).
		End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	fam := mustGenerate(t, g, opt("variety", "map"), opt("name", "w"),
		opt("nonlocal", "Stdlib:list"))
	body := fam.Base.Method("EnterArgs").Body.String()
	// list is traversed via the configured module; the element visitor is
	// passed as a method reference, not an eta-expanded closure
	if !strings.Contains(body, "Stdlib.Map(self.VisitExpr, env") {
		t.Errorf("external call shape wrong: %s", body)
	}
	if strings.Contains(body, "λ") {
		t.Errorf("redundant closure wrapper emitted: %s", body)
	}
}

func TestAbstractionThreading(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("lam")
	b.Decl("term").Sum().
		Con("VarRef").Of(schema.App("name")).
		Con("Lam").Of(schema.Abs(schema.App("term"))).
		End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	fam := mustGenerate(t, g, opt("variety", "iter"), opt("name", "w"),
		opt("nonlocal", "Names:name"))
	body := fam.Base.Method("EnterLam").Body.String()
	if !strings.Contains(body, "abs(env;") {
		t.Errorf("abstraction field should thread the environment, got %s", body)
	}
}

func TestTupleTraversal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("pts")
	b.Decl("pt").Abbrev(schema.Tuple(schema.App("int"), schema.App("int")))
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	fam := mustGenerate(t, g, opt("variety", "map"), opt("name", "w"))
	body, ok := fam.Base.Method("VisitPt").Body.(ir.MatchTuple)
	if !ok {
		t.Fatalf("tuple abbreviation should destructure, got %v", fam.Base.Method("VisitPt").Body)
	}
	if len(body.Binds) != 1 || len(body.Binds[0]) != 2 {
		t.Errorf("tuple binds wrong: %v", body.Binds)
	}
}

func TestRecordAsImplicitConstructor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("recs")
	b.Decl("point").Record().
		Field("x", schema.App("int")).
		Field("y", schema.App("int")).
		End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	fam := mustGenerate(t, g, opt("variety", "map2"), opt("name", "w"))
	m := fam.Base.Method("VisitPoint").Body.(ir.Match)
	if len(m.Cases) != 1 || m.Cases[0].Con != "point" {
		t.Errorf("record should dispatch on its single implicit constructor: %v", m)
	}
	if m.Fallback != nil {
		t.Error("record values share one shape, no fallback expected")
	}
	if fam.Base.Method("EnterPoint") == nil || fam.Variant.Method("ExitPoint") == nil {
		t.Error("record hooks missing")
	}
}

func TestOnTheFlyRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	_, err := ForType(schema.App("list", schema.App("int")), []Option{
		opt("variety", "iter"), opt("name", "w"),
	})
	if codeOf(t, err) != OnTheFlyUseRejected {
		t.Errorf("bare-type request must be rejected, got %v", err)
	}
}

func TestMutualRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.gen")
	defer teardown()
	b := schema.NewGroupBuilder("ast")
	b.Decl("expr").Sum().
		Con("Lit").Of(schema.App("int")).
		Con("Block").Of(schema.App("stmt")).
		End()
	b.Decl("stmt").Sum().
		Con("Print").Of(schema.App("expr")).
		Con("Skip").
		End()
	g, err := b.Group()
	if err != nil {
		t.Fatal(err)
	}
	fam := mustGenerate(t, g, opt("variety", "iter"), opt("name", "w"))
	// cross references dispatch through the peer's descending method
	if !strings.Contains(fam.Base.Method("EnterBlock").Body.String(), "VisitStmt") {
		t.Error("expr → stmt reference must call VisitStmt")
	}
	if !strings.Contains(fam.Base.Method("EnterPrint").Body.String(), "VisitExpr") {
		t.Error("stmt → expr reference must call VisitExpr")
	}
}
