package sdl

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vistra/gen"
	"github.com/npillmayer/vistra/schema"
)

func TestParseSumDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	group, _, err := Parse("trees", `
       -- binary trees over ints
       type term = Leaf(int) | Node(term, term)
    `)
	if err != nil {
		t.Fatal(err)
	}
	decl := group.Lookup("term")
	if decl == nil {
		t.Fatal("declaration 'term' not found")
	}
	sum, ok := decl.Kind.(schema.Sum)
	if !ok || len(sum.Cons) != 2 {
		t.Fatalf("expected a sum with 2 constructors, got %v", decl.Kind)
	}
	node := sum.Cons[1]
	if node.Name != "Node" || len(node.Fields) != 2 {
		t.Errorf("Node constructor wrong: %v", node)
	}
	if !schema.Equal(node.Fields[0].Type, schema.App("term")) {
		t.Errorf("Node field type wrong: %v", node.Fields[0].Type)
	}
}

func TestParseParamsTuplesBinders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	group, _, err := Parse("mixed", `
       type seq 'a = Nil | Cons('a, seq('a))
       type pt = (int * int)
       type lam = Abs(bind lam) | Pair(lam * lam)
    `)
	if err != nil {
		t.Fatal(err)
	}
	seq := group.Lookup("seq")
	if len(seq.Params) != 1 || seq.Params[0] != "a" {
		t.Errorf("seq parameters wrong: %v", seq.Params)
	}
	cons := seq.Kind.(schema.Sum).Cons[1]
	if !schema.Equal(cons.Fields[1].Type, schema.App("seq", schema.Var("a"))) {
		t.Errorf("recursive occurrence wrong: %v", cons.Fields[1].Type)
	}
	pt := group.Lookup("pt")
	if !schema.Equal(pt.Kind.(schema.Abbrev).Of, schema.Tuple(schema.App("int"), schema.App("int"))) {
		t.Errorf("tuple abbreviation wrong: %v", pt.Kind)
	}
	abs := group.Lookup("lam").Kind.(schema.Sum).Cons[0]
	if !schema.Equal(abs.Fields[0].Type, schema.Abs(schema.App("lam"))) {
		t.Errorf("binder field wrong: %v", abs.Fields[0].Type)
	}
}

func TestParseRecord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	group, _, err := Parse("recs", `type point = { x: int; y: int }`)
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := group.Lookup("point").Kind.(schema.Record)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("expected a 2-field record, got %v", group.Lookup("point").Kind)
	}
	if rec.Fields[1].Label != "y" {
		t.Errorf("field labels wrong: %v", rec.Fields)
	}
}

func TestParseLabeledConstructor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	group, _, err := Parse("lbl", `type shape = Circle(r: int) | Rect(w: int, h: int)`)
	if err != nil {
		t.Fatal(err)
	}
	rect := group.Lookup("shape").Kind.(schema.Sum).Cons[1]
	if !rect.Labeled || rect.Fields[0].Label != "w" || rect.Fields[1].Label != "h" {
		t.Errorf("labeled constructor wrong: %v", rect)
	}
}

func TestParseOptionsLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	_, opts, err := Parse("opts", `
       type box = Box(int)
       options variety=map2 name=cmp freeze=a,b nonlocal=Stdlib:list,Names:name irregular
    `)
	if err != nil {
		t.Fatal(err)
	}
	byName := make(map[string]gen.Option)
	for _, o := range opts {
		byName[o.Name] = o
	}
	if byName["variety"].Value != "map2" || byName["name"].Value != "cmp" {
		t.Errorf("variety/name options wrong: %v", opts)
	}
	if byName["freeze"].Value != "a,b" {
		t.Errorf("freeze value wrong: %q", byName["freeze"].Value)
	}
	if byName["nonlocal"].Value != "Stdlib:list,Names:name" {
		t.Errorf("nonlocal value wrong: %q", byName["nonlocal"].Value)
	}
	if v, ok := byName["irregular"]; !ok || v.Value != "" {
		t.Errorf("boolean option wrong: %v", byName)
	}
	// the parsed options feed straight into option validation
	cfg, err := gen.ParseOptions(opts)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Arity != 2 || !cfg.IsFrozen("b") || len(cfg.Modules) != 2 {
		t.Errorf("config wrong: %+v", cfg)
	}
}

func TestParseCommaWithoutSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	group, opts, err := Parse("dense", `
       type term = Leaf(int) | Node(term,term)
       type shape = Rect(w:int,h:int)
       options nonlocal=Stdlib:list,Names:name
    `)
	if err != nil {
		t.Fatal(err)
	}
	node := group.Lookup("term").Kind.(schema.Sum).Cons[1]
	if len(node.Fields) != 2 || !schema.Equal(node.Fields[1].Type, schema.App("term")) {
		t.Errorf("dense argument list wrong: %v", node.Fields)
	}
	rect := group.Lookup("shape").Kind.(schema.Sum).Cons[0]
	if !rect.Labeled || rect.Fields[0].Label != "w" || rect.Fields[1].Label != "h" {
		t.Errorf("dense labeled fields wrong: %v", rect)
	}
	// option values keep their separators
	if len(opts) != 1 || opts[0].Value != "Stdlib:list,Names:name" {
		t.Errorf("nonlocal value wrong: %v", opts)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	cases := []string{
		`type = Leaf`,                  // missing name
		`type t Leaf(int)`,             // missing '='
		`type t = Leaf(int`,            // unclosed field list
		`type t = lower | Upper`,       // abbrev target followed by garbage
		`type p = { x int }`,           // missing ':'
		`type a = A type a = B`,        // duplicate declaration
		`type a = A(byte) type b = A`,  // constructor declared twice
	}
	for _, input := range cases {
		if _, _, err := Parse("bad", input); err == nil {
			t.Errorf("input %q: expected a parse error", input)
		}
	}
}

func TestEndToEndFromSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vistra.sdl")
	defer teardown()
	group, opts, err := Parse("terms", `
       type term = Leaf(int) | Node(term, term)
       options variety=iter name=w
    `)
	if err != nil {
		t.Fatal(err)
	}
	fam, err := gen.Generate(group, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fam.Base.Method("VisitTerm") == nil {
		t.Errorf("family incomplete: %v", fam.Base.MethodNames())
	}
}
