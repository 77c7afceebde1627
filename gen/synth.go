package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"

	"github.com/npillmayer/vistra"
	"github.com/npillmayer/vistra/gen/ir"
	"github.com/npillmayer/vistra/schema"
)

// Generator is a generator object deriving one visitor class family from a
// declaration group. Clients usually parse options into a Config, then
// create a Generator and call Family().
//
// All mutable run state (the method store, the namer) is owned by the
// Generator; generators for unrelated runs are fully independent.
type Generator struct {
	group   *schema.DeclGroup
	cfg     *Config
	names   *Namer
	store   *Store
	base    *ClassAcc
	variant *ClassAcc
	family  *ir.Family
}

// NewGenerator creates a generator for a declaration group under a parsed
// option set.
func NewGenerator(group *schema.DeclGroup, cfg *Config) *Generator {
	g := &Generator{
		group: group,
		cfg:   cfg,
		names: NewNamer(),
		store: NewStore(),
	}
	return g
}

// Generate is a convenience wrapper: parse options, create a generator,
// derive the family.
func Generate(group *schema.DeclGroup, opts []Option) (*ir.Family, error) {
	cfg, err := ParseOptions(opts)
	if err != nil {
		return nil, err
	}
	return NewGenerator(group, cfg).Family()
}

// ForType is the entry point for deriving a visitor for a bare type
// occurrence outside of any declaration group. The generator requires a
// named declaration group to anchor the self and environment type
// parameters, so this request is always rejected.
func ForType(ty schema.Type, opts []Option) (*ir.Family, error) {
	loc := vistra.Location{}
	if ty != nil {
		loc.Span = ty.Loc()
	}
	return nil, errf(OnTheFlyUseRejected, "generate", loc,
		"cannot derive a visitor for bare type %v outside a declaration group", ty)
}

// Family runs the synthesis and returns the generated class family. The
// run is atomic: on error no family is returned and none has been emitted.
// Repeated calls return the same family.
func (g *Generator) Family() (*ir.Family, error) {
	if g.family != nil {
		return g.family, nil
	}
	if g.group == nil || len(g.group.Decls) == 0 {
		return nil, errf(OnTheFlyUseRejected, "generate", vistra.Location{},
			"generation requires a nonempty declaration group")
	}
	tracer().Infof("=== generate %s/%s%d for group %s ===================",
		g.cfg.ClassName, g.cfg.Variety, g.cfg.Arity, g.group.Name)
	g.group.Dump()
	g.base = g.store.Class(g.cfg.ClassName)
	g.variant = g.store.Class(variantName(g.cfg))
	if g.cfg.Variety == ir.Reduce {
		g.declareMonoidHooks()
	}
	for _, d := range g.group.Decls {
		if err := g.synthDecl(d); err != nil {
			return nil, err
		}
	}
	g.family = g.assemble()
	tracer().Infof("generated %s", g.family)
	return g.family, nil
}

func variantName(cfg *Config) string {
	name := cfg.ClassName + title(cfg.Variety.String())
	if cfg.Arity > 1 {
		name = fmt.Sprintf("%s%d", name, cfg.Arity)
	}
	return name
}

// declareMonoidHooks declares the virtual combination hooks of Reduce
// runs. They carry no generated default; a monoid implementation (or an
// override) supplies them at run time.
func (g *Generator) declareMonoidHooks() {
	g.base.Declare(&ir.Method{Name: "Zero", Virtual: true})
	g.base.Declare(&ir.Method{Name: "Plus", Params: []string{"a", "b"}, Virtual: true})
}

// --- Per-declaration synthesis ----------------------------------------------

// synthDecl produces the descending method for one type declaration.
func (g *Generator) synthDecl(d *schema.TypeDecl) error {
	tracer().Debugf("--- synthesizing %s ------------------------------", d.Name)
	if d.Kind == nil {
		return errf(UnsupportedType, "synthesize", vistra.Loc(g.group.Name, d.Span),
			"type '%s' is abstract (no definition)", d.Name)
	}
	env := g.names.Env()
	params := []string{env}
	subjects := make([]ir.Expr, g.cfg.Arity)
	for k := 0; k < g.cfg.Arity; k++ {
		name := g.names.Subject(k, g.cfg.Arity)
		params = append(params, name)
		subjects[k] = ir.Var{Name: name}
	}
	var body ir.Expr
	var err error
	switch kind := d.Kind.(type) {
	case schema.Abbrev:
		body, err = g.visitType(kind.Of, subjects)
	case schema.Record:
		body, err = g.recordBody(d, kind, subjects)
	case schema.Sum:
		body, err = g.sumBody(d, kind, subjects)
	default:
		err = errf(UnsupportedType, "synthesize", vistra.Loc(g.group.Name, d.Span),
			"declaration kind %T of '%s' is not supported", d.Kind, d.Name)
	}
	if err != nil {
		return err
	}
	g.base.Declare(&ir.Method{
		Name:   g.names.VisitMethod(d.Name),
		Params: params,
		Body:   body,
	})
	return nil
}

// recordBody treats a record like a sum with a single implicit constructor
// named after the type. No fallback case exists: all values of a record
// type share one shape.
func (g *Generator) recordBody(d *schema.TypeDecl, kind schema.Record, subjects []ir.Expr) (ir.Expr, error) {
	con := schema.Constructor{
		Name:    schema.DataCon(d.Name),
		Fields:  kind.Fields,
		Labeled: true,
		Span:    d.Span,
	}
	c, err := g.conCase(con, subjects)
	if err != nil {
		return nil, err
	}
	return ir.Match{Subjects: subjects, Cases: []ir.Case{c}}, nil
}

// sumBody produces the tag dispatch of a sum type: one case per
// constructor, plus a fallback case calling the failure hook at arities
// above one when the sum has at least two constructors.
func (g *Generator) sumBody(d *schema.TypeDecl, kind schema.Sum, subjects []ir.Expr) (ir.Expr, error) {
	cases := make([]ir.Case, 0, len(kind.Cons))
	for _, con := range kind.Cons {
		c, err := g.conCase(con, subjects)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	var fallback ir.Expr
	if g.cfg.Arity > 1 && len(kind.Cons) > 1 {
		fail := g.declareFail(d, subjects)
		args := append([]ir.Expr{ir.Var{Name: g.names.Env()}}, subjects...)
		fallback = ir.CallHook{Name: fail, Args: args}
	}
	return ir.Match{Subjects: subjects, Cases: cases, Fallback: fallback}, nil
}

// conCase builds the case for one constructor: bind the components of all
// parallel subjects and delegate to the constructor's descending hook.
func (g *Generator) conCase(con schema.Constructor, subjects []ir.Expr) (ir.Case, error) {
	arity := g.cfg.Arity
	binds := make([][]string, arity)
	for k := 0; k < arity; k++ {
		binds[k] = make([]string, len(con.Fields))
		for i := range con.Fields {
			binds[k][i] = g.names.Component(i, k, arity)
		}
	}
	enter, err := g.declareEnter(con)
	if err != nil {
		return ir.Case{}, err
	}
	args := []ir.Expr{ir.Var{Name: g.names.Env()}}
	for i := range con.Fields { // field-major, tree-minor, like the hook params
		for k := 0; k < arity; k++ {
			args = append(args, ir.Var{Name: binds[k][i]})
		}
	}
	return ir.Case{
		Con:   string(con.Name),
		Binds: binds,
		Body:  ir.CallHook{Name: enter, Args: args},
	}, nil
}

// declareEnter declares the descending hook for a constructor: a concrete
// method in the base class (single-default hook) whose body visits every
// component and finishes by calling the constructor's ascending hook. The
// ascending hook is declared virtual in the base class with its
// variety-specific default in the subclass.
func (g *Generator) declareEnter(con schema.Constructor) (string, error) {
	arity := g.cfg.Arity
	env := g.names.Env()
	name := g.names.EnterHook(con.Name)
	if g.base.Has(name) { // requested before; declared exactly once
		return name, nil
	}
	params := []string{env}
	for i := range con.Fields {
		for k := 0; k < arity; k++ {
			params = append(params, g.names.Component(i, k, arity))
		}
	}
	var steps []ir.Expr
	results := make([]ir.Expr, len(con.Fields))
	for i, f := range con.Fields {
		comps := make([]ir.Expr, arity)
		for k := 0; k < arity; k++ {
			comps[k] = ir.Var{Name: g.names.Component(i, k, arity)}
		}
		visit, err := g.visitType(f.Type, comps)
		if err != nil {
			return "", err
		}
		r := g.names.Result(i)
		steps = append(steps, ir.Bind{Name: r, Value: visit})
		results[i] = ir.Var{Name: r}
	}
	exit := g.declareExit(con, results)
	exitArgs := append([]ir.Expr{ir.Var{Name: env}}, results...)
	steps = append(steps, ir.CallHook{Name: exit, Args: exitArgs})
	g.base.Declare(&ir.Method{Name: name, Params: params, Body: ir.Seq{Exprs: steps}})
	return name, nil
}

// declareExit declares the ascending hook of a constructor: virtual in the
// base class, with the variety default in the subclass (discard for Iter,
// rebuild for Map, monoid fold for Reduce).
func (g *Generator) declareExit(con schema.Constructor, results []ir.Expr) string {
	name := g.names.ExitHook(con.Name)
	params := []string{g.names.Env()}
	for i := range results {
		params = append(params, g.names.Result(i))
	}
	g.base.Declare(&ir.Method{Name: name, Params: params, Virtual: true})
	var dflt ir.Expr
	switch g.cfg.Variety {
	case ir.Iter:
		dflt = ir.Unit{}
	case ir.Map:
		dflt = ir.Make{Con: string(con.Name), Args: results}
	case ir.Reduce:
		dflt = g.foldPlus(results)
	}
	g.variant.Declare(&ir.Method{Name: name, Params: params, Body: dflt})
	return name
}

// declareFail declares the tag-mismatch hook of a sum type. Its default
// body signals a tag-mismatch error; consumers may override it.
func (g *Generator) declareFail(d *schema.TypeDecl, subjects []ir.Expr) string {
	name := g.names.FailHook(d.Name)
	if g.base.Has(name) {
		return name
	}
	params := []string{g.names.Env()}
	subjVars := make([]ir.Expr, len(subjects))
	for k := range subjects {
		pname := g.names.Subject(k, g.cfg.Arity)
		params = append(params, pname)
		subjVars[k] = ir.Var{Name: pname}
	}
	g.base.Declare(&ir.Method{
		Name:   name,
		Params: params,
		Body:   ir.Fail{TyCon: string(d.Name), Subjects: subjVars},
	})
	return name
}

// foldPlus combines child results through the monoid hooks of a Reduce
// run: Zero ⊕ r0 ⊕ r1 ⊕ … .
func (g *Generator) foldPlus(results []ir.Expr) ir.Expr {
	acc := ir.Expr(ir.CallHook{Name: "Zero"})
	for _, r := range results {
		acc = ir.CallHook{Name: "Plus", Args: []ir.Expr{acc, r}}
	}
	return acc
}

// --- Structural recursion over types ----------------------------------------

// visitType synthesizes the traversal expression for one type occurrence,
// applied to the given parallel subject expressions. The environment is
// already bound to a variable in this context; visitorFunc covers the
// context where it must be abstracted as a parameter instead.
func (g *Generator) visitType(ty schema.Type, subjects []ir.Expr) (ir.Expr, error) {
	env := ir.Var{Name: g.names.Env()}
	switch t := ty.(type) {
	case schema.TypeVar:
		if g.cfg.IsFrozen(string(t.Name)) {
			// frozen: treat like an external type constructor of the same name
			return g.externalCall(string(t.Name), nil, subjects)
		}
		hook := g.declareVarHook(t.Name)
		return ir.CallHook{Name: hook, Args: append([]ir.Expr{env}, subjects...)}, nil
	case schema.TypeApp:
		if decl := g.group.Lookup(t.Con); decl != nil {
			if err := g.checkLocalApp(t, decl); err != nil {
				return nil, err
			}
			// The target method knows its own field types; no per-argument
			// visitor functions are passed.
			name := g.names.VisitMethod(t.Con)
			return ir.CallHook{Name: name, Args: append([]ir.Expr{env}, subjects...)}, nil
		}
		return g.externalCall(string(t.Con), t.Args, subjects)
	case schema.TypeTuple:
		return g.tupleExpr(t, subjects)
	case schema.TypeAbs:
		return g.absExpr(t, subjects)
	}
	return nil, errf(UnsupportedType, "synthesize", vistra.Loc(g.group.Name, ty.Loc()),
		"type shape %T is not supported", ty)
}

// declareVarHook declares the virtual hook for an unfrozen type variable,
// with a variety default in the subclass: discard (Iter), pass the first
// subject through (Map), monoid zero (Reduce).
func (g *Generator) declareVarHook(v schema.TyVar) string {
	name := g.names.VarHook(v)
	if g.base.Has(name) {
		return name
	}
	arity := g.cfg.Arity
	params := []string{g.names.Env()}
	for k := 0; k < arity; k++ {
		params = append(params, g.names.Subject(k, arity))
	}
	g.base.Declare(&ir.Method{Name: name, Params: params, Virtual: true})
	var dflt ir.Expr
	switch g.cfg.Variety {
	case ir.Iter:
		dflt = ir.Unit{}
	case ir.Map:
		dflt = ir.Var{Name: g.names.Subject(0, arity)}
	case ir.Reduce:
		dflt = ir.CallHook{Name: "Zero"}
	}
	g.variant.Declare(&ir.Method{Name: name, Params: params, Body: dflt})
	return name
}

// externalCall resolves a traversal function for an externally defined
// type and applies it to visitor functions for the type arguments, the
// environment and the subjects.
func (g *Generator) externalCall(con string, args []schema.Type, subjects []ir.Expr) (ir.Expr, error) {
	mod := ModuleFor(con, g.cfg.Modules)
	fn := ExtFunc(g.cfg.Variety, g.cfg.Arity)
	tracer().Debugf("external %s resolves to %s.%s", con, mod, fn)
	callArgs := make([]ir.Expr, 0, len(args)+1+len(subjects))
	for _, a := range args {
		vf, err := g.visitorFunc(a)
		if err != nil {
			return nil, err
		}
		callArgs = append(callArgs, vf)
	}
	callArgs = append(callArgs, ir.Var{Name: g.names.Env()})
	callArgs = append(callArgs, subjects...)
	return ir.CallExt{Module: mod, Name: fn, Args: callArgs}, nil
}

// visitorFunc synthesizes a first-class visitor function for a type, the
// context in which the environment must be abstracted as a parameter. If
// the function body would merely forward its parameters to a hook method,
// the wrapper closure is elided and a method reference emitted instead.
func (g *Generator) visitorFunc(ty schema.Type) (ir.Expr, error) {
	arity := g.cfg.Arity
	params := []string{g.names.Env()}
	subjects := make([]ir.Expr, arity)
	for k := 0; k < arity; k++ {
		name := g.names.Subject(k, arity)
		params = append(params, name)
		subjects[k] = ir.Var{Name: name}
	}
	body, err := g.visitType(ty, subjects)
	if err != nil {
		return nil, err
	}
	if call, ok := body.(ir.CallHook); ok && forwardsParams(call, params) {
		return ir.HookRef{Name: call.Name}, nil
	}
	return ir.Lambda{Params: params, Body: body}, nil
}

// forwardsParams tells whether a hook call passes exactly the enclosing
// parameter list, in order.
func forwardsParams(call ir.CallHook, params []string) bool {
	if len(call.Args) != len(params) {
		return false
	}
	for i, a := range call.Args {
		v, ok := a.(ir.Var)
		if !ok || v.Name != params[i] {
			return false
		}
	}
	return true
}

// tupleExpr destructures N parallel tuple subjects, visits the components
// and recombines according to variety. Restriction does not apply to
// tuples; Reduce results are combined with the monoid hooks like
// constructor results.
func (g *Generator) tupleExpr(t schema.TypeTuple, subjects []ir.Expr) (ir.Expr, error) {
	arity := g.cfg.Arity
	binds := make([][]string, arity)
	for k := 0; k < arity; k++ {
		binds[k] = make([]string, len(t.Elems))
		for i := range t.Elems {
			binds[k][i] = g.names.TupleComponent(i, k, arity)
		}
	}
	var steps []ir.Expr
	results := make([]ir.Expr, len(t.Elems))
	for i, elem := range t.Elems {
		comps := make([]ir.Expr, arity)
		for k := 0; k < arity; k++ {
			comps[k] = ir.Var{Name: binds[k][i]}
		}
		visit, err := g.visitType(elem, comps)
		if err != nil {
			return nil, err
		}
		r := g.names.Result(i)
		steps = append(steps, ir.Bind{Name: r, Value: visit})
		results[i] = ir.Var{Name: r}
	}
	var tail ir.Expr
	switch g.cfg.Variety {
	case ir.Iter:
		tail = ir.Unit{}
	case ir.Map:
		tail = ir.TupleOf{Elems: results}
	case ir.Reduce:
		tail = g.foldPlus(results)
	}
	steps = append(steps, tail)
	return ir.MatchTuple{Subjects: subjects, Binds: binds, Body: ir.Seq{Exprs: steps}}, nil
}
