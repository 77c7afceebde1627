package runtime

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/vistra/gen/ir"
)

// HookFunc overrides a generated method. It receives the instance (for
// delegating to other hooks) and the call arguments, environment first.
type HookFunc func(inst *Instance, args []Value) (Value, error)

// ModuleFunc is a traversal function of an external module. Its
// arguments are per-type-argument Visitor functions, then the
// environment, then the subject values.
type ModuleFunc func(args []Value) (Value, error)

// Visitor is a first-class traversal function, as passed to ModuleFuncs
// for the type arguments of an external type.
type Visitor func(env Value, subjects ...Value) (Value, error)

// Instance binds a generated family to everything it needs at run time:
// hook overrides, a scope policy, a monoid and external modules. The
// zero configuration runs every hook on its generated default, with a
// transparent scope policy and no external modules.
type Instance struct {
	family    *ir.Family
	overrides map[string]HookFunc
	policy    EnvPolicy
	monoid    Monoid
	modules   map[string]map[string]ModuleFunc
}

// NewInstance creates an instance of a generated family.
func NewInstance(fam *ir.Family) *Instance {
	return &Instance{
		family:    fam,
		overrides: make(map[string]HookFunc),
		policy:    Transparent{},
		modules:   make(map[string]map[string]ModuleFunc),
	}
}

// Override replaces a hook method. Overrides win over generated methods
// of both classes.
func (inst *Instance) Override(name string, fn HookFunc) *Instance {
	inst.overrides[name] = fn
	return inst
}

// UsePolicy sets the scope policy applied at binders.
func (inst *Instance) UsePolicy(p EnvPolicy) *Instance {
	inst.policy = p
	return inst
}

// UseMonoid sets the monoid backing the Zero and Plus hooks of Reduce
// runs.
func (inst *Instance) UseMonoid(m Monoid) *Instance {
	inst.monoid = m
	return inst
}

// Register attaches the traversal functions of an external module.
func (inst *Instance) Register(module string, fns map[string]ModuleFunc) *Instance {
	inst.modules[module] = fns
	return inst
}

// Call invokes a method of the family, usually a descending Visit
// method, on an environment and subject values.
func (inst *Instance) Call(method string, env Value, subjects ...Value) (Value, error) {
	args := make([]Value, 0, len(subjects)+1)
	args = append(args, env)
	args = append(args, subjects...)
	return inst.dispatch(method, args)
}

// TagMismatchError reports parallel subjects of a sum type carrying
// different constructor tags. It is what the generated failure hooks
// signal unless overridden.
type TagMismatchError struct {
	TyCon string
	Tags  []string
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("tag mismatch on type '%s': %s", e.TyCon, strings.Join(e.Tags, " vs "))
}

// --- Dispatch ---------------------------------------------------------------

// dispatch resolves a hook the way the generated hierarchy would:
// overrides first, then the variety subclass, then the base class, then
// the monoid for the combination hooks.
func (inst *Instance) dispatch(name string, args []Value) (Value, error) {
	if fn, ok := inst.overrides[name]; ok {
		return fn(inst, args)
	}
	if m, ok := inst.family.Lookup(name); ok {
		if len(m.Params) != len(args) {
			return nil, fmt.Errorf("hook %s expects %d arguments, got %d", name, len(m.Params), len(args))
		}
		f := newFrame(nil)
		for i, p := range m.Params {
			f.vars[p] = args[i]
		}
		return inst.eval(m.Body, f)
	}
	if inst.monoid != nil {
		switch name {
		case "Zero":
			return inst.monoid.Zero(), nil
		case "Plus":
			if len(args) == 2 {
				return inst.monoid.Plus(args[0], args[1]), nil
			}
		}
	}
	return nil, fmt.Errorf("no implementation for hook %s", name)
}

// --- Frames -----------------------------------------------------------------

// A frame holds the variable bindings of one lexical scope. Method
// bodies get a root frame; tuple destructuring, match cases and
// closures chain child frames onto it.
type frame struct {
	vars   map[string]Value
	parent *frame
}

func newFrame(parent *frame) *frame {
	return &frame{vars: make(map[string]Value), parent: parent}
}

func (f *frame) lookup(name string) (Value, bool) {
	for s := f; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// --- Expression evaluation --------------------------------------------------

func (inst *Instance) eval(e ir.Expr, f *frame) (Value, error) {
	switch x := e.(type) {
	case ir.Var:
		if v, ok := f.lookup(x.Name); ok {
			return v, nil
		}
		return nil, fmt.Errorf("unbound variable %s", x.Name)
	case ir.Unit:
		return Unit{}, nil
	case ir.Bind:
		v, err := inst.eval(x.Value, f)
		if err != nil {
			return nil, err
		}
		f.vars[x.Name] = v
		return v, nil
	case ir.Seq:
		var last Value = Unit{}
		for _, sub := range x.Exprs {
			v, err := inst.eval(sub, f)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	case ir.CallHook:
		args, err := inst.evalAll(x.Args, f)
		if err != nil {
			return nil, err
		}
		return inst.dispatch(x.Name, args)
	case ir.HookRef:
		name := x.Name
		return Visitor(func(env Value, subjects ...Value) (Value, error) {
			return inst.Call(name, env, subjects...)
		}), nil
	case ir.Lambda:
		return inst.closure(x, f), nil
	case ir.CallExt:
		return inst.callExt(x, f)
	case ir.TupleOf:
		elems, err := inst.evalAll(x.Elems, f)
		if err != nil {
			return nil, err
		}
		return Tuple(elems), nil
	case ir.MatchTuple:
		return inst.matchTuple(x, f)
	case ir.Make:
		args, err := inst.evalAll(x.Args, f)
		if err != nil {
			return nil, err
		}
		return &Term{Con: x.Con, Args: args}, nil
	case ir.Match:
		return inst.match(x, f)
	case ir.Abs:
		return inst.crossBinder(x, f)
	case ir.Fail:
		subjects, err := inst.evalAll(x.Subjects, f)
		if err != nil {
			return nil, err
		}
		tags := make([]string, len(subjects))
		for i, s := range subjects {
			tags[i] = tagOf(s)
		}
		return nil, &TagMismatchError{TyCon: x.TyCon, Tags: tags}
	}
	return nil, fmt.Errorf("cannot evaluate expression node %T", e)
}

func (inst *Instance) evalAll(exprs []ir.Expr, f *frame) ([]Value, error) {
	vals := make([]Value, len(exprs))
	for i, e := range exprs {
		v, err := inst.eval(e, f)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (inst *Instance) closure(l ir.Lambda, f *frame) Visitor {
	return func(env Value, subjects ...Value) (Value, error) {
		if len(subjects)+1 != len(l.Params) {
			return nil, fmt.Errorf("closure expects %d arguments, got %d", len(l.Params), len(subjects)+1)
		}
		child := newFrame(f)
		child.vars[l.Params[0]] = env
		for i, s := range subjects {
			child.vars[l.Params[i+1]] = s
		}
		return inst.eval(l.Body, child)
	}
}

func (inst *Instance) callExt(x ir.CallExt, f *frame) (Value, error) {
	fns, ok := inst.modules[x.Module]
	if !ok {
		return nil, fmt.Errorf("external module %s is not registered", x.Module)
	}
	fn, ok := fns[x.Name]
	if !ok {
		return nil, fmt.Errorf("external module %s has no function %s", x.Module, x.Name)
	}
	args, err := inst.evalAll(x.Args, f)
	if err != nil {
		return nil, err
	}
	return fn(args)
}

func (inst *Instance) matchTuple(x ir.MatchTuple, f *frame) (Value, error) {
	child := newFrame(f)
	for k, subj := range x.Subjects {
		v, err := inst.eval(subj, f)
		if err != nil {
			return nil, err
		}
		tup, ok := v.(Tuple)
		if !ok || len(tup) != len(x.Binds[k]) {
			return nil, fmt.Errorf("expected a %d-tuple, got %v", len(x.Binds[k]), v)
		}
		for i, name := range x.Binds[k] {
			child.vars[name] = tup[i]
		}
	}
	return inst.eval(x.Body, child)
}

func (inst *Instance) match(x ir.Match, f *frame) (Value, error) {
	subjects := make([]*Term, len(x.Subjects))
	for k, subj := range x.Subjects {
		v, err := inst.eval(subj, f)
		if err != nil {
			return nil, err
		}
		t, ok := v.(*Term)
		if !ok {
			return nil, fmt.Errorf("cannot match non-term value %v", v)
		}
		subjects[k] = t
	}
	for _, c := range x.Cases {
		if !allTagged(subjects, c.Con) {
			continue
		}
		child := newFrame(f)
		for k, t := range subjects {
			if len(t.Args) != len(c.Binds[k]) {
				return nil, fmt.Errorf("constructor %s carries %d components, expected %d",
					c.Con, len(t.Args), len(c.Binds[k]))
			}
			for i, name := range c.Binds[k] {
				child.vars[name] = t.Args[i]
			}
		}
		return inst.eval(c.Body, child)
	}
	if x.Fallback != nil {
		return inst.eval(x.Fallback, f)
	}
	if len(subjects) == 1 {
		return nil, fmt.Errorf("unknown constructor %s", subjects[0].Con)
	}
	tags := make([]string, len(subjects))
	for i, t := range subjects {
		tags[i] = t.Con
	}
	return nil, &TagMismatchError{Tags: tags}
}

func allTagged(subjects []*Term, con string) bool {
	for _, t := range subjects {
		if t.Con != con {
			return false
		}
	}
	return true
}

// crossBinder applies the scope policy around a binder crossing: extend
// on descent, walk the bodies under the extended environment, then
// either rebuild the binder (Map), restrict the ascending result
// (Reduce) or pass it through (Iter).
func (inst *Instance) crossBinder(x ir.Abs, f *frame) (Value, error) {
	env, err := inst.eval(x.Env, f)
	if err != nil {
		return nil, err
	}
	bodies := make([]Value, len(x.Subjects))
	var bound string
	for k, subj := range x.Subjects {
		v, err := inst.eval(subj, f)
		if err != nil {
			return nil, err
		}
		b, ok := v.(*Binder)
		if !ok {
			return nil, fmt.Errorf("expected a binder, got %v", v)
		}
		if k == 0 {
			bound = b.Name
		}
		bodies[k] = b.Body
	}
	extended, inner := inst.policy.Extend(bound, env)
	tracer().Debugf("binder %s: walking body under extended environment", inner)
	walk := inst.closure(x.Walk, f)
	result, err := walk(extended, bodies...)
	if err != nil {
		return nil, err
	}
	switch inst.family.Variety {
	case ir.Map:
		return &Binder{Name: inner, Body: result}, nil
	case ir.Reduce:
		return inst.policy.Restrict(inner, result), nil
	}
	return result, nil
}

func tagOf(v Value) string {
	switch t := v.(type) {
	case *Term:
		return t.Con
	case *Binder:
		return "bind " + t.Name
	}
	return fmt.Sprintf("%T", v)
}
