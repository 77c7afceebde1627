package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/vistra/gen/ir"
	"github.com/npillmayer/vistra/schema"
)

// Binding constructs. An abstraction type wraps its body in a binder; the
// generated traversal hands the crossing over to a scope policy supplied
// at run time: the policy extends the environment on the way in and,
// where results ascend, restricts the result on the way out. The
// traversal itself stays policy-agnostic: the synthesized code never
// hardcodes a particular notion of scoping.
//
// The walk function closes over nothing but its parameters. Its
// environment parameter shadows the enclosing one on purpose: every
// visit of the abstraction body runs under the extended environment.

// absExpr synthesizes the traversal of an abstraction occurrence.
func (g *Generator) absExpr(t schema.TypeAbs, subjects []ir.Expr) (ir.Expr, error) {
	arity := g.cfg.Arity
	params := []string{g.names.Env()}
	bodies := make([]ir.Expr, arity)
	for k := 0; k < arity; k++ {
		name := g.names.BodyVar(k, arity)
		params = append(params, name)
		bodies[k] = ir.Var{Name: name}
	}
	walk, err := g.visitType(t.Body, bodies)
	if err != nil {
		return nil, err
	}
	return ir.Abs{
		Env:      ir.Var{Name: g.names.Env()},
		Subjects: subjects,
		Walk:     ir.Lambda{Params: params, Body: walk},
	}, nil
}
