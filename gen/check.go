package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/vistra"
	"github.com/npillmayer/vistra/schema"
)

// checkLocalApp validates one occurrence of a local type-constructor
// application against its declaration: the argument count must match the
// formal parameter count, and, unless irregular recursion is allowed,
// every actual argument must be exactly the corresponding formal type
// variable. The check runs per occurrence at synthesis time; the relevant
// formals are known only once the target declaration is resolved.
func (g *Generator) checkLocalApp(app schema.TypeApp, decl *schema.TypeDecl) error {
	loc := vistra.Loc(g.group.Name, app.Span)
	if len(app.Args) != len(decl.Params) {
		return arityErr(loc, app, decl)
	}
	for _, arg := range app.Args {
		if err := g.checkArgArity(arg); err != nil {
			return err
		}
	}
	if g.cfg.AllowIrregular {
		return nil
	}
	for i, actual := range app.Args {
		formal := schema.TypeVar{Name: decl.Params[i]}
		if !schema.Equal(actual, formal) {
			return &Error{
				Code:     IrregularRecursion,
				Op:       "synthesize",
				Loc:      loc,
				Detail:   fmt.Sprintf("local recursive type '%s' instantiated irregularly", app.Con),
				Expected: fmt.Sprintf("%s%s", app.Con, formalsString(decl.Params)),
				Actual:   app.String(),
			}
		}
	}
	return nil
}

// checkArgArity walks a type-argument position and applies the argument
// count check to every local application nested inside it. The escape
// hatch for irregular recursion waives the pointwise regularity check
// only; argument counts must match regardless.
func (g *Generator) checkArgArity(t schema.Type) error {
	switch x := t.(type) {
	case schema.TypeApp:
		if decl := g.group.Lookup(x.Con); decl != nil && len(x.Args) != len(decl.Params) {
			return arityErr(vistra.Loc(g.group.Name, x.Span), x, decl)
		}
		for _, a := range x.Args {
			if err := g.checkArgArity(a); err != nil {
				return err
			}
		}
	case schema.TypeTuple:
		for _, e := range x.Elems {
			if err := g.checkArgArity(e); err != nil {
				return err
			}
		}
	case schema.TypeAbs:
		return g.checkArgArity(x.Body)
	}
	return nil
}

func arityErr(loc vistra.Location, app schema.TypeApp, decl *schema.TypeDecl) *Error {
	return &Error{
		Code:     ArityMismatch,
		Op:       "synthesize",
		Loc:      loc,
		Detail:   fmt.Sprintf("local type constructor '%s' applied to wrong number of arguments", app.Con),
		Expected: fmt.Sprintf("%d", len(decl.Params)),
		Actual:   fmt.Sprintf("%d", len(app.Args)),
	}
}

func formalsString(params []schema.TyVar) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = "'" + string(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
