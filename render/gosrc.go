package render

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"io"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/vistra/gen/ir"
	"golang.org/x/tools/imports"
)

const runtimePkg = "github.com/npillmayer/vistra/runtime"

// Fingerprint returns a stable hash over a family's observable shape:
// its run parameters and every method with its body. Two runs over the
// same inputs fingerprint identically.
func Fingerprint(fam *ir.Family) string {
	type key struct {
		Name    string
		Variety string
		Arity   int
		Methods []string
	}
	k := key{Name: fam.Name, Variety: fam.Variety.String(), Arity: fam.Arity}
	for _, c := range []*ir.Class{fam.Base, fam.Variant} {
		for _, m := range c.Methods {
			entry := fmt.Sprintf("%s.%s(%s)", c.Name, m.Name, strings.Join(m.Params, ","))
			if m.Body != nil {
				entry += "=" + m.Body.String()
			}
			k.Methods = append(k.Methods, entry)
		}
	}
	return fmt.Sprintf("%x", structhash.Sha1(k, 1))
}

// FamilyAsGo renders a family as a Go source file for package pkg and
// writes it to w. The output is passed through the goimports machinery,
// so unused imports are pruned and the file arrives formatted.
func FamilyAsGo(fam *ir.Family, pkg string, w io.Writer) error {
	r := &gorenderer{fam: fam}
	r.file(pkg)
	src, err := imports.Process(pkg+".go", []byte(r.b.String()), nil)
	if err != nil {
		tracer().Errorf("rendered source does not format: %v", err)
		return err
	}
	_, err = w.Write(src)
	return err
}

type gorenderer struct {
	fam    *ir.Family
	b      strings.Builder
	indent int
}

func (r *gorenderer) ln(format string, args ...interface{}) {
	r.b.WriteString(strings.Repeat("\t", r.indent))
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *gorenderer) file(pkg string) {
	fam := r.fam
	r.ln("// Code generated for visitor family %s (%s, arity %d). DO NOT EDIT.", fam.Name, fam.Variety, fam.Arity)
	r.ln("// fingerprint sha1:%s", Fingerprint(fam))
	r.ln("")
	r.ln("package %s", pkg)
	r.ln("")
	r.ln("import (")
	r.ln("\t%q", "fmt")
	r.ln("\t%q", runtimePkg)
	r.ln(")")
	r.ln("")
	r.selfInterface()
	r.class(fam.Base, fam.Base.Name)
	r.class(fam.Variant, fam.Base.Name)
	if r.usesBinders() {
		r.binderHelper()
	}
}

// selfInterface declares the open-recursion interface: one entry per
// hook of the family. A consumer embeds the variety subclass, points
// Self at itself and overrides by shadowing.
func (r *gorenderer) selfInterface() {
	r.ln("// %s lists the hooks of the family; Self-dispatch runs every", r.selfName())
	r.ln("// call through it so that overrides take effect everywhere.")
	r.ln("type %s interface {", r.selfName())
	r.indent++
	seen := map[string]bool{}
	for _, c := range []*ir.Class{r.fam.Base, r.fam.Variant} {
		for _, m := range c.Methods {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			r.ln("%s(%s) runtime.Value", m.Name, paramList(m.Params))
		}
	}
	r.indent--
	r.ln("}")
	r.ln("")
}

func (r *gorenderer) selfName() string {
	return r.fam.Name + "Self"
}

func (r *gorenderer) class(c *ir.Class, baseName string) {
	if c == r.fam.Base {
		r.ln("// %s is the base class: the traversal skeleton and its hooks.", c.Name)
		r.ln("type %s struct {", c.Name)
		r.indent++
		r.ln("Self   %s", r.selfName())
		r.ln("Policy runtime.EnvPolicy")
		r.indent--
		r.ln("}")
	} else {
		r.ln("// %s carries the %s-variety defaults.", c.Name, r.fam.Variety)
		r.ln("type %s struct {", c.Name)
		r.indent++
		r.ln("%s", baseName)
		r.indent--
		r.ln("}")
	}
	r.ln("")
	recv := c.Name
	for _, m := range c.Methods {
		r.method(recv, m)
	}
}

func (r *gorenderer) method(recv string, m *ir.Method) {
	r.ln("func (v *%s) %s(%s) runtime.Value {", recv, m.Name, paramList(m.Params))
	r.indent++
	if m.Body == nil {
		r.ln("panic(%q)", "hook "+m.Name+" requires an override")
	} else {
		r.stmts(m.Body, true)
	}
	r.indent--
	r.ln("}")
	r.ln("")
}

// stmts renders an expression in statement position; ret decides whether
// the final value is returned.
func (r *gorenderer) stmts(e ir.Expr, ret bool) {
	switch x := e.(type) {
	case ir.Seq:
		for i, sub := range x.Exprs {
			last := i == len(x.Exprs)-1
			if b, ok := sub.(ir.Bind); ok && !last {
				// a result never referenced again is discarded, not declared
				if refersToAny(x.Exprs[i+1:], b.Name) {
					r.ln("%s := %s", b.Name, r.expr(b.Value))
				} else {
					r.stmts(b.Value, false)
				}
				continue
			}
			r.stmts(sub, ret && last)
		}
	case ir.Match:
		r.matchStmt(x, ret)
	case ir.MatchTuple:
		r.matchTupleStmt(x, ret)
	case ir.Fail:
		tags := make([]string, len(x.Subjects))
		for i, s := range x.Subjects {
			tags[i] = r.expr(s)
		}
		r.ln("panic(fmt.Sprintf(%q, %s))",
			"tag mismatch on type '"+x.TyCon+"': %v", "[]runtime.Value{"+strings.Join(tags, ", ")+"}")
	default:
		if ret {
			r.ln("return %s", r.expr(e))
			return
		}
		switch e.(type) {
		case ir.CallHook, ir.CallExt:
			r.ln("%s", r.expr(e)) // calls are statements of their own
		default:
			r.ln("_ = %s", r.expr(e))
		}
	}
}

func refersToAny(exprs []ir.Expr, name string) bool {
	for _, e := range exprs {
		if refersTo(e, name) {
			return true
		}
	}
	return false
}

// refersTo reports whether a body expression references a variable.
func refersTo(e ir.Expr, name string) bool {
	switch x := e.(type) {
	case ir.Var:
		return x.Name == name
	case ir.Bind:
		return refersTo(x.Value, name)
	case ir.Seq:
		return refersToAny(x.Exprs, name)
	case ir.CallHook:
		return refersToAny(x.Args, name)
	case ir.CallExt:
		return refersToAny(x.Args, name)
	case ir.Make:
		return refersToAny(x.Args, name)
	case ir.TupleOf:
		return refersToAny(x.Elems, name)
	case ir.Lambda:
		for _, p := range x.Params {
			if p == name { // shadowed
				return false
			}
		}
		return refersTo(x.Body, name)
	case ir.Abs:
		return refersTo(x.Env, name) || refersToAny(x.Subjects, name) || refersTo(x.Walk, name)
	case ir.Match:
		if refersToAny(x.Subjects, name) {
			return true
		}
		for _, c := range x.Cases {
			if refersTo(c.Body, name) {
				return true
			}
		}
		return x.Fallback != nil && refersTo(x.Fallback, name)
	case ir.MatchTuple:
		return refersToAny(x.Subjects, name) || refersTo(x.Body, name)
	case ir.Fail:
		return refersToAny(x.Subjects, name)
	}
	return false
}

func (r *gorenderer) matchStmt(m ir.Match, ret bool) {
	terms := make([]string, len(m.Subjects))
	for k, s := range m.Subjects {
		terms[k] = fmt.Sprintf("t_%d", k)
		r.ln("%s := %s.(*runtime.Term)", terms[k], r.expr(s))
	}
	r.ln("switch {")
	for _, c := range m.Cases {
		conds := make([]string, len(terms))
		for k, t := range terms {
			conds[k] = fmt.Sprintf("%s.Con == %q", t, c.Con)
		}
		r.ln("case %s:", strings.Join(conds, " && "))
		r.indent++
		for k, names := range c.Binds {
			for i, name := range names {
				r.ln("%s := %s.Args[%d]", name, terms[k], i)
			}
		}
		r.stmts(c.Body, ret)
		r.indent--
	}
	r.ln("default:")
	r.indent++
	if m.Fallback != nil {
		r.stmts(m.Fallback, ret)
	} else {
		r.ln("panic(fmt.Sprintf(%q, %s.Con))", "unknown constructor %s", terms[0])
	}
	r.indent--
	r.ln("}")
	if ret {
		r.ln("panic(%q)", "unreachable")
	}
}

func (r *gorenderer) matchTupleStmt(m ir.MatchTuple, ret bool) {
	for k, s := range m.Subjects {
		tmp := fmt.Sprintf("tu_%d", k)
		r.ln("%s := %s.(runtime.Tuple)", tmp, r.expr(s))
		for i, name := range m.Binds[k] {
			r.ln("%s := %s[%d]", name, tmp, i)
		}
	}
	r.stmts(m.Body, ret)
}

// expr renders an expression in value position.
func (r *gorenderer) expr(e ir.Expr) string {
	switch x := e.(type) {
	case ir.Var:
		return x.Name
	case ir.Unit:
		return "runtime.Unit{}"
	case ir.CallHook:
		return fmt.Sprintf("v.Self.%s(%s)", x.Name, r.exprList(x.Args))
	case ir.HookRef:
		return "v.Self." + x.Name
	case ir.CallExt:
		return fmt.Sprintf("%s.%s(%s)", x.Module, x.Name, r.exprList(x.Args))
	case ir.Make:
		if len(x.Args) == 0 {
			return fmt.Sprintf("runtime.T(%q)", x.Con)
		}
		return fmt.Sprintf("runtime.T(%q, %s)", x.Con, r.exprList(x.Args))
	case ir.TupleOf:
		return fmt.Sprintf("runtime.Tuple{%s}", r.exprList(x.Elems))
	case ir.Lambda:
		return r.lambda(x)
	case ir.Abs:
		args := append([]ir.Expr{x.Env}, x.Subjects...)
		return fmt.Sprintf("v.walkBinder(%s, %s)", r.exprList(args), r.lambda(x.Walk))
	case ir.Bind:
		// a Bind outside a Seq yields its value
		return r.expr(x.Value)
	}
	// Match/MatchTuple/Seq in value position get wrapped into a closure
	var sub gorenderer
	sub.fam = r.fam
	sub.indent = r.indent + 1
	sub.stmts(e, true)
	return "func() runtime.Value {\n" + sub.b.String() + strings.Repeat("\t", r.indent) + "}()"
}

func (r *gorenderer) lambda(l ir.Lambda) string {
	var sub gorenderer
	sub.fam = r.fam
	sub.indent = r.indent + 1
	sub.stmts(l.Body, true)
	return fmt.Sprintf("func(%s) runtime.Value {\n%s%s}",
		paramList(l.Params), sub.b.String(), strings.Repeat("\t", r.indent))
}

func (r *gorenderer) exprList(exprs []ir.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = r.expr(e)
	}
	return strings.Join(parts, ", ")
}

func paramList(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return strings.Join(params, ", ") + " runtime.Value"
}

func (r *gorenderer) usesBinders() bool {
	for _, c := range []*ir.Class{r.fam.Base, r.fam.Variant} {
		for _, m := range c.Methods {
			if m.Body != nil && containsAbs(m.Body) {
				return true
			}
		}
	}
	return false
}

func containsAbs(e ir.Expr) bool {
	switch x := e.(type) {
	case ir.Abs:
		return true
	case ir.Seq:
		for _, sub := range x.Exprs {
			if containsAbs(sub) {
				return true
			}
		}
	case ir.Bind:
		return containsAbs(x.Value)
	case ir.Match:
		for _, c := range x.Cases {
			if containsAbs(c.Body) {
				return true
			}
		}
		return x.Fallback != nil && containsAbs(x.Fallback)
	case ir.MatchTuple:
		return containsAbs(x.Body)
	case ir.Lambda:
		return containsAbs(x.Body)
	case ir.CallHook:
		for _, a := range x.Args {
			if containsAbs(a) {
				return true
			}
		}
	case ir.CallExt:
		for _, a := range x.Args {
			if containsAbs(a) {
				return true
			}
		}
	}
	return false
}

// binderHelper renders the per-family binder crossing, with the variety
// behavior baked in.
func (r *gorenderer) binderHelper() {
	arity := r.fam.Arity
	params := []string{"env"}
	for k := 0; k < arity; k++ {
		params = append(params, fmt.Sprintf("s_%d", k))
	}
	walkSig := "func(" + strings.TrimSuffix(strings.Repeat("runtime.Value, ", arity+1), ", ") + ") runtime.Value"
	r.ln("// walkBinder crosses a binder under the scope policy.")
	r.ln("func (v *%s) walkBinder(%s runtime.Value, walk %s) runtime.Value {",
		r.fam.Base.Name, strings.Join(params, ", "), walkSig)
	r.indent++
	for k := 0; k < arity; k++ {
		r.ln("b_%d := s_%d.(*runtime.Binder)", k, k)
	}
	r.ln("extended, inner := v.Policy.Extend(b_0.Name, env)")
	bodies := make([]string, arity)
	for k := 0; k < arity; k++ {
		bodies[k] = fmt.Sprintf("b_%d.Body", k)
	}
	r.ln("result := walk(extended, %s)", strings.Join(bodies, ", "))
	switch r.fam.Variety {
	case ir.Map:
		r.ln("return &runtime.Binder{Name: inner, Body: result}")
	case ir.Reduce:
		r.ln("return v.Policy.Restrict(inner, result)")
	default:
		r.ln("return result")
	}
	r.indent--
	r.ln("}")
	r.ln("")
}
