package ir

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"strings"
)

// Expr is a node of a generated method body. Expressions form a small,
// closed language: enough to express descending/ascending hook calls,
// external traversal calls, tuple plumbing and N-way tag matching, and
// nothing more. Type checking of the rendered code is left to the host
// compiler.
type Expr interface {
	fmt.Stringer
}

// Var references a variable bound by an enclosing method parameter, Bind,
// Case or Lambda.
type Var struct {
	Name string
}

// Unit is the don't-care result of Iter-variety traversals.
type Unit struct{}

// Bind introduces a variable in the enclosing Seq's scope. Its value is the
// bound value.
type Bind struct {
	Name  string
	Value Expr
}

// Seq evaluates its expressions in order; its value is the value of the
// last one (Unit for an empty sequence).
type Seq struct {
	Exprs []Expr
}

// CallHook calls a method on the visitor itself. Whether the method is a
// concrete default or has been overridden is a matter of dispatch, not of
// the call site.
type CallHook struct {
	Name string
	Args []Expr
}

// HookRef is a reference to a visitor method as a first-class function
// value. Synthesis emits HookRef instead of an eta-expanded Lambda whenever
// the wrapped call would just forward its arguments.
type HookRef struct {
	Name string
}

// CallExt calls a traversal function for an externally defined type. The
// function lives in Module and receives per-type-argument visitor functions
// followed by the environment and the subject values.
type CallExt struct {
	Module string
	Name   string
	Args   []Expr
}

// Lambda is a function literal. Parameters shadow outer bindings.
type Lambda struct {
	Params []string
	Body   Expr
}

// TupleOf constructs a tuple value from element results (Map variety).
type TupleOf struct {
	Elems []Expr
}

// MatchTuple destructures N parallel tuple subjects. Binds[k] names the
// components of subject k, in order. All subjects must have the same width.
type MatchTuple struct {
	Subjects []Expr
	Binds    [][]string
	Body     Expr
}

// Make rebuilds a constructor node from child results (Map variety
// ascending defaults).
type Make struct {
	Con  string
	Args []Expr
}

// Match dispatches on the tags of N parallel subject values. A Case is
// taken only if all N subjects carry its tag. Fallback, if non-nil, catches
// every other tag combination; it is present exactly when N > 1 and the
// matched sum type has more than one constructor.
type Match struct {
	Subjects []Expr
	Cases    []Case
	Fallback Expr
}

// Case is one constructor alternative of a Match. Binds[k][i] names
// component i of subject k.
type Case struct {
	Con   string
	Binds [][]string
	Body  Expr
}

// Abs threads the environment through a binding abstraction. The runtime's
// abstraction protocol calls extend on the bound name before invoking Walk
// on the sub-terms, and (for Reduce runs) restrict on the way out.
// Walk's parameters are the extended environment followed by the N body
// sub-terms.
type Abs struct {
	Env      Expr
	Subjects []Expr
	Walk     Lambda
}

// Fail signals a tag mismatch between parallel subjects of sum type TyCon.
// It is the default body of generated failure hooks.
type Fail struct {
	TyCon    string
	Subjects []Expr
}

// --- Stringers --------------------------------------------------------------

// The String forms are a debugging notation, not the rendered output.

func (v Var) String() string  { return v.Name }
func (u Unit) String() string { return "()" }

func (b Bind) String() string {
	return fmt.Sprintf("%s := %s", b.Name, b.Value)
}

func (s Seq) String() string {
	return "{ " + joinExprs(s.Exprs, "; ") + " }"
}

func (c CallHook) String() string {
	return fmt.Sprintf("self.%s(%s)", c.Name, joinExprs(c.Args, ", "))
}

func (h HookRef) String() string {
	return "self." + h.Name
}

func (c CallExt) String() string {
	return fmt.Sprintf("%s.%s(%s)", c.Module, c.Name, joinExprs(c.Args, ", "))
}

func (l Lambda) String() string {
	return fmt.Sprintf("λ(%s). %s", strings.Join(l.Params, ", "), l.Body)
}

func (t TupleOf) String() string {
	return "(" + joinExprs(t.Elems, ", ") + ")"
}

func (m MatchTuple) String() string {
	return fmt.Sprintf("let-tuple %v = %s in %s", m.Binds, joinExprs(m.Subjects, ", "), m.Body)
}

func (m Make) String() string {
	return fmt.Sprintf("%s(%s)", m.Con, joinExprs(m.Args, ", "))
}

func (m Match) String() string {
	var b strings.Builder
	b.WriteString("match " + joinExprs(m.Subjects, ", ") + " {")
	for _, c := range m.Cases {
		b.WriteString(fmt.Sprintf(" %s%v ⇒ %s;", c.Con, c.Binds, c.Body))
	}
	if m.Fallback != nil {
		b.WriteString(" _ ⇒ " + m.Fallback.String() + ";")
	}
	b.WriteString(" }")
	return b.String()
}

func (a Abs) String() string {
	return fmt.Sprintf("abs(%s; %s) %s", a.Env, joinExprs(a.Subjects, ", "), a.Walk)
}

func (f Fail) String() string {
	return fmt.Sprintf("fail[%s](%s)", f.TyCon, joinExprs(f.Subjects, ", "))
}

func joinExprs(xs []Expr, sep string) string {
	strs := make([]string, len(xs))
	for i, x := range xs {
		strs[i] = x.String()
	}
	return strings.Join(strs, sep)
}
