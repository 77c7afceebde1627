package schema

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/vistra"
)

// --- Identifiers ------------------------------------------------------------

// TyCon names a type constructor, TyVar a type variable (without the
// leading tick of the text syntax), DataCon a data constructor and Label a
// record or constructor field label.
type (
	TyCon   string
	TyVar   string
	DataCon string
	Label   string
)

// --- Declarations -----------------------------------------------------------

// TypeDecl is one declaration of a group: a named, possibly parameterized
// type with one of three kinds (abbreviation, record, sum).
type TypeDecl struct {
	Name   TyCon
	Params []TyVar
	Kind   Kind
	Span   vistra.Span
}

// Kind is the right-hand side of a type declaration.
type Kind interface {
	kindMarker()
}

// Abbrev abbreviates another type.
type Abbrev struct {
	Of Type
}

// Record declares a record type with labeled fields.
type Record struct {
	Fields []Field
}

// Sum declares a sum type as a list of data constructors.
type Sum struct {
	Cons []Constructor
}

func (Abbrev) kindMarker() {}
func (Record) kindMarker() {}
func (Sum) kindMarker()    {}

// Constructor is one alternative of a sum type. Fields are positional when
// Labeled is false (labels empty), labeled otherwise. A constructor is
// owned by exactly one declaration.
type Constructor struct {
	Name    DataCon
	Fields  []Field
	Labeled bool
	Span    vistra.Span
}

// Field pairs an optional label with a type.
type Field struct {
	Label Label
	Type  Type
}

// --- Types ------------------------------------------------------------------

// Type is a recursive tagged value describing a field or abbreviation type.
type Type interface {
	fmt.Stringer
	Loc() vistra.Span
}

// TypeVar is an occurrence of a type variable.
type TypeVar struct {
	Name TyVar
	Span vistra.Span
}

// TypeApp applies a type constructor to argument types. Whether the
// constructor is local to the group or external is not recorded here; it
// is resolved at synthesis time against the declaration group and the
// configured module list.
type TypeApp struct {
	Con  TyCon
	Args []Type
	Span vistra.Span
}

// TypeTuple is a product of two or more types.
type TypeTuple struct {
	Elems []Type
	Span  vistra.Span
}

// TypeAbs marks a binding abstraction: a single name bound in scope for
// the body sub-term. Traversing it requires environment threading (see the
// abstraction protocol in package gen).
type TypeAbs struct {
	Body Type
	Span vistra.Span
}

func (t TypeVar) Loc() vistra.Span   { return t.Span }
func (t TypeApp) Loc() vistra.Span   { return t.Span }
func (t TypeTuple) Loc() vistra.Span { return t.Span }
func (t TypeAbs) Loc() vistra.Span   { return t.Span }

func (t TypeVar) String() string { return "'" + string(t.Name) }

func (t TypeApp) String() string {
	if len(t.Args) == 0 {
		return string(t.Con)
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Con, strings.Join(args, ", "))
}

func (t TypeTuple) String() string {
	elems := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, " * ") + ")"
}

func (t TypeAbs) String() string {
	return "bind " + t.Body.String()
}

// Equal compares two types structurally, ignoring spans.
func Equal(a, b Type) bool {
	switch ta := a.(type) {
	case TypeVar:
		tb, ok := b.(TypeVar)
		return ok && ta.Name == tb.Name
	case TypeApp:
		tb, ok := b.(TypeApp)
		if !ok || ta.Con != tb.Con || len(ta.Args) != len(tb.Args) {
			return false
		}
		for i := range ta.Args {
			if !Equal(ta.Args[i], tb.Args[i]) {
				return false
			}
		}
		return true
	case TypeTuple:
		tb, ok := b.(TypeTuple)
		if !ok || len(ta.Elems) != len(tb.Elems) {
			return false
		}
		for i := range ta.Elems {
			if !Equal(ta.Elems[i], tb.Elems[i]) {
				return false
			}
		}
		return true
	case TypeAbs:
		tb, ok := b.(TypeAbs)
		return ok && Equal(ta.Body, tb.Body)
	}
	return false
}

// --- Type constructors for programmatic use ---------------------------------

// Var builds a type-variable occurrence.
func Var(name string) Type {
	return TypeVar{Name: TyVar(name)}
}

// App builds a type-constructor application.
func App(con string, args ...Type) Type {
	return TypeApp{Con: TyCon(con), Args: args}
}

// Tuple builds a product type.
func Tuple(elems ...Type) Type {
	return TypeTuple{Elems: elems}
}

// Abs builds a binding abstraction over a body type.
func Abs(body Type) Type {
	return TypeAbs{Body: body}
}

// --- Declaration groups -----------------------------------------------------

// DeclGroup is one closed set of mutually recursive type declarations,
// processed by a single generation run. Declaration order is preserved and
// observable in generated output.
type DeclGroup struct {
	Name  string
	Decls []*TypeDecl
	index map[TyCon]*TypeDecl
}

// Lookup finds the declaration for a type constructor, or nil if the
// constructor is not local to the group.
func (g *DeclGroup) Lookup(con TyCon) *TypeDecl {
	return g.index[con]
}

// Dump is a debugging helper, listing the group on the tracer.
func (g *DeclGroup) Dump() {
	for i, d := range g.Decls {
		tracer().Debugf("%d: %s", i, declString(d))
	}
}

func declString(d *TypeDecl) string {
	var b strings.Builder
	b.WriteString(string(d.Name))
	for _, p := range d.Params {
		b.WriteString(" '" + string(p))
	}
	b.WriteString(" ::= ")
	switch k := d.Kind.(type) {
	case Abbrev:
		b.WriteString(k.Of.String())
	case Record:
		parts := make([]string, len(k.Fields))
		for i, f := range k.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Label, f.Type)
		}
		b.WriteString("{ " + strings.Join(parts, "; ") + " }")
	case Sum:
		parts := make([]string, len(k.Cons))
		for i, c := range k.Cons {
			parts[i] = conString(c)
		}
		b.WriteString(strings.Join(parts, " | "))
	}
	return b.String()
}

func conString(c Constructor) string {
	if len(c.Fields) == 0 {
		return string(c.Name)
	}
	parts := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		if c.Labeled {
			parts[i] = fmt.Sprintf("%s: %s", f.Label, f.Type)
		} else {
			parts[i] = f.Type.String()
		}
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}
