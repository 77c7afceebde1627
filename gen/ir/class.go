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

// Variety is the traversal discipline of a generated family.
type Variety int

// Iter visits and discards results, Map visits and rebuilds structure,
// Reduce folds the tree to a scalar through a combination operation.
const (
	Iter Variety = iota
	Map
	Reduce
)

func (v Variety) String() string {
	switch v {
	case Iter:
		return "iter"
	case Map:
		return "map"
	case Reduce:
		return "reduce"
	}
	return fmt.Sprintf("variety(%d)", int(v))
}

// Method is one generated method. Virtual methods are declared in the base
// class without a body there; their defaults, if any, live in the variety
// subclass.
type Method struct {
	Name    string
	Params  []string
	Body    Expr
	Virtual bool
}

func (m *Method) String() string {
	kind := "def"
	if m.Virtual {
		kind = "virtual"
	}
	return fmt.Sprintf("%s %s(%s)", kind, m.Name, strings.Join(m.Params, ", "))
}

// Class is a generated class: an ordered collection of methods plus the
// two implicit type parameters every generated class carries (the self
// type for further overriding, and the environment type).
type Class struct {
	Name         string
	TypeParams   []string
	Methods      []*Method
	InheritsFrom *Class
}

// Method returns the named method of the class, or nil. It does not search
// the inheritance chain; see Family.Lookup for dispatch.
func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MethodNames lists the class's method names in declaration order.
func (c *Class) MethodNames() []string {
	names := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		names[i] = m.Name
	}
	return names
}

// Family is the complete output of one generation run: the base class and
// the variety subclass, plus the run parameters they were derived under.
type Family struct {
	Name    string
	Variety Variety
	Arity   int
	Base    *Class
	Variant *Class
}

// Lookup resolves a method the way the generated inheritance hierarchy
// would: the variety subclass first, then the base class. The boolean
// reports whether a concrete body was found (a virtual declaration without
// default does not count).
func (f *Family) Lookup(name string) (*Method, bool) {
	if m := f.Variant.Method(name); m != nil && m.Body != nil {
		return m, true
	}
	if m := f.Base.Method(name); m != nil {
		return m, m.Body != nil
	}
	return nil, false
}

func (f *Family) String() string {
	return fmt.Sprintf("family %s/%s%d [%d+%d methods]",
		f.Name, f.Variety, f.Arity, len(f.Base.Methods), len(f.Variant.Methods))
}
