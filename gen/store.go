package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/vistra/gen/ir"
)

// Store accumulates method definitions per generated class while synthesis
// runs. Synthesis is traversal-driven: methods are declared at the moment
// the algorithm discovers the need for them, and a method requested twice
// is declared exactly once (first declaration wins). Declaration order is
// preserved into the assembled classes.
//
// A Store belongs to exactly one generation run. It is created by the
// Generator and never shared.
type Store struct {
	classes *linkedhashmap.Map // class name -> *ClassAcc
}

// NewStore creates an empty, run-scoped method store.
func NewStore() *Store {
	return &Store{classes: linkedhashmap.New()}
}

// Class returns the accumulator for a class, creating it on first use.
func (s *Store) Class(name string) *ClassAcc {
	if acc, ok := s.classes.Get(name); ok {
		return acc.(*ClassAcc)
	}
	acc := &ClassAcc{name: name, methods: linkedhashmap.New()}
	s.classes.Put(name, acc)
	return acc
}

// ClassAcc collects the methods of one generated class.
type ClassAcc struct {
	name    string
	methods *linkedhashmap.Map // method name -> *ir.Method
}

// Declare adds a method unless one of the same name exists already, and
// returns the method name (for use as a call target either way).
func (a *ClassAcc) Declare(m *ir.Method) string {
	if _, ok := a.methods.Get(m.Name); ok {
		return m.Name
	}
	tracer().Debugf("%s: declaring %s", a.name, m)
	a.methods.Put(m.Name, m)
	return m.Name
}

// Has tells whether a method name has been declared.
func (a *ClassAcc) Has(name string) bool {
	_, ok := a.methods.Get(name)
	return ok
}

// Build freezes the accumulator into a class value.
func (a *ClassAcc) Build(typeParams []string) *ir.Class {
	c := &ir.Class{Name: a.name, TypeParams: typeParams}
	it := a.methods.Iterator()
	for it.Next() {
		c.Methods = append(c.Methods, it.Value().(*ir.Method))
	}
	return c
}
