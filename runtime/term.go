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
)

// Value is any value flowing through a visitor run: terms, tuples,
// binders, environments, hook results and host scalars.
type Value interface{}

// Unit is the don't-care result of Iter-variety hooks.
type Unit struct{}

func (Unit) String() string { return "()" }

// Term is a constructor-tagged tree node. Terms are handled by pointer
// throughout so that rebuilt output is distinguishable from input
// sharing.
type Term struct {
	Con  string
	Args []Value
}

// T is a convenience constructor for terms.
func T(con string, args ...Value) *Term {
	return &Term{Con: con, Args: args}
}

func (t *Term) String() string {
	if len(t.Args) == 0 {
		return t.Con
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s)", t.Con, strings.Join(args, ", "))
}

// Tuple is a product value.
type Tuple []Value

func (t Tuple) String() string {
	elems := make([]string, len(t))
	for i, e := range t {
		elems[i] = fmt.Sprintf("%v", e)
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

// Binder wraps a body value under a bound name. Traversals cross it via
// the instance's scope policy.
type Binder struct {
	Name string
	Body Value
}

func (b *Binder) String() string {
	return fmt.Sprintf("bind %s. %v", b.Name, b.Body)
}

// Eq compares two values structurally. Terms and binders compare by
// content, not by pointer; host scalars compare with ==.
func Eq(a, b Value) bool {
	switch va := a.(type) {
	case *Term:
		vb, ok := b.(*Term)
		if !ok || va.Con != vb.Con || len(va.Args) != len(vb.Args) {
			return false
		}
		for i := range va.Args {
			if !Eq(va.Args[i], vb.Args[i]) {
				return false
			}
		}
		return true
	case Tuple:
		vb, ok := b.(Tuple)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Eq(va[i], vb[i]) {
				return false
			}
		}
		return true
	case *Binder:
		vb, ok := b.(*Binder)
		return ok && va.Name == vb.Name && Eq(va.Body, vb.Body)
	}
	return a == b
}
