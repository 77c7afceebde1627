package runtime

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Monoid supplies the combination hooks of Reduce runs: Zero is the
// result of an empty combination, Plus combines two partial results.
// An instance falls back to its monoid whenever neither an override nor
// a generated method implements Zero or Plus.
type Monoid interface {
	Zero() Value
	Plus(a, b Value) Value
}

// IntSum reduces to the sum of int contributions.
type IntSum struct{}

func (IntSum) Zero() Value { return 0 }

func (IntSum) Plus(a, b Value) Value {
	return a.(int) + b.(int)
}

// Names is a set of names, the carrier of the NameSet monoid.
type Names map[string]bool

// NamesOf builds a set from the given names.
func NamesOf(names ...string) Names {
	s := make(Names, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Without returns a copy of the set with one name removed.
func (s Names) Without(name string) Names {
	out := make(Names, len(s))
	for n := range s {
		if n != name {
			out[n] = true
		}
	}
	return out
}

// Sorted lists the set's names in lexicographic order.
func (s Names) Sorted() []string {
	names := maps.Keys(s)
	slices.Sort(names)
	return names
}

// NameSet reduces to the union of Names contributions.
type NameSet struct{}

func (NameSet) Zero() Value { return Names{} }

func (NameSet) Plus(a, b Value) Value {
	out := make(Names)
	maps.Copy(out, a.(Names))
	maps.Copy(out, b.(Names))
	return out
}
