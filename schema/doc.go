/*
Package schema models groups of mutually recursive datatype declarations.

Building a Declaration Group

Groups are specified using a builder object. Clients add declarations,
consisting of sum types (with positional or labeled constructor fields),
record types and type abbreviations. Types are composed from type
variables, type-constructor applications, tuples and binding abstractions.

Example:

    b := schema.NewGroupBuilder("demo")
    b.Decl("term").Sum().
        Con("Leaf").Of(schema.App("int")).
        Con("Node").Of(schema.App("term"), schema.App("term")).End()
    b.Decl("pair", "a").Abbrev(schema.Tuple(schema.Var("a"), schema.Var("a")))
    g, err := b.Group()

This results in the following trivial group:

    g.Dump()

    0: term ::= Leaf(int) | Node(term, term)
    1: pair 'a ::= ('a * 'a)

A declaration group is a closed world: every type-constructor application
that names a declaration of the group is "local"; every other application
is "external" and will be resolved against user-declared modules at
generation time (see package gen).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package schema

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vistra.schema'.
func tracer() tracing.Trace {
	return tracing.Select("vistra.schema")
}
