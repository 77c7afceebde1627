/*
Package sdl reads the textual schema definition language.

A schema source consists of type declarations and an optional options
line:

	-- binary trees over ints
	type term = Leaf(int) | Node(term, term)
	type point = { x: int; y: int }
	type pair 'a = ('a * 'a)
	type scoped = Lam(bind term)

	options variety=map2 name=cmp nonlocal=Stdlib:list

Data constructors are distinguished from abbreviation targets by casing:
an uppercase-initial identifier after '=' starts a sum. Comments run
from '--' to the end of the line. Option values must not contain
whitespace; list-valued options separate entries with commas.

Parsing yields a schema.DeclGroup plus raw gen.Options; all semantic
validation stays with packages schema and gen.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sdl

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vistra.sdl'.
func tracer() tracing.Trace {
	return tracing.Select("vistra.sdl")
}
