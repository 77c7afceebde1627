/*
Package vistra is a toolbox for deriving tree-traversal code from datatype schemas.

Vistra strives to be a smart and lightweight tool to generate
visitor families for algebraic datatypes.
Given a closed group of mutually recursive type declarations, it derives a
base class of overridable traversal hooks plus a variety-specific subclass
(pure traversal, structural transformation, or fold-to-scalar), optionally
generalized to walk several structurally parallel trees at once.
Package structure is as follows:

■ schema: Package schema models datatype declaration groups (sum types,
records, abbreviations, tuples, type variables and binding abstractions)
together with a builder for constructing them programmatically.

■ schema/sdl: Package sdl is a small text front-end for schemas.

■ gen: Package gen implements the code synthesis proper: naming conventions,
regularity checking, per-constructor case synthesis, environment threading
and class assembly.

■ gen/ir: Package ir holds the representation of generated classes, methods
and expressions, handed to back-ends for rendering.

■ runtime: Package runtime provides environment policies and term values for
generated visitors, plus an evaluator to execute visitor families in-process.

■ render: Package render is a back-end emitting Go source (and HTML dumps)
for generated class families.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vistra
