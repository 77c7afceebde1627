/*
Package gen synthesizes visitor class families from datatype schemas.

Clients create a declaration group (package schema), parse generation
options into a Config, then run a Generator:

    cfg, err := gen.ParseOptions(opts)        // variety, class name, …
    g := gen.NewGenerator(group, cfg)
    family, err := g.Family()                 // *ir.Family

A generation run is single-pass and all-or-nothing: the first failing check
aborts it and no partial family is ever returned. All run state lives in the
Generator and its method store; there is no package-level mutable state, so
unrelated runs may proceed concurrently.

The synthesis algorithm walks the declarations structurally. For each
declaration it produces a descending method; sum types get one case per
constructor, each case calling a descending hook whose default body visits
the children and finishes with an ascending hook. Ascending hooks are
virtual in the base class; their defaults (discard, rebuild, or fold,
depending on variety) are supplied by the variety subclass. At arities
above one, a per-sum-type failure hook catches parallel subjects whose
tags disagree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vistra.gen'.
func tracer() tracing.Trace {
	return tracing.Select("vistra.gen")
}
