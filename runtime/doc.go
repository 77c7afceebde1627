/*
Package runtime executes generated visitor families over term values.

The generator (package gen) produces classes whose method bodies are
expressions of a small intermediate language. This package interprets
those bodies directly: an Instance binds a family to hook overrides, a
scope policy, a monoid and external module functions, and then runs
traversals without any rendering or host-compilation step in between.

	fam, _ := gen.Generate(group, opts)
	inst := runtime.NewInstance(fam)
	inst.UseMonoid(runtime.IntSum{})
	result, err := inst.Call("VisitTerm", nil, tree)

Instances are cheap; create one per traversal configuration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to vistra.runtime .
func tracer() tracing.Trace {
	return tracing.Select("vistra.runtime")
}
