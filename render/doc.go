/*
Package render turns generated visitor families into artifacts: Go
source for embedding into a host package, and HTML for inspecting a
family in a browser.

Rendered Go code is dynamically typed over runtime.Value and relies on
package runtime for terms, binder crossings and policies. Every
artifact carries a fingerprint of the family it was rendered from, so
stale copies are detectable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vistra.render'.
func tracer() tracing.Trace {
	return tracing.Select("vistra.render")
}
