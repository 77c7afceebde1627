package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/vistra/gen/ir"
)

// assemble freezes the two method accumulators into the final class pair.
// The base class carries the traversal skeleton and the virtual hooks; the
// variant subclass carries the variety defaults and inherits from the
// base. Both classes share the type-parameter list [self, env]: self is
// the open-recursion knob of the family, env the environment type.
func (g *Generator) assemble() *ir.Family {
	typeParams := []string{"self", "env"}
	base := g.base.Build(typeParams)
	variant := g.variant.Build(typeParams)
	variant.InheritsFrom = base
	return &ir.Family{
		Name:    g.cfg.ClassName,
		Variety: g.cfg.Variety,
		Arity:   g.cfg.Arity,
		Base:    base,
		Variant: variant,
	}
}
