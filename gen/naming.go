package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/vistra/gen/ir"
	"github.com/npillmayer/vistra/schema"
)

// Namer derives generated identifiers from schema identifiers. It is
// deterministic and guarantees that two distinct schema identifiers never
// map to the same generated name within the method namespace: title-casing
// may merge names like 'fooBar' and 'foo_bar', in which case the later
// arrival is deterministically de-collided by suffixing its sanitized raw
// form.
//
// Names referencing externally resolved modules are derived by a separate
// rule (see ModuleFor) and take no part in collision avoidance, as they live
// in the host's global namespace.
type Namer struct {
	taken map[string]string // generated method name -> origin key
}

// NewNamer creates a fresh namer for one generation run.
func NewNamer() *Namer {
	return &Namer{taken: make(map[string]string)}
}

// VisitMethod names the descending method for a type constructor.
func (n *Namer) VisitMethod(t schema.TyCon) string {
	return n.method("tycon "+string(t), "Visit"+title(string(t)))
}

// EnterHook names the descending hook for a data constructor.
func (n *Namer) EnterHook(c schema.DataCon) string {
	return n.method("enter "+string(c), "Enter"+title(string(c)))
}

// ExitHook names the ascending hook for a data constructor.
func (n *Namer) ExitHook(c schema.DataCon) string {
	return n.method("exit "+string(c), "Exit"+title(string(c)))
}

// VarHook names the hook for an (unfrozen) type variable.
func (n *Namer) VarHook(v schema.TyVar) string {
	return n.method("tyvar "+string(v), "VisitVar"+title(string(v)))
}

// FailHook names the tag-mismatch hook of a sum type.
func (n *Namer) FailHook(t schema.TyCon) string {
	return n.method("fail "+string(t), "Fail"+title(string(t)))
}

func (n *Namer) method(origin, base string) string {
	name := base
	for {
		owner, clash := n.taken[name]
		if !clash {
			n.taken[name] = origin
			return name
		}
		if owner == origin { // same schema identifier asking again
			return name
		}
		tracer().Debugf("generated name %s for %s collides with %s, suffixing", name, origin, owner)
		name = name + "_" + sanitize(originIdent(origin))
		origin = origin + "+"
	}
}

func originIdent(origin string) string {
	if i := strings.IndexByte(origin, ' '); i >= 0 {
		return origin[i+1:]
	}
	return origin
}

// --- Local variable names ---------------------------------------------------

// Local names within one generated method body are index-derived and
// cannot collide with each other by construction. The arity index is
// omitted at arity 1 to keep generated code readable.

// Subject names the k-th parallel subject parameter.
func (n *Namer) Subject(k, arity int) string {
	if arity == 1 {
		return "subj"
	}
	return fmt.Sprintf("subj_%d", k)
}

// Component names component i of parallel tree k.
func (n *Namer) Component(i, k, arity int) string {
	if arity == 1 {
		return fmt.Sprintf("x%d", i)
	}
	return fmt.Sprintf("x%d_%d", i, k)
}

// TupleComponent names tuple element i of parallel tree k.
func (n *Namer) TupleComponent(i, k, arity int) string {
	if arity == 1 {
		return fmt.Sprintf("t%d", i)
	}
	return fmt.Sprintf("t%d_%d", i, k)
}

// Result names the result of visiting component i.
func (n *Namer) Result(i int) string {
	return fmt.Sprintf("r%d", i)
}

// Env is the name of the environment parameter.
func (n *Namer) Env() string {
	return "env"
}

// BodyVar names the k-th abstraction body parameter inside a binding walk.
func (n *Namer) BodyVar(k, arity int) string {
	if arity == 1 {
		return "body"
	}
	return fmt.Sprintf("body_%d", k)
}

// --- External resolution ----------------------------------------------------

// ModuleFor resolves the home module of an external type constructor. The
// configured module list is searched in order with the last (most specific)
// match winning; an uncovered constructor falls back to the
// module-qualification heuristic of title-casing its own name.
func ModuleFor(con string, mods []ModuleRef) string {
	mod := ""
	for _, m := range mods {
		if m.Provides(con) {
			mod = m.Name
		}
	}
	if mod == "" {
		mod = title(con)
	}
	return mod
}

// ExtFunc names the traversal function looked up in an external module:
// the variety name, title-cased, with the arity digit appended for
// arities above one.
func ExtFunc(v ir.Variety, arity int) string {
	name := title(v.String())
	if arity > 1 {
		name = fmt.Sprintf("%s%d", name, arity)
	}
	return name
}

// --- Identifier helpers -----------------------------------------------------

// title upper-cases the first rune and sanitizes the rest into a host
// identifier.
func title(s string) string {
	s = sanitize(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
