package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/vistra"
	"github.com/npillmayer/vistra/gen/ir"
)

// Option is one raw generation option as delivered by a front-end: a name,
// an uninterpreted value string and the source location of the option.
// Boolean options carry an empty value.
type Option struct {
	Name  string
	Value string
	Loc   vistra.Location
}

// ModuleRef names an externally defined module searched for traversal
// functions. Types lists the type constructors the module is declared to
// provide; an empty list makes the module a wildcard provider.
type ModuleRef struct {
	Name  string
	Types []string
}

// Provides tells whether the module is declared to cover a type
// constructor.
func (m ModuleRef) Provides(con string) bool {
	if len(m.Types) == 0 {
		return true
	}
	for _, t := range m.Types {
		if t == con {
			return true
		}
	}
	return false
}

// Config is the typed, immutable option set of one generation run.
type Config struct {
	Variety        ir.Variety
	Arity          int
	ClassName      string
	Frozen         *treeset.Set // of type-variable names (string)
	Modules        []ModuleRef  // searched most-specific-last
	AllowIrregular bool
}

// IsFrozen tells whether a type variable is to be treated as an external
// type.
func (c *Config) IsFrozen(name string) bool {
	return c.Frozen.Contains(name)
}

// The recognized option names. Anything else is rejected with
// UnsupportedOption.
var knownOptions = map[string]bool{
	"variety":   true,
	"name":      true,
	"freeze":    true,
	"irregular": true,
	"nonlocal":  true,
}

// ParseOptions interprets raw options into a Config. It performs all
// option-level validation of the error taxonomy: unsupported names,
// missing 'name'/'variety', the class-name casing rule and the
// variety+arity mini-grammar.
func ParseOptions(opts []Option) (*Config, error) {
	cfg := &Config{
		Arity:  1,
		Frozen: treeset.NewWithStringComparator(),
	}
	var haveName, haveVariety bool
	for _, o := range opts {
		if !knownOptions[o.Name] {
			return nil, errf(UnsupportedOption, "options", o.Loc,
				"option '%s' is not recognized", o.Name)
		}
		switch o.Name {
		case "variety":
			v, n, err := parseVariety(o.Value, o.Loc)
			if err != nil {
				return nil, err
			}
			cfg.Variety, cfg.Arity = v, n
			haveVariety = true
		case "name":
			if !isLowerIdent(o.Value) {
				return nil, errf(InvalidClassName, "options", o.Loc,
					"class name '%s' must be a lowercase-initial identifier", o.Value)
			}
			cfg.ClassName = o.Value
			haveName = true
		case "freeze":
			for _, v := range splitList(o.Value) {
				cfg.Frozen.Add(v)
			}
		case "irregular":
			cfg.AllowIrregular = true
		case "nonlocal":
			for _, entry := range splitList(o.Value) {
				cfg.Modules = append(cfg.Modules, parseModuleRef(entry))
			}
		}
	}
	if !haveName || !haveVariety {
		missing := "variety"
		if haveVariety {
			missing = "name"
		}
		return nil, errf(MissingRequiredOption, "options", vistra.Location{},
			"required option '%s' is missing", missing)
	}
	tracer().Infof("options: variety=%s arity=%d name=%s", cfg.Variety, cfg.Arity, cfg.ClassName)
	return cfg, nil
}

// parseVariety decodes the (iter|map|reduce)[digits] convention, e.g.
// "map2" ⇒ (Map, 2). A missing digit suffix means arity 1; a suffix of 0
// is rejected.
func parseVariety(s string, loc vistra.Location) (ir.Variety, int, error) {
	base := strings.TrimRightFunc(s, unicode.IsDigit)
	digits := s[len(base):]
	var v ir.Variety
	switch base {
	case "iter":
		v = ir.Iter
	case "map":
		v = ir.Map
	case "reduce":
		v = ir.Reduce
	default:
		return 0, 0, errf(InvalidVariety, "options", loc,
			"variety '%s' does not match (iter|map|reduce)[digits]", s)
	}
	n := 1
	if digits != "" {
		var err error
		if n, err = strconv.Atoi(digits); err != nil || n < 1 {
			return 0, 0, errf(InvalidVariety, "options", loc,
				"variety '%s' has a non-positive arity suffix", s)
		}
	}
	return v, n, nil
}

// parseModuleRef decodes a nonlocal entry of the form
// "Module" or "Module:tycon1:tycon2".
func parseModuleRef(entry string) ModuleRef {
	parts := strings.Split(entry, ":")
	return ModuleRef{Name: parts[0], Types: parts[1:]}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isLowerIdent checks the host identifier-casing rule for class names:
// nonempty, lowercase-initial, letters/digits/underscores only.
func isLowerIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLower(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
