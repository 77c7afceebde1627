package runtime

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import "fmt"

// EnvPolicy decides what crossing a binder means. Extend is applied to
// the environment on the way into a binder's body and may rename the
// bound name; Restrict is applied to ascending results on the way out
// (Reduce runs only). Generated traversals are policy-agnostic: they
// call the policy at every binder and hardcode no notion of scoping.
type EnvPolicy interface {
	Extend(name string, env Value) (Value, string)
	Restrict(name string, result Value) Value
}

// Transparent is the default policy: the environment passes through
// binders unchanged and results ascend unmodified.
type Transparent struct{}

// Extend returns the environment and the name as they are.
func (Transparent) Extend(name string, env Value) (Value, string) {
	return env, name
}

// Restrict returns the result as it is.
func (Transparent) Restrict(name string, result Value) Value {
	return result
}

// ScopeNames threads the list of names in scope: the environment is a
// []string of bound names, innermost last. Restrict removes the bound
// name from Names results, which makes a Reduce run with the NameSet
// monoid compute free names.
type ScopeNames struct{}

// Extend appends the bound name to a copy of the scope list.
func (ScopeNames) Extend(name string, env Value) (Value, string) {
	var scope []string
	if env != nil {
		scope = env.([]string)
	}
	extended := make([]string, len(scope)+1)
	copy(extended, scope)
	extended[len(scope)] = name
	return extended, name
}

// Restrict deletes the bound name from a Names result.
func (ScopeNames) Restrict(name string, result Value) Value {
	if names, ok := result.(Names); ok {
		return names.Without(name)
	}
	return result
}

// UniqueNames renames every bound name to a fresh one on the way into
// a binder, so a Map run rebuilds its binders with pairwise distinct
// names. The environment passes through unchanged; hooks that need the
// renaming visible at variable occurrences thread their own
// substitution through the environment.
type UniqueNames struct {
	serial int
}

// Extend returns the environment unchanged and a fresh name derived
// from the bound one.
func (u *UniqueNames) Extend(name string, env Value) (Value, string) {
	u.serial++
	return env, fmt.Sprintf("%s_%d", name, u.serial)
}

// Restrict returns the result as it is.
func (u *UniqueNames) Restrict(name string, result Value) Value {
	return result
}

// InScope tells whether a name is bound in a ScopeNames environment.
func InScope(env Value, name string) bool {
	if env == nil {
		return false
	}
	for _, n := range env.([]string) {
		if n == name {
			return true
		}
	}
	return false
}
