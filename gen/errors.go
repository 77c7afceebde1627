package gen

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"

	"github.com/npillmayer/vistra"
)

// Code classifies generation failures. All generation errors are
// synchronous and non-recoverable: the run that raised one produces no
// output.
type Code int

const (
	// UnsupportedOption flags an option name outside the recognized set.
	UnsupportedOption Code = iota + 1
	// MissingRequiredOption flags an absent 'name' or 'variety' option.
	MissingRequiredOption
	// InvalidClassName flags a class name failing the identifier-casing rule.
	InvalidClassName
	// InvalidVariety flags a variety string outside (iter|map|reduce)[digits],
	// or a non-positive digit suffix.
	InvalidVariety
	// ArityMismatch flags a local type constructor applied to the wrong
	// number of type arguments.
	ArityMismatch
	// IrregularRecursion flags a local recursive type used with non-uniform
	// actual parameters while 'irregular' is not set.
	IrregularRecursion
	// UnsupportedType flags a type shape the synthesizer does not recognize.
	UnsupportedType
	// OnTheFlyUseRejected flags a request to derive a visitor for a bare
	// type outside of any declaration group.
	OnTheFlyUseRejected
)

func (c Code) String() string {
	switch c {
	case UnsupportedOption:
		return "UnsupportedOption"
	case MissingRequiredOption:
		return "MissingRequiredOption"
	case InvalidClassName:
		return "InvalidClassName"
	case InvalidVariety:
		return "InvalidVariety"
	case ArityMismatch:
		return "ArityMismatch"
	case IrregularRecursion:
		return "IrregularRecursion"
	case UnsupportedType:
		return "UnsupportedType"
	case OnTheFlyUseRejected:
		return "OnTheFlyUseRejected"
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is a location-tagged generation error. Op names the operation that
// rejected the input; Expected/Actual are filled for arity and regularity
// errors.
type Error struct {
	Code     Code
	Op       string
	Loc      vistra.Location
	Detail   string
	Expected string
	Actual   string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Detail)
	if e.Expected != "" || e.Actual != "" {
		msg += fmt.Sprintf(" (expected %s, got %s)", e.Expected, e.Actual)
	}
	if !e.Loc.Span.IsNull() || e.Loc.Origin != "" {
		msg += " at " + e.Loc.String()
	}
	return msg
}

// Is lets errors.Is match a *Error against a bare &Error{Code: …} target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func errf(code Code, op string, loc vistra.Location, format string, args ...interface{}) *Error {
	e := &Error{
		Code:   code,
		Op:     op,
		Loc:    loc,
		Detail: fmt.Sprintf(format, args...),
	}
	tracer().Errorf(e.Error())
	return e
}
