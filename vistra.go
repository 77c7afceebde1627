package vistra

import "fmt"

// --- Source spans -----------------------------------------------------------

// Span is a small type for capturing a stretch of schema input. Every
// declaration, constructor and type occurrence carries the span of input
// it stems from, so that generation errors can point back at the schema
// source. A span denotes a start position and the position just behind
// the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Locations --------------------------------------------------------------

// Location ties a span to a named origin (usually a schema file or the name
// of a declaration group). Locations are used for error reporting only.
type Location struct {
	Origin string
	Span   Span
}

// Loc is a convenience constructor for a Location.
func Loc(origin string, span Span) Location {
	return Location{Origin: origin, Span: span}
}

func (l Location) String() string {
	if l.Origin == "" {
		return l.Span.String()
	}
	return fmt.Sprintf("%s%s", l.Origin, l.Span)
}
