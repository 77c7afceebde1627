package schema

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

// GroupBuilder is a builder object for declaration groups. Clients chain
// declaration builders off it and finally call Group().
//
// Errors during building are collected; Group() reports the first one.
type GroupBuilder struct {
	name  string
	decls []*TypeDecl
	seen  map[TyCon]bool
	cons  map[DataCon]TyCon
	err   error
}

// NewGroupBuilder creates a new builder for a declaration group with a
// given name. The name is used for diagnostics only.
func NewGroupBuilder(name string) *GroupBuilder {
	return &GroupBuilder{
		name: name,
		seen: make(map[TyCon]bool),
		cons: make(map[DataCon]TyCon),
	}
}

func (gb *GroupBuilder) error(format string, args ...interface{}) {
	if gb.err == nil {
		gb.err = fmt.Errorf(format, args...)
	}
	tracer().Errorf(format, args...)
}

// Decl starts a new type declaration with optional formal type parameters.
// The kind of the declaration is supplied by exactly one follow-up call of
// Abbrev, Record or Sum on the returned DeclBuilder.
func (gb *GroupBuilder) Decl(name string, params ...string) *DeclBuilder {
	d := &TypeDecl{Name: TyCon(name)}
	if gb.seen[d.Name] {
		gb.error("duplicate type declaration '%s' in group %s", name, gb.name)
	}
	gb.seen[d.Name] = true
	pseen := make(map[TyVar]bool)
	for _, p := range params {
		v := TyVar(p)
		if pseen[v] {
			gb.error("duplicate type parameter '%s of %s", p, name)
		}
		pseen[v] = true
		d.Params = append(d.Params, v)
	}
	gb.decls = append(gb.decls, d)
	return &DeclBuilder{gb: gb, decl: d}
}

// WithSpan attaches a source span to the most recently started declaration.
func (gb *GroupBuilder) WithSpan(span vistra.Span) *GroupBuilder {
	if len(gb.decls) > 0 {
		gb.decls[len(gb.decls)-1].Span = span
	}
	return gb
}

// Group finishes the builder and returns the declaration group.
func (gb *GroupBuilder) Group() (*DeclGroup, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	g := &DeclGroup{
		Name:  gb.name,
		Decls: gb.decls,
		index: make(map[TyCon]*TypeDecl),
	}
	for _, d := range gb.decls {
		if d.Kind == nil {
			return nil, fmt.Errorf("type declaration '%s' has no kind (Abbrev/Record/Sum missing)", d.Name)
		}
		g.index[d.Name] = d
	}
	tracer().Infof("declaration group %s with %d declarations", g.Name, len(g.Decls))
	return g, nil
}

// --- Declaration builder ----------------------------------------------------

// DeclBuilder attaches a kind to a started declaration.
type DeclBuilder struct {
	gb   *GroupBuilder
	decl *TypeDecl
}

// Abbrev declares the type as an abbreviation of another type.
func (db *DeclBuilder) Abbrev(of Type) *GroupBuilder {
	db.decl.Kind = Abbrev{Of: of}
	return db.gb
}

// Record declares the type as a record and returns a builder for its
// fields.
func (db *DeclBuilder) Record() *RecordBuilder {
	return &RecordBuilder{db: db}
}

// Sum declares the type as a sum and returns a builder for its
// constructors.
func (db *DeclBuilder) Sum() *SumBuilder {
	return &SumBuilder{db: db}
}

// RecordBuilder collects labeled fields of a record declaration.
type RecordBuilder struct {
	db     *DeclBuilder
	fields []Field
	labels map[Label]bool
}

// Field appends a labeled field.
func (rb *RecordBuilder) Field(label string, ty Type) *RecordBuilder {
	if rb.labels == nil {
		rb.labels = make(map[Label]bool)
	}
	l := Label(label)
	if rb.labels[l] {
		rb.db.gb.error("duplicate field label '%s' in record %s", label, rb.db.decl.Name)
	}
	rb.labels[l] = true
	rb.fields = append(rb.fields, Field{Label: l, Type: ty})
	return rb
}

// End finishes the record declaration. The record's name doubles as its
// implicit constructor, so it claims the name in the constructor
// namespace like any sum alternative would.
func (rb *RecordBuilder) End() *GroupBuilder {
	gb := rb.db.gb
	if len(rb.fields) == 0 {
		gb.error("record type %s has no fields", rb.db.decl.Name)
	}
	c := DataCon(rb.db.decl.Name)
	if owner, ok := gb.cons[c]; ok {
		gb.error("record %s clashes with a data constructor of %s", rb.db.decl.Name, owner)
	}
	gb.cons[c] = rb.db.decl.Name
	rb.db.decl.Kind = Record{Fields: rb.fields}
	return gb
}

// SumBuilder collects the constructors of a sum declaration. Con starts a
// constructor, Of appends positional field types to it, With appends a
// labeled field.
type SumBuilder struct {
	db   *DeclBuilder
	cons []Constructor
}

// Con starts a new constructor alternative.
func (sb *SumBuilder) Con(name string) *SumBuilder {
	c := DataCon(name)
	if owner, ok := sb.db.gb.cons[c]; ok {
		sb.db.gb.error("data constructor '%s' declared twice (first in %s)", name, owner)
	}
	sb.db.gb.cons[c] = sb.db.decl.Name
	sb.cons = append(sb.cons, Constructor{Name: c})
	return sb
}

// Of appends positional field types to the current constructor.
func (sb *SumBuilder) Of(types ...Type) *SumBuilder {
	if len(sb.cons) == 0 {
		sb.db.gb.error("Of() without a preceding Con() in %s", sb.db.decl.Name)
		return sb
	}
	cur := &sb.cons[len(sb.cons)-1]
	if cur.Labeled {
		sb.db.gb.error("constructor %s mixes positional and labeled fields", cur.Name)
	}
	for _, t := range types {
		cur.Fields = append(cur.Fields, Field{Type: t})
	}
	return sb
}

// With appends a labeled field to the current constructor.
func (sb *SumBuilder) With(label string, ty Type) *SumBuilder {
	if len(sb.cons) == 0 {
		sb.db.gb.error("With() without a preceding Con() in %s", sb.db.decl.Name)
		return sb
	}
	cur := &sb.cons[len(sb.cons)-1]
	if len(cur.Fields) > 0 && !cur.Labeled {
		sb.db.gb.error("constructor %s mixes positional and labeled fields", cur.Name)
	}
	cur.Labeled = true
	cur.Fields = append(cur.Fields, Field{Label: Label(label), Type: ty})
	return sb
}

// End finishes the sum declaration.
func (sb *SumBuilder) End() *GroupBuilder {
	if len(sb.cons) == 0 {
		sb.db.gb.error("sum type %s has no constructors", sb.db.decl.Name)
	}
	sb.db.decl.Kind = Sum{Cons: sb.cons}
	return sb.db.gb
}
