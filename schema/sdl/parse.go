package sdl

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/vistra"
	"github.com/npillmayer/vistra/gen"
	"github.com/npillmayer/vistra/schema"
)

// Parse reads a schema source into a declaration group plus the raw
// options of its options line. name identifies the source in
// diagnostics and becomes the group name.
func Parse(name, input string) (*schema.DeclGroup, []gen.Option, error) {
	sc, err := newScanner(input)
	if err != nil {
		return nil, nil, err
	}
	p := &parser{name: name, sc: sc, gb: schema.NewGroupBuilder(name)}
	p.next()
	var opts []gen.Option
	for p.cur.kind != tokEOF {
		switch {
		case p.isKeyword("type"):
			p.next()
			if err := p.parseDecl(); err != nil {
				return nil, nil, err
			}
		case p.isKeyword("options"):
			p.rawOpts = true
			p.next()
			opts = append(opts, p.parseOptions()...)
			p.rawOpts = false
		default:
			return nil, nil, p.syntaxError("expected a type declaration or options line")
		}
	}
	group, err := p.gb.Group()
	if err != nil {
		return nil, nil, err
	}
	return group, opts, nil
}

type parser struct {
	name    string
	sc      *scanner
	gb      *schema.GroupBuilder
	cur     token
	peeked  *token
	pending []token
	rawOpts bool // keep chunk tokens intact on an options line
}

func (p *parser) next() {
	switch {
	case len(p.pending) > 0:
		p.cur, p.pending = p.pending[0], p.pending[1:]
	case p.peeked != nil:
		p.cur, p.peeked = *p.peeked, nil
	default:
		p.cur = p.sc.nextToken()
	}
	if p.cur.kind == tokChunk && !p.rawOpts {
		p.splitChunk()
	}
}

// splitChunk breaks a chunk token into its identifier and separator
// parts. Maximal munch makes the scanner glue input like 'term,term'
// into a single chunk; outside of an options line the parts are tokens
// of their own.
func (p *parser) splitChunk() {
	lexeme, from := p.cur.lexeme, p.cur.span.From()
	var parts []token
	start := 0
	for i := 0; i <= len(lexeme); i++ {
		if i < len(lexeme) && lexeme[i] != ',' && lexeme[i] != ':' {
			continue
		}
		if i > start {
			parts = append(parts, token{kind: tokIdent, lexeme: lexeme[start:i],
				span: vistra.Span{from + uint64(start), from + uint64(i)}})
		}
		if i < len(lexeme) {
			parts = append(parts, token{kind: tokLit, lexeme: string(lexeme[i]),
				span: vistra.Span{from + uint64(i), from + uint64(i+1)}})
		}
		start = i + 1
	}
	p.cur = parts[0] // chunks start with a word character
	p.pending = append(parts[1:], p.pending...)
}

func (p *parser) peek() token {
	if len(p.pending) > 0 {
		return p.pending[0]
	}
	if p.peeked == nil {
		t := p.sc.nextToken()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *parser) isKeyword(kw string) bool {
	return p.cur.kind == tokIdent && p.cur.lexeme == kw
}

func (p *parser) isLit(l string) bool {
	return p.cur.kind == tokLit && p.cur.lexeme == l
}

func (p *parser) syntaxError(msg string) error {
	if p.cur.kind == tokEOF {
		return fmt.Errorf("%s: %s, found end of input", p.name, msg)
	}
	return fmt.Errorf("%s: %s, found '%s' at %d", p.name, msg, p.cur.lexeme, p.cur.span.From())
}

func (p *parser) expectLit(l string) error {
	if !p.isLit(l) {
		return p.syntaxError(fmt.Sprintf("expected '%s'", l))
	}
	p.next()
	return nil
}

func (p *parser) expectIdent(what string) (token, error) {
	if p.cur.kind != tokIdent {
		return token{}, p.syntaxError("expected " + what)
	}
	t := p.cur
	p.next()
	return t, nil
}

func isUpperInitial(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// --- Declarations -----------------------------------------------------------

func (p *parser) parseDecl() error {
	name, err := p.expectIdent("a type name")
	if err != nil {
		return err
	}
	span := name.span
	var params []string
	for p.cur.kind == tokTyVar {
		params = append(params, tyvarName(p.cur.lexeme))
		span = span.Extend(p.cur.span)
		p.next()
	}
	if err := p.expectLit("="); err != nil {
		return err
	}
	db := p.gb.Decl(name.lexeme, params...)
	p.gb.WithSpan(span)
	switch {
	case p.isLit("{"):
		return p.parseRecord(db)
	case p.cur.kind == tokIdent && isUpperInitial(p.cur.lexeme):
		return p.parseSum(db)
	default:
		ty, err := p.parseType()
		if err != nil {
			return err
		}
		db.Abbrev(ty)
		return nil
	}
}

func (p *parser) parseRecord(db *schema.DeclBuilder) error {
	p.next() // consume '{'
	rb := db.Record()
	for {
		label, err := p.expectIdent("a field label")
		if err != nil {
			return err
		}
		if err := p.expectLit(":"); err != nil {
			return err
		}
		ty, err := p.parseType()
		if err != nil {
			return err
		}
		rb.Field(label.lexeme, ty)
		if p.isLit(";") {
			p.next()
			if p.isLit("}") { // trailing separator
				break
			}
			continue
		}
		break
	}
	if err := p.expectLit("}"); err != nil {
		return err
	}
	rb.End()
	return nil
}

func (p *parser) parseSum(db *schema.DeclBuilder) error {
	sb := db.Sum()
	for {
		con, err := p.expectIdent("a constructor name")
		if err != nil {
			return err
		}
		if !isUpperInitial(con.lexeme) {
			return fmt.Errorf("%s: constructor '%s' must start uppercase", p.name, con.lexeme)
		}
		sb.Con(con.lexeme)
		if p.isLit("(") {
			if err := p.parseConFields(sb); err != nil {
				return err
			}
		}
		if !p.isLit("|") {
			break
		}
		p.next()
	}
	sb.End()
	return nil
}

func (p *parser) parseConFields(sb *schema.SumBuilder) error {
	p.next() // consume '('
	for {
		// a label is an identifier directly followed by ':'
		if p.cur.kind == tokIdent && p.peek().kind == tokLit && p.peek().lexeme == ":" {
			label := p.cur.lexeme
			p.next()
			p.next()
			ty, err := p.parseType()
			if err != nil {
				return err
			}
			sb.With(label, ty)
		} else {
			ty, err := p.parseType()
			if err != nil {
				return err
			}
			sb.Of(ty)
		}
		if p.isLit(",") {
			p.next()
			continue
		}
		break
	}
	return p.expectLit(")")
}

// --- Types ------------------------------------------------------------------

// parseType reads a product of atoms; a single atom stays as it is.
func (p *parser) parseType() (schema.Type, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	elems := []schema.Type{first}
	for p.isLit("*") {
		p.next()
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return first, nil
	}
	span := first.Loc().Extend(elems[len(elems)-1].Loc())
	return schema.TypeTuple{Elems: elems, Span: span}, nil
}

func (p *parser) parseAtom() (schema.Type, error) {
	switch {
	case p.isKeyword("bind"):
		span := p.cur.span
		p.next()
		body, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return schema.TypeAbs{Body: body, Span: span.Extend(body.Loc())}, nil
	case p.cur.kind == tokTyVar:
		t := schema.TypeVar{Name: schema.TyVar(tyvarName(p.cur.lexeme)), Span: p.cur.span}
		p.next()
		return t, nil
	case p.cur.kind == tokIdent:
		con := p.cur
		p.next()
		app := schema.TypeApp{Con: schema.TyCon(con.lexeme), Span: con.span}
		if p.isLit("(") {
			p.next()
			for {
				arg, err := p.parseType()
				if err != nil {
					return nil, err
				}
				app.Args = append(app.Args, arg)
				if p.isLit(",") {
					p.next()
					continue
				}
				break
			}
			app.Span = app.Span.Extend(p.cur.span)
			if err := p.expectLit(")"); err != nil {
				return nil, err
			}
		}
		return app, nil
	case p.isLit("("):
		p.next()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return inner, p.expectLit(")")
	}
	return nil, p.syntaxError("expected a type")
}

// --- Options ----------------------------------------------------------------

// parseOptions reads name[=value] pairs until the next declaration.
// Values are passed on uninterpreted; package gen validates them.
func (p *parser) parseOptions() []gen.Option {
	var opts []gen.Option
	for p.cur.kind == tokIdent && !p.isKeyword("type") && !p.isKeyword("options") {
		opt := gen.Option{Name: p.cur.lexeme, Loc: vistra.Loc(p.name, p.cur.span)}
		p.next()
		if p.isLit("=") {
			p.next()
			if p.cur.kind == tokIdent || p.cur.kind == tokChunk {
				opt.Value = p.cur.lexeme
				p.next()
			}
		}
		tracer().Debugf("option %s=%s", opt.Name, opt.Value)
		opts = append(opts, opt)
	}
	return opts
}
