package sdl

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"strings"

	"github.com/npillmayer/vistra"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token kinds. Keywords are not distinguished at the token level; the
// parser inspects lexemes of identifiers instead.
const (
	tokEOF = iota
	tokLit // single-character literals, told apart by lexeme
	tokTyVar
	tokIdent
	tokChunk // option values containing ':' or ','
)

type token struct {
	kind   int
	lexeme string
	span   vistra.Span
}

var literals = []string{"=", "|", "(", ")", ",", "{", "}", ";", ":", "*"}

// newLexer compiles the DFA for the schema definition language.
func newLexer() (*lexmachine.Lexer, error) {
	lex := lexmachine.NewLexer()
	lex.Add([]byte(`( |\t|\n|\r)+`), skip)
	lex.Add([]byte(`--[^\n]*`), skip)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lex.Add([]byte(r), makeToken(tokLit))
	}
	lex.Add([]byte(`'[a-zA-Z][a-zA-Z0-9_]*`), makeToken(tokTyVar))
	lex.Add([]byte(`[a-zA-Z][a-zA-Z0-9_]*`), makeToken(tokIdent))
	lex.Add([]byte(`[a-zA-Z0-9_]+([:,][a-zA-Z0-9_]+)+`), makeToken(tokChunk))
	if err := lex.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return lex, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(kind, string(m.Bytes), m), nil
	}
}

// scanner produces tokens from one schema source.
type scanner struct {
	lms   *lexmachine.Scanner
	Error func(error)
}

func newScanner(input string) (*scanner, error) {
	lex, err := newLexer()
	if err != nil {
		return nil, err
	}
	s, err := lex.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &scanner{lms: s, Error: logError}, nil
}

func logError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// nextToken scans the next token, skipping over unconsumable input after
// reporting it.
func (s *scanner) nextToken() token {
	tok, err, eof := s.lms.Next()
	for err != nil {
		s.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.lms.TC = ui.FailTC
		}
		tok, err, eof = s.lms.Next()
	}
	if eof {
		return token{kind: tokEOF}
	}
	t := tok.(*lexmachine.Token)
	return token{
		kind:   t.Type,
		lexeme: string(t.Lexeme),
		span:   vistra.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
	}
}

// strips the tick off a type-variable lexeme.
func tyvarName(lexeme string) string {
	return strings.TrimPrefix(lexeme, "'")
}
