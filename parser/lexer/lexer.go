// Package lexer splits source text into the parenthesis and word tokens read
// by the parser.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bmatsuo/mclisp/parser/token"
)

// Preformat removes newline characters from line and surrounds every
// parenthesis with a space so that it becomes a separate whitespace delimited
// word.  Splitting the result with strings.Fields yields the tokens of line.
func Preformat(line string) string {
	var b strings.Builder
	b.Grow(len(line) + 8)
	for _, c := range line {
		switch c {
		case '\n':
		case '(', ')':
			b.WriteByte(' ')
			b.WriteRune(c)
			b.WriteByte(' ')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Tokenize returns all tokens in source, excluding the terminating EOF token.
// The token texts of each line equal strings.Fields(Preformat(line)).
func Tokenize(file string, source string) []*token.Token {
	lex := New(file, source)
	var toks []*token.Token
	for {
		tok := lex.NextToken()
		if tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Lexer produces tokens from source text.  A newline separates words the same
// way other whitespace does.
type Lexer struct {
	file string
	src  string
	pos  int // byte offset of the next unread rune
	line int
	col  int // column of the next unread rune
	eof  *token.Token
}

func New(file string, source string) *Lexer {
	return &Lexer{
		file: file,
		src:  source,
		line: 1,
		col:  1,
	}
}

// NextToken returns the next token in the source.  After the source is
// exhausted NextToken returns the same EOF token on every call.
func (lex *Lexer) NextToken() *token.Token {
	if lex.eof != nil {
		return lex.eof
	}
	lex.skipWhitespace()
	loc := lex.loc()
	if lex.pos >= len(lex.src) {
		lex.eof = &token.Token{Type: token.EOF, Source: loc}
		return lex.eof
	}
	start := lex.pos
	switch lex.readChar() {
	case '(':
		return lex.emit(token.PAREN_L, start, loc)
	case ')':
		return lex.emit(token.PAREN_R, start, loc)
	}
	for lex.pos < len(lex.src) && isWord(lex.peekRune()) {
		lex.readChar()
	}
	return lex.emit(token.SYMBOL, start, loc)
}

func (lex *Lexer) emit(typ token.Type, start int, loc *token.Location) *token.Token {
	return &token.Token{
		Type:   typ,
		Text:   lex.src[start:lex.pos],
		Source: loc,
	}
}

func (lex *Lexer) loc() *token.Location {
	return &token.Location{
		File: lex.file,
		Pos:  lex.pos,
		Line: lex.line,
		Col:  lex.col,
	}
}

func (lex *Lexer) skipWhitespace() {
	for lex.pos < len(lex.src) && unicode.IsSpace(lex.peekRune()) {
		lex.readChar()
	}
}

func (lex *Lexer) peekRune() rune {
	c, _ := utf8.DecodeRuneInString(lex.src[lex.pos:])
	return c
}

func (lex *Lexer) readChar() rune {
	c, n := utf8.DecodeRuneInString(lex.src[lex.pos:])
	lex.pos += n
	if c == '\n' {
		lex.line++
		lex.col = 1
	} else {
		lex.col++
	}
	return c
}

func isWord(c rune) bool {
	return c != '(' && c != ')' && !unicode.IsSpace(c)
}
