/*
Package parser reads lisp source text.

	expr := '(' <expr>* ')' | <word>
	word := /[^()[:space:]]+/

Every word is an atom.  There are no string or numeric literals, no quote
shorthand and no comments.
*/
package parser

import (
	"github.com/bmatsuo/mclisp/lisp"
	"github.com/bmatsuo/mclisp/parser/lexer"
	"github.com/bmatsuo/mclisp/parser/rdparser"
)

// Parse parses source and returns its first top-level form.
func Parse(source string) (*lisp.LVal, error) {
	return ParseFile("", source)
}

// ParseFile parses source, attributing locations to the file name, and
// returns its first top-level form.  Empty source parses to ().
func ParseFile(name string, source string) (*lisp.LVal, error) {
	return rdparser.New(lexer.Tokenize(name, source)).ParseProgram()
}

// ParseForms parses every top-level form in source.
func ParseForms(name string, source string) ([]*lisp.LVal, error) {
	return rdparser.New(lexer.Tokenize(name, source)).ParseForms()
}
