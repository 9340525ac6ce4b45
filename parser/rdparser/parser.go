// Package rdparser implements a recursive descent parser that tracks nesting
// with an explicit stack of unmatched open parentheses.
package rdparser

import (
	"github.com/bmatsuo/mclisp/lisp"
	"github.com/bmatsuo/mclisp/parser/token"
)

// Parser is a lisp parser.
type Parser struct {
	src *TokenSource
	// balance holds the open-paren tokens still waiting for a matching
	// close-paren, innermost last.
	balance []*token.Token
}

// New initializes and returns a new Parser that reads toks.
func New(toks []*token.Token) *Parser {
	return &Parser{
		src: NewTokenSource(toks),
	}
}

// ParseProgram parses all tokens and returns the first top-level form, the
// program.  An empty token stream parses to ().
func (p *Parser) ParseProgram() (*lisp.LVal, error) {
	forms, err := p.ParseForms()
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return lisp.Nil(), nil
	}
	return forms[0], nil
}

// ParseForms parses all tokens and returns the top-level forms in order.  If
// the parentheses in the token stream are not balanced ParseForms returns a
// MissingOpenParen or MissingCloseParen error and no forms.
func (p *Parser) ParseForms() ([]*lisp.LVal, error) {
	return p.parseList()
}

// parseList reads forms until the close-paren matching the top of the
// balance stack, or until EOF at the top level.
func (p *Parser) parseList() ([]*lisp.LVal, error) {
	var cells []*lisp.LVal
	for {
		p.ReadToken()
		tok := p.Token()
		switch tok.Type {
		case token.EOF:
			if p.Depth() > 0 {
				open := p.balance[p.Depth()-1]
				return nil, lisp.ErrorAt(lisp.MissingCloseParen, open.Source,
					"unmatched %s (%d unclosed)", open.Text, p.Depth())
			}
			return cells, nil
		case token.PAREN_L:
			p.balance = append(p.balance, tok)
			inner, err := p.parseList()
			if err != nil {
				return nil, err
			}
			list := lisp.List(inner...)
			list.Source = tok.Source
			cells = append(cells, list)
		case token.PAREN_R:
			if p.Depth() == 0 {
				return nil, lisp.ErrorAt(lisp.MissingOpenParen, tok.Source, "unexpected %s", tok.Text)
			}
			p.balance[len(p.balance)-1] = nil
			p.balance = p.balance[:len(p.balance)-1]
			return cells, nil
		default:
			cells = append(cells, p.Atom(tok.Text))
		}
	}
}

// ReadToken advances the parser to the next token and returns it.
func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

// Token returns the last token read.
func (p *Parser) Token() *token.Token {
	return p.src.Token
}

// Depth returns the number of unmatched open parentheses read so far.
func (p *Parser) Depth() int {
	return len(p.balance)
}

// Atom returns an atom attributed to the current token.
func (p *Parser) Atom(s string) *lisp.LVal {
	v := lisp.Atom(s)
	v.Source = p.Token().Source
	return v
}
