package rdparser

import (
	"github.com/bmatsuo/mclisp/parser/token"
)

// TokenSource yields tokens from a slice in order.  Once the slice is
// exhausted the source yields an EOF token on every call to Scan.
type TokenSource struct {
	toks  []*token.Token
	pos   int
	eof   *token.Token
	Token *token.Token
}

// NewTokenSource initializes and returns a new TokenSource that reads toks.
// Any EOF tokens in toks are ignored.
func NewTokenSource(toks []*token.Token) *TokenSource {
	s := &TokenSource{
		toks: toks,
		eof:  &token.Token{Type: token.EOF},
	}
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		if last.Type == token.EOF {
			s.eof = last
			s.toks = toks[:len(toks)-1]
		}
	}
	return s
}

// Scan advances to the next token, available through s.Token.  Scan returns
// false when the new token is EOF.
func (s *TokenSource) Scan() bool {
	s.Token = s.Peek()
	if s.IsEOF() {
		return false
	}
	s.pos++
	return true
}

// Peek returns the token Scan will read next without consuming it.
func (s *TokenSource) Peek() *token.Token {
	if s.IsEOF() {
		return s.eof
	}
	return s.toks[s.pos]
}

// IsEOF returns true if all tokens have been consumed.
func (s *TokenSource) IsEOF() bool {
	return s.pos >= len(s.toks)
}
