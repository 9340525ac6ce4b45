package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Source == nil {
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
	return fmt.Sprintf("%v: %s %q", tok.Source, tok.Type, tok.Text)
}

type Type uint

// Type constants used by the lexer and parser.
const (
	INVALID Type = iota
	EOF

	// Atomic words
	SYMBOL

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		EOF:     "EOF",
		SYMBOL:  "symbol",
		PAREN_L: "(",
		PAREN_R: ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// TypeOf returns the Type of a token with the given text.  TypeOf never
// returns EOF or INVALID for non-empty text.
func TypeOf(text string) Type {
	switch text {
	case "":
		return INVALID
	case "(":
		return PAREN_L
	case ")":
		return PAREN_R
	default:
		return SYMBOL
	}
}

type Location struct {
	File string
	Pos  int // byte offset into the source
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	file := loc.File
	if file == "" {
		file = "-"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", file, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", file, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", file, loc.Line, loc.Col)
	}
}
