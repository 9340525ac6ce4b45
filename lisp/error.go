package lisp

import (
	"fmt"
	"strings"

	"github.com/bmatsuo/mclisp/parser/token"
)

// Condition classifies an Error.  A Condition is itself an error so that
// callers can test for it with errors.Is.
type Condition int

// Possible Condition values
const (
	ErrUnknown Condition = iota
	MissingCloseParen
	MissingOpenParen
	UnboundSymbol
	TypeMismatch
	NoMatchingCondClause
	StackOverflow
	numConditions
)

var conditionStrings = [numConditions]string{
	ErrUnknown:           "error",
	MissingCloseParen:    "missing-close-paren",
	MissingOpenParen:     "missing-open-paren",
	UnboundSymbol:        "unbound-symbol",
	TypeMismatch:         "type-mismatch",
	NoMatchingCondClause: "no-matching-cond-clause",
	StackOverflow:        "stack-overflow",
}

func (c Condition) String() string {
	if c < 0 || c >= numConditions {
		return conditionStrings[ErrUnknown]
	}
	return conditionStrings[c]
}

// Error implements the error interface.
func (c Condition) Error() string {
	return c.String()
}

// Error is a syntax or runtime error raised while reading or evaluating a
// program.
type Error struct {
	Condition Condition
	// Source is the location of the offending token or expression, if known.
	Source *token.Location
	// Expr is the expression being evaluated when the error occurred.
	Expr  *LVal
	Msg   string
	Stack *CallStack
}

// Errorf returns an Error with a formatted message.
func Errorf(c Condition, format string, v ...interface{}) *Error {
	return &Error{
		Condition: c,
		Msg:       fmt.Sprintf(format, v...),
	}
}

// ErrorAt returns an Error with a formatted message attributed to loc.
func ErrorAt(c Condition, loc *token.Location, format string, v ...interface{}) *Error {
	err := Errorf(c, format, v...)
	err.Source = loc
	return err
}

// ExprError returns an Error raised while evaluating expr.  The error is
// attributed to the source location of expr when it has one.
func ExprError(c Condition, expr *LVal, format string, v ...interface{}) *Error {
	err := Errorf(c, format, v...)
	err.Expr = expr
	if expr != nil {
		err.Source = expr.Source
	}
	return err
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Source != nil {
		b.WriteString(e.Source.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Condition.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// Unwrap returns the Condition of e.
func (e *Error) Unwrap() error {
	return e.Condition
}
