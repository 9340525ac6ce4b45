// Package lisp defines the values manipulated by the interpreter: atoms and
// (possibly improper) lists.  Values are immutable once constructed and may be
// shared freely between lists and environments.
package lisp

import (
	"io"
	"strings"

	"github.com/bmatsuo/mclisp/internal/lfmt"
	"github.com/bmatsuo/mclisp/parser/token"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LAtom
	LList
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LAtom:    "atom",
	LList:    "list",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value
type LVal struct {
	Type LValType

	// Str is the text of an atom.
	Str string

	// Cells holds the elements of a list.
	Cells []*LVal

	// Tail is the final atom of an improper list, (a b . c), or nil for a
	// proper list.
	Tail *LVal

	// Source is the location the value was read from, if it was read by the
	// parser.  Source never affects equality.
	Source *token.Location
}

// Atom returns an LVal representing the atom s.
func Atom(s string) *LVal {
	return &LVal{
		Type: LAtom,
		Str:  s,
	}
}

// List returns a proper list containing cells.
func List(cells ...*LVal) *LVal {
	return &LVal{
		Type:  LList,
		Cells: cells,
	}
}

// Nil returns an LVal representing nil, the empty list.
func Nil() *LVal {
	return &LVal{Type: LList}
}

// True returns the atom t.
func True() *LVal {
	return Atom(TrueSymbol)
}

// Bool returns t if ok is true and () otherwise.
func Bool(ok bool) *LVal {
	if ok {
		return True()
	}
	return Nil()
}

// IsAtom returns true if v is an atom.
func (v *LVal) IsAtom() bool {
	return v.Type == LAtom
}

// IsList returns true if v is a list, including ().
func (v *LVal) IsList() bool {
	return v.Type == LList
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LList && len(v.Cells) == 0 && v.Tail == nil
}

// IsTrue returns true if v is the atom t.
func (v *LVal) IsTrue() bool {
	return v.Type == LAtom && v.Str == TrueSymbol
}

// IsDotted returns true if v is an improper list.
func (v *LVal) IsDotted() bool {
	return v.Type == LList && v.Tail != nil
}

// Len returns the number of cells in list v.  The tail of an improper list
// is not counted.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// HeadSymbol returns the text of the atom at the head of list v.  HeadSymbol
// returns false if v is not a list or its head is not an atom.
func (v *LVal) HeadSymbol() (string, bool) {
	if v.Type != LList || len(v.Cells) == 0 || v.Cells[0].Type != LAtom {
		return "", false
	}
	return v.Cells[0].Str, true
}

func (v *LVal) String() string {
	var buf strings.Builder
	Format(&buf, v)
	return buf.String()
}

// Equal returns true if a and b are structurally identical.
func Equal(a, b *LVal) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LAtom:
		return a.Str == b.Str
	case LList:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		if a.Tail == nil || b.Tail == nil {
			return a.Tail == b.Tail
		}
		return Equal(a.Tail, b.Tail)
	default:
		return true
	}
}

// Format writes the textual representation of v to w.  The output of Format
// can be parsed back into a value equal to v, improper lists excepted.
func Format(w io.Writer, v *LVal) (int, error) {
	cw := lfmt.NewWriter(w)
	format(cw, v)
	return cw.Result()
}

func format(w *lfmt.Writer, v *LVal) {
	switch {
	case v == nil:
		w.WriteString("<nil>")
	case v.Type == LAtom:
		w.WriteString(v.Str)
	case v.Type == LList:
		formatList(w, v)
	default:
		w.WriteString("<invalid>")
	}
}
