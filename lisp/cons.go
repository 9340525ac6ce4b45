package lisp

import "github.com/bmatsuo/mclisp/internal/lfmt"

// Cons returns a new list with head prepended to tail.  If tail is a list then
// the result is a list with the same tail.  If tail is an atom then Cons
// returns the dotted pair (head . tail).
//	(cons head tail)
func Cons(head, tail *LVal) *LVal {
	if tail.Type != LList {
		return &LVal{
			Type:  LList,
			Cells: []*LVal{head},
			Tail:  tail,
		}
	}
	cells := make([]*LVal, 0, len(tail.Cells)+1)
	cells = append(cells, head)
	cells = append(cells, tail.Cells...)
	return &LVal{
		Type:  LList,
		Cells: cells,
		Tail:  tail.Tail,
	}
}

// CAR returns the head of list v.  CAR returns false if v is an atom or the
// empty list.
func CAR(v *LVal) (*LVal, bool) {
	if v.Type != LList || len(v.Cells) == 0 {
		return nil, false
	}
	return v.Cells[0], true
}

// CDR returns the remainder of list v after its head.  The CDR of a dotted
// pair (a . b) is the atom b.  CDR returns false if v is an atom or the empty
// list.
func CDR(v *LVal) (*LVal, bool) {
	if v.Type != LList || len(v.Cells) == 0 {
		return nil, false
	}
	if len(v.Cells) == 1 && v.Tail != nil {
		return v.Tail, true
	}
	return &LVal{
		Type:  LList,
		Cells: v.Cells[1:],
		Tail:  v.Tail,
	}, true
}

func formatList(w *lfmt.Writer, v *LVal) {
	w.WriteString("(")
	for i, c := range v.Cells {
		if i > 0 {
			w.WriteString(" ")
		}
		format(w, c)
	}
	if v.Tail != nil {
		w.WriteString(" . ")
		format(w, v.Tail)
	}
	w.WriteString(")")
}
