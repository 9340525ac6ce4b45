package environ

import (
	"github.com/bmatsuo/mclisp/lisp"
)

type bindingPair struct {
	name  string
	value *lisp.LVal
}

// Bindings is an ordered set of variable bindings (e.g. procedure
// arguments).  Bindings must not be modified once they have been used to
// extend an Environ.
type Bindings struct {
	pairs []bindingPair
	index map[string]int
}

// NewBindings creates and initializes a new set of variable bindings that has
// initial capacity to hold n values.
func NewBindings(n int) *Bindings {
	return &Bindings{
		pairs: make([]bindingPair, 0, n),
		index: make(map[string]int, n),
	}
}

// NewBindingsZip takes a list of parameter names and a list of argument values
// and returns the corresponding bindings.  If params and args are not lists
// of equal length, or a parameter is not an atom, NewBindingsZip returns a
// TypeMismatch error.
func NewBindingsZip(params *lisp.LVal, args *lisp.LVal) (*Bindings, error) {
	if !params.IsList() || params.IsDotted() {
		return nil, lisp.Errorf(lisp.TypeMismatch, "parameter list is not a list: %v", params)
	}
	if !args.IsList() || args.IsDotted() {
		return nil, lisp.Errorf(lisp.TypeMismatch, "argument list is not a list: %v", args)
	}
	if params.Len() != args.Len() {
		return nil, lisp.Errorf(lisp.TypeMismatch,
			"procedure expects %d arguments, got %d", params.Len(), args.Len())
	}
	s := NewBindings(params.Len())
	for i, p := range params.Cells {
		if !p.IsAtom() {
			return nil, lisp.Errorf(lisp.TypeMismatch, "parameter is not an atom: %v", p)
		}
		s.Put(p.Str, args.Cells[i])
	}
	return s, nil
}

// Len returns the number of names bound.
func (s *Bindings) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pairs)
}

// GetName returns the name at index i.
func (s *Bindings) GetName(i int) string {
	return s.pairs[i].name
}

// GetIndex returns the value at index i.
func (s *Bindings) GetIndex(i int) *lisp.LVal {
	return s.pairs[i].value
}

// Get returns the value bound to name.
func (s *Bindings) Get(name string) (*lisp.LVal, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.pairs[i].value, true
}

// Put binds name to v.  If name was previously bound its entry will be
// updated.  Otherwise Put creates a new binding.
func (s *Bindings) Put(name string, v *lisp.LVal) {
	i, ok := s.index[name]
	if ok {
		s.pairs[i].value = v
		return
	}
	s.index[name] = len(s.pairs)
	s.pairs = append(s.pairs, bindingPair{name, v})
}
