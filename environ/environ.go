// Package environ implements the environments threaded through evaluation.
//
// An Environ is persistent.  Define, Assign and Bind never modify their
// receiver, they return a new Environ sharing structure with it, so an
// evaluator can hold on to an environment and be sure that evaluating a
// subexpression cannot change it.
package environ

import (
	"github.com/bmatsuo/mclisp/lisp"
)

// Environ maps names to values.  Environ contains local bindings and a
// parent environment whose bindings it shadows.  The zero value and a nil
// *Environ are both empty environments.
type Environ struct {
	parent   *Environ
	bindings *Bindings
	size     int // distinct names bound in env and its ancestors
	depth    int
}

// New returns a new, empty environment.
func New() *Environ {
	return &Environ{}
}

// Extend returns a new environment in which the given bindings shadow those
// of env.
func (env *Environ) Extend(bindings *Bindings) *Environ {
	if bindings.Len() == 0 {
		return env.orEmpty()
	}
	size := env.Len()
	for _, p := range bindings.pairs {
		if _, ok := env.Get(p.name); !ok {
			size++
		}
	}
	return &Environ{
		parent:   env,
		bindings: bindings,
		size:     size,
		depth:    env.Depth() + 1,
	}
}

func (env *Environ) orEmpty() *Environ {
	if env == nil {
		return New()
	}
	return env
}

// Len returns the number of distinct names bound in env.
func (env *Environ) Len() int {
	if env == nil {
		return 0
	}
	return env.size
}

// Depth returns the number of frames in env.  Depth is useful for diagnosing
// environments that grow without bound.
func (env *Environ) Depth() int {
	if env == nil {
		return 0
	}
	return env.depth
}

// Get returns the value bound to name.
func (env *Environ) Get(name string) (*lisp.LVal, bool) {
	for ; env != nil; env = env.parent {
		v, ok := env.bindings.Get(name)
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Define returns an environment identical to env except that name is bound
// to v.  Any existing binding of name is shadowed.
func (env *Environ) Define(name string, v *lisp.LVal) *Environ {
	b := NewBindings(1)
	b.Put(name, v)
	return env.Extend(b)
}

// Assign returns an environment identical to env except that the existing
// binding of name now holds v.  Assign returns an UnboundSymbol error if name
// is not bound in env.
func (env *Environ) Assign(name string, v *lisp.LVal) (*Environ, error) {
	if _, ok := env.Get(name); !ok {
		return nil, lisp.Errorf(lisp.UnboundSymbol, "%s", name)
	}
	return env.Define(name, v), nil
}

// Bind returns an environment in which each parameter name in params is
// bound to the positionally corresponding value in args.  Bind returns a
// TypeMismatch error if params and args have different lengths.
func (env *Environ) Bind(params *lisp.LVal, args *lisp.LVal) (*Environ, error) {
	bindings, err := NewBindingsZip(params, args)
	if err != nil {
		return nil, err
	}
	return env.Extend(bindings), nil
}

// Names returns the names bound in env ordered by when each was first bound.
func (env *Environ) Names() []string {
	var names []string
	env.Each(func(name string, _ *lisp.LVal) error {
		names = append(names, name)
		return nil
	})
	return names
}

// Each calls fn with each name bound in env and its current value.  Names
// are visited in the order they were first bound; rebinding a name does not
// move it.  If fn returns an error then iteration stops and Each returns it.
func (env *Environ) Each(fn func(name string, v *lisp.LVal) error) error {
	frames := make([]*Environ, 0, env.Depth())
	for e := env; e != nil; e = e.parent {
		if e.bindings.Len() > 0 {
			frames = append(frames, e)
		}
	}
	seen := make(map[string]bool, env.Len())
	for i := len(frames) - 1; i >= 0; i-- {
		b := frames[i].bindings
		for j := 0; j < b.Len(); j++ {
			name := b.GetName(j)
			if seen[name] {
				continue
			}
			seen[name] = true
			v, _ := env.Get(name)
			err := fn(name, v)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
