package environ

import (
	"errors"
	"testing"

	"github.com/bmatsuo/mclisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBound(t *testing.T, env *Environ, name string, expect string) {
	t.Helper()
	v, ok := env.Get(name)
	if assert.True(t, ok, "unbound: %s", name) {
		assert.Equal(t, expect, v.String(), "name: %s", name)
	}
}

func assertUnbound(t *testing.T, env *Environ, name string) {
	t.Helper()
	_, ok := env.Get(name)
	assert.False(t, ok, "bound: %s", name)
}

func TestEmpty(t *testing.T) {
	for _, env := range []*Environ{New(), nil} {
		assert.Equal(t, 0, env.Len())
		assert.Equal(t, 0, env.Depth())
		assert.Empty(t, env.Names())
		assertUnbound(t, env, "a")
	}
	var env *Environ
	env = env.Define("a", lisp.Atom("1"))
	assertBound(t, env, "a", "1")
}

func TestDefine(t *testing.T) {
	root := New()
	env := root.Define("a", lisp.Atom("1"))
	assertUnbound(t, root, "a")
	assertBound(t, env, "a", "1")
	assert.Equal(t, 1, env.Len())

	env2 := env.Define("a", lisp.Atom("2"))
	assertBound(t, env, "a", "1")
	assertBound(t, env2, "a", "2")
	assert.Equal(t, 1, env2.Len())

	env2 = env2.Define("b", lisp.Nil())
	assert.Equal(t, 2, env2.Len())
	assert.Equal(t, []string{"a", "b"}, env2.Names())
}

func TestAssign(t *testing.T) {
	env := New().
		Define("a", lisp.Atom("1")).
		Define("b", lisp.Atom("2")).
		Define("c", lisp.Atom("3"))
	_, err := env.Assign("d", lisp.Atom("4"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lisp.UnboundSymbol))
	assert.EqualError(t, err, "unbound-symbol: d")

	env2, err := env.Assign("a", lisp.Atom("x"))
	require.NoError(t, err)
	assertBound(t, env, "a", "1")
	assertBound(t, env2, "a", "x")
	assertBound(t, env2, "b", "2")
	assert.Equal(t, 3, env2.Len())
	assert.Equal(t, []string{"a", "b", "c"}, env2.Names())
}

func TestBind(t *testing.T) {
	env := New().Define("x", lisp.Atom("outer")).Define("z", lisp.Atom("1"))
	inner, err := env.Bind(atoms("x", "y"), atoms("a", "b"))
	require.NoError(t, err)
	assertBound(t, inner, "x", "a")
	assertBound(t, inner, "y", "b")
	assertBound(t, inner, "z", "1")
	assertBound(t, env, "x", "outer")
	assertUnbound(t, env, "y")
	assert.Equal(t, 3, inner.Len())
	assert.Equal(t, []string{"x", "z", "y"}, inner.Names())

	_, err = env.Bind(atoms("x", "y"), atoms("a"))
	assert.True(t, errors.Is(err, lisp.TypeMismatch))

	same, err := env.Bind(lisp.Nil(), lisp.Nil())
	require.NoError(t, err)
	assert.Same(t, env, same)
}

func TestEach(t *testing.T) {
	env := New().
		Define("a", lisp.Atom("1")).
		Define("b", lisp.Atom("2")).
		Define("a", lisp.Atom("3"))
	var names, values []string
	err := env.Each(func(name string, v *lisp.LVal) error {
		names = append(names, name)
		values = append(values, v.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []string{"3", "2"}, values)

	stop := errors.New("stop")
	n := 0
	err = env.Each(func(name string, v *lisp.LVal) error {
		n++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, n)
}
