// Package lisptest provides a table driven test runner for lisp programs.
package lisptest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bmatsuo/mclisp/environ"
	"github.com/bmatsuo/mclisp/interp"
	"github.com/bmatsuo/mclisp/lisp"
	"github.com/bmatsuo/mclisp/parser"
)

// Runner is a test runner.
type Runner struct {
	// Config is used to construct the interpreter for each test sequence.
	Config []interp.Config
}

// NewInterpreter returns a new interpreter configured by r.Config.
func (r *Runner) NewInterpreter() (*interp.Interpreter, error) {
	return interp.New(r.Config...)
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially, the environment produced by each expression being used to
// evaluate the next.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message without its location
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests starting from empty
// environments.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	r := &Runner{}
	r.RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests starting from empty
// environments.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		in, err := r.NewInterpreter()
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		env := environ.New()
		for j, expr := range test.TestSequence {
			result, next, err := EvalString(in, expr.Expr, env)
			if err != nil {
				t.Errorf("test %d %q: expr %d: %v", i, test.Name, j, err)
				continue
			}
			env = next
			assert.Equal(t, expr.Result, result, "test %d %q: expr %d: %s", i, test.Name, j, expr.Expr)
		}
	}
}

// EvalString parses source, which must contain exactly one expression, and
// evaluates it in env.  EvalString returns the printed value and the
// resulting environment.  If evaluation fails the printed result is the
// error message without its source location and env is returned unchanged.
// A non-nil error means source could not be read as one expression.
func EvalString(in *interp.Interpreter, source string, env *environ.Environ) (string, *environ.Environ, error) {
	forms, err := parser.ParseForms("", source)
	if err != nil {
		return "", nil, fmt.Errorf("parse error: %w", err)
	}
	if len(forms) != 1 {
		return "", nil, fmt.Errorf("expected one expression (got %d)", len(forms))
	}
	v, next, err := in.Eval(forms[0], env)
	if err != nil {
		return errorMessage(err), env, nil
	}
	return v.String(), next, nil
}

func errorMessage(err error) string {
	var lerr *lisp.Error
	if !errors.As(err, &lerr) || lerr.Source == nil {
		return err.Error()
	}
	cp := *lerr
	cp.Source = nil
	return cp.Error()
}

// AssertCondition asserts that err is a lisp error with the given condition.
func AssertCondition(t *testing.T, c lisp.Condition, err error, msgAndArgs ...interface{}) bool {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		return false
	}
	if len(msgAndArgs) == 0 {
		msgAndArgs = []interface{}{"expected %v error: %v", c, err}
	}
	return assert.True(t, errors.Is(err, c), msgAndArgs...)
}

// BenchmarkRun returns a benchmark function that runs source.
func BenchmarkRun(source string, config ...interp.Config) func(*testing.B) {
	return func(b *testing.B) {
		in, err := interp.New(config...)
		if err != nil {
			b.Fatal(err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, err := in.Run(source)
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
