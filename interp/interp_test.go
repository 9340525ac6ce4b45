package interp_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmatsuo/mclisp/environ"
	"github.com/bmatsuo/mclisp/interp"
	"github.com/bmatsuo/mclisp/lisp"
	"github.com/bmatsuo/mclisp/lisptest"
)

func TestSpecialOp(t *testing.T) {
	tests := lisptest.TestSuite{
		{"atoms", lisptest.TestSequence{
			{"a", "a"},
			{"t", "t"},
			{"()", "()"},
		}},
		{"quote", lisptest.TestSequence{
			{"(quote a)", "a"},
			{"(quote (a b c))", "(a b c)"},
			{"(quote ())", "()"},
			{"(quote (car (quote x)))", "(car (quote x))"},
			{"(quote)", "type-mismatch: quote: 1 operands expected (got 0)"},
		}},
		{"atom", lisptest.TestSequence{
			{"(atom (quote a))", "t"},
			{"(atom ())", "t"},
			{"(atom (quote t))", "t"},
			{"(atom t)", "t"},
			{"(atom (quote (a b)))", "()"},
		}},
		{"eq", lisptest.TestSequence{
			{"(eq (quote a) (quote a))", "t"},
			{"(eq (quote a) (quote b))", "()"},
			{"(eq () ())", "t"},
			{"(eq (quote (a (b))) (quote (a (b))))", "t"},
			{"(eq (quote (a b)) (quote (a c)))", "()"},
			{"(eq (quote a) ())", "()"},
		}},
		{"car cdr", lisptest.TestSequence{
			{"(car (quote (a b c)))", "a"},
			{"(cdr (quote (a b c)))", "(b c)"},
			{"(cdr (quote (a)))", "()"},
			{"(car (quote a))", "type-mismatch: car: argument is not a non-empty list: a"},
			{"(car ())", "type-mismatch: car: argument is not a non-empty list: ()"},
			{"(cdr (quote a))", "type-mismatch: cdr: argument is not a non-empty list: a"},
			{"(car (quote (a)) (quote b))", "type-mismatch: car: 1 operands expected (got 2)"},
		}},
		{"cons", lisptest.TestSequence{
			{"(cons (quote a) (quote (b c)))", "(a b c)"},
			{"(cons (quote a) ())", "(a)"},
			{"(cons (quote a) (quote b))", "(a . b)"},
			{"(car (cons (quote x) (quote y)))", "x"},
			{"(cdr (cons (quote x) (quote y)))", "y"},
			{"(cdr (cons (quote x) (quote (y z))))", "(y z)"},
			{"(car (cons (quote (x)) (quote y)))", "(x)"},
		}},
		{"define", lisptest.TestSequence{
			{"(define x (quote a))", "()"},
			{"x", "a"},
			{"(define x (quote (b)))", "()"},
			{"x", "(b)"},
			{"(define y x)", "()"},
			{"y", "(b)"},
			{"(define (x) y)", "type-mismatch: define: first operand is not an atom: (x)"},
		}},
		{"set!", lisptest.TestSequence{
			{"(set! y (quote a))", "unbound-symbol: set!: y"},
			{"(define y (quote a))", "()"},
			{"(set! y (quote b))", "()"},
			{"y", "b"},
		}},
		{"cond", lisptest.TestSequence{
			{"(cond ((eq (quote a) (quote b)) (quote first)) ((atom (quote a)) (quote second)))", "second"},
			{"(cond ((quote t) (quote one)) ((quote t) (quote two)))", "one"},
			{"(cond ((quote yes) (quote x)) ((quote t) (quote y)))", "y"},
			{"(cond (() (quote x)))", "no-matching-cond-clause: no clause test evaluated to t"},
			{"(cond)", "no-matching-cond-clause: no clause test evaluated to t"},
			{"(cond (x))", "type-mismatch: cond: clause is not a (test consequence) pair: (x)"},
		}},
		{"cond threading", lisptest.TestSequence{
			{"(cond ((define z (quote q)) z) ((quote t) z))", "q"},
			{"z", "q"},
		}},
		{"lambda", lisptest.TestSequence{
			{"((lambda (x y) (cons x (cdr y))) (quote z) (quote (a (b c))))", "(z (b c))"},
			{"(lambda (x) x)", "(lambda (x) x)"},
			{"((lambda () (quote a)))", "a"},
			{"((lambda (x) x))", "type-mismatch: procedure expects 1 arguments, got 0"},
			{"((lambda (x) x) (quote a) (quote b))", "type-mismatch: procedure expects 1 arguments, got 2"},
			{"(lambda x x)", "type-mismatch: lambda: parameters are not a list: x"},
			{"((lambda x x) (quote a))", "type-mismatch: malformed lambda expression"},
			{"((lambda ((x)) x) (quote a))", "type-mismatch: parameter is not an atom: (x)"},
		}},
		{"argument threading", lisptest.TestSequence{
			{"((lambda (a b) b) (define q (quote v)) q)", "v"},
			{"q", "q"},
		}},
		{"application environment", lisptest.TestSequence{
			{"((lambda (x) x) (quote a))", "a"},
			{"x", "a"},
		}},
		{"dynamic scope", lisptest.TestSequence{
			{"(define f (lambda () y))", "()"},
			{"(define y (quote outer))", "()"},
			{"(f)", "outer"},
			{"((lambda (y) (f)) (quote inner))", "inner"},
		}},
		{"named application", lisptest.TestSequence{
			{"(define id (lambda (x) x))", "()"},
			{"(id (quote a))", "a"},
			{"(id (id (quote (b))))", "(b)"},
			{"(undefined (quote a))", "unbound-symbol: undefined"},
			{"(define notproc (quote a))", "()"},
			{"(notproc)", "type-mismatch: not a procedure: notproc: a"},
		}},
		{"recursion", lisptest.TestSequence{
			{"(define ff (lambda (x) (cond ((atom x) x) ((quote t) (ff (car x))))))", "()"},
			{"(ff (quote ((a) b c)))", "a"},
		}},
		{"passthrough", lisptest.TestSequence{
			{"((a b) c)", "((a b) c)"},
			{"(() a)", "(() a)"},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestIsSpecialOp(t *testing.T) {
	for _, name := range []string{"quote", "atom", "eq", "car", "cdr", "cons", "define", "set!", "cond", "lambda"} {
		assert.True(t, interp.IsSpecialOp(name), name)
	}
	for _, name := range []string{"", "t", "set", "label", "eval"} {
		assert.False(t, interp.IsSpecialOp(name), name)
	}
}

func TestStackOverflow(t *testing.T) {
	r := &lisptest.Runner{Config: []interp.Config{interp.WithMaxDepth(50)}}
	r.RunTestSuite(t, lisptest.TestSuite{
		{"loop", lisptest.TestSequence{
			{"(define loop (lambda (x) (loop x)))", "()"},
			{"(loop (quote a))", "stack-overflow: maximum depth exceeded: 50"},
		}},
	})
}

func TestMetacircularEvaluator(t *testing.T) {
	in, err := interp.New()
	require.NoError(t, err)
	v, env, err := in.Run(lisptest.MetacircularEvaluatorSource)
	require.NoError(t, err)
	assert.Equal(t, "a", v.String())
	assert.Equal(t, []string{"assoc", "evcon", "pairlis", "evlis", "apply", "eval", "e", "a"}, env.Names())

	tests := []struct {
		body   string
		result string
	}{
		{"(eval (quote b) ())", "()"},
		{"(eval (quote x) (pairlis (quote (x)) (quote (v)) ()))", "v"},
		{"(eval (quote (cons (quote a) (quote (b)))) ())", "(a b)"},
		{"(eval (quote (car (quote (x y)))) ())", "x"},
		{"(eval (quote (atom (quote (a)))) ())", "()"},
		{"(eval (quote (eq (quote a) (quote a))) ())", "t"},
		{"(eval (quote (cond ((eq (quote a) (quote b)) (quote no)) ((quote t) (quote yes)))) ())", "yes"},
		{"(eval (quote ((lambda (x y) (cons x (cdr y))) (quote z) (quote (a (b c))))) ())", "(z (b c))"},
	}
	for _, test := range tests {
		v, _, err := in.Run(lisptest.MetacircularEvaluator(test.body))
		if assert.NoError(t, err, test.body) {
			assert.Equal(t, test.result, v.String(), test.body)
		}
	}
}

func TestMetacircularProcedures(t *testing.T) {
	names := []string{"assoc", "pairlis"}
	procs := []string{lisptest.MetaAssocSource, lisptest.MetaPairlisSource}
	tests := []struct {
		body   string
		result string
	}{
		{"(pairlis (quote (a b c)) (quote (1 2 3)) ())", "((a . 1) (b . 2) (c . 3))"},
		{"(assoc (quote a) (pairlis (quote (a b)) (quote (1 2)) ()))", "1"},
		{"(assoc (quote b) (pairlis (quote (a b)) (quote (1 2)) ()))", "2"},
		{"(assoc (quote z) (pairlis (quote (a b)) (quote (1 2)) ()))", "()"},
		{"(assoc (quote b) ())", "()"},
	}
	for _, test := range tests {
		in, err := interp.New()
		require.NoError(t, err)
		v, _, err := in.Run(lisptest.WithProcedures(test.body, names, procs))
		if assert.NoError(t, err, test.body) {
			assert.Equal(t, test.result, v.String(), test.body)
		}
	}
}

func TestInterpret(t *testing.T) {
	env, err := interp.Interpret("((lambda (x) (define y x)) (quote a))")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, env.Names())
	v, ok := env.Get("y")
	require.True(t, ok)
	assert.Equal(t, "a", v.String())

	env, err = interp.Interpret("")
	require.NoError(t, err)
	assert.Equal(t, 0, env.Len())

	// Only the first top-level form is the program.
	env, err = interp.Interpret("(define a (quote 1)) (define b (quote 2))")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, env.Names())

	_, err = interp.Interpret("(()")
	lisptest.AssertCondition(t, lisp.MissingCloseParen, err)
	_, err = interp.Interpret("())")
	lisptest.AssertCondition(t, lisp.MissingOpenParen, err)
	_, err = interp.Interpret("(foo (quote a))")
	lisptest.AssertCondition(t, lisp.UnboundSymbol, err)
}

func TestLoad(t *testing.T) {
	in, err := interp.New()
	require.NoError(t, err)
	src := `
(define first (lambda (x) (car x)))
(define xs (quote (a b c)))
(first xs)`
	v, env, err := in.Load("test.lisp", src, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", v.String())
	assert.Equal(t, []string{"first", "xs", "x"}, env.Names())

	v, env2, err := in.Load("more.lisp", "(set! xs (cdr xs)) (first xs)", env)
	require.NoError(t, err)
	assert.Equal(t, "b", v.String())
	xs, _ := env.Get("xs")
	assert.Equal(t, "(a b c)", xs.String())
	xs, _ = env2.Get("xs")
	assert.Equal(t, "(b c)", xs.String())

	v, _, err = in.Load("empty.lisp", "", nil)
	require.NoError(t, err)
	assert.True(t, v.IsNil())
}

func TestErrorContext(t *testing.T) {
	in, err := interp.New(interp.WithFile("prog.lisp"))
	require.NoError(t, err)
	_, _, err = in.Run("((lambda (x)\n  (car x))\n (quote a))")
	require.Error(t, err)
	assert.EqualError(t, err, "prog.lisp:2:3: type-mismatch: car: argument is not a non-empty list: a")

	var lerr *lisp.Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "(car x)", lerr.Expr.String())
	require.NotNil(t, lerr.Stack)
	var buf bytes.Buffer
	_, err = lerr.Stack.DebugPrint(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Stack Trace [1 frames -- entrypoint last]:\n  height 0: lambda (prog.lisp:1:1)\n", buf.String())

	_, _, err = in.Run("((lambda (x) x))")
	assert.EqualError(t, err, "prog.lisp:1:1: type-mismatch: procedure expects 1 arguments, got 0")
}

func TestEval_persistentEnv(t *testing.T) {
	in, err := interp.New()
	require.NoError(t, err)
	env := environ.New().Define("x", lisp.Atom("a"))
	expr := lisp.List(lisp.Atom("set!"), lisp.Atom("x"), lisp.List(lisp.Atom("quote"), lisp.Atom("b")))
	v, env2, err := in.Eval(expr, env)
	require.NoError(t, err)
	assert.True(t, v.IsNil())
	x, _ := env.Get("x")
	assert.Equal(t, "a", x.String())
	x, _ = env2.Get("x")
	assert.Equal(t, "b", x.String())
}

func TestConfig(t *testing.T) {
	_, err := interp.New(interp.WithMaxDepth(0))
	assert.Error(t, err)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	in, err := interp.New(interp.WithLogger(log), interp.WithFile("trace.lisp"))
	require.NoError(t, err)
	_, _, err = in.Run("((lambda (x) x) (quote a))")
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.Contains(out, "proc=lambda"), out)
	assert.True(t, strings.Contains(out, "depth=1"), out)
	assert.True(t, strings.Contains(out, "apply (a)"), out)

	_, err = interp.New(interp.WithLogger(nil))
	assert.NoError(t, err)
}

func BenchmarkMetacircularEvaluator(b *testing.B) {
	b.Run("find-first-atom", lisptest.BenchmarkRun(lisptest.MetacircularEvaluatorSource))
}
