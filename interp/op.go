package interp

import (
	"github.com/sirupsen/logrus"

	"github.com/bmatsuo/mclisp/environ"
	"github.com/bmatsuo/mclisp/lisp"
)

type specialOpFunc func(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error)

// specialOp is an operator whose operands are not evaluated before it is
// invoked.
type specialOp struct {
	name  string
	nargs int // required number of operands, or -1 for any number
	fn    specialOpFunc
}

var specialOps map[string]*specialOp

var langSpecialOps = []*specialOp{
	{lisp.QuoteSymbol, 1, opQuote},
	{lisp.AtomSymbol, 1, opAtom},
	{lisp.EqSymbol, 2, opEq},
	{lisp.CARSymbol, 1, opCAR},
	{lisp.CDRSymbol, 1, opCDR},
	{lisp.ConsSymbol, 2, opCons},
	{lisp.DefineSymbol, 2, opDefine},
	{lisp.SetSymbol, 2, opSet},
	{lisp.CondSymbol, -1, opCond},
	{lisp.LambdaSymbol, 2, opLambda},
}

func init() {
	specialOps = make(map[string]*specialOp, len(langSpecialOps))
	for _, op := range langSpecialOps {
		specialOps[op.name] = op
	}
}

// IsSpecialOp returns true if name is the name of a special form.
func IsSpecialOp(name string) bool {
	_, ok := specialOps[name]
	return ok
}

func (in *Interpreter) evalSpecialOp(op *specialOp, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	args := expr.Cells[1:]
	if op.nargs >= 0 && len(args) != op.nargs {
		return nil, nil, in.errorf(lisp.TypeMismatch, expr,
			"%s: %d operands expected (got %d)", op.name, op.nargs, len(args))
	}
	if in.log.IsLevelEnabled(logrus.TraceLevel) {
		in.log.WithFields(logrus.Fields{
			"op":     op.name,
			"depth":  in.stack.Height(),
			"source": expr.Source,
		}).Tracef("eval %v", expr)
	}
	return op.fn(in, args, expr, env)
}

// (quote expr)
func opQuote(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	return args[0], env, nil
}

// (atom expr)
func opAtom(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	v, _, err := in.Eval(args[0], env)
	if err != nil {
		return nil, nil, err
	}
	return lisp.Bool(v.IsAtom() || v.IsNil()), env, nil
}

// (eq left right)
func opEq(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	left, _, err := in.Eval(args[0], env)
	if err != nil {
		return nil, nil, err
	}
	right, _, err := in.Eval(args[1], env)
	if err != nil {
		return nil, nil, err
	}
	return lisp.Bool(lisp.Equal(left, right)), env, nil
}

// (car list)
func opCAR(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	lis, _, err := in.Eval(args[0], env)
	if err != nil {
		return nil, nil, err
	}
	v, ok := lisp.CAR(lis)
	if !ok {
		return nil, nil, in.errorf(lisp.TypeMismatch, expr, "car: argument is not a non-empty list: %v", lis)
	}
	return v, env, nil
}

// (cdr list)
func opCDR(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	lis, _, err := in.Eval(args[0], env)
	if err != nil {
		return nil, nil, err
	}
	v, ok := lisp.CDR(lis)
	if !ok {
		return nil, nil, in.errorf(lisp.TypeMismatch, expr, "cdr: argument is not a non-empty list: %v", lis)
	}
	return v, env, nil
}

// (cons head tail)
func opCons(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	head, _, err := in.Eval(args[0], env)
	if err != nil {
		return nil, nil, err
	}
	tail, _, err := in.Eval(args[1], env)
	if err != nil {
		return nil, nil, err
	}
	return lisp.Cons(head, tail), env, nil
}

// (define symbol expr)
func opDefine(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	sym := args[0]
	if !sym.IsAtom() {
		return nil, nil, in.errorf(lisp.TypeMismatch, expr, "define: first operand is not an atom: %v", sym)
	}
	v, _, err := in.Eval(args[1], env)
	if err != nil {
		return nil, nil, err
	}
	return lisp.Nil(), env.Define(sym.Str, v), nil
}

// (set! symbol expr)
func opSet(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	sym := args[0]
	if !sym.IsAtom() {
		return nil, nil, in.errorf(lisp.TypeMismatch, expr, "set!: first operand is not an atom: %v", sym)
	}
	if _, ok := env.Get(sym.Str); !ok {
		return nil, nil, in.errorf(lisp.UnboundSymbol, expr, "set!: %s", sym.Str)
	}
	v, _, err := in.Eval(args[1], env)
	if err != nil {
		return nil, nil, err
	}
	env, err = env.Assign(sym.Str, v)
	if err != nil {
		return nil, nil, in.wrapError(err, expr)
	}
	return lisp.Nil(), env, nil
}

// (cond (test consequence) ...)
//
// Tests are evaluated in order, each in the environment produced by the test
// before it.  The consequence of the first test to produce t is evaluated in
// that environment.  The environment produced by the tests is returned.
func opCond(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	for _, clause := range args {
		if !clause.IsList() || clause.IsDotted() || clause.Len() != 2 {
			return nil, nil, in.errorf(lisp.TypeMismatch, expr, "cond: clause is not a (test consequence) pair: %v", clause)
		}
		var test *lisp.LVal
		var err error
		test, env, err = in.Eval(clause.Cells[0], env)
		if err != nil {
			return nil, nil, err
		}
		if !test.IsTrue() {
			continue
		}
		v, _, err := in.Eval(clause.Cells[1], env)
		if err != nil {
			return nil, nil, err
		}
		return v, env, nil
	}
	return nil, nil, in.errorf(lisp.NoMatchingCondClause, expr, "no clause test evaluated to %s", lisp.TrueSymbol)
}

// (lambda (param ...) body)
//
// A lambda expression that is not being applied evaluates to itself.
func opLambda(in *Interpreter, args []*lisp.LVal, expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	if !isLambda(expr) {
		return nil, nil, in.errorf(lisp.TypeMismatch, expr, "lambda: parameters are not a list: %v", args[0])
	}
	return expr, env, nil
}
