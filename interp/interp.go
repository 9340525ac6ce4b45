// Package interp evaluates lisp programs.
//
// Evaluation maps an expression and an environment to a value and a new
// environment.  Procedures are lambda expressions and are applied with
// dynamic scope: a procedure body sees the environment of its caller extended
// with its parameters, never the environment where the lambda was written.
package interp

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bmatsuo/mclisp/environ"
	"github.com/bmatsuo/mclisp/lisp"
	"github.com/bmatsuo/mclisp/parser"
)

// Interpreter evaluates expressions.  An Interpreter tracks the procedure
// call stack of the evaluation in progress and must not be used by multiple
// goroutines concurrently.
type Interpreter struct {
	maxDepth int
	log      *logrus.Logger
	file     string
	stack    *lisp.CallStack
}

// New returns a new Interpreter configured by config.
func New(config ...Config) (*Interpreter, error) {
	in := &Interpreter{
		maxDepth: DefaultMaxDepth,
		log:      discardLogger(),
		stack:    &lisp.CallStack{},
	}
	for _, fn := range config {
		err := fn(in)
		if err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Interpret parses the first top-level form in source and evaluates it in an
// empty environment.  Interpret returns the final environment.
func Interpret(source string) (*environ.Environ, error) {
	in, err := New()
	if err != nil {
		return nil, err
	}
	return in.Interpret(source)
}

// Interpret parses the first top-level form in source and evaluates it in an
// empty environment.  Interpret returns the final environment.
func (in *Interpreter) Interpret(source string) (*environ.Environ, error) {
	_, env, err := in.Run(source)
	if err != nil {
		return nil, err
	}
	return env, nil
}

// Run is like Interpret but also returns the value of the program.
func (in *Interpreter) Run(source string) (*lisp.LVal, *environ.Environ, error) {
	program, err := parser.ParseFile(in.file, source)
	if err != nil {
		return nil, nil, err
	}
	return in.Eval(program, environ.New())
}

// Load parses every top-level form in source and evaluates the forms in
// order, threading the environment from each form into the next.  Load
// returns the value of the last form, or () if source contains no forms.
func (in *Interpreter) Load(name string, source string, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	forms, err := parser.ParseForms(name, source)
	if err != nil {
		return nil, nil, err
	}
	if env == nil {
		env = environ.New()
	}
	v := lisp.Nil()
	for _, form := range forms {
		v, env, err = in.Eval(form, env)
		if err != nil {
			return nil, nil, err
		}
	}
	return v, env, nil
}

// Eval evaluates expr in env and returns the resulting value and environment.
// The environment env is never modified.
func (in *Interpreter) Eval(expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	switch expr.Type {
	case lisp.LAtom:
		v, ok := env.Get(expr.Str)
		if ok {
			return v, env, nil
		}
		return expr, env, nil
	case lisp.LList:
		return in.evalList(expr, env)
	default:
		return nil, nil, in.errorf(lisp.TypeMismatch, expr, "invalid expression type: %v", expr.Type)
	}
}

func (in *Interpreter) evalList(expr *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	if expr.IsNil() || expr.IsDotted() {
		return expr, env, nil
	}
	head := expr.Cells[0]
	if head.IsAtom() {
		if op, ok := specialOps[head.Str]; ok {
			return in.evalSpecialOp(op, expr, env)
		}
		proc, ok := env.Get(head.Str)
		if !ok {
			return nil, nil, in.errorf(lisp.UnboundSymbol, expr, "%s", head.Str)
		}
		if !isLambda(proc) {
			return nil, nil, in.errorf(lisp.TypeMismatch, expr, "not a procedure: %s: %v", head.Str, proc)
		}
		args, _, err := in.evalArgs(expr.Cells[1:], env)
		if err != nil {
			return nil, nil, err
		}
		return in.apply(head.Str, proc, args, expr, env)
	}
	if name, ok := head.HeadSymbol(); ok && name == lisp.LambdaSymbol {
		if !isLambda(head) {
			return nil, nil, in.errorf(lisp.TypeMismatch, head, "malformed lambda expression")
		}
		args, _, err := in.evalArgs(expr.Cells[1:], env)
		if err != nil {
			return nil, nil, err
		}
		return in.apply(lisp.LambdaSymbol, head, args, expr, env)
	}
	return expr, env, nil
}

// evalArgs evaluates exprs from left to right.  The environment produced by
// each expression is the one used to evaluate the next.
func (in *Interpreter) evalArgs(exprs []*lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	args := make([]*lisp.LVal, len(exprs))
	for i := range exprs {
		var err error
		args[i], env, err = in.Eval(exprs[i], env)
		if err != nil {
			return nil, nil, err
		}
	}
	return lisp.List(args...), env, nil
}

// apply evaluates the body of lambda expression proc in env extended with its
// parameters bound to args.  The environment the body finishes in is
// returned.
func (in *Interpreter) apply(name string, proc *lisp.LVal, args *lisp.LVal, call *lisp.LVal, env *environ.Environ) (*lisp.LVal, *environ.Environ, error) {
	if in.stack.Height() >= in.maxDepth {
		return nil, nil, in.errorf(lisp.StackOverflow, call, "maximum depth exceeded: %d", in.maxDepth)
	}
	in.stack.Push(name, call.Source)
	defer in.stack.Pop()

	if in.log.IsLevelEnabled(logrus.DebugLevel) {
		in.log.WithFields(logrus.Fields{
			"proc":   name,
			"depth":  in.stack.Height(),
			"source": call.Source,
		}).Debugf("apply %v", args)
	}

	params, body := proc.Cells[1], proc.Cells[2]
	bodyEnv, err := env.Bind(params, args)
	if err != nil {
		return nil, nil, in.wrapError(err, call)
	}
	return in.Eval(body, bodyEnv)
}

// isLambda returns true if v has the form (lambda (P...) Body).
func isLambda(v *lisp.LVal) bool {
	name, ok := v.HeadSymbol()
	if !ok || name != lisp.LambdaSymbol || v.IsDotted() || v.Len() != 3 {
		return false
	}
	params := v.Cells[1]
	return params.IsList() && !params.IsDotted()
}

func (in *Interpreter) errorf(c lisp.Condition, expr *lisp.LVal, format string, v ...interface{}) error {
	err := lisp.ExprError(c, expr, format, v...)
	err.Stack = in.stack.Copy()
	return err
}

// wrapError attributes err to expr and the current stack if err is a
// lisp.Error missing that context.
func (in *Interpreter) wrapError(err error, expr *lisp.LVal) error {
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		return err
	}
	if lerr.Expr == nil {
		lerr.Expr = expr
	}
	if lerr.Source == nil && expr != nil {
		lerr.Source = expr.Source
	}
	if lerr.Stack == nil {
		lerr.Stack = in.stack.Copy()
	}
	return lerr
}
