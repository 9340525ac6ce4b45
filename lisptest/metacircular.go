package lisptest

import "strings"

// Procedures of the metacircular evaluator, each a quoted lambda expression.
const (
	MetaAssocSource = `(quote (lambda (x y)
          (cond ((eq y ()) ())
                ((eq x (car (car y)))
                      (cdr (car y)))
                ((quote t)
                (assoc x (cdr y))))))`

	MetaEvconSource = `(quote (lambda (c a)
          (cond ((eval (car (car c)) a)
                (eval (car (cdr (car c))) a))
                ((quote t) (evcon (cdr c) a)))))`

	MetaPairlisSource = `(quote (lambda (x y a)
          (cond ((eq x ()) a)
                ((quote t) (cons (cons (car x) (car y))
                                (pairlis (cdr x) (cdr y) a))))))`

	MetaEvlisSource = `(quote (lambda (m a)
          (cond ((eq m ()) ())
                ((quote t) (cons (eval (car m) a)
                                (evlis (cdr m) a))))))`

	MetaApplySource = `(quote (lambda (fn x a)
          (cond
            ((atom fn)
            (cond ((eq fn (quote car))  (car  (car x)))
                  ((eq fn (quote cdr))  (cdr  (car x)))
                  ((eq fn (quote atom)) (atom (car x)))
                  ((eq fn (quote cons)) (cons (car x) (car (cdr x))))
                  ((eq fn (quote eq))   (eq   (car x) (car (cdr x))))
                  ((quote t)            (apply (eval fn a) x a))))
            ((eq (car fn) (quote lambda))
            (eval (car (cdr (cdr fn)))
                  (pairlis (car (cdr fn)) x a))))))`

	MetaEvalSource = `(quote (lambda (e a)
          (cond
            ((atom e) (assoc e a))
            ((atom (car e))
            (cond ((eq (car e) (quote quote)) (car (cdr e)))
                  ((eq (car e) (quote cond)) (evcon (cdr e) a))
                  ((quote t) (apply (car e) (evlis (cdr e) a) a))))
            ((quote t) (apply (car e) (evlis (cdr e) a) a)))))`
)

// FindFirstAtomSource is a program for the metacircular evaluator that
// returns the first atom in the list ((a) b c), that is a.
const FindFirstAtomSource = `(eval (quote ((lambda (ff x) (ff x))
               (quote (lambda (x)
                        (cond ((atom x) x)
                              ((quote t) (ff (car x))))))
               (quote ((a) b c))))
       ())`

// MetacircularEvaluatorSource is a program that evaluates FindFirstAtomSource
// with an evaluator written in lisp.
var MetacircularEvaluatorSource = MetacircularEvaluator(FindFirstAtomSource)

// MetacircularEvaluator returns a program which evaluates body in an
// environment where assoc, evcon, pairlis, evlis, apply and eval are bound to
// the procedures of a metacircular evaluator.
func MetacircularEvaluator(body string) string {
	return WithProcedures(body,
		[]string{"assoc", "evcon", "pairlis", "evlis", "apply", "eval"},
		[]string{
			MetaAssocSource,
			MetaEvconSource,
			MetaPairlisSource,
			MetaEvlisSource,
			MetaApplySource,
			MetaEvalSource,
		})
}

// WithProcedures returns an immediate application that binds each name to
// the corresponding procedure expression and evaluates body.
func WithProcedures(body string, names []string, procs []string) string {
	var b strings.Builder
	b.WriteString("((lambda (")
	b.WriteString(strings.Join(names, " "))
	b.WriteString(")\n  ")
	b.WriteString(body)
	b.WriteString(")")
	for _, proc := range procs {
		b.WriteString("\n  ")
		b.WriteString(proc)
	}
	b.WriteString(")\n")
	return b.String()
}
