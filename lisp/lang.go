package lisp

// TrueSymbol is the only value considered true by cond.
const TrueSymbol = "t"

// Names of the special forms understood by the evaluator.
const (
	QuoteSymbol  = "quote"
	AtomSymbol   = "atom"
	EqSymbol     = "eq"
	CARSymbol    = "car"
	CDRSymbol    = "cdr"
	ConsSymbol   = "cons"
	DefineSymbol = "define"
	SetSymbol    = "set!"
	CondSymbol   = "cond"
	LambdaSymbol = "lambda"
)
