package mceval

import (
	"github.com/ahrtr/gocontainer/set"
	"github.com/nukata/goarith"
)

// Expr is an analyzed expression.
// The set of its variants is closed.
type Expr interface {
	expr()
}

// NumberLiteral evaluates to its number.
type NumberLiteral struct{ Value goarith.Number }

// StringLiteral evaluates to its string.
type StringLiteral struct{ Value string }

// BooleanLiteral evaluates to #t or #f.
type BooleanLiteral struct{ Value bool }

// VariableRef is a bare symbol: (lookup name env).
type VariableRef struct{ Name *Symbol }

// Quote is (quote datum).
type Quote struct{ Datum Any }

// Assign is (set! name value).
type Assign struct {
	Name  *Symbol
	Value Expr
}

// Define is (define name value).
type Define struct {
	Name  *Symbol
	Value Expr
}

// If is (if pred conseq alt) or (if pred conseq); Alt is nil in the latter.
type If struct {
	Pred   Expr
	Conseq Expr
	Alt    Expr
}

// Lambda is (lambda (params...) body...).
type Lambda struct {
	Params []*Symbol
	Body   []Expr
}

// Begin is (begin exps...) with at least one expression.
type Begin struct{ Body []Expr }

// Application is (operator operands...).
type Application struct {
	Operator Expr
	Operands []Expr
}

func (*NumberLiteral) expr()  {}
func (*StringLiteral) expr()  {}
func (*BooleanLiteral) expr() {}
func (*VariableRef) expr()    {}
func (*Quote) expr()          {}
func (*Assign) expr()         {}
func (*Define) expr()         {}
func (*If) expr()             {}
func (*Lambda) expr()         {}
func (*Begin) expr()          {}
func (*Application) expr()    {}

//----------------------------------------------------------------------

func badSyntax(msg string, x Any) error {
	return NewEvalError(BadSyntax, msg, x)
}

// Analyze classifies a datum read by the reader into an Expr.
// The order of the checks follows the evaluation rules:
// self-evaluating, variable, quote, set!, define, if, lambda, begin
// and application.  cond and let are rewritten into if and lambda.
func Analyze(x Any) (Expr, error) {
	switch x := x.(type) {
	case goarith.Number:
		return &NumberLiteral{x}, nil
	case string:
		return &StringLiteral{x}, nil
	case bool:
		return &BooleanLiteral{x}, nil
	case *Symbol:
		return &VariableRef{x}, nil
	case *Cell:
		if x == Nil {
			return nil, NewEvalError(UnknownExpressionType, "empty combination", x)
		}
		elems, ok := x.Slice()
		if !ok {
			return nil, badSyntax("improper form", x)
		}
		switch elems[0] {
		case QuoteSym: // (quote e)
			if len(elems) != 2 {
				return nil, badSyntax("quote", x)
			}
			return &Quote{elems[1]}, nil
		case SetQSym: // (set! var e)
			name, value, err := analyzeBinding(elems, x)
			if err != nil {
				return nil, err
			}
			return &Assign{name, value}, nil
		case DefineSym: // (define var e) or (define (var params...) e...)
			if len(elems) >= 3 {
				if head, ok := elems[1].(*Cell); ok && head != Nil {
					return analyzeProcedureDefinition(head, elems[2:], x)
				}
			}
			name, value, err := analyzeBinding(elems, x)
			if err != nil {
				return nil, err
			}
			return &Define{name, value}, nil
		case IfSym: // (if e1 e2 e3) or (if e1 e2)
			if len(elems) != 3 && len(elems) != 4 {
				return nil, badSyntax("if", x)
			}
			exps, err := analyzeAll(elems[1:])
			if err != nil {
				return nil, err
			}
			result := &If{Pred: exps[0], Conseq: exps[1]}
			if len(exps) == 3 {
				result.Alt = exps[2]
			}
			return result, nil
		case LambdaSym: // (lambda (v...) e...)
			if len(elems) < 3 {
				return nil, badSyntax("lambda", x)
			}
			return analyzeLambda(elems[1], elems[2:])
		case BeginSym: // (begin e...)
			if len(elems) < 2 {
				return nil, badSyntax("begin", x)
			}
			body, err := analyzeAll(elems[1:])
			if err != nil {
				return nil, err
			}
			return &Begin{body}, nil
		case CondSym:
			return analyzeCond(elems[1:], x)
		case LetSym:
			return analyzeLet(elems, x)
		default: // (fun arg...)
			exps, err := analyzeAll(elems)
			if err != nil {
				return nil, err
			}
			return &Application{exps[0], exps[1:]}, nil
		}
	}
	return nil, NewEvalError(UnknownExpressionType, "", x)
}

func analyzeAll(xs []Any) ([]Expr, error) {
	result := make([]Expr, len(xs))
	for i, x := range xs {
		e, err := Analyze(x)
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// analyzeBinding analyzes (keyword var e).
func analyzeBinding(elems []Any, form *Cell) (*Symbol, Expr, error) {
	if len(elems) != 3 {
		return nil, nil, badSyntax(string(*elems[0].(*Symbol)), form)
	}
	name, ok := elems[1].(*Symbol)
	if !ok {
		return nil, nil, badSyntax("variable expected", elems[1])
	}
	value, err := Analyze(elems[2])
	if err != nil {
		return nil, nil, err
	}
	return name, value, nil
}

// (define (f v...) e...) => (define f (lambda (v...) e...))
func analyzeProcedureDefinition(head *Cell, body []Any, form *Cell) (Expr, error) {
	name, ok := head.Car.(*Symbol)
	if !ok {
		return nil, badSyntax("variable expected", form)
	}
	lambda, err := analyzeLambda(head.Cdr, body)
	if err != nil {
		return nil, err
	}
	return &Define{name, lambda}, nil
}

func analyzeLambda(params Any, body []Any) (*Lambda, error) {
	j, ok := params.(*Cell)
	if !ok {
		return nil, badSyntax("parameter list expected", params)
	}
	elems, ok := j.Slice()
	if !ok {
		return nil, badSyntax("improper parameter list", params)
	}
	seen := set.New()
	syms := make([]*Symbol, len(elems))
	for i, p := range elems {
		sym, ok := p.(*Symbol)
		if !ok {
			return nil, badSyntax("parameter must be a symbol", p)
		}
		if seen.Contains(sym) {
			return nil, badSyntax("duplicate parameter", sym)
		}
		seen.Add(sym)
		syms[i] = sym
	}
	exps, err := analyzeAll(body)
	if err != nil {
		return nil, err
	}
	return &Lambda{syms, exps}, nil
}

// (cond (p e...) ... (else e...)) => (if p (begin e...) ...)
func analyzeCond(clauses []Any, form *Cell) (Expr, error) {
	if len(clauses) == 0 {
		return &BooleanLiteral{false}, nil
	}
	clause, ok := clauses[0].(*Cell)
	if !ok || clause == Nil {
		return nil, badSyntax("cond clause", form)
	}
	elems, ok := clause.Slice()
	if !ok {
		return nil, badSyntax("cond clause", clause)
	}
	if len(elems) == 1 {
		return analyzeCondTest(elems[0], clauses[1:], form)
	}
	actions, err := analyzeAll(elems[1:])
	if err != nil {
		return nil, err
	}
	var conseq Expr = &Begin{actions}
	if len(actions) == 1 {
		conseq = actions[0]
	}
	if elems[0] == ElseSym {
		if len(clauses) != 1 {
			return nil, badSyntax("else clause isn't last", form)
		}
		return conseq, nil
	}
	pred, err := Analyze(elems[0])
	if err != nil {
		return nil, err
	}
	alt, err := analyzeCond(clauses[1:], form)
	if err != nil {
		return nil, err
	}
	return &If{pred, conseq, alt}, nil
}

// (cond (p) rest...) => ((lambda (v) (if v v (cond rest...))) p)
// where v is an uninterned symbol, so that p is evaluated once.
func analyzeCondTest(test Any, rest []Any, form *Cell) (Expr, error) {
	if test == ElseSym {
		return nil, badSyntax("else clause", form)
	}
	pred, err := Analyze(test)
	if err != nil {
		return nil, err
	}
	alt, err := analyzeCond(rest, form)
	if err != nil {
		return nil, err
	}
	v := Symbol("cond-value")
	ref := &VariableRef{&v}
	lambda := &Lambda{[]*Symbol{&v}, []Expr{&If{ref, ref, alt}}}
	return &Application{lambda, []Expr{pred}}, nil
}

// (let ((v e)...) body...) => ((lambda (v...) body...) e...)
func analyzeLet(elems []Any, form *Cell) (Expr, error) {
	if len(elems) < 3 {
		return nil, badSyntax("let", form)
	}
	j, ok := elems[1].(*Cell)
	if !ok {
		return nil, badSyntax("let bindings", elems[1])
	}
	bindings, ok := j.Slice()
	if !ok {
		return nil, badSyntax("let bindings", elems[1])
	}
	vars := make([]Any, len(bindings))
	inits := make([]Any, len(bindings))
	for i, b := range bindings {
		bc, ok := b.(*Cell)
		if !ok {
			return nil, badSyntax("let binding", b)
		}
		pair, ok := bc.Slice()
		if !ok || len(pair) != 2 {
			return nil, badSyntax("let binding", b)
		}
		vars[i], inits[i] = pair[0], pair[1]
	}
	lambda, err := analyzeLambda(List(vars...), elems[2:])
	if err != nil {
		return nil, err
	}
	operands, err := analyzeAll(inits)
	if err != nil {
		return nil, err
	}
	return &Application{lambda, operands}, nil
}
