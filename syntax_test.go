package mceval

import (
	"errors"
	"fmt"
	"testing"
)

func analyze(t *testing.T, src string) (Expr, error) {
	t.Helper()
	xs, err := ReadString(src)
	if err != nil {
		t.Fatalf("read %q: %v", src, err)
	}
	if len(xs) != 1 {
		t.Fatalf("expected single expression in %q", src)
	}
	return Analyze(xs[0])
}

func TestAnalyzeClassification(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`5`, "*mceval.NumberLiteral"},
		{`"x"`, "*mceval.StringLiteral"},
		{`#f`, "*mceval.BooleanLiteral"},
		{`x`, "*mceval.VariableRef"},
		{`(quote (f x))`, "*mceval.Quote"},
		{`'x`, "*mceval.Quote"},
		{`(set! x 1)`, "*mceval.Assign"},
		{`(define x 1)`, "*mceval.Define"},
		{`(define (f x) x)`, "*mceval.Define"},
		{`(if 1 2 3)`, "*mceval.If"},
		{`(if 1 2)`, "*mceval.If"},
		{`(lambda (x) x)`, "*mceval.Lambda"},
		{`(begin 1 2)`, "*mceval.Begin"},
		{`(f 1 2)`, "*mceval.Application"},
		{`((lambda (x) x) 1)`, "*mceval.Application"},
		{`(cond (x 1) (else 2))`, "*mceval.If"},
		{`(let ((x 1)) x)`, "*mceval.Application"},
	}
	for _, tt := range tests {
		exp, err := analyze(t, tt.src)
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if got := fmt.Sprintf("%T", exp); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestAnalyzeProcedureDefinition(t *testing.T) {
	exp, err := analyze(t, `(define (add a b) (+ a b))`)
	if err != nil {
		t.Fatal(err)
	}
	def := exp.(*Define)
	if def.Name != Intern("add") {
		t.Errorf("name = %v", def.Name)
	}
	lambda, ok := def.Value.(*Lambda)
	if !ok {
		t.Fatalf("value is %T, want *Lambda", def.Value)
	}
	if len(lambda.Params) != 2 || lambda.Params[1] != Intern("b") {
		t.Errorf("params = %v", lambda.Params)
	}
}

func TestAnalyzeBadSyntax(t *testing.T) {
	for _, src := range []string{
		`(quote)`,
		`(quote a b)`,
		`(set! x)`,
		`(set! 1 2)`,
		`(define x)`,
		`(if)`,
		`(if 1 2 3 4)`,
		`(lambda (x))`,
		`(lambda x x)`,
		`(lambda (1) 1)`,
		`(lambda (x x) x)`,
		`(begin)`,
		`(f . x)`,
		`(cond (else 1) (x 2))`,
		`(cond (else))`,
		`(let ((x)) x)`,
	} {
		if _, err := analyze(t, src); !errors.Is(err, ErrBadSyntax) {
			t.Errorf("%s: got %v, want BadSyntax", src, err)
		}
	}
}

func TestAnalyzeUnknownExpressionType(t *testing.T) {
	for _, x := range []Any{Nil, nil, 3.5, &Primitive{Name: "p"}} {
		if _, err := Analyze(x); !errors.Is(err, ErrUnknownExpressionType) {
			t.Errorf("Analyze(%v): got %v, want UnknownExpressionType", x, err)
		}
	}
}
