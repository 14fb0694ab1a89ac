package mceval

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrPromptInterrupted is returned by a LineReader when the user
// interrupts the line being edited.
var ErrPromptInterrupted = errors.New("prompt interrupted")

// LineReader reads lines with a prompt.  *readline.Instance is one.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

var errorTag = color.New(color.FgRed, color.Bold)

// value evaluates an analyzed expression, forcing the result when lazy.
func (in *Interp) value(exp Expr, env *Environment) (Any, error) {
	if in.Lazy {
		return in.ActualValue(exp, env)
	}
	return in.Evaluate(exp, env)
}

// Load evaluates every expression of a source text in order.
// It stops at the first error.
func (in *Interp) Load(src io.Reader, env *Environment) (Any, error) {
	tokens, err := SplitIntoTokens(src)
	if err != nil {
		return nil, err
	}
	var result Any = Void
	for len(tokens) != 0 {
		x, err := ReadFromTokens(&tokens)
		if err != nil {
			return nil, err
		}
		exp, err := Analyze(x)
		if err != nil {
			return nil, err
		}
		if result, err = in.value(exp, env); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// REPL holds the state of a read-eval-print loop.
type REPL struct {
	In      *Interp
	Env     *Environment
	Lines   LineReader
	Out     io.Writer
	Prompt1 string // prompt for a new expression
	Prompt2 string // prompt for a continued expression
	tokens  []Any
}

// NewREPL returns a loop with the prompts "> " and "| ".
func NewREPL(in *Interp, env *Environment, lines LineReader, out io.Writer) *REPL {
	return &REPL{In: in, Env: env, Lines: lines, Out: out,
		Prompt1: "> ", Prompt2: "| "}
}

// ReadExpression reads an expression, reading more lines as needed.
// It returns io.EOF at the end of input.
func (r *REPL) ReadExpression() (Any, error) {
	for {
		if len(r.tokens) != 0 {
			exp, err := ReadFromTokens(&r.tokens)
			if err == nil {
				return exp, nil
			}
			if err != ErrIncomplete {
				r.tokens = nil
				return nil, err
			}
			r.Lines.SetPrompt(r.Prompt2)
		} else {
			r.Lines.SetPrompt(r.Prompt1)
		}
		line, err := r.Lines.Readline()
		if err == ErrPromptInterrupted {
			r.tokens = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		newTokens, err := SplitIntoTokens(strings.NewReader(line))
		if err != nil {
			r.tokens = nil
			return nil, err
		}
		r.tokens = append(r.tokens, newTokens...)
	}
}

// Run repeats read-eval-print until the end of input.
// Errors of evaluation are reported and the loop goes on.
func (r *REPL) Run() error {
	for {
		x, err := r.ReadExpression()
		if err == io.EOF {
			fmt.Fprintln(r.Out, "Goodbye")
			return nil
		}
		if err == nil {
			var exp Expr
			if exp, err = Analyze(x); err == nil {
				var result Any
				if result, err = r.In.value(exp, r.Env); err == nil {
					if result != Void {
						fmt.Fprintln(r.Out, Stringify(result, true))
					}
					continue
				}
			}
		}
		if _, ok := err.(*EvalError); !ok {
			return err
		}
		r.ReportError(err)
	}
}

// ReportError writes an error with a colored tag.
func (r *REPL) ReportError(err error) {
	fmt.Fprintln(r.Out, errorTag.Sprint("*** ERROR:"), err)
}
