// A metacircular evaluator in Go, after SICP 4.1 and 4.2
package mceval

import "sync"

type Any = interface{}

//----------------------------------------------------------------------

// Cell represents a cons-cell.
type Cell struct {
	Car Any
	Cdr Any
}

var Nil *Cell = nil

func (j *Cell) String() string {
	return Stringify(j, true)
}

// List builds a proper list of the elements.
func List(elems ...Any) *Cell {
	result := Nil
	for i := len(elems) - 1; i >= 0; i-- {
		result = &Cell{elems[i], result}
	}
	return result
}

// Slice returns the elements of a proper list.
// ok is false if j is an improper list.
func (j *Cell) Slice() (result []Any, ok bool) {
	for j != Nil {
		result = append(result, j.Car)
		kdr, isCell := j.Cdr.(*Cell)
		if !isCell {
			return result, false
		}
		j = kdr
	}
	return result, true
}

//----------------------------------------------------------------------

// Symbol represents Scheme's symbol.
type Symbol string

// The mapping from string to *Symbol
var Symbols sync.Map

// Intern interns a name as a symbol.
func Intern(name string) *Symbol {
	newSym := Symbol(name)
	sym, _ := Symbols.LoadOrStore(name, &newSym)
	return sym.(*Symbol)
}

func (s *Symbol) String() string {
	return string(*s)
}

var QuoteSym = Intern("quote")
var IfSym = Intern("if")
var BeginSym = Intern("begin")
var LambdaSym = Intern("lambda")
var DefineSym = Intern("define")
var SetQSym = Intern("set!")
var CondSym = Intern("cond")
var ElseSym = Intern("else")
var LetSym = Intern("let")

// Ok is returned by assignments and definitions.
var Ok = Intern("ok")

// Void means the expresssion has no value.
var Void = &struct{}{}

//----------------------------------------------------------------------

// Primitive represents a procedure implemented in Go.
// Arity < 0 means the procedure takes any number of arguments.
type Primitive struct {
	Name  string
	Arity int
	Fn    func(args []Any) (Any, error)
}

// Closure represents a lambda expression with its environment.
type Closure struct {
	Params []*Symbol
	Body   []Expr
	Env    *Environment
}

// IsTrue reports whether v counts as true in a conditional.
// Only #f is false.
func IsTrue(v Any) bool {
	return v != false
}
