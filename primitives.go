package mceval

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/nukata/goarith"
)

var zero = goarith.AsNumber(big.NewInt(0))

func numberArg(name string, x Any) (goarith.Number, error) {
	if n := goarith.AsNumber(x); n != nil {
		return n, nil
	}
	return nil, NewEvalError(PrimitiveFailure, name+": number expected", x)
}

func pairArg(name string, x Any) (*Cell, error) {
	if j, ok := x.(*Cell); ok && j != Nil {
		return j, nil
	}
	return nil, NewEvalError(PrimitiveFailure, name+": pair expected", x)
}

// fold combines numbers from left to right starting with acc.
func fold(name string, acc goarith.Number, args []Any,
	f func(a, b goarith.Number) goarith.Number) (Any, error) {
	for _, x := range args {
		n, err := numberArg(name, x)
		if err != nil {
			return nil, err
		}
		acc = f(acc, n)
	}
	return acc, nil
}

// compare checks that cmp holds for each adjacent pair of numbers.
func compare(name string, args []Any, cmp func(int) bool) (Any, error) {
	nums := make([]goarith.Number, len(args))
	for i, x := range args {
		n, err := numberArg(name, x)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	for i := 1; i < len(nums); i++ {
		if !cmp(nums[i-1].Cmp(nums[i])) {
			return false, nil
		}
	}
	return true, nil
}

func eqv(a, b Any) bool {
	if a == b {
		return true
	}
	if x := goarith.AsNumber(a); x != nil {
		if y := goarith.AsNumber(b); y != nil {
			return x.Cmp(y) == 0
		}
	}
	return false
}

func equal(a, b Any) bool {
	if eqv(a, b) {
		return true
	}
	j, ok1 := a.(*Cell)
	k, ok2 := b.(*Cell)
	if ok1 && ok2 && j != Nil && k != Nil {
		return equal(j.Car, k.Car) && equal(j.Cdr, k.Cdr)
	}
	return false
}

func add(a, b goarith.Number) goarith.Number { return a.Add(b) }
func mul(a, b goarith.Number) goarith.Number { return a.Mul(b) }
func sub(a, b goarith.Number) goarith.Number { return a.Sub(b) }

// Primitives returns the standard primitive procedures.
// display and newline write to out.
func Primitives(out io.Writer) []*Primitive {
	return []*Primitive{
		{"car", 1, func(a []Any) (Any, error) {
			j, err := pairArg("car", a[0])
			if err != nil {
				return nil, err
			}
			return j.Car, nil
		}},
		{"cdr", 1, func(a []Any) (Any, error) {
			j, err := pairArg("cdr", a[0])
			if err != nil {
				return nil, err
			}
			return j.Cdr, nil
		}},
		{"cons", 2, func(a []Any) (Any, error) {
			return &Cell{a[0], a[1]}, nil
		}},
		{"list", -1, func(a []Any) (Any, error) {
			return List(a...), nil
		}},
		{"null?", 1, func(a []Any) (Any, error) {
			return a[0] == Nil, nil
		}},
		{"pair?", 1, func(a []Any) (Any, error) {
			j, ok := a[0].(*Cell)
			return ok && j != Nil, nil
		}},
		{"eq?", 2, func(a []Any) (Any, error) {
			return a[0] == a[1], nil
		}},
		{"eqv?", 2, func(a []Any) (Any, error) {
			return eqv(a[0], a[1]), nil
		}},
		{"equal?", 2, func(a []Any) (Any, error) {
			return equal(a[0], a[1]), nil
		}},
		{"not", 1, func(a []Any) (Any, error) {
			return a[0] == false, nil
		}},
		{"symbol?", 1, func(a []Any) (Any, error) {
			_, ok := a[0].(*Symbol)
			return ok, nil
		}},
		{"number?", 1, func(a []Any) (Any, error) {
			return goarith.AsNumber(a[0]) != nil, nil
		}},
		{"string?", 1, func(a []Any) (Any, error) {
			_, ok := a[0].(string)
			return ok, nil
		}},
		{"+", -1, func(a []Any) (Any, error) {
			return fold("+", zero, a, add)
		}},
		{"*", -1, func(a []Any) (Any, error) {
			return fold("*", goarith.AsNumber(big.NewInt(1)), a, mul)
		}},
		{"-", -1, func(a []Any) (Any, error) {
			if len(a) == 0 {
				return nil, NewEvalError(ArityMismatch, "- expects at least 1 argument", nil)
			}
			if len(a) == 1 {
				return fold("-", zero, a, sub)
			}
			first, err := numberArg("-", a[0])
			if err != nil {
				return nil, err
			}
			return fold("-", first, a[1:], sub)
		}},
		{"/", 2, func(a []Any) (Any, error) {
			x, err := numberArg("/", a[0])
			if err != nil {
				return nil, err
			}
			y, err := numberArg("/", a[1])
			if err != nil {
				return nil, err
			}
			if y.Cmp(zero) == 0 {
				return nil, errors.New("division by zero")
			}
			return x.RQuo(y), nil
		}},
		{"remainder", 2, func(a []Any) (Any, error) {
			x, err := numberArg("remainder", a[0])
			if err != nil {
				return nil, err
			}
			y, err := numberArg("remainder", a[1])
			if err != nil {
				return nil, err
			}
			if y.Cmp(zero) == 0 {
				return nil, errors.New("division by zero")
			}
			_, r := x.QuoRem(y)
			return r, nil
		}},
		{"=", -1, func(a []Any) (Any, error) {
			return compare("=", a, func(c int) bool { return c == 0 })
		}},
		{"<", -1, func(a []Any) (Any, error) {
			return compare("<", a, func(c int) bool { return c < 0 })
		}},
		{">", -1, func(a []Any) (Any, error) {
			return compare(">", a, func(c int) bool { return c > 0 })
		}},
		{"<=", -1, func(a []Any) (Any, error) {
			return compare("<=", a, func(c int) bool { return c <= 0 })
		}},
		{">=", -1, func(a []Any) (Any, error) {
			return compare(">=", a, func(c int) bool { return c >= 0 })
		}},
		{"display", 1, func(a []Any) (Any, error) {
			fmt.Fprint(out, Stringify(a[0], false))
			return Void, nil
		}},
		{"newline", 0, func(a []Any) (Any, error) {
			fmt.Fprintln(out)
			return Void, nil
		}},
	}
}

// NewGlobalEnvironment returns an environment of one frame which binds
// the primitives, true and false.
func NewGlobalEnvironment(out io.Writer) *Environment {
	env := NewEnvironment()
	for _, p := range Primitives(out) {
		env.Define(Intern(p.Name), p)
	}
	env.Define(Intern("true"), true)
	env.Define(Intern("false"), false)
	return env
}
