package mceval

import (
	"fmt"
	"strings"
)

// Stringify returns the string representation of an expression.
// Strings in the expression will be quoted if quote is true.
func Stringify(exp Any, quote bool) string {
	switch exp {
	case true:
		return "#t"
	case false:
		return "#f"
	case Void:
		return "#<VOID>"
	}
	switch x := exp.(type) {
	case *Cell:
		ss := make([]string, 0, 16)
		for x != Nil {
			ss = append(ss, Stringify(x.Car, quote))
			if kdr, ok := x.Cdr.(*Cell); ok {
				x = kdr
			} else {
				ss = append(ss, ".")
				ss = append(ss, Stringify(x.Cdr, quote))
				break
			}
		}
		return "(" + strings.Join(ss, " ") + ")"
	case *Environment:
		return fmt.Sprintf("#<environment %p>", x)
	case *Primitive:
		return "#<primitive " + x.Name + ">"
	case *Closure:
		ss := make([]string, len(x.Params))
		for i, p := range x.Params {
			ss[i] = string(*p)
		}
		return "#<compound-procedure (" + strings.Join(ss, " ") + ")>"
	case *Thunk:
		if x.forced {
			return Stringify(x.value, quote)
		}
		return "#<thunk>"
	case *Symbol:
		return string(*x)
	case string:
		if quote {
			return fmt.Sprintf("%q", exp)
		}
	}
	return fmt.Sprintf("%v", exp)
}
