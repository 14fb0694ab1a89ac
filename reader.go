package mceval

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/nukata/goarith"
)

// ErrIncomplete means the tokens ran out in the middle of an expression.
var ErrIncomplete = errors.New("incomplete expression")

var dotSym = Intern(".")

func tryToReadNumber(s string) (goarith.Number, bool) {
	z := new(big.Int)
	if _, ok := z.SetString(s, 0); ok {
		return goarith.AsNumber(z), true
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return nil, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return goarith.AsNumber(f), true
	}
	return nil, false
}

func readError(msg string, x Any) *EvalError {
	return NewEvalError(ReadFailure, msg, x)
}

// SplitIntoTokens splits a source text into tokens.
// Tokens are '(', ')', '\'', strings, booleans, numbers and symbols.
func SplitIntoTokens(src io.Reader) (result []Any, err error) {
	defer func() {
		if e := recover(); e != nil {
			ee, ok := e.(*EvalError)
			if !ok {
				panic(e)
			}
			result, err = nil, ee
		}
	}()
	result = make([]Any, 0, 100)
	var scn scanner.Scanner
	scn.Init(src)
	scn.Mode = scanner.ScanIdents | scanner.ScanStrings
	scn.IsIdentRune = func(ch rune, i int) bool {
		return (unicode.IsPrint(ch) && ch != ' ' && ch != ';' &&
			ch != '(' && ch != ')' && ch != '\'' && ch != '"')
	}
	scn.Error = func(s *scanner.Scanner, msg string) {
		panic(readError(fmt.Sprintf("%s at %s", msg, s.Position), nil))
	}
	scn.Whitespace ^= 1 << '\n' // Don't skip new lines.
	scn.Whitespace |= 1 << '\f'
LOOP:
	for tok := scn.Scan(); tok != scanner.EOF; tok = scn.Scan() {
		switch tok {
		case ';': // Skip ;-comment
			for {
				tok = scn.Scan()
				if tok == scanner.EOF || tok == '\n' {
					continue LOOP
				}
			}
		case '\n':
			continue LOOP
		case '(', ')', '\'':
			result = append(result, tok)
		case scanner.String:
			text, uerr := strconv.Unquote(scn.TokenText())
			if uerr != nil {
				return nil, readError("bad string "+scn.TokenText(), nil)
			}
			result = append(result, text)
		case scanner.Ident:
			text := scn.TokenText()
			if text == "#t" {
				result = append(result, true)
			} else if text == "#f" {
				result = append(result, false)
			} else if n, ok := tryToReadNumber(text); ok {
				result = append(result, n)
			} else {
				result = append(result, Intern(text))
			}
		default:
			return nil, readError(fmt.Sprintf("illegal char %q at %s", tok, scn.Position), nil)
		}
	}
	return result, nil
}

type indexError int

func peek(tokens *[]Any) Any {
	tt := *tokens
	if len(tt) == 0 {
		panic(indexError(0))
	}
	return tt[0]
}

func pop(tokens *[]Any) Any {
	result := peek(tokens)
	*tokens = (*tokens)[1:]
	return result
}

func readFromTokens(tokens *[]Any) Any {
	token := pop(tokens)
	switch token {
	case '(':
		y := &Cell{Nil, Nil}
		z := y
		for peek(tokens) != ')' {
			if peek(tokens) == dotSym {
				pop(tokens)
				y.Cdr = readFromTokens(tokens)
				if peek(tokens) != ')' {
					panic(readError(") is expected", nil))
				}
				break
			}
			e := readFromTokens(tokens)
			cdr := &Cell{e, Nil}
			y.Cdr = cdr
			y = cdr
		}
		pop(tokens)
		return z.Cdr
	case ')':
		panic(readError("unexpected )", nil))
	case '\'':
		e := readFromTokens(tokens)
		return List(QuoteSym, e) // 'e => (quote e)
	}
	return token
}

// ReadFromTokens reads an expression from tokens.
// tokens will be left with the rest of tokens, if any.
// If the tokens run out before the expression ends, it returns
// ErrIncomplete and tokens is left as it was.
func ReadFromTokens(tokens *[]Any) (result Any, err error) {
	saved := *tokens
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case indexError:
				err = ErrIncomplete
			case *EvalError:
				err = e
			default:
				panic(e)
			}
			*tokens = saved
			result = nil
		}
	}()
	return readFromTokens(tokens), nil
}

// ReadString reads all the expressions of a source text.
func ReadString(src string) ([]Any, error) {
	tokens, err := SplitIntoTokens(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	var result []Any
	for len(tokens) != 0 {
		x, err := ReadFromTokens(&tokens)
		if err != nil {
			return nil, err
		}
		result = append(result, x)
	}
	return result, nil
}
