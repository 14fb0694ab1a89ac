package mceval

import "fmt"

// ErrorKind classifies an EvalError.
type ErrorKind int

const (
	UnboundVariable ErrorKind = iota + 1
	ArityMismatch
	UnknownExpressionType
	UnknownProcedureType
	BadSyntax
	PrimitiveFailure
	Interrupted
	ReadFailure
)

var kindStr = [...]string{
	"", "UnboundVariable", "ArityMismatch", "UnknownExpressionType",
	"UnknownProcedureType", "BadSyntax", "PrimitiveFailure", "Interrupted",
	"ReadFailure",
}

func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(kindStr) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindStr[k]
}

// EvalError represents an error which aborts the current evaluation.
type EvalError struct {
	Kind     ErrorKind
	Message  string
	Irritant Any
}

// NewEvalError constructs a new EvalError.
func NewEvalError(kind ErrorKind, msg string, x Any) *EvalError {
	return &EvalError{kind, msg, x}
}

func (err *EvalError) Error() string {
	s := err.Kind.String()
	if err.Message != "" {
		s += ": " + err.Message
	}
	if err.Irritant != nil {
		s += ": " + Stringify(err.Irritant, true)
	}
	return s
}

// Is reports whether target is an EvalError of the same kind,
// so that errors.Is(err, ErrUnboundVariable) works.
func (err *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == err.Kind
}

var (
	ErrUnboundVariable       = &EvalError{Kind: UnboundVariable}
	ErrArityMismatch         = &EvalError{Kind: ArityMismatch}
	ErrUnknownExpressionType = &EvalError{Kind: UnknownExpressionType}
	ErrUnknownProcedureType  = &EvalError{Kind: UnknownProcedureType}
	ErrBadSyntax             = &EvalError{Kind: BadSyntax}
	ErrPrimitive             = &EvalError{Kind: PrimitiveFailure}
	ErrInterrupted           = &EvalError{Kind: Interrupted}
	ErrRead                  = &EvalError{Kind: ReadFailure}
)
