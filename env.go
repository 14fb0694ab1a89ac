package mceval

// Frame holds one level of bindings.
// Names and Values are index-aligned and always of the same length.
type Frame struct {
	Names  []*Symbol
	Values []Any
}

func (f *Frame) indexOf(sym *Symbol) int {
	for i, name := range f.Names {
		if name == sym {
			return i
		}
	}
	return -1
}

// Environment represents Scheme's environment as a chain of frames,
// innermost first.  A nil *Environment is the empty environment.
type Environment struct {
	Frame *Frame
	Next  *Environment
}

// NewEnvironment returns an environment of one empty frame.
func NewEnvironment() *Environment {
	return &Environment{&Frame{}, nil}
}

// LookFor searches the environment for the frame binding a symbol.
func (env *Environment) LookFor(sym *Symbol) (*Frame, int) {
	for env != nil {
		if i := env.Frame.indexOf(sym); i >= 0 {
			return env.Frame, i
		}
		env = env.Next
	}
	return nil, -1
}

// Lookup returns the value of the innermost binding of a symbol.
func (env *Environment) Lookup(sym *Symbol) (Any, error) {
	frame, i := env.LookFor(sym)
	if frame == nil {
		return nil, NewEvalError(UnboundVariable, "", sym)
	}
	return frame.Values[i], nil
}

// Set replaces the value of the innermost binding of a symbol.
// It never creates a new binding.
func (env *Environment) Set(sym *Symbol, val Any) error {
	frame, i := env.LookFor(sym)
	if frame == nil {
		return NewEvalError(UnboundVariable, "set!", sym)
	}
	frame.Values[i] = val
	return nil
}

// Define binds a symbol in the innermost frame, overwriting any
// binding of the same symbol in that frame.
func (env *Environment) Define(sym *Symbol, val Any) {
	f := env.Frame
	if i := f.indexOf(sym); i >= 0 {
		f.Values[i] = val
		return
	}
	f.Names = append(f.Names, sym)
	f.Values = append(f.Values, val)
}

// Extend builds a new environment which prepends a frame binding
// names to values positionally.
func (env *Environment) Extend(names []*Symbol, values []Any) (*Environment, error) {
	if len(names) < len(values) {
		return nil, NewEvalError(ArityMismatch, "too many arguments supplied",
			List(values...))
	}
	if len(names) > len(values) {
		return nil, NewEvalError(ArityMismatch, "too few arguments supplied",
			List(values...))
	}
	frame := &Frame{
		Names:  append([]*Symbol(nil), names...),
		Values: append([]Any(nil), values...),
	}
	return &Environment{frame, env}, nil
}
