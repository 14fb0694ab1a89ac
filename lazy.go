package mceval

// Thunk is a delayed expression.  It is either unforced, holding an
// expression and the environment to evaluate it in, or forced, holding
// the value.  It goes from unforced to forced at most once.
type Thunk struct {
	forced bool
	exp    Expr
	env    *Environment
	value  Any
}

// Delay makes an unforced thunk of an expression; nothing is evaluated yet.
func Delay(exp Expr, env *Environment) *Thunk {
	return &Thunk{exp: exp, env: env}
}

// Forced reports whether the thunk has been forced.
func (t *Thunk) Forced() bool {
	return t.forced
}

// Value returns the memoized value, or nil if t is not forced yet.
func (t *Thunk) Value() Any {
	return t.value
}

func (t *Thunk) resolve(val Any) {
	t.forced = true
	t.value = val
	t.exp, t.env = nil, nil
}

// Force returns the value of a thunk, evaluating its expression on the
// first call only.  Values other than thunks are returned as they are.
func (in *Interp) Force(v Any) (Any, error) {
	t, ok := v.(*Thunk)
	if !ok {
		return v, nil
	}
	if t.forced {
		return t.value, nil
	}
	k := NewContinuation()
	k.Push(MemoOp, t)
	k.Push(ForceOp, nil)
	return in.run(t.exp, t.env, k)
}

// ActualValue evaluates an expression and forces the result,
// so that it never returns a thunk.
func (in *Interp) ActualValue(exp Expr, env *Environment) (Any, error) {
	k := NewContinuation()
	k.Push(ForceOp, nil)
	return in.run(exp, env, k)
}
