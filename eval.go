package mceval

import (
	"fmt"

	"github.com/tevino/abool/v2"
)

// Continuation operators
const (
	IfOp = iota
	BeginOp
	DefineOp
	SetQOp
	ApplyOp
	EvalArgOp
	SetNewEnvOp
	RestoreEnvOp
	ForceOp
	MemoOp
)

var OpStr = [...]string{
	"If", "Begin", "Define", "SetQ", "Apply", "EvalArg",
	"SetNewEnv", "RestoreEnv", "Force", "Memo",
}

// argList accumulates the evaluated arguments of a combination.
type argList struct {
	fun      Any
	operands []Expr
	args     []Any
}

// Interp evaluates expressions.
// The zero value is a strict evaluator without logging.
type Interp struct {
	// Lazy makes compound procedures receive their arguments as thunks.
	Lazy bool

	// Interrupt, if not nil, aborts the running evaluation when set.
	// The evaluator clears it when it does so.
	Interrupt *abool.AtomicBool

	Log *Logger
}

// Eval analyzes a datum and evaluates it in an environment.
func (in *Interp) Eval(x Any, env *Environment) (Any, error) {
	exp, err := Analyze(x)
	if err != nil {
		return nil, err
	}
	return in.Evaluate(exp, env)
}

// Evaluate evaluates an expression in an environment.
// A nil environment stands for a fresh environment of one empty frame.
func (in *Interp) Evaluate(exp Expr, env *Environment) (Any, error) {
	return in.run(exp, env, NewContinuation())
}

// Apply applies a procedure to argument values.
func (in *Interp) Apply(fun Any, args []Any) (Any, error) {
	switch fn := fun.(type) {
	case *Primitive:
		if in.Lazy {
			forced := make([]Any, len(args))
			for i, arg := range args {
				v, err := in.Force(arg)
				if err != nil {
					return nil, err
				}
				forced[i] = v
			}
			args = forced
		}
		return applyPrimitive(fn, args)
	case *Closure:
		newEnv, err := fn.Env.Extend(fn.Params, args)
		if err != nil {
			return nil, err
		}
		return in.run(&Begin{fn.Body}, newEnv, NewContinuation())
	}
	return nil, NewEvalError(UnknownProcedureType, "", fun)
}

// pushForce makes the value of the next expression be forced
// when evaluating lazily.
func (in *Interp) pushForce(k *Continuation) {
	if in.Lazy {
		k.Push(ForceOp, nil)
	}
}

// run evaluates exp in env and then continues with k until k is empty.
func (in *Interp) run(exp Expr, env *Environment, k *Continuation) (Any, error) {
	if env == nil {
		env = NewEnvironment()
	}
	var val Any
	var err error
	for {
	Loop1:
		for {
			if in.Interrupt != nil && in.Interrupt.SetToIf(true, false) {
				in.Log.Warnf("evaluation interrupted with %d pending steps", k.Len())
				return nil, NewEvalError(Interrupted, "", nil)
			}
			switch x := exp.(type) {
			case *NumberLiteral:
				val = x.Value
				break Loop1
			case *StringLiteral:
				val = x.Value
				break Loop1
			case *BooleanLiteral:
				val = x.Value
				break Loop1
			case *VariableRef:
				if val, err = env.Lookup(x.Name); err != nil {
					return nil, err
				}
				break Loop1
			case *Quote:
				val = x.Datum
				break Loop1
			case *Assign:
				k.Push(SetQOp, x.Name)
				exp = x.Value
			case *Define:
				k.Push(DefineOp, x.Name)
				exp = x.Value
			case *If:
				k.Push(IfOp, x)
				in.pushForce(k)
				exp = x.Pred
			case *Lambda:
				val = &Closure{x.Params, x.Body, env}
				break Loop1
			case *Begin:
				if len(x.Body) == 0 {
					val = Void
					break Loop1
				}
				if len(x.Body) > 1 {
					k.Push(BeginOp, x.Body[1:])
				}
				exp = x.Body[0]
			case *Application:
				k.Push(ApplyOp, x)
				in.pushForce(k)
				exp = x.Operator
			default:
				return nil, NewEvalError(UnknownExpressionType,
					fmt.Sprintf("%#v", exp), nil)
			}
		}
	Loop2:
		for {
			if k.Len() == 0 {
				return val, nil
			}
			op, x := k.Pop()
			switch op {
			case IfOp:
				j := x.(*If)
				if IsTrue(val) {
					exp = j.Conseq
					break Loop2
				}
				if j.Alt != nil {
					exp = j.Alt
					break Loop2
				}
				val = Void
			case BeginOp:
				body := x.([]Expr)
				if len(body) > 1 {
					k.Push(BeginOp, body[1:])
				}
				exp = body[0]
				break Loop2
			case DefineOp:
				env.Define(x.(*Symbol), val)
				val = Ok
			case SetQOp:
				if err = env.Set(x.(*Symbol), val); err != nil {
					return nil, err
				}
				val = Ok
			case ApplyOp: // val = evaluated operator
				app := x.(*Application)
				if fn, ok := val.(*Closure); ok && in.Lazy {
					args := make([]Any, len(app.Operands))
					for i, operand := range app.Operands {
						args[i] = Delay(operand, env)
					}
					if err = in.applyClosure(fn, args, k, env); err != nil {
						return nil, err
					}
					val = Void
				} else if len(app.Operands) == 0 {
					if val, err = in.applyFunction(val, nil, k, env); err != nil {
						return nil, err
					}
				} else {
					k.Push(EvalArgOp, &argList{fun: val, operands: app.Operands})
					in.pushForce(k)
					exp = app.Operands[0]
					break Loop2
				}
			case EvalArgOp: // val = evaluated arg
				a := x.(*argList)
				a.args = append(a.args, val)
				if len(a.args) < len(a.operands) {
					k.Push(EvalArgOp, a)
					in.pushForce(k)
					exp = a.operands[len(a.args)]
					break Loop2
				}
				if val, err = in.applyFunction(a.fun, a.args, k, env); err != nil {
					return nil, err
				}
			case SetNewEnvOp, RestoreEnvOp:
				env = x.(*Environment)
			case ForceOp:
				if t, ok := val.(*Thunk); ok {
					if t.forced {
						val = t.value
					} else {
						if in.Log.Enabled(LevelDebug) {
							in.Log.Debugf("force %s", Stringify(t, true))
						}
						k.Push(RestoreEnvOp, env)
						k.Push(MemoOp, t)
						k.Push(ForceOp, nil)
						exp, env = t.exp, t.env
						break Loop2
					}
				}
			case MemoOp:
				x.(*Thunk).resolve(val)
			default:
				panic("bad step " + OpStr[op])
			}
		}
	}
}

// applyFunction applies a function to arguments with a continuation.
// For a closure it only sets up k and env; the result comes later.
func (in *Interp) applyFunction(fun Any, args []Any, k *Continuation, env *Environment) (Any, error) {
	switch fn := fun.(type) {
	case *Primitive:
		return applyPrimitive(fn, args)
	case *Closure:
		return Void, in.applyClosure(fn, args, k, env)
	}
	return nil, NewEvalError(UnknownProcedureType, "", fun)
}

func (in *Interp) applyClosure(fn *Closure, args []Any, k *Continuation, env *Environment) error {
	newEnv, err := fn.Env.Extend(fn.Params, args)
	if err != nil {
		return err
	}
	if in.Log.Enabled(LevelDebug) {
		in.Log.Debugf("apply %s to %s (depth %d)",
			Stringify(fn, true), Stringify(List(args...), true), k.Len())
	}
	if len(fn.Body) == 0 {
		return nil
	}
	if k.TopOp() != RestoreEnvOp { // unless tail call...
		k.Push(RestoreEnvOp, env)
	}
	k.Push(BeginOp, fn.Body)
	k.Push(SetNewEnvOp, newEnv)
	return nil
}

func applyPrimitive(fn *Primitive, args []Any) (Any, error) {
	if fn.Arity >= 0 && len(args) != fn.Arity {
		return nil, NewEvalError(ArityMismatch,
			fmt.Sprintf("%s expects %d argument(s), got %d", fn.Name, fn.Arity, len(args)),
			List(args...))
	}
	result, err := fn.Fn(args)
	if err != nil {
		if _, ok := err.(*EvalError); ok {
			return nil, err
		}
		return nil, NewEvalError(PrimitiveFailure, fn.Name+": "+err.Error(), nil)
	}
	return result, nil
}
