package mceval

import (
	"errors"
	"testing"
)

// counter binds count! to a primitive which counts its calls.
func counter(env *Environment) *int {
	calls := new(int)
	env.Define(Intern("count!"), &Primitive{"count!", 0, func([]Any) (Any, error) {
		*calls++
		return num(int64(*calls)), nil
	}})
	return calls
}

func TestDelayDoesNotEvaluate(t *testing.T) {
	env := globalEnv()
	calls := counter(env)
	exp, _ := analyze(t, `(count!)`)
	th := Delay(exp, env)
	if th.Forced() {
		t.Fatal("new thunk is forced")
	}
	if *calls != 0 {
		t.Fatalf("delay evaluated its expression %d time(s)", *calls)
	}
	if got := Stringify(th, true); got != "#<thunk>" {
		t.Errorf("unforced thunk prints as %s", got)
	}
}

func TestForceIsMemoized(t *testing.T) {
	in := &Interp{Lazy: true}
	env := globalEnv()
	calls := counter(env)
	exp, _ := analyze(t, `(+ (count!) 10)`)
	th := Delay(exp, env)

	v1, err := in.Force(th)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := in.Force(th)
	if err != nil {
		t.Fatal(err)
	}
	expectNumber(t, v1, 11)
	if v1 != v2 {
		t.Fatalf("second force returned %v, first %v", v2, v1)
	}
	if *calls != 1 {
		t.Fatalf("expression evaluated %d times, want 1", *calls)
	}
	if !th.Forced() || th.Value() != v1 {
		t.Fatalf("thunk not memoized: forced=%v value=%v", th.Forced(), th.Value())
	}
	if th.exp != nil || th.env != nil {
		t.Fatal("forced thunk still holds its expression")
	}
}

func TestForcePassesNonThunks(t *testing.T) {
	in := &Interp{Lazy: true}
	for _, v := range []Any{num(3), "s", Nil, true, Intern("sym")} {
		got, err := in.Force(v)
		if err != nil || got != v {
			t.Errorf("Force(%v) = %v, %v", v, got, err)
		}
	}
}

func TestActualValueForcesNestedThunks(t *testing.T) {
	in := &Interp{Lazy: true}
	env := globalEnv()
	inner, _ := analyze(t, `(* 6 7)`)
	env.Define(Intern("t1"), Delay(inner, env))
	outer, _ := analyze(t, `t1`)
	env.Define(Intern("t2"), Delay(outer, env))

	exp, _ := analyze(t, `t2`)
	v, err := in.Evaluate(exp, env)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(*Thunk); !ok {
		t.Fatalf("Evaluate returned %T, want a thunk", v)
	}
	v, err = in.ActualValue(exp, env)
	if err != nil {
		t.Fatal(err)
	}
	expectNumber(t, v, 42)
}

func TestLazyUnusedArgumentIsNeverEvaluated(t *testing.T) {
	in := &Interp{Lazy: true}
	env := globalEnv()
	calls := counter(env)
	mustRun(t, in, env, `(define (try a b) (if (= a 0) 1 b))`)
	expectNumber(t, mustRun(t, in, env, `(try 0 (/ 1 0))`), 1)
	expectNumber(t, mustRun(t, in, env, `(try 0 (count!))`), 1)
	if *calls != 0 {
		t.Fatalf("unused argument evaluated %d time(s)", *calls)
	}
}

func TestLazyArgumentEvaluatedOnce(t *testing.T) {
	in := &Interp{Lazy: true}
	env := globalEnv()
	calls := counter(env)
	mustRun(t, in, env, `(define (twice x) (+ x x))`)
	expectNumber(t, mustRun(t, in, env, `(twice (count!))`), 2)
	if *calls != 1 {
		t.Fatalf("argument evaluated %d times, want 1", *calls)
	}
}

func TestLazyPrimitivesGetForcedArguments(t *testing.T) {
	in := &Interp{Lazy: true}
	env := globalEnv()
	mustRun(t, in, env, `(define (id x) x)`)
	expectNumber(t, mustRun(t, in, env, `(+ (id 1) (id (id 2)))`), 3)
	expectNumber(t, mustRun(t, in, env, `((id +) 4 5)`), 9)
	if v := mustRun(t, in, env, `(car (id (cons 'a '())))`); v != Intern("a") {
		t.Fatalf("got %v, want a", v)
	}
}

func TestStrictEvaluatesArgumentsEagerly(t *testing.T) {
	in := &Interp{}
	env := globalEnv()
	mustRun(t, in, env, `(define (try a b) (if (= a 0) 1 b))`)
	if _, err := run(t, in, env, `(try 0 (/ 1 0))`); !errors.Is(err, ErrPrimitive) {
		t.Fatalf("got %v, want PrimitiveFailure", err)
	}
}

func TestLazyErrorLeavesThunkUnforced(t *testing.T) {
	in := &Interp{Lazy: true}
	env := globalEnv()
	exp, _ := analyze(t, `undefined-variable`)
	th := Delay(exp, env)
	if _, err := in.Force(th); !errors.Is(err, ErrUnboundVariable) {
		t.Fatalf("got %v, want UnboundVariable", err)
	}
	if th.Forced() {
		t.Fatal("thunk forced despite the error")
	}
}

func TestLazyApplyForcesPrimitiveArguments(t *testing.T) {
	in := &Interp{Lazy: true}
	env := globalEnv()
	plus, _ := env.Lookup(Intern("+"))
	exp, _ := analyze(t, `(+ 1 2)`)
	th := Delay(exp, env)
	v, err := in.Apply(plus, []Any{th, num(4)})
	if err != nil {
		t.Fatal(err)
	}
	expectNumber(t, v, 7)
	if !th.Forced() {
		t.Error("argument thunk was not memoized")
	}

	bad, _ := analyze(t, `undefined-variable`)
	if _, err := in.Apply(plus, []Any{Delay(bad, env)}); !errors.Is(err, ErrUnboundVariable) {
		t.Fatalf("got %v, want UnboundVariable", err)
	}
}
