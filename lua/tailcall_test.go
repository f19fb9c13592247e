package lua

import "testing"

func TestCallEvalReturnsDirectResult(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("id", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(args), nil
	})
	res, err := NewCall(fn, NewVarargs(Int(7))).Eval(ctx)
	if err != nil || res.Arg1().ToInt() != 7 {
		t.Fatalf("Eval = %v, err=%v", res, err)
	}
}

func TestCallEvalFollowsTailChainWithoutGrowingStack(t *testing.T) {
	ctx := NewContext()
	var countdown *Function
	countdown = NewFunction("countdown", func(ctx *Context, args Varargs) (Result, error) {
		n := args.Arg1().ToInt()
		if n <= 0 {
			return DoneResult(NewVarargs(Int(n))), nil
		}
		return TailResult(countdown, NewVarargs(Int(n-1))), nil
	})
	res, err := NewCall(countdown, NewVarargs(Int(100000))).Eval(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Arg1().ToInt() != 0 {
		t.Errorf("countdown result = %v, want 0", res.Arg1())
	}
}

func TestCallEvalCachesResult(t *testing.T) {
	ctx := NewContext()
	calls := 0
	fn := NewFunction("counted", func(ctx *Context, args Varargs) (Result, error) {
		calls++
		return DoneResult(NewVarargs(Int(int32(calls)))), nil
	})
	call := NewCall(fn, Varargs{})
	first, err := call.Eval(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := call.Eval(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first.Arg1().ToInt() != second.Arg1().ToInt() {
		t.Error("Eval should cache its result, not re-invoke the function")
	}
	if calls != 1 {
		t.Errorf("function ran %d times, want 1", calls)
	}
}

func TestCallEvalNilFunctionErrors(t *testing.T) {
	ctx := NewContext()
	call := NewCall(nil, Varargs{})
	if _, err := call.Eval(ctx); err == nil {
		t.Error("evaluating a nil-function Call should error")
	}
}

func TestCallEvalPropagatesRunError(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("boom", func(ctx *Context, args Varargs) (Result, error) {
		return Result{}, errCall("boom")
	})
	if _, err := NewCall(fn, Varargs{}).Eval(ctx); err == nil {
		t.Error("an error from Run should propagate out of Eval")
	}
}

func TestResultIsTailCall(t *testing.T) {
	fn := NewFunction("f", nil)
	if !TailResult(fn, Varargs{}).IsTailCall() {
		t.Error("TailResult should report IsTailCall() == true")
	}
	if DoneResult(Varargs{}).IsTailCall() {
		t.Error("DoneResult should report IsTailCall() == false")
	}
}
