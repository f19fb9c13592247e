package lua

// Result is what a Function's Run produces: either a finished set of
// return values, or a deferred tailCall that should be invoked next in its
// place. A Run body that is about to evaluate `return f(...)` in tail
// position returns TailResult(f, args) instead of calling f itself, so
// that a chain of tail calls is flattened into a loop (tailCall.Eval)
// instead of recursing through Go's stack one frame per Lua call.
type Result struct {
	values Varargs
	tail   *tailCall
}

// DoneResult wraps a finished Varargs as a Result.
func DoneResult(values Varargs) Result {
	return Result{values: values}
}

// TailResult defers to fn(args) as the next step of the trampoline.
func TailResult(fn *Function, args Varargs) Result {
	return Result{tail: &tailCall{fn: fn, args: args}}
}

// tailCall pairs a Function with the arguments it will be invoked with.
// Its zero value is never valid; construct one with NewCall or via
// TailResult.
type tailCall struct {
	fn     *Function
	args   Varargs
	result *Varargs
}

// NewCall pairs fn with args for later evaluation.
func NewCall(fn *Function, args Varargs) *tailCall {
	return &tailCall{fn: fn, args: args}
}

// Eval runs the call, adopting any further tail calls the callee
// returns, until a Function finally returns a real Result instead of
// deferring again. The result is cached: calling Eval more than once on
// the same *tailCall returns the same Varargs without re-invoking anything.
func (c *tailCall) Eval(ctx *Context) (Varargs, error) {
	if c.result != nil {
		return *c.result, nil
	}
	if c.fn == nil {
		return Varargs{}, errCall("nil")
	}

	fn, args := c.fn, c.args
	for {
		res, err := fn.Run(ctx, args)
		if err != nil {
			return Varargs{}, err
		}
		if res.tail == nil {
			c.result = &res.values
			c.fn, c.args = nil, Varargs{}
			return res.values, nil
		}
		fn, args = res.tail.fn, res.tail.args
	}
}

// IsTailCall reports whether r defers to a further call rather than
// carrying a finished result.
func (r Result) IsTailCall() bool {
	return r.tail != nil
}
