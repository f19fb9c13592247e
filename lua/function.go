package lua

// Function is a callable Lua value. Run is the native Go body; a
// hosting bytecode interpreter installs one Run per compiled closure,
// and the standard library installs one per builtin. Run returns a
// Result rather than a bare Varargs so that a tail call can be
// expressed as "call this next" instead of "here is the final answer",
// letting tailCall.Eval trampoline through an arbitrary chain of tail calls
// without growing the Go call stack.
type Function struct {
	Run  func(ctx *Context, args Varargs) (Result, error)
	Name string
}

func (*Function) luaRef() {}

// FunctionValue wraps f as a Value.
func FunctionValue(f *Function) Value {
	return fromRef(KindFunction, f)
}

// NewFunction builds a named Function around a native body.
func NewFunction(name string, run func(ctx *Context, args Varargs) (Result, error)) *Function {
	return &Function{Run: run, Name: name}
}
