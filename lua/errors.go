package lua

import "fmt"

// ErrorKind classifies a *RuntimeError so callers (a protected call, a
// typed retry) can branch on the failure shape without matching error
// text.
type ErrorKind uint8

const (
	KindRuntime ErrorKind = iota
	KindType
	KindArgument
	KindProtectedMetatable
	KindLoop
)

// Frame is one entry of a *RuntimeError's traceback. luacore itself
// never populates more than an empty Traceback — a hosting bytecode
// interpreter appends frames as the error propagates up its call stack,
// one line per call site, as it unwinds.
type Frame struct {
	Name string
	Line int
}

// RuntimeError is the error type raised by the operator surface,
// metamethod dispatch, argument checks and the trampoline. The raw table
// operations (RawSet, Insert, Remove, Table.Concat, Sort) and
// ConcatBuffer do not use it: they return plain errors built with
// fmt.Errorf. Value, when not Nil, is the arbitrary Lua value a script
// passed to `error()`; everything raised internally (arithmetic,
// indexing, argument checks) carries a string Value whose text matches
// reference Lua 5.2's wording exactly, since hosting code and tests match
// against it.
type RuntimeError struct {
	Kind      ErrorKind
	Value     Value
	Traceback []Frame
	msg       string
}

func (e *RuntimeError) Error() string {
	return e.msg
}

func newError(kind ErrorKind, msg string) *RuntimeError {
	return &RuntimeError{Kind: kind, Value: Str(msg), msg: msg}
}

// ValueError wraps an arbitrary Lua value raised by `error(v)`, without
// forcing it through string conversion the way a plain message would.
func ValueError(v Value) *RuntimeError {
	msg := v.String()
	if v.IsString() {
		msg = v.s
	}
	return &RuntimeError{Kind: KindRuntime, Value: v, msg: msg}
}

func errArithmeticUnary(op, t string) *RuntimeError {
	return newError(KindType, fmt.Sprintf("attempt to perform arithmetic %s on %s", op, t))
}

func errArithmetic(op, ta, tb string) *RuntimeError {
	return newError(KindType, fmt.Sprintf("attempt to perform arithmetic %s on %s and %s", op, ta, tb))
}

func errCompare(ta, tb string) *RuntimeError {
	if ta == tb {
		return newError(KindType, fmt.Sprintf("attempt to compare two %s values", ta))
	}
	return newError(KindType, fmt.Sprintf("attempt to compare %s with %s", ta, tb))
}

func errConcat(ta, tb string) *RuntimeError {
	return newError(KindType, fmt.Sprintf("attempt to concatenate %s and %s", ta, tb))
}

func errIndex(t string, key Value) *RuntimeError {
	if key.IsString() {
		return newError(KindType, fmt.Sprintf("attempt to index a %s value with key '%s'", t, key.s))
	}
	return newError(KindType, fmt.Sprintf("attempt to index a %s value", t))
}

func errLen(t string) *RuntimeError {
	return newError(KindType, fmt.Sprintf("attempt to get length of a %s value", t))
}

func errCall(t string) *RuntimeError {
	return newError(KindType, fmt.Sprintf("attempt to call a %s value", t))
}

func errArgument(i int, expected, got string) *RuntimeError {
	return newError(KindArgument, fmt.Sprintf("bad argument #%d (%s expected, got %s)", i, expected, got))
}

func errLoop(what string) *RuntimeError {
	return newError(KindLoop, fmt.Sprintf("loop in %s", what))
}

func errProtectedMetatable() *RuntimeError {
	return newError(KindProtectedMetatable, "cannot change a protected metatable")
}
