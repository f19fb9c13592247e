package lua

// This file rounds out the operator surface with the handful of
// operators that compose directly from metatable.go's primitives
// rather than needing new dispatch logic of their own: `~=`, `>`,
// `>=`, `and`, `or`, and `not`. Everything else (arithmetic, `..`,
// `#`, `==`, `<`, `<=`, indexing, calls, tostring) is exported
// directly from number.go, stringkernel.go, and metatable.go.

// Neq implements `~=`.
func Neq(ctx *Context, a, b Value) (bool, error) {
	r, err := Eq(ctx, a, b)
	return !r, err
}

// Gt implements `>` as the operand-swapped form of `<`.
func Gt(ctx *Context, a, b Value) (bool, error) {
	return Lt(ctx, b, a)
}

// Ge implements `>=` as the operand-swapped form of `<=`.
func Ge(ctx *Context, a, b Value) (bool, error) {
	return Le(ctx, b, a)
}

// And implements Lua's `and`: short-circuiting, returning an operand
// rather than a coerced boolean.
func And(a, b Value) Value {
	if !a.ToBoolean() {
		return a
	}
	return b
}

// Or implements Lua's `or`, also returning an operand rather than a
// coerced boolean.
func Or(a, b Value) Value {
	if a.ToBoolean() {
		return a
	}
	return b
}

// Not always returns a boolean, unlike And/Or.
func Not(a Value) Value {
	return Bool(!a.ToBoolean())
}
