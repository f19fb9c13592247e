package lua

import "strings"

// Varargs is an immutable, 1-based list of values: a vararg parameter
// binding or a multiple-return-value result. The zero Varargs has no
// elements, so it can stand in directly for an empty return.
type Varargs struct {
	values []Value
}

// NewVarargs collects vs into a Varargs.
func NewVarargs(vs ...Value) Varargs {
	return Varargs{values: vs}
}

// Arg returns the i-th value, 1-based, or Nil if i is out of range.
func (v Varargs) Arg(i int) Value {
	if i < 1 || i > len(v.values) {
		return Nil
	}
	return v.values[i-1]
}

// Arg1 returns the first value, or Nil if there are none.
func (v Varargs) Arg1() Value {
	return v.Arg(1)
}

// N reports how many values v holds.
func (v Varargs) N() int {
	return len(v.values)
}

// Slice returns v's values as a plain slice. The caller must not mutate
// the result; Varargs is meant to be immutable.
func (v Varargs) Slice() []Value {
	return v.values
}

// Sub returns the values from start (1-based) to the end, the way a
// vararg expression's tail is taken when forwarding `...`. A start past
// the end returns an empty Varargs and a start below 1 is treated as 1;
// neither is an error.
func (v Varargs) Sub(start int) Varargs {
	if start < 1 {
		start = 1
	}
	if start > len(v.values) {
		return Varargs{}
	}
	return Varargs{values: v.values[start-1:]}
}

// String renders v the way the reference runtime's debug tostring of a
// varargs list does: "(v1,v2,...)".
func (v Varargs) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, val := range v.values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(val.String())
	}
	b.WriteByte(')')
	return b.String()
}
