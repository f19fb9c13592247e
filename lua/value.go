// Package lua implements the value model and operator semantics of a
// Lua 5.2 runtime: the tagged value universe, arithmetic/comparison/
// string/equality/length/index/call protocols, and the metatable
// dispatch that threads through all of them.
//
// The package does not contain a bytecode interpreter, a parser, or any
// standard library beyond the table operations and argument-checking
// helpers that the value model itself specifies. Those are the job of a
// hosting interpreter; this package is the substrate it is built on.
package lua

import "fmt"

// Kind identifies which of the nine Lua runtime types a Value holds.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTable
	KindFunction
	KindThread
	KindUserdata

	kindCount
)

var kindNames = [kindCount]string{
	KindNil:      "nil",
	KindBool:     "boolean",
	KindInt:      "number",
	KindFloat:    "number",
	KindString:   "string",
	KindTable:    "table",
	KindFunction: "function",
	KindThread:   "thread",
	KindUserdata: "userdata",
}

// String returns the Lua type name for k, as reported by the `type`
// operation (e.g. both KindInt and KindFloat report "number").
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "value"
}

// ref is implemented by every reference-semantics payload (*Table,
// *Function, *Coroutine, *Userdata) so Value can store them behind a
// single comparable field while still supporting identity comparison.
type ref interface {
	luaRef()
}

// Value is a tagged union over the nine Lua runtime types: nil,
// boolean, integer number, double number, string, table, function,
// thread, and userdata. It is deliberately a plain, comparable struct
// (never a pointer) so that scalars are copied by value the way Lua's
// nil/boolean/number/string values are, while aggregates (table,
// function, thread, userdata) carry a pointer in ref and are therefore
// shared and compared by identity.
type Value struct {
	kind Kind
	b    bool
	i    int32
	f    float64
	s    string
	ref  ref
}

// Nil is the singleton nil value.
var Nil = Value{kind: KindNil}

// True and False are the two boolean values.
var (
	True  = Value{kind: KindBool, b: true}
	False = Value{kind: KindBool, b: false}
)

// Bool returns the Value for b.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Int constructs an integer Value. i is taken to already fit the Lua
// integer sub-range (32-bit two's complement); widening arithmetic that
// overflows this range must promote to Float itself (see number.go).
func Int(i int32) Value {
	return Value{kind: KindInt, i: i}
}

// Float constructs a double Value without attempting to collapse it to
// an integer, even when f happens to be integral. Use ValueOf(d) at the
// boundary where a float64 first becomes Lua-visible (string-to-number
// conversion, library return values) and should collapse to Int when
// exactly representable.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// ValueOf constructs a number Value from a float64, collapsing to an
// integer Value when d is exactly representable as an int32. Ordinary
// arithmetic results are allowed to stay Float even when integral (see
// Add/Sub/Mul in number.go); ValueOf is for the few call sites where a
// raw float64 needs to become the number Lua code would actually see.
func ValueOf(d float64) Value {
	if i := int32(d); float64(i) == d {
		return Int(i)
	}
	return Float(d)
}

// Str constructs a string Value from a byte sequence. Lua strings are
// byte arrays, not Unicode text; s is stored and compared byte-for-byte.
func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

func fromRef(k Kind, r ref) Value {
	return Value{kind: k, ref: r}
}

// Type returns the runtime kind of v.
func (v Value) Type() Kind { return v.kind }

// TypeName returns one of "nil", "boolean", "number", "string", "table",
// "function", "userdata", "thread" — the name the `type()` operation and
// error messages use.
func (v Value) TypeName() string { return v.kind.String() }

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool { return v.kind == KindBool }

// IsNumber reports whether v holds an integer or a double.
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

// IsInt reports whether v holds an integer sub-variant specifically.
func (v Value) IsInt() bool { return v.kind == KindInt }

// IsFloat reports whether v holds a double sub-variant specifically.
func (v Value) IsFloat() bool { return v.kind == KindFloat }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.kind == KindString }

// IsTable reports whether v holds a table.
func (v Value) IsTable() bool { return v.kind == KindTable }

// IsFunction reports whether v holds a function.
func (v Value) IsFunction() bool { return v.kind == KindFunction }

// IsThread reports whether v holds a coroutine.
func (v Value) IsThread() bool { return v.kind == KindThread }

// IsUserdata reports whether v holds a userdata.
func (v Value) IsUserdata() bool { return v.kind == KindUserdata }

// ToBoolean implements Lua truthiness: everything is true except nil and
// the boolean false. This method never errors.
func (v Value) ToBoolean() bool {
	return !(v.kind == KindNil || (v.kind == KindBool && !v.b))
}

// ToFloat converts v to a float64. It never signals an error: non-
// numeric, non-numeric-string values convert to 0, leaving it to the
// caller (typically the operator surface) to have already confirmed v
// is convertible before relying on the result.
func (v Value) ToFloat() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	case KindString:
		if n, ok := parseNumber(v.s); ok {
			return n.ToFloat()
		}
	}
	return 0
}

// ToInt converts v to an int32 the way Lua's number-to-integer narrowing
// does: truncate toward zero through an intermediate 64-bit value, not
// IEEE rounding. Non-numeric values convert to 0.
func (v Value) ToInt() int32 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int32(int64(v.f))
	case KindString:
		if n, ok := parseNumber(v.s); ok {
			return n.ToInt()
		}
	}
	return 0
}

// Table returns the table payload of v, or nil if v does not hold a
// table.
func (v Value) Table() *Table {
	if v.kind == KindTable {
		t, _ := v.ref.(*Table)
		return t
	}
	return nil
}

// Function returns the function payload of v, or nil if v does not hold
// a function.
func (v Value) Function() *Function {
	if v.kind == KindFunction {
		f, _ := v.ref.(*Function)
		return f
	}
	return nil
}

// Thread returns the coroutine payload of v, or nil if v does not hold a
// thread.
func (v Value) Thread() *Coroutine {
	if v.kind == KindThread {
		c, _ := v.ref.(*Coroutine)
		return c
	}
	return nil
}

// Userdata returns the userdata payload of v, or nil if v does not hold
// userdata.
func (v Value) Userdata() *Userdata {
	if v.kind == KindUserdata {
		u, _ := v.ref.(*Userdata)
		return u
	}
	return nil
}

// String renders a debug representation of v. Table, function, thread,
// and userdata values render as a type-prefixed address label the way
// reference Lua's default tostring does (e.g. "table: 0x...") unless a
// richer conversion is requested through the operator surface's
// ToString, which also consults __tostring.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.s
	case KindTable, KindFunction, KindThread, KindUserdata:
		return fmt.Sprintf("%s: %p", v.kind, v.ref)
	}
	return "value"
}

// rawEqual implements equality without consulting any metamethod:
// same-tag values compare by value (numbers compare mathematically
// across the Int/Float split, strings by byte sequence, reference types
// by identity); Int and Float with equal mathematical value are equal
// across tags; every other cross-tag comparison is false.
func rawEqual(a, b Value) bool {
	if a.kind == b.kind {
		switch a.kind {
		case KindNil:
			return true
		case KindBool:
			return a.b == b.b
		case KindInt:
			return a.i == b.i
		case KindFloat:
			return a.f == b.f
		case KindString:
			return a.s == b.s
		default:
			return a.ref == b.ref
		}
	}
	if a.IsNumber() && b.IsNumber() {
		return a.ToFloat() == b.ToFloat()
	}
	return false
}
