package lua

import "math"

// coerceNumber returns v itself if it already holds a number, or the
// number obtained by parsing it if it holds a string that parses as a
// Lua number (decimal integer or float, per Lua 5.2's string-to-number
// rules — see parseNumber in stringkernel.go). ok is false for anything
// else, which tells the caller (Arith and UnaryMinus in metatable.go) to
// fall through to metamethod dispatch instead of computing directly.
func coerceNumber(v Value) (Value, bool) {
	switch v.kind {
	case KindInt, KindFloat:
		return v, true
	case KindString:
		return parseNumber(v.s)
	default:
		return Nil, false
	}
}

// Add implements Lua's `+`. Integer operands that do not overflow the
// 32-bit range stay integers; everything else promotes to double. ok is
// false when either operand is not numeric or a numeric string.
func Add(a, b Value) (Value, bool) {
	na, ok := coerceNumber(a)
	if !ok {
		return Nil, false
	}
	nb, ok := coerceNumber(b)
	if !ok {
		return Nil, false
	}
	if na.kind == KindInt && nb.kind == KindInt {
		sum := int64(na.i) + int64(nb.i)
		if i := int32(sum); int64(i) == sum {
			return Int(i), true
		}
		return Float(float64(sum)), true
	}
	return Float(na.ToFloat() + nb.ToFloat()), true
}

// Sub implements Lua's binary `-`.
func Sub(a, b Value) (Value, bool) {
	na, ok := coerceNumber(a)
	if !ok {
		return Nil, false
	}
	nb, ok := coerceNumber(b)
	if !ok {
		return Nil, false
	}
	if na.kind == KindInt && nb.kind == KindInt {
		diff := int64(na.i) - int64(nb.i)
		if i := int32(diff); int64(i) == diff {
			return Int(i), true
		}
		return Float(float64(diff)), true
	}
	return Float(na.ToFloat() - nb.ToFloat()), true
}

// Mul implements Lua's `*`.
func Mul(a, b Value) (Value, bool) {
	na, ok := coerceNumber(a)
	if !ok {
		return Nil, false
	}
	nb, ok := coerceNumber(b)
	if !ok {
		return Nil, false
	}
	if na.kind == KindInt && nb.kind == KindInt {
		prod := int64(na.i) * int64(nb.i)
		if i := int32(prod); int64(i) == prod {
			return Int(i), true
		}
		return Float(float64(prod)), true
	}
	return Float(na.ToFloat() * nb.ToFloat()), true
}

// Div implements Lua's `/`, which is always floating-point division:
// x/0 is +Inf for x>0, -Inf for x<0, and NaN for x=0, which is exactly
// what IEEE-754 float64 division already does, so no special casing is
// needed here.
func Div(a, b Value) (Value, bool) {
	na, ok := coerceNumber(a)
	if !ok {
		return Nil, false
	}
	nb, ok := coerceNumber(b)
	if !ok {
		return Nil, false
	}
	return Float(na.ToFloat() / nb.ToFloat()), true
}

// Mod implements Lua's `%`, defined as the reference implementation
// does (luai_nummod): fmod(x,y), adjusted by y when the remainder's
// sign disagrees with the divisor's, so that the result's sign always
// matches y. This reproduces x − y*floor(x/y) for finite operands while
// also giving the correct ±Inf/NaN behaviour when y is zero or
// infinite, which the naive floor formula gets wrong.
func Mod(a, b Value) (Value, bool) {
	na, ok := coerceNumber(a)
	if !ok {
		return Nil, false
	}
	nb, ok := coerceNumber(b)
	if !ok {
		return Nil, false
	}
	x, y := na.ToFloat(), nb.ToFloat()
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return Float(m), true
}

// Pow implements Lua's `^`.
func Pow(a, b Value) (Value, bool) {
	na, ok := coerceNumber(a)
	if !ok {
		return Nil, false
	}
	nb, ok := coerceNumber(b)
	if !ok {
		return Nil, false
	}
	return Float(math.Pow(na.ToFloat(), nb.ToFloat())), true
}

// Unm implements Lua's unary `-`. Negating math.MinInt32 would overflow
// the 32-bit integer range, so that one case promotes to double; every
// other integer negates in place.
func Unm(a Value) (Value, bool) {
	na, ok := coerceNumber(a)
	if !ok {
		return Nil, false
	}
	if na.kind == KindInt {
		if na.i == math.MinInt32 {
			return Float(-float64(na.i)), true
		}
		return Int(-na.i), true
	}
	return Float(-na.f), true
}
