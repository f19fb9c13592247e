package lua

const maxTagLoop = 100

// metatableOf returns v's metatable: the per-instance one for a table
// or userdata, or the per-type slot on ctx for everything else. ctx may
// be nil, in which case primitive values simply have no metatable.
func metatableOf(ctx *Context, v Value) *Table {
	switch v.kind {
	case KindTable:
		return v.Table().Metatable()
	case KindUserdata:
		return v.Userdata().Metatable()
	default:
		if ctx == nil {
			return nil
		}
		return ctx.GetTypeMetatable(v.kind)
	}
}

// metatag looks up tag in v's metatable, returning Nil if v has no
// metatable or the metatable has no such field.
func metatag(ctx *Context, v Value, tag string) Value {
	mt := metatableOf(ctx, v)
	if mt == nil {
		return Nil
	}
	return mt.RawGet(Str(tag))
}

// Index implements `t[k]` including the `__index` chain: a raw lookup
// first, then — if that misses and t has a metatable — either a
// further index through a table `__index`, or a call through a
// function one. The chain is bounded at maxTagLoop steps to match
// reference Lua's own loop-detection behaviour.
func Index(ctx *Context, t, k Value) (Value, error) {
	cur := t
	for i := 0; i < maxTagLoop; i++ {
		if cur.kind == KindTable {
			if v := cur.Table().RawGet(k); !v.IsNil() {
				return v, nil
			}
			h := metatag(ctx, cur, "__index")
			if h.IsNil() {
				return Nil, nil
			}
			if h.IsFunction() {
				res, err := NewCall(h.Function(), NewVarargs(cur, k)).Eval(ctx)
				if err != nil {
					return Nil, err
				}
				return res.Arg1(), nil
			}
			cur = h
			continue
		}

		h := metatag(ctx, cur, "__index")
		if h.IsNil() {
			return Nil, errIndex(cur.TypeName(), k)
		}
		if h.IsFunction() {
			res, err := NewCall(h.Function(), NewVarargs(cur, k)).Eval(ctx)
			if err != nil {
				return Nil, err
			}
			return res.Arg1(), nil
		}
		cur = h
	}
	return Nil, errLoop("gettable")
}

// NewIndex implements `t[k] = v` including the `__newindex` chain,
// mirroring Index: a raw-present key always assigns directly; a miss on
// a table consults `__newindex`, which may itself be a table to
// continue the chain through or a function to call instead of
// assigning.
func NewIndex(ctx *Context, t, k, v Value) error {
	cur := t
	for i := 0; i < maxTagLoop; i++ {
		if cur.kind == KindTable {
			tbl := cur.Table()
			if !tbl.RawGet(k).IsNil() || tbl.Metatable() == nil {
				return tbl.RawSet(k, v)
			}
			h := metatag(ctx, cur, "__newindex")
			if h.IsNil() {
				return tbl.RawSet(k, v)
			}
			if h.IsFunction() {
				_, err := NewCall(h.Function(), NewVarargs(cur, k, v)).Eval(ctx)
				return err
			}
			cur = h
			continue
		}

		h := metatag(ctx, cur, "__newindex")
		if h.IsNil() {
			return errIndex(cur.TypeName(), k)
		}
		if h.IsFunction() {
			_, err := NewCall(h.Function(), NewVarargs(cur, k, v)).Eval(ctx)
			return err
		}
		cur = h
	}
	return errLoop("settable")
}

var arithTags = map[string]string{
	"+": "__add",
	"-": "__sub",
	"*": "__mul",
	"/": "__div",
	"%": "__mod",
	"^": "__pow",
}

var arithKernel = map[string]func(a, b Value) (Value, bool){
	"+": Add,
	"-": Sub,
	"*": Mul,
	"/": Div,
	"%": Mod,
	"^": Pow,
}

// Arith dispatches a binary arithmetic operator, trying the raw
// numeric operation first and falling back to a's `__<op>` metamethod,
// then b's, in that order.
func Arith(ctx *Context, op string, a, b Value) (Value, error) {
	raw, ok := arithKernel[op]
	if !ok {
		return Nil, errArithmetic(op, a.TypeName(), b.TypeName())
	}
	if v, ok := raw(a, b); ok {
		return v, nil
	}

	tag := arithTags[op]
	if h := metatag(ctx, a, tag); !h.IsNil() {
		return callBinaryMeta(ctx, h, a, b)
	}
	if h := metatag(ctx, b, tag); !h.IsNil() {
		return callBinaryMeta(ctx, h, a, b)
	}
	if !a.IsNumber() && !(a.IsString() && isNumericString(a)) {
		return Nil, errArithmetic(op, a.TypeName(), b.TypeName())
	}
	return Nil, errArithmetic(op, b.TypeName(), a.TypeName())
}

// UnaryMinus dispatches unary `-`, trying Unm first and falling back to
// `__unm`.
func UnaryMinus(ctx *Context, a Value) (Value, error) {
	if v, ok := Unm(a); ok {
		return v, nil
	}
	if h := metatag(ctx, a, "__unm"); !h.IsNil() {
		return callUnaryMeta(ctx, h, a)
	}
	return Nil, errArithmeticUnary("-", a.TypeName())
}

func isNumericString(v Value) bool {
	_, ok := parseNumber(v.s)
	return ok
}

func callBinaryMeta(ctx *Context, h, a, b Value) (Value, error) {
	fn := h.Function()
	if fn == nil {
		return Nil, errCall(h.TypeName())
	}
	res, err := NewCall(fn, NewVarargs(a, b)).Eval(ctx)
	if err != nil {
		return Nil, err
	}
	return res.Arg1(), nil
}

func callUnaryMeta(ctx *Context, h, a Value) (Value, error) {
	fn := h.Function()
	if fn == nil {
		return Nil, errCall(h.TypeName())
	}
	res, err := NewCall(fn, NewVarargs(a)).Eval(ctx)
	if err != nil {
		return Nil, err
	}
	return res.Arg1(), nil
}

// Concat implements `..`: raw string/number concatenation first, then
// `__concat` on a, then on b.
func Concat(ctx *Context, a, b Value) (Value, error) {
	sa, oka := concatString(a)
	sb, okb := concatString(b)
	if oka && okb {
		return Str(sa + sb), nil
	}
	if h := metatag(ctx, a, "__concat"); !h.IsNil() {
		return callBinaryMeta(ctx, h, a, b)
	}
	if h := metatag(ctx, b, "__concat"); !h.IsNil() {
		return callBinaryMeta(ctx, h, a, b)
	}
	if !oka {
		return Nil, errConcat(a.TypeName(), b.TypeName())
	}
	return Nil, errConcat(b.TypeName(), a.TypeName())
}

// Len implements `#v`: string byte length and table border by default,
// overridden by `__len` when present.
func Len(ctx *Context, v Value) (Value, error) {
	if h := metatag(ctx, v, "__len"); !h.IsNil() {
		return callUnaryMeta(ctx, h, v)
	}
	switch v.kind {
	case KindString:
		return Int(int32(len(v.s))), nil
	case KindTable:
		return Int(int32(v.Table().Len())), nil
	default:
		return Nil, errLen(v.TypeName())
	}
}

// Eq implements `==` including `__eq`: raw equality first; if both
// operands are tables or both are userdata, raw-unequal, and both
// operands carry the same `__eq` handler (identical function object, not
// merely both non-nil), that function is consulted as the tie-breaker.
// A `__eq` present on only one side, or present on both but pointing at
// different functions, never gets called — matching reference Lua,
// which requires the two metamethods to agree before consulting either.
func Eq(ctx *Context, a, b Value) (bool, error) {
	if rawEqual(a, b) {
		return true, nil
	}
	if a.kind != b.kind {
		return false, nil
	}
	if a.kind != KindTable && a.kind != KindUserdata {
		return false, nil
	}
	ha := metatag(ctx, a, "__eq")
	hb := metatag(ctx, b, "__eq")
	if ha.IsNil() || hb.IsNil() || !rawEqual(ha, hb) {
		return false, nil
	}
	v, err := callBinaryMeta(ctx, ha, a, b)
	if err != nil {
		return false, err
	}
	return v.ToBoolean(), nil
}

// Lt implements `<`: string/string compares lexicographically, number/
// number numerically, everything else falls to `__lt`.
func Lt(ctx *Context, a, b Value) (bool, error) {
	if a.IsNumber() && b.IsNumber() {
		return a.ToFloat() < b.ToFloat(), nil
	}
	if a.IsString() && b.IsString() {
		return compareStrings("<", a.s, b.s), nil
	}
	if h := metatag(ctx, a, "__lt"); !h.IsNil() {
		v, err := callBinaryMeta(ctx, h, a, b)
		return v.ToBoolean(), err
	}
	if h := metatag(ctx, b, "__lt"); !h.IsNil() {
		v, err := callBinaryMeta(ctx, h, a, b)
		return v.ToBoolean(), err
	}
	return false, errCompare(a.TypeName(), b.TypeName())
}

// Le implements `<=`. If neither operand has `__le`, it falls back to
// the negated, operand-swapped result of `__lt` — `not (b < a)` —
// exactly as reference Lua 5.2 does, since Lua 5.2 doesn't require
// `__le` to be defined separately from `__lt`.
func Le(ctx *Context, a, b Value) (bool, error) {
	if a.IsNumber() && b.IsNumber() {
		return a.ToFloat() <= b.ToFloat(), nil
	}
	if a.IsString() && b.IsString() {
		return compareStrings("<=", a.s, b.s), nil
	}
	if h := metatag(ctx, a, "__le"); !h.IsNil() {
		v, err := callBinaryMeta(ctx, h, a, b)
		return v.ToBoolean(), err
	}
	if h := metatag(ctx, b, "__le"); !h.IsNil() {
		v, err := callBinaryMeta(ctx, h, a, b)
		return v.ToBoolean(), err
	}
	if h := metatag(ctx, a, "__lt"); !h.IsNil() {
		v, err := callBinaryMeta(ctx, h, b, a)
		if err != nil {
			return false, err
		}
		return !v.ToBoolean(), nil
	}
	if h := metatag(ctx, b, "__lt"); !h.IsNil() {
		v, err := callBinaryMeta(ctx, h, b, a)
		if err != nil {
			return false, err
		}
		return !v.ToBoolean(), nil
	}
	return false, errCompare(a.TypeName(), b.TypeName())
}

// Call implements function invocation including `__call`: a function
// value is invoked directly; anything else with a `__call` metamethod
// is invoked as that function with v prepended to args.
func Call(ctx *Context, v Value, args Varargs) (Varargs, error) {
	return NewCall2(ctx, v, args).Eval(ctx)
}

// NewCall2 resolves v (possibly via __call) into a *tailCall ready to
// evaluate, without evaluating it yet — used by the tail-call surface
// so a `return f(...)` in tail position can defer instead of recursing.
func NewCall2(ctx *Context, v Value, args Varargs) *tailCall {
	if v.IsFunction() {
		return NewCall(v.Function(), args)
	}
	h := metatag(ctx, v, "__call")
	if h.IsFunction() {
		return NewCall(h.Function(), NewVarargs(append([]Value{v}, args.Slice()...)...))
	}
	return NewCall(errCallFunction(v), args)
}

// errCallFunction returns a Function whose Run always fails with the
// "attempt to call" error for v's type, so that an unresolvable call
// target can still flow through the same *tailCall/Eval path as a real one.
func errCallFunction(v Value) *Function {
	return NewFunction("", func(ctx *Context, args Varargs) (Result, error) {
		return Result{}, errCall(v.TypeName())
	})
}

// ToString implements `tostring`, consulting `__tostring` before
// falling back to Value.String's default rendering.
func ToString(ctx *Context, v Value) (string, error) {
	if h := metatag(ctx, v, "__tostring"); !h.IsNil() {
		res, err := callUnaryMeta(ctx, h, v)
		if err != nil {
			return "", err
		}
		return res.String(), nil
	}
	return v.String(), nil
}
