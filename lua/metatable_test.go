package lua

import "testing"

func TestIndexRawHit(t *testing.T) {
	ctx := NewContext()
	tbl := NewTable()
	if err := tbl.RawSet(Str("k"), Str("v")); err != nil {
		t.Fatal(err)
	}
	v, err := Index(ctx, TableValue(tbl), Str("k"))
	if err != nil {
		t.Fatal(err)
	}
	if v.s != "v" {
		t.Errorf("Index = %q, want %q", v.s, "v")
	}
}

func TestIndexFallsThroughTableIndexChain(t *testing.T) {
	ctx := NewContext()
	base := NewTable()
	if err := base.RawSet(Str("k"), Str("base value")); err != nil {
		t.Fatal(err)
	}
	mt := NewTable()
	if err := mt.RawSet(Str("__index"), TableValue(base)); err != nil {
		t.Fatal(err)
	}
	tbl := NewTable()
	if err := tbl.SetMetatable(mt); err != nil {
		t.Fatal(err)
	}
	v, err := Index(ctx, TableValue(tbl), Str("k"))
	if err != nil {
		t.Fatal(err)
	}
	if v.s != "base value" {
		t.Errorf("Index via __index chain = %q, want %q", v.s, "base value")
	}
}

func TestIndexFunctionIndex(t *testing.T) {
	ctx := NewContext()
	called := false
	fn := NewFunction("__index", func(ctx *Context, args Varargs) (Result, error) {
		called = true
		return DoneResult(NewVarargs(Str("computed"))), nil
	})
	mt := NewTable()
	if err := mt.RawSet(Str("__index"), FunctionValue(fn)); err != nil {
		t.Fatal(err)
	}
	tbl := NewTable()
	if err := tbl.SetMetatable(mt); err != nil {
		t.Fatal(err)
	}
	v, err := Index(ctx, TableValue(tbl), Str("missing"))
	if err != nil {
		t.Fatal(err)
	}
	if !called || v.s != "computed" {
		t.Errorf("Index via function __index = %q, called=%v", v.s, called)
	}
}

func TestIndexOnNonTableWithoutMetatableErrors(t *testing.T) {
	ctx := NewContext()
	if _, err := Index(ctx, Int(5), Str("x")); err == nil {
		t.Error("indexing a number with no metatable should error")
	}
}

func TestIndexDetectsLoop(t *testing.T) {
	ctx := NewContext()
	a := NewTable()
	b := NewTable()
	mtA := NewTable()
	mtB := NewTable()
	if err := mtA.RawSet(Str("__index"), TableValue(b)); err != nil {
		t.Fatal(err)
	}
	if err := mtB.RawSet(Str("__index"), TableValue(a)); err != nil {
		t.Fatal(err)
	}
	if err := a.SetMetatable(mtA); err != nil {
		t.Fatal(err)
	}
	if err := b.SetMetatable(mtB); err != nil {
		t.Fatal(err)
	}
	_, err := Index(ctx, TableValue(a), Str("never"))
	if err == nil {
		t.Fatal("cyclic __index chain should error")
	}
}

func TestNewIndexRawAssignsWhenNoMetatable(t *testing.T) {
	ctx := NewContext()
	tbl := NewTable()
	if err := NewIndex(ctx, TableValue(tbl), Str("k"), Str("v")); err != nil {
		t.Fatal(err)
	}
	if got := tbl.RawGet(Str("k")).s; got != "v" {
		t.Errorf("t.k = %q, want %q", got, "v")
	}
}

func TestNewIndexFunctionNewindexInterceptsAssignment(t *testing.T) {
	ctx := NewContext()
	var gotKey, gotValue Value
	fn := NewFunction("__newindex", func(ctx *Context, args Varargs) (Result, error) {
		gotKey, gotValue = args.Arg(2), args.Arg(3)
		return DoneResult(Varargs{}), nil
	})
	mt := NewTable()
	if err := mt.RawSet(Str("__newindex"), FunctionValue(fn)); err != nil {
		t.Fatal(err)
	}
	tbl := NewTable()
	if err := tbl.SetMetatable(mt); err != nil {
		t.Fatal(err)
	}
	if err := NewIndex(ctx, TableValue(tbl), Str("k"), Str("v")); err != nil {
		t.Fatal(err)
	}
	if !tbl.RawGet(Str("k")).IsNil() {
		t.Error("a function __newindex must intercept, not assign directly")
	}
	if gotKey.s != "k" || gotValue.s != "v" {
		t.Errorf("__newindex saw key=%v value=%v", gotKey, gotValue)
	}
}

func TestArithFallsBackToMetamethod(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("__add", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(Str("added"))), nil
	})
	mt := NewTable()
	if err := mt.RawSet(Str("__add"), FunctionValue(fn)); err != nil {
		t.Fatal(err)
	}
	tbl := NewTable()
	if err := tbl.SetMetatable(mt); err != nil {
		t.Fatal(err)
	}
	v, err := Arith(ctx, "+", TableValue(tbl), Int(1))
	if err != nil {
		t.Fatal(err)
	}
	if v.s != "added" {
		t.Errorf("Arith via __add = %v, want Str(\"added\")", v)
	}
}

func TestArithUnknownOpErrorsInsteadOfPanicking(t *testing.T) {
	ctx := NewContext()
	if _, err := Arith(ctx, "??", Int(1), Int(2)); err == nil {
		t.Error("an unrecognized operator should error, not panic")
	}
}

func TestArithNumbersSkipsMetamethod(t *testing.T) {
	ctx := NewContext()
	v, err := Arith(ctx, "+", Int(2), Int(3))
	if err != nil || v.ToInt() != 5 {
		t.Errorf("Arith(+,2,3) = %v, err=%v", v, err)
	}
}

func TestConcatFallsBackToMetamethod(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("__concat", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(Str("joined"))), nil
	})
	mt := NewTable()
	if err := mt.RawSet(Str("__concat"), FunctionValue(fn)); err != nil {
		t.Fatal(err)
	}
	tbl := NewTable()
	if err := tbl.SetMetatable(mt); err != nil {
		t.Fatal(err)
	}
	v, err := Concat(ctx, TableValue(tbl), Str("x"))
	if err != nil || v.s != "joined" {
		t.Errorf("Concat via __concat = %v, err=%v", v, err)
	}
}

func TestLenOfStringAndTable(t *testing.T) {
	ctx := NewContext()
	v, err := Len(ctx, Str("hello"))
	if err != nil || v.ToInt() != 5 {
		t.Errorf("Len(\"hello\") = %v, err=%v", v, err)
	}
	tbl := NewTable()
	tbl.RawSet(Int(1), Int(1))
	tbl.RawSet(Int(2), Int(1))
	v, err = Len(ctx, TableValue(tbl))
	if err != nil || v.ToInt() != 2 {
		t.Errorf("Len(table) = %v, err=%v", v, err)
	}
}

func TestLenMetamethodOverridesDefault(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("__len", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(Int(99))), nil
	})
	mt := NewTable()
	mt.RawSet(Str("__len"), FunctionValue(fn))
	tbl := NewTable()
	tbl.SetMetatable(mt)
	v, err := Len(ctx, TableValue(tbl))
	if err != nil || v.ToInt() != 99 {
		t.Errorf("Len via __len = %v, err=%v", v, err)
	}
}

func TestEqTablesUseEqMetamethodOnlyWhenRawUnequal(t *testing.T) {
	ctx := NewContext()
	calls := 0
	fn := NewFunction("__eq", func(ctx *Context, args Varargs) (Result, error) {
		calls++
		return DoneResult(NewVarargs(True)), nil
	})
	mt := NewTable()
	mt.RawSet(Str("__eq"), FunctionValue(fn))
	a, b := NewTable(), NewTable()
	a.SetMetatable(mt)
	b.SetMetatable(mt)

	eq, err := Eq(ctx, TableValue(a), TableValue(a))
	if err != nil || !eq {
		t.Fatalf("a == a should be true without consulting __eq")
	}
	if calls != 0 {
		t.Errorf("__eq should not be called when raw-equal, calls=%d", calls)
	}

	eq, err = Eq(ctx, TableValue(a), TableValue(b))
	if err != nil || !eq {
		t.Errorf("a == b via __eq = %v, err=%v", eq, err)
	}
	if calls != 1 {
		t.Errorf("__eq should be called exactly once, calls=%d", calls)
	}
}

func TestEqSkipsMetamethodWhenOnlyOneSideHasIt(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("__eq", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(True)), nil
	})
	mt := NewTable()
	mt.RawSet(Str("__eq"), FunctionValue(fn))
	a, b := NewTable(), NewTable()
	a.SetMetatable(mt)

	eq, err := Eq(ctx, TableValue(a), TableValue(b))
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Error("a == b should be false when only a has __eq")
	}
}

func TestEqSkipsMetamethodWhenHandlersDiffer(t *testing.T) {
	ctx := NewContext()
	f := NewFunction("__eq", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(True)), nil
	})
	g := NewFunction("__eq", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(True)), nil
	})
	mtA := NewTable()
	mtA.RawSet(Str("__eq"), FunctionValue(f))
	mtB := NewTable()
	mtB.RawSet(Str("__eq"), FunctionValue(g))
	a, b := NewTable(), NewTable()
	a.SetMetatable(mtA)
	b.SetMetatable(mtB)

	eq, err := Eq(ctx, TableValue(a), TableValue(b))
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Error("a == b should be false when the two __eq handlers are different functions")
	}
}

func TestLtNumbersAndStrings(t *testing.T) {
	ctx := NewContext()
	lt, err := Lt(ctx, Int(1), Int(2))
	if err != nil || !lt {
		t.Errorf("1 < 2 should be true")
	}
	lt, err = Lt(ctx, Str("a"), Str("b"))
	if err != nil || !lt {
		t.Errorf("\"a\" < \"b\" should be true")
	}
}

func TestLeFallsBackToNegatedSwappedLt(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("__lt", func(ctx *Context, args Varargs) (Result, error) {
		a, b := args.Arg(1), args.Arg(2)
		return DoneResult(NewVarargs(Bool(a.ToInt() < b.ToInt()))), nil
	})
	mt := NewTable()
	mt.RawSet(Str("__lt"), FunctionValue(fn))
	a, b := NewTable(), NewTable()
	a.SetMetatable(mt)
	b.SetMetatable(mt)

	// no __le defined: a <= b should be computed as not (b < a)
	le, err := Le(ctx, TableValue(a), TableValue(b))
	if err != nil {
		t.Fatal(err)
	}
	if !le {
		t.Error("a <= b should fall back to not(b < a) and be true here")
	}
}

func TestCallDirectFunction(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("double", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(Int(args.Arg(1).ToInt() * 2))), nil
	})
	res, err := Call(ctx, FunctionValue(fn), NewVarargs(Int(21)))
	if err != nil || res.Arg1().ToInt() != 42 {
		t.Errorf("Call = %v, err=%v", res, err)
	}
}

func TestCallViaCallMetamethod(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("__call", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(Int(int32(args.N())))), nil
	})
	mt := NewTable()
	mt.RawSet(Str("__call"), FunctionValue(fn))
	tbl := NewTable()
	tbl.SetMetatable(mt)

	res, err := Call(ctx, TableValue(tbl), NewVarargs(Int(1), Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	if res.Arg1().ToInt() != 3 {
		t.Errorf("__call should see self prepended to args, got N=%d", res.Arg1().ToInt())
	}
}

func TestCallOnUncallableErrors(t *testing.T) {
	ctx := NewContext()
	if _, err := Call(ctx, Int(5), Varargs{}); err == nil {
		t.Error("calling a plain number should error")
	}
}

func TestToStringUsesToStringMetamethod(t *testing.T) {
	ctx := NewContext()
	fn := NewFunction("__tostring", func(ctx *Context, args Varargs) (Result, error) {
		return DoneResult(NewVarargs(Str("custom"))), nil
	})
	mt := NewTable()
	mt.RawSet(Str("__tostring"), FunctionValue(fn))
	tbl := NewTable()
	tbl.SetMetatable(mt)

	s, err := ToString(ctx, TableValue(tbl))
	if err != nil || s != "custom" {
		t.Errorf("ToString = %q, err=%v", s, err)
	}
}
