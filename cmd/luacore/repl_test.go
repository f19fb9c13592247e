package main

import (
	"testing"

	"luacore/lua"
)

func TestEvalLineArithmetic(t *testing.T) {
	ctx := lua.NewContext()
	v, err := evalLine(ctx, "3 + 4")
	if err != nil || v.ToInt() != 7 {
		t.Fatalf("evalLine(3 + 4) = %v, err=%v", v, err)
	}
}

func TestEvalLineConcat(t *testing.T) {
	ctx := lua.NewContext()
	v, err := evalLine(ctx, `"a" .. "b"`)
	if err != nil || v.String() != "ab" {
		t.Fatalf("evalLine string concat = %v, err=%v", v, err)
	}
}

func TestEvalLineUnaryMinus(t *testing.T) {
	ctx := lua.NewContext()
	v, err := evalLine(ctx, "- 5")
	if err != nil || v.ToInt() != -5 {
		t.Fatalf("evalLine(- 5) = %v, err=%v", v, err)
	}
}

func TestEvalLineNot(t *testing.T) {
	ctx := lua.NewContext()
	v, err := evalLine(ctx, "not true")
	if err != nil || v.ToBoolean() != false {
		t.Fatalf("evalLine(not true) = %v, err=%v", v, err)
	}
}

func TestEvalLineComparison(t *testing.T) {
	ctx := lua.NewContext()
	v, err := evalLine(ctx, "3 < 4")
	if err != nil || v.ToBoolean() != true {
		t.Fatalf("evalLine(3 < 4) = %v, err=%v", v, err)
	}
}

func TestEvalLineRejectsUnknownOperator(t *testing.T) {
	ctx := lua.NewContext()
	if _, err := evalLine(ctx, "3 ?? 4"); err == nil {
		t.Error("an unrecognized operator should error")
	}
}

func TestParseOperandKeywords(t *testing.T) {
	cases := map[string]lua.Value{
		"nil":   lua.Nil,
		"true":  lua.True,
		"false": lua.False,
	}
	for tok, want := range cases {
		got, err := parseOperand(tok)
		if err != nil || got.Type() != want.Type() {
			t.Errorf("parseOperand(%q) = %v, err=%v", tok, got, err)
		}
	}
}
