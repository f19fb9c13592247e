package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"luacore/lua"
)

var binaryOps = map[string]func(ctx *lua.Context, a, b lua.Value) (lua.Value, error){
	"+": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Arith(ctx, "+", a, b) },
	"-": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Arith(ctx, "-", a, b) },
	"*": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Arith(ctx, "*", a, b) },
	"/": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Arith(ctx, "/", a, b) },
	"%": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Arith(ctx, "%", a, b) },
	"^": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Arith(ctx, "^", a, b) },
	"..": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Concat(ctx, a, b) },
	"==": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) {
		r, err := lua.Eq(ctx, a, b)
		return lua.Bool(r), err
	},
	"~=": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) {
		r, err := lua.Neq(ctx, a, b)
		return lua.Bool(r), err
	},
	"<": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) {
		r, err := lua.Lt(ctx, a, b)
		return lua.Bool(r), err
	},
	"<=": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) {
		r, err := lua.Le(ctx, a, b)
		return lua.Bool(r), err
	},
	">": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) {
		r, err := lua.Gt(ctx, a, b)
		return lua.Bool(r), err
	},
	">=": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) {
		r, err := lua.Ge(ctx, a, b)
		return lua.Bool(r), err
	},
	"and": func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.And(a, b), nil },
	"or":  func(ctx *lua.Context, a, b lua.Value) (lua.Value, error) { return lua.Or(a, b), nil },
}

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "repl",
		Short:                 "evaluate 'lhs op rhs' lines against the operator surface",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.InOrStdin(), cmd)
		},
	}
}

func runRepl(in io.Reader, cmd *cobra.Command) error {
	ctx := lua.NewContext()
	errColor := color.New(color.FgRed)
	scanner := bufio.NewScanner(in)
	out := cmd.OutOrStdout()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "not" {
			continue
		}
		v, err := evalLine(ctx, line)
		if err != nil {
			fmt.Fprintln(out, errColor.Sprint(err.Error()))
			continue
		}
		dumpValue(cmd, v)
	}
	return scanner.Err()
}

// evalLine parses either "unaryop operand" or "lhs binaryop rhs" and
// dispatches through the operator surface. It is a tokenizer for demo
// input, not a Lua-expression parser: each line is exactly one operator
// application, no precedence or nesting.
func evalLine(ctx *lua.Context, line string) (lua.Value, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 2:
		switch fields[0] {
		case "-":
			v, err := parseOperand(fields[1])
			if err != nil {
				return lua.Nil, err
			}
			return lua.UnaryMinus(ctx, v)
		case "not":
			v, err := parseOperand(fields[1])
			if err != nil {
				return lua.Nil, err
			}
			return lua.Not(v), nil
		case "#":
			v, err := parseOperand(fields[1])
			if err != nil {
				return lua.Nil, err
			}
			return lua.Len(ctx, v)
		}
	case 3:
		op, ok := binaryOps[fields[1]]
		if !ok {
			return lua.Nil, fmt.Errorf("unrecognized operator %q", fields[1])
		}
		a, err := parseOperand(fields[0])
		if err != nil {
			return lua.Nil, err
		}
		b, err := parseOperand(fields[2])
		if err != nil {
			return lua.Nil, err
		}
		return op(ctx, a, b)
	}
	return lua.Nil, fmt.Errorf("expected 'op operand' or 'operand op operand', got %q", line)
}

func parseOperand(tok string) (lua.Value, error) {
	switch tok {
	case "nil":
		return lua.Nil, nil
	case "true":
		return lua.True, nil
	case "false":
		return lua.False, nil
	}
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return lua.Str(tok[1 : len(tok)-1]), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return lua.ValueOf(f), nil
	}
	return lua.Nil, fmt.Errorf("cannot parse operand %q", tok)
}
