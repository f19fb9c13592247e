package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"luacore/lua"
)

var (
	numberColor   = color.New(color.FgCyan)
	stringColor   = color.New(color.FgGreen)
	tableColor    = color.New(color.FgYellow)
	functionColor = color.New(color.FgMagenta)
	nilColor      = color.New(color.FgHiBlack)
	boolColor     = color.New(color.FgBlue)
)

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "dump",
		Short:                 "print a handful of sample values and their types, colored by kind",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runDump(cmd)
			return nil
		},
	}
}

func runDump(cmd *cobra.Command) {
	nested := lua.NewTable()
	nested.RawSet(lua.Str("inner"), lua.Bool(true))

	root := lua.NewTable()
	root.RawSet(lua.Int(1), lua.Str("array slot"))
	root.RawSet(lua.Str("nested"), lua.TableValue(nested))

	greet := lua.NewFunction("greet", func(ctx *lua.Context, args lua.Varargs) (lua.Result, error) {
		return lua.DoneResult(lua.NewVarargs(lua.Str("hello, " + args.Arg1().String()))), nil
	})

	values := []lua.Value{
		lua.Nil,
		lua.True,
		lua.Int(42),
		lua.Float(3.25),
		lua.Str("a string"),
		lua.TableValue(root),
		lua.FunctionValue(greet),
	}
	for _, v := range values {
		dumpValue(cmd, v)
	}
}

func dumpValue(cmd *cobra.Command, v lua.Value) {
	c := colorFor(v)
	fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", v.TypeName(), c.Sprint(v.String()))
}

func colorFor(v lua.Value) *color.Color {
	switch v.Type() {
	case lua.KindNil:
		return nilColor
	case lua.KindBool:
		return boolColor
	case lua.KindInt, lua.KindFloat:
		return numberColor
	case lua.KindString:
		return stringColor
	case lua.KindTable:
		return tableColor
	case lua.KindFunction:
		return functionColor
	default:
		return color.New()
	}
}
