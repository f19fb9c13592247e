package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"luacore/lua"
)

func newBenchCommand() *cobra.Command {
	var duration time.Duration
	c := &cobra.Command{
		Use:                   "bench",
		Short:                 "time the hot paths of the table and arithmetic kernels",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runBench(cmd, duration)
			return nil
		},
	}
	c.Flags().DurationVar(&duration, "duration", 200*time.Millisecond, "how long to run each benchmark")
	return c
}

func runBench(cmd *cobra.Command, duration time.Duration) {
	label := color.New(color.FgCyan, color.Bold)
	out := cmd.OutOrStdout()

	report := func(name string, body func()) {
		start := time.Now()
		n := 0
		for time.Since(start) < duration {
			body()
			n++
		}
		elapsed := time.Since(start)
		rate := float64(n) / elapsed.Seconds()
		fmt.Fprintf(out, "%s %d iterations in %s (%.0f/s)\n", label.Sprint(name), n, elapsed, rate)
	}

	report("table set/get", func() {
		tbl := lua.NewTable()
		tbl.RawSet(lua.Int(1), lua.Int(1))
		tbl.RawGet(lua.Int(1))
	})

	report("integer add", func() {
		lua.Add(lua.Int(2), lua.Int(3))
	})

	ctx := lua.NewContext()
	report("arith dispatch", func() {
		lua.Arith(ctx, "+", lua.Int(2), lua.Int(3))
	})
}
