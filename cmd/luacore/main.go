// Command luacore exercises the luacore value and operator surface from
// the command line: dumping sample values, evaluating small expressions
// interactively, and benchmarking the hot paths.
package main

import (
	"context"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"zombiezen.com/go/log"
)

func main() {
	rootCommand := &cobra.Command{
		Use:           "luacore",
		Short:         "inspect and exercise the luacore value/operator core",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	showDebug := rootCommand.PersistentFlags().Bool("debug", false, "show debugging output")
	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(*showDebug)
		return nil
	}

	rootCommand.AddCommand(
		newDumpCommand(),
		newReplCommand(),
		newBenchCommand(),
	)

	if err := rootCommand.ExecuteContext(context.Background()); err != nil {
		initLogging(*showDebug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "luacore: ", log.StdFlags, nil),
		})
	})
}
