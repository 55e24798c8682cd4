package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/okast/cashflow/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs before flag parsing and exits on its own when
	// invoked by the shell.
	completion().Complete("cfc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	scenarios := predict.Set{"baseline", "optimistic", "pessimistic"}
	files := predict.Files("*")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file": files,
			"config-file": files,
		},
		Sub: map[string]*complete.Command{
			"forecast": {Flags: map[string]complete.Predictor{
				"a": predict.Nothing, "d": predict.Nothing, "n": predict.Nothing,
				"scenario": scenarios,
			}},
			"custom": {Flags: map[string]complete.Predictor{
				"a": predict.Nothing, "c": predict.Nothing, "d": predict.Nothing,
				"n": predict.Nothing, "scenario": scenarios, "seasonal": predict.Nothing,
			}},
			"trend": {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
			"split": {Flags: map[string]complete.Predictor{
				"m": predict.Nothing, "cur": predict.Nothing, "n": predict.Nothing, "w": predict.Nothing,
			}},
			"fmt":    {},
			"import": {Flags: map[string]complete.Predictor{"a": predict.Nothing, "f": files}},
		},
	}
}
