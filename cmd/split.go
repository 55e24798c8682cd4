package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/okast/cashflow"
	"github.com/okast/cashflow/renderer"
	"github.com/shopspring/decimal"
)

// splitCmd holds the flags for the 'split' subcommand.
type splitCmd struct {
	amount   string
	currency string
	parts    int
	weights  string
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "split an amount into exact parts" }
func (*splitCmd) Usage() string {
	return `cfc split -m <amount> [-cur <currency>] (-n <parts> | -w <pct,pct,...>)

  Splits the amount into parts that sum back exactly. With -n the parts
  are as equal as possible; with -w they follow the given percentage
  weights, which must sum to 100.

Usage Examples:
$ cfc split -m 100 -n 3
$ cfc split -m 123.45 -w 50,30,20
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "m", "", "Amount to split.")
	f.StringVar(&c.currency, "cur", "USD", "Currency code.")
	f.IntVar(&c.parts, "n", 0, "Number of equal parts.")
	f.StringVar(&c.weights, "w", "", "Comma-separated percentage weights.")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	value, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}
	total := cashflow.M(value, c.currency)

	var parts []cashflow.Money
	switch {
	case c.weights != "":
		var weights []cashflow.Percentage
		for _, w := range splitList(c.weights) {
			pct, err := strconv.ParseFloat(w, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid weight %q: %v\n", w, err)
				return subcommands.ExitUsageError
			}
			weights = append(weights, cashflow.P(pct/100))
		}
		parts, err = cashflow.WeightedSplit(total, weights)
	case c.parts > 0:
		parts, err = cashflow.EqualSplit(total, c.parts)
	default:
		fmt.Fprintf(os.Stderr, "Error: either -n or -w is required\n")
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SplitMarkdown(total, parts))
	return subcommands.ExitSuccess
}
