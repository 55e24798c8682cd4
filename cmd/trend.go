package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/okast/cashflow"
	"github.com/okast/cashflow/renderer"
)

// trendCmd holds the flags for the 'trend' subcommand.
type trendCmd struct {
	account string
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "analyze the settled transaction history of an account" }
func (*trendCmd) Usage() string {
	return `cfc trend -a <account>

  Reports the direction, volatility and seasonality of the account's
  settled transactions.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account ID to analyze.")
}

func (c *trendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	if _, ok := ledger.Account(c.account); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown account %q\n", c.account)
		return subcommands.ExitUsageError
	}

	report, err := cashflow.NewAnalyzer().Analyze(ledger.History(c.account))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing history: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TrendMarkdown(report))
	return subcommands.ExitSuccess
}
