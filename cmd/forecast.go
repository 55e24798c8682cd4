package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/okast/cashflow"
	"github.com/okast/cashflow/date"
	"github.com/okast/cashflow/renderer"
)

// forecastCmd holds the flags for the 'forecast' subcommand.
type forecastCmd struct {
	account   string
	from      string
	days      int
	scenario  string
	pending   bool
	recurring bool
	transfers bool
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "project an account's daily balance trajectory" }
func (*forecastCmd) Usage() string {
	return `cfc forecast -a <account> [-d <from>] [-n <days>] [-scenario <name>]

  Projects the account balance day by day over the window, reporting
  warnings, confidence and the deficit summary.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account ID to forecast.")
	f.StringVar(&c.from, "d", date.Today().String(), "First day of the window.")
	f.IntVar(&c.days, "n", 30, "Number of days to project.")
	f.StringVar(&c.scenario, "scenario", "baseline", "Scenario: baseline, optimistic or pessimistic.")
	f.BoolVar(&c.pending, "pending", false, "Include pending bills and incomes.")
	f.BoolVar(&c.recurring, "recurring", true, "Expand recurring bills.")
	f.BoolVar(&c.transfers, "transfers", false, "Include transfers between accounts.")
}

func (c *forecastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.days < 1 {
		fmt.Fprintf(os.Stderr, "Error: -n must be at least 1\n")
		return subcommands.ExitUsageError
	}
	scenario, err := cashflow.ParseScenario(c.scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	account, ok := ledger.Account(c.account)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown account %q\n", c.account)
		return subcommands.ExitUsageError
	}
	thresholds, err := Thresholds()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading thresholds: %v\n", err)
		return subcommands.ExitFailure
	}

	engine := cashflow.NewEngine(thresholds)
	forecast, err := engine.AccountForecast(cashflow.ForecastWindow{
		Account:          account,
		Range:            date.NewRange(from, from.Add(c.days-1)),
		Bills:            ledger.Bills(account.ID),
		Incomes:          ledger.Incomes(account.ID),
		Transfers:        ledger.Transfers(account.ID),
		History:          ledger.History(account.ID),
		IncludePending:   c.pending,
		IncludeRecurring: c.recurring,
		IncludeTransfers: c.transfers,
		Scenario:         scenario,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing forecast: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ForecastMarkdown(forecast))
	return subcommands.ExitSuccess
}
