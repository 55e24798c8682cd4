package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/okast/cashflow"
	"github.com/okast/cashflow/date"
	"github.com/okast/cashflow/renderer"
)

// customCmd holds the flags for the 'custom' subcommand.
type customCmd struct {
	accounts   string
	categories string
	from       string
	days       int
	scenario   string
	seasonal   string
	pending    bool
	recurring  bool
	transfers  bool
}

func (*customCmd) Name() string     { return "custom" }
func (*customCmd) Synopsis() string { return "run a multi-account scenario forecast" }
func (*customCmd) Usage() string {
	return `cfc custom [-a <id,id,...>] [-c <category,...>] [-d <from>] [-n <days>] [-scenario <name>] [-seasonal <month:factor,...>]

  Projects several accounts at once, aggregating income, expense and
  balance per day. Accounts and categories can be filtered, and expenses
  can be scaled per calendar month, e.g. -seasonal 12:1.5 for December.
`
}

func (c *customCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accounts, "a", "", "Comma-separated account IDs. All accounts by default.")
	f.StringVar(&c.categories, "c", "", "Comma-separated categories. All categories by default.")
	f.StringVar(&c.from, "d", date.Today().String(), "First day of the window.")
	f.IntVar(&c.days, "n", 30, "Number of days to project.")
	f.StringVar(&c.scenario, "scenario", "baseline", "Scenario: baseline, optimistic or pessimistic.")
	f.StringVar(&c.seasonal, "seasonal", "", "Per-month expense multipliers as month:factor pairs.")
	f.BoolVar(&c.pending, "pending", false, "Include pending bills and incomes.")
	f.BoolVar(&c.recurring, "recurring", true, "Expand recurring bills.")
	f.BoolVar(&c.transfers, "transfers", false, "Include transfers between accounts.")
}

func (c *customCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	seasonal, err := parseSeasonal(c.seasonal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	thresholds, err := Thresholds()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading thresholds: %v\n", err)
		return subcommands.ExitFailure
	}

	var accounts []cashflow.AccountData
	for _, a := range ledger.Accounts() {
		accounts = append(accounts, ledger.Data(a))
	}

	engine := cashflow.NewEngine(thresholds)
	forecast, err := engine.CustomForecast(cashflow.CustomForecastParams{
		Accounts:         accounts,
		Range:            date.NewRange(from, from.Add(c.days-1)),
		AccountIDs:       splitList(c.accounts),
		Categories:       splitList(c.categories),
		Scenario:         scenario,
		Seasonal:         seasonal,
		IncludePending:   c.pending,
		IncludeRecurring: c.recurring,
		IncludeTransfers: c.transfers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing forecast: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.CustomForecastMarkdown(forecast))
	return subcommands.ExitSuccess
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSeasonal parses "12:1.5,1:0.8" into per-month multipliers.
func parseSeasonal(s string) (map[time.Month]float64, error) {
	if s == "" {
		return nil, nil
	}
	out := make(map[time.Month]float64)
	for _, pair := range strings.Split(s, ",") {
		month, factor, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid seasonal pair %q, want month:factor", pair)
		}
		m, err := strconv.Atoi(strings.TrimSpace(month))
		if err != nil || m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid month in %q", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(factor), 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid factor in %q", pair)
		}
		out[time.Month(m)] = v
	}
	return out, nil
}
