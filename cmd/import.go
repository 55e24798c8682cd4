package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/okast/cashflow"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	account    string
	currency   string
	file       string
	dates      string
	amounts    string
	categories string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import settled transactions from a bank export" }
func (*importCmd) Usage() string {
	return `cfc import -a <account> -f <export.json> [-dates <jsonpath>] [-amounts <jsonpath>] [-categories <jsonpath>]

  Extracts dated amounts from a bank's JSON export using JSONPath queries
  and appends them to the ledger as settled transactions.

Usage Examples:
$ cfc import -a main -f export.json -dates '$.transactions[*].date' -amounts '$.transactions[*].amount'
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account ID to attach the transactions to.")
	f.StringVar(&c.currency, "cur", "USD", "Currency of the imported amounts.")
	f.StringVar(&c.file, "f", "", "Bank export JSON file.")
	f.StringVar(&c.dates, "dates", "$.transactions[*].date", "JSONPath query for the dates.")
	f.StringVar(&c.amounts, "amounts", "$.transactions[*].amount", "JSONPath query for the amounts.")
	f.StringVar(&c.categories, "categories", "", "Optional JSONPath query for the categories.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := os.ReadFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading export file %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	if _, ok := ledger.Account(c.account); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown account %q\n", c.account)
		return subcommands.ExitUsageError
	}

	txs, err := cashflow.ImportTransactions(c.account, c.currency, doc, cashflow.ExportSpec{
		Dates:      c.dates,
		Amounts:    c.amounts,
		Categories: c.categories,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, tx := range txs {
		ledger.AddTransaction(tx)
	}
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions into %s\n", len(txs), *ledgerFile)
	return subcommands.ExitSuccess
}
