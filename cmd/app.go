// Package cmd implements the CLI application for cashflow forecasting.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/okast/cashflow"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&forecastCmd{}, "forecasting")
	c.Register(&customCmd{}, "forecasting")
	c.Register(&trendCmd{}, "forecasting")

	c.Register(&splitCmd{}, "money")

	c.Register(&fmtCmd{}, "ledger")
	c.Register(&importCmd{}, "ledger")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "cashflow.jsonl", "Path to the ledger file (JSONL format)")
var configFile = flag.String("config-file", "thresholds.yaml", "Path to the warning thresholds file")

// DecodeLedger reads the app ledger file. A missing file yields an empty
// ledger so that read-only commands still work before any data exists.
func DecodeLedger() (*cashflow.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, using an empty ledger instead")
		return cashflow.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cashflow.DecodeLedger(f)
}

// EncodeLedger writes the ledger back to the app ledger file.
func EncodeLedger(l *cashflow.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return cashflow.EncodeLedger(f, l)
}

// Thresholds loads the warning configuration, defaulting when the file is
// absent.
func Thresholds() (*cashflow.Thresholds, error) {
	return cashflow.LoadThresholds(*configFile)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot initialize (e.g. in a pipe).
func printMarkdown(content string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(content)
		return
	}
	out, err := r.Render(content)
	if err != nil {
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
