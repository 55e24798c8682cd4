package cashflow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/okast/cashflow/date"
)

// ExportSpec names the JSONPath queries locating the transaction fields in
// a bank's export document. Banks disagree wildly on their JSON shapes;
// three parallel queries cover most of them without a per-bank parser.
type ExportSpec struct {
	Dates      string // e.g. "$.transactions[*].date"
	Amounts    string // e.g. "$.transactions[*].amount"
	Categories string // optional, e.g. "$.transactions[*].category"
}

// ImportTransactions extracts dated amounts from a bank-export JSON
// document into historical transactions for the given account. Amounts are
// validated against the Display precision at this boundary.
func ImportTransactions(account, currency string, doc []byte, spec ExportSpec) ([]HistoricalTransaction, error) {
	var jobj any
	if err := json.Unmarshal(doc, &jobj); err != nil {
		return nil, fmt.Errorf("invalid export document: %w", err)
	}

	dates, err := queryList(jobj, spec.Dates)
	if err != nil {
		return nil, fmt.Errorf("dates query %q: %w", spec.Dates, err)
	}
	amounts, err := queryList(jobj, spec.Amounts)
	if err != nil {
		return nil, fmt.Errorf("amounts query %q: %w", spec.Amounts, err)
	}
	if len(dates) != len(amounts) {
		return nil, fmt.Errorf("export mismatch: %d dates but %d amounts", len(dates), len(amounts))
	}

	var categories []any
	if spec.Categories != "" {
		categories, err = queryList(jobj, spec.Categories)
		if err != nil {
			return nil, fmt.Errorf("categories query %q: %w", spec.Categories, err)
		}
	}

	out := make([]HistoricalTransaction, 0, len(dates))
	for i := range dates {
		str, ok := dates[i].(string)
		if !ok {
			return nil, fmt.Errorf("row %d: date is not a string: %v", i, dates[i])
		}
		on, err := date.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		val, err := asFloat(amounts[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		amount := M(val, currency)
		if err := amount.ValidatePrecision(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		tx := HistoricalTransaction{Account: account, Date: on, Amount: amount}
		if i < len(categories) {
			if c, ok := categories[i].(string); ok {
				tx.Category = c
			}
		}
		out = append(out, tx)
	}
	return out, nil
}

// queryList runs a JSONPath query and normalizes the answer to a list.
func queryList(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	// because jsonpath is never clear about whether it returns a list of
	// answers or a single answer, normalize to a list.
	if jlist, ok := jval.([]any); ok {
		return jlist, nil
	}
	return []any{jval}, nil
}

// asFloat reads an amount that providers serialize either as a number or
// as a localized string like "1.234,56".
func asFloat(jval any) (float64, error) {
	if val, ok := jval.(float64); ok {
		return val, nil
	}
	sval, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("amount is neither a number nor a string: %v", jval)
	}
	sval = strings.ReplaceAll(sval, " ", "")
	if strings.Contains(sval, ",") {
		// assume the comma is the decimal separator and dots group
		sval = strings.ReplaceAll(sval, ".", "")
		sval = strings.ReplaceAll(sval, ",", ".")
	}
	val, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", sval, err)
	}
	return val, nil
}
