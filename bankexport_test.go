package cashflow

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okast/cashflow/date"
)

func TestImportTransactions(t *testing.T) {
	doc := []byte(`{
		"transactions": [
			{"date": "2026-08-01", "amount": -42.5, "category": "groceries"},
			{"date": "2026-08-03", "amount": 1200, "category": "salary"},
			{"date": "2026-08-07", "amount": "1.234,56", "category": "transfer"}
		]
	}`)
	spec := ExportSpec{
		Dates:      "$.transactions[*].date",
		Amounts:    "$.transactions[*].amount",
		Categories: "$.transactions[*].category",
	}

	txs, err := ImportTransactions("main", "USD", doc, spec)
	if err != nil {
		t.Fatalf("ImportTransactions() error = %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("imported %d transactions, want 3", len(txs))
	}

	if txs[0].Date != date.New(2026, time.August, 1) || !txs[0].Amount.Equal(USD(-42.5)) {
		t.Errorf("tx 0 = %+v, want -42.50 on 2026-08-01", txs[0])
	}
	if txs[0].Category != "groceries" {
		t.Errorf("tx 0 category = %q, want groceries", txs[0].Category)
	}
	if !txs[1].Amount.Equal(USD(1200)) {
		t.Errorf("tx 1 amount = %v, want 1200", txs[1].Amount.value)
	}
	// localized string amount
	if !txs[2].Amount.Equal(USD(1234.56)) {
		t.Errorf("tx 2 amount = %v, want 1234.56", txs[2].Amount.value)
	}
	for i, tx := range txs {
		if tx.Account != "main" {
			t.Errorf("tx %d account = %q, want main", i, tx.Account)
		}
	}
}

func TestImportTransactions_withoutCategories(t *testing.T) {
	doc := []byte(`{"rows": [{"on": "2026-08-01", "value": 10}]}`)
	spec := ExportSpec{Dates: "$.rows[*].on", Amounts: "$.rows[*].value"}

	txs, err := ImportTransactions("main", "USD", doc, spec)
	if err != nil {
		t.Fatalf("ImportTransactions() error = %v", err)
	}
	if len(txs) != 1 || txs[0].Category != "" {
		t.Errorf("txs = %+v, want one uncategorized transaction", txs)
	}
}

func TestImportTransactions_errors(t *testing.T) {
	spec := ExportSpec{Dates: "$.t[*].date", Amounts: "$.t[*].amount"}

	t.Run("length mismatch", func(t *testing.T) {
		doc := []byte(`{"t": [{"date": "2026-08-01"}, {"date": "2026-08-02", "amount": 5}]}`)
		_, err := ImportTransactions("main", "USD", doc, spec)
		if err == nil || !strings.Contains(err.Error(), "mismatch") {
			t.Fatalf("error = %v, want length mismatch", err)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		doc := []byte(`{"t": [{"date": "august first", "amount": 5}]}`)
		_, err := ImportTransactions("main", "USD", doc, spec)
		if err == nil || !strings.Contains(err.Error(), "row 0") {
			t.Fatalf("error = %v, want row 0 date error", err)
		}
	})

	t.Run("sub-cent amount", func(t *testing.T) {
		doc := []byte(`{"t": [{"date": "2026-08-01", "amount": 5.001}]}`)
		_, err := ImportTransactions("main", "USD", doc, spec)
		var precision *PrecisionError
		if !errors.As(err, &precision) {
			t.Fatalf("error = %v, want *PrecisionError", err)
		}
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := ImportTransactions("main", "USD", []byte("not json"), spec)
		if err == nil {
			t.Fatal("ImportTransactions() succeeded on invalid JSON")
		}
	})
}
