package cashflow

import (
	"testing"
	"time"

	"github.com/okast/cashflow/date"
)

func TestLedger_duplicateAccount(t *testing.T) {
	l := NewLedger()
	if err := l.AddAccount(Account{ID: "main"}); err != nil {
		t.Fatalf("AddAccount() error = %v", err)
	}
	if err := l.AddAccount(Account{ID: "main"}); err == nil {
		t.Fatal("AddAccount() accepted a duplicate ID")
	}
}

func TestLedger_historySorted(t *testing.T) {
	l := NewLedger()
	l.AddTransaction(HistoricalTransaction{Account: "main", Date: date.New(2026, time.March, 10), Amount: USD(30)})
	l.AddTransaction(HistoricalTransaction{Account: "main", Date: date.New(2026, time.March, 2), Amount: USD(10)})
	l.AddTransaction(HistoricalTransaction{Account: "other", Date: date.New(2026, time.March, 5), Amount: USD(99)})
	l.AddTransaction(HistoricalTransaction{Account: "main", Date: date.New(2026, time.March, 6), Amount: USD(20)})

	got := l.History("main")
	if len(got) != 3 {
		t.Fatalf("History(main) = %d transactions, want 3", len(got))
	}
	for i, want := range []float64{10, 20, 30} {
		if !got[i].Amount.Equal(USD(want)) {
			t.Errorf("History(main)[%d] = %v, want %v", i, got[i].Amount.value, want)
		}
	}
}

func TestLedger_data(t *testing.T) {
	l := NewLedger()
	a := Account{ID: "main", Type: Checking, Balance: USD(100)}
	if err := l.AddAccount(a); err != nil {
		t.Fatal(err)
	}
	l.AddBill(Bill{Account: "main", Amount: USD(50), DueDate: date.New(2026, time.April, 1)})
	l.AddBill(Bill{Account: "other", Amount: USD(99), DueDate: date.New(2026, time.April, 1)})
	l.AddIncome(Income{Account: "main", Amount: USD(200), Date: date.New(2026, time.April, 2)})
	l.AddTransfer(Transfer{From: "main", To: "other", Amount: USD(25), Date: date.New(2026, time.April, 3)})

	data := l.Data(a)
	if data.Account.ID != "main" {
		t.Errorf("Account = %q, want main", data.Account.ID)
	}
	if len(data.Bills) != 1 || len(data.Incomes) != 1 || len(data.Transfers) != 1 {
		t.Errorf("Data() = %d bills, %d incomes, %d transfers, want 1 each",
			len(data.Bills), len(data.Incomes), len(data.Transfers))
	}
}
