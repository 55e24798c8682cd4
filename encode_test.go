package cashflow

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okast/cashflow/date"
)

const sampleLedger = `{"kind":"account","id":"main","name":"Main","type":"checking","balance":1500.25,"currency":"USD","creditLimit":0}
{"kind":"account","id":"card","type":"credit","balance":4200,"currency":"USD","creditLimit":5000}
{"kind":"bill","account":"main","description":"rent","category":"housing","due":"2026-10-01","amount":1200,"currency":"USD","recurring":true}
{"kind":"income","account":"main","description":"salary","category":"salary","date":"2026-09-25","amount":3200,"currency":"USD"}
{"kind":"transfer","from":"main","to":"card","date":"2026-09-28","amount":500,"currency":"USD"}
{"kind":"transaction","account":"main","date":"2026-08-14","type":"debit","category":"groceries","amount":-86.4,"currency":"USD"}
`

func TestDecodeLedger(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}

	if got := len(l.Accounts()); got != 2 {
		t.Fatalf("accounts = %d, want 2", got)
	}
	main, ok := l.Account("main")
	if !ok {
		t.Fatal("account main not found")
	}
	if main.Type != Checking || !main.Balance.Equal(USD(1500.25)) {
		t.Errorf("main = %+v, want checking with balance 1500.25", main)
	}
	card, _ := l.Account("card")
	if card.Type != Credit || !card.CreditLimit.Equal(USD(5000)) {
		t.Errorf("card = %+v, want credit with limit 5000", card)
	}

	bills := l.Bills("main")
	if len(bills) != 1 || !bills[0].Recurring || bills[0].DueDate != date.New(2026, time.October, 1) {
		t.Errorf("bills = %+v, want one recurring bill due 2026-10-01", bills)
	}
	if incomes := l.Incomes("main"); len(incomes) != 1 || !incomes[0].Amount.Equal(USD(3200)) {
		t.Errorf("incomes = %+v, want one 3200 income", incomes)
	}
	if transfers := l.Transfers("card"); len(transfers) != 1 || transfers[0].From != "main" {
		t.Errorf("transfers = %+v, want one from main", transfers)
	}
	if history := l.History("main"); len(history) != 1 || !history[0].Amount.Equal(USD(-86.4)) {
		t.Errorf("history = %+v, want one -86.40 transaction", history)
	}
}

func TestDecodeLedger_roundTrip(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	reread, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger(encoded) error = %v", err)
	}

	if len(reread.Accounts()) != len(l.Accounts()) {
		t.Errorf("accounts = %d, want %d", len(reread.Accounts()), len(l.Accounts()))
	}
	a, _ := l.Account("main")
	b, ok := reread.Account("main")
	if !ok || !a.Balance.Equal(b.Balance) {
		t.Errorf("balance after round trip = %v, want %v", b.Balance.value, a.Balance.value)
	}
	if len(reread.Bills("main")) != 1 || len(reread.History("main")) != 1 {
		t.Error("bills or history lost in round trip")
	}
}

func TestDecodeLedger_rejectsSubCentAmounts(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{
			name: "bill",
			line: `{"kind":"bill","account":"main","due":"2026-10-01","amount":12.345,"currency":"USD"}`,
		},
		{
			name: "account balance",
			line: `{"kind":"account","id":"main","type":"checking","balance":10.001,"currency":"USD","creditLimit":0}`,
		},
		{
			name: "transaction",
			line: `{"kind":"transaction","account":"main","date":"2026-08-14","amount":-0.005,"currency":"USD"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLedger(strings.NewReader(tt.line + "\n"))
			if err == nil {
				t.Fatal("DecodeLedger() succeeded, want precision error")
			}
			var precision *PrecisionError
			if !errors.As(err, &precision) {
				t.Fatalf("DecodeLedger() error = %v, want *PrecisionError", err)
			}
			if !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error %q does not name the offending line", err)
			}
		})
	}
}

func TestDecodeLedger_unknownKind(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"kind":"wallet"}` + "\n"))
	if err == nil || !strings.Contains(err.Error(), "wallet") {
		t.Fatalf("DecodeLedger() error = %v, want unknown kind error", err)
	}
}

func TestDecodeLedger_duplicateAccount(t *testing.T) {
	doc := `{"kind":"account","id":"main","type":"checking","balance":0,"currency":"USD","creditLimit":0}
{"kind":"account","id":"main","type":"savings","balance":0,"currency":"USD","creditLimit":0}
`
	_, err := DecodeLedger(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), "already defined") {
		t.Fatalf("DecodeLedger() error = %v, want duplicate account error", err)
	}
}

func TestEncodeLedger_canonicalOrder(t *testing.T) {
	l := NewLedger()
	if err := l.AddAccount(Account{ID: "zeta", Type: Savings, Balance: USD(10)}); err != nil {
		t.Fatal(err)
	}
	if err := l.AddAccount(Account{ID: "alpha", Type: Checking, Balance: USD(20)}); err != nil {
		t.Fatal(err)
	}
	l.AddBill(Bill{Account: "alpha", Description: "late", DueDate: date.New(2026, time.November, 1), Amount: USD(5)})
	l.AddBill(Bill{Account: "alpha", Description: "early", DueDate: date.New(2026, time.October, 1), Amount: USD(5)})

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("encoded %d lines, want 4", len(lines))
	}
	if !strings.Contains(lines[0], `"alpha"`) || !strings.Contains(lines[1], `"zeta"`) {
		t.Errorf("accounts not sorted by ID:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], `"early"`) || !strings.Contains(lines[3], `"late"`) {
		t.Errorf("bills not sorted by due date:\n%s", buf.String())
	}
}
