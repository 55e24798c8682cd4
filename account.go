package cashflow

import (
	"fmt"

	"github.com/okast/cashflow/date"
)

// AccountType is the closed set of supported account kinds. Type-specific
// behavior (credit utilization, confidence penalties) dispatches on this
// enum; there is deliberately no runtime extension mechanism.
type AccountType int

const (
	Checking AccountType = iota
	Savings
	Credit
)

func (t AccountType) String() string {
	switch t {
	case Checking:
		return "checking"
	case Savings:
		return "savings"
	case Credit:
		return "credit"
	default:
		return "unknown"
	}
}

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "checking":
		return Checking, nil
	case "savings":
		return Savings, nil
	case "credit":
		return Credit, nil
	default:
		return 0, fmt.Errorf("unknown account type: %q", s)
	}
}

// Account is the snapshot of an account as supplied by the storage
// collaborator. Balance is the available balance in the Display domain;
// CreditLimit is only meaningful for credit accounts.
type Account struct {
	ID          string
	Name        string
	Type        AccountType
	Balance     Money
	CreditLimit Money
}

// Utilization returns how much of the credit line a given balance leaves
// drawn, as a ratio of the limit. Zero for non-credit accounts and for
// accounts without a limit.
func (a Account) Utilization(balance Money) Percentage {
	if a.Type != Credit || a.CreditLimit.IsZero() {
		return P(0)
	}
	drawn := a.CreditLimit.Sub(balance)
	if drawn.IsNegative() {
		return P(0)
	}
	return P(drawn.value.DivRound(a.CreditLimit.value, int32(Calculation)))
}

// Bill is a liability occurrence: a known amount due on a date. Recurring
// bills repeat monthly from DueDate. Paid bills never contribute to a
// projection; pending ones contribute only when the window includes them.
type Bill struct {
	Account     string
	Description string
	Category    string
	DueDate     date.Date
	Amount      Money
	Recurring   bool
	Paid        bool
	Pending     bool
}

// Income is an expected deposit on a date. Deposited incomes are already in
// the account balance and never contribute; pending ones contribute only
// when the window includes them.
type Income struct {
	Account     string
	Description string
	Category    string
	Date        date.Date
	Amount      Money
	Deposited   bool
	Pending     bool
}

// Transfer moves money between two accounts on a date. It only contributes
// when the window includes transfers.
type Transfer struct {
	From   string
	To     string
	Date   date.Date
	Amount Money
}

// HistoricalTransaction is a signed settled amount used by trend analysis.
// Positive amounts are inflows.
type HistoricalTransaction struct {
	Account  string
	Date     date.Date
	Amount   Money
	Type     string
	Category string
}
