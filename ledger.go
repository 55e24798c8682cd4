package cashflow

import (
	"fmt"
	"sort"
)

// Ledger is the in-memory collection of everything the storage collaborator
// knows about: account snapshots, bills, incomes, transfers and settled
// history. The engine itself never touches storage; the ledger is how the
// CLI (or a service layer) hands it a snapshot of input data.
type Ledger struct {
	accounts  []Account
	bills     []Bill
	incomes   []Income
	transfers []Transfer
	history   []HistoricalTransaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddAccount registers an account snapshot. The ID must be unique.
func (l *Ledger) AddAccount(a Account) error {
	for _, existing := range l.accounts {
		if existing.ID == a.ID {
			return fmt.Errorf("account %q is already defined", a.ID)
		}
	}
	l.accounts = append(l.accounts, a)
	return nil
}

func (l *Ledger) AddBill(b Bill)                          { l.bills = append(l.bills, b) }
func (l *Ledger) AddIncome(in Income)                     { l.incomes = append(l.incomes, in) }
func (l *Ledger) AddTransfer(t Transfer)                  { l.transfers = append(l.transfers, t) }
func (l *Ledger) AddTransaction(tx HistoricalTransaction) { l.history = append(l.history, tx) }

// Accounts returns all account snapshots.
func (l *Ledger) Accounts() []Account { return l.accounts }

// Account finds an account snapshot by ID.
func (l *Ledger) Account(id string) (Account, bool) {
	for _, a := range l.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// Bills returns the bills attached to an account.
func (l *Ledger) Bills(accountID string) []Bill {
	var out []Bill
	for _, b := range l.bills {
		if b.Account == accountID {
			out = append(out, b)
		}
	}
	return out
}

// Incomes returns the incomes attached to an account.
func (l *Ledger) Incomes(accountID string) []Income {
	var out []Income
	for _, in := range l.incomes {
		if in.Account == accountID {
			out = append(out, in)
		}
	}
	return out
}

// Transfers returns the transfers touching an account.
func (l *Ledger) Transfers(accountID string) []Transfer {
	var out []Transfer
	for _, t := range l.transfers {
		if t.From == accountID || t.To == accountID {
			out = append(out, t)
		}
	}
	return out
}

// History returns the settled transactions of an account, in date order.
func (l *Ledger) History(accountID string) []HistoricalTransaction {
	var out []HistoricalTransaction
	for _, tx := range l.history {
		if tx.Account == accountID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Data bundles an account with its obligations for a multi-account
// forecast.
func (l *Ledger) Data(a Account) AccountData {
	return AccountData{
		Account:   a,
		Bills:     l.Bills(a.ID),
		Incomes:   l.Incomes(a.ID),
		Transfers: l.Transfers(a.ID),
	}
}

// sortCanonical orders the ledger content deterministically: accounts by
// ID, everything else by date then description.
func (l *Ledger) sortCanonical() {
	sort.SliceStable(l.accounts, func(i, j int) bool { return l.accounts[i].ID < l.accounts[j].ID })
	sort.SliceStable(l.bills, func(i, j int) bool {
		if !l.bills[i].DueDate.Before(l.bills[j].DueDate) && !l.bills[j].DueDate.Before(l.bills[i].DueDate) {
			return l.bills[i].Description < l.bills[j].Description
		}
		return l.bills[i].DueDate.Before(l.bills[j].DueDate)
	})
	sort.SliceStable(l.incomes, func(i, j int) bool {
		if l.incomes[i].Date == l.incomes[j].Date {
			return l.incomes[i].Description < l.incomes[j].Description
		}
		return l.incomes[i].Date.Before(l.incomes[j].Date)
	})
	sort.SliceStable(l.transfers, func(i, j int) bool { return l.transfers[i].Date.Before(l.transfers[j].Date) })
	sort.SliceStable(l.history, func(i, j int) bool { return l.history[i].Date.Before(l.history[j].Date) })
}
