package cashflow

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okast/cashflow/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger is persisted as JSONL: one JSON object per line, with a "kind"
// discriminator field. One line per entity keeps the file human-readable
// and git-friendly.

type recordKind string

const (
	kindAccount     recordKind = "account"
	kindBill        recordKind = "bill"
	kindIncome      recordKind = "income"
	kindTransfer    recordKind = "transfer"
	kindTransaction recordKind = "transaction"
)

// amountRec is a specialized struct to read an amount in two fields.
type amountRec struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Money converts the raw pair into a Display-domain value. The ingestion
// boundary validates precision separately.
func (a amountRec) Money() Money {
	return M(a.Amount, a.Currency)
}

type accountRec struct {
	Kind        recordKind      `json:"kind"`
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Type        string          `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

type billRec struct {
	Kind        recordKind `json:"kind"`
	Account     string     `json:"account"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Due         date.Date  `json:"due"`
	amountRec
	Recurring bool `json:"recurring,omitempty"`
	Paid      bool `json:"paid,omitempty"`
	Pending   bool `json:"pending,omitempty"`
}

type incomeRec struct {
	Kind        recordKind `json:"kind"`
	Account     string     `json:"account"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Date        date.Date  `json:"date"`
	amountRec
	Deposited bool `json:"deposited,omitempty"`
	Pending   bool `json:"pending,omitempty"`
}

type transferRec struct {
	Kind recordKind `json:"kind"`
	From string     `json:"from"`
	To   string     `json:"to"`
	Date date.Date  `json:"date"`
	amountRec
}

type transactionRec struct {
	Kind     recordKind `json:"kind"`
	Account  string     `json:"account"`
	Date     date.Date  `json:"date"`
	Type     string     `json:"type,omitempty"`
	Category string     `json:"category,omitempty"`
	amountRec
}

// DecodeLedger reads a JSONL stream into a Ledger. Every monetary amount is
// validated against the Display precision at this boundary: a ledger line
// carrying sub-cent digits fails with a PrecisionError rather than being
// silently rounded.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var identifier struct {
			Kind recordKind `json:"kind"`
		}
		if err := json.Unmarshal(raw, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record on line %d: %w", line, err)
		}

		switch identifier.Kind {
		case kindAccount:
			var rec accountRec
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			accountType, err := ParseAccountType(rec.Type)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			balance := M(rec.Balance, rec.Currency)
			if err := balance.ValidatePrecision(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			limit := M(rec.CreditLimit, rec.Currency)
			if err := limit.ValidatePrecision(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := ledger.AddAccount(Account{
				ID:          rec.ID,
				Name:        rec.Name,
				Type:        accountType,
				Balance:     balance,
				CreditLimit: limit,
			}); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}

		case kindBill:
			var rec billRec
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			amount := rec.Money()
			if err := amount.ValidatePrecision(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.AddBill(Bill{
				Account:     rec.Account,
				Description: rec.Description,
				Category:    rec.Category,
				DueDate:     rec.Due,
				Amount:      amount,
				Recurring:   rec.Recurring,
				Paid:        rec.Paid,
				Pending:     rec.Pending,
			})

		case kindIncome:
			var rec incomeRec
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			amount := rec.Money()
			if err := amount.ValidatePrecision(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.AddIncome(Income{
				Account:     rec.Account,
				Description: rec.Description,
				Category:    rec.Category,
				Date:        rec.Date,
				Amount:      amount,
				Deposited:   rec.Deposited,
				Pending:     rec.Pending,
			})

		case kindTransfer:
			var rec transferRec
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			amount := rec.Money()
			if err := amount.ValidatePrecision(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.AddTransfer(Transfer{From: rec.From, To: rec.To, Date: rec.Date, Amount: amount})

		case kindTransaction:
			var rec transactionRec
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			amount := rec.Money()
			if err := amount.ValidatePrecision(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.AddTransaction(HistoricalTransaction{
				Account:  rec.Account,
				Date:     rec.Date,
				Amount:   amount,
				Type:     rec.Type,
				Category: rec.Category,
			})

		default:
			return nil, fmt.Errorf("unknown record kind %q on line %d", identifier.Kind, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return ledger, nil
}

// EncodeLedger writes the ledger in canonical JSONL order: accounts first,
// then bills, incomes, transfers and history, each date-sorted.
func EncodeLedger(w io.Writer, l *Ledger) error {
	l.sortCanonical()
	enc := json.NewEncoder(w)

	for _, a := range l.accounts {
		rec := accountRec{
			Kind:        kindAccount,
			ID:          a.ID,
			Name:        a.Name,
			Type:        a.Type.String(),
			Balance:     a.Balance.value,
			Currency:    a.Balance.Currency(),
			CreditLimit: a.CreditLimit.value,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	for _, b := range l.bills {
		rec := billRec{
			Kind:        kindBill,
			Account:     b.Account,
			Description: b.Description,
			Category:    b.Category,
			Due:         b.DueDate,
			amountRec:   amountRec{Amount: b.Amount.value, Currency: b.Amount.Currency()},
			Recurring:   b.Recurring,
			Paid:        b.Paid,
			Pending:     b.Pending,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	for _, in := range l.incomes {
		rec := incomeRec{
			Kind:        kindIncome,
			Account:     in.Account,
			Description: in.Description,
			Category:    in.Category,
			Date:        in.Date,
			amountRec:   amountRec{Amount: in.Amount.value, Currency: in.Amount.Currency()},
			Deposited:   in.Deposited,
			Pending:     in.Pending,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	for _, t := range l.transfers {
		rec := transferRec{
			Kind:      kindTransfer,
			From:      t.From,
			To:        t.To,
			Date:      t.Date,
			amountRec: amountRec{Amount: t.Amount.value, Currency: t.Amount.Currency()},
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	for _, tx := range l.history {
		rec := transactionRec{
			Kind:      kindTransaction,
			Account:   tx.Account,
			Date:      tx.Date,
			Type:      tx.Type,
			Category:  tx.Category,
			amountRec: amountRec{Amount: tx.Amount.value, Currency: tx.Amount.Currency()},
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
