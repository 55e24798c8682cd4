package cashflow

import (
	"fmt"
	"time"

	"github.com/okast/cashflow/date"
	"github.com/shopspring/decimal"
)

// Warning is a risk condition attached to a projected day.
type Warning string

const (
	LowBalance            Warning = "low_balance"
	HighCreditUtilization Warning = "high_credit_utilization"
	LargeOutflow          Warning = "large_outflow"
	InsufficientFunds     Warning = "insufficient_funds"
	ApproachingThreshold  Warning = "approaching_threshold"
)

// Scenario selects the multiplicative adjustment applied to projected
// streams: optimistic inflates income and deflates expenses by 10%,
// pessimistic the reverse.
type Scenario int

const (
	Baseline Scenario = iota
	Optimistic
	Pessimistic
)

func (s Scenario) String() string {
	switch s {
	case Optimistic:
		return "optimistic"
	case Pessimistic:
		return "pessimistic"
	default:
		return "baseline"
	}
}

// ParseScenario parses a string into a Scenario.
func ParseScenario(str string) (Scenario, error) {
	switch str {
	case "", "baseline":
		return Baseline, nil
	case "optimistic":
		return Optimistic, nil
	case "pessimistic":
		return Pessimistic, nil
	default:
		return 0, fmt.Errorf("unknown scenario: %q", str)
	}
}

var (
	factorUp   = decimal.New(11, -1) // 1.1
	factorDown = decimal.New(9, -1)  // 0.9
	factorOne  = decimal.New(1, 0)
)

// incomeFactor returns the multiplier applied to income amounts.
func (s Scenario) incomeFactor() decimal.Decimal {
	switch s {
	case Optimistic:
		return factorUp
	case Pessimistic:
		return factorDown
	default:
		return factorOne
	}
}

// expenseFactor returns the multiplier applied to expense amounts.
func (s Scenario) expenseFactor() decimal.Decimal {
	switch s {
	case Optimistic:
		return factorDown
	case Pessimistic:
		return factorUp
	default:
		return factorOne
	}
}

// ItemKind classifies a projected line item.
type ItemKind int

const (
	BillItem ItemKind = iota
	IncomeItem
	TransferInItem
	TransferOutItem
)

func (k ItemKind) String() string {
	switch k {
	case BillItem:
		return "bill"
	case IncomeItem:
		return "income"
	case TransferInItem:
		return "transfer in"
	case TransferOutItem:
		return "transfer out"
	default:
		return "unknown"
	}
}

// LineItem is one contribution to a projected day, with any scenario
// adjustment already applied to the amount.
type LineItem struct {
	Date        date.Date
	Description string
	Category    string
	Kind        ItemKind
	Amount      Money // Display domain, always positive
}

// isInflow reports whether the item adds to the balance.
func (li LineItem) isInflow() bool {
	return li.Kind == IncomeItem || li.Kind == TransferInItem
}

// DailyProjection is the projected state of one account on one date. It is
// immutable once emitted.
type DailyProjection struct {
	Date       date.Date
	Balance    Money // Calculation domain
	Inflow     Money
	Outflow    Money
	Confidence Percentage
	Warnings   []Warning
	Items      []LineItem
}

// HasWarning reports whether the day carries the given flag.
func (d DailyProjection) HasWarning(w Warning) bool {
	for _, f := range d.Warnings {
		if f == w {
			return true
		}
	}
	return false
}

// ForecastWindow is one account's forecast request: the date range, the
// line items known to the collaborating storage layer, and the inclusion
// and scenario switches. It is immutable for the duration of a computation.
type ForecastWindow struct {
	Account Account
	Range   date.Range

	Bills     []Bill
	Incomes   []Income
	Transfers []Transfer
	History   []HistoricalTransaction // optional, settled past used for volatility

	IncludePending   bool
	IncludeRecurring bool
	IncludeTransfers bool
	Scenario         Scenario

	// Seasonal scales expense amounts for occurrences falling in the given
	// month. Nil means no seasonal adjustment.
	Seasonal map[time.Month]float64
}

// seasonalFactor returns the expense multiplier for a month.
func (w ForecastWindow) seasonalFactor(m time.Month) decimal.Decimal {
	if w.Seasonal == nil {
		return factorOne
	}
	f, ok := w.Seasonal[m]
	if !ok {
		return factorOne
	}
	return decimal.NewFromFloat(f)
}

// Projector walks a forecast window day by day, accumulating known and
// recurring flows into a balance trajectory with warnings and per-day
// confidence. It never halts early: days past a shortfall are still
// reported, because the projection is lossless reporting, not a gate.
type Projector struct {
	thresholds *Thresholds
}

// NewProjector creates a projector using the given warning thresholds.
func NewProjector(t *Thresholds) *Projector {
	return &Projector{thresholds: t}
}

// Project computes the daily balance trajectory for the window.
func (p *Projector) Project(w ForecastWindow) []DailyProjection {
	items := p.gather(w)

	out := make([]DailyProjection, 0, w.Range.Days())
	balance := w.Account.Balance.ToCalculation()

	for day := range w.Range.All() {
		due := items[day]
		inflow := C(0, balance.Currency())
		outflow := C(0, balance.Currency())
		for _, li := range due {
			if li.isInflow() {
				inflow = inflow.Add(li.Amount)
			} else {
				outflow = outflow.Add(li.Amount)
			}
		}

		balance = balance.Add(inflow).Sub(outflow)
		flags := p.evaluate(w.Account, balance, outflow)

		out = append(out, DailyProjection{
			Date:       day,
			Balance:    balance,
			Inflow:     inflow,
			Outflow:    outflow,
			Confidence: DayConfidence(flags, w.Account.Type, len(due)),
			Warnings:   flags,
			Items:      due,
		})
	}
	return out
}

// gather indexes the window's line items by due date, expanding recurring
// bills and applying scenario multipliers. The multiplier is applied before
// the Display rounding, then the rounded amount accumulates.
func (p *Projector) gather(w ForecastWindow) map[date.Date][]LineItem {
	items := make(map[date.Date][]LineItem)
	add := func(li LineItem) { items[li.Date] = append(items[li.Date], li) }

	incomeFactor := w.Scenario.incomeFactor()
	expenseFactor := w.Scenario.expenseFactor()

	for _, b := range w.Bills {
		if b.Paid {
			continue
		}
		if b.Pending && !w.IncludePending {
			continue
		}
		adjusted := func(due date.Date) Money {
			return b.Amount.MulFactor(expenseFactor).MulFactor(w.seasonalFactor(due.Month())).ToDisplay()
		}
		if b.Recurring {
			if !w.IncludeRecurring {
				continue
			}
			// Every occurrence is computed from the anchor due date, so a
			// bill due on the 31st clamps to Feb 28 and returns to the 31st
			// in the next long month instead of drifting to the 28th.
			for i := 0; ; i++ {
				due := b.DueDate.AddMonths(i)
				if due.After(w.Range.To) {
					break
				}
				if w.Range.Contains(due) {
					add(LineItem{Date: due, Description: b.Description, Category: b.Category, Kind: BillItem, Amount: adjusted(due)})
				}
			}
			continue
		}
		if w.Range.Contains(b.DueDate) {
			add(LineItem{Date: b.DueDate, Description: b.Description, Category: b.Category, Kind: BillItem, Amount: adjusted(b.DueDate)})
		}
	}

	for _, in := range w.Incomes {
		if in.Deposited {
			continue
		}
		if in.Pending && !w.IncludePending {
			continue
		}
		if !w.Range.Contains(in.Date) {
			continue
		}
		amount := in.Amount.MulFactor(incomeFactor).ToDisplay()
		add(LineItem{Date: in.Date, Description: in.Description, Category: in.Category, Kind: IncomeItem, Amount: amount})
	}

	if w.IncludeTransfers {
		for _, tr := range w.Transfers {
			if !w.Range.Contains(tr.Date) {
				continue
			}
			switch w.Account.ID {
			case tr.From:
				add(LineItem{Date: tr.Date, Description: "transfer to " + tr.To, Kind: TransferOutItem, Amount: tr.Amount.ToDisplay()})
			case tr.To:
				add(LineItem{Date: tr.Date, Description: "transfer from " + tr.From, Kind: TransferInItem, Amount: tr.Amount.ToDisplay()})
			}
		}
	}
	return items
}

// evaluate computes the warning flags for a day's closing balance.
func (p *Projector) evaluate(account Account, balance, outflow Money) []Warning {
	var flags []Warning
	t := p.thresholds

	if balance.IsNegative() {
		flags = append(flags, InsufficientFunds)
	}
	low := t.LowBalance
	if balance.LessThan(low) {
		flags = append(flags, LowBalance)
	} else {
		margin := low.Add(low.Mul(t.ApproachMargin))
		if balance.LessThan(margin) {
			flags = append(flags, ApproachingThreshold)
		}
	}
	if account.Type == Credit && account.Utilization(balance).GreaterThan(t.HighCreditUtilization) {
		flags = append(flags, HighCreditUtilization)
	}
	if outflow.GreaterThan(t.LargeOutflow) {
		flags = append(flags, LargeOutflow)
	}
	return flags
}
