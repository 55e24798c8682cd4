package cashflow

import (
	"time"

	"github.com/okast/cashflow/date"
	"github.com/shopspring/decimal"
)

// Engine composes the projector, the metric chain and the trend analyzer
// into the two forecast entry points. Each call computes a pure result over
// its own snapshot of inputs; concurrent forecasts never interfere.
type Engine struct {
	projector *Projector
	analyzer  *Analyzer
}

// NewEngine creates a forecast engine with the given warning thresholds.
func NewEngine(t *Thresholds) *Engine {
	return &Engine{projector: NewProjector(t), analyzer: NewAnalyzer()}
}

// ForecastSummary is the deficit and income chain derived from a
// projection's minimum balance. It is recomputed fully on every call.
type ForecastSummary struct {
	RequiredFunds  Money // Display: extra funds needed to never go negative
	DailyDeficit   Money
	YearlyDeficit  Money
	RequiredIncome Money // gross, at the engine's tax rate parameter
	HourlyRate20   Money
	HourlyRate30   Money
	HourlyRate40   Money
}

// ForecastStats aggregates the projected trajectory.
type ForecastStats struct {
	AverageBalance    Money
	MinBalance        Money
	MaxBalance        Money
	AverageInflow     Money
	AverageOutflow    Money
	BalanceVolatility Money
	// PeakUtilization is the worst projected credit utilization; zero for
	// non-credit accounts.
	PeakUtilization Percentage
	// HistoricalVolatility reports whether BalanceVolatility came from the
	// settled history rather than the projection.
	HistoricalVolatility bool
}

// AccountForecast is the full answer for a single-account window.
type AccountForecast struct {
	Account    Account
	Range      date.Range
	Days       []DailyProjection
	Summary    ForecastSummary
	Stats      ForecastStats
	Confidence Percentage
}

// Overall confidence penalties, applied after averaging day confidences.
var (
	criticalUtilization   = P(0.90)
	utilizationPenalty    = P(0.15)
	lowBalanceDayShare    = 0.25
	lowBalanceDaysPenalty = P(0.10)
	volatilityShare       = P(0.20)
	volatilityPenalty     = P(0.10)
)

// AccountForecast projects one account across the window and derives the
// summary metrics and the overall confidence.
func (e *Engine) AccountForecast(w ForecastWindow) (*AccountForecast, error) {
	days := e.projector.Project(w)
	currency := w.Account.Balance.Currency()

	stats := e.stats(w, days, currency)
	summary, err := e.summary(stats.MinBalance, len(days), currency)
	if err != nil {
		return nil, err
	}

	return &AccountForecast{
		Account:    w.Account,
		Range:      w.Range,
		Days:       days,
		Summary:    summary,
		Stats:      stats,
		Confidence: e.overallConfidence(w.Account, days, stats),
	}, nil
}

// summary derives the deficit chain from the window's minimum balance.
func (e *Engine) summary(minBalance Money, days int, currency string) (ForecastSummary, error) {
	required := C(0, currency)
	if minBalance.IsNegative() {
		required = minBalance.Abs()
	}
	daily, err := DailyDeficit(minBalance, days)
	if err != nil {
		return ForecastSummary{}, err
	}
	yearly := YearlyDeficit(daily)
	income, err := RequiredIncome(yearly, DefaultTaxRate)
	if err != nil {
		return ForecastSummary{}, err
	}
	s := ForecastSummary{
		RequiredFunds:  required.ToDisplay(),
		DailyDeficit:   daily,
		YearlyDeficit:  yearly,
		RequiredIncome: income,
	}
	for _, hours := range []int{20, 30, 40} {
		rate, err := HourlyRate(income, hours)
		if err != nil {
			return ForecastSummary{}, err
		}
		switch hours {
		case 20:
			s.HourlyRate20 = rate
		case 30:
			s.HourlyRate30 = rate
		case 40:
			s.HourlyRate40 = rate
		}
	}
	return s, nil
}

// stats aggregates the trajectory. Balance volatility prefers the settled
// history over the projection when a history is supplied: real variance
// beats a model of it.
func (e *Engine) stats(w ForecastWindow, days []DailyProjection, currency string) ForecastStats {
	if len(days) == 0 {
		return ForecastStats{}
	}
	minB, maxB := days[0].Balance, days[0].Balance
	var balanceSum, inflowSum, outflowSum decimal.Decimal
	changes := make([]float64, len(days))
	prev := w.Account.Balance.AsFloat()
	peak := P(0)

	for i, d := range days {
		if d.Balance.LessThan(minB) {
			minB = d.Balance
		}
		if d.Balance.GreaterThan(maxB) {
			maxB = d.Balance
		}
		balanceSum = balanceSum.Add(d.Balance.value)
		inflowSum = inflowSum.Add(d.Inflow.value)
		outflowSum = outflowSum.Add(d.Outflow.value)
		changes[i] = d.Balance.AsFloat() - prev
		prev = d.Balance.AsFloat()
		if u := w.Account.Utilization(d.Balance); u.GreaterThan(peak) {
			peak = u
		}
	}

	n := decimal.NewFromInt(int64(len(days)))
	stats := ForecastStats{
		MinBalance:      minB,
		MaxBalance:      maxB,
		AverageBalance:  Money{value: balanceSum.DivRound(n, int32(Calculation)), cur: currency, prec: Calculation},
		AverageInflow:   Money{value: inflowSum.DivRound(n, int32(Calculation)), cur: currency, prec: Calculation},
		AverageOutflow:  Money{value: outflowSum.DivRound(n, int32(Calculation)), cur: currency, prec: Calculation},
		PeakUtilization: peak,
	}

	if len(w.History) > 0 {
		if report, err := e.analyzer.Analyze(w.History); err == nil {
			stats.BalanceVolatility = report.Volatility
			stats.HistoricalVolatility = true
			return stats
		}
	}
	stats.BalanceVolatility = C(sampleStdDev(changes, meanOf(changes)), currency)
	return stats
}

// overallConfidence averages the day confidences and applies account-level
// penalties: credit accounts projected past 90% utilization, checking and
// savings accounts with low-balance warnings on more than a quarter of the
// days, and any account whose balance volatility exceeds 20% of its
// average balance.
func (e *Engine) overallConfidence(account Account, days []DailyProjection, stats ForecastStats) Percentage {
	if len(days) == 0 {
		return confidenceFloor
	}
	var sum decimal.Decimal
	lowDays := 0
	for _, d := range days {
		sum = sum.Add(d.Confidence.value)
		if d.HasWarning(LowBalance) {
			lowDays++
		}
	}
	c := Percentage{value: sum.DivRound(decimal.NewFromInt(int64(len(days))), int32(Calculation))}

	switch account.Type {
	case Credit:
		if stats.PeakUtilization.GreaterThan(criticalUtilization) {
			c = c.Sub(utilizationPenalty)
		}
	case Checking, Savings:
		if float64(lowDays)/float64(len(days)) > lowBalanceDayShare {
			c = c.Sub(lowBalanceDaysPenalty)
		}
	}
	if stats.BalanceVolatility.GreaterThan(stats.AverageBalance.Abs().Mul(volatilityShare)) {
		c = c.Sub(volatilityPenalty)
	}
	return c.Clamp(confidenceFloor, confidenceCeil)
}

// AccountData bundles one account with its known obligations for a
// multi-account forecast.
type AccountData struct {
	Account   Account
	Bills     []Bill
	Incomes   []Income
	Transfers []Transfer
}

// CustomForecastParams is the adjustable multi-account scenario request.
type CustomForecastParams struct {
	Accounts []AccountData
	Range    date.Range
	// AccountIDs filters Accounts; empty means all of them.
	AccountIDs []string
	// Categories filters bills and incomes; empty means all categories.
	Categories []string
	Scenario   Scenario
	// Seasonal scales expenses per calendar month (e.g. December 1.3).
	Seasonal map[time.Month]float64

	IncludePending   bool
	IncludeRecurring bool
	IncludeTransfers bool
}

// DailyResult is one day of the aggregate multi-account projection.
type DailyResult struct {
	Date       date.Date
	Income     Money
	Expense    Money
	Balance    Money // sum of all projected account balances
	Confidence Percentage
}

// CustomStats summarizes a custom forecast.
type CustomStats struct {
	TotalIncome  Money
	TotalExpense Money
	MinBalance   Money // running minimum of the aggregate balance
	MaxBalance   Money
	EndBalance   Money
}

// CustomForecast is the aggregate answer for a multi-account scenario.
type CustomForecast struct {
	Accounts   []Account
	Range      date.Range
	Days       []DailyResult
	Stats      CustomStats
	Confidence Percentage
}

// CustomForecast projects several accounts simultaneously with scenario
// adjustments, category filters and optional seasonal multipliers, and
// aggregates income, expense and balance per day across all accounts.
func (e *Engine) CustomForecast(params CustomForecastParams) (*CustomForecast, error) {
	selected := selectAccounts(params)
	if len(selected) == 0 {
		return nil, &NoAccountsError{}
	}

	perAccount := make([][]DailyProjection, len(selected))
	accounts := make([]Account, len(selected))
	for i, data := range selected {
		accounts[i] = data.Account
		perAccount[i] = e.projector.Project(ForecastWindow{
			Account:          data.Account,
			Range:            params.Range,
			Bills:            filterBills(data.Bills, params.Categories),
			Incomes:          filterIncomes(data.Incomes, params.Categories),
			Transfers:        data.Transfers,
			IncludePending:   params.IncludePending,
			IncludeRecurring: params.IncludeRecurring,
			IncludeTransfers: params.IncludeTransfers,
			Scenario:         params.Scenario,
			Seasonal:         params.Seasonal,
		})
	}

	currency := accounts[0].Balance.Currency()
	numDays := params.Range.Days()
	days := make([]DailyResult, 0, numDays)
	var stats CustomStats
	var totalIncome, totalExpense decimal.Decimal
	var confidenceSum decimal.Decimal

	for i := 0; i < numDays; i++ {
		var income, expense, balance, dayConfidence decimal.Decimal
		for _, trajectory := range perAccount {
			d := trajectory[i]
			income = income.Add(d.Inflow.value)
			expense = expense.Add(d.Outflow.value)
			balance = balance.Add(d.Balance.value)
			dayConfidence = dayConfidence.Add(d.Confidence.value)
		}
		confidence := Percentage{value: dayConfidence.DivRound(decimal.NewFromInt(int64(len(perAccount))), int32(Calculation))}
		day := DailyResult{
			Date:       perAccount[0][i].Date,
			Income:     Money{value: income, cur: currency, prec: Calculation},
			Expense:    Money{value: expense, cur: currency, prec: Calculation},
			Balance:    Money{value: balance, cur: currency, prec: Calculation},
			Confidence: confidence,
		}
		days = append(days, day)

		totalIncome = totalIncome.Add(income)
		totalExpense = totalExpense.Add(expense)
		confidenceSum = confidenceSum.Add(confidence.value)
		if i == 0 || day.Balance.LessThan(stats.MinBalance) {
			stats.MinBalance = day.Balance
		}
		if i == 0 || day.Balance.GreaterThan(stats.MaxBalance) {
			stats.MaxBalance = day.Balance
		}
	}

	stats.TotalIncome = Money{value: totalIncome, cur: currency, prec: Calculation}
	stats.TotalExpense = Money{value: totalExpense, cur: currency, prec: Calculation}
	stats.EndBalance = days[len(days)-1].Balance

	overall := Percentage{value: confidenceSum.DivRound(decimal.NewFromInt(int64(len(days))), int32(Calculation))}
	return &CustomForecast{
		Accounts:   accounts,
		Range:      params.Range,
		Days:       days,
		Stats:      stats,
		Confidence: overall.Clamp(confidenceFloor, confidenceCeil),
	}, nil
}

// selectAccounts resolves the account filter against the supplied accounts.
func selectAccounts(params CustomForecastParams) []AccountData {
	if len(params.AccountIDs) == 0 {
		return params.Accounts
	}
	wanted := make(map[string]bool, len(params.AccountIDs))
	for _, id := range params.AccountIDs {
		wanted[id] = true
	}
	var out []AccountData
	for _, a := range params.Accounts {
		if wanted[a.Account.ID] {
			out = append(out, a)
		}
	}
	return out
}

func filterBills(bills []Bill, categories []string) []Bill {
	if len(categories) == 0 {
		return bills
	}
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	var out []Bill
	for _, b := range bills {
		if wanted[b.Category] {
			out = append(out, b)
		}
	}
	return out
}

func filterIncomes(incomes []Income, categories []string) []Income {
	if len(categories) == 0 {
		return incomes
	}
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	var out []Income
	for _, in := range incomes {
		if wanted[in.Category] {
			out = append(out, in)
		}
	}
	return out
}
