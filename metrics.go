package cashflow

import "strconv"

// This file holds the pure metric functions derived from a projection's
// minimum balance: how much the account is short per day, what that costs
// per year, and what gross income (and hourly rate) would cover it.

// DefaultTaxRate models a 20% effective tax burden when grossing up the
// required income. It is a parameter with a default, not a business rule;
// callers may pass a jurisdiction-specific rate.
var DefaultTaxRate = P(0.80)

// weeksPerYear used to derive hourly rates from a yearly income.
const weeksPerYear = 52

// daysPerYear used to annualize a daily deficit.
const daysPerYear = 365

// DailyDeficit returns how much the account falls short per day over the
// window: zero when the minimum balance is non-negative, otherwise
// |minBalance| / days at Calculation precision.
func DailyDeficit(minBalance Money, days int) (Money, error) {
	if days <= 0 {
		return Money{}, &DivisionError{Op: "daily deficit", Divisor: strconv.Itoa(days)}
	}
	if minBalance.GreaterThanOrEqual(M(0, minBalance.Currency())) {
		return C(0, minBalance.Currency()), nil
	}
	return minBalance.Abs().DivInt(days), nil
}

// YearlyDeficit annualizes a daily deficit.
func YearlyDeficit(daily Money) Money {
	return daily.MulFactor(newDecimal(daysPerYear))
}

// RequiredIncome returns the gross income needed to cover a yearly deficit
// after taxes, i.e. yearlyDeficit / taxRate.
func RequiredIncome(yearlyDeficit Money, taxRate Percentage) (Money, error) {
	if !taxRate.IsPositive() {
		return Money{}, &DivisionError{Op: "required income", Divisor: taxRate.value.String()}
	}
	return yearlyDeficit.Div(taxRate), nil
}

// HourlyRate returns the hourly wage that produces the required yearly
// income at the given weekly hours.
func HourlyRate(requiredIncome Money, hoursPerWeek int) (Money, error) {
	if hoursPerWeek <= 0 {
		return Money{}, &DivisionError{Op: "hourly rate", Divisor: strconv.Itoa(hoursPerWeek)}
	}
	return requiredIncome.DivInt(weeksPerYear).DivInt(hoursPerWeek), nil
}

// Confidence penalty table. Each deduction is individually inspectable; the
// model favors explainability over statistical rigor.
var (
	baseConfidence  = P(0.9)
	confidenceFloor = P(0.1)
	confidenceCeil  = P(1.0)

	flagPenalties = map[Warning]Percentage{
		LowBalance:            P(0.20),
		HighCreditUtilization: P(0.15),
		LargeOutflow:          P(0.10),
		InsufficientFunds:     P(0.25),
		ApproachingThreshold:  P(0.05),
	}

	creditAccountPenalty = P(0.05)
	busyDayPenalty       = P(0.05)
)

// busyDayTransactions is the line-item count past which a projected day is
// considered noisy.
const busyDayTransactions = 5

// DayConfidence scores how reliable a single projected day is, in
// [0.1, 1.0]. It starts at 0.9 and applies penalties in one canonical
// order: warning flags first, then the account-type penalty, then the
// transaction-volume penalty, with a single clamp at the end. The raw
// penalty stack can dip below the floor; the clamp is applied exactly once.
func DayConfidence(flags []Warning, accountType AccountType, transactions int) Percentage {
	c := baseConfidence
	for _, f := range flags {
		c = c.Sub(flagPenalties[f])
	}
	if accountType == Credit {
		c = c.Sub(creditAccountPenalty)
	}
	if transactions > busyDayTransactions {
		c = c.Sub(busyDayPenalty)
	}
	return c.Clamp(confidenceFloor, confidenceCeil)
}
