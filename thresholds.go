package cashflow

import (
	"fmt"
	"os"
	"time"

	"github.com/okast/cashflow/date"
	"gopkg.in/yaml.v3"
)

// Thresholds is the process-wide warning configuration. It is read once at
// startup and never mutated; every projector and orchestrator holds the
// same immutable instance.
type Thresholds struct {
	// LowBalance is the balance under which a day is flagged low_balance.
	LowBalance Money
	// HighCreditUtilization flags credit accounts drawn beyond this ratio.
	HighCreditUtilization Percentage
	// LargeOutflow flags days whose total outflow exceeds this amount.
	LargeOutflow Money
	// ApproachMargin widens the low-balance threshold for the
	// approaching_threshold early warning (0.2 means within 20% above).
	ApproachMargin Percentage
}

// DefaultThresholds returns the built-in warning configuration:
// low balance $100.00, credit utilization 80%, large outflow $1000.00,
// approach margin 20%.
func DefaultThresholds() *Thresholds {
	return &Thresholds{
		LowBalance:            M(100, "USD"),
		HighCreditUtilization: P(0.80),
		LargeOutflow:          M(1000, "USD"),
		ApproachMargin:        P(0.20),
	}
}

// thresholdsFile mirrors the YAML layout of the configuration file.
type thresholdsFile struct {
	Currency              string  `yaml:"currency"`
	LowBalance            float64 `yaml:"low_balance"`
	HighCreditUtilization float64 `yaml:"high_credit_utilization"`
	LargeOutflow          float64 `yaml:"large_outflow"`
	ApproachMargin        float64 `yaml:"approach_margin"`
}

// LoadThresholds reads warning thresholds from a YAML file, falling back to
// the defaults for any value left unset. A missing file yields the defaults.
func LoadThresholds(path string) (*Thresholds, error) {
	t := DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read thresholds: %w", err)
	}
	if len(data) == 0 {
		return t, nil
	}

	var f thresholdsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse thresholds: %w", err)
	}
	currency := f.Currency
	if currency == "" {
		currency = "USD"
	}
	if f.LowBalance != 0 {
		t.LowBalance = M(f.LowBalance, currency)
	}
	if f.HighCreditUtilization != 0 {
		t.HighCreditUtilization = P(f.HighCreditUtilization)
	}
	if f.LargeOutflow != 0 {
		t.LargeOutflow = M(f.LargeOutflow, currency)
	}
	if f.ApproachMargin != 0 {
		t.ApproachMargin = P(f.ApproachMargin)
	}
	return t, nil
}

// Holiday is a named calendar day used by the seasonality analysis.
type Holiday struct {
	Name string
	Date date.Date
}

// HolidaysForYear returns the holiday table for a calendar year. Dates are
// recomputed per year rather than stored, so the table never goes stale.
func HolidaysForYear(year int) []Holiday {
	return []Holiday{
		{Name: "new_year", Date: date.New(year, time.January, 1)},
		{Name: "independence_day", Date: date.New(year, time.July, 4)},
		{Name: "thanksgiving", Date: nthWeekday(year, time.November, time.Thursday, 4)},
		{Name: "christmas", Date: date.New(year, time.December, 25)},
	}
}

// nthWeekday returns the nth given weekday of a month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) date.Date {
	first := date.New(year, month, 1)
	offset := int(weekday - first.Weekday())
	if offset < 0 {
		offset += 7
	}
	return first.Add(offset + (n-1)*7)
}
