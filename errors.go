package cashflow

import "fmt"

// The engine reports invalid input through typed errors so that the service
// layer can branch on the failure class with errors.As. None of these are
// transient: they indicate caller errors that must be corrected and
// resubmitted, never retried.

// PrecisionError reports a boundary amount carrying more fractional digits
// than the Display domain allows.
type PrecisionError struct {
	Value string
}

func (e *PrecisionError) Error() string {
	return fmt.Sprintf("amount %s carries more than %d fractional digits", e.Value, Display)
}

// DistributionError reports an invalid split request (zero parts, empty
// weights, malformed total).
type DistributionError struct {
	Reason string
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("invalid distribution: %s", e.Reason)
}

// WeightSumError reports percentage weights that do not sum to 100% within
// tolerance. It carries the actual computed sum.
type WeightSumError struct {
	Sum Percentage
}

func (e *WeightSumError) Error() string {
	return fmt.Sprintf("weights sum to %s, want 100.00%%", e.Sum)
}

// DivisionError reports a zero or negative divisor supplied to a rate
// calculation.
type DivisionError struct {
	Op      string
	Divisor string
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("%s: divisor must be positive, got %s", e.Op, e.Divisor)
}

// InsufficientDataError reports an analysis attempted on an empty batch.
type InsufficientDataError struct {
	Op string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: no transactions to analyze", e.Op)
}

// NoAccountsError reports a custom forecast whose account filter resolved
// to an empty set.
type NoAccountsError struct{}

func (e *NoAccountsError) Error() string {
	return "forecast resolves to zero accounts"
}
