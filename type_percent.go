package cashflow

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percentage is a fixed-point ratio in [0,1] carrying 4 fractional digits:
// confidence scores, utilization ratios, trend strength, split weights.
// It is distinct from Money because it follows different rounding rules
// (always 4 digits, never the 2-digit boundary rounding).
type Percentage struct {
	value decimal.Decimal
}

// P creates a Percentage from a ratio value, rounded half-up to 4 digits.
func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percentage {
	return Percentage{value: roundHalfUp(newDecimal(value), int32(Calculation))}
}

// percentEpsilon is the tolerance for percentage comparisons, one unit of
// the 4th fractional digit.
var percentEpsilon = decimal.New(1, -4)

// Equal compares two percentages within the 0.0001 tolerance.
func (p Percentage) Equal(q Percentage) bool {
	return p.value.Sub(q.value).Abs().LessThan(percentEpsilon)
}

func (p Percentage) LessThan(q Percentage) bool    { return p.value.LessThan(q.value) }
func (p Percentage) GreaterThan(q Percentage) bool { return p.value.GreaterThan(q.value) }
func (p Percentage) IsZero() bool                  { return p.value.IsZero() }
func (p Percentage) IsPositive() bool              { return p.value.IsPositive() }

func (p Percentage) Add(q Percentage) Percentage { return Percentage{value: p.value.Add(q.value)} }
func (p Percentage) Sub(q Percentage) Percentage { return Percentage{value: p.value.Sub(q.value)} }

// Clamp bounds the percentage to [lo, hi].
func (p Percentage) Clamp(lo, hi Percentage) Percentage {
	if p.value.LessThan(lo.value) {
		return lo
	}
	if p.value.GreaterThan(hi.value) {
		return hi
	}
	return p
}

// Float64 returns the ratio as a float64 for statistical code paths.
func (p Percentage) Float64() float64 { return p.value.InexactFloat64() }

// String formats the ratio as a percentage, e.g. "82.35%".
func (p Percentage) String() string {
	return fmt.Sprintf("%s%%", p.value.Shift(2).StringFixed(2))
}
