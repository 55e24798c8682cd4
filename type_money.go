package cashflow

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Precision identifies the fixed-point domain a Money value lives in.
//
// Display values carry at most 2 fractional digits and appear at system
// boundaries (API payloads, persisted fields). Calculation values carry 4
// fractional digits and are used for every intermediate arithmetic step;
// keeping the extra digits bounds the cumulative rounding error of a chain
// of operations below one display unit. The domain travels with the value
// itself so that formatting and persistence never have to guess.
type Precision int32

const (
	// Display is the 2-digit boundary precision for monetary amounts.
	Display Precision = 2
	// Calculation is the 4-digit precision for intermediate arithmetic.
	Calculation Precision = 4
)

// roundHalfUp rounds to the given number of fractional digits with ties
// going away from zero.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money represents an immutable monetary value tagged with its precision
// domain. Every operation returns a new Money; arithmetic results always
// land in the Calculation domain and only ToDisplay brings a value back to
// the boundary representation.
type Money struct {
	value decimal.Decimal // major unit value
	cur   string
	prec  Precision
}

// M creates a Display-domain money value, the form amounts take when they
// enter the system. It does not round: ingestion code is expected to call
// ValidatePrecision and reject out-of-domain input rather than mask it.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency, prec: Display}
}

// C creates a Calculation-domain money value rounded half-up to 4 digits.
func C[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: roundHalfUp(newDecimal(value), int32(Calculation)), cur: currency, prec: Calculation}
}

// currency returns the money's currency metadata.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the go-money constructor
	return *money.New(0, m.cur).Currency()
}

// Currency returns the currency code.
func (m Money) Currency() string { return m.cur }

// Precision returns the precision domain the value lives in.
func (m Money) Precision() Precision { return m.prec }

// String returns the formatted representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := roundHalfUp(m.value, int32(Display)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the money value with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// ToDisplay rounds half-up to Display precision. It is idempotent: a value
// already in the Display domain round-trips unchanged.
func (m Money) ToDisplay() Money {
	return Money{value: roundHalfUp(m.value, int32(Display)), cur: m.cur, prec: Display}
}

// ToCalculation rounds (or extends) half-up to Calculation precision.
func (m Money) ToCalculation() Money {
	return Money{value: roundHalfUp(m.value, int32(Calculation)), cur: m.cur, prec: Calculation}
}

// ValidatePrecision rejects values carrying more than Display fractional
// digits. It is the ingestion gate: boundary amounts with sub-cent digits
// are caller errors, never silently rounded.
func (m Money) ValidatePrecision() error {
	if !m.value.Equal(m.value.Truncate(int32(Display))) {
		return &PrecisionError{Value: m.value.String()}
	}
	return nil
}

// comparisons

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// unary operators. Results stay in the Calculation domain.

func (m Money) Neg() Money { return Money{value: m.value.Neg(), cur: m.cur, prec: Calculation} }
func (m Money) Abs() Money { return Money{value: m.value.Abs(), cur: m.cur, prec: Calculation} }

// binary operators. Results stay in the Calculation domain until the final
// boundary conversion; Mul and Div round half-up to 4 digits.

func (m Money) Add(n Money) Money {
	return Money{value: m.value.Add(n.value), cur: cur(m, n), prec: Calculation}
}

func (m Money) Sub(n Money) Money {
	return Money{value: m.value.Sub(n.value), cur: cur(m, n), prec: Calculation}
}

// Mul scales the amount by a percentage.
func (m Money) Mul(p Percentage) Money {
	return Money{value: roundHalfUp(m.value.Mul(p.value), int32(Calculation)), cur: m.cur, prec: Calculation}
}

// MulFactor scales the amount by an arbitrary decimal factor (scenario and
// seasonal multipliers).
func (m Money) MulFactor(f decimal.Decimal) Money {
	return Money{value: roundHalfUp(m.value.Mul(f), int32(Calculation)), cur: m.cur, prec: Calculation}
}

// DivInt divides the amount by a whole number. The divisor must not be zero.
func (m Money) DivInt(n int) Money {
	q := m.value.DivRound(decimal.NewFromInt(int64(n)), int32(Calculation))
	return Money{value: q, cur: m.cur, prec: Calculation}
}

// Div divides the amount by a percentage (e.g. grossing up by a tax rate).
func (m Money) Div(p Percentage) Money {
	return Money{value: m.value.DivRound(p.value, int32(Calculation)), cur: m.cur, prec: Calculation}
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// MinorUnits returns the amount in Display minor units (cents). The value
// must already be in the Display domain; sub-cent digits are truncated.
func (m Money) MinorUnits() int64 {
	return m.value.Shift(int32(Display)).IntPart()
}

// FromMinorUnits builds a Display money value from an amount of cents.
func FromMinorUnits(cents int64, currency string) Money {
	return Money{value: decimal.NewFromInt(cents).Shift(-int32(Display)), cur: currency, prec: Display}
}

// AsFloat returns the amount as a float64. Only the statistical code paths
// (volatility, trend strength) use it; exact money never goes through floats.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }
