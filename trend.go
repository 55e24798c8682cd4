package cashflow

import (
	"math"
	"sort"
	"time"

	"github.com/okast/cashflow/date"
	"github.com/shopspring/decimal"
)

// TrendDirection is the overall direction of historical net changes.
type TrendDirection int

const (
	Stable TrendDirection = iota
	Increasing
	Decreasing
)

func (d TrendDirection) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "stable"
	}
}

// stableStrength is reported when the quartile difference drowns in
// volatility.
var stableStrength = P(0.3)

// SeasonalFactors are signed amount sums bucketed by calendar position.
// Holiday proximity sums amounts settled within holidayWindow days of a
// configured holiday, keyed by holiday name.
type SeasonalFactors struct {
	Monthly          map[time.Month]Money
	Weekday          map[time.Weekday]Money
	DayOfMonth       map[int]Money
	HolidayProximity map[string]Money
}

// holidayWindow is the proximity in days around a holiday date.
const holidayWindow = 7

// TrendReport is the aggregate analysis of a historical transaction batch.
// It is built once and read-only thereafter.
type TrendReport struct {
	AverageDailyChange Money // Calculation domain
	Volatility         Money // sample standard deviation of daily nets
	Direction          TrendDirection
	Strength           Percentage
	Seasonal           SeasonalFactors
	SeasonalStrength   Percentage
	Confidence         Percentage
	Transactions       int
}

// Analyzer aggregates historical transactions into a TrendReport.
type Analyzer struct{}

// NewAnalyzer creates a trend analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze builds the trend report for a batch of settled transactions.
// An empty batch is a caller error: there is no honest default trend to
// report, so the call fails instead of fabricating one.
func (a *Analyzer) Analyze(batch []HistoricalTransaction) (*TrendReport, error) {
	if len(batch) == 0 {
		return nil, &InsufficientDataError{Op: "trend analysis"}
	}
	currency := batch[0].Amount.Currency()

	// Per-day signed net changes, in date order.
	byDay := make(map[date.Date]decimal.Decimal)
	for _, tx := range batch {
		byDay[tx.Date] = byDay[tx.Date].Add(tx.Amount.value)
	}
	days := make([]date.Date, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	nets := make([]float64, len(days))
	var sum decimal.Decimal
	for i, d := range days {
		nets[i] = byDay[d].InexactFloat64()
		sum = sum.Add(byDay[d])
	}

	mean := sum.DivRound(decimal.NewFromInt(int64(len(days))), int32(Calculation))
	meanF := mean.InexactFloat64()
	vol := sampleStdDev(nets, meanF)

	direction, strength := trendDirection(nets, vol)

	report := &TrendReport{
		AverageDailyChange: Money{value: mean, cur: currency, prec: Calculation},
		Volatility:         C(vol, currency),
		Direction:          direction,
		Strength:           strength,
		Seasonal:           a.seasonal(batch, currency),
		SeasonalStrength:   seasonalStrength(batch),
		Confidence:         trendConfidence(len(batch), meanF, vol),
		Transactions:       len(batch),
	}
	return report, nil
}

// sampleStdDev computes the sample standard deviation of xs around mean.
func sampleStdDev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// trendDirection compares the mean of the first quartile of daily nets to
// the mean of the last quartile. A difference smaller than the volatility
// is noise: the trend is stable with a fixed 0.3 strength. Otherwise the
// direction follows the sign of the difference and the strength is
// |diff| / (volatility * 10), capped at 1.
func trendDirection(nets []float64, vol float64) (TrendDirection, Percentage) {
	q := len(nets) / 4
	if q < 1 {
		q = 1
	}
	first := meanOf(nets[:q])
	last := meanOf(nets[len(nets)-q:])
	diff := last - first

	if diff == 0 || math.Abs(diff) < vol {
		return Stable, stableStrength
	}
	direction := Increasing
	if diff < 0 {
		direction = Decreasing
	}
	strength := 1.0
	if vol > 0 {
		strength = math.Min(1, math.Abs(diff)/(vol*10))
	}
	return direction, P(strength)
}

func meanOf(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// seasonal buckets signed amounts by month, weekday and day of month, and
// sums amounts near configured holidays. Holiday dates are recomputed for
// every calendar year the batch covers plus both adjacent years, so the
// proximity window works across year boundaries.
func (a *Analyzer) seasonal(batch []HistoricalTransaction, currency string) SeasonalFactors {
	monthly := make(map[time.Month]decimal.Decimal)
	weekday := make(map[time.Weekday]decimal.Decimal)
	dom := make(map[int]decimal.Decimal)
	holiday := make(map[string]decimal.Decimal)

	years := make(map[int]bool)
	for _, tx := range batch {
		// adjacent years too: early January sits near the previous year's
		// Christmas, late December near the next year's new year
		years[tx.Date.Year()-1] = true
		years[tx.Date.Year()] = true
		years[tx.Date.Year()+1] = true
	}
	var holidays []Holiday
	for y := range years {
		holidays = append(holidays, HolidaysForYear(y)...)
	}

	for _, tx := range batch {
		monthly[tx.Date.Month()] = monthly[tx.Date.Month()].Add(tx.Amount.value)
		weekday[tx.Date.Weekday()] = weekday[tx.Date.Weekday()].Add(tx.Amount.value)
		dom[tx.Date.Day()] = dom[tx.Date.Day()].Add(tx.Amount.value)
		for _, h := range holidays {
			delta := tx.Date.Sub(h.Date)
			if delta >= -holidayWindow && delta <= holidayWindow {
				holiday[h.Name] = holiday[h.Name].Add(tx.Amount.value)
			}
		}
	}

	toMoney := func(d decimal.Decimal) Money {
		return Money{value: roundHalfUp(d, int32(Calculation)), cur: currency, prec: Calculation}
	}
	out := SeasonalFactors{
		Monthly:          make(map[time.Month]Money, len(monthly)),
		Weekday:          make(map[time.Weekday]Money, len(weekday)),
		DayOfMonth:       make(map[int]Money, len(dom)),
		HolidayProximity: make(map[string]Money, len(holiday)),
	}
	for k, v := range monthly {
		out.Monthly[k] = toMoney(v)
	}
	for k, v := range weekday {
		out.Weekday[k] = toMoney(v)
	}
	for k, v := range dom {
		out.DayOfMonth[k] = toMoney(v)
	}
	for k, v := range holiday {
		out.HolidayProximity[k] = toMoney(v)
	}
	return out
}

// seasonalStrength relates the spread of the monthly and day-of-month
// buckets to the average monthly volume:
// min(1, max(monthVariance, dayVariance) / (totalVolume/12)), and 0 when
// there is no volume at all.
func seasonalStrength(batch []HistoricalTransaction) Percentage {
	monthly := make(map[time.Month]float64)
	dom := make(map[int]float64)
	var volume float64
	for _, tx := range batch {
		f := tx.Amount.AsFloat()
		monthly[tx.Date.Month()] += f
		dom[tx.Date.Day()] += f
		volume += math.Abs(f)
	}
	if volume == 0 {
		return P(0)
	}
	mv := varianceOf(valuesOf(monthly))
	dv := varianceOf(valuesOf(dom))
	return P(math.Min(1, math.Max(mv, dv)/(volume/12)))
}

func valuesOf[K comparable](m map[K]float64) []float64 {
	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// varianceOf computes the population variance of xs.
func varianceOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := meanOf(xs)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(len(xs))
}

// trendConfidence rewards larger batches and low volatility relative to
// the mean daily change, bounded to [0.1, 1].
func trendConfidence(count int, mean, vol float64) Percentage {
	countBonus := math.Min(0.2, float64(count)/10)
	var volBonus float64
	switch {
	case vol <= math.Abs(mean):
		volBonus = 0.1
	case vol <= 2*math.Abs(mean):
		volBonus = 0.05
	}
	return P(math.Min(1, math.Max(0.1, 0.7+countBonus+volBonus)))
}
