package cashflow

import (
	"sort"

	"github.com/shopspring/decimal"
)

// This file implements exact-money distribution: splitting a total into
// parts whose sum is bit-for-bit equal to the total, using the
// largest-remainder method. All splits operate on Display minor units
// (cents), which is where exactness is decidable.

// EqualSplit splits a total into the given number of parts. The base amount
// is the integer cent division; the remainder is given one cent at a time
// to the first parts, in order, so results are stable and reproducible.
// The parts sum exactly to the total. Negative totals are permitted.
func EqualSplit(total Money, parts int) ([]Money, error) {
	if parts <= 0 {
		return nil, &DistributionError{Reason: "part count must be positive"}
	}
	if err := total.ValidatePrecision(); err != nil {
		// Unreachable for totals normalized by ToDisplay upstream.
		return nil, &DistributionError{Reason: "total is not in display precision"}
	}
	if parts == 1 {
		return []Money{total}, nil
	}

	cents := total.MinorUnits()
	neg := cents < 0
	if neg {
		cents = -cents
	}
	base := cents / int64(parts)
	remainder := cents % int64(parts)

	out := make([]Money, parts)
	for i := range out {
		c := base
		if int64(i) < remainder {
			c++
		}
		if neg {
			c = -c
		}
		out[i] = FromMinorUnits(c, total.Currency())
	}
	return out, nil
}

// WeightedSplit splits a total according to percentage weights that must
// sum to 100% within a 0.0001 tolerance. Each raw share is computed in
// Calculation precision; shares are floored to whole cents and the residual
// is redistributed one cent at a time to the shares with the largest
// fractional remainder, ties broken by first-seen index. The parts sum
// exactly to the total.
func WeightedSplit(total Money, weights []Percentage) ([]Money, error) {
	if len(weights) == 0 {
		return nil, &DistributionError{Reason: "no weights"}
	}
	if err := total.ValidatePrecision(); err != nil {
		return nil, &DistributionError{Reason: "total is not in display precision"}
	}

	sum := P(0)
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if !sum.Equal(P(1)) {
		return nil, &WeightSumError{Sum: sum}
	}

	cents := total.MinorUnits()
	neg := cents < 0
	if neg {
		cents = -cents
	}
	totalCents := decimal.NewFromInt(cents)

	base := make([]int64, len(weights))
	remainders := make([]decimal.Decimal, len(weights))
	var allocated int64
	for i, w := range weights {
		raw := totalCents.Mul(w.value)
		floor := raw.Floor()
		base[i] = floor.IntPart()
		remainders[i] = raw.Sub(floor)
		allocated += base[i]
	}

	// Order shares by descending fractional remainder, first-seen on ties.
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	// The weight sum tolerance means the floored shares can fall short of,
	// or slightly overshoot, the total. Walk the remainder order either way.
	residual := cents - allocated
	for k := int64(0); k < residual; k++ {
		base[order[int(k)%len(order)]]++
	}
	for k := int64(0); k < -residual; k++ {
		// take cents back from the smallest remainders first
		base[order[len(order)-1-int(k)%len(order)]]--
	}

	out := make([]Money, len(weights))
	for i, c := range base {
		if neg {
			c = -c
		}
		out[i] = FromMinorUnits(c, total.Currency())
	}
	return out, nil
}
