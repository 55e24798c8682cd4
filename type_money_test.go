package cashflow

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToDisplay_roundHalfUp(t *testing.T) {
	tests := []struct {
		name string
		in   Money
		want Money
	}{
		{name: "round down", in: CUSD(33.3333), want: USD(33.33)},
		{name: "tie rounds up", in: CUSD(33.335), want: USD(33.34)},
		{name: "round up", in: CUSD(33.3367), want: USD(33.34)},
		{name: "negative tie rounds away from zero", in: CUSD(-33.335), want: USD(-33.34)},
		{name: "whole amount unchanged", in: CUSD(100), want: USD(100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.ToDisplay()
			if !got.Equal(tt.want) {
				t.Errorf("ToDisplay(%v) = %v, want %v", tt.in.value, got.value, tt.want.value)
			}
			if got.Precision() != Display {
				t.Errorf("ToDisplay() precision = %v, want Display", got.Precision())
			}
		})
	}
}

func TestToDisplay_idempotent(t *testing.T) {
	for _, v := range []float64{0, 0.005, 1.005, -1.005, 33.3333, 99.9999, -0.0049} {
		once := CUSD(v).ToDisplay()
		twice := once.ToDisplay()
		if !once.Equal(twice) {
			t.Errorf("ToDisplay not idempotent for %v: %v then %v", v, once.value, twice.value)
		}
	}
}

func TestToCalculation(t *testing.T) {
	m := M(decimal.RequireFromString("10.00005"), "USD").ToCalculation()
	if got := m.value.String(); got != "10.0001" {
		t.Errorf("ToCalculation() = %s, want 10.0001", got)
	}
	if m.Precision() != Calculation {
		t.Errorf("ToCalculation() precision = %v, want Calculation", m.Precision())
	}
}

func TestValidatePrecision(t *testing.T) {
	if err := USD(12.34).ValidatePrecision(); err != nil {
		t.Errorf("ValidatePrecision(12.34) = %v, want nil", err)
	}
	err := M(decimal.RequireFromString("12.345"), "USD").ValidatePrecision()
	var perr *PrecisionError
	if !errors.As(err, &perr) {
		t.Fatalf("ValidatePrecision(12.345) = %v, want *PrecisionError", err)
	}
}

func TestArithmetic_staysInCalculation(t *testing.T) {
	a, b := USD(10.01), USD(0.02)
	if got := a.Add(b); got.Precision() != Calculation {
		t.Errorf("Add() precision = %v, want Calculation", got.Precision())
	}
	if got := a.Sub(b); got.Precision() != Calculation {
		t.Errorf("Sub() precision = %v, want Calculation", got.Precision())
	}
	if got := a.Mul(P(0.5)); got.Precision() != Calculation {
		t.Errorf("Mul() precision = %v, want Calculation", got.Precision())
	}
}

func TestChainedArithmetic_boundedError(t *testing.T) {
	// A long chain of calculation-precision steps must stay within one
	// display unit of the exact result.
	m := C(0, "USD")
	third := USD(10).DivInt(3) // 3.3333
	for i := 0; i < 300; i++ {
		m = m.Add(third)
	}
	// exact is 1000, accumulated is 999.99
	diff := m.Sub(USD(1000)).Abs()
	if diff.GreaterThan(USD(0.01)) {
		t.Errorf("accumulated drift %v exceeds one display unit", diff.value)
	}
}

func TestMinorUnits(t *testing.T) {
	if got := USD(123.45).MinorUnits(); got != 12345 {
		t.Errorf("MinorUnits() = %d, want 12345", got)
	}
	if got := USD(-0.07).MinorUnits(); got != -7 {
		t.Errorf("MinorUnits() = %d, want -7", got)
	}
	m := FromMinorUnits(12345, "USD")
	if !m.Equal(USD(123.45)) {
		t.Errorf("FromMinorUnits(12345) = %v, want 123.45", m.value)
	}
	if m.Precision() != Display {
		t.Errorf("FromMinorUnits() precision = %v, want Display", m.Precision())
	}
}

func TestCurrencyMismatch_panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add() with mismatched currencies must panic")
		}
	}()
	M(1, "USD").Add(M(1, "EUR"))
}
