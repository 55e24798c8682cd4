package cashflow

import "testing"

func TestPercentage_rounding(t *testing.T) {
	if got := P(0.33335).value.String(); got != "0.3334" {
		t.Errorf("P(0.33335) = %s, want 0.3334", got)
	}
}

func TestPercentage_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Percentage
		want bool
	}{
		{name: "identical", a: P(0.5), b: P(0.5), want: true},
		{name: "within tolerance", a: P(0.50004), b: P(0.5), want: true},
		{name: "at tolerance boundary", a: P(0.5001), b: P(0.5), want: false},
		{name: "sum of three thirds misses one", a: P(0.9999), b: P(1), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPercentage_Clamp(t *testing.T) {
	lo, hi := P(0.1), P(1)
	if got := P(-0.3).Clamp(lo, hi); !got.Equal(lo) {
		t.Errorf("Clamp(-0.3) = %v, want %v", got, lo)
	}
	if got := P(1.4).Clamp(lo, hi); !got.Equal(hi) {
		t.Errorf("Clamp(1.4) = %v, want %v", got, hi)
	}
	if got := P(0.5).Clamp(lo, hi); !got.Equal(P(0.5)) {
		t.Errorf("Clamp(0.5) = %v, want 0.5", got)
	}
}

func TestPercentage_String(t *testing.T) {
	if got := P(0.9999).String(); got != "99.99%" {
		t.Errorf("String() = %q, want \"99.99%%\"", got)
	}
	if got := P(0.8).String(); got != "80.00%" {
		t.Errorf("String() = %q, want \"80.00%%\"", got)
	}
}
