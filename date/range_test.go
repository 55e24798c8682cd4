package date

import (
	"slices"
	"testing"
	"time"
)

func TestRange_All(t *testing.T) {
	r := NewRange(New(2026, time.February, 27), New(2026, time.March, 2))
	got := slices.Collect(r.All())
	want := []Date{
		New(2026, time.February, 27),
		New(2026, time.February, 28),
		New(2026, time.March, 1),
		New(2026, time.March, 2),
	}
	if !slices.Equal(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
	if r.Days() != 4 {
		t.Errorf("Days() = %d, want 4", r.Days())
	}
}

func TestNewRange_swaps(t *testing.T) {
	from := New(2026, time.May, 10)
	to := New(2026, time.May, 1)
	r := NewRange(from, to)
	if r.From != to || r.To != from {
		t.Errorf("NewRange did not swap inverted bounds: %v", r)
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(New(2026, time.January, 1), New(2026, time.January, 31))
	if !r.Contains(New(2026, time.January, 1)) || !r.Contains(New(2026, time.January, 31)) {
		t.Error("Contains() must include boundaries")
	}
	if r.Contains(New(2026, time.February, 1)) {
		t.Error("Contains() must exclude dates past To")
	}
}
