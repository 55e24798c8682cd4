package cmd

import (
	"testing"
	"time"
)

func TestParseSeasonal(t *testing.T) {
	got, err := parseSeasonal("12:1.5, 1:0.8")
	if err != nil {
		t.Fatalf("parseSeasonal() error = %v", err)
	}
	if got[time.December] != 1.5 || got[time.January] != 0.8 {
		t.Errorf("parseSeasonal() = %v, want December 1.5 and January 0.8", got)
	}

	if got, err := parseSeasonal(""); err != nil || got != nil {
		t.Errorf("parseSeasonal(\"\") = %v, %v, want nil, nil", got, err)
	}

	for _, bad := range []string{"12", "13:1.5", "0:1", "12:-1", "dec:1.5"} {
		if _, err := parseSeasonal(bad); err == nil {
			t.Errorf("parseSeasonal(%q) succeeded, want error", bad)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, b ,,c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
