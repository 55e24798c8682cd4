package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/okast/cashflow"
	"github.com/okast/cashflow/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// headings parses the markdown and returns the text of each heading, so the
// assertions survive formatting changes in the table bodies.
func headings(t *testing.T, source string) []string {
	t.Helper()
	src := []byte(source)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			var sb strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					sb.Write(txt.Segment.Value(src))
				}
			}
			out = append(out, sb.String())
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return out
}

func fixtureForecast(t *testing.T) *cashflow.AccountForecast {
	t.Helper()
	start := date.New(2026, time.September, 7)
	e := cashflow.NewEngine(cashflow.DefaultThresholds())
	f, err := e.AccountForecast(cashflow.ForecastWindow{
		Account: cashflow.Account{ID: "main", Name: "Main", Type: cashflow.Checking, Balance: cashflow.M(500, "USD")},
		Range:   date.NewRange(start, start.Add(4)),
		Bills:   []cashflow.Bill{{Account: "main", Description: "rent", DueDate: start.Add(2), Amount: cashflow.M(1500, "USD")}},
	})
	if err != nil {
		t.Fatalf("AccountForecast() error = %v", err)
	}
	return f
}

func TestForecastMarkdown(t *testing.T) {
	out := ForecastMarkdown(fixtureForecast(t))

	got := headings(t, out)
	want := []string{
		"Forecast for Main (2026-09-07 to 2026-09-11)",
		"Daily Projection",
		"Summary",
		"Statistics",
	}
	if len(got) != len(want) {
		t.Fatalf("headings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, got[i], want[i])
		}
	}

	if !strings.Contains(out, "insufficient_funds") {
		t.Error("output does not flag the projected shortfall")
	}
	if !strings.Contains(out, "Required funds") || !strings.Contains(out, "$1,000.00") {
		t.Error("output does not report the required funds")
	}
}

func TestCustomForecastMarkdown(t *testing.T) {
	start := date.New(2026, time.October, 1)
	e := cashflow.NewEngine(cashflow.DefaultThresholds())
	f, err := e.CustomForecast(cashflow.CustomForecastParams{
		Accounts: []cashflow.AccountData{
			{Account: cashflow.Account{ID: "a", Type: cashflow.Checking, Balance: cashflow.M(1000, "USD")}},
			{Account: cashflow.Account{ID: "b", Type: cashflow.Savings, Balance: cashflow.M(2000, "USD")}},
		},
		Range: date.NewRange(start, start.Add(2)),
	})
	if err != nil {
		t.Fatalf("CustomForecast() error = %v", err)
	}

	out := CustomForecastMarkdown(f)
	got := headings(t, out)
	if len(got) != 3 || got[0] != "Custom Forecast (2026-10-01 to 2026-10-03)" {
		t.Fatalf("headings = %v", got)
	}
	if !strings.Contains(out, "$3,000.00") {
		t.Error("output does not show the aggregate balance")
	}
}

func TestTrendMarkdown(t *testing.T) {
	batch := []cashflow.HistoricalTransaction{
		{Account: "main", Date: date.New(2026, time.January, 5), Amount: cashflow.M(100, "USD")},
		{Account: "main", Date: date.New(2026, time.February, 5), Amount: cashflow.M(150, "USD")},
		{Account: "main", Date: date.New(2026, time.March, 5), Amount: cashflow.M(200, "USD")},
	}
	report, err := cashflow.NewAnalyzer().Analyze(batch)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	out := TrendMarkdown(report)
	got := headings(t, out)
	if len(got) < 3 || got[0] != "Trend Analysis" || got[1] != "Direction" || got[2] != "Monthly Seasonality" {
		t.Fatalf("headings = %v", got)
	}
	if !strings.Contains(out, "January") || !strings.Contains(out, "March") {
		t.Error("monthly seasonality table is missing months")
	}
	if !strings.Contains(out, "3 settled transactions") {
		t.Error("output does not name the batch size")
	}
}

func TestSplitMarkdown(t *testing.T) {
	total := cashflow.M(100, "USD")
	parts, err := cashflow.EqualSplit(total, 3)
	if err != nil {
		t.Fatalf("EqualSplit() error = %v", err)
	}

	out := SplitMarkdown(total, parts)
	if !strings.Contains(out, "$33.34") || !strings.Contains(out, "$33.33") {
		t.Errorf("output missing split amounts:\n%s", out)
	}
}
