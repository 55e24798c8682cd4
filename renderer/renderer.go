// Package renderer turns forecast results into markdown reports. The
// engine computes, the renderer formats; nothing here mutates the inputs.
package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/okast/cashflow"
)

// ForecastMarkdown renders a single-account forecast to a markdown string.
func ForecastMarkdown(f *cashflow.AccountForecast) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Forecast for %s (%s to %s)", f.Account.Name, f.Range.From, f.Range.To))
	doc.PlainText(fmt.Sprintf("Account type: %s, starting balance %s. Overall confidence %s.",
		f.Account.Type, f.Account.Balance, f.Confidence))

	doc.H2("Daily Projection")
	rows := make([][]string, 0, len(f.Days))
	for _, d := range f.Days {
		rows = append(rows, []string{
			d.Date.String(),
			d.Inflow.ToDisplay().SignedString(),
			d.Outflow.ToDisplay().Neg().ToDisplay().SignedString(),
			d.Balance.ToDisplay().String(),
			d.Confidence.String(),
			warningList(d.Warnings),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "In", "Out", "Balance", "Confidence", "Warnings"},
		Rows:   rows,
	})

	doc.H2("Summary")
	s := f.Summary
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Required funds", s.RequiredFunds.String()},
			{"Daily deficit", s.DailyDeficit.ToDisplay().String()},
			{"Yearly deficit", s.YearlyDeficit.ToDisplay().String()},
			{"Required gross income", s.RequiredIncome.ToDisplay().String()},
			{"Hourly rate (20h/week)", s.HourlyRate20.ToDisplay().String()},
			{"Hourly rate (30h/week)", s.HourlyRate30.ToDisplay().String()},
			{"Hourly rate (40h/week)", s.HourlyRate40.ToDisplay().String()},
		},
	})

	doc.H2("Statistics")
	st := f.Stats
	volatilityLabel := "Balance volatility (projected)"
	if st.HistoricalVolatility {
		volatilityLabel = "Balance volatility (historical)"
	}
	statRows := [][]string{
		{"Average balance", st.AverageBalance.ToDisplay().String()},
		{"Minimum balance", st.MinBalance.ToDisplay().String()},
		{"Maximum balance", st.MaxBalance.ToDisplay().String()},
		{"Average inflow", st.AverageInflow.ToDisplay().String()},
		{"Average outflow", st.AverageOutflow.ToDisplay().String()},
		{volatilityLabel, st.BalanceVolatility.ToDisplay().String()},
	}
	if f.Account.Type == cashflow.Credit {
		statRows = append(statRows, []string{"Peak credit utilization", st.PeakUtilization.String()})
	}
	doc.Table(md.TableSet{Header: []string{"Metric", "Value"}, Rows: statRows})

	return doc.String()
}

// CustomForecastMarkdown renders a multi-account forecast.
func CustomForecastMarkdown(f *cashflow.CustomForecast) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Custom Forecast (%s to %s)", f.Range.From, f.Range.To))

	names := make([]string, 0, len(f.Accounts))
	for _, a := range f.Accounts {
		names = append(names, a.ID)
	}
	doc.PlainText(fmt.Sprintf("Accounts: %v. Overall confidence %s.", names, f.Confidence))

	doc.H2("Daily Totals")
	rows := make([][]string, 0, len(f.Days))
	for _, d := range f.Days {
		rows = append(rows, []string{
			d.Date.String(),
			d.Income.ToDisplay().SignedString(),
			d.Expense.ToDisplay().Neg().ToDisplay().SignedString(),
			d.Balance.ToDisplay().String(),
			d.Confidence.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Income", "Expense", "Balance", "Confidence"},
		Rows:   rows,
	})

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total income", f.Stats.TotalIncome.ToDisplay().String()},
			{"Total expense", f.Stats.TotalExpense.ToDisplay().String()},
			{"Minimum balance", f.Stats.MinBalance.ToDisplay().String()},
			{"Maximum balance", f.Stats.MaxBalance.ToDisplay().String()},
			{"End balance", f.Stats.EndBalance.ToDisplay().String()},
		},
	})

	return doc.String()
}

// TrendMarkdown renders a trend report.
func TrendMarkdown(r *cashflow.TrendReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trend Analysis")
	doc.PlainText(fmt.Sprintf("Based on %d settled transactions. Confidence %s.", r.Transactions, r.Confidence))

	doc.H2("Direction")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Direction", r.Direction.String()},
			{"Strength", r.Strength.String()},
			{"Average daily change", r.AverageDailyChange.ToDisplay().SignedString()},
			{"Volatility", r.Volatility.ToDisplay().String()},
			{"Seasonal strength", r.SeasonalStrength.String()},
		},
	})

	if len(r.Seasonal.Monthly) > 0 {
		doc.H2("Monthly Seasonality")
		rows := make([][]string, 0, len(r.Seasonal.Monthly))
		for m := 1; m <= 12; m++ {
			month := time.Month(m)
			if amount, ok := r.Seasonal.Monthly[month]; ok {
				rows = append(rows, []string{month.String(), amount.ToDisplay().SignedString()})
			}
		}
		doc.Table(md.TableSet{Header: []string{"Month", "Net"}, Rows: rows})
	}

	if len(r.Seasonal.HolidayProximity) > 0 {
		doc.H2("Holiday Proximity")
		rows := make([][]string, 0, len(r.Seasonal.HolidayProximity))
		for _, name := range []string{"new_year", "independence_day", "thanksgiving", "christmas"} {
			if amount, ok := r.Seasonal.HolidayProximity[name]; ok {
				rows = append(rows, []string{name, amount.ToDisplay().SignedString()})
			}
		}
		doc.Table(md.TableSet{Header: []string{"Holiday", "Net"}, Rows: rows})
	}

	return doc.String()
}

// SplitMarkdown renders the parts of an exact distribution.
func SplitMarkdown(total cashflow.Money, parts []cashflow.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Split of %s", total))
	rows := make([][]string, 0, len(parts))
	for i, p := range parts {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), p.String()})
	}
	doc.Table(md.TableSet{Header: []string{"Part", "Amount"}, Rows: rows})

	return doc.String()
}

func warningList(warnings []cashflow.Warning) string {
	if len(warnings) == 0 {
		return "-"
	}
	var buf bytes.Buffer
	for i, w := range warnings {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(string(w))
	}
	return buf.String()
}
