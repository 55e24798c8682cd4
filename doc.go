// Package cashflow provides the forecasting and exact-money distribution
// engine for a bills-and-cashflow application. It is designed to be a pure
// library: every call receives its inputs as immutable values, computes a
// deterministic result, and returns it, leaving storage and transport to
// the host.
//
// The core functionalities include:
//   - Fixed-Precision Money: a two-domain decimal money type (2-digit
//     Display at system boundaries, 4-digit Calculation for intermediate
//     arithmetic) with half-up rounding and ingestion precision gates.
//   - Exact Distribution: equal and percentage-weighted splits of a total
//     into parts whose sum is bit-for-bit equal to the total, using the
//     largest-remainder method.
//   - Daily Projection: walking a date window and accumulating known and
//     recurring obligations into a balance trajectory with warning flags
//     and per-day confidence scores.
//   - Forecast Metrics: the deficit, required-income and hourly-rate chain
//     derived from a projection's minimum balance.
//   - Trend Analysis: seasonality, volatility and trend direction computed
//     over historical transaction batches.
//   - Data Persistence: a human-readable JSONL ledger of accounts, bills,
//     incomes and settled history.
//
// This package serves as the foundational logic for the `cfc` command-line
// tool and for any service layer that fronts it.
package cashflow
