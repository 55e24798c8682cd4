package cashflow

// USD is a helper for tests to create display-domain dollars from a const.
func USD(v float64) Money { return M(v, "USD") }

// CUSD is a helper for tests to create calculation-domain dollars.
func CUSD(v float64) Money { return C(v, "USD") }
