// Package rates computes the second lowest cost Silver plan (SLCSP) for a
// list of ZIP codes.
//
// The computation joins two independently built indexes:
//
//   - RateAreaIndex: rate area → ascending distinct Silver rates
//   - ZipLocalityIndex: ZIP code → set of rate areas
//
// A ZIP code resolves only when it maps to exactly one rate area and that
// area offers at least two distinct Silver rates. Everything else is a valid
// unresolved answer, not an error.
package rates

import "github.com/shopspring/decimal"

// MetalSilver is the only metal level that takes part in ranking.
// Matching is exact and case-sensitive.
const MetalSilver = "Silver"

// PlanRecord is one row of the plan catalog.
type PlanRecord struct {
	MetalLevel string
	Rate       decimal.Decimal
	RateArea   int
}

// ZipRecord associates a ZIP code with one rate area. A ZIP code may appear
// in several records.
type ZipRecord struct {
	Zipcode  string // kept as text, leading zeros matter
	RateArea int
}

// ResolvedRate is the answer for one requested ZIP code.
// Rate is only meaningful when Resolved is true.
type ResolvedRate struct {
	Zipcode  string
	Rate     decimal.Decimal
	Resolved bool
}

// RateString returns the rate with exactly two fraction digits, or "" when
// the ZIP code is unresolved.
func (r ResolvedRate) RateString() string {
	if !r.Resolved {
		return ""
	}
	return r.Rate.StringFixed(2)
}

func unresolved(zip string) ResolvedRate {
	return ResolvedRate{Zipcode: zip}
}
