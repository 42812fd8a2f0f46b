// Package calc implements the financial computations embedded in the
// generated documents: index-based rent revision, amortized debt schedules,
// charge-provision reconciliation and solvency ratios.
//
// Amounts are euros carried as float64; every formula rounds to the cent at
// the point its result becomes document-visible. Domain violations are
// reported as *CalcError, never by panicking or silently defaulting: a
// wrong figure in a legal document is worse than no document.
package calc

import (
	"fmt"
	"math"
)

// CalcError reports a domain violation in one of the financial formulas.
// It is distinct from the missing-field errors raised while preparing a
// document payload, so callers can tell "you forgot a field" apart from
// "this computation is not legally meaningful".
type CalcError struct {
	Op     string // formula name, e.g. "Indexation"
	Reason string
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("calc.%s: %s", e.Op, e.Reason)
}

// Round2 rounds an amount to the cent, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IndexationResult is the outcome of a rent revision against a reference
// index (IRL).
type IndexationResult struct {
	OldRent          float64
	NewRent          float64
	OldIndex         float64
	NewIndex         float64
	VariationPercent float64
}

// Indexation computes the legally revised rent:
//
//	newRent = round(oldRent * newIndex / oldIndex, 2)
//
// A non-positive rent or index is rejected with a *CalcError; defaulting
// any of them would yield a legally wrong figure.
func Indexation(oldRent, oldIndex, newIndex float64) (IndexationResult, error) {
	switch {
	case oldRent <= 0:
		return IndexationResult{}, &CalcError{Op: "Indexation", Reason: "old rent must be positive"}
	case oldIndex <= 0:
		return IndexationResult{}, &CalcError{Op: "Indexation", Reason: "old index must be positive"}
	case newIndex <= 0:
		return IndexationResult{}, &CalcError{Op: "Indexation", Reason: "new index must be positive"}
	}
	newRent := Round2(oldRent * newIndex / oldIndex)
	return IndexationResult{
		OldRent:          oldRent,
		NewRent:          newRent,
		OldIndex:         oldIndex,
		NewIndex:         newIndex,
		VariationPercent: Round2((newRent - oldRent) / oldRent * 100),
	}, nil
}

// SolvencyRatio returns the income-to-rent ratio rounded to two decimals,
// or 0 by convention when the rent is not positive.
func SolvencyRatio(totalIncome, rentAmount float64) float64 {
	if rentAmount <= 0 {
		return 0
	}
	return Round2(totalIncome / rentAmount)
}

// Income groups the revenue lines entering a solvency check. The zero-value
// defaults mirror the business rules: OtherIncome and AidAmount default to
// 0 when absent, while GuarantorIncome stays nil when unknown — a guarantor
// with no declared income and no guarantor at all are different situations.
type Income struct {
	Salary          float64
	OtherIncome     float64  // absent -> 0
	AidAmount       float64  // absent -> 0
	GuarantorIncome *float64 // absent -> nil, excluded from the total
}

// Total sums the declared revenue lines.
func (in Income) Total() float64 {
	t := in.Salary + in.OtherIncome + in.AidAmount
	if in.GuarantorIncome != nil {
		t += *in.GuarantorIncome
	}
	return Round2(t)
}
