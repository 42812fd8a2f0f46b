package calc

import (
	"math"
	"time"
)

// ScheduleEntry is one installment of a debt repayment plan.
type ScheduleEntry struct {
	Sequence         int       `json:"sequence"`
	Date             time.Time `json:"date"`
	Amount           float64   `json:"amount"`
	RemainingBalance float64   `json:"remainingBalance"`
}

// LedgerEntry is one line of a debt ledger (an unpaid rent call, a charge
// arrear, ...).
type LedgerEntry struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// TotalDebt sums a debt ledger to the cent.
func TotalDebt(entries []LedgerEntry) float64 {
	var t float64
	for _, e := range entries {
		t += e.Amount
	}
	return Round2(t)
}

// BuildSchedule spreads totalDebt over the given number of monthly
// installments starting at start. Every installment but the last is the
// euro-ceiling of the even split; the last absorbs the rounding remainder
// so the amounts sum to totalDebt exactly. Remaining balances are
// non-increasing and the final balance is always 0.
func BuildSchedule(totalDebt float64, installments int, start time.Time) ([]ScheduleEntry, error) {
	if installments < 1 {
		return nil, &CalcError{Op: "BuildSchedule", Reason: "installment count must be at least 1"}
	}
	if totalDebt < 0 {
		return nil, &CalcError{Op: "BuildSchedule", Reason: "total debt cannot be negative"}
	}

	totalDebt = Round2(totalDebt)
	per := math.Ceil(totalDebt / float64(installments))
	remaining := totalDebt

	entries := make([]ScheduleEntry, 0, installments)
	for i := 0; i < installments; i++ {
		amount := per
		if i == installments-1 || amount > remaining {
			amount = remaining
		}
		amount = Round2(amount)
		remaining = Round2(remaining - amount)
		entries = append(entries, ScheduleEntry{
			Sequence:         i + 1,
			Date:             start.AddDate(0, i, 0),
			Amount:           amount,
			RemainingBalance: remaining,
		})
	}
	return entries, nil
}
