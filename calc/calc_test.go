package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexation(t *testing.T) {
	res, err := Indexation(750, 100, 103)
	require.NoError(t, err)

	assert.Equal(t, 772.50, res.NewRent)
	assert.Equal(t, 3.00, res.VariationPercent)
}

func TestIndexationRounding(t *testing.T) {
	// 812.33 * 137.26 / 135.84 = 820.822... -> 820.82
	res, err := Indexation(812.33, 135.84, 137.26)
	require.NoError(t, err)

	assert.Equal(t, 820.82, res.NewRent)
	assert.Equal(t, 1.05, res.VariationPercent)
}

func TestIndexationDecreasingIndex(t *testing.T) {
	res, err := Indexation(800, 104, 102)
	require.NoError(t, err)

	assert.Equal(t, 784.62, res.NewRent)
	assert.Negative(t, res.VariationPercent)
}

func TestIndexationDomainErrors(t *testing.T) {
	tests := []struct {
		name                        string
		oldRent, oldIndex, newIndex float64
	}{
		{"zero old rent", 0, 100, 103},
		{"negative old rent", -10, 100, 103},
		{"zero old index", 750, 0, 103},
		{"negative old index", 750, -1, 103},
		{"zero new index", 750, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Indexation(tt.oldRent, tt.oldIndex, tt.newIndex)
			require.Error(t, err)

			var ce *CalcError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "Indexation", ce.Op)
		})
	}
}

func TestBuildSchedule(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	entries, err := BuildSchedule(1000, 3, start)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []float64{334, 334, 332}, amounts(entries))
	assert.Equal(t, []float64{666, 332, 0}, balances(entries))
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), entries[1].Date)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), entries[2].Date)
}

func TestBuildScheduleInvariants(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		debt  float64
		count int
	}{
		{1000, 3},
		{100.50, 4},
		{0, 5},
		{10, 20},
		{999.99, 1},
		{2456.78, 12},
	}
	for _, c := range cases {
		entries, err := BuildSchedule(c.debt, c.count, start)
		require.NoError(t, err)
		require.Len(t, entries, c.count)

		var sum float64
		prev := c.debt + 1
		for i, e := range entries {
			sum = Round2(sum + e.Amount)
			assert.GreaterOrEqual(t, e.Amount, 0.0)
			assert.LessOrEqual(t, e.RemainingBalance, prev, "balance must not increase")
			assert.Equal(t, i+1, e.Sequence)
			prev = e.RemainingBalance
		}
		assert.Equal(t, Round2(c.debt), sum, "debt=%v count=%d", c.debt, c.count)
		assert.Equal(t, 0.0, entries[len(entries)-1].RemainingBalance)
	}
}

func TestBuildScheduleDomainErrors(t *testing.T) {
	start := time.Now()

	_, err := BuildSchedule(1000, 0, start)
	assert.Error(t, err)

	_, err = BuildSchedule(-5, 3, start)
	assert.Error(t, err)
}

func TestTotalDebt(t *testing.T) {
	entries := []LedgerEntry{
		{Label: "Loyer mars 2025", Amount: 650.10},
		{Label: "Loyer avril 2025", Amount: 650.10},
		{Label: "Charges avril 2025", Amount: 50.05},
	}
	assert.Equal(t, 1350.25, TotalDebt(entries))
	assert.Equal(t, 0.0, TotalDebt(nil))
}

func TestReconcileChargesRefund(t *testing.T) {
	r := ReconcileCharges(1200, 950, nil)

	assert.Equal(t, 250.0, r.Balance)
	assert.True(t, r.Estimated)
	require.Len(t, r.Breakdown, 5)

	var sum float64
	for _, line := range r.Breakdown {
		sum = Round2(sum + line.Amount)
	}
	assert.Equal(t, 950.0, sum, "synthesized breakdown must sum to actual charges")
}

func TestReconcileChargesAdditionalDue(t *testing.T) {
	r := ReconcileCharges(800, 950, nil)
	assert.Equal(t, -150.0, r.Balance)
}

func TestReconcileChargesKeepsProvidedBreakdown(t *testing.T) {
	breakdown := []ChargeLine{
		{Label: "Eau", Amount: 400},
		{Label: "Ascenseur", Amount: 550},
	}
	r := ReconcileCharges(1000, 950, breakdown)

	assert.False(t, r.Estimated)
	assert.Equal(t, breakdown, r.Breakdown)
	assert.Equal(t, 50.0, r.Balance)
}

func TestSolvencyRatio(t *testing.T) {
	assert.Equal(t, 3.13, SolvencyRatio(2500, 800))
	assert.Equal(t, 0.0, SolvencyRatio(2500, 0))
	assert.Equal(t, 0.0, SolvencyRatio(2500, -100))
}

func TestIncomeTotal(t *testing.T) {
	g := 900.0
	in := Income{Salary: 2100, OtherIncome: 150.50, GuarantorIncome: &g}
	assert.Equal(t, 3150.50, in.Total())

	noGuarantor := Income{Salary: 2100, AidAmount: 200}
	assert.Equal(t, 2300.0, noGuarantor.Total())
}

func amounts(entries []ScheduleEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Amount
	}
	return out
}

func balances(entries []ScheduleEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.RemainingBalance
	}
	return out
}
