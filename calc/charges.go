package calc

// ChargeLine is one category of a charge breakdown.
type ChargeLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Reconciliation is the outcome of the annual charge reconciliation
// (régularisation des charges). A positive balance is a refund owed to the
// tenant; a negative balance is an additional amount due.
type Reconciliation struct {
	ProvisionsPaid float64
	ActualCharges  float64
	Balance        float64
	Breakdown      []ChargeLine
	// Estimated is set when no breakdown was supplied and the categories
	// below were synthesized proportionally. Renderers must flag such a
	// breakdown as illustrative: it is a display fallback, not a legal
	// computation.
	Estimated bool
}

// defaultSplit is the illustrative category split applied when the caller
// supplies no breakdown, as a share of the actual charges.
var defaultSplit = []struct {
	label string
	share float64
}{
	{"Eau froide et eau chaude", 0.30},
	{"Chauffage collectif", 0.25},
	{"Entretien des parties communes", 0.20},
	{"Enlèvement des ordures ménagères", 0.15},
	{"Électricité des parties communes", 0.10},
}

// ReconcileCharges computes the reconciliation balance and, when no
// breakdown is given, synthesizes the default proportional split. The last
// synthesized line absorbs the rounding remainder so the breakdown sums to
// the actual charges exactly.
func ReconcileCharges(provisionsPaid, actualCharges float64, breakdown []ChargeLine) Reconciliation {
	r := Reconciliation{
		ProvisionsPaid: Round2(provisionsPaid),
		ActualCharges:  Round2(actualCharges),
		Breakdown:      breakdown,
	}
	r.Balance = Round2(r.ProvisionsPaid - r.ActualCharges)

	if len(breakdown) == 0 && r.ActualCharges > 0 {
		r.Estimated = true
		r.Breakdown = make([]ChargeLine, len(defaultSplit))
		var allocated float64
		for i, cat := range defaultSplit {
			amount := Round2(r.ActualCharges * cat.share)
			if i == len(defaultSplit)-1 {
				amount = Round2(r.ActualCharges - allocated)
			}
			allocated = Round2(allocated + amount)
			r.Breakdown[i] = ChargeLine{Label: cat.label, Amount: amount}
		}
	}
	return r
}
