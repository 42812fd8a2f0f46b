package documents

import (
	"fmt"
	"io"

	"github.com/owenchateau/locadoc/calc"
	"github.com/owenchateau/locadoc/format"
	"github.com/owenchateau/locadoc/layout"
)

func init() {
	register(Descriptor{
		Type:    TypePaymentPlan,
		Prefix:  "ECH",
		Title:   "Protocole d'apurement de dette locative",
		Prepare: preparePaymentPlan,
	})
}

// PaymentPlanPayload drives the amicable repayment agreement: a debt ledger
// spread over monthly installments, signed by both parties.
type PaymentPlanPayload struct {
	Landlord     Party               `json:"landlord"`
	Tenant       Party               `json:"tenant"`
	Property     PropertyDesignation `json:"property"`
	Debts        []calc.LedgerEntry  `json:"debts"`
	Installments int                 `json:"installments"`
	StartDate    Date                `json:"startDate"`
	City         string              `json:"city,omitempty"`

	schedule []calc.ScheduleEntry
}

func preparePaymentPlan(raw []byte) (Renderer, error) {
	var p PaymentPlanPayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if err := requireParty(p.Landlord, "landlord"); err != nil {
		return nil, err
	}
	if err := requireParty(p.Tenant, "tenant"); err != nil {
		return nil, err
	}
	if err := requireProperty(p.Property, "property"); err != nil {
		return nil, err
	}
	if len(p.Debts) == 0 {
		return nil, &FieldError{Field: "debts"}
	}
	if err := requireDate(p.StartDate, "startDate"); err != nil {
		return nil, err
	}
	schedule, err := calc.BuildSchedule(calc.TotalDebt(p.Debts), p.Installments, p.StartDate.Time)
	if err != nil {
		return nil, err
	}
	p.schedule = schedule
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// TotalDebt sums the debt ledger.
func (p *PaymentPlanPayload) TotalDebt() float64 {
	return calc.TotalDebt(p.Debts)
}

// Schedule exposes the computed installment plan.
func (p *PaymentPlanPayload) Schedule() []calc.ScheduleEntry { return p.schedule }

func (p *PaymentPlanPayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "PROTOCOLE D'APUREMENT DE DETTE LOCATIVE"
	total := p.TotalDebt()

	body := fmt.Sprintf(
		"Entre %s, bailleur, et %s, locataire du logement désigné ci-dessous, il est convenu ce qui "+
			"suit : le locataire reconnaît devoir la somme de %s (%s) au titre des impayés détaillés "+
			"ci-après et s'engage à l'apurer en %d mensualités selon l'échéancier joint, en sus du "+
			"paiement du loyer courant.",
		p.Landlord.Name, p.Tenant.Name,
		format.Currency(total), format.AmountInWords(total),
		len(p.schedule),
	)

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection(body),
		propertySection(p.Property),
		p.debtsSection(),
		p.scheduleSection(),
		paragraphSection("Le présent protocole ne vaut pas novation. En cas de défaut de paiement "+
			"d'une seule mensualité à son échéance, l'intégralité du solde redeviendra immédiatement "+
			"exigible et le bailleur retrouvera l'exercice de l'ensemble de ses droits."),
		legalSection("Protocole d'accord amiable établi en deux exemplaires originaux, un pour chaque "+
			"partie."),
		signatureSection(p.City, ctx,
			layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name},
			layout.Signer{Role: "Le locataire", Name: p.Tenant.Name},
		),
	)
}

func (p *PaymentPlanPayload) debtsSection() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Détail de la dette", 2)
		tbl := s.NewTable(
			layout.Column{Header: "Désignation"},
			layout.Column{Header: "Montant", Width: 45, Align: "R"},
		)
		for _, d := range p.Debts {
			tbl.AddRow(d.Label, format.Currency(d.Amount))
		}
		tbl.AddRow("Total de la dette", format.Currency(p.TotalDebt()))
		tbl.MarkTotalRow()
		return tbl.Render()
	}
}

func (p *PaymentPlanPayload) scheduleSection() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Échéancier de remboursement", 2)
		tbl := s.NewTable(
			layout.Column{Header: "Échéance", Width: 35},
			layout.Column{Header: "Date limite de paiement"},
			layout.Column{Header: "Montant", Width: 40, Align: "R"},
			layout.Column{Header: "Solde restant", Width: 40, Align: "R"},
		)
		for _, e := range p.schedule {
			tbl.AddRow(
				format.Ordinal(e.Sequence),
				format.Date(e.Date, format.DateLong),
				format.Currency(e.Amount),
				format.Currency(e.RemainingBalance),
			)
		}
		if err := tbl.Render(); err != nil {
			return err
		}
		s.HighlightBox("Montant total à apurer", format.Currency(p.TotalDebt()))
		return nil
	}
}
