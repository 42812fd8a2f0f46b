package documents

import (
	"fmt"
	"io"
	"math"

	"github.com/owenchateau/locadoc/calc"
	"github.com/owenchateau/locadoc/format"
	"github.com/owenchateau/locadoc/layout"
)

func init() {
	register(Descriptor{
		Type:    TypeChargeReconciliation,
		Prefix:  "REG",
		Title:   "Régularisation annuelle des charges",
		Prepare: prepareChargeReconciliation,
	})
}

// ChargeReconciliationPayload drives the annual charge reconciliation
// statement. Provisions and actual charges are strict float64; when no
// breakdown is supplied, an illustrative proportional split is rendered and
// flagged as such.
type ChargeReconciliationPayload struct {
	Landlord       Party               `json:"landlord"`
	Tenant         Party               `json:"tenant"`
	Property       PropertyDesignation `json:"property"`
	Year           int                 `json:"year"`
	ProvisionsPaid float64             `json:"provisionsPaid"`
	ActualCharges  float64             `json:"actualCharges"`
	Breakdown      []calc.ChargeLine   `json:"breakdown,omitempty"`
	City           string              `json:"city,omitempty"`

	result calc.Reconciliation
}

func prepareChargeReconciliation(raw []byte) (Renderer, error) {
	var p ChargeReconciliationPayload
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
	if p.Year <= 0 {
		return nil, &FieldError{Field: "year"}
	}
	if p.ProvisionsPaid < 0 {
		return nil, &FieldError{Field: "provisionsPaid"}
	}
	if p.ActualCharges < 0 {
		return nil, &FieldError{Field: "actualCharges"}
	}
	p.result = calc.ReconcileCharges(p.ProvisionsPaid, p.ActualCharges, p.Breakdown)
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// Result exposes the computed reconciliation.
func (p *ChargeReconciliationPayload) Result() calc.Reconciliation { return p.result }

func (p *ChargeReconciliationPayload) Render(w io.Writer, ctx RenderContext) error {
	title := fmt.Sprintf("RÉGULARISATION DES CHARGES — ANNÉE %d", p.Year)

	body := fmt.Sprintf(
		"Nous avons procédé à la régularisation annuelle des charges locatives de l'année %d pour le "+
			"logement désigné ci-dessous, par comparaison entre les provisions que vous avez versées "+
			"et les dépenses réellement engagées.",
		p.Year,
	)

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection(body),
		propertySection(p.Property),
		p.breakdownSection(),
		p.balanceSection(),
		legalSection("Régularisation effectuée en application de l'article 23 de la loi n° 89-462 du "+
			"6 juillet 1989. Les pièces justificatives des dépenses sont tenues à votre disposition "+
			"pendant six mois à compter de l'envoi du présent décompte."),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)
}

func (p *ChargeReconciliationPayload) breakdownSection() layout.Section {
	r := p.result
	if len(r.Breakdown) == 0 {
		return nil
	}
	return func(s *layout.Sheet) error {
		heading := "Décompte des charges"
		if r.Estimated {
			heading += " (répartition estimative)"
		}
		s.Heading(heading, 2)
		tbl := s.NewTable(
			layout.Column{Header: "Poste de charges"},
			layout.Column{Header: "Montant", Width: 45, Align: "R"},
		)
		for _, line := range r.Breakdown {
			tbl.AddRow(line.Label, format.Currency(line.Amount))
		}
		tbl.AddRow("Total des charges réelles", format.Currency(r.ActualCharges))
		tbl.MarkTotalRow()
		if err := tbl.Render(); err != nil {
			return err
		}
		if r.Estimated {
			s.LegalMention("Répartition par poste présentée à titre indicatif, établie " +
				"proportionnellement au total des charges réelles.")
		}
		return nil
	}
}

func (p *ChargeReconciliationPayload) balanceSection() layout.Section {
	r := p.result
	return func(s *layout.Sheet) error {
		s.Heading("Solde de la régularisation", 2)
		s.KeyValue("Provisions versées :", format.Currency(r.ProvisionsPaid))
		s.KeyValue("Charges réelles :", format.Currency(r.ActualCharges))
		s.Spacer(2)
		switch {
		case r.Balance > 0:
			s.HighlightBox("Trop-perçu à vous rembourser", format.Currency(r.Balance))
			s.Paragraph("Le remboursement interviendra sur votre prochaine échéance de loyer, sauf " +
				"instruction contraire de votre part.")
		case r.Balance < 0:
			s.HighlightBox("Complément de charges à régler", format.Currency(math.Abs(r.Balance)))
			s.Paragraph("Ce complément est à régler avec votre prochaine échéance de loyer.")
		default:
			s.Paragraph("Les provisions versées couvrent exactement les charges réelles : aucun " +
				"règlement complémentaire n'est dû de part ni d'autre.")
		}
		return nil
	}
}
