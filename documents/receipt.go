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
		Type:    TypeReceipt,
		Prefix:  "QUI",
		Title:   "Quittance de loyer",
		Prepare: prepareReceipt,
	})
}

// ReceiptPayload drives a rent receipt (quittance) or, when the payment
// only partly covers the rent call, a partial payment receipt (reçu).
type ReceiptPayload struct {
	Landlord       Party               `json:"landlord"`
	Tenant         Party               `json:"tenant"`
	Property       PropertyDesignation `json:"property"`
	Period         Date                `json:"period"`
	RentAmount     Money               `json:"rentAmount"`
	ChargesAmount  Money               `json:"chargesAmount"`
	AmountReceived Money               `json:"amountReceived"`
	PaymentDate    Date                `json:"paymentDate,omitempty"`
	City           string              `json:"city,omitempty"` // default: landlord's city
}

func prepareReceipt(raw []byte) (Renderer, error) {
	var p ReceiptPayload
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
	if err := requireDate(p.Period, "period"); err != nil {
		return nil, err
	}
	if err := requirePositive(p.RentAmount, "rentAmount"); err != nil {
		return nil, err
	}
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// TotalDue is the monthly rent call: rent plus charge provisions.
func (p *ReceiptPayload) TotalDue() float64 {
	return calc.Round2(float64(p.RentAmount) + float64(p.ChargesAmount))
}

// RemainingDue is the unpaid part of the rent call, floored at zero.
func (p *ReceiptPayload) RemainingDue() float64 {
	due := calc.Round2(p.TotalDue() - float64(p.AmountReceived))
	if due < 0 {
		return 0
	}
	return due
}

// Partial reports whether the payment covers less than the rent call, in
// which case only a payment receipt may be issued, not a quittance.
func (p *ReceiptPayload) Partial() bool {
	return float64(p.AmountReceived)+0.005 < p.TotalDue()
}

func (p *ReceiptPayload) Render(w io.Writer, ctx RenderContext) error {
	title := "QUITTANCE DE LOYER"
	if p.Partial() {
		title = "REÇU DE PAIEMENT PARTIEL"
	}

	body := fmt.Sprintf(
		"Je soussigné(e) %s, bailleur du logement désigné ci-dessous, déclare avoir reçu de %s "+
			"la somme de %s au titre du paiement du loyer et des charges pour la période de %s.",
		p.Landlord.Name, p.Tenant.Name,
		format.Currency(float64(p.AmountReceived)),
		format.Date(p.Period.Time, format.DateMonthYear),
	)
	if !p.PaymentDate.IsZero() {
		body += fmt.Sprintf(" Paiement reçu le %s.", format.Date(p.PaymentDate.Time, format.DateShort))
	}

	legal := "Cette quittance annule tous les reçus qui auraient pu être établis précédemment en cas de " +
		"paiement partiel du montant du présent terme. Elle est à conserver pendant trois ans par le " +
		"locataire (article 7-1 de la loi n° 89-462 du 6 juillet 1989)."
	if p.Partial() {
		legal = "Le présent reçu est délivré au titre d'un paiement partiel ; il ne vaut pas quittance " +
			"pour la période considérée (article 21 de la loi n° 89-462 du 6 juillet 1989). Le solde " +
			"reste dû sans délai."
	}

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection(body),
		propertySection(p.Property),
		p.amountsSection(),
		legalSection(legal),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)
}

func (p *ReceiptPayload) amountsSection() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Détail du règlement", 2)
		tbl := s.NewTable(
			layout.Column{Header: "Désignation"},
			layout.Column{Header: "Montant", Width: 45, Align: "R"},
		)
		tbl.AddRow("Loyer nu", money(p.RentAmount))
		tbl.AddRow("Provisions pour charges", money(p.ChargesAmount))
		tbl.AddRow("Total dû", format.Currency(p.TotalDue()))
		tbl.AddRow("Montant reçu", money(p.AmountReceived))
		if p.Partial() {
			tbl.AddRow("Solde restant dû", format.Currency(p.RemainingDue()))
		}
		tbl.MarkTotalRow()
		return tbl.Render()
	}
}
