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
		Type:    TypePaymentNotice,
		Prefix:  "AVE",
		Title:   "Avis d'échéance",
		Prepare: preparePaymentNotice,
	})
}

// PaymentNoticePayload drives the monthly rent call sent ahead of the due
// date.
type PaymentNoticePayload struct {
	Landlord      Party               `json:"landlord"`
	Tenant        Party               `json:"tenant"`
	Property      PropertyDesignation `json:"property"`
	Period        Date                `json:"period"`
	RentAmount    Money               `json:"rentAmount"`
	ChargesAmount Money               `json:"chargesAmount"`
	DueDate       Date                `json:"dueDate"`
	City          string              `json:"city,omitempty"`
}

func preparePaymentNotice(raw []byte) (Renderer, error) {
	var p PaymentNoticePayload
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
	if err := requireDate(p.DueDate, "dueDate"); err != nil {
		return nil, err
	}
	if err := requirePositive(p.RentAmount, "rentAmount"); err != nil {
		return nil, err
	}
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// TotalDue is the amount called for the period.
func (p *PaymentNoticePayload) TotalDue() float64 {
	return calc.Round2(float64(p.RentAmount) + float64(p.ChargesAmount))
}

func (p *PaymentNoticePayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "AVIS D'ÉCHÉANCE"

	body := fmt.Sprintf(
		"Sauf erreur ou omission de notre part, nous vous prions de bien vouloir régler avant le %s "+
			"le montant du terme de %s pour le logement désigné ci-dessous.",
		format.Date(p.DueDate.Time, format.DateLong),
		format.Date(p.Period.Time, format.DateMonthYear),
	)

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection(body),
		propertySection(p.Property),
		p.amountsSection(),
		legalSection("Le présent avis d'échéance est adressé à titre d'information ; il ne vaut pas "+
			"quittance. La quittance sera délivrée après encaissement effectif du paiement "+
			"(article 21 de la loi n° 89-462 du 6 juillet 1989)."),
	)
}

func (p *PaymentNoticePayload) amountsSection() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Détail de l'échéance", 2)
		tbl := s.NewTable(
			layout.Column{Header: "Désignation"},
			layout.Column{Header: "Montant", Width: 45, Align: "R"},
		)
		tbl.AddRow("Loyer nu", money(p.RentAmount))
		tbl.AddRow("Provisions pour charges", money(p.ChargesAmount))
		tbl.AddRow("Total à régler", format.Currency(p.TotalDue()))
		tbl.MarkTotalRow()
		if err := tbl.Render(); err != nil {
			return err
		}
		s.HighlightBox("Montant à régler avant le "+format.Date(p.DueDate.Time, format.DateShort),
			format.Currency(p.TotalDue()))
		return nil
	}
}
