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
		Type:    TypeFormalNotice,
		Prefix:  "MED",
		Title:   "Mise en demeure de payer",
		Prepare: prepareFormalNotice,
	})
}

// defaultNoticeDeadlineDays is the payment deadline granted by a formal
// demand when the payload does not set one.
const defaultNoticeDeadlineDays = 8

// FormalNoticePayload drives the mise en demeure, the formal payment
// demand that precedes judicial recovery.
type FormalNoticePayload struct {
	Landlord     Party               `json:"landlord"`
	Tenant       Party               `json:"tenant"`
	Property     PropertyDesignation `json:"property"`
	Debts        []calc.LedgerEntry  `json:"debts"`
	DeadlineDays int                 `json:"deadlineDays,omitempty"` // default: 8
	City         string              `json:"city,omitempty"`
}

func prepareFormalNotice(raw []byte) (Renderer, error) {
	var p FormalNoticePayload
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
	if p.DeadlineDays <= 0 {
		p.DeadlineDays = defaultNoticeDeadlineDays
	}
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// TotalDebt sums the debt ledger.
func (p *FormalNoticePayload) TotalDebt() float64 {
	return calc.TotalDebt(p.Debts)
}

func (p *FormalNoticePayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "MISE EN DEMEURE DE PAYER"
	total := p.TotalDebt()

	body := fmt.Sprintf(
		"Malgré nos précédentes relances, nous constatons que vous restez redevable, au titre du "+
			"logement désigné ci-dessous, de la somme de %s (%s), dont le détail figure "+
			"ci-après. En conséquence, nous vous mettons en demeure de régler l'intégralité de "+
			"cette somme sous %d jours à compter de la réception de la présente.",
		format.Currency(total), format.AmountInWords(total), p.DeadlineDays,
	)

	legal := "La présente mise en demeure est adressée en application de l'article 24 de la loi " +
		"n° 89-462 du 6 juillet 1989 et de la clause résolutoire du bail. À défaut de paiement " +
		"intégral dans le délai imparti, nous saisirons la juridiction compétente aux fins de " +
		"résiliation du bail et de recouvrement des sommes dues, sans autre avis."

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection("Lettre recommandée avec accusé de réception."),
		paragraphSection(body),
		propertySection(p.Property),
		p.debtsSection(),
		legalSection(legal),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)
}

func (p *FormalNoticePayload) debtsSection() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Détail des sommes dues", 2)
		tbl := s.NewTable(
			layout.Column{Header: "Désignation"},
			layout.Column{Header: "Montant", Width: 45, Align: "R"},
		)
		for _, d := range p.Debts {
			tbl.AddRow(d.Label, format.Currency(d.Amount))
		}
		tbl.AddRow("Total", format.Currency(p.TotalDebt()))
		tbl.MarkTotalRow()
		if err := tbl.Render(); err != nil {
			return err
		}
		s.HighlightBox("Montant total dû", format.Currency(p.TotalDebt()))
		return nil
	}
}
