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
		Type:    TypeIndexationLetter,
		Prefix:  "REV",
		Title:   "Révision annuelle du loyer",
		Prepare: prepareIndexationLetter,
	})
}

// IndexationLetterPayload drives the annual rent revision letter. The rent
// and the two index values are strict float64: a malformed figure must fail
// the generation, not default to zero inside a legal formula.
type IndexationLetterPayload struct {
	Landlord       Party               `json:"landlord"`
	Tenant         Party               `json:"tenant"`
	Property       PropertyDesignation `json:"property"`
	OldRent        float64             `json:"oldRent"`
	OldIndex       float64             `json:"oldIndex"`
	NewIndex       float64             `json:"newIndex"`
	OldIndexPeriod string              `json:"oldIndexPeriod"` // e.g. "2e trimestre 2024"
	NewIndexPeriod string              `json:"newIndexPeriod"`
	ChargesAmount  Money               `json:"chargesAmount,omitempty"`
	EffectiveDate  Date                `json:"effectiveDate"`
	City           string              `json:"city,omitempty"`

	result calc.IndexationResult
}

func prepareIndexationLetter(raw []byte) (Renderer, error) {
	var p IndexationLetterPayload
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
	if err := requireText(p.OldIndexPeriod, "oldIndexPeriod"); err != nil {
		return nil, err
	}
	if err := requireText(p.NewIndexPeriod, "newIndexPeriod"); err != nil {
		return nil, err
	}
	if err := requireDate(p.EffectiveDate, "effectiveDate"); err != nil {
		return nil, err
	}
	res, err := calc.Indexation(p.OldRent, p.OldIndex, p.NewIndex)
	if err != nil {
		return nil, err
	}
	p.result = res
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// Result exposes the computed revision.
func (p *IndexationLetterPayload) Result() calc.IndexationResult { return p.result }

func (p *IndexationLetterPayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "RÉVISION ANNUELLE DU LOYER"
	res := p.result

	body := fmt.Sprintf(
		"Conformément à la clause de révision de votre bail, le loyer du logement désigné ci-dessous "+
			"est révisé à la date du %s en fonction de la variation de l'indice de référence des "+
			"loyers (IRL) publié par l'INSEE.",
		format.Date(p.EffectiveDate.Time, format.DateLong),
	)

	newTotal := calc.Round2(res.NewRent + float64(p.ChargesAmount))

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection(body),
		propertySection(p.Property),
		func(s *layout.Sheet) error {
			s.Heading("Calcul de la révision", 2)
			s.KeyValue("Loyer actuel :", format.Currency(res.OldRent))
			s.KeyValue(fmt.Sprintf("IRL de référence (%s) :", p.OldIndexPeriod),
				fmt.Sprintf("%.2f", res.OldIndex))
			s.KeyValue(fmt.Sprintf("Nouvel IRL (%s) :", p.NewIndexPeriod),
				fmt.Sprintf("%.2f", res.NewIndex))
			s.KeyValue("Variation :", fmt.Sprintf("%+.2f %%", res.VariationPercent))
			s.Spacer(2)
			s.Paragraph(fmt.Sprintf(
				"Nouveau loyer = %s × %.2f / %.2f = %s",
				format.Currency(res.OldRent), res.NewIndex, res.OldIndex,
				format.Currency(res.NewRent),
			))
			s.HighlightBox("Nouveau loyer mensuel hors charges", format.Currency(res.NewRent))
			if p.ChargesAmount > 0 {
				s.Paragraph(fmt.Sprintf(
					"Provisions pour charges inchangées : %s. Montant total à régler à compter du %s : %s.",
					money(p.ChargesAmount),
					format.Date(p.EffectiveDate.Time, format.DateLong),
					format.Currency(newTotal),
				))
			}
			return nil
		},
		legalSection("Révision effectuée en application de l'article 17-1 de la loi n° 89-462 du "+
			"6 juillet 1989. La variation du loyer ne peut excéder la variation de l'indice de "+
			"référence des loyers publié par l'INSEE."),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)
}
