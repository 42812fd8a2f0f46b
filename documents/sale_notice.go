package documents

import (
	"fmt"
	"io"

	"github.com/owenchateau/locadoc/format"
	"github.com/owenchateau/locadoc/layout"
)

func init() {
	register(Descriptor{
		Type:    TypeSaleNotice,
		Prefix:  "AMV",
		Title:   "Avis de mise en vente",
		Prepare: prepareSaleNotice,
	})
}

// SaleNoticePayload drives the sale notice carrying the tenant's statutory
// right of first refusal.
type SaleNoticePayload struct {
	Landlord       Party               `json:"landlord"`
	Tenant         Party               `json:"tenant"`
	Property       PropertyDesignation `json:"property"`
	SalePrice      float64             `json:"salePrice"`
	SaleConditions string              `json:"saleConditions,omitempty"`
	City           string              `json:"city,omitempty"`
}

func prepareSaleNotice(raw []byte) (Renderer, error) {
	var p SaleNoticePayload
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
	if p.SalePrice <= 0 {
		return nil, &FieldError{Field: "salePrice"}
	}
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

func (p *SaleNoticePayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "AVIS DE MISE EN VENTE"

	body := fmt.Sprintf(
		"Nous vous informons de notre intention de mettre en vente le logement que vous occupez, "+
			"désigné ci-dessous, au prix de %s (%s).",
		format.Currency(p.SalePrice), format.AmountInWords(p.SalePrice),
	)

	offer := "En votre qualité de locataire occupant, vous bénéficiez d'un droit de préemption sur ce " +
		"logement. La présente notification vaut offre de vente à votre profit ; cette offre est " +
		"valable deux mois à compter de sa réception. Passé ce délai sans acceptation de votre part, " +
		"l'offre sera caduque et le logement pourra être vendu à un tiers."
	if p.SaleConditions != "" {
		offer += " Conditions de la vente : " + p.SaleConditions + "."
	}

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection("Lettre recommandée avec accusé de réception."),
		paragraphSection(body),
		propertySection(p.Property),
		func(s *layout.Sheet) error {
			s.HighlightBox("Prix de vente proposé", format.Currency(p.SalePrice))
			return nil
		},
		paragraphSection(offer),
		legalSection("Notification faite en application de l'article 10 de la loi n° 75-1351 du "+
			"31 décembre 1975 relative à la protection des occupants de locaux à usage d'habitation. "+
			"L'offre de vente est valable deux mois à compter de sa réception."),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)
}
