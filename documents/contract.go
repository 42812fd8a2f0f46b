package documents

import (
	"fmt"
	"io"
	"strings"

	"github.com/owenchateau/locadoc/format"
	"github.com/owenchateau/locadoc/layout"
)

func init() {
	register(Descriptor{
		Type:    TypeLeaseContract,
		Prefix:  "BAI",
		Title:   "Contrat de location",
		Prepare: prepareLeaseContract,
	})
}

// LeaseContractPayload drives the full lease contract: a flowed multi-page
// document with numbered articles, operator-configured clauses and appended
// PDF annexes.
type LeaseContractPayload struct {
	Landlord    Party               `json:"landlord"`
	Tenant      Party               `json:"tenant"`
	Property    PropertyDesignation `json:"property"`
	Lease       LeaseTerms          `json:"lease"`
	Guarantor   *Party              `json:"guarantor,omitempty"`
	Diagnostics []string            `json:"diagnostics,omitempty"`
	City        string              `json:"city,omitempty"`
}

func prepareLeaseContract(raw []byte) (Renderer, error) {
	var p LeaseContractPayload
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
	if err := requirePositive(p.Lease.RentAmount, "lease.rentAmount"); err != nil {
		return nil, err
	}
	if err := requireDate(p.Lease.StartDate, "lease.startDate"); err != nil {
		return nil, err
	}
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// Filename implements the contract naming policy: the tenant's last name
// and the lot label, slugged.
func (p *LeaseContractPayload) Filename() string {
	lot := p.Property.Label
	if lot == "" {
		lot = p.Property.City
	}
	return fmt.Sprintf("lease_contract_%s_%s.pdf", slug(p.Tenant.LastName()), slug(lot))
}

func (p *LeaseContractPayload) Render(w io.Writer, ctx RenderContext) error {
	s := layout.NewSheet("Contrat de location")

	if err := s.RenderSections(
		p.headerSection(ctx),
		p.partiesArticle(),
		p.premisesArticle(),
		p.durationArticle(),
		p.financialArticle(),
		p.depositArticle(),
		p.landlordObligationsArticle(),
		p.tenantObligationsArticle(),
		p.customClausesArticle(ctx),
		p.annexesArticle(ctx),
	); err != nil {
		return err
	}

	// Signatures always open a fresh page so no party signs a half-filled
	// sheet.
	s.ForceBreak()
	s.Heading("Signatures", 1)
	s.Paragraph("Fait en autant d'exemplaires originaux que de parties, dont un remis à chaque " +
		"signataire qui le reconnaît. Chaque page du présent contrat doit être paraphée par " +
		"l'ensemble des parties.")
	signers := []layout.Signer{
		{Role: "Le bailleur", Name: p.Landlord.Name},
		{Role: "Le locataire", Name: p.Tenant.Name},
	}
	if p.Guarantor != nil {
		signers = append(signers, layout.Signer{Role: "La caution", Name: p.Guarantor.Name})
	}
	s.SignatureBlock(p.City, ctx.GeneratedAt, signers...)
	s.Rule()
	s.LegalMention("Contrat de location soumis au titre Ier bis de la loi n° 89-462 du 6 juillet " +
		"1989 tendant à améliorer les rapports locatifs, et conforme au contrat type défini par le " +
		"décret n° 2015-587 du 29 mai 2015.")

	stamp(s, ctx)

	if len(ctx.Annexes) > 0 {
		appendAnnexes(s, ctx.Annexes, ctx.logger())
	}
	return s.Output(w)
}

func (p *LeaseContractPayload) headerSection(ctx RenderContext) layout.Section {
	return func(s *layout.Sheet) error {
		if err := letterhead(p.Landlord, ctx)(s); err != nil {
			return err
		}
		s.Title("CONTRAT DE LOCATION")
		subtitle := "Locaux vacants non meublés"
		if p.Lease.LeaseType.Furnished() {
			subtitle = "Locaux meublés résidence principale"
		}
		s.ParagraphStyled(subtitle, layout.TextStyle{Size: 11, Align: "C"})
		s.ParagraphStyled(fmt.Sprintf("Référence : %s", ctx.Number),
			layout.TextStyle{Size: 8.5, Align: "C"})
		s.Spacer(4)
		return nil
	}
}

func (p *LeaseContractPayload) partiesArticle() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 1 — Désignation des parties", 1)
		s.Paragraph(fmt.Sprintf(
			"Le présent contrat est conclu entre %s, demeurant %s, %s, ci-après dénommé le bailleur, "+
				"et %s, ci-après dénommé le locataire.",
			p.Landlord.Name, p.Landlord.Address, p.Landlord.CityLine(), p.Tenant.Name,
		))
		if p.Guarantor != nil {
			s.Paragraph(fmt.Sprintf(
				"%s, demeurant %s, %s, se porte caution solidaire du locataire pour l'exécution des "+
					"obligations du présent contrat, dans les conditions d'un acte de cautionnement "+
					"séparé.",
				p.Guarantor.Name, p.Guarantor.Address, p.Guarantor.CityLine(),
			))
		}
		return nil
	}
}

func (p *LeaseContractPayload) premisesArticle() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 2 — Objet du contrat et désignation du logement", 1)
		s.Paragraph("Le bailleur loue au locataire, qui accepte, le logement désigné ci-dessous à " +
			"usage d'habitation principale.")
		if p.Property.Label != "" {
			s.KeyValue("Lot :", p.Property.Label)
		}
		s.KeyValue("Adresse :", p.Property.Address)
		s.KeyValue("Commune :", strings.TrimSpace(p.Property.PostalCode+" "+p.Property.City))
		if p.Property.Surface > 0 {
			s.KeyValue("Surface habitable :", fmt.Sprintf("%.2f m²", p.Property.Surface))
		}
		if p.Property.Rooms > 0 {
			s.KeyValue("Nombre de pièces principales :", fmt.Sprintf("%d", p.Property.Rooms))
		}
		s.Spacer(2)
		return nil
	}
}

func (p *LeaseContractPayload) durationArticle() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 3 — Date de prise d'effet et durée du contrat", 1)
		duration := "trois ans"
		renewal := "Il se renouvelle tacitement par périodes de trois ans à défaut de congé " +
			"valablement délivré."
		if p.Lease.LeaseType.Furnished() {
			duration = "un an"
			renewal = "Il se renouvelle tacitement par périodes d'un an à défaut de congé " +
				"valablement délivré."
		}
		s.Paragraph(fmt.Sprintf(
			"Le contrat prend effet le %s pour une durée de %s. %s",
			format.Date(p.Lease.StartDate.Time, format.DateLong), duration, renewal,
		))
		if !p.Lease.EndDate.IsZero() {
			s.Paragraph(fmt.Sprintf("Terme contractuel de la période en cours : %s.",
				format.Date(p.Lease.EndDate.Time, format.DateLong)))
		}
		return nil
	}
}

func (p *LeaseContractPayload) financialArticle() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 4 — Conditions financières", 1)
		s.KeyValue("Loyer mensuel hors charges :", money(p.Lease.RentAmount))
		s.KeyValue("Provisions pour charges :", money(p.Lease.ChargesAmount))
		total := float64(p.Lease.RentAmount) + float64(p.Lease.ChargesAmount)
		s.KeyValue("Total mensuel :", format.Currency(total))
		s.Spacer(2)
		s.Paragraph(fmt.Sprintf(
			"Le loyer mensuel est fixé à %s (%s), payable d'avance le premier jour de chaque mois. "+
				"Les provisions pour charges donnent lieu à une régularisation annuelle sur "+
				"justificatifs.",
			money(p.Lease.RentAmount), format.AmountInWords(float64(p.Lease.RentAmount)),
		))
		s.Paragraph("Le loyer est révisé chaque année à la date anniversaire du contrat en fonction " +
			"de la variation de l'indice de référence des loyers (IRL) publié par l'INSEE, " +
			"conformément à l'article 17-1 de la loi du 6 juillet 1989.")
		return nil
	}
}

func (p *LeaseContractPayload) depositArticle() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 5 — Dépôt de garantie", 1)
		if p.Lease.DepositAmount > 0 {
			s.Paragraph(fmt.Sprintf(
				"Le locataire verse à la signature un dépôt de garantie de %s (%s). Il est restitué "+
					"dans le délai légal à compter de la remise des clés, déduction faite, le cas "+
					"échéant, des sommes restant dues au bailleur.",
				money(p.Lease.DepositAmount),
				format.AmountInWords(float64(p.Lease.DepositAmount)),
			))
		} else {
			s.Paragraph("Aucun dépôt de garantie n'est exigé au titre du présent contrat.")
		}
		return nil
	}
}

func (p *LeaseContractPayload) landlordObligationsArticle() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 6 — Obligations du bailleur", 1)
		s.Paragraph("Le bailleur est tenu des obligations principales suivantes :")
		s.List([]string{
			"délivrer un logement décent ne laissant pas apparaître de risques manifestes pour la " +
				"sécurité physique ou la santé du locataire, et doté des éléments le rendant conforme " +
				"à l'usage d'habitation ;",
			"remettre gratuitement une quittance au locataire qui en fait la demande ;",
			"entretenir les locaux en état de servir à l'usage prévu et y faire toutes les " +
				"réparations autres que locatives ;",
			"assurer au locataire la jouissance paisible du logement ;",
			"ne pas s'opposer aux aménagements réalisés par le locataire lorsqu'ils ne constituent " +
				"pas une transformation du logement.",
		}, false)
		return nil
	}
}

func (p *LeaseContractPayload) tenantObligationsArticle() layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 7 — Obligations du locataire", 1)
		s.Paragraph("Le locataire est tenu des obligations principales suivantes :")
		s.List([]string{
			"payer le loyer et les charges récupérables aux termes convenus ;",
			"user paisiblement du logement suivant sa destination d'habitation ;",
			"répondre des dégradations et pertes survenues pendant la durée du contrat, sauf cas de " +
				"force majeure, faute du bailleur ou fait d'un tiers ;",
			"prendre à sa charge l'entretien courant du logement et les réparations locatives ;",
			"s'assurer contre les risques locatifs et en justifier chaque année ;",
			"ne pas céder le contrat ni sous-louer le logement sans l'accord écrit du bailleur ;",
			"laisser exécuter dans les lieux les travaux que la loi impose au locataire de supporter.",
		}, false)
		return nil
	}
}

func (p *LeaseContractPayload) customClausesArticle(ctx RenderContext) layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 8 — Clauses particulières", 1)
		if len(ctx.Clauses) == 0 {
			s.Paragraph("Néant.")
			return nil
		}
		for _, c := range ctx.Clauses {
			s.Heading(c.Title, 3)
			s.Paragraph(c.Content)
		}
		return nil
	}
}

func (p *LeaseContractPayload) annexesArticle(ctx RenderContext) layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Article 9 — Annexes", 1)
		items := []string{
			"le dossier de diagnostic technique du logement ;",
			"l'état des lieux établi lors de la remise des clés ;",
			"la notice d'information relative aux droits et obligations des locataires et des " +
				"bailleurs.",
		}
		for _, d := range p.Diagnostics {
			items = append(items, d+" ;")
		}
		s.Paragraph("Sont annexées au présent contrat les pièces suivantes :")
		s.List(items, false)
		if len(ctx.Annexes) > 0 {
			s.Paragraph(fmt.Sprintf(
				"Les annexes fournies sous forme de documents PDF (%d) sont jointes à la suite du "+
					"présent contrat.", len(ctx.Annexes)))
		}
		return nil
	}
}

// slug lowercases a label and reduces it to ASCII letters, digits and
// underscores for use in a filename.
func slug(v string) string {
	replacer := strings.NewReplacer(
		"à", "a", "â", "a", "ä", "a",
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"î", "i", "ï", "i",
		"ô", "o", "ö", "o",
		"ù", "u", "û", "u", "ü", "u",
		"ç", "c", "œ", "oe", "æ", "ae",
	)
	v = replacer.Replace(strings.ToLower(v))
	var b strings.Builder
	prevUnderscore := false
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		default:
			if !prevUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "document"
	}
	return out
}
