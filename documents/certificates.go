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
		Type:    TypeCAFCertificate,
		Prefix:  "CAF",
		Title:   "Attestation de loyer CAF",
		Prepare: prepareCAFCertificate,
	})
	register(Descriptor{
		Type:    TypeAnnualCertificate,
		Prefix:  "ATT",
		Title:   "Attestation annuelle de loyer",
		Prepare: prepareAnnualCertificate,
	})
}

// CAFCertificatePayload drives the occupancy and rent certificate sent to
// the family-benefits agency.
type CAFCertificatePayload struct {
	Landlord  Party               `json:"landlord"`
	Tenant    Party               `json:"tenant"`
	Property  PropertyDesignation `json:"property"`
	Lease     LeaseTerms          `json:"lease"`
	CAFNumber string              `json:"cafNumber,omitempty"` // allocataire reference
	City      string              `json:"city,omitempty"`
}

func prepareCAFCertificate(raw []byte) (Renderer, error) {
	var p CAFCertificatePayload
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

func (p *CAFCertificatePayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "ATTESTATION DE LOYER"

	body := fmt.Sprintf(
		"Je soussigné(e) %s, bailleur, certifie que %s occupe en qualité de locataire le logement "+
			"désigné ci-dessous depuis le %s, moyennant un loyer mensuel de %s auquel s'ajoutent %s "+
			"de provisions pour charges, soit %s charges comprises.",
		p.Landlord.Name, p.Tenant.Name,
		format.Date(p.Lease.StartDate.Time, format.DateLong),
		money(p.Lease.RentAmount), money(p.Lease.ChargesAmount),
		format.Currency(calc.Round2(float64(p.Lease.RentAmount)+float64(p.Lease.ChargesAmount))),
	)

	sections := []layout.Section{
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection(body),
		propertySection(p.Property),
	}
	if p.CAFNumber != "" {
		sections = append(sections, func(s *layout.Sheet) error {
			s.KeyValue("N° allocataire :", p.CAFNumber)
			s.Spacer(2)
			return nil
		})
	}
	sections = append(sections,
		paragraphSection("Le locataire est à jour du paiement de son loyer à la date de la présente attestation."),
		legalSection("Attestation établie à la demande du locataire pour servir et valoir ce que de "+
			"droit, destinée à la Caisse d'Allocations Familiales. Toute fausse déclaration expose "+
			"son auteur aux sanctions prévues par l'article 441-1 du code pénal."),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)

	return renderLetter(w, ctx, title, sections...)
}

// AnnualCertificatePayload drives the yearly rent certificate handed to
// the tenant for tax or aid purposes.
type AnnualCertificatePayload struct {
	Landlord Party               `json:"landlord"`
	Tenant   Party               `json:"tenant"`
	Property PropertyDesignation `json:"property"`
	Lease    LeaseTerms          `json:"lease"`
	Year     int                 `json:"year"`
	City     string              `json:"city,omitempty"`
}

func prepareAnnualCertificate(raw []byte) (Renderer, error) {
	var p AnnualCertificatePayload
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
	if p.Year <= 0 {
		return nil, &FieldError{Field: "year"}
	}
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// AnnualRent and AnnualCharges are the twelve-month totals certified.
func (p *AnnualCertificatePayload) AnnualRent() float64 {
	return calc.Round2(float64(p.Lease.RentAmount) * 12)
}

func (p *AnnualCertificatePayload) AnnualCharges() float64 {
	return calc.Round2(float64(p.Lease.ChargesAmount) * 12)
}

func (p *AnnualCertificatePayload) Render(w io.Writer, ctx RenderContext) error {
	title := fmt.Sprintf("ATTESTATION ANNUELLE DE LOYER — ANNÉE %d", p.Year)
	total := calc.Round2(p.AnnualRent() + p.AnnualCharges())

	body := fmt.Sprintf(
		"Je soussigné(e) %s, bailleur, certifie que %s, locataire du logement désigné ci-dessous, "+
			"m'a réglé au titre de l'année %d la somme totale de %s (%s), se décomposant comme suit :",
		p.Landlord.Name, p.Tenant.Name, p.Year,
		format.Currency(total), format.AmountInWords(total),
	)

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection(body),
		propertySection(p.Property),
		func(s *layout.Sheet) error {
			tbl := s.NewTable(
				layout.Column{Header: "Désignation"},
				layout.Column{Header: "Montant annuel", Width: 50, Align: "R"},
			)
			tbl.AddRow(fmt.Sprintf("Loyers %d (12 × %s)", p.Year, money(p.Lease.RentAmount)),
				format.Currency(p.AnnualRent()))
			tbl.AddRow(fmt.Sprintf("Charges %d (12 × %s)", p.Year, money(p.Lease.ChargesAmount)),
				format.Currency(p.AnnualCharges()))
			tbl.AddRow("Total", format.Currency(total))
			tbl.MarkTotalRow()
			return tbl.Render()
		},
		legalSection("Attestation établie pour servir et valoir ce que de droit."),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)
}
