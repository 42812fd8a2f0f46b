package documents

import (
	"fmt"
	"io"
	"time"

	"github.com/owenchateau/locadoc/format"
	"github.com/owenchateau/locadoc/layout"
)

func init() {
	register(Descriptor{
		Type:    TypeTenantTermination,
		Prefix:  "CGL",
		Title:   "Congé donné par le locataire",
		Prepare: prepareTenantTermination,
	})
	register(Descriptor{
		Type:    TypeLandlordTermination,
		Prefix:  "CGB",
		Title:   "Congé donné par le bailleur",
		Prepare: prepareLandlordTermination,
	})
}

// TerminationReason codes the ground of a lease termination notice.
type TerminationReason string

const (
	// ReasonConvenience is the tenant's free-form departure.
	ReasonConvenience TerminationReason = "convenience"
	// ReasonSale is the landlord's notice for selling the premises.
	ReasonSale TerminationReason = "sale"
	// ReasonRepossession is the landlord reclaiming the premises to live
	// in them or house a close relative.
	ReasonRepossession TerminationReason = "repossession"
	// ReasonLegitimateCause covers serious tenant breaches.
	ReasonLegitimateCause TerminationReason = "legitimate_cause"
)

// TenantTerminationPayload drives the congé sent by the tenant.
// ShortNoticeGround, when set, names the statutory ground (zone tendue,
// professional transfer, job loss, health, RSA...) that reduces the
// unfurnished notice period to one month.
type TenantTerminationPayload struct {
	Tenant            Party               `json:"tenant"`
	Landlord          Party               `json:"landlord"`
	Property          PropertyDesignation `json:"property"`
	LeaseType         LeaseType           `json:"leaseType"`
	NoticeDate        Date                `json:"noticeDate"`
	Reason            TerminationReason   `json:"reason,omitempty"` // default: convenience
	ShortNoticeGround string              `json:"shortNoticeGround,omitempty"`
	City              string              `json:"city,omitempty"`
}

func prepareTenantTermination(raw []byte) (Renderer, error) {
	var p TenantTerminationPayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if err := requireParty(p.Tenant, "tenant"); err != nil {
		return nil, err
	}
	if err := requireParty(p.Landlord, "landlord"); err != nil {
		return nil, err
	}
	if err := requireProperty(p.Property, "property"); err != nil {
		return nil, err
	}
	if err := requireDate(p.NoticeDate, "noticeDate"); err != nil {
		return nil, err
	}
	if p.Reason == "" {
		p.Reason = ReasonConvenience
	}
	if p.Reason != ReasonConvenience {
		return nil, fmt.Errorf("documents: unsupported tenant termination reason %q", p.Reason)
	}
	p.City = cityOrDefault(p.City, p.Tenant)
	return &p, nil
}

// NoticeMonths is the statutory préavis: one month for furnished leases,
// three months for unfurnished ones, reduced to one month when a statutory
// short-notice ground applies.
func (p *TenantTerminationPayload) NoticeMonths() int {
	if p.LeaseType.Furnished() || p.ShortNoticeGround != "" {
		return 1
	}
	return 3
}

// EffectiveDate is the earliest date the lease ends: notice date plus the
// statutory préavis.
func (p *TenantTerminationPayload) EffectiveDate() time.Time {
	return p.NoticeDate.AddDate(0, p.NoticeMonths(), 0)
}

func (p *TenantTerminationPayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "CONGÉ DONNÉ PAR LE LOCATAIRE"
	months := p.NoticeMonths()

	body := fmt.Sprintf(
		"Par la présente, je vous notifie mon congé du logement désigné ci-dessous, dont je suis "+
			"locataire. Le délai de préavis applicable est de %s, courant à compter de la réception "+
			"de la présente lettre. Le bail prendra donc fin au plus tard le %s.",
		plural(months, "mois", "mois"),
		format.Date(p.EffectiveDate(), format.DateLong),
	)

	sections := []layout.Section{
		letterhead(p.Tenant, ctx),
		recipientBlock(p.Landlord),
		titleSection(title, ctx),
		paragraphSection("Lettre recommandée avec accusé de réception."),
		paragraphSection(body),
		propertySection(p.Property),
	}
	if p.ShortNoticeGround != "" {
		sections = append(sections, paragraphSection(fmt.Sprintf(
			"Je bénéficie du délai de préavis réduit à un mois au motif suivant : %s. Le justificatif "+
				"correspondant est joint à la présente.", p.ShortNoticeGround)))
	}
	sections = append(sections,
		paragraphSection("Je me tiens à votre disposition pour convenir d'une date d'état des lieux de "+
			"sortie et de remise des clés."),
		legalSection(tenantTerminationLegal(p.LeaseType)),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le locataire", Name: p.Tenant.Name}),
	)
	return renderLetter(w, ctx, title, sections...)
}

func tenantTerminationLegal(lt LeaseType) string {
	if lt.Furnished() {
		return "Congé délivré en application de l'article 25-8 de la loi n° 89-462 du 6 juillet 1989 : " +
			"le locataire d'un logement meublé peut résilier le contrat à tout moment sous réserve d'un " +
			"préavis d'un mois."
	}
	return "Congé délivré en application de l'article 15-I de la loi n° 89-462 du 6 juillet 1989 : le " +
		"locataire peut résilier le contrat à tout moment sous réserve d'un préavis de trois mois, " +
		"réduit à un mois dans les cas limitativement énumérés par la loi."
}

// LandlordTerminationPayload drives the congé sent by the landlord; the
// reason is mandatory and restricted by statute.
type LandlordTerminationPayload struct {
	Landlord     Party               `json:"landlord"`
	Tenant       Party               `json:"tenant"`
	Property     PropertyDesignation `json:"property"`
	LeaseType    LeaseType           `json:"leaseType"`
	LeaseEndDate Date                `json:"leaseEndDate"`
	Reason       TerminationReason   `json:"reason"`
	ReasonDetail string              `json:"reasonDetail,omitempty"` // sale price, beneficiary, breach...
	City         string              `json:"city,omitempty"`
}

func prepareLandlordTermination(raw []byte) (Renderer, error) {
	var p LandlordTerminationPayload
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
	if err := requireDate(p.LeaseEndDate, "leaseEndDate"); err != nil {
		return nil, err
	}
	switch p.Reason {
	case ReasonSale, ReasonRepossession, ReasonLegitimateCause:
	case "":
		return nil, &FieldError{Field: "reason"}
	default:
		return nil, fmt.Errorf("documents: unsupported landlord termination reason %q", p.Reason)
	}
	p.City = cityOrDefault(p.City, p.Landlord)
	return &p, nil
}

// NoticeMonths is the statutory préavis owed by the landlord: three months
// for furnished leases, six for unfurnished ones.
func (p *LandlordTerminationPayload) NoticeMonths() int {
	if p.LeaseType.Furnished() {
		return 3
	}
	return 6
}

func (p *LandlordTerminationPayload) Render(w io.Writer, ctx RenderContext) error {
	const title = "CONGÉ DONNÉ PAR LE BAILLEUR"

	body := fmt.Sprintf(
		"Par la présente, je vous notifie le congé du logement désigné ci-dessous pour l'échéance du "+
			"bail, soit le %s. Ce congé vous est délivré au moins %d mois avant cette échéance, "+
			"conformément au délai légal de préavis.",
		format.Date(p.LeaseEndDate.Time, format.DateLong), p.NoticeMonths(),
	)

	return renderLetter(w, ctx, title,
		letterhead(p.Landlord, ctx),
		recipientBlock(p.Tenant),
		titleSection(title, ctx),
		paragraphSection("Lettre recommandée avec accusé de réception."),
		paragraphSection(body),
		propertySection(p.Property),
		paragraphSection(p.reasonParagraph()),
		legalSection(p.legalMention()),
		signatureSection(p.City, ctx, layout.Signer{Role: "Le bailleur", Name: p.Landlord.Name}),
	)
}

func (p *LandlordTerminationPayload) reasonParagraph() string {
	switch p.Reason {
	case ReasonSale:
		text := "Motif du congé : vente du logement. Le présent congé vaut offre de vente à votre " +
			"profit dans les conditions prévues par la loi ; vous disposez d'un délai de deux mois " +
			"pour vous prononcer."
		if p.ReasonDetail != "" {
			text += " Conditions de la vente envisagée : " + p.ReasonDetail + "."
		}
		return text
	case ReasonRepossession:
		text := "Motif du congé : reprise du logement pour l'habiter."
		if p.ReasonDetail != "" {
			text += " Bénéficiaire de la reprise : " + p.ReasonDetail + "."
		}
		return text
	default:
		text := "Motif du congé : motif légitime et sérieux."
		if p.ReasonDetail != "" {
			text += " " + p.ReasonDetail
		}
		return text
	}
}

func (p *LandlordTerminationPayload) legalMention() string {
	if p.LeaseType.Furnished() {
		return "Congé délivré en application de l'article 25-8 de la loi n° 89-462 du 6 juillet 1989, " +
			"moyennant un préavis de trois mois avant l'échéance du bail. Le congé doit être justifié " +
			"par la reprise, la vente du logement ou un motif légitime et sérieux."
	}
	return "Congé délivré en application de l'article 15 de la loi n° 89-462 du 6 juillet 1989, " +
		"moyennant un préavis de six mois avant l'échéance du bail. Le congé doit, à peine de " +
		"nullité, être justifié par la reprise, la vente du logement ou un motif légitime et sérieux."
}

// plural renders a count with its unit, e.g. "un mois", "3 mois".
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return "un " + singular
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
