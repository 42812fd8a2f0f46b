package documents

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/owenchateau/locadoc/format"
	"github.com/owenchateau/locadoc/layout"
)

// renderLetter assembles the fixed-layout documents: the given sections in
// order, then the generation notice and QR reference stamp.
func renderLetter(w io.Writer, ctx RenderContext, title string, sections ...layout.Section) error {
	s := layout.NewSheet(title)
	if err := s.RenderSections(sections...); err != nil {
		return err
	}
	stamp(s, ctx)
	return s.Output(w)
}

// letterhead renders the sender block: optional logo, then the landlord's
// identity and contact lines.
func letterhead(landlord Party, ctx RenderContext) layout.Section {
	return func(s *layout.Sheet) error {
		if ctx.LogoPath != "" {
			if err := s.Logo(ctx.LogoPath); err != nil {
				ctx.logger().Warn("logo could not be embedded, continuing without",
					zap.String("path", ctx.LogoPath), zap.Error(err))
			} else {
				s.Spacer(14)
			}
		}
		lines := []string{landlord.Name, landlord.Address, landlord.CityLine()}
		if landlord.Phone != "" {
			lines = append(lines, "Tél. : "+landlord.Phone)
		}
		if landlord.Email != "" {
			lines = append(lines, landlord.Email)
		}
		s.ParagraphStyled(strings.Join(lines, "\n"), layout.TextStyle{Align: "L"})
		return nil
	}
}

// recipientBlock renders the addressee block, right-aligned as on a French
// business letter.
func recipientBlock(p Party) layout.Section {
	return func(s *layout.Sheet) error {
		block := strings.Join([]string{p.Name, p.Address, p.CityLine()}, "\n")
		s.ParagraphStyled(block, layout.TextStyle{Align: "R"})
		s.Spacer(4)
		return nil
	}
}

// titleSection renders the centered document title with its reference
// line.
func titleSection(title string, ctx RenderContext) layout.Section {
	return func(s *layout.Sheet) error {
		s.Title(title)
		s.ParagraphStyled(
			fmt.Sprintf("Référence : %s", ctx.Number),
			layout.TextStyle{Size: 8.5, Align: "C"},
		)
		s.Spacer(2)
		return nil
	}
}

// propertySection renders the designation block of the premises.
func propertySection(p PropertyDesignation) layout.Section {
	return func(s *layout.Sheet) error {
		s.Heading("Désignation du logement", 2)
		if p.Label != "" {
			s.KeyValue("Lot :", p.Label)
		}
		s.KeyValue("Adresse :", p.Address)
		s.KeyValue("Commune :", strings.TrimSpace(p.PostalCode+" "+p.City))
		if p.Surface > 0 {
			s.KeyValue("Surface habitable :", fmt.Sprintf("%.2f m²", p.Surface))
		}
		if p.Rooms > 0 {
			s.KeyValue("Nombre de pièces :", fmt.Sprintf("%d", p.Rooms))
		}
		s.Spacer(2)
		return nil
	}
}

// paragraphSection wraps a body paragraph as a section.
func paragraphSection(text string) layout.Section {
	return func(s *layout.Sheet) error {
		s.Paragraph(text)
		return nil
	}
}

// legalSection renders the document-specific legal mention.
func legalSection(text string) layout.Section {
	return func(s *layout.Sheet) error {
		s.Rule()
		s.LegalMention(text)
		return nil
	}
}

// signatureSection renders the closing signature block.
func signatureSection(city string, ctx RenderContext, signers ...layout.Signer) layout.Section {
	return func(s *layout.Sheet) error {
		s.SignatureBlock(city, ctx.GeneratedAt, signers...)
		return nil
	}
}

// stamp writes the generation notice and the QR reference on the last
// page. A stamp failure never loses the document.
func stamp(s *layout.Sheet, ctx RenderContext) {
	s.FooterNotice(fmt.Sprintf("%s — Réf. %s", layout.Timestamped(ctx.GeneratedAt), ctx.Number))
	if err := s.QRStamp(ctx.Number); err != nil {
		ctx.logger().Warn("QR stamp skipped", zap.Error(err))
	}
}

// cityOrDefault resolves the signing city: explicit payload value first,
// landlord's city otherwise.
func cityOrDefault(city string, landlord Party) string {
	if strings.TrimSpace(city) != "" {
		return city
	}
	return landlord.City
}

// money renders a Money amount for display.
func money(m Money) string { return format.Currency(float64(m)) }
