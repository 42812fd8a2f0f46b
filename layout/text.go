package layout

import (
	"fmt"
	"time"
)

// TextStyle overrides the defaults of a text primitive. The zero value
// means regular 10pt justified text.
type TextStyle struct {
	Style string  // "", "B", "I", "BI"
	Size  float64 // points; 0 = default
	Align string  // "L", "C", "R", "J"; "" = justified
}

func (st TextStyle) orDefaults() TextStyle {
	if st.Size == 0 {
		st.Size = defaultFontSize
	}
	if st.Align == "" {
		st.Align = "J"
	}
	return st
}

// Title renders the centered document title, e.g. "QUITTANCE DE LOYER".
func (s *Sheet) Title(text string) {
	s.CheckOverflow(16)
	s.pdf.SetFont(defaultFontFamily, "B", 14)
	s.pdf.MultiCell(s.ContentWidth(), 7, s.tr(text), "", "C", false)
	s.pdf.Ln(3)
	s.resetFont()
}

// Heading renders a bold section heading. Level 1 is the largest; levels
// above 3 are clamped.
func (s *Sheet) Heading(text string, level int) {
	sizes := []float64{13, 11.5, 10.5}
	if level < 1 {
		level = 1
	}
	if level > len(sizes) {
		level = len(sizes)
	}
	size := sizes[level-1]

	s.CheckOverflow(size*0.5 + sectionGuard/2)
	s.pdf.Ln(size * 0.25)
	s.pdf.SetFont(defaultFontFamily, "B", size)
	s.pdf.MultiCell(s.ContentWidth(), size*0.5, s.tr(text), "", "L", false)
	s.pdf.Ln(size * 0.2)
	s.resetFont()
}

// Paragraph renders justified body text at the default size.
func (s *Sheet) Paragraph(text string) {
	s.ParagraphStyled(text, TextStyle{})
}

// ParagraphStyled renders a paragraph with the given style. The whole
// paragraph is measured first: it is placed intact, or after a forced
// break when it does not fit. Paragraphs taller than a full page flow line
// by line with explicit breaks between pages.
func (s *Sheet) ParagraphStyled(text string, st TextStyle) {
	st = st.orDefaults()
	s.pdf.SetFont(defaultFontFamily, st.Style, st.Size)
	lineH := st.Size * 0.5
	tx := s.tr(text)
	lines := s.pdf.SplitLines([]byte(tx), s.ContentWidth())
	height := float64(len(lines)) * lineH

	switch {
	case height <= s.usableHeight():
		s.CheckOverflow(height)
		s.pdf.MultiCell(s.ContentWidth(), lineH, tx, "", st.Align, false)
	default:
		// Longer than a page: place line groups with explicit breaks.
		for _, line := range lines {
			s.CheckOverflow(lineH)
			s.pdf.CellFormat(s.ContentWidth(), lineH, string(line), "", 1, "L", false, 0, "")
		}
	}
	s.pdf.Ln(st.Size * 0.3)
	s.resetFont()
}

// KeyValue renders a bold label and its value on one line, as used in
// designation blocks ("Adresse :", "Surface :", ...).
func (s *Sheet) KeyValue(label, value string) {
	s.CheckOverflow(6)
	s.pdf.SetFont(defaultFontFamily, "B", defaultFontSize)
	s.pdf.CellFormat(55, 6, s.tr(label), "", 0, "L", false, 0, "")
	s.pdf.SetFont(defaultFontFamily, "", defaultFontSize)
	s.pdf.CellFormat(s.ContentWidth()-55, 6, s.tr(value), "", 1, "L", false, 0, "")
}

// List renders a bulleted or numbered list. Each item is a block: it is
// never split across a page boundary without an explicit break.
func (s *Sheet) List(items []string, ordered bool) {
	s.pdf.SetFont(defaultFontFamily, "", defaultFontSize)
	const indent = 5.0
	lineH := defaultFontSize * 0.5
	cw := s.ContentWidth() - indent

	l, _, _, _ := s.pdf.GetMargins()
	for i, item := range items {
		prefix := "- "
		if ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		tx := s.tr(prefix + item)
		n := len(s.pdf.SplitLines([]byte(tx), cw))
		s.CheckOverflow(float64(n)*lineH + 1)
		s.pdf.SetX(l + indent)
		s.pdf.MultiCell(cw, lineH, tx, "", "L", false)
		s.pdf.Ln(0.8)
	}
	s.pdf.Ln(2)
}

// Spacer advances the cursor by h millimeters.
func (s *Sheet) Spacer(h float64) {
	s.pdf.Ln(h)
}

// Rule draws a light horizontal separator across the content width.
func (s *Sheet) Rule() {
	s.CheckOverflow(6)
	w, _ := s.pdf.GetPageSize()
	l, _, r, _ := s.pdf.GetMargins()
	s.pdf.Ln(2)
	y := s.pdf.GetY()
	s.pdf.SetDrawColor(150, 150, 150)
	s.pdf.SetLineWidth(0.3)
	s.pdf.Line(l, y, w-r, y)
	s.pdf.SetDrawColor(0, 0, 0)
	s.pdf.SetLineWidth(0.2)
	s.pdf.Ln(3)
}

// HighlightBox renders the emphasized figure of a document (total due,
// revised rent, reconciliation balance) in a filled box.
func (s *Sheet) HighlightBox(label, value string) {
	const boxH = 18.0
	s.CheckOverflow(boxH + 4)
	l, _, _, _ := s.pdf.GetMargins()
	y := s.pdf.GetY()

	s.pdf.SetFillColor(238, 238, 238)
	s.pdf.Rect(l, y, s.ContentWidth(), boxH, "FD")

	s.pdf.SetXY(l, y+3)
	s.pdf.SetTextColor(90, 90, 90)
	s.pdf.SetFont(defaultFontFamily, "", 8.5)
	s.pdf.CellFormat(s.ContentWidth(), 4, s.tr(label), "", 1, "C", false, 0, "")

	s.pdf.SetX(l)
	s.pdf.SetTextColor(0, 0, 0)
	s.pdf.SetFont(defaultFontFamily, "B", 14)
	s.pdf.CellFormat(s.ContentWidth(), 8, s.tr(value), "", 1, "C", false, 0, "")

	s.pdf.SetY(y + boxH + 4)
	s.resetFont()
}

// Signer is one signature slot of a signature block.
type Signer struct {
	Role string // "Le bailleur", "Le locataire", ...
	Name string
}

// SignatureBlock renders the "Fait à ..., le ..." line followed by one
// column per signer with room for a handwritten signature.
func (s *Sheet) SignatureBlock(city string, date time.Time, signers ...Signer) {
	const signH = 25.0
	s.CheckOverflow(signH + 18)

	s.pdf.SetFont(defaultFontFamily, "", defaultFontSize)
	s.pdf.MultiCell(s.ContentWidth(), 5,
		s.tr(fmt.Sprintf("Fait à %s, le %s", city, date.Format("02/01/2006"))),
		"", "L", false)
	s.pdf.Ln(4)

	if len(signers) == 0 {
		return
	}
	colW := s.ContentWidth() / float64(len(signers))
	y := s.pdf.GetY()
	l, _, _, _ := s.pdf.GetMargins()
	for i, sg := range signers {
		x := l + float64(i)*colW
		s.pdf.SetXY(x, y)
		s.pdf.SetFont(defaultFontFamily, "B", defaultFontSize)
		s.pdf.CellFormat(colW, 5, s.tr(sg.Role), "", 2, "L", false, 0, "")
		s.pdf.SetFont(defaultFontFamily, "", defaultFontSize)
		s.pdf.CellFormat(colW, 5, s.tr(sg.Name), "", 0, "L", false, 0, "")
	}
	s.pdf.SetY(y + 10 + signH)
	s.resetFont()
}

// LegalMention renders the small italic legal paragraph of a document.
func (s *Sheet) LegalMention(text string) {
	s.ParagraphStyled(text, TextStyle{Style: "I", Size: 8, Align: "J"})
}

// FooterNotice writes the generation notice inside the bottom margin of
// the current page. It does not move the flow cursor.
func (s *Sheet) FooterNotice(text string) {
	l, _, _, _ := s.pdf.GetMargins()
	y := s.pdf.GetY()
	s.pdf.SetXY(l, s.limit()+4)
	s.pdf.SetTextColor(128, 128, 128)
	s.pdf.SetFont(defaultFontFamily, "", 7)
	s.pdf.CellFormat(s.ContentWidth(), 4, s.tr(text), "", 0, "C", false, 0, "")
	s.pdf.SetTextColor(0, 0, 0)
	s.resetFont()
	s.pdf.SetY(y)
}

func (s *Sheet) resetFont() {
	s.pdf.SetFont(defaultFontFamily, "", defaultFontSize)
}
