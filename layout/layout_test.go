package layout

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSheetOutput(t *testing.T) {
	s := NewSheet("Test")
	s.Title("QUITTANCE DE LOYER")
	s.Paragraph("Un paragraphe de corps de texte avec des accents : échéance, régularisation.")

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestCheckOverflowForcesBreak(t *testing.T) {
	s := NewSheet("")
	if s.PageCount() != 1 {
		t.Fatalf("expected 1 page after NewSheet, got %d", s.PageCount())
	}

	// A block taller than the whole page must trigger a break when the
	// cursor is anywhere below the top.
	s.Spacer(10)
	if !s.CheckOverflow(1000) {
		t.Fatal("expected CheckOverflow to force a break")
	}
	if s.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", s.PageCount())
	}
	if s.ForcedBreaks() != 1 {
		t.Fatalf("expected 1 forced break, got %d", s.ForcedBreaks())
	}
}

func TestCheckOverflowNoBreakWhenFits(t *testing.T) {
	s := NewSheet("")
	if s.CheckOverflow(10) {
		t.Fatal("10mm block at the top of a page must not force a break")
	}
	if s.PageCount() != 1 {
		t.Fatalf("expected 1 page, got %d", s.PageCount())
	}
}

func TestParagraphNeverSplitsWithoutBreak(t *testing.T) {
	s := NewSheet("")
	para := strings.Repeat("Une ligne de texte qui occupe de la place. ", 12)

	// Fill the page until close to the bottom, then place a paragraph that
	// cannot fit: a break must be forced first.
	for s.Y() < s.limit()-20 {
		s.Paragraph("Remplissage.")
	}
	before := s.PageCount()
	s.Paragraph(para)
	if s.PageCount() != before+1 {
		t.Fatalf("expected a forced page break, pages %d -> %d", before, s.PageCount())
	}
}

func TestLongParagraphFlowsAcrossPages(t *testing.T) {
	s := NewSheet("")
	para := strings.Repeat("Beaucoup de texte répété pour dépasser une page entière. ", 220)
	s.Paragraph(para)

	if s.PageCount() < 2 {
		t.Fatalf("expected the paragraph to flow over several pages, got %d", s.PageCount())
	}

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
}

func TestForceBreakStartsFreshPage(t *testing.T) {
	s := NewSheet("")
	s.Paragraph("Avant la page de signatures.")
	s.ForceBreak()
	if s.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", s.PageCount())
	}
	s.SignatureBlock("Lyon", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Signer{Role: "Le bailleur", Name: "Jean Martin"},
		Signer{Role: "Le locataire", Name: "Paul Durand"},
	)

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
}

func TestRenderSectionsRunsInOrder(t *testing.T) {
	s := NewSheet("")
	var order []string
	err := s.RenderSections(
		func(sh *Sheet) error { order = append(order, "a"); return nil },
		nil,
		func(sh *Sheet) error { order = append(order, "b"); return nil },
	)
	if err != nil {
		t.Fatalf("RenderSections failed: %v", err)
	}
	if strings.Join(order, "") != "ab" {
		t.Fatalf("unexpected section order: %v", order)
	}
}

func TestTableRepeatsHeaderAcrossPages(t *testing.T) {
	s := NewSheet("")
	tbl := s.NewTable(
		Column{Header: "Échéance", Width: 40},
		Column{Header: "Montant", Align: "R"},
		Column{Header: "Solde restant", Align: "R"},
	)
	for i := 0; i < 80; i++ {
		tbl.AddRow("01/01/2025", "334,00", "666,00")
	}
	tbl.MarkTotalRow()
	if err := tbl.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if s.PageCount() < 2 {
		t.Fatalf("80 rows should span multiple pages, got %d", s.PageCount())
	}

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
}

func TestTableWithoutRowsRendersHeaderOnly(t *testing.T) {
	s := NewSheet("")
	tbl := s.NewTable(
		Column{Header: "Désignation"},
		Column{Header: "Montant", Width: 45, Align: "R"},
	)
	if err := tbl.Render(); err != nil {
		t.Fatalf("Render without rows failed: %v", err)
	}
	if s.PageCount() != 1 {
		t.Fatalf("a header-only table must not break the page, got %d pages", s.PageCount())
	}

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestHighlightBoxAndFooter(t *testing.T) {
	s := NewSheet("")
	s.HighlightBox("Montant total dû", "900,00 €")
	s.FooterNotice("Document généré le 05/03/2025 - QUI-20250305-AB12")

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if buf.Len() < 500 {
		t.Fatal("PDF output seems too small")
	}
}

func TestQRStamp(t *testing.T) {
	s := NewSheet("")
	if err := s.QRStamp("QUI-20250305-AB12"); err != nil {
		t.Fatalf("QRStamp failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if buf.Len() < 1000 {
		t.Fatal("expected the QR image to add weight to the PDF")
	}
}

func TestLogoMissingFile(t *testing.T) {
	s := NewSheet("")
	if err := s.Logo("does-not-exist.png"); err == nil {
		t.Fatal("expected an error for a missing logo file")
	}
}
