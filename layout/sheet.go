// Package layout implements the cursor-based flow engine every document
// renderer targets: a Sheet tracks the vertical position on the current
// page, guards against overflow before each block and forces explicit page
// breaks. Fixed-layout documents and the flowed lease contract both go
// through the same primitives, so pagination behaves identically whatever
// the rendering technique.
package layout

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	defaultFontFamily = "Helvetica"
	defaultFontSize   = 10.0

	// sectionGuard is the minimum room a top-level section must have left
	// on the page before it starts; less than this forces a break so no
	// section opens orphaned at the page foot.
	sectionGuard = 24.0
)

// Sheet is a PDF document under construction with manual page-break
// control. Automatic page breaking is disabled: a block is either placed
// whole or a break is forced first, never split invisibly across pages.
type Sheet struct {
	pdf         *gofpdf.Fpdf
	tr          func(string) string
	forcedBreak int
}

// NewSheet creates an A4 portrait sheet with the margins and base font all
// documents share, and opens the first page.
func NewSheet(title string) *Sheet {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 22)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("locadoc", true)
	pdf.AddPage()
	pdf.SetFont(defaultFontFamily, "", defaultFontSize)

	return &Sheet{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// PDF exposes the underlying document for operations the primitives do not
// cover, such as importing annex pages.
func (s *Sheet) PDF() *gofpdf.Fpdf { return s.pdf }

// PageCount returns the number of pages opened so far.
func (s *Sheet) PageCount() int { return s.pdf.PageNo() }

// ForcedBreaks returns how many page breaks were forced by the overflow
// guard or by ForceBreak.
func (s *Sheet) ForcedBreaks() int { return s.forcedBreak }

// Y returns the current vertical cursor position.
func (s *Sheet) Y() float64 { return s.pdf.GetY() }

// ContentWidth returns the usable width between the margins.
func (s *Sheet) ContentWidth() float64 {
	w, _ := s.pdf.GetPageSize()
	l, _, r, _ := s.pdf.GetMargins()
	return w - l - r
}

// limit is the vertical position past which content must not be placed.
func (s *Sheet) limit() float64 {
	_, h := s.pdf.GetPageSize()
	_, _, _, b := s.pdf.GetMargins()
	return h - b
}

// usableHeight is the full content height of an empty page.
func (s *Sheet) usableHeight() float64 {
	_, t, _, _ := s.pdf.GetMargins()
	return s.limit() - t
}

// CheckOverflow forces a page break when placing a block of the given
// height at the cursor would cross the bottom threshold. It reports
// whether a break occurred.
func (s *Sheet) CheckOverflow(needed float64) bool {
	if s.pdf.GetY()+needed > s.limit() {
		s.ForceBreak()
		return true
	}
	return false
}

// ForceBreak unconditionally starts a new page, resetting the cursor to
// the top margin. The active font carries over.
func (s *Sheet) ForceBreak() {
	s.pdf.AddPage()
	s.forcedBreak++
}

// Output finalizes the document and writes it to w.
func (s *Sheet) Output(w io.Writer) error {
	if s.pdf.Err() {
		return fmt.Errorf("layout: %w", s.pdf.Error())
	}
	return s.pdf.Output(w)
}

// Section is one top-level block of a document: header, recipient block,
// body paragraph, financial table, legal mention, signature block, ...
type Section func(*Sheet) error

// RenderSections runs the overflow guard before each section and renders
// them in order. Nil sections are skipped, which lets callers build
// conditional section lists without shuffling slices.
func (s *Sheet) RenderSections(sections ...Section) error {
	for _, sec := range sections {
		if sec == nil {
			continue
		}
		s.CheckOverflow(sectionGuard)
		if err := sec(s); err != nil {
			return err
		}
	}
	return nil
}

// Timestamped returns the generation notice line shown in document
// footers.
func Timestamped(t time.Time) string {
	return fmt.Sprintf("Document généré le %s", t.Format("02/01/2006"))
}
