package documents

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	contribgofpdi "github.com/jung-kurt/gofpdf/contrib/gofpdi"
	rawgofpdi "github.com/phpdave11/gofpdi"
	"go.uber.org/zap"

	"github.com/owenchateau/locadoc/layout"
)

// ptToMM converts PDF points to millimeters, the unit the sheets use.
const ptToMM = 25.4 / 72.0

// A4 in millimeters, used when an annex page carries no usable MediaBox.
const (
	a4WidthMM  = 210.0
	a4HeightMM = 297.0
)

// appendAnnexes imports every page of the given PDF files at the end of the
// sheet. An annex that cannot be read is logged and skipped: the contract
// itself is never lost over a broken attachment.
func appendAnnexes(s *layout.Sheet, paths []string, log *zap.Logger) {
	imp := contribgofpdi.NewImporter()
	for _, path := range paths {
		if err := appendAnnex(s.PDF(), imp, path); err != nil {
			log.Warn("annex skipped", zap.String("path", path), zap.Error(err))
		}
	}
}

// appendAnnex imports all pages of one annex file. The underlying importer
// panics on malformed input, so the whole import runs under a recover.
func appendAnnex(pdf *gofpdf.Fpdf, imp *contribgofpdi.Importer, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("documents: importing annex %s: %v", path, r)
		}
	}()

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("documents: annex %s: %w", path, err)
	}

	pages, err := annexPageCount(path)
	if err != nil {
		return err
	}

	for i := 1; i <= pages; i++ {
		tpl := imp.ImportPage(pdf, path, i, "/MediaBox")

		w, h := a4WidthMM, a4HeightMM
		if dims, ok := imp.GetPageSizes()[i]; ok {
			if mb, ok := dims["/MediaBox"]; ok && mb["w"] > 0 && mb["h"] > 0 {
				w = mb["w"] * ptToMM
				h = mb["h"] * ptToMM
			}
		}

		orientation := "P"
		if w > h {
			orientation = "L"
		}
		pdf.AddPageFormat(orientation, gofpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
	}
	if pdf.Err() {
		return fmt.Errorf("documents: importing annex %s: %w", path, pdf.Error())
	}
	return nil
}

// annexPageCount counts the pages of a PDF file with the raw importer,
// shielding its panic-on-error behavior behind an error return.
func annexPageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("documents: counting pages of %s: %v", path, r)
		}
	}()
	fpdi := rawgofpdi.NewImporter()
	fpdi.SetSourceFile(path)
	return fpdi.GetNumPages(), nil
}
