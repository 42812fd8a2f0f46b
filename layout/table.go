package layout

import "strings"

// Column defines one column of a financial table.
type Column struct {
	Header string
	Width  float64 // fixed width in mm; 0 = share the remaining space
	Align  string  // "L", "C", "R"; money columns are usually "R"
}

// Table renders the financial tables of the documents: rent calls, debt
// ledgers, installment schedules, charge breakdowns. The header row is
// repeated after a page break and rows are never split across pages.
type Table struct {
	sheet    *Sheet
	cols     []Column
	rows     [][]string
	totalRow bool // render the last row bold on a filled background
}

// NewTable creates a table bound to the sheet with the given columns.
func (s *Sheet) NewTable(cols ...Column) *Table {
	return &Table{sheet: s, cols: cols}
}

// AddRow appends a data row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// MarkTotalRow renders the last added row as an emphasized totals row.
func (t *Table) MarkTotalRow() *Table {
	t.totalRow = true
	return t
}

// Render draws the table at the cursor and advances past it.
func (t *Table) Render() error {
	s := t.sheet
	if s.pdf.Err() {
		return s.pdf.Error()
	}
	widths := t.resolveWidths()

	if len(t.rows) == 0 {
		s.CheckOverflow(t.headerHeight())
		t.renderHeader(widths)
		s.pdf.Ln(3)
		s.resetFont()
		return s.pdf.Error()
	}

	s.CheckOverflow(t.headerHeight() + t.rowHeight(0, widths))
	t.renderHeader(widths)
	for i := range t.rows {
		rowH := t.rowHeight(i, widths)
		if s.CheckOverflow(rowH) {
			t.renderHeader(widths)
		}
		t.renderRow(i, widths, rowH)
	}
	s.pdf.Ln(3)
	s.resetFont()
	return s.pdf.Error()
}

// resolveWidths distributes the content width across the columns: fixed
// widths are honored, the remainder is shared evenly by the auto columns.
func (t *Table) resolveWidths() []float64 {
	total := t.sheet.ContentWidth()
	widths := make([]float64, len(t.cols))
	fixed := 0.0
	auto := 0
	for i, c := range t.cols {
		if c.Width > 0 {
			widths[i] = c.Width
			fixed += c.Width
		} else {
			auto++
		}
	}
	if auto > 0 {
		remaining := total - fixed
		if remaining < 0 {
			remaining = 0
		}
		share := remaining / float64(auto)
		for i, c := range t.cols {
			if c.Width == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

const tableLineH = 5.0

func (t *Table) headerHeight() float64 {
	return tableLineH + 2
}

// rowHeight measures a row: the tallest wrapped cell decides.
func (t *Table) rowHeight(row int, widths []float64) float64 {
	h := tableLineH + 2
	t.sheet.pdf.SetFont(defaultFontFamily, "", 9.5)
	for i, cell := range t.rows[row] {
		if i >= len(widths) {
			break
		}
		lines := t.sheet.pdf.SplitLines([]byte(t.sheet.tr(cell)), widths[i]-2)
		if cellH := float64(len(lines))*tableLineH + 2; cellH > h {
			h = cellH
		}
	}
	return h
}

func (t *Table) renderHeader(widths []float64) {
	s := t.sheet
	l, _, _, _ := s.pdf.GetMargins()
	y := s.pdf.GetY()
	h := t.headerHeight()

	s.pdf.SetFillColor(60, 60, 60)
	s.pdf.SetTextColor(255, 255, 255)
	s.pdf.SetFont(defaultFontFamily, "B", 9.5)
	x := l
	for i, c := range t.cols {
		s.pdf.Rect(x, y, widths[i], h, "F")
		s.pdf.SetXY(x+1, y+1)
		s.pdf.CellFormat(widths[i]-2, tableLineH, s.tr(c.Header), "", 0, alignOr(c.Align), false, 0, "")
		x += widths[i]
	}
	s.pdf.SetTextColor(0, 0, 0)
	s.pdf.SetXY(l, y+h)
}

func (t *Table) renderRow(row int, widths []float64, rowH float64) {
	s := t.sheet
	l, _, _, _ := s.pdf.GetMargins()
	y := s.pdf.GetY()

	isTotal := t.totalRow && row == len(t.rows)-1
	style := ""
	if isTotal {
		s.pdf.SetFillColor(238, 238, 238)
		style = "B"
	} else if row%2 == 1 {
		s.pdf.SetFillColor(247, 247, 247)
	}
	fill := isTotal || row%2 == 1
	if fill {
		s.pdf.Rect(l, y, sum(widths), rowH, "F")
	}

	s.pdf.SetFont(defaultFontFamily, style, 9.5)
	s.pdf.SetDrawColor(190, 190, 190)
	x := l
	for i, w := range widths {
		s.pdf.Rect(x, y, w, rowH, "D")
		cell := ""
		if i < len(t.rows[row]) {
			cell = t.rows[row][i]
		}
		tx := s.tr(cell)
		align := "L"
		if i < len(t.cols) {
			align = alignOr(t.cols[i].Align)
		}
		if strings.Contains(cell, "\n") || s.pdf.GetStringWidth(tx) > w-2 {
			s.pdf.SetXY(x+1, y+1)
			s.pdf.MultiCell(w-2, tableLineH, tx, "", align, false)
		} else {
			s.pdf.SetXY(x+1, y+1)
			s.pdf.CellFormat(w-2, tableLineH, tx, "", 0, align, false, 0, "")
		}
		x += w
	}
	s.pdf.SetDrawColor(0, 0, 0)
	s.pdf.SetXY(l, y+rowH)
}

func alignOr(a string) string {
	if a == "" {
		return "L"
	}
	return a
}

func sum(vs []float64) float64 {
	var t float64
	for _, v := range vs {
		t += v
	}
	return t
}
