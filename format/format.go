// Package format provides the locale-fixed formatting primitives used by
// every generated document: euro amounts, French dates, cardinal numbers in
// words and document reference numbers.
//
// All output is deterministic. Currency and dates are rendered with the
// exact byte sequences the PDF layer expects (non-breaking spaces from the
// cp1252 range, never U+202F), so the same input always produces the same
// document.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// nbsp is the grouping and unit separator used in monetary amounts. U+00A0
// survives the cp1252 translation applied by the PDF core fonts.
const nbsp = " "

// Currency renders an amount in euros with two fraction digits, French
// thousand grouping and a trailing euro sign, e.g. "1 234,56 €".
// NaN and infinities are treated as 0.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	euros := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", euros)
	var b strings.Builder
	if neg && cents != 0 {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 && (i > lead || lead > 0) {
			b.WriteString(nbsp)
		}
		b.WriteString(digits[i : i+3])
	}
	return fmt.Sprintf("%s,%02d%s€", b.String(), frac, nbsp)
}

// DateForm selects one of the three date renderings used in documents.
type DateForm int

const (
	// DateLong renders "5 mars 2025".
	DateLong DateForm = iota
	// DateShort renders "05/03/2025".
	DateShort
	// DateMonthYear renders "mars 2025".
	DateMonthYear
)

var monthNames = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Date renders t in the requested form. The zero time yields an empty
// string so callers can pass through optional dates without guarding.
func Date(t time.Time, form DateForm) string {
	if t.IsZero() {
		return ""
	}
	switch form {
	case DateShort:
		return t.Format("02/01/2006")
	case DateMonthYear:
		return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
	default:
		return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
	}
}

// Ordinal renders the French ordinal used for installment labels:
// 1 -> "1ère", everything else -> "2ème", "3ème", ...
func Ordinal(n int) string {
	if n == 1 {
		return "1ère"
	}
	return fmt.Sprintf("%dème", n)
}
