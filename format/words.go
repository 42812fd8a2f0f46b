package format

import (
	"fmt"
	"strings"
)

var smallNumbers = [20]string{
	"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit",
	"neuf", "dix", "onze", "douze", "treize", "quatorze", "quinze", "seize",
	"dix-sept", "dix-huit", "dix-neuf",
}

var tensNumbers = [7]string{
	"", "", "vingt", "trente", "quarante", "cinquante", "soixante",
}

// NumberToWords converts a non-negative integer to French cardinal words,
// as used in the formal paragraphs of legal documents ("la somme de 900 €
// (neuf cent euros)"). It handles the soixante-dix / quatre-vingt compound
// forms and the "et un" insertion rule. Invariant spelling is used
// throughout: no plural s on vingt or cent, matching the wording the
// documents have always carried. Negative input yields an empty string.
func NumberToWords(n int) string {
	if n < 0 {
		return ""
	}
	if n < 20 {
		return smallNumbers[n]
	}
	var parts []string
	if m := n / 1_000_000; m > 0 {
		if m == 1 {
			parts = append(parts, "un million")
		} else {
			parts = append(parts, NumberToWords(m)+" millions")
		}
		n %= 1_000_000
	}
	if k := n / 1000; k > 0 {
		if k == 1 {
			parts = append(parts, "mille")
		} else {
			parts = append(parts, NumberToWords(k)+" mille")
		}
		n %= 1000
	}
	if h := n / 100; h > 0 {
		if h == 1 {
			parts = append(parts, "cent")
		} else {
			parts = append(parts, smallNumbers[h]+" cent")
		}
		n %= 100
	}
	if n > 0 {
		parts = append(parts, underHundred(n))
	}
	return strings.Join(parts, " ")
}

// underHundred spells 1..99.
func underHundred(n int) string {
	if n < 20 {
		return smallNumbers[n]
	}
	tens, unit := n/10, n%10
	switch tens {
	case 7:
		// 70..79 build on soixante + dix..dix-neuf.
		if unit == 1 {
			return "soixante et onze"
		}
		return "soixante-" + smallNumbers[10+unit]
	case 8:
		if unit == 0 {
			return "quatre-vingt"
		}
		return "quatre-vingt-" + smallNumbers[unit]
	case 9:
		return "quatre-vingt-" + smallNumbers[10+unit]
	}
	switch unit {
	case 0:
		return tensNumbers[tens]
	case 1:
		return tensNumbers[tens] + " et un"
	}
	return fmt.Sprintf("%s-%s", tensNumbers[tens], smallNumbers[unit])
}

// AmountInWords spells the whole-euro part of an amount for use inside a
// formal sentence, e.g. 1250.40 -> "mille deux cent cinquante euros".
func AmountInWords(amount float64) string {
	euros := int(amount)
	if euros < 0 {
		euros = -euros
	}
	if euros == 1 {
		return "un euro"
	}
	return NumberToWords(euros) + " euros"
}
