package format

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// suffixCharset is the alphabet of the random document-number suffix.
const suffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DocumentNumber builds a document reference of the form
// PREFIX-YYYYMMDD-RAND4, e.g. "QUI-20250305-8XK2". The prefix is the fixed
// three-letter code of the document type; the suffix is four uppercase
// alphanumeric characters. References are presentational: the format is
// stable, uniqueness is only probabilistic.
func DocumentNumber(prefix string, t time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = suffixCharset[rand.Intn(len(suffixCharset))]
	}
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(prefix), t.Format("20060102"), suffix)
}
