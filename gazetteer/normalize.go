package gazetteer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var re_not_alpha = regexp.MustCompile(`[^\p{L}\p{N}]+`)
var re_spaces = regexp.MustCompile(`\s{2,}`)

// NormalizeName returns 'raw' case folded, stripped of diacritics and with any run of punctuation or
// whitespace replaced by a single space, so that "Zürich" and "ZURICH" compare equal.
func NormalizeName(raw string) string {

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	v, _, err := transform.String(t, raw)

	if err != nil {
		v = raw
	}

	v = cases.Fold().String(v)

	v = re_not_alpha.ReplaceAllString(v, " ")
	v = re_spaces.ReplaceAllString(v, " ")

	return strings.TrimSpace(v)
}
