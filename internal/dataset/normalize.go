package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes characters and drops their combining marks, so
// "Hàng Hoá" and "Hang Hoa" collapse to the same base letters.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents returns s with diacritics removed. Letters that do not
// decompose (e.g. "đ") are kept as-is.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey produces the comparison key used for fuzzy matching of sheet
// and column names: accents stripped, lowercased, spaces removed. The result
// is only ever compared against other normalized keys, never displayed.
// Idempotent: NormalizeKey(NormalizeKey(s)) == NormalizeKey(s).
func NormalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(StripAccents(s)), " ", "")
}
