package merge

import (
	"strings"
	"unicode"
)

// Characters allowed in path segments besides letters and digits.
const filenameAllowed = "-_.() []"

// Sanitize replaces every character that is neither alphanumeric nor in the
// allow-list with an underscore. It must be applied to every user-controlled
// path segment before joining paths; it is the only defense against
// filesystem-illegal characters in customer ids and names.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(filenameAllowed, r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
