// Package names normalizes personal names to title case.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// connectors stay lowercase wherever they appear in a name.
var connectors = map[string]bool{
	"e":   true,
	"da":  true,
	"de":  true,
	"do":  true,
	"das": true,
	"dos": true,
}

// Normalize collapses runs of whitespace, trims the ends and title-cases each
// word: first letter upper, the rest lower. Portuguese connectors (da, de,
// do, das, dos, e) are lowercased instead. A blank line returns "".
func Normalize(line string) string {
	words := strings.Fields(norm.NFC.String(line))
	if len(words) == 0 {
		return ""
	}

	lower := cases.Lower(language.BrazilianPortuguese)
	for i, w := range words {
		lw := lower.String(w)
		if connectors[lw] {
			words[i] = lw
			continue
		}
		words[i] = capitalize(lw)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
