// Package lines implements the line-oriented text tools: case conversion,
// de-duplication with counts, repeat detection, list comparison, sorting and
// name splitting.
//
// Unless stated otherwise a tool works on the trimmed, non-empty lines of its
// input.
package lines

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var newline = regexp.MustCompile(`\r?\n`)

// Split breaks text on \n or \r\n, keeping blank lines.
func Split(text string) []string {
	return newline.Split(text, -1)
}

// NonEmpty returns the trimmed lines of text, dropping blank ones.
func NonEmpty(text string) []string {
	var out []string
	for _, l := range Split(text) {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Upper converts the whole text to upper case. Casers carry state, so each
// call builds its own.
func Upper(text string) string {
	return cases.Upper(language.BrazilianPortuguese).String(text)
}

// Lower converts the whole text to lower case.
func Lower(text string) string {
	return cases.Lower(language.BrazilianPortuguese).String(text)
}

// MapLines applies fn to every line of text, trimmed, and keeps blank lines
// blank so output line k corresponds to input line k.
func MapLines(text string, fn func(string) string) []string {
	in := Split(text)
	out := make([]string, len(in))
	for i, l := range in {
		if l = strings.TrimSpace(l); l != "" {
			out[i] = fn(l)
		}
	}
	return out
}

// SplitNames separates each name into its first and last word. A single-word
// name yields an empty last name.
func SplitNames(names []string) (first, last []string) {
	for _, n := range names {
		parts := strings.Fields(n)
		switch len(parts) {
		case 0:
			continue
		case 1:
			first = append(first, parts[0])
			last = append(last, "")
		default:
			first = append(first, parts[0])
			last = append(last, parts[len(parts)-1])
		}
	}
	return first, last
}
