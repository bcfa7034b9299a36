package lines

import (
	"sort"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortAlpha sorts lines alphabetically using pt-BR collation at base
// strength: case and accents are ignored, so "álvaro" sorts with "Alvaro".
// Lines that collate equal keep their input order.
func SortAlpha(lines []string, desc bool) []string {
	out := append([]string(nil), lines...)
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.IgnoreDiacritics)

	sort.SliceStable(out, func(i, j int) bool {
		cmp := c.CompareString(out[i], out[j])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// SortByLength sorts lines by character count, shortest first. Lines of equal
// length keep their input order.
func SortByLength(lines []string) []string {
	out := append([]string(nil), lines...)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) < utf8.RuneCountInString(out[j])
	})
	return out
}

// LengthStats summarizes line lengths in characters.
type LengthStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Lengths computes LengthStats for lines. It returns the zero value for an
// empty slice.
func Lengths(lines []string) (LengthStats, error) {
	if len(lines) == 0 {
		return LengthStats{}, nil
	}

	data := make(stats.Float64Data, len(lines))
	for i, l := range lines {
		data[i] = float64(utf8.RuneCountInString(l))
	}

	ls := LengthStats{Count: len(lines)}
	var err error
	if ls.Min, err = stats.Min(data); err != nil {
		return LengthStats{}, err
	}
	if ls.Max, err = stats.Max(data); err != nil {
		return LengthStats{}, err
	}
	if ls.Mean, err = stats.Mean(data); err != nil {
		return LengthStats{}, err
	}
	if ls.Median, err = stats.Median(data); err != nil {
		return LengthStats{}, err
	}
	return ls, nil
}
