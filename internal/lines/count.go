package lines

import (
	"fmt"
	"strconv"
	"strings"
)

// NoRepeatsNotice is shown when Repeats finds nothing.
const NoRepeatsNotice = "Nenhuma linha repetida encontrada."

// Counted is a distinct line and how often it occurred.
type Counted struct {
	Line  string `json:"line"`
	Count int    `json:"count"`
}

func (c Counted) String() string {
	if c.Count > 1 {
		return fmt.Sprintf("%s (%dx)", c.Line, c.Count)
	}
	return c.Line
}

// CountUnique returns each distinct line once, in first-occurrence order,
// with its number of occurrences.
func CountUnique(lines []string) []Counted {
	index := make(map[string]int, len(lines))
	var out []Counted
	for _, l := range lines {
		if i, ok := index[l]; ok {
			out[i].Count++
			continue
		}
		index[l] = len(out)
		out = append(out, Counted{Line: l, Count: 1})
	}
	return out
}

// RenderCounted formats CountUnique output, "a (2x)" for repeated lines.
func RenderCounted(items []Counted) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.String()
	}
	return out
}

// Repeat is a line that occurs more than once.
type Repeat struct {
	Content string `json:"content"`
	Lines   []int  `json:"lines"` // 1-based positions in the original text
	Count   int    `json:"count"`
}

func (r Repeat) String() string {
	nums := make([]string, len(r.Lines))
	for i, n := range r.Lines {
		nums[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s (linhas: %s, %dx)", r.Content, strings.Join(nums, ", "), r.Count)
}

// Repeats finds lines of text occurring at least twice, ignoring blank lines
// and surrounding whitespace. Line numbers count blank lines so they match
// what the user sees. Results are ordered by first occurrence.
func Repeats(text string) []Repeat {
	index := make(map[string]int)
	var all []Repeat
	for i, l := range Split(text) {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if j, ok := index[l]; ok {
			all[j].Lines = append(all[j].Lines, i+1)
			continue
		}
		index[l] = len(all)
		all = append(all, Repeat{Content: l, Lines: []int{i + 1}})
	}

	var out []Repeat
	for _, r := range all {
		if len(r.Lines) > 1 {
			r.Count = len(r.Lines)
			out = append(out, r)
		}
	}
	return out
}
