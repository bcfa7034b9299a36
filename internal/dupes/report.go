package dupes

import (
	"fmt"
	"strings"
)

// Representatives builds an export table holding the header (when opts
// declares one) followed by the first row of every group, as it appears in
// the source table.
func Representatives(t Table, groups []Group, opts Options) Table {
	var out Table

	mode := opts.Header
	if len(opts.Columns) > 0 {
		mode = HeaderExcluded
	}
	if mode != NoHeader && len(t.Rows) > 0 {
		out.Rows = append(out.Rows, cloneRow(t.Rows[0]))
	}

	for _, g := range groups {
		idx := g.FirstIndex()
		if idx < 0 || idx >= len(t.Rows) {
			continue
		}
		out.Rows = append(out.Rows, cloneRow(t.Rows[idx]))
	}

	return out
}

// FormatReport renders groups as the plain-text summary users paste into
// chat or e-mail.
func FormatReport(groups []Group) string {
	if len(groups) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("Linhas Duplicadas Encontradas: %d grupo(s)\n", len(groups)))

	for i, g := range groups {
		lines = append(lines, fmt.Sprintf("Grupo %d - Linhas: %s", i+1, joinInts(g.Rows)))
		lines = append(lines, "Conteúdo: "+FormatContent(g))
		lines = append(lines, fmt.Sprintf("Total de cópias: %d", g.Count))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// FormatContent renders a group's shared cells, "a | b" in full-row mode or
// "Name: a | Email: b" in column mode.
func FormatContent(g Group) string {
	if len(g.Columns) == 0 {
		return strings.Join(g.Content, " | ")
	}

	parts := make([]string, len(g.Columns))
	for i, col := range g.Columns {
		val := ""
		if i < len(g.Content) {
			val = g.Content[i]
		}
		parts[i] = col + ": " + val
	}
	return strings.Join(parts, " | ")
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}
