// Package dupes finds groups of identical rows in a table.
//
// Rows are compared either in full or projected onto a named subset of
// columns. Grouping is a single pass keyed by a canonical, order-preserving
// serialization of the compared cells; groups are returned in order of
// first occurrence.
package dupes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTable is returned when the source table has no rows to compare.
var ErrEmptyTable = errors.New("empty table: the sheet has no rows")

// ErrHeaderRequired is returned when column-subset comparison is requested
// for a table declared to have no header row.
var ErrHeaderRequired = errors.New("header required: column comparison needs a header row")

// MissingColumnsError names the required columns absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// HeaderMode controls whether the first row is a header and how rows are
// numbered in the result.
type HeaderMode int

const (
	// HeaderIncluded compares every row, the first one included, and numbers
	// row i as i+2. This mirrors the spreadsheet convention the tool was
	// built around, where the sheet is assumed to start below a header.
	HeaderIncluded HeaderMode = iota

	// HeaderExcluded treats the first row as the header (row 1) and compares
	// only the rows below it, numbered from 2.
	HeaderExcluded

	// NoHeader compares every row and numbers row i as i+1.
	NoHeader
)

// ParseHeaderMode maps "included", "excluded"/"skip" and "none" to a mode.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "included", "include":
		return HeaderIncluded, nil
	case "excluded", "exclude", "skip":
		return HeaderExcluded, nil
	case "none", "no":
		return NoHeader, nil
	default:
		return 0, fmt.Errorf("invalid header mode %q", s)
	}
}

func (m HeaderMode) String() string {
	switch m {
	case HeaderExcluded:
		return "excluded"
	case NoHeader:
		return "none"
	default:
		return "included"
	}
}

// Table is an ordered sequence of rows of cell text.
type Table struct {
	Rows [][]string
}

// Width returns the length of the longest row.
func (t Table) Width() int {
	w := 0
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Header returns the first row, or nil for an empty table.
func (t Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// Options selects the comparison mode.
type Options struct {
	// Columns restricts comparison to these header names. Empty means
	// full-row comparison.
	Columns []string

	Header HeaderMode
}

// Group is a set of rows sharing identical compared content.
type Group struct {
	Rows    []int    `json:"rows"`              // row numbers, in first-occurrence order
	Content []string `json:"content"`           // the shared cells
	Columns []string `json:"columns,omitempty"` // names for Content in column mode
	Count   int      `json:"count"`

	indexes []int // 0-based positions in Table.Rows
}

// FirstIndex returns the 0-based table position of the group's first row.
func (g Group) FirstIndex() int {
	if len(g.indexes) == 0 {
		return -1
	}
	return g.indexes[0]
}

// Find groups rows of t with identical content under opts.
// Only groups with at least two members are returned.
func Find(t Table, opts Options) ([]Group, error) {
	if len(t.Rows) == 0 {
		return nil, ErrEmptyTable
	}

	mode := opts.Header
	var project []int
	if len(opts.Columns) > 0 {
		if mode == NoHeader {
			return nil, ErrHeaderRequired
		}
		mode = HeaderExcluded

		idx, err := resolveColumns(t.Header(), opts.Columns)
		if err != nil {
			return nil, err
		}
		project = idx
	}

	start, offset := 0, 1
	switch mode {
	case HeaderIncluded:
		offset = 2
	case HeaderExcluded:
		start = 1
	}
	if start >= len(t.Rows) {
		return nil, ErrEmptyTable
	}

	width := t.Width()
	byKey := make(map[string]*Group)
	var order []*Group

	for i := start; i < len(t.Rows); i++ {
		cells := normalizeRow(t.Rows[i], width, project)
		key := rowKey(cells)

		g, ok := byKey[key]
		if !ok {
			g = &Group{Content: cells}
			if project != nil {
				g.Columns = opts.Columns
			}
			byKey[key] = g
			order = append(order, g)
		}
		g.Rows = append(g.Rows, i+offset)
		g.indexes = append(g.indexes, i)
	}

	// order is already by first occurrence; filtering keeps it sorted.
	var groups []Group
	for _, g := range order {
		if len(g.Rows) < 2 {
			continue
		}
		g.Count = len(g.Rows)
		groups = append(groups, *g)
	}

	return groups, nil
}

// normalizeRow pads row to width with empty cells, then projects it onto
// the given column positions when project is non-nil.
func normalizeRow(row []string, width int, project []int) []string {
	if project != nil {
		out := make([]string, len(project))
		for i, pos := range project {
			if pos < len(row) {
				out[i] = row[pos]
			}
		}
		return out
	}

	out := make([]string, width)
	copy(out, row)
	return out
}

// rowKey serializes cells into an unambiguous map key.
func rowKey(cells []string) string {
	b, _ := json.Marshal(cells)
	return string(b)
}

// resolveColumns maps required column names onto header positions.
// Matching ignores surrounding whitespace and case.
func resolveColumns(header, columns []string) ([]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	positions := make([]int, len(columns))
	var missing []string
	for i, col := range columns {
		pos, ok := index[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions[i] = pos
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return positions, nil
}
