package sheet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// readXLS reads the first worksheet of a BIFF (.xls) workbook. Missing rows
// come back empty so row i of the table is row i+1 of the sheet.
func readXLS(r io.Reader) (rows [][]string, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xls: %w", err)
	}

	// The BIFF parser panics on some truncated files.
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("%w: open workbook: %v", ErrMalformed, p)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(raw), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrMalformed, err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoSheets
	}

	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrNoSheets
	}

	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, []string{})
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, trimTrailingEmpty(cells))
	}

	// A sheet with no cells still reports MaxRow 0.
	if len(rows) == 1 && len(rows[0]) == 0 {
		return nil, nil
	}
	return rows, nil
}

func trimTrailingEmpty(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
