package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = sniffDelimiter(text)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	// encoding/csv skips blank lines. They are put back as empty rows so
	// that row i of the table is line i+1 of the file, as in a spreadsheet.
	var rows [][]string
	next := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		line, _ := cr.FieldPos(0)
		for ; next < line; next++ {
			rows = append(rows, []string{})
		}
		rows = append(rows, record)

		last := len(record) - 1
		lastLine, _ := cr.FieldPos(last)
		next = lastLine + strings.Count(record[last], "\n") + 1
	}
	return rows, nil
}

// writeCSV emits a UTF-8 BOM so spreadsheet apps detect the encoding.
func writeCSV(w io.Writer, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// decodeText converts raw file bytes to UTF-8. A UTF-8 or UTF-16 BOM selects
// that encoding and is dropped. Without a BOM, valid UTF-8 passes through and
// anything else is read as Windows-1252.
func decodeText(raw []byte) ([]byte, error) {
	var fallback transform.Transformer = unicode.UTF8.NewDecoder()
	if !hasBOM(raw) && !utf8.Valid(raw) {
		fallback = charmap.Windows1252.NewDecoder()
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode text: %v", ErrMalformed, err)
	}
	return out, nil
}

func hasBOM(b []byte) bool {
	if bytes.HasPrefix(b, utf8BOM) {
		return true
	}
	return len(b) >= 2 && ((b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE))
}

// sniffDelimiter picks ';', '\t' or ',' by frequency on the first line,
// ignoring quoted text. Ties go to ','.
func sniffDelimiter(text []byte) rune {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}

	counts := map[byte]int{}
	quoted := false
	for _, b := range line {
		switch {
		case b == '"':
			quoted = !quoted
		case !quoted && (b == ',' || b == ';' || b == '\t'):
			counts[b]++
		}
	}

	best, bestN := byte(','), counts[',']
	for _, d := range []byte{';', '\t'} {
		if counts[d] > bestN {
			best, bestN = d, counts[d]
		}
	}
	return rune(best)
}
