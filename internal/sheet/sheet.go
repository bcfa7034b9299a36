// Package sheet reads and writes small tables from uploaded spreadsheet files.
//
// Supported formats:
//
//   - .xlsx: first worksheet, via excelize
//   - .xls:  first worksheet of a legacy BIFF workbook (read only)
//   - .csv:  comma or semicolon separated, UTF-8 (with or without BOM),
//     UTF-16 with BOM, or Windows-1252 as exported by Excel in pt-BR locales
//
// Tables are whole-buffer values; nothing is streamed or retained.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFileType is returned for extensions other than .xlsx,
	// .xls and .csv, and for writing .xls.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrNoSheets is returned when a workbook has no worksheets.
	ErrNoSheets = errors.New("workbook has no sheets")

	// ErrMalformed wraps parse failures from the underlying decoder.
	ErrMalformed = errors.New("malformed file")
)

// Format identifies a table file format.
type Format string

const (
	XLSX Format = "xlsx"
	XLS  Format = "xls"
	CSV  Format = "csv"
)

// ContentType returns the MIME type used when serving a file of this format.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case XLS:
		return "application/vnd.ms-excel"
	case CSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// FormatFromName picks the format from a file name's extension.
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "xlsx":
		return XLSX, nil
	case "csv", "txt":
		return CSV, nil
	case "xls":
		return XLS, nil
	case "":
		return "", fmt.Errorf("%w: file has no extension", ErrUnsupportedFileType)
	default:
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedFileType, ext)
	}
}

// ParseFormat accepts the writable formats "xlsx" or "csv" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case XLSX:
		return XLSX, nil
	case CSV:
		return CSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, s)
	}
}

// Reader loads rows of cell text from a file.
type Reader interface {
	Read(r io.Reader, filename string) ([][]string, error)
}

// Writer serializes rows of cell text to a file format.
type Writer interface {
	Write(w io.Writer, rows [][]string, format Format) error
}

// Codec implements Reader and Writer for every supported format.
type Codec struct {
	// SheetName is the worksheet name used when writing xlsx. Default "Sheet1".
	SheetName string
}

var (
	_ Reader = Codec{}
	_ Writer = Codec{}
)

// Read detects the format from filename and parses r into rows.
func (c Codec) Read(r io.Reader, filename string) ([][]string, error) {
	format, err := FormatFromName(filename)
	if err != nil {
		return nil, err
	}

	switch format {
	case XLSX:
		return readXLSX(r)
	case XLS:
		return readXLS(r)
	default:
		return readCSV(r)
	}
}

// Write serializes rows as format.
func (c Codec) Write(w io.Writer, rows [][]string, format Format) error {
	switch format {
	case XLSX:
		name := c.SheetName
		if name == "" {
			name = "Sheet1"
		}
		return writeXLSX(w, rows, name)
	case CSV:
		return writeCSV(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, format)
	}
}
