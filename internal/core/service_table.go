package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/cop30utils/internal/dupes"
	"github.com/JonMunkholm/cop30utils/internal/logging"
	"github.com/JonMunkholm/cop30utils/internal/sheet"
)

// DuplicateMode selects full-row or column comparison.
type DuplicateMode string

const (
	ModeFullRow DuplicateMode = "full"
	ModeColumns DuplicateMode = "columns"
)

// DuplicateRequest describes a spreadsheet to scan.
type DuplicateRequest struct {
	Filename string
	Data     []byte

	Mode    DuplicateMode
	Columns []string // column mode only; empty uses the configured defaults
	Header  dupes.HeaderMode
}

// DuplicateReport is the outcome of FindDuplicateRows.
type DuplicateReport struct {
	Filename  string        `json:"filename"`
	TotalRows int           `json:"total_rows"`
	Groups    []dupes.Group `json:"groups"`
	Columns   []string      `json:"columns,omitempty"`
	Header    string        `json:"header"`

	table dupes.Table
	opts  dupes.Options
}

// Text renders the report as plain text.
func (r *DuplicateReport) Text() string {
	return dupes.FormatReport(r.Groups)
}

// DuplicateRows returns the number of rows that belong to some group.
func (r *DuplicateReport) DuplicateRows() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Count
	}
	return n
}

// FindDuplicateRows parses an uploaded spreadsheet and groups identical rows.
func (s *Service) FindDuplicateRows(ctx context.Context, req DuplicateRequest) (report *DuplicateReport, err error) {
	start := time.Now()
	log := logging.WithFields(ctx, "tool", "find-duplicate-rows", "filename", req.Filename)
	defer func() {
		in, out := 0, 0
		if report != nil {
			in, out = report.TotalRows, len(report.Groups)
		}
		s.record(ctx, "find-duplicate-rows", start, in, out, err)
	}()

	if len(req.Data) == 0 {
		return nil, ErrNoFile
	}

	opts := dupes.Options{Header: req.Header}
	if req.Mode == ModeColumns {
		opts.Columns = req.Columns
		if len(opts.Columns) == 0 {
			opts.Columns = s.defaultColumns
		}
		// Column names come from the first row, which is never data here.
		if opts.Header == dupes.HeaderIncluded {
			opts.Header = dupes.HeaderExcluded
		}
	}

	err = s.runJob(ctx, func(ctx context.Context) error {
		rows, err := s.codec.Read(bytes.NewReader(req.Data), req.Filename)
		if err != nil {
			return fmt.Errorf("read %s: %w", req.Filename, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		table := dupes.Table{Rows: rows}
		groups, err := dupes.Find(table, opts)
		if err != nil {
			return err
		}

		report = &DuplicateReport{
			Filename:  req.Filename,
			TotalRows: len(rows),
			Groups:    groups,
			Columns:   opts.Columns,
			Header:    opts.Header.String(),
			table:     table,
			opts:      opts,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("duplicate scan completed",
		"rows", report.TotalRows,
		"groups", len(report.Groups),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// ExportDuplicates writes the header (when present) and the first row of
// each group of report to w in the given format.
func (s *Service) ExportDuplicates(ctx context.Context, w io.Writer, report *DuplicateReport, format sheet.Format) (err error) {
	start := time.Now()
	defer func() {
		out := 0
		if report != nil {
			out = len(report.Groups)
		}
		s.record(ctx, "export-duplicates", start, out, out, err)
	}()

	if report == nil {
		return dupes.ErrEmptyTable
	}

	rows := dupes.Representatives(report.table, report.Groups, report.opts)
	return s.codec.Write(w, rows.Rows, format)
}
