// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/dupes"
	"github.com/JonMunkholm/cop30utils/internal/logging"
	"github.com/JonMunkholm/cop30utils/internal/sheet"
	"github.com/JonMunkholm/cop30utils/internal/web/templates"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// sidebar builds the navigation from the registry.
func (s *Server) sidebar() templates.SidebarParams {
	byGroup := s.service.ListToolsByGroup()
	var groups []templates.ToolGroup
	for _, name := range core.Groups() {
		groups = append(groups, templates.ToolGroup{Name: name, Tools: byGroup[name]})
	}
	return templates.SidebarParams{Groups: groups}
}

func (s *Server) pageSidebar(activePage string) templates.SidebarParams {
	sb := s.sidebar()
	sb.ActivePage = activePage
	return sb
}

func (s *Server) toolSidebar(toolKey string) templates.SidebarParams {
	sb := s.sidebar()
	sb.ActiveTool = toolKey
	return sb
}

// render writes an HTML component with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// parseForm parses a urlencoded or multipart body no larger than limit.
func parseForm(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(multipartMemory)
	}
	return r.ParseForm()
}

// formFile reads an uploaded file. A missing or empty file returns
// core.ErrNoFile.
func formFile(r *http.Request, field string) ([]byte, string, error) {
	if r.MultipartForm == nil {
		return nil, "", core.ErrNoFile
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", core.ErrNoFile
	}
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, header.Filename, core.ErrNoFile
	}
	return data, header.Filename, nil
}

// optionalFormFile is formFile for fields that may be left empty.
func optionalFormFile(r *http.Request, field string) ([]byte, error) {
	data, _, err := formFile(r, field)
	if errors.Is(err, core.ErrNoFile) {
		return nil, nil
	}
	return data, err
}

// duplicateOptions holds the non-file fields of a duplicate scan.
type duplicateOptions struct {
	Mode    string
	Columns string
	Header  string
	Format  string // "text", "json", or a sheet.Format for downloads
}

func readDuplicateOptions(r *http.Request) duplicateOptions {
	return duplicateOptions{
		Mode:    strings.TrimSpace(r.FormValue("mode")),
		Columns: r.FormValue("columns"),
		Header:  strings.TrimSpace(r.FormValue("header")),
		Format:  strings.ToLower(strings.TrimSpace(r.FormValue("format"))),
	}
}

// request builds a core.DuplicateRequest from the options.
func (o duplicateOptions) request(filename string, data []byte) (core.DuplicateRequest, error) {
	header, err := dupes.ParseHeaderMode(o.Header)
	if err != nil {
		return core.DuplicateRequest{}, err
	}

	req := core.DuplicateRequest{
		Filename: filename,
		Data:     data,
		Mode:     core.ModeFullRow,
		Header:   header,
	}
	if o.Mode == string(core.ModeColumns) {
		req.Mode = core.ModeColumns
		req.Columns = splitColumns(o.Columns)
	}
	return req, nil
}

// download returns the sheet format to download, or "" for an on-screen
// report.
func (o duplicateOptions) download() (sheet.Format, bool) {
	f, err := sheet.ParseFormat(o.Format)
	if err != nil {
		return "", false
	}
	return f, true
}

// splitColumns splits a comma or newline separated column list.
func splitColumns(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// sendFile writes data as a download.
func sendFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// exportName derives the download name from the uploaded file name.
func exportName(uploaded string, f sheet.Format) string {
	base := uploaded
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r == '/' || r < 0x20 {
			return '_'
		}
		return r
	}, base)
	if base == "" {
		base = "planilha"
	}
	return base + "_duplicadas." + string(f)
}

func isChecked(r *http.Request, field string) bool {
	switch strings.ToLower(r.FormValue(field)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
