package web

import (
	"bytes"
	"net/http"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/logging"
	"github.com/JonMunkholm/cop30utils/internal/photozip"
	"github.com/JonMunkholm/cop30utils/internal/web/templates"
)

const zipFilename = "fotos.zip"

// submitDuplicates scans an uploaded spreadsheet. With format=xlsx or csv the
// first row of each group is sent back as a download; otherwise the report
// is rendered on the page.
func (s *Server) submitDuplicates(w http.ResponseWriter, r *http.Request, tool core.ToolInfo) {
	params := templates.DuplicatesParams{
		Tool:           tool,
		DefaultColumns: s.service.DefaultDuplicateColumns(),
	}

	report, opts, err := s.scanUpload(w, r)
	params.Mode, params.Columns, params.Header = opts.Mode, opts.Columns, opts.Header
	if err != nil {
		params.Error, _ = toolError(r, err)
		status := statusFor(params.Error.Code)
		render(w, r, status, templates.DuplicatesPage(s.toolSidebar(tool.Key), params))
		return
	}

	if format, ok := opts.download(); ok {
		var buf bytes.Buffer
		if err := s.service.ExportDuplicates(WithRequestMetadata(r.Context(), r), &buf, report, format); err != nil {
			params.Report = report
			params.Error, _ = toolError(r, err)
			render(w, r, statusFor(params.Error.Code), templates.DuplicatesPage(s.toolSidebar(tool.Key), params))
			return
		}
		sendFile(w, format.ContentType(), exportName(report.Filename, format), buf.Bytes())
		return
	}

	params.Report = report
	render(w, r, http.StatusOK, templates.DuplicatesPage(s.toolSidebar(tool.Key), params))
}

// scanUpload reads the duplicate form and runs the scan.
func (s *Server) scanUpload(w http.ResponseWriter, r *http.Request) (*core.DuplicateReport, duplicateOptions, error) {
	if err := parseForm(w, r, s.cfg.Upload.MaxFileSize); err != nil {
		return nil, duplicateOptions{}, err
	}
	opts := readDuplicateOptions(r)

	data, filename, err := formFile(r, "file")
	if err != nil {
		return nil, opts, err
	}

	req, err := opts.request(filename, data)
	if err != nil {
		return nil, opts, err
	}

	report, err := s.service.FindDuplicateRows(WithRequestMetadata(r.Context(), r), req)
	return report, opts, err
}

// submitPhotoZip builds the archive and sends it as a download.
func (s *Server) submitPhotoZip(w http.ResponseWriter, r *http.Request, tool core.ToolInfo) {
	params := templates.PhotoZipParams{
		Tool:        tool,
		Silhouette:  photozip.Silhouettes[0].ID,
		Silhouettes: photozip.Silhouettes,
	}

	buf, files, err := s.photoZip(w, r, &params.Names, &params.Silhouette)
	if err != nil {
		params.Error, _ = toolError(r, err)
		render(w, r, statusFor(params.Error.Code), templates.PhotoZipPage(s.toolSidebar(tool.Key), params))
		return
	}

	logging.FromContext(r.Context()).Info("photo zip sent", "files", len(files), "bytes", buf.Len())
	sendFile(w, "application/zip", zipFilename, buf.Bytes())
}

// photoZip reads the photo ZIP form and builds the archive in memory. names
// and silhouette receive the submitted values so a failed form can be shown
// again.
func (s *Server) photoZip(w http.ResponseWriter, r *http.Request, names, silhouette *string) (*bytes.Buffer, []string, error) {
	if err := parseForm(w, r, s.cfg.Upload.MaxPhotoSize+s.cfg.Upload.MaxTextSize); err != nil {
		return nil, nil, err
	}

	*names = r.FormValue("names")
	if v := r.FormValue("photo"); v != "" {
		*silhouette = v
	}

	upload, err := optionalFormFile(r, "upload")
	if err != nil {
		return nil, nil, err
	}
	if int64(len(upload)) > s.cfg.Upload.MaxPhotoSize {
		return nil, nil, core.ErrFileTooLarge
	}

	var buf bytes.Buffer
	files, err := s.service.BuildPhotoZip(WithRequestMetadata(r.Context(), r), &buf, core.PhotoZipRequest{
		Names:      *names,
		Upload:     upload,
		Silhouette: *silhouette,
	})
	if err != nil {
		return nil, nil, err
	}
	return &buf, files, nil
}
