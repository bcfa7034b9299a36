package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/dupes"
	"github.com/JonMunkholm/cop30utils/internal/gender"
)

// TextRequest is the body of POST /api/tools/{toolKey}.
type TextRequest struct {
	Input string `json:"input"`
}

// CompareRequest is the body of POST /api/compare-lists.
type CompareRequest struct {
	List1 string `json:"list1"`
	List2 string `json:"list2"`
}

// GenderRequest is the body of POST /api/gender.
type GenderRequest struct {
	Input           string `json:"input"`
	ShowProbability bool   `json:"show_probability"`
}

// GenderResponse pairs each non-empty input line with its rendered result.
type GenderResponse struct {
	Lines   []string        `json:"lines"`
	Results []gender.Result `json:"results"`
	Partial bool            `json:"partial,omitempty"`
	Error   *ErrorResponse  `json:"error,omitempty"`
}

// DuplicatesResponse is the JSON form of a duplicate report.
type DuplicatesResponse struct {
	*core.DuplicateReport
	DuplicateRows int    `json:"duplicate_rows"`
	Text          string `json:"text"`
}

// errInvalidJSON wraps body decoding failures.
var errInvalidJSON = errors.New("invalid JSON body")

// handleListTools returns the registered tools.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.ListTools())
}

// handleStatus returns limiter and tool state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.Status())
}

// handleAPIRunText runs a text tool on a JSON body.
func (s *Server) handleAPIRunText(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	res, err := s.service.RunText(WithRequestMetadata(r.Context(), r), chi.URLParam(r, "toolKey"), req.Input)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, r, res)
}

// handleAPICompare compares two lists.
func (s *Server) handleAPICompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	res, err := s.service.CompareLists(WithRequestMetadata(r.Context(), r), req.List1, req.List2)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, r, res)
}

// handleAPIDuplicateRows scans a multipart upload. The format field picks the
// response: json (default), text, xlsx or csv.
func (s *Server) handleAPIDuplicateRows(w http.ResponseWriter, r *http.Request) {
	report, opts, err := s.scanUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if format, ok := opts.download(); ok {
		var buf bytes.Buffer
		if err := s.service.ExportDuplicates(WithRequestMetadata(r.Context(), r), &buf, report, format); err != nil {
			s.respondError(w, r, err, 0)
			return
		}
		sendFile(w, format.ContentType(), exportName(report.Filename, format), buf.Bytes())
		return
	}

	if opts.Format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(report.Text()))
		return
	}

	if report.Groups == nil {
		report.Groups = []dupes.Group{}
	}
	writeJSON(w, r, DuplicatesResponse{
		DuplicateReport: report,
		DuplicateRows:   report.DuplicateRows(),
		Text:            report.Text(),
	})
}

// handleAPIGender detects salutations for a list of names. Results gathered
// before a service failure are returned with the error.
func (s *Server) handleAPIGender(w http.ResponseWriter, r *http.Request) {
	var req GenderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	res, err := s.service.DetectGender(WithRequestMetadata(r.Context(), r), req.Input, req.ShowProbability)
	if err != nil && len(res.Lines) == 0 {
		s.respondError(w, r, err, 0)
		return
	}

	resp := GenderResponse{Lines: res.Lines, Results: res.Results, Partial: res.Partial}
	status := http.StatusOK
	if err != nil {
		msg, code := toolError(r, err)
		resp.Error = &ErrorResponse{Error: msg.Message, Message: msg.Message, Action: msg.Action, Code: msg.Code}
		status = code
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logError(r, err, core.MapError(err), status)
	}
}

// handleAPIPhotoZip builds a photo archive from a multipart form.
func (s *Server) handleAPIPhotoZip(w http.ResponseWriter, r *http.Request) {
	var names, silhouette string
	buf, files, err := s.photoZip(w, r, &names, &silhouette)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	w.Header().Set("X-File-Count", fmt.Sprint(len(files)))
	sendFile(w, "application/zip", zipFilename, buf.Bytes())
}

// decodeJSON reads a JSON body no larger than the text limit.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxTextSize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return core.ErrFileTooLarge
		}
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return nil
}
