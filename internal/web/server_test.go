package web

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/cop30utils/internal/audit"
	"github.com/JonMunkholm/cop30utils/internal/config"
	"github.com/JonMunkholm/cop30utils/internal/core"
	_ "github.com/JonMunkholm/cop30utils/internal/core/tools"
	"github.com/JonMunkholm/cop30utils/internal/gender"
	"github.com/JonMunkholm/cop30utils/internal/sheet"
)

const peopleCSV = "Nome,Email\nAna,a@x.com\nBia,b@x.com\nAna,a@x.com\n"

type fakeResolver map[string]gender.Guess

func (f fakeResolver) Resolve(_ context.Context, name string) (gender.Guess, error) {
	g, ok := f[name]
	if !ok {
		return gender.Guess{}, gender.ErrService
	}
	return g, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Rate.Enabled = false
	cfg.Security.RequireAPIKey = false
	cfg.Security.APIKeys = nil
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config, detector *gender.Detector) (*Server, *audit.LogRecorder) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig(t)
	}
	rec := audit.NewLogRecorder(50)
	svc := core.NewService(core.ServiceConfig{
		Recorder:                rec,
		Codec:                   sheet.Codec{SheetName: "Duplicadas"},
		Detector:                detector,
		DefaultDuplicateColumns: []string{"Email"},
		MaxGenderLines:          10,
		MaxZipNames:             10,
	})
	srv := NewServer(svc, cfg)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv, rec
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	return rr
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func postMultipart(t *testing.T, path string, fields map[string]string, fileField, filename string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		fw.Write(file)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func TestPages(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	tests := []struct {
		path string
		want string
	}{
		{"/", `href="/tools/validate-cpf"`},
		{"/about", "Sobre o COP30 Utils"},
		{"/runs", "Execuções"},
		{"/tools/to-upper", `name="input"`},
		{"/tools/compare-lists", `name="list2"`},
		{"/tools/find-duplicate-rows", `enctype="multipart/form-data"`},
		{"/tools/gender-detection", "desativada"},
		{"/tools/generate-photo-zip", `name="upload"`},
		{"/static/app.css", ".sidebar"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := do(srv, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.EnableCSP = true
	srv, _ := newTestServer(t, cfg, nil)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "script-src 'self'")
}

func TestUnknownToolPage(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/tools/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "TOOL001")

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "TOOL001", decodeError(t, rr).Code)
}

func TestSubmitTextTool(t *testing.T) {
	srv, rec := newTestServer(t, nil, nil)

	rr := do(srv, postForm("/tools/validate-cpf", url.Values{"input": {"52998224725\n\n111"}}))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "529.982.247-25 - VÁLIDO")
	assert.Contains(t, body, "000.000.001-11 - INVÁLIDO")

	entries, err := rec.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "validate-cpf", entries[0].Tool)
}

func TestSubmitTextTool_EmptyInput(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postForm("/tools/to-upper", url.Values{"input": {"  \n "}}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VAL004")
}

func TestSubmitCompare(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postForm("/tools/compare-lists", url.Values{
		"list1": {"ana\nbia"},
		"list2": {"bia\ncaio"},
	}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "caio")
}

func TestSubmitDuplicates_Report(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/tools/find-duplicate-rows",
		map[string]string{"mode": "full", "header": "included", "format": "text"},
		"file", "pessoas.csv", []byte(peopleCSV))
	rr := do(srv, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "2, 4")
}

func TestSubmitDuplicates_Download(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/tools/find-duplicate-rows",
		map[string]string{"mode": "columns", "columns": "Email", "format": "csv"},
		"file", "pessoas.csv", []byte(peopleCSV))
	rr := do(srv, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="pessoas_duplicadas.csv"`)
	assert.Equal(t, "Nome,Email\nAna,a@x.com\n", strings.TrimPrefix(rr.Body.String(), "\ufeff"))
}

func TestSubmitDuplicates_NoFile(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/tools/find-duplicate-rows", map[string]string{"mode": "full"}, "", "", nil)
	rr := do(srv, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "FILE004")
}

func TestSubmitPhotoZip(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postForm("/tools/generate-photo-zip", url.Values{
		"names": {"Ana Lima\nBia\nAna Lima"},
		"photo": {"male"},
	}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/zip", rr.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Ana_Lima.jpg", "Bia.jpg", "Ana_Lima_2.jpg"}, names)
}

func TestSubmitPhotoZip_NoNames(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postForm("/tools/generate-photo-zip", url.Values{"names": {""}, "photo": {"male"}}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VAL003")
}

func TestAPIListToolsAndStatus(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/api/tools", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var tools []core.ToolInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tools))
	assert.Len(t, tools, core.ToolCount())

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var st core.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.False(t, st.GenderEnabled)
	assert.Equal(t, core.ToolCount(), st.Tools)
}

func TestAPIRunText(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postJSON("/api/tools/to-upper", TextRequest{Input: "josé\nana"}))
	require.Equal(t, http.StatusOK, rr.Code)

	var res core.TextResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, []string{"JOSÉ", "ANA"}, res.Lines)
	assert.Equal(t, 2, res.InputLines)
}

func TestAPIRunText_Errors(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postJSON("/api/tools/nope", TextRequest{Input: "x"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "TOOL001", decodeError(t, rr).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/to-upper", strings.NewReader("{not json"))
	rr = do(srv, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VAL007", decodeError(t, rr).Code)
}

func TestAPICompare(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postJSON("/api/compare-lists", CompareRequest{List1: "x\ny", List2: "y\nz"}))
	require.Equal(t, http.StatusOK, rr.Code)

	var res core.CompareResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, []string{"z"}, res.NotIn1)
	assert.Equal(t, []string{"x"}, res.NotIn2)
}

func TestAPIDuplicateRows(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/api/duplicate-rows", map[string]string{"mode": "full"}, "file", "pessoas.csv", []byte(peopleCSV))
	rr := do(srv, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		TotalRows     int `json:"total_rows"`
		DuplicateRows int `json:"duplicate_rows"`
		Groups        []struct {
			Rows []int `json:"rows"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.DuplicateRows)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, []int{2, 4}, resp.Groups[0].Rows)
}

func TestAPIDuplicateRows_XLSX(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/api/duplicate-rows",
		map[string]string{"mode": "full", "format": "xlsx"},
		"file", "pessoas.csv", []byte(peopleCSV))
	rr := do(srv, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, sheet.XLSX.ContentType(), rr.Header().Get("Content-Type"))

	rows, err := sheet.Codec{}.Read(bytes.NewReader(rr.Body.Bytes()), "out.xlsx")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Nome", "Email"}, {"Ana", "a@x.com"}}, rows)
}

func TestAPIDuplicateRows_BadHeaderMode(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/api/duplicate-rows", map[string]string{"header": "sometimes"}, "file", "p.csv", []byte(peopleCSV))
	rr := do(srv, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VAL007", decodeError(t, rr).Code)
}

func TestAPIGender(t *testing.T) {
	detector := gender.NewDetector(fakeResolver{
		"Maria": {Gender: gender.Female, Probability: 0.98},
		"João":  {Gender: gender.Male, Probability: 0.99},
	}, 0)
	srv, _ := newTestServer(t, nil, detector)

	rr := do(srv, postJSON("/api/gender", GenderRequest{Input: "Maria Silva\n\nJoão\nXyz", ShowProbability: true}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp GenderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Ms. (98% confidence)", "", "Mr. (99% confidence)", "Xyz - Unknown gender"}, resp.Lines)
	assert.False(t, resp.Partial)
	assert.Nil(t, resp.Error)
}

func TestAPIGender_Disabled(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rr := do(srv, postJSON("/api/gender", GenderRequest{Input: "Maria"}))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "GEN002", decodeError(t, rr).Code)
}

func TestAPIPhotoZip(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/api/photo-zip", map[string]string{"names": "Ana\nBia", "photo": "female"}, "", "", nil)
	rr := do(srv, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "2", rr.Header().Get("X-File-Count"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), zipFilename)
}

func TestAPIPhotoZip_BadUpload(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	req := postMultipart(t, "/api/photo-zip", map[string]string{"names": "Ana"}, "upload", "foto.jpg", []byte("not an image"))
	rr := do(srv, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "FILE007", decodeError(t, rr).Code)
}

func TestAPIRuns(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	do(srv, postJSON("/api/tools/to-lower", TextRequest{Input: "A"}))
	do(srv, postJSON("/api/tools/to-upper", TextRequest{Input: "b"}))

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/api/runs?limit=1", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp RunsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "to-upper", resp.Runs[0].Tool)
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"secret"}
	srv, _ := newTestServer(t, cfg, nil)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/api/tools", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	req.Header.Set("X-API-Key", "secret")
	rr = do(srv, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Pages stay open.
	rr = do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 2
	srv, _ := newTestServer(t, cfg, nil)

	for i := 0; i < 2; i++ {
		rr := do(srv, httptest.NewRequest(http.MethodGet, "/api/status", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	assert.Equal(t, "RATE001", decodeError(t, rr).Code)

	// Another client has its own window.
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	rr = do(srv, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit_JobsOnPages(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 100
	cfg.Rate.JobLimit = 1
	srv, _ := newTestServer(t, cfg, nil)

	zipForm := url.Values{"names": {"Ana"}, "photo": {"male"}}
	rr := do(srv, postForm("/tools/generate-photo-zip", zipForm))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(srv, postForm("/tools/generate-photo-zip", zipForm))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "RATE001")

	// The page and API share one job budget.
	rr = do(srv, postMultipart(t, "/api/photo-zip", map[string]string{"names": "Bia"}, "", "", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// Text tools only count against the general limit.
	rr = do(srv, postForm("/tools/to-upper", url.Values{"input": {"ana"}}))
	assert.Equal(t, http.StatusOK, rr.Code)
}
