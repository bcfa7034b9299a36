package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/cop30utils/internal/audit"
	"github.com/JonMunkholm/cop30utils/internal/web/templates"
)

const (
	defaultRunsLimit = 50
	maxRunsLimit     = 500
)

// RunsResponse is the JSON body of GET /api/runs.
type RunsResponse struct {
	Runs  []audit.Entry `json:"runs"`
	Count int           `json:"count"`
}

// handleRuns renders the recent runs page.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.RecentRuns(r.Context(), runsLimit(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, templates.RunsPage(s.pageSidebar("runs"), entries))
}

// handleRunsJSON returns recent runs as JSON.
func (s *Server) handleRunsJSON(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.RecentRuns(r.Context(), runsLimit(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	writeJSON(w, r, RunsResponse{Runs: entries, Count: len(entries)})
}

// runsLimit reads ?limit=, clamped to [1, maxRunsLimit].
func runsLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return defaultRunsLimit
	}
	if n > maxRunsLimit {
		return maxRunsLimit
	}
	return n
}
