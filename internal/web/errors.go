package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted appropriately based on request type (JSON or HTML)
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in appropriate format for the client
//
// Tool pages render errors inside their own form instead; see toolError.

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/logging"
	"github.com/JonMunkholm/cop30utils/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError handles error responses with user-friendly messages.
// A statusCode of 0 derives the status from the error code.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)
	if statusCode == 0 {
		statusCode = statusFor(userMsg.Code)
	}

	logError(r, err, userMsg, statusCode)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	templates.ErrorPage(s.sidebar(), userMsg).Render(r.Context(), w)
}

// toolError maps and logs err for display inside a tool form. The caller
// renders the page with the returned message and status.
func toolError(r *http.Request, err error) (*core.UserMessage, int) {
	userMsg := core.MapError(err)
	status := statusFor(userMsg.Code)
	logError(r, err, userMsg, status)
	return &userMsg, status
}

func logError(r *http.Request, err error, msg core.UserMessage, status int) {
	log := logging.FromContext(r.Context()).With(
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)
	if status >= http.StatusInternalServerError {
		log.Error("request error")
	} else {
		log.Warn("request error")
	}
}

// statusFor maps a user message code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case "FILE001":
		return http.StatusRequestEntityTooLarge
	case "TOOL001":
		return http.StatusNotFound
	case "RATE001":
		return http.StatusTooManyRequests
	case "GEN001":
		return http.StatusBadGateway
	case "GEN002", "JOB001":
		return http.StatusServiceUnavailable
	case "JOB002":
		return http.StatusRequestTimeout
	case "JOB003":
		return http.StatusGatewayTimeout
	case "ERR000", "":
		return http.StatusInternalServerError
	}
	if strings.HasPrefix(code, "FILE") || strings.HasPrefix(code, "VAL") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	// API routes default to JSON
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}

	// Check Accept header
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	// Check if request is sending JSON
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
