package httpapi

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in APIError bodies.
const (
	CodeInvalidJSON      = "invalid_json"
	CodeMissingIntent    = "missing_intent"
	CodeUnknownCampus    = "unknown_campus"
	CodeBadQuery         = "bad_query"
	CodeFetchFailed      = "fetch_failed"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInternal         = "internal_error"
)

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type APIError struct {
	Error ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, APIError{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
	}})
}
