package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeValidation    = "validation_failed"
	ErrCodeConflict      = "conflict"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeInternalError = "internal_error"
)

// ErrorResponse is the body of every error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string              `json:"error"`
	Code    string              `json:"code,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// SuccessResponse is the body of plain acknowledgements.
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes an ErrorResponse with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// WriteValidationError writes a 400 with per-field messages.
func WriteValidationError(w http.ResponseWriter, details map[string][]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Code:    ErrCodeValidation,
		Details: details,
	})
}
