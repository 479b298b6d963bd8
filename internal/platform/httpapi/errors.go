package httpapi

import (
	"net/http"
)

// Error types reported in the "type" field of error responses.
const (
	ErrTypeValidation  = "validation_error"
	ErrTypeNotFound    = "not_found"
	ErrTypeUnavailable = "unavailable"
	ErrTypeInternal    = "internal_error"
)

// APIError is the body of every error response.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, errorResponse{Error: APIError{Type: errType, Message: message}})
}
