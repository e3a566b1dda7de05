package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope returned by every endpoint.
// RequestID echoes the X-Request-ID assigned upstream so a dashboard
// error can be matched to its server log lines.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes the error envelope with the given message.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, RequestID: requestID(w)})
}

// RespondErrorWithCode writes the error envelope with a
// machine-readable code alongside the message.
func RespondErrorWithCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code, RequestID: requestID(w)})
}

// RespondValidationError writes field-level validation errors as a
// 422 response.
func RespondValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:     "Validation failed",
		Code:      "validation_error",
		Details:   fieldErrors,
		RequestID: requestID(w),
	})
}

// RespondNoContent writes a 204 No Content response with no body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// requestID reads the request ID the middleware stamped on the
// response headers. Read from the header rather than the context so
// this package does not depend on the middleware package.
func requestID(w http.ResponseWriter) string {
	return w.Header().Get("X-Request-ID")
}
