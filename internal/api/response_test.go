package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
}

func TestRespondError_EchoesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	// The request ID middleware stamps the response header before the
	// handler runs; the error envelope picks it up from there.
	rec.Header().Set("X-Request-ID", "req-42")

	RespondError(rec, http.StatusBadRequest, "bad input")

	var resp ErrorResponse
	decodeResponse(t, rec, &resp)
	if resp.Error != "bad input" {
		t.Errorf("error = %q, want %q", resp.Error, "bad input")
	}
	if resp.RequestID != "req-42" {
		t.Errorf("request_id = %q, want %q", resp.RequestID, "req-42")
	}
}

func TestRespondError_NoRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "missing")

	if got := rec.Body.String(); got == "" {
		t.Fatal("expected a body")
	}
	var resp ErrorResponse
	decodeResponse(t, rec, &resp)
	if resp.RequestID != "" {
		t.Errorf("request_id should be empty, got %q", resp.RequestID)
	}
}

func TestRespondValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("X-Request-ID", "req-43")

	RespondValidationError(rec, map[string]string{"name": "is required"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp ErrorResponse
	decodeResponse(t, rec, &resp)
	if resp.Code != "validation_error" {
		t.Errorf("code = %q", resp.Code)
	}
	if resp.Details["name"] != "is required" {
		t.Errorf("details = %v", resp.Details)
	}
	if resp.RequestID != "req-43" {
		t.Errorf("request_id = %q, want %q", resp.RequestID, "req-43")
	}
}
