package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestHandler_Home(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		version     string
		wantVersion bool
	}{
		{"with version", "User Management System", "2.0.0", true},
		{"without version", "URL Shortener API", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.service, tt.version)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			h.Home(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}

			body := decodeBody(t, rec)
			if body["status"] != "healthy" {
				t.Errorf("unexpected status: %v", body["status"])
			}
			if body["service"] != tt.service {
				t.Errorf("unexpected service: %v", body["service"])
			}
			_, hasVersion := body["version"]
			if hasVersion != tt.wantVersion {
				t.Errorf("version present = %v, want %v", hasVersion, tt.wantVersion)
			}
		})
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := New("svc", "")

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != MsgEndpointNotFound {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New("svc", "")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != MsgMethodNotAllowed {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		limit      int64
		wantOK     bool
		wantStatus int
		wantError  string
	}{
		{name: "valid", body: `{"url":"x"}`, wantOK: true},
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest, wantError: MsgInvalidJSON},
		{name: "malformed", body: `{"url":`, wantStatus: http.StatusBadRequest, wantError: MsgInvalidJSON},
		{name: "wrong type", body: `{"url":42}`, wantStatus: http.StatusBadRequest, wantError: MsgInvalidJSON},
		{name: "array", body: `["x"]`, wantStatus: http.StatusBadRequest, wantError: MsgInvalidJSON},
		{name: "too large", body: `{"url":"` + strings.Repeat("a", 64) + `"}`, limit: 16, wantStatus: http.StatusRequestEntityTooLarge, wantError: MsgBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			if tt.limit > 0 {
				req.Body = http.MaxBytesReader(rec, req.Body, tt.limit)
			}

			var dst struct {
				URL *string `json:"url"`
			}
			ok := decodeJSON(rec, req, &dst)

			if ok != tt.wantOK {
				t.Fatalf("decodeJSON() = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK {
				return
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decodeBody(t, rec); body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}
