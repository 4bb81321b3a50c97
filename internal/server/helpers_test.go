package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPathParam(t *testing.T) {
	cases := []struct {
		path   string
		prefix string
		suffix string
		want   string
	}{
		{"/api/verdicts/abc-123", "/api/verdicts/", "", "abc-123"},
		{"/api/verdicts/abc-123/", "/api/verdicts/", "", "abc-123"},
		{"/api/verdicts/", "/api/verdicts/", "", ""},
		{"/api/other/abc", "/api/verdicts/", "", ""},
		{"/api/cases/abc/review", "/api/cases/", "/review", "abc"},
		{"/api/cases/abc", "/api/cases/", "/review", ""},
	}

	for _, tc := range cases {
		if got := PathParam(tc.path, tc.prefix, tc.suffix); got != tc.want {
			t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tc.path, tc.prefix, tc.suffix, got, tc.want)
		}
	}
}

func TestRequireMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/analyze", nil)

	if RequireMethod(rec, req, http.MethodGet, http.MethodPost) {
		t.Errorf("DELETE passed a GET/POST requirement")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow = %q, want \"GET, POST\"", allow)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	if !RequireMethod(rec, req, http.MethodPost) {
		t.Errorf("POST failed a POST requirement")
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Ticker string `json:"ticker"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"ticker": "TSLA"}`))

	var p payload
	if !DecodeJSON(rec, req, &p) {
		t.Fatalf("valid JSON failed to decode")
	}
	if p.Ticker != "TSLA" {
		t.Errorf("ticker = %q, want TSLA", p.Ticker)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{not json`))
	if DecodeJSON(rec, req, &p) {
		t.Errorf("malformed JSON decoded")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "case 'x' not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "case 'x' not found") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
