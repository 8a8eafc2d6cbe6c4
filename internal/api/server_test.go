package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(apiToken string) *Server {
	return NewServer(8760, apiToken, 10<<20, nil, nil, discardLogger())
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("GET", "/api/v1/quill/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["service"] != "quill" {
		t.Errorf("expected service quill, got %q", body["service"])
	}
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	srv := newTestServer("secret-token")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret-token", http.StatusUnauthorized},
		{"wrong token", "Bearer wrong", http.StatusUnauthorized},
		// Correct token passes auth, then fails validation on the empty body.
		{"correct token", "Bearer secret-token", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/polish", strings.NewReader("{}"))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestAuthDisabledWithoutToken(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("POST", "/api/v1/polish", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	// No token configured: the request reaches validation.
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPolish_Validation(t *testing.T) {
	srv := newTestServer("")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", "nope", "invalid JSON body"},
		{"missing user_id", `{"raw_script": "x"}`, "user_id is required"},
		{"missing raw_script", `{"user_id": "u1"}`, "raw_script is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/polish", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["error"] != tt.want {
				t.Errorf("expected error %q, got %q", tt.want, body["error"])
			}
		})
	}
}

func TestAnalyze_Validation(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("POST", "/api/v1/voice/analyze", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCorrection_Validation(t *testing.T) {
	srv := newTestServer("")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty", `{}`, http.StatusBadRequest},
		{"missing final script", `{"history_id": "h", "ai_polished_script": "a", "user_id": "u"}`, http.StatusBadRequest},
		{"bad history id", `{"history_id": "not-a-uuid", "ai_polished_script": "a", "user_final_script": "b", "user_id": "u"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/corrections", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestHistory_Validation(t *testing.T) {
	srv := newTestServer("")

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing user_id", "/api/v1/history", http.StatusBadRequest},
		{"bad limit", "/api/v1/history?user_id=u1&limit=banana", http.StatusBadRequest},
		{"limit too large", "/api/v1/history?user_id=u1&limit=9999", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
