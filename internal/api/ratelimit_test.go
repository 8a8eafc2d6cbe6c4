package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewRateLimiter_DisabledWhenMaxZero(t *testing.T) {
	if rl := NewRateLimiter(time.Minute, 0); rl != nil {
		t.Error("expected nil limiter for max 0")
	}
	if rl := NewRateLimiter(time.Minute, -5); rl != nil {
		t.Error("expected nil limiter for negative max")
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("u1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("u1") {
		t.Error("fourth request should be denied")
	}

	// Other keys have their own bucket.
	if !rl.Allow("u2") {
		t.Error("different key should be allowed")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(10*time.Millisecond, 1)

	if !rl.Allow("u1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("u1") {
		t.Fatal("second request should be denied")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("u1") {
		t.Error("request after window rollover should be allowed")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-ID", "u1")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestIdentityKey(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	if got := identityKey(req); got != "10.0.0.7" {
		t.Errorf("expected remote host, got %q", got)
	}

	req.Header.Set("X-User-ID", "u1")
	if got := identityKey(req); got != "u1" {
		t.Errorf("expected header identity, got %q", got)
	}
}
