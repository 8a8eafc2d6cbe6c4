package api

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter enforces a fixed-window request ceiling per identity. The
// identity key is the X-User-ID header when the client sends one, otherwise
// the remote host. Windows are coarse and counts reset on rollover.
type RateLimiter struct {
	window time.Duration
	max    int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter returns a limiter, or nil when max <= 0 (rate limiting
// disabled).
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	if max <= 0 {
		return nil
	}
	return &RateLimiter{
		window:  window,
		max:     max,
		buckets: make(map[string]*bucket),
	}
}

// Allow records one request for key and reports whether it is within the
// window's ceiling.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		rl.buckets[key] = &bucket{windowStart: now, count: 1}
		return true
	}

	b.count++
	return b.count <= rl.max
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(identityKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityKey(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
