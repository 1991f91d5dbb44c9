package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time         { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, period time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, period)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterAllow(t *testing.T) {
	rl, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if ok, _ := rl.Allow("key"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, wait := rl.Allow("key")
	if ok {
		t.Error("6th request should be denied")
	}
	if wait != time.Minute {
		t.Errorf("wait = %v, want 1m", wait)
	}

	if ok, _ := rl.Allow("other"); !ok {
		t.Error("keys must be counted separately")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl, clock := newTestLimiter(3, 10*time.Second)

	for i := 0; i < 3; i++ {
		rl.Allow("key")
	}
	if ok, _ := rl.Allow("key"); ok {
		t.Error("should be blocked within window")
	}

	clock.advance(10 * time.Second)

	if ok, _ := rl.Allow("key"); !ok {
		t.Error("should be allowed after window resets")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, clock := newTestLimiter(5, 10*time.Second)

	rl.Allow("expired")
	clock.advance(15 * time.Second)
	rl.Allow("active")

	rl.Cleanup()

	if rl.Len() != 1 {
		t.Fatalf("len = %d, want 1", rl.Len())
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.windows["active"]; !ok {
		t.Error("active window should still exist")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(2, time.Minute)
	handler := RateLimit(rl, ClientIP(true))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/login.html", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest("POST", "/login.html", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("3rd request: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
	}

	req = httptest.NewRequest("POST", "/login.html", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRateLimitIgnoresForwardedHeadersByDefault(t *testing.T) {
	rl, _ := newTestLimiter(3, time.Minute)
	handler := RateLimit(rl, ClientIP(false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rejected := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("POST", "/login.html", nil)
		req.RemoteAddr = "192.0.2.1:4321"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			rejected++
		}
	}

	if rejected != 47 {
		t.Errorf("rejected = %d, want 47", rejected)
	}
	if rl.Len() != 1 {
		t.Errorf("tracked keys = %d, want 1", rl.Len())
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name        string
		behindProxy bool
		headers     map[string]string
		remote      string
		want        string
	}{
		{"remote addr", false, nil, "192.0.2.1:1234", "192.0.2.1"},
		{"forwarded header ignored", false, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "10.0.0.1:80", "10.0.0.1"},
		{"real ip ignored", false, map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.1:80", "10.0.0.1"},
		{"no port", false, nil, "unix", "unix"},
		{"proxy forwarded chain", true, map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.5"},
		{"proxy real ip", true, map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.1:80", "198.51.100.7"},
		{"proxy without headers", true, nil, "10.0.0.1:80", "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(tt.behindProxy)(req); got != tt.want {
				t.Errorf("client ip = %q, want %q", got, tt.want)
			}
		})
	}
}
