package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RemoteIP is the host part of the connection's RemoteAddr.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ForwardedIP prefers X-Forwarded-For and X-Real-IP over RemoteAddr. Clients
// can set those headers freely, so it is only meaningful behind a reverse
// proxy that overwrites them.
func ForwardedIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return RemoteIP(r)
}

// ClientIP picks how a request's client address is found: from the
// forwarding headers when behindProxy is set, otherwise from RemoteAddr.
func ClientIP(behindProxy bool) func(*http.Request) string {
	if behindProxy {
		return ForwardedIP
	}
	return RemoteIP
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Allow records a request for key and reports whether it is within the limit.
// When it is not, the returned duration is the time until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[key] = &window{count: 1, resetAt: now.Add(rl.period)}
		return true, 0
	}
	w.count++
	if w.count > rl.limit {
		return false, w.resetAt.Sub(now)
	}
	return true, 0
}

// Cleanup drops windows that have already reset.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// Len is the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// RateLimit rejects requests over the limiter's budget with 429, keyed by
// keyFunc.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := limiter.Allow(keyFunc(r))
			if !ok {
				secs := int(wait.Round(time.Second) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
