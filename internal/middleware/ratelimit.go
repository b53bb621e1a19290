package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type windowEntry struct {
	requests []time.Time
	mu       sync.Mutex
	evicted  bool
}

// RateLimiter allows at most max requests per client IP in a sliding window.
// Idle clients are evicted at most once per window.
type RateLimiter struct {
	name       string
	max        int
	window     time.Duration
	store      sync.Map
	trustProxy bool
	lastSweep  atomic.Int64
	now        func() time.Time
}

func NewRateLimiter(name string, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{name: name, max: max, window: window, now: time.Now}
}

// TrustForwardedFor keys clients on X-Forwarded-For. Enable it only behind a
// proxy that overwrites the header; otherwise clients can pick their own key.
func (rl *RateLimiter) TrustForwardedFor(trust bool) *RateLimiter {
	rl.trustProxy = trust
	return rl
}

func (rl *RateLimiter) allow(ip string) bool {
	now := rl.now()
	cutoff := now.Add(-rl.window)
	rl.maybeSweep(now)

	for {
		v, _ := rl.store.LoadOrStore(ip, &windowEntry{})
		entry := v.(*windowEntry)

		entry.mu.Lock()
		if entry.evicted {
			entry.mu.Unlock()
			continue
		}

		entry.requests = pruneBefore(entry.requests, cutoff)
		if len(entry.requests) >= rl.max {
			entry.mu.Unlock()
			return false
		}

		entry.requests = append(entry.requests, now)
		entry.mu.Unlock()
		return true
	}
}

func (rl *RateLimiter) maybeSweep(now time.Time) {
	last := rl.lastSweep.Load()
	if now.UnixNano()-last < int64(rl.window) {
		return
	}
	if rl.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		rl.sweep(now)
	}
}

// sweep drops clients with no requests left inside the window.
func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-rl.window)
	rl.store.Range(func(key, v any) bool {
		entry := v.(*windowEntry)
		entry.mu.Lock()
		entry.requests = pruneBefore(entry.requests, cutoff)
		if len(entry.requests) == 0 {
			entry.evicted = true
			rl.store.CompareAndDelete(key, entry)
		}
		entry.mu.Unlock()
		return true
	})
}

func pruneBefore(requests []time.Time, cutoff time.Time) []time.Time {
	filtered := requests[:0]
	for _, t := range requests {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, rl.trustProxy)
		if !rl.allow(ip) {
			slog.Warn("rate limit exceeded", "limiter", rl.name, "ip", ip, "request_id", RequestID(r.Context()))
			w.Header().Set("Retry-After", retryAfter(rl.window))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfter(window time.Duration) string {
	secs := int(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
