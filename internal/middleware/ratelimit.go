// Package middleware provides HTTP middleware for authentication and
// request throttling.
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterCache keeps one token bucket per key, evicting idle entries.
type limiterCache struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newLimiterCache creates a limiter cache with the given per-key rate.
func newLimiterCache(rps float64, burst int) *limiterCache {
	c := &limiterCache{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go c.cleanup()
	return c
}

// get returns the limiter for a key, creating it on first use.
func (c *limiterCache) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(c.rps, c.burst)}
		c.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// cleanup drops limiters not seen for ten minutes.
func (c *limiterCache) cleanup() {
	for range time.Tick(time.Minute) {
		c.mu.Lock()
		for key, entry := range c.limiters {
			if time.Since(entry.lastSeen) > 10*time.Minute {
				delete(c.limiters, key)
			}
		}
		c.mu.Unlock()
	}
}

// RateLimiter throttles requests per client IP using token buckets.
type RateLimiter struct {
	cache *limiterCache
}

// NewRateLimiter creates a rate limiter allowing rps requests per second per
// IP with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 5
	}
	return &RateLimiter{cache: newLimiterCache(rps, burst)}
}

// Limit is the middleware entry point.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.cache.get(ip).Allow() {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client IP from the request, tolerating missing ports.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
