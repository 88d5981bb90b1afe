// Package ratelimit throttles clients per IP over a fixed one-minute
// window. The front end polls the session endpoint through the timed login
// and logout flows, so the default window is sized for one chatty browser
// client, not a bulk API consumer.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

// Limiter counts requests per client IP. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	stop     chan struct{}
	stopOnce sync.Once

	perMinute       int
	cleanupInterval time.Duration
}

type bucket struct {
	windowStart time.Time
	count       int
	lastSeen    time.Time
}

type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// DefaultConfig allows two requests a second sustained, enough for the
// dashboard polling loops with headroom for bursts of user actions.
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

func NewLimiter(config Config) *Limiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultConfig().CleanupInterval
	}

	rl := &Limiter{
		buckets:         make(map[string]*bucket),
		stop:            make(chan struct{}),
		perMinute:       config.RequestsPerMinute,
		cleanupInterval: config.CleanupInterval,
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from clientIP fits in its current
// window. A fresh window opens one minute after the previous one started.
func (rl *Limiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[clientIP]
	if !ok || now.Sub(b.windowStart) >= time.Minute {
		rl.buckets[clientIP] = &bucket{windowStart: now, count: 1, lastSeen: now}
		return true
	}

	b.count++
	b.lastSeen = now
	return b.count <= rl.perMinute
}

func (rl *Limiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdleBuckets()
		case <-rl.stop:
			return
		}
	}
}

// dropIdleBuckets forgets clients that have been quiet for two cleanup
// intervals; their next request simply opens a fresh window.
func (rl *Limiter) dropIdleBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * rl.cleanupInterval)
	for ip, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, ip)
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *Limiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

// Middleware rejects over-limit requests with 429 before they reach the
// mux. onLimit overrides the default rejection response when non-nil.
func (rl *Limiter) Middleware(extractIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(extractIP(r)) {
				if onLimit != nil {
					onLimit(w, r)
				} else {
					w.Header().Set("Retry-After", "60")
					http.Error(w, "Too many requests. Please slow down.", http.StatusTooManyRequests)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
