package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	loginAttemptsPerMinute = 10.0
	loginBurst             = 5

	limiterCleanupInterval = 5 * time.Minute
	limiterIdleCutoff      = 10 * time.Minute
)

// LoginRateLimiter limits the rate of login attempts per IP address.
// Uses token bucket algorithm via golang.org/x/time/rate.
type LoginRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rateLimiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginRateLimiter creates a rate limiter with the specified sustained
// attempts per second and burst size.
func NewLoginRateLimiter(attemptsPerSecond float64, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		limiters:  make(map[string]*rateLimiterEntry),
		rate:      rate.Limit(attemptsPerSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(limiterCleanupInterval),
	}
}

// Allow checks if a login attempt from the given IP should be allowed.
// Returns true if allowed (token available), false if rate limited.
func (l *LoginRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Now().After(l.cleanupAt) {
		l.cleanup()
		l.cleanupAt = time.Now().Add(limiterCleanupInterval)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{
			limiter:  rate.NewLimiter(l.rate, l.burst),
			lastSeen: time.Now(),
		}
		l.limiters[ip] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup removes limiters that haven't been used recently.
// Must be called with mu held.
func (l *LoginRateLimiter) cleanup() {
	cutoff := time.Now().Add(-limiterIdleCutoff)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// ActiveLimiters returns the number of tracked IPs.
func (l *LoginRateLimiter) ActiveLimiters() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
