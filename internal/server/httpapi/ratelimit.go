package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginLimiter throttles login attempts per source IP with a token bucket.
// Entries idle longer than the cleanup TTL are dropped to bound memory.
type loginLimiter struct {
	ratePerMinute int
	burst         int

	mu       sync.Mutex
	limiters map[string]*ipLimiter

	stopCh chan struct{}
}

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

const limiterCleanupInterval = 5 * time.Minute

func newLoginLimiter(ratePerMinute, burst int) *loginLimiter {
	l := &loginLimiter{
		ratePerMinute: ratePerMinute,
		burst:         burst,
		limiters:      make(map[string]*ipLimiter),
		stopCh:        make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *loginLimiter) Stop() {
	close(l.stopCh)
}

func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(l.ratePerMinute)/60.0), l.burst),
		}
		l.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter.Allow()
}

func (l *loginLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *loginLimiter) cleanup() {
	ttl := limiterCleanupInterval * 2
	now := time.Now()

	l.mu.Lock()
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastAccess) > ttl {
			delete(l.limiters, ip)
		}
	}
	l.mu.Unlock()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LoginRateLimitMiddleware rejects over-limit login attempts with a 429.
func (s *Server) LoginRateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.loginLimiter.allow(clientIP(r)) {
			s.logger.Warn(r.Context(), "login rate limit exceeded", "ip", clientIP(r))
			writeErrorDetail(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
