package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultGeneralRPM = 100
	defaultAuthRPM    = 10

	// Entries idle longer than this are dropped once the client map
	// grows past gcThreshold.
	clientIdleTTL = 10 * time.Minute
	gcThreshold   = 1000
)

// The open credential endpoints get a stricter per-client bucket than
// the rest of the API.
var authPathPrefixes = []string{
	"/api/v1/users/register",
	"/api/v1/users/login",
}

type clientBuckets struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

type RateLimitMiddleware struct {
	generalRPM int
	authRPM    int

	mu      sync.Mutex
	clients map[string]*clientBuckets
}

func NewRateLimitMiddleware(generalRPM int, authRPM int) *RateLimitMiddleware {
	if generalRPM <= 0 {
		generalRPM = defaultGeneralRPM
	}
	if authRPM <= 0 {
		authRPM = defaultAuthRPM
	}

	return &RateLimitMiddleware{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		clients:    map[string]*clientBuckets{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buckets := m.bucketsFor(clientIP(r))

		bucket := buckets.general
		if isAuthPath(r.URL.Path) {
			bucket = buckets.auth
		}

		if !bucket.Allow() {
			w.Header().Set("Retry-After", "60")
			writeJSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) bucketsFor(ip string) *clientBuckets {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if buckets, exists := m.clients[ip]; exists {
		buckets.lastSeen = now
		return buckets
	}

	if len(m.clients) >= gcThreshold {
		cutoff := now.Add(-clientIdleTTL)
		for key, buckets := range m.clients {
			if buckets.lastSeen.Before(cutoff) {
				delete(m.clients, key)
			}
		}
	}

	buckets := &clientBuckets{
		general:  newRPMLimiter(m.generalRPM),
		auth:     newRPMLimiter(m.authRPM),
		lastSeen: now,
	}
	m.clients[ip] = buckets
	return buckets
}

func newRPMLimiter(rpm int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)
}

func isAuthPath(path string) bool {
	lowered := strings.ToLower(path)
	for _, prefix := range authPathPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

// clientIP prefers proxy-set headers and falls back to the socket peer.
func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	remote := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}
	if remote == "" {
		return "unknown"
	}
	return remote
}
