package middleware

import (
	"net"
	"net/http"

	"github.com/mindseye-dev/portfolio/internal/middleware/ratelimiter"
)

// RateLimit rejects requests with 429 once the bucket for their key is empty.
func RateLimit(rl *ratelimiter.Limiter, getKey func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(getKey(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Rate limit exceeded, try again later"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GlobalRateLimit shares one bucket between all clients.
func GlobalRateLimit(rl *ratelimiter.Limiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) string { return "global" })
}

// GetIP keys requests by client address. RealIP runs earlier in the chain,
// so RemoteAddr may already be a bare IP without a port.
func GetIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
