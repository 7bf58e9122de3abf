package middleware

import (
	"net/http"
	"strings"
)

// HeaderPolicy configures SecurityHeaders.
type HeaderPolicy struct {
	ContentSecurity string // empty disables the CSP header
	// PublicPrefix marks paths other origins may embed, such as image files
	// shown by a separately hosted gallery page.
	PublicPrefix string
}

// SecurityHeaders sets the response headers shared by the API and the asset server.
func SecurityHeaders(p HeaderPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			if p.ContentSecurity != "" {
				h.Set("Content-Security-Policy", p.ContentSecurity)
			}

			if p.PublicPrefix != "" && strings.HasPrefix(r.URL.Path, p.PublicPrefix) {
				h.Set("Cross-Origin-Resource-Policy", "cross-origin")
			} else {
				h.Set("Cross-Origin-Resource-Policy", "same-origin")
			}

			next.ServeHTTP(w, r)
		})
	}
}
