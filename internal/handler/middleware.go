package handler

import (
	"net/http"
	"strings"
)

// AnonymousIdentifier is used when the request carries no forwarded address.
// All such requests share one rate-limit window.
const AnonymousIdentifier = "anonymous"

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// ClientIdentifier returns the rate-limit identifier for r: the
// X-Forwarded-For entry appended by the outermost trusted proxy. Entries to
// its left are client-controlled and ignored. With no usable header the
// result is AnonymousIdentifier.
func ClientIdentifier(r *http.Request, trustedProxyCount int) string {
	if trustedProxyCount < 1 {
		trustedProxyCount = 1
	}
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return AnonymousIdentifier
	}
	parts := strings.Split(xff, ",")
	idx := len(parts) - trustedProxyCount
	if idx < 0 {
		idx = 0
	}
	if ip := strings.TrimSpace(parts[idx]); ip != "" {
		return ip
	}
	return AnonymousIdentifier
}
