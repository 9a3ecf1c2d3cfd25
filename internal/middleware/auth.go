package middleware

import (
	"net/http"

	"media-clipper/internal/logging"
	"media-clipper/internal/metrics"
)

// AuthConfig holds configuration for the API header middleware
type AuthConfig struct {
	// Require toggles enforcement. When false the middleware passes
	// every request through untouched.
	Require bool
	// ProtectedPaths lists the exact paths that require API headers
	ProtectedPaths []string
}

// DefaultAuthConfig returns the default configuration: enforcement on,
// covering the media endpoints but not the informational or health
// surfaces.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Require:        true,
		ProtectedPaths: []string{"/download", "/info"},
	}
}

// APIHeaders returns a middleware that rejects requests to protected
// paths unless both gateway headers are present. The gateway injects
// X-RapidAPI-Key and X-RapidAPI-Host on proxied traffic, so their
// absence means the request bypassed the gateway.
func APIHeaders(config AuthConfig) func(http.Handler) http.Handler {
	protected := make(map[string]bool, len(config.ProtectedPaths))
	for _, path := range config.ProtectedPaths {
		protected[path] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Require || !protected[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if r.Header.Get("X-RapidAPI-Key") == "" || r.Header.Get("X-RapidAPI-Host") == "" {
				metrics.AuthRejectionsTotal.Inc()
				logging.Warn("Rejected unauthenticated request to %s from %s", r.URL.Path, getClientIP(r))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "Unauthorized", "message": "X-RapidAPI-Key and X-RapidAPI-Host headers are required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
