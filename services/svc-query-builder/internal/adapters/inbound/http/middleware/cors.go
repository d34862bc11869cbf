package middleware

import (
	"net/http"
	"slices"
)

const (
	corsAllowedMethods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	corsAllowedHeaders = "Content-Type, Authorization, X-Request-Id, traceparent, tracestate"
	corsExposedHeaders = "X-Request-Id"
	corsMaxAge         = "86400"
)

// CORS answers cross-origin requests from the configured frontends. Credentials
// are allowed, so the origin is always echoed and never a wildcard.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := slices.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)

				return
			}

			if !allowAll && !slices.Contains(allowedOrigins, origin) {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			w.Header().Set("Access-Control-Expose-Headers", corsExposedHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
