package api

import "net/http"

// ingestPaths are the endpoints protected by the per-client rate limiter.
// Webhooks and bulk uploads are the only unauthenticated write paths.
var ingestPaths = map[string]bool{
	"/shopify_webhook": true,
	"/bulk_stage_data": true,
}

// ingestRateLimit limits ingestion requests per client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) ingestRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ingestPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		key := getClientIP(r)
		if !s.ingestLimiter.Allow(key) {
			s.logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"too many requests, try again later"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in the chain.
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr (strip port).
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
