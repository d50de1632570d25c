package middleware

import "net/http"

// MaxBodySize caps the request body at limit bytes.
// Reads past the cap fail inside the handler's JSON decode, which the
// handler reports as an invalid body.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
