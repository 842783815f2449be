package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps JSON request bodies (64 KiB is far above any task or user payload).
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes limits the request body size; decoding an oversized body fails and the handler answers 400.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
