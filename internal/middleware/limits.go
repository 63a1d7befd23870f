package middleware

import (
	"net/http"

	"github.com/rvasant/kinara/internal/domain"
)

// Common size limits.
const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize bounds checkout and cart payloads (1MB).
	DefaultMaxBodySize = 1 * MB
)

// MaxBodySize limits the size of request bodies. Oversized requests get a
// structured 400; within the limit the body is wrapped with MaxBytesReader
// so a lying Content-Length still cannot stream past it.
func MaxBodySize(maxBytes ...int64) func(http.Handler) http.Handler {
	limit := int64(DefaultMaxBodySize)
	if len(maxBytes) > 0 {
		limit = maxBytes[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > limit {
				respondWithError(w, r, domain.Errorf(domain.EINVALID, "", "Request body too large"))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
