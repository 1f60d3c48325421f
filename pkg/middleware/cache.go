package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl sets the Cache-Control header on GET and HEAD responses.
func CacheControl(directive string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", directive)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PublicCache lets clients cache catalog reads for maxAge seconds.
func PublicCache(maxAge int) func(http.Handler) http.Handler {
	return CacheControl(fmt.Sprintf("public, max-age=%d", maxAge))
}

// NoStore forbids caching of per-session state such as the cart.
func NoStore() func(http.Handler) http.Handler {
	return CacheControl("no-store")
}
