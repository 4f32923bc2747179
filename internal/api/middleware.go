package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminAuth guards operator endpoints with a static bearer key. An empty
// configured key disables the admin surface entirely.
func AdminAuth(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" {
				WriteJsonError(w, http.StatusServiceUnavailable, "admin API is not configured")
				return
			}

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(adminKey)) != 1 {
				WriteJsonError(w, http.StatusUnauthorized, "invalid admin credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
