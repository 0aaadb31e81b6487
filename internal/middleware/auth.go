package middleware

import (
	"crypto/subtle"
	"net/http"
)

// TokenHeader carries the operator password on API requests.
const TokenHeader = "X-Auth-Token"

// AuthMiddleware requires password in the X-Auth-Token header or the token query
// parameter. An empty password disables the check.
func AuthMiddleware(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if password == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get(TokenHeader)
			if token == "" {
				// Browsers cannot set headers on websocket or <img> requests.
				token = r.URL.Query().Get("token")
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(password)) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
