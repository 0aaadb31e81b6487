package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		password string
		header   string
		query    string
		expected int
	}{
		{"disabled", "", "", "", http.StatusOK},
		{"missing token", "secret", "", "", http.StatusUnauthorized},
		{"wrong header", "secret", "nope", "", http.StatusUnauthorized},
		{"header", "secret", "secret", "", http.StatusOK},
		{"query", "secret", "", "secret", http.StatusOK},
	}

	for _, tt := range tests {
		url := "/api/status"
		if tt.query != "" {
			url += "?token=" + tt.query
		}
		req := httptest.NewRequest(http.MethodGet, url, nil)
		if tt.header != "" {
			req.Header.Set(TokenHeader, tt.header)
		}
		rr := httptest.NewRecorder()

		AuthMiddleware(tt.password)(okHandler()).ServeHTTP(rr, req)

		if rr.Code != tt.expected {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.expected, rr.Code)
		}
	}
}
