package middleware

import (
	"net/http"

	"github.com/pawmart/storefront-backend/internal/config"
)

// APIKeyAuth middleware validates the API key from the "api_key" header.
// Applied to mutating routes (cart, checkout, profile).
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	keys := make(map[string]bool, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		keys[k] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			if !keys[apiKey] {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
