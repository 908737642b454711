package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// APIKeySource reports the configured completion API key.
type APIKeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// RequireAPIKey rejects requests with 412 until an API key has been saved
// in settings.
func RequireAPIKey(keys APIKeySource, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := keys.APIKey(r.Context())
			if err != nil {
				log.Error("load api key", zap.Error(err))
				http.Error(w, `{"error":"failed to load settings"}`, http.StatusInternalServerError)
				return
			}
			if key == "" {
				http.Error(w, `{"error":"API key required - open settings"}`, http.StatusPreconditionFailed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
