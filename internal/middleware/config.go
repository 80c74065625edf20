package middleware

import (
	"net/http"

	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/ctxkeys"
)

// Config puts the sanitized configuration into the request context. Secrets,
// connection strings and the session key never reach handlers or templates.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
