package middleware

import (
	"net/http"

	"github.com/batch26/keepsake/internal/ctxkeys"
)

// WithURLPath records the request path so navigation can mark the active view
// and auth forms know where to send the user back to.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
