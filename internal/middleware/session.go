package middleware

import (
	"log/slog"
	"net/http"

	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/session"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
)

// Session resolves the caller's slot and puts it, and the identity it holds,
// into the request context. An unreadable slot leaves the request anonymous.
func Session(provider session.Provider, authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slot := provider.Slot(w, r)
			ctx := ctxkeys.WithSlot(r.Context(), slot)

			user, err := authService.CurrentUser(ctx, slot)
			if err != nil {
				slog.Warn("failed to load session", "error", err, "path", r.URL.Path)
			}
			if user != nil {
				ctx = ctxkeys.WithUser(ctx, user)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous callers. htmx requests get a toast and no
// swap; full page loads are sent home with the sign-in dialog open.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user != nil {
			next(w, r)
			return
		}

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Reswap", "none")
			ui.RenderOOB(w, r, components.Toast(components.ToastProps{
				Title:       "Sign in required",
				Description: "Please sign in to continue.",
				Variant:     components.ToastError,
			}), "beforeend:#toast-container")
			return
		}

		http.Redirect(w, r, "/?auth=login", http.StatusSeeOther)
	}
}
