package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
	"github.com/batch26/keepsake/internal/validation"
)

const genericErrorMessage = "Something went wrong"

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// showToast appends a toast to the page. Pass reswap when the response has no
// main content, so htmx leaves the target alone.
func showToast(w http.ResponseWriter, r *http.Request, reswap bool, props components.ToastProps) {
	if reswap {
		w.Header().Set("HX-Reswap", "none")
	}
	ui.RenderOOB(w, r, components.Toast(props), components.ToastContainer)
}

func errorToast(w http.ResponseWriter, r *http.Request, message string) {
	showToast(w, r, true, components.ToastProps{Title: "Error", Description: message, Variant: components.ToastError})
}

// userMessage picks what a failed operation shows. Validation errors and the
// given sentinels are written for users; everything else is logged and
// replaced by the generic message.
func userMessage(err error, op string, sentinels ...error) string {
	if validation.IsInvalid(err) {
		return capitalize(err.Error())
	}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	if errors.Is(err, context.Canceled) {
		slog.Debug("request cancelled", "op", op)
	} else {
		slog.Error("operation failed", "op", op, "error", err)
	}
	return genericErrorMessage
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// safeNext maps p onto the path of one of the views, falling back to "/".
// It keeps redirects on this site.
func safeNext(p string) string {
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	view, ok := model.ParseView(strings.Trim(u.Path, "/"))
	if !ok {
		return "/"
	}
	return view.Path()
}

// currentView is the page an htmx request was made from.
func currentView(r *http.Request) string {
	current := r.Header.Get("HX-Current-URL")
	if current == "" {
		return "/"
	}
	u, err := url.Parse(current)
	if err != nil {
		return "/"
	}
	return safeNext(u.Path)
}

// dialogFor picks the dialog a full page opens with: ?dashboard=1 for the
// signed-in dashboard, ?auth=login|signup for the auth dialog.
func dialogFor(r *http.Request) string {
	q := r.URL.Query()
	user := ctxkeys.User(r.Context())

	if q.Get("dashboard") == "1" && user != nil {
		return "/dashboard/dialog"
	}

	mode := q.Get("auth")
	if (mode == components.AuthModeLogin || mode == components.AuthModeSignup) && user == nil {
		v := url.Values{}
		v.Set("mode", mode)
		v.Set("next", safeNext(r.URL.Path))
		return "/auth/dialog?" + v.Encode()
	}
	return ""
}
