package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/batch26/keepsake/internal/ctxkeys"
)

// Remote origins the pages load from: seed photos, avatars and the
// htmx/tailwind bundles.
var (
	imageOrigins  = []string{"https://picsum.photos", "https://fastly.picsum.photos", "https://api.dicebear.com"}
	scriptOrigins = []string{"https://unpkg.com", "https://cdn.tailwindcss.com"}
	fontOrigins   = []string{"https://fonts.googleapis.com", "https://fonts.gstatic.com"}
)

// SecurityHeaders sets the CSP and the usual hardening headers.
// Scripts need the per-request nonce, so NonceMiddleware must run first.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(r))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(r *http.Request) string {
	media := []string{"'self'", "data:", "blob:"}
	media = append(media, imageOrigins...)

	// Presigned vault URLs redirect the browser to the bucket endpoint.
	cfg := ctxkeys.Config(r.Context())
	if cfg != nil && cfg.S3Endpoint != "" {
		media = append(media, cfg.S3Endpoint)
	} else {
		media = append(media, "https://*.amazonaws.com")
	}

	scripts := []string{"'self'"}
	nonce := GetNonce(r.Context())
	if nonce != "" {
		scripts = append(scripts, fmt.Sprintf("'nonce-%s'", nonce))
	}
	scripts = append(scripts, scriptOrigins...)

	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(scripts, " "),
		// The tailwind runtime injects style elements.
		"style-src 'self' 'unsafe-inline' " + fontOrigins[0],
		"font-src 'self' " + fontOrigins[1],
		"img-src " + strings.Join(media, " "),
		"media-src " + strings.Join(media, " "),
		"connect-src 'self'",
		"frame-ancestors 'none'",
		"form-action 'self' https://accounts.google.com https://github.com",
		"base-uri 'self'",
	}
	return strings.Join(directives, "; ")
}
