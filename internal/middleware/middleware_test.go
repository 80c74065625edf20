package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/session"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiterWindow(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)

	now := time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute, stop)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "limits are per ip")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))

	now = now.Add(5 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.requests)
}

func TestRateLimiterLimit(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)

	h := NewRateLimiter(1, time.Minute, stop).Limit(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Body.String(), "Too many attempts")
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:5555"
	assert.Equal(t, "192.168.1.10", getClientIP(req))

	req.Header.Set("X-Real-IP", " 10.1.1.1 ")
	assert.Equal(t, "10.1.1.1", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(req))
}

func TestCSRFProtection(t *testing.T) {
	var seen string
	h := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.CSRFToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value
	assert.Equal(t, token, seen)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/wall", nil)
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/wall", nil)
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		req.Header.Set(csrfHeader, token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("form field", func(t *testing.T) {
		form := url.Values{csrfFormField: {token}}
		req := httptest.NewRequest(http.MethodPost, "/wall", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("mismatch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/wall", nil)
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		req.Header.Set(csrfHeader, generateCSRFToken())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", S3Endpoint: "https://minio.example.com"}
	h := Chain(okHandler, Config(cfg), NonceMiddleware, SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-")
	assert.Contains(t, csp, "https://unpkg.com")
	assert.Contains(t, csp, "https://minio.example.com")
	assert.NotContains(t, csp, "amazonaws.com")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersDevelopment(t *testing.T) {
	h := Chain(okHandler, Config(&config.Config{AppEnv: "development"}), SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://*.amazonaws.com")
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestSession(t *testing.T) {
	store := session.NewCookieStore("test-secret", time.Hour, false)
	auth := service.NewAuthService(
		service.NewEmailService("", "noreply@example.com", "", "http://localhost", "Batch '26", true),
		latency.None(),
		"error",
		"fail@test.com",
	)

	var got *model.User
	h := Session(store, auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.User(r.Context())
		assert.NotNil(t, ctxkeys.Slot(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)

	// Sign in through a slot of a separate request to obtain the cookie.
	signin := httptest.NewRecorder()
	slot := store.Slot(signin, httptest.NewRequest(http.MethodPost, "/auth/signin", nil))
	user, err := auth.SignIn(context.Background(), slot, "ada@example.com", "secret123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range signin.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	t.Run("tampered cookie is anonymous", func(t *testing.T) {
		got = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.Key, Value: "not-a-jwt"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Nil(t, got)
	})
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(okHandler)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/dashboard/dialog", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?auth=login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodPost, "/vault/upload", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Body.String(), "Sign in required")

	req = httptest.NewRequest(http.MethodGet, "/dashboard/dialog", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u-1"}))
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
