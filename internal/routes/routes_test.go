package routes

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/app"
	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/session"
)

const testCSRFToken = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFG" // 43 chars, a 32 byte token

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func testConfig() *config.Config {
	return &config.Config{
		AppName:             "Batch '26",
		AppEnv:              "test",
		AppURL:              "http://localhost:8090",
		ContentPath:         "../../content",
		DataBackend:         config.DataBackendMemory,
		SessionBackend:      config.SessionBackendCookie,
		SessionSecret:       "test-secret",
		SessionExpiry:       time.Hour,
		Latency:             config.LatencyNone,
		SignupFailureMarker: "error",
		SigninFailureEmail:  "fail@test.com",
		StorageDriver:       config.StorageDriverMemory,
		MaxUploadSize:       1 << 20,
	}
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	a, err := app.New(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	return &client{
		t:       t,
		handler: SetupRoutes(a),
		cookies: map[string]*http.Cookie{
			"csrf_token": {Name: "csrf_token", Value: testCSRFToken},
		},
	}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return rec
}

func (c *client) get(target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func (c *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("X-CSRF-Token", testCSRFToken)
	return c.do(req)
}

func (c *client) signIn(email string) {
	c.t.Helper()
	rec := c.post("/auth/signin", url.Values{"email": {email}, "password": {"secret"}, "next": {"/wall"}})
	require.Equal(c.t, "/wall?dashboard=1", rec.Header().Get("HX-Redirect"))
	require.Contains(c.t, c.cookies, session.Key)
}

func TestViews(t *testing.T) {
	c := newClient(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Start the Journey"},
		{"/timeline", "The First Hello"},
		{"/yearbook", "Elena Rodriguez"},
		{"/yearbook?filter=Science", "Elena Rodriguez"},
		{"/vault", "upload-slot"},
		{"/wall", "wall-compose-slot"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := c.get(tt.path, false)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
		})
	}
}

func TestNotFound(t *testing.T) {
	c := newClient(t)
	rec := c.get("/nope", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestYearbookSearchReturnsGrid(t *testing.T) {
	c := newClient(t)
	req := httptest.NewRequest(http.MethodGet, "/yearbook?q=marcus", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "student-grid")
	rec := c.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Marcus Chen")
	assert.NotContains(t, body, "Elena Rodriguez")
	assert.NotContains(t, body, "<html")
}

func TestCSRFRequired(t *testing.T) {
	c := newClient(t)
	req := httptest.NewRequest(http.MethodPost, "/wall", strings.NewReader("text=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := c.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSignInAndOut(t *testing.T) {
	c := newClient(t)

	rec := c.post("/auth/signin", url.Values{"email": {"fail@test.com"}, "password": {"x"}})
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Empty(t, rec.Header().Get("HX-Redirect"))

	rec = c.post("/auth/signin", url.Values{"email": {"not-an-email"}, "password": {"x"}})
	assert.Contains(t, rec.Body.String(), "Invalid email address format")

	c.signIn("ada@example.com")

	rec = c.get("/dashboard/dialog", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada")

	rec = c.post("/auth/signout", url.Values{"next": {"/vault"}})
	assert.Equal(t, "/vault", rec.Header().Get("HX-Redirect"))
	assert.NotContains(t, c.cookies, session.Key)

	rec = c.get("/dashboard/dialog", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestSignUpRejected(t *testing.T) {
	c := newClient(t)
	rec := c.post("/auth/signup", url.Values{
		"email":    {"error@example.com"},
		"password": {"secret"},
		"name":     {"Ada"},
	})
	assert.Contains(t, rec.Body.String(), "Simulation: Failed to sign up.")
	assert.NotContains(t, c.cookies, session.Key)
}

func TestSafeNextRejectsOffsite(t *testing.T) {
	c := newClient(t)
	rec := c.post("/auth/signin", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret"},
		"next":     {"https://evil.example.com/"},
	})
	assert.Equal(t, "/?dashboard=1", rec.Header().Get("HX-Redirect"))
}

func TestWallPost(t *testing.T) {
	c := newClient(t)

	rec := c.post("/wall", url.Values{"text": {"   "}})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.post("/wall", url.Values{"text": {"See you at the reunion"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "See you at the reunion")
	assert.Contains(t, body, "Anonymous")
	assert.Contains(t, body, `hx-swap-oob="innerHTML:#wall-compose-slot"`)

	rec = c.get("/wall", false)
	assert.Contains(t, rec.Body.String(), "See you at the reunion")
}

func TestGuestbook(t *testing.T) {
	c := newClient(t)

	rec := c.get("/yearbook/1", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Elena Rodriguez")

	c.signIn("ada@example.com")
	rec = c.post("/yearbook/1/guestbook", url.Values{"text": {"Stay golden"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stay golden")
	assert.Contains(t, rec.Body.String(), "ada")

	rec = c.get("/yearbook/999", true)
	assert.Contains(t, rec.Body.String(), "not in the yearbook")
}

func uploadRequest(t *testing.T, caption string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("caption", caption))
	require.NoError(t, mw.WriteField("csrf_token", testCSRFToken))
	part, err := mw.CreateFormFile("file", "party.png")
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/vault/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("HX-Request", "true")
	return req
}

func TestVaultUpload(t *testing.T) {
	c := newClient(t)

	rec := c.do(uploadRequest(t, "Prom", pngBytes))
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Body.String(), "Sign in required")

	c.signIn("ada@example.com")
	rec = c.do(uploadRequest(t, "Prom", pngBytes))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Prom")
	assert.Contains(t, body, "Memory saved")

	start := strings.Index(body, "/blobs/")
	require.NotEqual(t, -1, start)
	end := strings.IndexByte(body[start:], '"')
	require.NotEqual(t, -1, end)

	rec = c.get(body[start:start+end], false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}

func TestNewsletterSubscribe(t *testing.T) {
	c := newClient(t)
	rec := c.post("/newsletter/subscribe", url.Values{"email": {"ada@example.com"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOAuthDisabledProvider(t *testing.T) {
	c := newClient(t)
	rec := c.get("/auth/google", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSEO(t *testing.T) {
	c := newClient(t)

	rec := c.get("/robots.txt", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: http://localhost:8090/sitemap.xml")

	rec = c.get("/sitemap.xml", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>http://localhost:8090/yearbook</loc>")
}
