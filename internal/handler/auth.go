package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
	"github.com/batch26/keepsake/internal/validation"
)

const (
	oauthStateCookie = "oauth_state"
	oauthNextCookie  = "oauth_next"
)

type AuthHandler struct {
	authService *service.AuthService
	providers   map[string]*oauthProvider
}

// oauthProvider is one external identity provider. fetchEmail resolves the
// verified email of the account behind client.
type oauthProvider struct {
	name       string
	config     *oauth2.Config
	fetchEmail func(ctx context.Context, client *http.Client) (string, error)
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	h := &AuthHandler{
		authService: authService,
		providers:   map[string]*oauthProvider{},
	}

	if cfg.GoogleEnabled() {
		h.providers["google"] = &oauthProvider{
			name: "google",
			config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.AppURL + "/auth/google/callback",
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
				Endpoint:     google.Endpoint,
			},
			fetchEmail: googleEmail,
		}
	}
	if cfg.GitHubEnabled() {
		h.providers["github"] = &oauthProvider{
			name: "github",
			config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  cfg.AppURL + "/auth/github/callback",
				Scopes:       []string{"user:email"},
				Endpoint:     github.Endpoint,
			},
			fetchEmail: githubEmail,
		}
	}

	return h
}

// AuthDialog renders the sign-in or sign-up dialog into #dialog.
func (h *AuthHandler) AuthDialog(w http.ResponseWriter, r *http.Request) {
	if ctxkeys.User(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard/dialog", http.StatusSeeOther)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode != components.AuthModeSignup {
		mode = components.AuthModeLogin
	}

	ui.Render(w, r, components.AuthDialog(components.AuthDialogProps{
		Mode: mode,
		Next: safeNext(r.URL.Query().Get("next")),
	}))
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	next := safeNext(r.FormValue("next"))

	// The form insists on a real address even though the service does not.
	err := validation.ValidateEmail(email)
	if err == nil {
		_, err = h.authService.SignIn(r.Context(), ctxkeys.Slot(r.Context()), email, r.FormValue("password"))
	}
	if err != nil {
		ui.Render(w, r, components.AuthDialog(components.AuthDialogProps{
			Mode:  components.AuthModeLogin,
			Next:  next,
			Email: email,
			Error: userMessage(err, "sign in", service.ErrInvalidCredentials),
		}))
		return
	}

	redirectToDashboard(w, r, next)
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	name := strings.TrimSpace(r.FormValue("name"))
	next := safeNext(r.FormValue("next"))

	_, err := h.authService.SignUp(r.Context(), ctxkeys.Slot(r.Context()), email, r.FormValue("password"), name)
	if err != nil {
		ui.Render(w, r, components.AuthDialog(components.AuthDialogProps{
			Mode:  components.AuthModeSignup,
			Next:  next,
			Email: email,
			Name:  name,
			Error: userMessage(err, "sign up", service.ErrSignupRejected),
		}))
		return
	}

	redirectToDashboard(w, r, next)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	err := h.authService.SignOut(r.Context(), ctxkeys.Slot(r.Context()))
	if err != nil {
		errorToast(w, r, userMessage(err, "sign out"))
		return
	}

	next := safeNext(r.FormValue("next"))
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", next)
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// redirectToDashboard sends a freshly signed-in user back to the view they
// came from with the dashboard open.
func redirectToDashboard(w http.ResponseWriter, r *http.Request, next string) {
	target := next + "?dashboard=1"
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// OAuthStart redirects to the consent screen of the provider in the path.
func (h *AuthHandler) OAuthStart(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.providers[r.PathValue("provider")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	state := generateOAuthState()
	setShortCookie(w, r, oauthStateCookie, state)
	setShortCookie(w, r, oauthNextCookie, safeNext(r.URL.Query().Get("next")))

	http.Redirect(w, r, provider.config.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallback finishes the provider flow and signs the user in with the
// email the provider vouches for.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.providers[r.PathValue("provider")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	next := "/"
	if cookie, err := r.Cookie(oauthNextCookie); err == nil {
		next = safeNext(cookie.Value)
	}
	failed := func(reason string, args ...any) {
		slog.Warn(reason, append([]any{"provider", provider.name}, args...)...)
		http.Redirect(w, r, next+"?auth=login", http.StatusSeeOther)
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || cookie.Value != state {
		failed("oauth state validation failed", "error", err)
		return
	}
	clearCookie(w, oauthStateCookie)
	clearCookie(w, oauthNextCookie)

	code := r.URL.Query().Get("code")
	if code == "" {
		failed("oauth callback missing code")
		return
	}

	token, err := provider.config.Exchange(r.Context(), code)
	if err != nil {
		failed("oauth token exchange failed", "error", err)
		return
	}

	email, err := provider.fetchEmail(r.Context(), provider.config.Client(r.Context(), token))
	if err != nil {
		failed("failed to resolve oauth email", "error", err)
		return
	}

	_, err = h.authService.SignInWithProvider(r.Context(), ctxkeys.Slot(r.Context()), email, provider.name)
	if err != nil {
		failed("oauth sign in failed", "error", err, "email", email)
		return
	}

	http.Redirect(w, r, next+"?dashboard=1", http.StatusSeeOther)
}

func googleEmail(ctx context.Context, client *http.Client) (string, error) {
	var info struct {
		Email string `json:"email"`
	}
	err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &info)
	if err != nil {
		return "", err
	}
	if info.Email == "" {
		return "", fmt.Errorf("google returned no email")
	}
	return info.Email, nil
}

// githubEmail falls back to /user/emails when the profile email is private.
func githubEmail(ctx context.Context, client *http.Client) (string, error) {
	var profile struct {
		Email string `json:"email"`
	}
	err := getJSON(ctx, client, "https://api.github.com/user", &profile)
	if err != nil {
		return "", err
	}
	if profile.Email != "" {
		return profile.Email, nil
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	err = getJSON(ctx, client, "https://api.github.com/user/emails", &emails)
	if err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("github account has no verified primary email")
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", url, err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

func setShortCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

func generateOAuthState() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
