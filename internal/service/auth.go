package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/session"
	"github.com/batch26/keepsake/internal/validation"
)

// The messages are shown to users verbatim.
var (
	ErrSignupRejected     = errors.New("Simulation: Failed to sign up.")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// identityNamespace scopes the UUIDv5 ids derived from sign-in emails.
var identityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://batch26.app/identity"))

// AuthService simulates an identity provider. Nothing is verified: sign-up
// mints an identity, sign-in derives one from the email, and the result is
// kept in the caller's session slot.
type AuthService struct {
	emailService        *EmailService
	latency             latency.Policy
	signupFailureMarker string
	signinFailureEmail  string
}

func NewAuthService(emailService *EmailService, policy latency.Policy, signupFailureMarker, signinFailureEmail string) *AuthService {
	return &AuthService{
		emailService:        emailService,
		latency:             policy,
		signupFailureMarker: signupFailureMarker,
		signinFailureEmail:  strings.ToLower(signinFailureEmail),
	}
}

func AvatarURL(seed string) string {
	return avatarBaseURL + url.QueryEscape(seed)
}

func (s *AuthService) SignUp(ctx context.Context, slot session.Slot, email, password, name string) (*model.User, error) {
	name = strings.TrimSpace(name)

	email, err := validation.NormalizeEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateName(name)
	if err != nil {
		return nil, err
	}

	err = latency.Wait(ctx, s.latency, latency.OpSignUp)
	if err != nil {
		return nil, err
	}

	if s.signupFailureMarker != "" && strings.Contains(email, s.signupFailureMarker) {
		slog.Info("simulated sign up failure", "email", email)
		return nil, ErrSignupRejected
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		AvatarURL: AvatarURL(name),
	}

	err = slot.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	err = s.emailService.SendWelcomeEmail(ctx, user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "email", user.Email)
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// SignIn accepts any non-empty email and any password, including none.
// Only the configured failure email is refused.
func (s *AuthService) SignIn(ctx context.Context, slot session.Slot, email, password string) (*model.User, error) {
	email, err := validation.LooseEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	err = latency.Wait(ctx, s.latency, latency.OpSignIn)
	if err != nil {
		return nil, err
	}

	if s.signinFailureEmail != "" && strings.ToLower(email) == s.signinFailureEmail {
		slog.Info("simulated sign in failure", "email", email)
		return nil, ErrInvalidCredentials
	}

	return s.establish(ctx, slot, email, "password")
}

// SignInWithProvider completes an OAuth sign-in for an email the provider
// has already verified. No simulated latency or failure applies.
func (s *AuthService) SignInWithProvider(ctx context.Context, slot session.Slot, email, provider string) (*model.User, error) {
	email, err := validation.NormalizeEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, slot, email, provider)
}

func (s *AuthService) establish(ctx context.Context, slot session.Slot, email, method string) (*model.User, error) {
	user := IdentityForEmail(email)

	err := slot.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("user signed in", "user_id", user.ID, "email", user.Email, "method", method)
	return user, nil
}

// IdentityForEmail derives a stable identity: the same email (ignoring case)
// always yields the same id, so a returning user finds their profile again.
// The name is the part before "@", or the whole email when there is none.
func IdentityForEmail(email string) *model.User {
	name, _, _ := strings.Cut(email, "@")
	return &model.User{
		ID:        uuid.NewSHA1(identityNamespace, []byte(strings.ToLower(email))).String(),
		Email:     email,
		Name:      name,
		AvatarURL: AvatarURL(email),
	}
}

// SignOut empties the slot. Signing out twice is fine.
func (s *AuthService) SignOut(ctx context.Context, slot session.Slot) error {
	err := latency.Wait(ctx, s.latency, latency.OpSignOut)
	if err != nil {
		return err
	}

	err = slot.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser reads the slot without delay. An empty slot yields nil.
func (s *AuthService) CurrentUser(ctx context.Context, slot session.Slot) (*model.User, error) {
	return slot.Load(ctx)
}
