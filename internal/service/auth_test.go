package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/session"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	slot := session.NewMemory()
	auth := newTestAuth()

	user, err := auth.SignUp(ctx, slot, "ada@example.com", "secret", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=Ada", user.AvatarURL)

	current, err := auth.CurrentUser(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, user, current)

	again, err := auth.SignUp(ctx, session.NewMemory(), "ada@example.com", "secret", "Ada")
	require.NoError(t, err)
	assert.NotEqual(t, user.ID, again.ID, "sign up mints a fresh id")
}

func TestSignUpRejectedMarker(t *testing.T) {
	ctx := context.Background()
	slot := session.NewMemory()

	user, err := newTestAuth().SignUp(ctx, slot, "error@test.com", "secret", "Err")
	require.ErrorIs(t, err, ErrSignupRejected)
	assert.Equal(t, "Simulation: Failed to sign up.", err.Error())
	assert.Nil(t, user)

	current, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, current, "a rejected sign up leaves the slot untouched")
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth()

	_, err := auth.SignUp(ctx, session.NewMemory(), "ada@example.com", "secret", "  ")
	require.EqualError(t, err, "name is required")

	_, err = auth.SignUp(ctx, session.NewMemory(), "ada@example.com", "", "Ada")
	require.EqualError(t, err, "password is required")

	_, err = auth.SignUp(ctx, session.NewMemory(), "nope", "secret", "Ada")
	require.Error(t, err)

	user, err := auth.SignUp(ctx, session.NewMemory(), "Ada <ada@example.com>", "secret", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	slot := session.NewMemory()
	auth := newTestAuth()

	user, err := auth.SignIn(ctx, slot, "grace.hopper@navy.mil", "anything")
	require.NoError(t, err)
	assert.Equal(t, "grace.hopper", user.Name)
	assert.Equal(t, "grace.hopper@navy.mil", user.Email)
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=grace.hopper%40navy.mil", user.AvatarURL)

	// Any password, any case: same identity.
	again, err := auth.SignIn(ctx, session.NewMemory(), "Grace.Hopper@Navy.mil", "different")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	current, err := auth.CurrentUser(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, user, current)
}

func TestSignInAcceptsAnything(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth()

	user, err := auth.SignIn(ctx, session.NewMemory(), "ada@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Name)

	user, err = auth.SignIn(ctx, session.NewMemory(), "alice", "x")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "alice", user.Email)

	user, err = auth.SignIn(ctx, session.NewMemory(), "Bob <bob@example.com>", "x")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
	assert.Equal(t, "bob@example.com", user.Email)

	_, err = auth.SignIn(ctx, session.NewMemory(), "  ", "x")
	require.EqualError(t, err, "email address is required")
}

func TestSignInSentinel(t *testing.T) {
	ctx := context.Background()
	slot := session.NewMemory()

	_, err := newTestAuth().SignIn(ctx, slot, "fail@test.com", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid credentials", err.Error())

	current, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSignOutIdempotent(t *testing.T) {
	ctx := context.Background()
	slot := session.NewMemory()
	auth := newTestAuth()

	_, err := auth.SignIn(ctx, slot, "ada@example.com", "x")
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(ctx, slot))
	require.NoError(t, auth.SignOut(ctx, slot))

	current, err := auth.CurrentUser(ctx, slot)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSignInWithProvider(t *testing.T) {
	ctx := context.Background()
	slot := session.NewMemory()
	auth := newTestAuth()

	user, err := auth.SignInWithProvider(ctx, slot, "ada@example.com", "github")
	require.NoError(t, err)
	assert.Equal(t, IdentityForEmail("ada@example.com"), user)
}

func TestCurrentUserHasNoLatency(t *testing.T) {
	slow := latency.Fixed(map[latency.Op]time.Duration{
		latency.OpSignIn:  time.Hour,
		latency.OpSignOut: time.Hour,
	})
	auth := NewAuthService(newTestEmail(), slow, "error", "fail@test.com")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	user, err := auth.CurrentUser(ctx, session.NewMemory())
	require.NoError(t, err)
	assert.Nil(t, user)

	_, err = auth.SignIn(ctx, session.NewMemory(), "ada@example.com", "x")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
