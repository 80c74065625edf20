package ui

import (
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
)

func TestRequest(t *testing.T) {
	ctx := templ.WithNonce(context.Background(), "n0nce")
	ctx = ctxkeys.WithCSRFToken(ctx, "tok")
	ctx = ctxkeys.WithURLPath(ctx, "/vault")
	ctx = ctxkeys.WithUser(ctx, &model.User{Name: "Alice"})
	ctx = ctxkeys.WithConfig(ctx, &config.Config{AppName: "Class of 2026", AppTagline: "See you soon"})

	req := Request(ctx)
	assert.Equal(t, "n0nce", req.Nonce)
	assert.Equal(t, "/vault", req.Path)
	assert.True(t, req.SignedIn())
	assert.Equal(t, "Class of 2026", req.AppName())
	assert.Equal(t, "See you soon", req.Tagline())
	assert.JSONEq(t, `{"X-CSRF-Token":"tok"}`, req.CSRFHeaders())
	assert.False(t, req.GoogleEnabled())
}

func TestRequestDefaults(t *testing.T) {
	req := Request(context.Background())
	assert.False(t, req.SignedIn())
	assert.Equal(t, "Batch '26", req.AppName())
	assert.Empty(t, req.Tagline())
	assert.False(t, req.GitHubEnabled())
}

func TestAuthDialogURL(t *testing.T) {
	assert.Equal(t, "/auth/dialog?mode=login", AuthDialogURL("login", ""))
	assert.Equal(t, "/auth/dialog?mode=signup&next=%2Fwall%3Fx%3D1", AuthDialogURL("signup", "/wall?x=1"))
}

func TestNav(t *testing.T) {
	items := Nav(model.ViewVault)
	assert.Len(t, items, len(model.NavViews))
	for _, item := range items {
		assert.Equal(t, item.View == model.ViewVault, item.Active, item.View)
	}
	assert.Equal(t, "Timeline", items[0].Label)
}

func TestClasses(t *testing.T) {
	assert.Equal(t, "py-1 px-4", Classes("px-2 py-1", "px-4"))
	assert.Equal(t, "rotate-[-2.15deg]", RotateClass("-2.15deg"))
	assert.Empty(t, RotateClass(""))
	assert.Equal(t, "aspect-square", AspectClass(model.AspectSquare))
	assert.Empty(t, AspectClass("wide"))
	assert.Contains(t, PaperClass(model.Paper2), "bg-[#f4e4bc]")
}
