package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func signedIn() context.Context {
	return ctxkeys.WithUser(context.Background(), &model.User{ID: "u1", Name: "Alice", Email: "alice@example.com"})
}

func TestToastEscapes(t *testing.T) {
	html := render(t, context.Background(), Toast(ToastProps{
		Title:       "<script>alert(1)</script>",
		Description: "bad & worse",
		Variant:     ToastError,
	}))
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "bad &amp; worse")
	assert.Contains(t, html, "border-red-800")
}

func TestAuthDialog(t *testing.T) {
	ctx := context.Background()

	login := render(t, ctx, AuthDialog(AuthDialogProps{Mode: AuthModeLogin, Next: "/wall"}))
	assert.Contains(t, login, `hx-post="/auth/signin"`)
	assert.Contains(t, login, "Welcome back")
	assert.NotContains(t, login, `name="name"`)
	assert.NotContains(t, login, "Continue with Google")

	signup := render(t, ctx, AuthDialog(AuthDialogProps{Mode: AuthModeSignup, Error: "Email already registered"}))
	assert.Contains(t, signup, `hx-post="/auth/signup"`)
	assert.Contains(t, signup, `name="name"`)
	assert.Contains(t, signup, "Email already registered")
}

func TestProviderURL(t *testing.T) {
	assert.Equal(t, "/auth/google", providerURL("google", ""))
	assert.Equal(t, "/auth/github?next=%2Fvault", providerURL("github", "/vault"))
}

func TestUploadForm(t *testing.T) {
	out := render(t, context.Background(), UploadForm(UploadFormProps{MaxSizeMB: 25}))
	assert.Contains(t, out, "Sign in to upload")
	assert.NotContains(t, out, `type="file"`)

	in := render(t, signedIn(), UploadForm(UploadFormProps{MaxSizeMB: 25, Caption: "Finals", Error: "File too large"}))
	assert.Contains(t, in, `type="file"`)
	assert.Contains(t, in, "(up to 25MB)")
	assert.Contains(t, in, `value="Finals"`)
	assert.Contains(t, in, "File too large")
}

func TestNote(t *testing.T) {
	html := render(t, context.Background(), Note(&model.WallMessage{
		Text:         "See you at the reunion",
		Author:       "Anonymous",
		Style:        model.Paper3,
		Rotation:     "-2.15deg",
		TapeRotation: "1.5deg",
		Tags:         model.StringList{"Friendship"},
	}))
	assert.Contains(t, html, "rotate-[-2.15deg]")
	assert.Contains(t, html, "rotate-[1.5deg]")
	assert.Contains(t, html, "bg-[#e3d5b8]")
	assert.Contains(t, html, "Friendship")
}

func TestGuestbook(t *testing.T) {
	empty := render(t, context.Background(), Guestbook(GuestbookProps{StudentID: "s1"}))
	assert.Contains(t, empty, "No signatures yet. Be the first.")
	assert.Contains(t, empty, "Anonymous")
	assert.Contains(t, empty, `hx-post="/yearbook/s1/guestbook"`)

	signed := render(t, signedIn(), Guestbook(GuestbookProps{
		StudentID:  "s1",
		Signatures: []*model.Signature{{Text: "Stay golden", Author: "Bob", Date: "May 2026"}},
	}))
	assert.Contains(t, signed, "Stay golden")
	assert.Contains(t, signed, "Bob · May 2026")
	assert.Contains(t, signed, "Alice")
	assert.NotContains(t, signed, "No signatures yet")
}

func TestVaultItem(t *testing.T) {
	uploaded := render(t, context.Background(), VaultItem(&model.VaultItem{
		Type:    model.MediaTypeVideo,
		Src:     "/blobs/abc.mov",
		Caption: "Grad trip",
		Date:    "May 2026",
		Tags:    model.StringList{"Videos", "User Upload"},
	}))
	assert.Contains(t, uploaded, `<video src="/blobs/abc.mov"`)
	assert.Contains(t, uploaded, "May 2026 · Videos · User Upload")

	seeded := render(t, context.Background(), VaultItem(&model.VaultItem{
		Type: model.MediaTypeVideo,
		Src:  "https://picsum.photos/seed/vault4/400/700",
	}))
	assert.NotContains(t, seeded, "<video")
	assert.Contains(t, seeded, "&#9654;")
}

func TestVaultGridEmpty(t *testing.T) {
	html := render(t, context.Background(), VaultGrid(VaultGridProps{}))
	assert.Contains(t, html, `id="vault-grid"`)
	assert.Contains(t, html, "Nothing here yet.")
}
