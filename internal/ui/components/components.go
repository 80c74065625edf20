// Package components holds the htmx fragments shared across pages.
package components

import (
	"net/url"
	"strings"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/ui"
)

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// ToastContainer is the hx-swap-oob target toasts are appended to.
const ToastContainer = "beforeend:#toast-container"

type ToastProps struct {
	Title       string
	Description string
	Variant     string
}

func toastClass(variant string) string {
	base := "toast relative block w-80 rounded-lg border p-4 shadow-xl"
	switch variant {
	case ToastError:
		return ui.Classes(base, "border-red-800 bg-red-950 text-red-100")
	case ToastSuccess:
		return ui.Classes(base, "border-emerald-800 bg-emerald-950 text-emerald-100")
	default:
		return ui.Classes(base, "border-stone-700 bg-stone-900 text-stone-100")
	}
}

const (
	AuthModeLogin  = "login"
	AuthModeSignup = "signup"
)

type AuthDialogProps struct {
	Mode  string
	Next  string
	Email string
	Name  string
	Error string
}

func (p AuthDialogProps) IsSignup() bool {
	return p.Mode == AuthModeSignup
}

func (p AuthDialogProps) action() string {
	if p.IsSignup() {
		return "/auth/signup"
	}
	return "/auth/signin"
}

// providerURL starts an OAuth flow that returns to next.
func providerURL(provider, next string) string {
	if next == "" {
		return "/auth/" + provider
	}
	return "/auth/" + provider + "?" + url.Values{"next": {next}}.Encode()
}

type DashboardProps struct {
	User    *model.User
	Student *model.Student
	// Next is the view to return to after signing out.
	Next  string
	Error string
	Saved bool
}

type StudentDialogProps struct {
	Student   *model.Student
	Guestbook GuestbookProps
}

type GuestbookProps struct {
	StudentID  string
	Signatures []*model.Signature
	Error      string
}

type StudentGridProps struct {
	Students []*model.Student
}

type WallComposeProps struct {
	Text   string
	Author string
	Error  string
}

func noteClass(msg *model.WallMessage) string {
	return ui.Classes(
		"relative p-6 pt-8 shadow-xl text-stone-800 transition-transform hover:scale-[1.02] hover:z-10",
		ui.PaperClass(msg.Style),
		ui.RotateClass(msg.Rotation),
	)
}

type VaultGridProps struct {
	Items []*model.VaultItem
}

// playable items are uploads served from the blob store; seeded videos
// only carry a poster image.
func playable(item *model.VaultItem) bool {
	return item.IsVideo() && strings.HasPrefix(item.Src, "/blobs/")
}

// vaultMeta is the date followed by the tags, dot separated.
func vaultMeta(item *model.VaultItem) string {
	parts := append([]string{item.Date}, item.Tags...)
	return strings.Join(parts, " · ")
}

type UploadFormProps struct {
	Caption   string
	Error     string
	MaxSizeMB int64
}
