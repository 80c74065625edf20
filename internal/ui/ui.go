package ui

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/url"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
)

//go:generate go tool templ generate -path .

//go:embed assets
var assetsFS embed.FS

// AssetsFS serves /assets/.
var AssetsFS, _ = fs.Sub(assetsFS, "assets")

// RequestInfo is what components can read about the current request.
type RequestInfo struct {
	Nonce     string
	CSRFToken string
	Path      string
	User      *model.User
	Config    *config.Config
}

// Request collects the RequestInfo the middleware stored in ctx.
func Request(ctx context.Context) RequestInfo {
	return RequestInfo{
		Nonce:     templ.GetNonce(ctx),
		CSRFToken: ctxkeys.CSRFToken(ctx),
		Path:      ctxkeys.URLPath(ctx),
		User:      ctxkeys.User(ctx),
		Config:    ctxkeys.Config(ctx),
	}
}

func (r RequestInfo) SignedIn() bool {
	return r.User != nil
}

// CSRFHeaders is the hx-headers value that makes htmx send the token.
func (r RequestInfo) CSRFHeaders() string {
	b, _ := json.Marshal(map[string]string{"X-CSRF-Token": r.CSRFToken})
	return string(b)
}

func (r RequestInfo) AppName() string {
	if r.Config == nil || r.Config.AppName == "" {
		return "Batch '26"
	}
	return r.Config.AppName
}

func (r RequestInfo) Tagline() string {
	if r.Config == nil {
		return ""
	}
	return r.Config.AppTagline
}

func (r RequestInfo) GoogleEnabled() bool {
	return r.Config != nil && r.Config.GoogleEnabled()
}

func (r RequestInfo) GitHubEnabled() bool {
	return r.Config != nil && r.Config.GitHubEnabled()
}

// AuthDialogURL opens the sign-in or sign-up dialog, returning to next.
func AuthDialogURL(mode, next string) string {
	q := url.Values{"mode": {mode}}
	if next != "" {
		q.Set("next", next)
	}
	return "/auth/dialog?" + q.Encode()
}

// TitleCase builds a Caser per call; Casers are not safe for concurrent use.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// NavItem is one entry of the navigation bar.
type NavItem struct {
	View   model.View
	Label  string
	Active bool
}

func Nav(current model.View) []NavItem {
	items := make([]NavItem, 0, len(model.NavViews))
	for _, v := range model.NavViews {
		items = append(items, NavItem{View: v, Label: TitleCase(string(v)), Active: v == current})
	}
	return items
}

var paperClasses = map[model.PaperStyle]string{
	model.Paper1: "bg-[#fdfbf7] bg-gradient-to-br from-[#fdfbf7] to-[#f7f1e3]",
	model.Paper2: "bg-[#f4e4bc] bg-gradient-to-br from-[#f4e4bc] to-[#e6d2a0]",
	model.Paper3: "bg-[#e3d5b8] bg-gradient-to-br from-[#e3d5b8] to-[#d4c5a8]",
	model.Paper4: "bg-[#fffdf0] bg-gradient-to-br from-[#fffdf0] to-[#fef9e0]",
}

var aspectClasses = map[string]string{
	model.AspectPortrait:  "aspect-[3/4]",
	model.AspectLandscape: "aspect-[4/3]",
	model.AspectSquare:    "aspect-square",
	model.AspectTall:      "aspect-[9/16]",
}

// Classes merges tailwind class lists; later lists win conflicts.
func Classes(classes ...string) string {
	return twmerge.Merge(classes...)
}

func PaperClass(style model.PaperStyle) string {
	return paperClasses[style]
}

func AspectClass(aspect string) string {
	return aspectClasses[aspect]
}

// RotateClass turns a CSS angle such as "-2.15deg" into an arbitrary
// tailwind rotate class.
func RotateClass(angle string) string {
	if angle == "" {
		return ""
	}
	return "rotate-[" + angle + "]"
}
