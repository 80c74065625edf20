package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/seed"
	"github.com/batch26/keepsake/internal/ui/components"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestPagesRender(t *testing.T) {
	ctx := ctxkeys.WithCSRFToken(context.Background(), "tok")
	students := seed.Students()
	messages := seed.Messages()
	media := seed.Media()

	events := []*model.MemoryEvent{{
		Slug:        "2022-the-first-hello",
		Year:        "2022",
		Title:       "The First Hello",
		HTMLContent: "<p>Nervous smiles</p>",
		Align:       "left",
		Order:       1,
	}}

	tests := []struct {
		name string
		c    templ.Component
		want []string
	}{
		{"home", Home(""), []string{"Start the Journey", `X-CSRF-Token`}},
		{"timeline", Timeline(events, ""), []string{"The First Hello", "<p>Nervous smiles</p>"}},
		{"yearbook", Yearbook(YearbookData{
			Filters: model.MajorFilters,
			Filter:  model.FilterAllMajors,
			Grid:    components.StudentGridProps{Students: students},
		}, ""), []string{students[0].Name, "student-grid"}},
		{"vault", Vault(VaultData{
			Filters: model.VaultFilters,
			Filter:  model.FilterAllMemories,
			Grid:    components.VaultGridProps{Items: media},
			Upload:  components.UploadFormProps{MaxSizeMB: 25},
		}, ""), []string{media[0].Caption, "upload-slot"}},
		{"wall", Wall(WallData{Messages: messages}, ""), []string{"wall-compose-slot", "wall-notes"}},
		{"dialog", Home("/auth/dialog?mode=login"), []string{`hx-get="/auth/dialog?mode=login"`}},
		{"notfound", NotFound(), []string{"Page not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, ctx, tt.c)
			for _, want := range tt.want {
				assert.Contains(t, html, want)
			}
		})
	}
}

func TestNavigationHiddenOnHome(t *testing.T) {
	ctx := context.Background()
	assert.NotContains(t, render(t, ctx, Home("")), `href="/wall"`)
	assert.Contains(t, render(t, ctx, Wall(WallData{}, "")), `href="/wall"`)
}
