package service

import (
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batch26/keepsake/internal/model"
)

func TestTimelineOrdersEvents(t *testing.T) {
	content := fstest.MapFS{
		"timeline/b.md": {Data: []byte("---\nyear: \"2023\"\ntitle: Late Nights\norder: 2\nalign: right\n---\nPizza.\n")},
		"timeline/a.md": {Data: []byte("---\nyear: \"2022\"\ntitle: First Hello\norder: 1\nalign: sideways\n---\nHall B.\n")},
		"other/x.md":    {Data: []byte("ignored")},
	}

	events, err := NewTimelineService(content, 0).Events()
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "a", events[0].Slug)
	assert.Equal(t, "First Hello", events[0].Title)
	assert.Equal(t, model.AlignLeft, events[0].Align, "unknown alignment falls back to left")
	assert.Contains(t, events[0].HTMLContent, "Hall B.")
	assert.Equal(t, model.AlignRight, events[1].Align)
}

func TestTimelineCaches(t *testing.T) {
	content := fstest.MapFS{
		"timeline/a.md": {Data: []byte("---\ntitle: One\norder: 1\n---\n")},
	}
	svc := NewTimelineService(content, time.Minute)

	events, err := svc.Events()
	require.NoError(t, err)
	require.Len(t, events, 1)

	content["timeline/b.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Two\norder: 2\n---\n")}
	events, err = svc.Events()
	require.NoError(t, err)
	assert.Len(t, events, 1, "served from cache")
}

func TestTimelineShippedContent(t *testing.T) {
	events, err := NewTimelineService(os.DirFS("../../content"), 0).Events()
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, "2022", events[0].Year)
	assert.Equal(t, "2026", events[4].Year)
	assert.Equal(t, model.AlignCenter, events[4].Align)
}
