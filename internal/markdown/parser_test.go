package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithFrontmatter(t *testing.T) {
	src := []byte("---\ntitle: The First Hello\norder: 2\n---\nWe were *lost*.\n")

	var meta struct {
		Title string `yaml:"title"`
		Order int    `yaml:"order"`
	}
	html, err := NewParser().Parse(src, &meta)
	require.NoError(t, err)

	assert.Equal(t, "The First Hello", meta.Title)
	assert.Equal(t, 2, meta.Order)
	assert.Contains(t, string(html), "<em>lost</em>")
	assert.NotContains(t, string(html), "title:")
}

func TestParseWithoutFrontmatter(t *testing.T) {
	var meta struct {
		Title string `yaml:"title"`
	}
	html, err := NewParser().Parse([]byte("plain"), &meta)
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.Contains(t, string(html), "<p>plain</p>")
}

func TestParseInvalidFrontmatter(t *testing.T) {
	var meta struct {
		Order int `yaml:"order"`
	}
	_, err := NewParser().Parse([]byte("---\norder: [oops\n---\nbody\n"), &meta)
	require.Error(t, err)
}
