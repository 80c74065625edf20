package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/batch26/keepsake/internal/config"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	require.NoError(t, s.Save(ctx, "vault/a.png", strings.NewReader("png-bytes"), "image/png"))
	assert.Equal(t, "/blobs/vault/a.png", s.URL("vault/a.png"))

	obj, err := s.Open(ctx, "vault/a.png")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.EqualValues(t, 9, obj.Size)

	require.NoError(t, s.Delete(ctx, "vault/a.png"))
	_, err = s.Open(ctx, "vault/a.png")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewDefaultsToMemory(t *testing.T) {
	s, err := New(&cfg.Config{StorageDriver: cfg.StorageDriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)
}
