package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCounts(t *testing.T) {
	assert.Len(t, Students(), 8)
	assert.Len(t, Messages(), 4)
	assert.Len(t, Media(), 7)
}

func TestSeedIsFreshEachCall(t *testing.T) {
	a := Students()
	a[0].Tags[0] = "changed"
	assert.Equal(t, "Science", Students()[0].Tags[0])
}

func TestSeedNewestFirst(t *testing.T) {
	msgs := Messages()
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i-1].CreatedAt.After(msgs[i].CreatedAt))
	}
	media := Media()
	for i := 1; i < len(media); i++ {
		assert.True(t, media[i-1].CreatedAt.After(media[i].CreatedAt))
	}
}

func TestSeedMessagesValid(t *testing.T) {
	for _, m := range Messages() {
		require.True(t, m.Style.Valid(), m.ID)
		assert.Regexp(t, `^-?\d+deg$`, m.Rotation)
		assert.Regexp(t, `^-?\d+deg$`, m.TapeRotation)
	}
}
