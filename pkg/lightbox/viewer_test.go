package lightbox

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craft-gallery/pkg/models"
)

func tiles(n int) []models.Tile {
	out := make([]models.Tile, n)
	for i := range out {
		out[i] = models.Tile{
			ID:    fmt.Sprintf("image-%d", i),
			Index: i,
			Src:   fmt.Sprintf("Images/Soap/%d.jpg", i),
		}
	}
	return out
}

func TestOpenLocatesTile(t *testing.T) {
	v := NewViewer()
	require.NoError(t, v.Open(tiles(3), "image-1"))

	assert.Equal(t, Open, v.State())
	assert.Equal(t, 1, v.Index())
	assert.True(t, v.ScrollLocked())
	cur, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, "Images/Soap/1.jpg", cur.Src)
}

func TestOpenUnknownTileIsNoop(t *testing.T) {
	v := NewViewer()
	err := v.Open(tiles(3), "image-9")
	assert.ErrorIs(t, err, ErrTileNotFound)
	assert.Equal(t, Closed, v.State())
	assert.False(t, v.ScrollLocked())
	assert.Equal(t, 0, v.Len())
}

func TestNextWrapsAround(t *testing.T) {
	v := NewViewer()
	require.NoError(t, v.Open(tiles(3), "image-2"))

	v.Next()
	assert.Equal(t, 0, v.Index())

	v.Previous()
	assert.Equal(t, 2, v.Index())

	v.Previous()
	v.Previous()
	assert.Equal(t, 0, v.Index())
}

func TestNavigationOnEmptySnapshot(t *testing.T) {
	v := NewViewer()
	assert.NotPanics(t, func() {
		v.Next()
		v.Previous()
	})
	assert.Equal(t, 0, v.Index())
	_, ok := v.Current()
	assert.False(t, ok)

	assert.ErrorIs(t, v.Open(nil, "image-0"), ErrTileNotFound)
	assert.NotPanics(t, v.Next)
}

func TestSnapshotIsNotRetaken(t *testing.T) {
	ts := tiles(2)
	v := NewViewer()
	require.NoError(t, v.Open(ts, "image-0"))

	ts[1].Src = "changed"
	v.Next()
	cur, _ := v.Current()
	assert.Equal(t, "Images/Soap/1.jpg", cur.Src)
}

func TestKeyboardRouting(t *testing.T) {
	v := NewViewer()
	assert.False(t, v.HandleKey(KeyArrowRight), "keys are ignored while closed")

	require.NoError(t, v.Open(tiles(3), "image-0"))
	assert.True(t, v.HandleKey(KeyArrowRight))
	assert.Equal(t, 1, v.Index())
	assert.True(t, v.HandleKey(KeyArrowLeft))
	assert.True(t, v.HandleKey(KeyArrowLeft))
	assert.Equal(t, 2, v.Index())
	assert.False(t, v.HandleKey("Enter"))

	assert.True(t, v.HandleKey(KeyEscape))
	assert.Equal(t, Closed, v.State())
	assert.False(t, v.ScrollLocked())
	assert.False(t, v.HandleKey(KeyArrowLeft))
}

func TestClickRouting(t *testing.T) {
	v := NewViewer()
	require.NoError(t, v.Open(tiles(3), "image-0"))

	assert.False(t, v.HandleClick(TargetImage))
	assert.Equal(t, Open, v.State())

	assert.True(t, v.HandleClick(TargetNext))
	assert.True(t, v.HandleClick(TargetNext))
	assert.True(t, v.HandleClick(TargetPrev))
	assert.Equal(t, 1, v.Index())

	assert.True(t, v.HandleClick(TargetOverlay))
	assert.Equal(t, Closed, v.State())

	require.NoError(t, v.Open(tiles(3), "image-2"))
	assert.True(t, v.HandleClick(TargetClose))
	assert.Equal(t, Closed, v.State())
}

func TestReopenResetsSession(t *testing.T) {
	v := NewViewer()
	require.NoError(t, v.Open(tiles(3), "image-2"))
	v.Close()

	require.NoError(t, v.Open(tiles(5), "image-4"))
	assert.Equal(t, 4, v.Index())
	assert.Equal(t, 5, v.Len())
}

func TestFrameAndNeighbours(t *testing.T) {
	v := NewViewer()
	assert.Equal(t, Frame{State: "closed"}, v.Frame())

	require.NoError(t, v.Open(tiles(3), "image-0"))
	assert.Equal(t, Frame{
		State:        "open",
		ID:           "image-0",
		Src:          "Images/Soap/0.jpg",
		Index:        0,
		Count:        3,
		ScrollLocked: true,
	}, v.Frame())

	prev, next, ok := v.Neighbours()
	require.True(t, ok)
	assert.Equal(t, "image-2", prev.ID)
	assert.Equal(t, "image-1", next.ID)
}
