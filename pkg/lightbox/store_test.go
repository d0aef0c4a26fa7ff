package lightbox

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore(time.Minute)
	sess, err := st.Create(tiles(3), "image-1")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	frame := got.Do(func(v *Viewer) { v.Next() })
	assert.Equal(t, "image-2", frame.ID)
}

func TestStoreCreateUnknownTile(t *testing.T) {
	st := NewStore(time.Minute)
	_, err := st.Create(tiles(3), "image-7")
	assert.ErrorIs(t, err, ErrTileNotFound)
	assert.Equal(t, 0, st.Len())
}

func TestStoreDeleteAndMissing(t *testing.T) {
	st := NewStore(time.Minute)
	sess, err := st.Create(tiles(1), "image-0")
	require.NoError(t, err)

	st.Delete(sess.ID)
	_, err = st.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = st.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(20 * time.Millisecond)
	sess, err := st.Create(tiles(1), "image-0")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	_, err = st.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionConcurrentNavigation(t *testing.T) {
	st := NewStore(time.Minute)
	sess, err := st.Create(tiles(4), "image-0")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.Do(func(v *Viewer) { v.Next() })
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, sess.Frame().Index, "40 steps over 4 tiles land back on the first")
}

func TestStoreDeleteWinsOverConcurrentGet(t *testing.T) {
	st := NewStore(time.Minute)
	for i := 0; i < 50; i++ {
		sess, err := st.Create(tiles(2), "image-0")
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _ = st.Get(sess.ID)
			}
		}()
		go func() {
			defer wg.Done()
			st.Delete(sess.ID)
		}()
		wg.Wait()

		_, err = st.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	}
	assert.Zero(t, st.Len())
}
