package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnknown(t *testing.T) *UnknownStore {
	t.Helper()
	store, err := NewUnknownStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestUnknownSaveWithCrop(t *testing.T) {
	store := newTestUnknown(t)

	face, err := store.Save([]byte("full-image"), []byte("face-crop"))
	require.NoError(t, err)
	assert.True(t, face.HasFaceImage)
	assert.Contains(t, face.ID, "unknown_")

	got, err := store.Get(face.ID)
	require.NoError(t, err)
	assert.Equal(t, face.ID, got.ID)
	assert.True(t, got.HasFaceImage)

	path, err := store.FacePath(face.ID)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestUnknownSaveWithoutCrop(t *testing.T) {
	store := newTestUnknown(t)

	face, err := store.Save([]byte("full-image"), nil)
	require.NoError(t, err)
	assert.False(t, face.HasFaceImage)

	_, err = store.FacePath(face.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	path, err := store.ImagePath(face.ID)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestUnknownListNewestFirst(t *testing.T) {
	store := newTestUnknown(t)

	first, err := store.Save([]byte("one"), nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := store.Save([]byte("two"), nil)
	require.NoError(t, err)

	faces, err := store.List()
	require.NoError(t, err)
	require.Len(t, faces, 2)
	assert.Equal(t, second.ID, faces[0].ID)
	assert.Equal(t, first.ID, faces[1].ID)
}

func TestUnknownBestImagePrefersCrop(t *testing.T) {
	store := newTestUnknown(t)

	withCrop, err := store.Save([]byte("full"), []byte("crop"))
	require.NoError(t, err)
	data, err := store.BestImage(withCrop.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("crop"), data)

	withoutCrop, err := store.Save([]byte("full"), nil)
	require.NoError(t, err)
	data, err = store.BestImage(withoutCrop.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("full"), data)
}

func TestUnknownDelete(t *testing.T) {
	store := newTestUnknown(t)

	face, err := store.Save([]byte("full"), nil)
	require.NoError(t, err)

	require.NoError(t, store.Delete(face.ID))
	assert.ErrorIs(t, store.Delete(face.ID), ErrNotFound)

	_, err = store.Get(face.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownRejectsUnsafeIDs(t *testing.T) {
	store := newTestUnknown(t)

	_, err := store.Get("../escape")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.ImagePath("..")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete("a/b"), ErrNotFound)
}
