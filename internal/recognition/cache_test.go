package recognition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/facerec/internal/storage"
)

func newTestKnownStore(t *testing.T) *storage.KnownStore {
	t.Helper()
	store, err := storage.NewKnownStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCacheServesSameSnapshotWithoutMutation(t *testing.T) {
	store := newTestKnownStore(t)
	_, err := store.SaveFace("alice", []byte("jpeg-bytes"), embed(0))
	require.NoError(t, err)

	cache := NewCache(store)

	first, err := cache.Snapshot()
	require.NoError(t, err)
	second, err := cache.Snapshot()
	require.NoError(t, err)

	assert.Same(t, first, second, "no mutation should mean no reload")
}

func TestCacheReloadsAfterEnroll(t *testing.T) {
	store := newTestKnownStore(t)
	cache := NewCache(store)

	snap, err := cache.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())

	_, err = store.SaveFace("alice", []byte("jpeg-bytes"), embed(0))
	require.NoError(t, err)

	snap, err = cache.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())

	m := snap.Match(embed(0.1), 0.75)
	assert.True(t, m.Matched)
	assert.Equal(t, "alice", m.Name)
}

func TestCacheReloadsAfterDelete(t *testing.T) {
	store := newTestKnownStore(t)
	_, err := store.SaveFace("alice", []byte("jpeg-bytes"), embed(0))
	require.NoError(t, err)

	cache := NewCache(store)
	snap, err := cache.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())

	require.NoError(t, store.Delete("alice"))

	snap, err = cache.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())

	m := snap.Match(embed(0.1), 0.75)
	assert.False(t, m.Matched)
	assert.Nil(t, m.Distance)
}

func TestCacheReloadPicksUpCloserIdentity(t *testing.T) {
	store := newTestKnownStore(t)
	_, err := store.SaveFace("alice", []byte("jpeg-bytes"), embed(0))
	require.NoError(t, err)

	cache := NewCache(store)
	probe := embed(0.5)

	snap, err := cache.Snapshot()
	require.NoError(t, err)
	m := snap.Match(probe, 0.75)
	require.True(t, m.Matched)
	assert.Equal(t, "alice", m.Name)

	// Enroll someone strictly closer to the probe; a stale snapshot
	// would keep answering "alice".
	_, err = store.SaveFace("bob", []byte("jpeg-bytes"), embed(0.49))
	require.NoError(t, err)

	snap, err = cache.Snapshot()
	require.NoError(t, err)
	m = snap.Match(probe, 0.75)
	require.True(t, m.Matched)
	assert.Equal(t, "bob", m.Name)
}
