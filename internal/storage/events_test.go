package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/facerec/internal/models"
)

func newTestEvents(t *testing.T) *EventStore {
	t.Helper()
	store, err := NewEventStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func floatPtr(v float64) *float64 { return &v }

func TestEventSaveAndGet(t *testing.T) {
	store := newTestEvents(t)

	event, err := store.Save([]byte("original"), []FaceArtifact{
		{
			Result: models.FaceResult{
				FaceIndex:   0,
				KnownPerson: true,
				NamePerson:  "alice",
				Distance:    floatPtr(0.3),
				Location:    models.BoundingBox{Top: 1, Right: 4, Bottom: 4, Left: 1},
			},
			Crop: []byte("crop-0"),
		},
		{
			Result: models.FaceResult{FaceIndex: 1},
			Crop:   nil,
		},
	})
	require.NoError(t, err)
	assert.Contains(t, event.EventID, "recognition_")
	assert.Equal(t, 2, event.TotalFaces)

	// Crop filename is recorded only when a crop was written.
	assert.Equal(t, "face_0.jpg", event.Faces[0].FaceImage)
	assert.Empty(t, event.Faces[1].FaceImage)

	got, err := store.Get(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, got.EventID)
	require.Len(t, got.Faces, 2)
	assert.True(t, got.Faces[0].KnownPerson)
	assert.Equal(t, "alice", got.Faces[0].NamePerson)
	require.NotNil(t, got.Faces[0].Distance)
	assert.InDelta(t, 0.3, *got.Faces[0].Distance, 1e-9)
	assert.False(t, got.Faces[1].KnownPerson)
	assert.Nil(t, got.Faces[1].Distance)
}

func TestEventZeroFaces(t *testing.T) {
	store := newTestEvents(t)

	event, err := store.Save([]byte("original"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, event.TotalFaces)

	got, err := store.Get(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalFaces)
	assert.Empty(t, got.Faces)
}

func TestEventListNewestFirst(t *testing.T) {
	store := newTestEvents(t)

	first, err := store.Save([]byte("one"), nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := store.Save([]byte("two"), nil)
	require.NoError(t, err)

	events, err := store.List()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, second.EventID, events[0].EventID)
	assert.Equal(t, first.EventID, events[1].EventID)
}

func TestEventFaceImage(t *testing.T) {
	store := newTestEvents(t)

	event, err := store.Save([]byte("original"), []FaceArtifact{
		{Result: models.FaceResult{FaceIndex: 0}, Crop: []byte("crop-bytes")},
	})
	require.NoError(t, err)

	data, err := store.FaceImage(event.EventID, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("crop-bytes"), data)

	_, err = store.FaceImage(event.EventID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventOriginalPath(t *testing.T) {
	store := newTestEvents(t)

	event, err := store.Save([]byte("original"), nil)
	require.NoError(t, err)

	path, err := store.OriginalPath(event.EventID)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestEventDelete(t *testing.T) {
	store := newTestEvents(t)

	event, err := store.Save([]byte("original"), nil)
	require.NoError(t, err)

	require.NoError(t, store.Delete(event.EventID))
	assert.ErrorIs(t, store.Delete(event.EventID), ErrNotFound)

	_, err = store.Get(event.EventID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRejectsUnsafeIDs(t *testing.T) {
	store := newTestEvents(t)

	_, err := store.Get("../../known")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.OriginalPath("..")
	assert.ErrorIs(t, err, ErrNotFound)
}
