package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/your-org/facerec/internal/models"
)

// FaceArtifact pairs one face result with its crop image for persistence.
// Crop may be nil when extraction failed; the result is still recorded.
type FaceArtifact struct {
	Result models.FaceResult
	Crop   []byte
}

// EventStore persists recognition events: one directory per event id,
// holding the original submitted image, per-face crop files named by face
// index and a metadata record listing all face results.
type EventStore struct {
	root string
}

func NewEventStore(basePath string) (*EventStore, error) {
	root := filepath.Join(basePath, "recognitions")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create recognitions dir: %w", err)
	}
	return &EventStore{root: root}, nil
}

// Save persists one recognition event. Image blobs are written before the
// metadata record so a concurrent lister never observes an event whose
// referenced files do not yet exist. A zero-face event is valid.
func (s *EventStore) Save(imageData []byte, faces []FaceArtifact) (*models.Event, error) {
	now := time.Now()
	id := timestampID("recognition", now)
	eventDir := filepath.Join(s.root, id)

	if err := os.MkdirAll(eventDir, 0o755); err != nil {
		return nil, fmt.Errorf("create event dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(eventDir, "original.jpg"), imageData, 0o644); err != nil {
		return nil, fmt.Errorf("write original image: %w", err)
	}

	results := make([]models.FaceResult, 0, len(faces))
	for _, fa := range faces {
		result := fa.Result
		if fa.Crop != nil {
			name := fmt.Sprintf("face_%d.jpg", result.FaceIndex)
			if err := os.WriteFile(filepath.Join(eventDir, name), fa.Crop, 0o644); err != nil {
				return nil, fmt.Errorf("write face crop %d: %w", result.FaceIndex, err)
			}
			result.FaceImage = name
		}
		results = append(results, result)
	}

	event := &models.Event{
		EventID:    id,
		Timestamp:  now,
		TotalFaces: len(results),
		Faces:      results,
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(eventDir, "metadata.json"), data, 0o644); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	return event, nil
}

// List returns all recognition events, newest first.
func (s *EventStore) List() ([]models.Event, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read recognitions dir: %w", err)
	}

	events := make([]models.Event, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		event, err := s.readMetadata(entry.Name())
		if err != nil {
			slog.Warn("read event metadata", "id", entry.Name(), "error", err)
			continue
		}
		events = append(events, *event)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Timestamp.After(events[j].Timestamp) })
	return events, nil
}

// Get returns one recognition event by id.
func (s *EventStore) Get(id string) (*models.Event, error) {
	if !safeName(id) {
		return nil, ErrNotFound
	}
	event, err := s.readMetadata(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *EventStore) readMetadata(id string) (*models.Event, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// OriginalPath returns the on-disk path of the event's original image.
func (s *EventStore) OriginalPath(id string) (string, error) {
	return s.filePath(id, "original.jpg")
}

// FacePath returns the on-disk path of one face crop by index.
func (s *EventStore) FacePath(id string, index int) (string, error) {
	return s.filePath(id, fmt.Sprintf("face_%d.jpg", index))
}

// FaceImage returns the bytes of one face crop, for promotion into the
// known-face store.
func (s *EventStore) FaceImage(id string, index int) ([]byte, error) {
	path, err := s.FacePath(id, index)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read face crop: %w", err)
	}
	return data, nil
}

func (s *EventStore) filePath(id, name string) (string, error) {
	if !safeName(id) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.root, id, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// Delete removes a recognition event entirely.
func (s *EventStore) Delete(id string) error {
	if !safeName(id) {
		return ErrNotFound
	}
	eventDir := filepath.Join(s.root, id)
	if _, err := os.Stat(eventDir); err != nil {
		return ErrNotFound
	}
	if err := os.RemoveAll(eventDir); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	slog.Info("deleted recognition event", "id", id)
	return nil
}
