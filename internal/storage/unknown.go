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

// UnknownStore persists unidentified detections for later triage: one
// directory per face id, holding the full source image, an optional face
// crop and a metadata record.
type UnknownStore struct {
	root string
}

func NewUnknownStore(basePath string) (*UnknownStore, error) {
	root := filepath.Join(basePath, "unknown")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create unknown dir: %w", err)
	}
	return &UnknownStore{root: root}, nil
}

// Save persists an unknown face. faceData is the cropped face image and
// may be nil; its absence is recorded in the metadata. The metadata file
// is written last so listers never see a record without its image.
func (s *UnknownStore) Save(imageData, faceData []byte) (*models.UnknownFace, error) {
	now := time.Now()
	id := timestampID("unknown", now)
	faceDir := filepath.Join(s.root, id)

	if err := os.MkdirAll(faceDir, 0o755); err != nil {
		return nil, fmt.Errorf("create face dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(faceDir, "image.jpg"), imageData, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	hasFace := false
	if faceData != nil {
		if err := os.WriteFile(filepath.Join(faceDir, "face.jpg"), faceData, 0o644); err != nil {
			slog.Warn("write cropped face", "id", id, "error", err)
		} else {
			hasFace = true
		}
	}

	face := &models.UnknownFace{
		ID:           id,
		Timestamp:    now,
		ImagePath:    filepath.Join("unknown", id, "image.jpg"),
		HasFaceImage: hasFace,
	}

	data, err := json.Marshal(face)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(faceDir, "metadata.json"), data, 0o644); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	return face, nil
}

// List returns all unknown faces, newest first. Directories without a
// readable metadata record are skipped.
func (s *UnknownStore) List() ([]models.UnknownFace, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read unknown dir: %w", err)
	}

	faces := make([]models.UnknownFace, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		face, err := s.readMetadata(entry.Name())
		if err != nil {
			slog.Warn("read unknown face metadata", "id", entry.Name(), "error", err)
			continue
		}
		faces = append(faces, *face)
	}

	sort.Slice(faces, func(i, j int) bool { return faces[i].Timestamp.After(faces[j].Timestamp) })
	return faces, nil
}

// Get returns one unknown face by id.
func (s *UnknownStore) Get(id string) (*models.UnknownFace, error) {
	if !safeName(id) {
		return nil, ErrNotFound
	}
	face, err := s.readMetadata(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return face, nil
}

func (s *UnknownStore) readMetadata(id string) (*models.UnknownFace, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var face models.UnknownFace
	if err := json.Unmarshal(data, &face); err != nil {
		return nil, err
	}
	return &face, nil
}

// ImagePath returns the on-disk path of the full source image.
func (s *UnknownStore) ImagePath(id string) (string, error) {
	return s.filePath(id, "image.jpg")
}

// FacePath returns the on-disk path of the cropped face image, which may
// not exist.
func (s *UnknownStore) FacePath(id string) (string, error) {
	return s.filePath(id, "face.jpg")
}

func (s *UnknownStore) filePath(id, name string) (string, error) {
	if !safeName(id) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.root, id, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// BestImage returns the cropped face image when present, falling back to
// the full source image.
func (s *UnknownStore) BestImage(id string) ([]byte, error) {
	if path, err := s.FacePath(id); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
		slog.Warn("read cropped face, falling back to full image", "id", id)
	}
	path, err := s.ImagePath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Delete removes an unknown face record entirely.
func (s *UnknownStore) Delete(id string) error {
	if !safeName(id) {
		return ErrNotFound
	}
	faceDir := filepath.Join(s.root, id)
	if _, err := os.Stat(faceDir); err != nil {
		return ErrNotFound
	}
	if err := os.RemoveAll(faceDir); err != nil {
		return fmt.Errorf("delete unknown face: %w", err)
	}
	return nil
}
