package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/your-org/facerec/internal/models"
)

// PersonEncodings is one identity's reference embeddings, in enrollment
// order.
type PersonEncodings struct {
	Name      string
	Encodings [][]float32
}

// KnownStore persists enrolled identities: one directory per name, holding
// paired <timestamp>.jpg / <timestamp>.json enrollment records. Every
// mutation bumps an atomic generation counter so the matcher's snapshot
// cache can detect staleness.
type KnownStore struct {
	root string
	gen  atomic.Uint64
}

func NewKnownStore(basePath string) (*KnownStore, error) {
	root := filepath.Join(basePath, "known")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create known dir: %w", err)
	}
	return &KnownStore{root: root}, nil
}

// Generation returns the current mutation counter. The snapshot cache
// compares it against the generation it loaded at.
func (s *KnownStore) Generation() uint64 {
	return s.gen.Load()
}

// SaveFace stores one enrollment record for the named identity and returns
// the image filename. The embedding is supplied by the caller; the store
// itself is detector-agnostic.
func (s *KnownStore) SaveFace(name string, imageData []byte, embedding []float32) (string, error) {
	if !safeName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	personDir := filepath.Join(s.root, name)
	if err := os.MkdirAll(personDir, 0o755); err != nil {
		return "", fmt.Errorf("create person dir: %w", err)
	}

	key := timestampKey(time.Now())

	encData, err := json.Marshal(embedding)
	if err != nil {
		return "", fmt.Errorf("marshal embedding: %w", err)
	}
	if err := os.WriteFile(filepath.Join(personDir, key+".json"), encData, 0o644); err != nil {
		return "", fmt.Errorf("write embedding: %w", err)
	}

	imageFile := key + ".jpg"
	if err := os.WriteFile(filepath.Join(personDir, imageFile), imageData, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	s.gen.Add(1)
	slog.Info("saved enrollment", "name", name, "file", imageFile)
	return imageFile, nil
}

// LoadEncodings reads every identity's embeddings from disk, sorted by
// name for deterministic matcher iteration. Identities without a single
// readable embedding are skipped.
func (s *KnownStore) LoadEncodings() ([]PersonEncodings, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read known dir: %w", err)
	}

	var people []PersonEncodings
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		personDir := filepath.Join(s.root, name)

		files, err := os.ReadDir(personDir)
		if err != nil {
			slog.Warn("read person dir", "name", name, "error", err)
			continue
		}

		var encodings [][]float32
		for _, f := range files {
			if !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(personDir, f.Name()))
			if err != nil {
				slog.Warn("read embedding", "name", name, "file", f.Name(), "error", err)
				continue
			}
			var enc []float32
			if err := json.Unmarshal(data, &enc); err != nil {
				slog.Warn("parse embedding", "name", name, "file", f.Name(), "error", err)
				continue
			}
			encodings = append(encodings, enc)
		}

		if len(encodings) > 0 {
			people = append(people, PersonEncodings{Name: name, Encodings: encodings})
		}
	}

	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })
	return people, nil
}

// List returns all enrolled identities with their enrollment counts.
func (s *KnownStore) List() ([]models.KnownPerson, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read known dir: %w", err)
	}

	people := make([]models.KnownPerson, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count, err := s.countImages(entry.Name())
		if err != nil {
			slog.Warn("count images", "name", entry.Name(), "error", err)
			continue
		}
		people = append(people, models.KnownPerson{Name: entry.Name(), ImageCount: count})
	}

	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })
	return people, nil
}

func (s *KnownStore) countImages(name string) (int, error) {
	files, err := os.ReadDir(filepath.Join(s.root, name))
	if err != nil {
		return 0, err
	}
	count := 0
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".jpg") {
			count++
		}
	}
	return count, nil
}

// ListImages returns the identity's enrollment image filenames, newest
// first.
func (s *KnownStore) ListImages(name string) ([]string, error) {
	if !safeName(name) {
		return nil, ErrNotFound
	}
	files, err := os.ReadDir(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read person dir: %w", err)
	}

	var images []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".jpg") {
			images = append(images, f.Name())
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(images)))
	return images, nil
}

// ImagePath resolves an enrollment image filename to its on-disk path,
// rejecting any filename that would escape the identity's directory.
func (s *KnownStore) ImagePath(name, filename string) (string, error) {
	if !safeName(name) || !safeName(filename) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.root, name, filename)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// DeleteImage removes one enrollment record (image and paired embedding).
func (s *KnownStore) DeleteImage(name, filename string) error {
	path, err := s.ImagePath(name, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	encPath := strings.TrimSuffix(path, ".jpg") + ".json"
	if err := os.Remove(encPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("delete paired embedding", "name", name, "file", filename, "error", err)
	}
	s.gen.Add(1)
	return nil
}

// Delete removes an identity and all its enrollment records.
func (s *KnownStore) Delete(name string) error {
	if !safeName(name) {
		return ErrNotFound
	}
	personDir := filepath.Join(s.root, name)
	if _, err := os.Stat(personDir); err != nil {
		return ErrNotFound
	}
	if err := os.RemoveAll(personDir); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	s.gen.Add(1)
	return nil
}
