package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/your-org/facerec/internal/models"
)

// DefaultTolerance is the fallback maximum matching distance, used when
// neither the config nor a saved settings record supplies one.
const DefaultTolerance = 0.75

// SettingsStore persists the process-wide settings as a single JSON
// record, replaced wholesale on update. defaultTolerance comes from the
// config and applies until a settings record is saved.
type SettingsStore struct {
	path             string
	defaultTolerance float64
	mu               sync.Mutex
}

func NewSettingsStore(basePath string, defaultTolerance float64) *SettingsStore {
	if defaultTolerance <= 0 {
		defaultTolerance = DefaultTolerance
	}
	return &SettingsStore{
		path:             filepath.Join(basePath, "settings.json"),
		defaultTolerance: defaultTolerance,
	}
}

// Load returns the persisted settings, or defaults when none were saved.
func (s *SettingsStore) Load() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := models.Settings{Tolerance: s.defaultTolerance}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse settings: %w", err)
	}
	if settings.Tolerance <= 0 {
		settings.Tolerance = s.defaultTolerance
	}
	return settings, nil
}

// Save replaces the stored settings.
func (s *SettingsStore) Save(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.Tolerance <= 0 {
		settings.Tolerance = s.defaultTolerance
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
