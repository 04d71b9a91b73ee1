package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/facerec/internal/models"
)

func TestSettingsDefaultsWhenUnsaved(t *testing.T) {
	store := NewSettingsStore(t.TempDir(), 0)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultTolerance, settings.Tolerance)
	assert.Empty(t, settings.WebhookURL)
	assert.False(t, settings.WebhookEnabled)
}

func TestSettingsConfiguredDefaultTolerance(t *testing.T) {
	store := NewSettingsStore(t.TempDir(), 0.5)

	// The configured tolerance applies before any record is saved.
	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, settings.Tolerance)

	// An invalid saved tolerance also coerces to the configured value.
	require.NoError(t, store.Save(models.Settings{Tolerance: -1}))
	settings, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, settings.Tolerance)
}

func TestSettingsSaveAndLoad(t *testing.T) {
	store := NewSettingsStore(t.TempDir(), 0)

	require.NoError(t, store.Save(models.Settings{
		WebhookURL:     "http://example.com/hook",
		WebhookEnabled: true,
		Tolerance:      0.5,
	}))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/hook", settings.WebhookURL)
	assert.True(t, settings.WebhookEnabled)
	assert.Equal(t, 0.5, settings.Tolerance)
}

func TestSettingsSaveReplacesWholesale(t *testing.T) {
	store := NewSettingsStore(t.TempDir(), 0)

	require.NoError(t, store.Save(models.Settings{
		WebhookURL:     "http://example.com/hook",
		WebhookEnabled: true,
		Tolerance:      0.5,
	}))
	require.NoError(t, store.Save(models.Settings{Tolerance: 0.6}))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, settings.WebhookURL)
	assert.False(t, settings.WebhookEnabled)
	assert.Equal(t, 0.6, settings.Tolerance)
}

func TestSettingsToleranceCoercion(t *testing.T) {
	store := NewSettingsStore(t.TempDir(), 0)

	require.NoError(t, store.Save(models.Settings{Tolerance: -1}))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultTolerance, settings.Tolerance)
}
