package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	svc := NewConfigService()

	cfg := DefaultConfig()
	cfg.Map.Width = 7
	cfg.Input.CatchAll = false
	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Map.Width)
	assert.False(t, loaded.Input.CatchAll)
	assert.Equal(t, cfg.Items, loaded.Items)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n[map]\nwidth = 5\nheight = 4\n"), 0644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Map.Width)
	assert.True(t, cfg.Input.DeliveryGuard)
	assert.Equal(t, DefaultItems(), cfg.Items)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[map]\nwidth = 0\nheight = 4\n"), 0644))

	_, err := NewConfigService().LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map size")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidateDuplicateIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Items = append(cfg.Items, ItemConfig{ID: "cat", Label: "Another cat"})
	assert.Error(t, cfg.Validate())
}
