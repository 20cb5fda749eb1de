package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, 30, cfg.Telegram.PollTimeout)
	assert.Equal(t, 120.0, cfg.Report.ImageWidthMM)
	assert.Nil(t, cfg.Catalog)
	assert.NotEmpty(t, cfg.EffectiveCatalog().Inspectors)
	assert.Equal(t, filepath.Join(dir, "photos"), cfg.AssetsDir())
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "nope.yaml"), dir)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Telegram.PollTimeout)
}

func TestLoad_FileOverridesAndPartialDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
telegram:
  token: "123:abc"
report:
  font_path: /fonts/custom.ttf
catalog:
  inspectors:
    - id: ivanov
      name: P. Ivanov
  entities:
    - name: Test Fleet
      ships: [Chaika]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "/fonts/custom.ttf", cfg.Report.FontPath)
	// Unset values fall back to defaults.
	assert.Equal(t, 30, cfg.Telegram.PollTimeout)
	assert.Equal(t, 120.0, cfg.Report.ImageWidthMM)

	cat := cfg.EffectiveCatalog()
	require.Len(t, cat.Inspectors, 1)
	assert.Equal(t, "P. Ivanov", cat.InspectorName("ivanov"))
	assert.True(t, cat.HasShip("Test Fleet", "Chaika"))
}

func TestLoad_InvalidCatalogRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
catalog:
  inspectors:
    - id: ivanov
      name: P. Ivanov
  entities:
    - name: Test Fleet
      ships: []
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidate_DataDirMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plainfile")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = file
	assert.Error(t, cfg.Validate())

	cfg.DataDir = filepath.Join(dir, "not-yet-created")
	assert.NoError(t, cfg.Validate())
}
