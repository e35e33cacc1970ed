package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/cutrelease/internal/model"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "master", cfg.Trunk)
	assert.Equal(t, "dev", cfg.Development)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "custom_components", cfg.Manifest.Root)
	assert.Equal(t, "manifest.json", cfg.Manifest.File)
	assert.False(t, cfg.AnnotateTags)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestLoad_PartialOverride verifies keys absent from the file keep defaults.
func TestLoad_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
trunk: main
annotateTags: true
manifest:
  root: src
`)

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.Trunk)
	assert.Equal(t, "dev", cfg.Development)
	assert.True(t, cfg.AnnotateTags)
	assert.Equal(t, "src", cfg.Manifest.Root)
	assert.Equal(t, "manifest.json", cfg.Manifest.File)

	c := cfg.Classifier()
	assert.Equal(t, "main", c.Trunk)
	assert.Equal(t, "dev", c.Development)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "release.yml")
	require.NoError(t, os.WriteFile(path, []byte("remote: upstream\n"), 0644))

	cfg, err := Load(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, "upstream", cfg.Remote)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "trunk: [master"},
		{"same trunk and development", "trunk: dev\ndevelopment: dev\n"},
		{"empty remote", "remote: \"\"\n"},
		{"manifest file with directory", "manifest:\n  file: sub/manifest.json\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir, "")
			assert.Error(t, err)
		})
	}
}

func TestManifestRoot(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/repo", "custom_components"), cfg.ManifestRoot("/repo"))

	abs := filepath.Join(t.TempDir(), "components")
	cfg.Manifest.Root = abs
	assert.Equal(t, abs, cfg.ManifestRoot("/repo"))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil))
	err := Wrap(assert.AnError)
	assert.Equal(t, model.ExitGeneralError, model.ExitCodeOf(err))
}
