package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDirHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig(), cfg)

	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	assert.NoError(t, err, "default config should be written on first load")
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte(`{"catalog_path":"/tmp/channels.yaml"}`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/channels.yaml", cfg.CatalogPath)
	assert.Equal(t, DefaultVolume, cfg.DefaultVolume)
	assert.Equal(t, 0.05, cfg.VolumeStep)
}

func TestLoadConfigCorruptIsBackedUp(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{oops`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig(), cfg)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ConfigFileName+".corrupt.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "volume too high", mutate: func(c *Config) { c.DefaultVolume = 1.5 }, wantErr: true},
		{name: "negative volume", mutate: func(c *Config) { c.DefaultVolume = -0.1 }, wantErr: true},
		{name: "zero step", mutate: func(c *Config) { c.VolumeStep = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"default_volume":3}`), 0644))

	assert.Equal(t, DefaultConfig(), LoadConfig())
}
