package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultFallbackURL, cfg.FallbackURL)
	assert.Empty(t, cfg.APIKey)

	// The default file should now exist on disk.
	_, err = os.Stat(GetConfigFilePath())
	assert.NoError(t, err)
}

func TestSetAPIKeyPersists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.NoError(t, SetAPIKey("test-api-key"))

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "test-api-key", cfg.APIKey)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
}

func TestLoadConfigFillsMissingEndpoints(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "battlemancer")
	assert.NoError(t, os.MkdirAll(dir, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("api_key = \"abc\"\n"), 0644))

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultFallbackURL, cfg.FallbackURL)
}
