package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point the config file lookup at a path that does not exist so only
	// envconfig defaults apply.
	t.Setenv("LOMA_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "datasets", cfg.Paths.DataDir)
	assert.Equal(t, "combined_holiday_properties.csv", cfg.Paths.DatasetFile)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LOMA_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOMA_SERVER_PORT", "9090")
	t.Setenv("LOMA_PATHS_DATA_DIR", "/srv/data")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/data", cfg.Paths.DataDir)
	assert.Equal(t, filepath.Join("/srv/data", "combined_holiday_properties.csv"), cfg.GetDatasetPath())
	assert.Equal(t, filepath.Join("/srv/data", "kunta_maakunta_mapping.csv"), cfg.GetMappingPath())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 3000\npaths:\n  data_dir: /tmp/lomadata\n")
	require.NoError(t, os.WriteFile(configPath, content, 0644))

	t.Setenv("LOMA_CONFIG_FILE", configPath)
	// Env must still win over the file.
	t.Setenv("LOMA_PATHS_DATA_DIR", "/srv/override")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "/srv/override", cfg.Paths.DataDir)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("LOMA_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOMA_SERVER_PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.csv")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir))
}
