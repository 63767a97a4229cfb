package sqlsanitize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesSpecDefault(t *testing.T) {
	assert.Equal(t, 1000, DefaultConfig().Capacity)
}

func TestLoadConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlsanitize.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 42\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Capacity)
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlsanitize.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 42\n"), 0o600))

	t.Setenv("SQLSANITIZE_CACHE_CAPACITY", "99")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Capacity)
}

func TestLoadConfigNoPathUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("SQLSANITIZE_CACHE_CAPACITY", "7")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Capacity)
}

func TestLoadConfigRejectsNonPositiveCapacity(t *testing.T) {
	t.Setenv("SQLSANITIZE_CACHE_CAPACITY", "0")
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errNonPositiveCapacity)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
