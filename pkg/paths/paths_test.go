package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvCatalogOverridesDiscovery(t *testing.T) {
	t.Setenv(EnvCatalog, "/etc/keywarden/catalog.yaml")

	path, ok := DefaultCatalogPath()
	assert.True(t, ok)
	assert.Equal(t, "/etc/keywarden/catalog.yaml", path)
}

func TestConfigDirDiscovery(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvCatalog, "")
	t.Setenv(EnvConfigDir, dir)

	_, ok := DefaultCatalogPath()
	assert.False(t, ok, "empty config dir holds no catalog")

	catalog := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(catalog, []byte("[[settings]]"), 0644))

	path, ok := DefaultCatalogPath()
	assert.True(t, ok)
	assert.Equal(t, catalog, path)
}

func TestConfigDirPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvCatalog, "")
	t.Setenv(EnvConfigDir, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.toml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(""), 0644))

	path, ok := DefaultCatalogPath()
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "catalog.yaml"), path)
}
