// Package paths resolves keywarden's file locations. Catalog discovery
// follows the XDG Base Directory specification, with environment variable
// overrides for non-standard setups.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvCatalog points at a settings catalog file, overriding discovery.
	EnvCatalog = "KEYWARDEN_CATALOG"

	// EnvConfigDir overrides the XDG config directory for keywarden.
	EnvConfigDir = "KEYWARDEN_CONFIG_DIR"
)

// AppDirName is the directory name for keywarden-specific files under the
// XDG base directories.
const AppDirName = "keywarden"

// catalogNames lists the file names probed during catalog discovery, in
// preference order.
var catalogNames = []string{"catalog.yaml", "catalog.yml", "catalog.toml"}

// DefaultCatalogPath locates the user's settings catalog. Resolution order:
// the KEYWARDEN_CATALOG environment variable, then catalog.{yaml,yml,toml}
// under the keywarden config directory. ok is false when no catalog exists,
// in which case callers fall back to the built-in baseline.
func DefaultCatalogPath() (string, bool) {
	if path := os.Getenv(EnvCatalog); path != "" {
		return path, true
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		for _, name := range catalogNames {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, true
			}
		}
		return "", false
	}

	for _, name := range catalogNames {
		if path, err := xdg.SearchConfigFile(filepath.Join(AppDirName, name)); err == nil {
			return path, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
