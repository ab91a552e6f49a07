//go:build windows

package commands

import (
	"github.com/keywarden/keywarden/pkg/store"
	"github.com/keywarden/keywarden/pkg/store/hivestore"
	"github.com/keywarden/keywarden/pkg/store/winstore"
)

// openStore selects the backend: an offline hive file when a path is given,
// otherwise the live registry.
func openStore(hivePath, hivePrefix string) (store.Store, error) {
	if hivePath != "" {
		return hivestore.Open(hivePath, hivestore.Options{Prefix: hivePrefix})
	}
	return winstore.Open(), nil
}
