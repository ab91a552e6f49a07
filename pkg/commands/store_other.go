//go:build !windows

package commands

import (
	"github.com/keywarden/keywarden/pkg/errors"
	"github.com/keywarden/keywarden/pkg/store"
	"github.com/keywarden/keywarden/pkg/store/hivestore"
)

// openStore selects the backend. Off Windows only the offline hive-file
// backend is available.
func openStore(hivePath, hivePrefix string) (store.Store, error) {
	if hivePath == "" {
		return nil, errors.New(errors.ErrStoreUnavailable,
			"live registry enforcement requires Windows; use --hive to target a hive file")
	}
	return hivestore.Open(hivePath, hivestore.Options{Prefix: hivePrefix})
}
