// Package store abstracts a hierarchical key/value configuration store.
// Backends exist for the live Windows registry, offline hive files, and an
// in-memory store used by tests.
package store

import "github.com/keywarden/keywarden/pkg/codec"

// Store is a single configuration store. Paths use backslash-separated key
// components rooted at a hive name (e.g. `HKLM\SOFTWARE\Vendor\App`);
// lookups are case-insensitive, as in the registry itself.
//
// Implementations are not required to be safe for concurrent use; the apply
// loop is strictly sequential.
type Store interface {
	// EnsureKey creates the key and all missing ancestors. It reports
	// whether anything was created; an existing key is a no-op.
	EnsureKey(key string) (created bool, err error)

	// HasValue reports whether the key exists and holds a value with the
	// given name. A missing key is not an error, just false. An existing
	// value with empty data still reports true.
	HasValue(key, name string) (bool, error)

	// ReadValue returns the stored wire value. ok is false when the key or
	// value is absent; absence is never an error.
	ReadValue(key, name string) (v codec.Value, ok bool, err error)

	// SetValue writes the value unconditionally. The key must exist.
	SetValue(key, name string, v codec.Value) error

	// DeleteValue removes the named value, leaving the key and its other
	// members intact. Deleting an absent value is a no-op.
	DeleteValue(key, name string) error

	// Close flushes pending changes and releases resources.
	Close() error
}
