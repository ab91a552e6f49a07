// Package memstore provides an in-memory Store used by tests and dry-run
// experiments. It mirrors registry semantics: case-insensitive lookups,
// hierarchical keys, and strict "key must exist before a value write".
package memstore

import (
	"strings"

	"github.com/keywarden/keywarden/pkg/codec"
	"github.com/keywarden/keywarden/pkg/errors"
)

type valueEntry struct {
	name string // original casing, kept for introspection
	val  codec.Value
}

// Store is an in-memory key/value tree. The zero value is not usable;
// construct with New.
type Store struct {
	keys   map[string]map[string]valueEntry // lower(key) -> lower(name) -> entry
	writes int
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{keys: make(map[string]map[string]valueEntry)}
}

func normalize(key string) string {
	return strings.ToLower(strings.Trim(key, `\`))
}

// EnsureKey creates the key and every missing ancestor.
func (s *Store) EnsureKey(key string) (bool, error) {
	norm := normalize(key)
	if norm == "" {
		return false, errors.New(errors.ErrKeyCreate, "empty key path")
	}

	created := false
	parts := strings.Split(norm, `\`)
	for i := range parts {
		ancestor := strings.Join(parts[:i+1], `\`)
		if _, ok := s.keys[ancestor]; !ok {
			s.keys[ancestor] = make(map[string]valueEntry)
			created = true
		}
	}
	return created, nil
}

// HasKey reports whether the key itself exists. Not part of the Store
// interface; tests use it to verify ancestor auto-creation.
func (s *Store) HasKey(key string) bool {
	_, ok := s.keys[normalize(key)]
	return ok
}

// HasValue reports whether the key exists and holds the named value.
func (s *Store) HasValue(key, name string) (bool, error) {
	vals, ok := s.keys[normalize(key)]
	if !ok {
		return false, nil
	}
	_, ok = vals[strings.ToLower(name)]
	return ok, nil
}

// ReadValue returns the stored value, or ok=false when absent.
func (s *Store) ReadValue(key, name string) (codec.Value, bool, error) {
	vals, ok := s.keys[normalize(key)]
	if !ok {
		return codec.Value{}, false, nil
	}
	entry, ok := vals[strings.ToLower(name)]
	if !ok {
		return codec.Value{}, false, nil
	}
	return entry.val, true, nil
}

// SetValue writes the value. The key must already exist.
func (s *Store) SetValue(key, name string, v codec.Value) error {
	vals, ok := s.keys[normalize(key)]
	if !ok {
		return errors.Newf(errors.ErrKeyNotFound, "key %s does not exist", key)
	}
	vals[strings.ToLower(name)] = valueEntry{name: name, val: v}
	s.writes++
	return nil
}

// DeleteValue removes the named value; absent values are a no-op.
func (s *Store) DeleteValue(key, name string) error {
	vals, ok := s.keys[normalize(key)]
	if !ok {
		return nil
	}
	delete(vals, strings.ToLower(name))
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// Writes returns the number of value writes issued since construction.
// Tests use it to assert that a second apply pass stays write-free.
func (s *Store) Writes() int { return s.writes }
