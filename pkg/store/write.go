package store

import "github.com/keywarden/keywarden/pkg/codec"

// WriteResult describes what a conditional write did.
type WriteResult struct {
	// Changed is true when a write was issued.
	Changed bool
	// Existed is true when a value was already stored under the name
	// before the write (pre-deletion, when recreating).
	Existed bool
	// Previous holds the prior wire value when Existed is true.
	Previous codec.Value
}

// Write enforces a desired value under key\name, writing only when the
// stored value is missing or differs. Re-running with an unchanged desired
// value issues no write, so repeated applies cause no spurious change
// notifications.
//
// With recreate set, any existing value is deleted first. That allows type
// changes, since a store may refuse to mutate a value's type in place.
func Write(s Store, key, name string, desired codec.Value, recreate bool) (WriteResult, error) {
	res := WriteResult{}

	cur, ok, err := s.ReadValue(key, name)
	if err != nil {
		return res, err
	}
	res.Existed = ok
	res.Previous = cur

	if recreate && ok {
		if err := s.DeleteValue(key, name); err != nil {
			return res, err
		}
		ok = false
	}

	if ok && cur.Equal(desired) {
		return res, nil
	}

	if err := s.SetValue(key, name, desired); err != nil {
		return res, err
	}
	res.Changed = true
	return res, nil
}
