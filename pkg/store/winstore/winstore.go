//go:build windows

// Package winstore implements the Store interface over the live Windows
// registry. Each operation opens the target key, acts, and closes it; the
// registry's own per-call atomicity is the only locking.
package winstore

import (
	stderrors "errors"

	"github.com/joshuapare/hivekit/pkg/types"
	"golang.org/x/sys/windows/registry"

	"github.com/keywarden/keywarden/pkg/codec"
	"github.com/keywarden/keywarden/pkg/errors"
	"github.com/keywarden/keywarden/pkg/store"
)

// Store enforces values against the live registry of the local machine.
type Store struct{}

var _ store.Store = (*Store)(nil)

// Open returns a live-registry store. It performs no privilege checks;
// insufficient rights surface as STORE_UNAVAILABLE on first use.
func Open() *Store { return &Store{} }

var roots = map[string]registry.Key{
	"HKLM": registry.LOCAL_MACHINE,
	"HKCU": registry.CURRENT_USER,
	"HKU":  registry.USERS,
	"HKCR": registry.CLASSES_ROOT,
	"HKCC": registry.CURRENT_CONFIG,
}

func splitKey(key string) (registry.Key, string, error) {
	root, rest, ok := store.SplitRoot(key)
	if !ok {
		return 0, "", errors.Newf(errors.ErrInvalidInput, "key %q has no recognized registry root", key)
	}
	return roots[root], rest, nil
}

// EnsureKey creates the key and all missing ancestors.
func (s *Store) EnsureKey(key string) (bool, error) {
	root, rest, err := splitKey(key)
	if err != nil {
		return false, err
	}
	k, openedExisting, err := registry.CreateKey(root, rest, registry.CREATE_SUB_KEY)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrKeyCreate, "failed to create key %s", key)
	}
	_ = k.Close()
	return !openedExisting, nil
}

// HasValue reports whether the key exists and holds the named value.
func (s *Store) HasValue(key, name string) (bool, error) {
	_, _, ok, err := s.read(key, name)
	return ok, err
}

// ReadValue returns the stored wire value, or ok=false when absent.
func (s *Store) ReadValue(key, name string) (codec.Value, bool, error) {
	data, typ, ok, err := s.read(key, name)
	if err != nil || !ok {
		return codec.Value{}, false, err
	}
	return codec.Value{Type: types.RegType(typ), Data: data}, true, nil
}

// read fetches raw bytes and the native type tag; ok=false when the key or
// value is missing.
func (s *Store) read(key, name string) ([]byte, uint32, bool, error) {
	root, rest, err := splitKey(key)
	if err != nil {
		return nil, 0, false, err
	}
	k, err := registry.OpenKey(root, rest, registry.QUERY_VALUE)
	if err != nil {
		if stderrors.Is(err, registry.ErrNotExist) {
			return nil, 0, false, nil
		}
		return nil, 0, false, errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to open key %s", key)
	}
	defer k.Close()

	n, typ, err := k.GetValue(name, nil)
	if err != nil && !stderrors.Is(err, registry.ErrShortBuffer) {
		if stderrors.Is(err, registry.ErrNotExist) {
			return nil, 0, false, nil
		}
		return nil, 0, false, errors.Wrapf(err, errors.ErrValueRead, "failed to read value %s\\%s", key, name)
	}

	buf := make([]byte, n)
	n, typ, err = k.GetValue(name, buf)
	if err != nil {
		return nil, 0, false, errors.Wrapf(err, errors.ErrValueRead, "failed to read value %s\\%s", key, name)
	}
	return buf[:n], typ, true, nil
}

// SetValue writes the value unconditionally. The key must exist.
func (s *Store) SetValue(key, name string, v codec.Value) error {
	root, rest, err := splitKey(key)
	if err != nil {
		return err
	}
	k, err := registry.OpenKey(root, rest, registry.SET_VALUE)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to open key %s for writing", key)
	}
	defer k.Close()

	switch v.Type {
	case types.REG_SZ:
		str, err := codec.DecodeString(v)
		if err != nil {
			return err
		}
		return wrapWrite(k.SetStringValue(name, str), key, name)
	case types.REG_EXPAND_SZ:
		str, err := codec.DecodeString(v)
		if err != nil {
			return err
		}
		return wrapWrite(k.SetExpandStringValue(name, str), key, name)
	case types.REG_BINARY:
		return wrapWrite(k.SetBinaryValue(name, v.Data), key, name)
	case types.REG_DWORD:
		n, err := codec.DecodeDWord(v)
		if err != nil {
			return err
		}
		return wrapWrite(k.SetDWordValue(name, n), key, name)
	case types.REG_QWORD:
		n, err := codec.DecodeQWord(v)
		if err != nil {
			return err
		}
		return wrapWrite(k.SetQWordValue(name, n), key, name)
	case types.REG_MULTI_SZ:
		list, err := codec.DecodeStrings(v)
		if err != nil {
			return err
		}
		return wrapWrite(k.SetStringsValue(name, list), key, name)
	default:
		return errors.Newf(errors.ErrUnsupportedKind, "cannot write value type %s", v.Type)
	}
}

func wrapWrite(err error, key, name string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, errors.ErrValueWrite, "failed to set value %s\\%s", key, name)
}

// DeleteValue removes the named value; absent values are a no-op.
func (s *Store) DeleteValue(key, name string) error {
	root, rest, err := splitKey(key)
	if err != nil {
		return err
	}
	k, err := registry.OpenKey(root, rest, registry.SET_VALUE)
	if err != nil {
		if stderrors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to open key %s for writing", key)
	}
	defer k.Close()

	if err := k.DeleteValue(name); err != nil && !stderrors.Is(err, registry.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrValueDelete, "failed to delete value %s\\%s", key, name)
	}
	return nil
}

// Close is a no-op; keys are opened and closed per operation.
func (s *Store) Close() error { return nil }
