// Package hivestore implements the Store interface over an offline Windows
// registry hive file. Reads go through hivekit's reader; mutations are
// expressed as .reg fragments and merged into the file in place via
// hivekit's merge API, which writes atomically (temp + rename). It lets
// keywarden enforce settings on mounted images, VM disks, or test fixtures
// from any OS.
package hivestore

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/joshuapare/hivekit/pkg/hive"
	"github.com/joshuapare/hivekit/pkg/types"

	"github.com/keywarden/keywarden/pkg/codec"
	"github.com/keywarden/keywarden/pkg/errors"
	"github.com/keywarden/keywarden/pkg/store"
)

// regHeader is the mandatory first line of a .reg document.
const regHeader = "Windows Registry Editor Version 5.00"

// Options controls how catalog key paths map onto the hive.
type Options struct {
	// Prefix is stripped (case-insensitively) from the front of every key
	// path after the root name, for catalogs written against the mounted
	// location (e.g. "SOFTWARE" when enforcing HKLM\SOFTWARE\... settings
	// onto a SOFTWARE hive file).
	Prefix string
}

// Store enforces values against a single hive file. Each mutation merges a
// .reg fragment into the file and reopens the reader over the new image, so
// a run that changes nothing never touches the file.
type Store struct {
	path   string
	opts   Options
	reader types.Reader
	closed bool
}

var _ store.Store = (*Store)(nil)

// Open loads the hive file at path. The file must exist: the .reg merge
// API modifies hives in place and cannot materialize one from nothing.
func Open(path string, opts Options) (*Store, error) {
	s := &Store{path: path, opts: opts}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreUnavailable, "cannot open hive %s", path)
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload reopens the reader over the file's current bytes. The bytes are
// read into memory so no handle stays open across merges.
func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to read hive %s", s.path)
	}
	if s.reader != nil {
		_ = s.reader.Close()
		s.reader = nil
	}
	r, err := hive.OpenBytes(data, hive.OpenOptions{})
	if err != nil {
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to open hive %s", s.path)
	}
	s.reader = r
	return nil
}

// rel maps a catalog key path to a path relative to the hive root: the
// root name (HKLM etc.) and the configured prefix are stripped.
func (s *Store) rel(key string) string {
	_, rest, _ := store.SplitRoot(key)
	if s.opts.Prefix != "" {
		prefix := strings.Trim(s.opts.Prefix, `\`)
		if strings.EqualFold(rest, prefix) {
			return ""
		}
		if len(rest) > len(prefix) && strings.EqualFold(rest[:len(prefix)], prefix) && rest[len(prefix)] == '\\' {
			return rest[len(prefix)+1:]
		}
	}
	return rest
}

func isNotFound(err error) bool {
	if stderrors.Is(err, types.ErrNotFound) {
		return true
	}
	var typed *types.Error
	return stderrors.As(err, &typed) && typed.Kind == types.ErrKindNotFound
}

// merge applies a .reg fragment to the hive file and reopens the reader
// over the committed image.
func (s *Store) merge(fragment string) error {
	doc := regHeader + "\r\n\r\n" + fragment
	if err := hive.MergeRegString(s.path, doc, nil); err != nil {
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to merge into hive %s", s.path)
	}
	return s.reload()
}

// section renders the .reg section header for a hive-relative key path.
// The merge layer strips the root name again, so a trailing backslash on a
// bare root maps to the hive's root key.
func section(rel string) string {
	return `[HKEY_LOCAL_MACHINE\` + rel + "]"
}

// EnsureKey creates the key and all missing ancestors.
func (s *Store) EnsureKey(key string) (bool, error) {
	rel := s.rel(key)
	if rel == "" {
		return false, nil // the root always exists
	}
	if _, err := s.reader.Find(rel); err == nil {
		return false, nil
	} else if !isNotFound(err) {
		return false, errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to look up key %s", key)
	}

	if err := s.merge(section(rel) + "\r\n"); err != nil {
		return false, errors.Wrapf(err, errors.ErrKeyCreate, "failed to create key %s", key)
	}
	return true, nil
}

// HasValue reports whether the key exists and holds the named value.
func (s *Store) HasValue(key, name string) (bool, error) {
	_, ok, err := s.lookupValue(key, name)
	return ok, err
}

// ReadValue returns the stored wire value, or ok=false when absent.
func (s *Store) ReadValue(key, name string) (codec.Value, bool, error) {
	vid, ok, err := s.lookupValue(key, name)
	if err != nil || !ok {
		return codec.Value{}, false, err
	}

	meta, err := s.reader.StatValue(vid)
	if err != nil {
		return codec.Value{}, false, errors.Wrapf(err, errors.ErrValueRead, "failed to stat value %s\\%s", key, name)
	}
	data, err := s.reader.ValueBytes(vid, types.ReadOptions{CopyData: true})
	if err != nil {
		return codec.Value{}, false, errors.Wrapf(err, errors.ErrValueRead, "failed to read value %s\\%s", key, name)
	}
	return codec.Value{Type: meta.Type, Data: data}, true, nil
}

func (s *Store) lookupValue(key, name string) (types.ValueID, bool, error) {
	rel := s.rel(key)
	var node types.NodeID
	var err error
	if rel == "" {
		node, err = s.reader.Root()
	} else {
		node, err = s.reader.Find(rel)
	}
	if err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to look up key %s", key)
	}

	vid, err := s.reader.GetValue(node, name)
	if err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrapf(err, errors.ErrValueRead, "failed to look up value %s\\%s", key, name)
	}
	return vid, true, nil
}

// SetValue writes the value unconditionally. The key must exist.
func (s *Store) SetValue(key, name string, v codec.Value) error {
	rel := s.rel(key)
	if rel != "" {
		if _, err := s.reader.Find(rel); err != nil {
			if isNotFound(err) {
				return errors.Newf(errors.ErrKeyNotFound, "key %s does not exist", key)
			}
			return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to look up key %s", key)
		}
	}

	line, err := valueLine(name, v)
	if err != nil {
		return err
	}
	if err := s.merge(section(rel) + "\r\n" + line + "\r\n"); err != nil {
		return errors.Wrapf(err, errors.ErrValueWrite, "failed to set value %s\\%s", key, name)
	}
	return nil
}

// DeleteValue removes the named value; absent values are a no-op.
func (s *Store) DeleteValue(key, name string) error {
	ok, err := s.HasValue(key, name)
	if err != nil || !ok {
		return err
	}
	rel := s.rel(key)
	line := valueName(name) + "=-"
	if err := s.merge(section(rel) + "\r\n" + line + "\r\n"); err != nil {
		return errors.Wrapf(err, errors.ErrValueDelete, "failed to delete value %s\\%s", key, name)
	}
	return nil
}

// Close releases the reader. Mutations are already durable: every merge
// rewrote the file atomically, so an untouched store leaves no trace.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.reader != nil {
		_ = s.reader.Close()
		s.reader = nil
	}
	return nil
}

// valueLine renders one .reg value assignment for a wire value. Strings go
// through the quoted syntax, everything else through the typed hex forms
// the merge parser understands. REG_QWORD has no .reg representation that
// survives a merge with its type tag intact, so it is rejected here rather
// than silently stored as REG_BINARY.
func valueLine(name string, v codec.Value) (string, error) {
	payload, err := valuePayload(v)
	if err != nil {
		return "", err
	}
	return valueName(name) + "=" + payload, nil
}

// valueName renders the value-name side: quoted, or @ for the default value.
func valueName(name string) string {
	if name == "" {
		return "@"
	}
	return `"` + escapeRegString(name) + `"`
}

func valuePayload(v codec.Value) (string, error) {
	switch v.Type {
	case types.REG_SZ:
		str, err := codec.DecodeString(v)
		if err != nil {
			return "", err
		}
		if strings.ContainsAny(str, "\r\n") {
			return "", errors.Newf(errors.ErrValueWrite, "string value with line breaks cannot be merged into a hive")
		}
		return `"` + escapeRegString(str) + `"`, nil
	case types.REG_EXPAND_SZ:
		return "hex(2):" + formatHexBytes(v.Data), nil
	case types.REG_MULTI_SZ:
		return "hex(7):" + formatHexBytes(v.Data), nil
	case types.REG_BINARY:
		return "hex:" + formatHexBytes(v.Data), nil
	case types.REG_DWORD:
		n, err := codec.DecodeDWord(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("dword:%08x", n), nil
	case types.REG_QWORD:
		return "", errors.New(errors.ErrUnsupportedKind,
			"REG_QWORD is not representable in the .reg merge format; use the live registry for qword settings")
	default:
		return "", errors.Newf(errors.ErrUnsupportedKind, "cannot write value type %s to a hive file", v.Type)
	}
}

// escapeRegString escapes the two characters the .reg quoted syntax treats
// specially, matching the merge parser's unescaping.
func escapeRegString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// formatHexBytes renders hex bytes the way .reg files carry them:
// comma-separated two-digit pairs.
func formatHexBytes(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ",")
}
