// Package settings defines the declarative catalog of desired registry
// state: which values must exist (and with what data), and which must not.
package settings

import (
	"strings"

	"github.com/keywarden/keywarden/pkg/errors"
)

// Presence declares whether a catalog entry asserts a value should exist
// (Present) or must not exist (Absent).
type Presence int

const (
	Present Presence = iota
	Absent
)

// String implements the Stringer interface for Presence
func (p Presence) String() string {
	switch p {
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "invalid"
	}
}

// ParsePresence parses a presence string as used in catalog files.
// An empty string defaults to Present.
func ParsePresence(s string) (Presence, error) {
	switch strings.ToLower(s) {
	case "", "present":
		return Present, nil
	case "absent":
		return Absent, nil
	default:
		return Present, errors.Newf(errors.ErrInvalidInput, "unrecognized presence %q", s)
	}
}

// Kind is the semantic type of a desired value.
type Kind int

const (
	KindString Kind = iota
	KindExpandString
	KindBinary
	KindDWord
	KindQWord
	KindMultiString
)

// String implements the Stringer interface for Kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "sz"
	case KindExpandString:
		return "expand_sz"
	case KindBinary:
		return "binary"
	case KindDWord:
		return "dword"
	case KindQWord:
		return "qword"
	case KindMultiString:
		return "multi_sz"
	default:
		return "invalid"
	}
}

// ParseKind parses a value-kind string as used in catalog files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "sz", "string", "reg_sz":
		return KindString, nil
	case "expand_sz", "expand_string", "reg_expand_sz":
		return KindExpandString, nil
	case "binary", "reg_binary":
		return KindBinary, nil
	case "dword", "reg_dword":
		return KindDWord, nil
	case "qword", "reg_qword":
		return KindQWord, nil
	case "multi_sz", "multi_string", "reg_multi_sz":
		return KindMultiString, nil
	default:
		return KindString, errors.Newf(errors.ErrUnsupportedKind, "unrecognized value kind %q", s)
	}
}

// Value is a desired value payload tagged with its kind. The set of
// implementations is closed: one concrete type per registry value kind,
// so a payload can never disagree with its declared kind.
type Value interface {
	Kind() Kind
}

type (
	// String is a REG_SZ payload.
	String string
	// ExpandString is a REG_EXPAND_SZ payload (environment references
	// expanded by consumers, not by keywarden).
	ExpandString string
	// Binary is a raw REG_BINARY payload.
	Binary []byte
	// DWord is a 32-bit REG_DWORD payload.
	DWord uint32
	// QWord is a 64-bit REG_QWORD payload.
	QWord uint64
	// MultiString is an ordered REG_MULTI_SZ payload.
	MultiString []string
)

func (String) Kind() Kind { return KindString }

func (ExpandString) Kind() Kind { return KindExpandString }

func (Binary) Kind() Kind { return KindBinary }

func (DWord) Kind() Kind { return KindDWord }

func (QWord) Kind() Kind { return KindQWord }

func (MultiString) Kind() Kind { return KindMultiString }

// Setting is a single immutable catalog entry: a named value under a key
// path that must be present with the given payload, or absent.
type Setting struct {
	// Ensure declares the desired presence of the value.
	Ensure Presence
	// Key is the full key path, including the root (e.g.
	// `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System`).
	Key string
	// Name identifies the value within the key.
	Name string
	// Value is the desired payload. Nil for Absent entries.
	Value Value
}

// Validate checks the entry's internal consistency.
func (s Setting) Validate() error {
	if s.Key == "" {
		return errors.New(errors.ErrCatalogInvalid, "setting has empty key path")
	}
	switch s.Ensure {
	case Present:
		if s.Value == nil {
			return errors.Newf(errors.ErrCatalogInvalid,
				"present setting %s\\%s has no value", s.Key, s.Name)
		}
	case Absent:
		if s.Value != nil {
			return errors.Newf(errors.ErrCatalogInvalid,
				"absent setting %s\\%s must not carry a value", s.Key, s.Name)
		}
	default:
		return errors.Newf(errors.ErrCatalogInvalid,
			"setting %s\\%s has unrecognized presence %d", s.Key, s.Name, int(s.Ensure))
	}
	return nil
}

// Catalog is an ordered list of desired settings. Entries are enforced
// strictly in catalog order.
type Catalog []Setting

// Validate checks every entry, reporting the first invalid one.
func (c Catalog) Validate() error {
	for i, s := range c {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, errors.ErrCatalogInvalid, "entry %d", i)
		}
	}
	return nil
}
