// Package codec maps catalog value kinds to the registry wire form: a
// native type tag plus the little-endian byte payload the store holds
// (UTF-16LE strings, LE integers, double-NUL-terminated string lists).
// Comparing encoded values byte-for-byte is what makes the apply loop
// idempotent across backends.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/joshuapare/hivekit/pkg/types"

	"github.com/keywarden/keywarden/pkg/errors"
	"github.com/keywarden/keywarden/pkg/settings"
)

// Value is a registry value in wire form: the native type tag plus the
// exact bytes stored under it.
type Value struct {
	Type types.RegType
	Data []byte
}

// Encode converts a catalog value into wire form. The kind mapping is
// exhaustive over the closed settings.Value union; a nil value is a
// caller contract violation.
func Encode(v settings.Value) (Value, error) {
	switch val := v.(type) {
	case settings.String:
		return Value{Type: types.REG_SZ, Data: encodeUTF16LE(string(val))}, nil
	case settings.ExpandString:
		return Value{Type: types.REG_EXPAND_SZ, Data: encodeUTF16LE(string(val))}, nil
	case settings.Binary:
		return Value{Type: types.REG_BINARY, Data: append([]byte(nil), val...)}, nil
	case settings.DWord:
		data := make([]byte, 4)
		binary.LittleEndian.PutUint32(data, uint32(val))
		return Value{Type: types.REG_DWORD, Data: data}, nil
	case settings.QWord:
		data := make([]byte, 8)
		binary.LittleEndian.PutUint64(data, uint64(val))
		return Value{Type: types.REG_QWORD, Data: data}, nil
	case settings.MultiString:
		return Value{Type: types.REG_MULTI_SZ, Data: encodeMultiUTF16LE(val)}, nil
	case nil:
		return Value{}, errors.New(errors.ErrTypeMismatch, "cannot encode nil value")
	default:
		return Value{}, errors.Newf(errors.ErrUnsupportedKind, "cannot encode value kind %s", v.Kind())
	}
}

// Equal reports whether two wire values match in both type tag and payload.
func (v Value) Equal(o Value) bool {
	return v.Type == o.Type && bytes.Equal(v.Data, o.Data)
}

// String renders a short human-readable form for trace output.
func (v Value) String() string {
	switch v.Type {
	case types.REG_SZ, types.REG_EXPAND_SZ:
		s, err := DecodeString(v)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s %q", v.Type, s)
	case types.REG_DWORD:
		n, err := DecodeDWord(v)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s %d", v.Type, n)
	case types.REG_QWORD:
		n, err := DecodeQWord(v)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s %d", v.Type, n)
	case types.REG_MULTI_SZ:
		list, err := DecodeStrings(v)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s [%s]", v.Type, strings.Join(list, ", "))
	}
	return fmt.Sprintf("%s % x", v.Type, v.Data)
}

// DecodeString decodes a REG_SZ or REG_EXPAND_SZ payload.
func DecodeString(v Value) (string, error) {
	if v.Type != types.REG_SZ && v.Type != types.REG_EXPAND_SZ {
		return "", errors.Newf(errors.ErrTypeMismatch, "cannot decode %s as string", v.Type)
	}
	return decodeUTF16LE(v.Data), nil
}

// DecodeStrings decodes a REG_MULTI_SZ payload.
func DecodeStrings(v Value) ([]string, error) {
	if v.Type != types.REG_MULTI_SZ {
		return nil, errors.Newf(errors.ErrTypeMismatch, "cannot decode %s as string list", v.Type)
	}
	full := decodeUTF16LE(v.Data)
	if full == "" {
		return nil, nil
	}
	return strings.Split(full, "\x00"), nil
}

// DecodeDWord decodes a REG_DWORD payload.
func DecodeDWord(v Value) (uint32, error) {
	if v.Type != types.REG_DWORD || len(v.Data) != 4 {
		return 0, errors.Newf(errors.ErrTypeMismatch, "cannot decode %s (%d bytes) as dword", v.Type, len(v.Data))
	}
	return binary.LittleEndian.Uint32(v.Data), nil
}

// DecodeQWord decodes a REG_QWORD payload.
func DecodeQWord(v Value) (uint64, error) {
	if v.Type != types.REG_QWORD || len(v.Data) != 8 {
		return 0, errors.Newf(errors.ErrTypeMismatch, "cannot decode %s (%d bytes) as qword", v.Type, len(v.Data))
	}
	return binary.LittleEndian.Uint64(v.Data), nil
}

// encodeUTF16LE converts a UTF-8 string to UTF-16LE with a NUL terminator.
func encodeUTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, (len(units)+1)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return buf
}

// encodeMultiUTF16LE converts a string list to the REG_MULTI_SZ layout:
// each element NUL-terminated, with a final empty element closing the list.
func encodeMultiUTF16LE(list []string) []byte {
	var buf []byte
	for _, s := range list {
		buf = append(buf, encodeUTF16LE(s)...)
	}
	return append(buf, 0, 0)
}

// decodeUTF16LE converts UTF-16LE bytes to a UTF-8 string, dropping any
// trailing NUL terminators.
func decodeUTF16LE(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, binary.LittleEndian.Uint16(b[i:]))
	}
	for len(units) > 0 && units[len(units)-1] == 0 {
		units = units[:len(units)-1]
	}
	return string(utf16.Decode(units))
}
