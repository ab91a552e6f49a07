package settings

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/keywarden/keywarden/pkg/errors"
)

// rawSetting is the on-disk shape of a catalog entry before kind-aware
// conversion. Data stays untyped here because its expected type depends
// on the declared kind.
type rawSetting struct {
	Ensure string      `koanf:"ensure"`
	Key    string      `koanf:"key"`
	Name   string      `koanf:"name"`
	Type   string      `koanf:"type"`
	Data   interface{} `koanf:"data"`
}

// Load reads a catalog file (YAML or TOML, selected by extension) and
// returns the validated catalog.
//
// Example YAML:
//
//	settings:
//	  - key: 'HKLM\SOFTWARE\Vendor\App'
//	    name: Flag
//	    type: dword
//	    data: 1
//	  - ensure: absent
//	    key: 'HKLM\SOFTWARE\Vendor\App'
//	    name: LegacyFlag
func Load(path string) (Catalog, error) {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, errors.Newf(errors.ErrCatalogLoad, "unsupported catalog format %q", filepath.Ext(path))
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "failed to load catalog from %s", path)
	}

	var raw struct {
		Settings []rawSetting `koanf:"settings"`
	}
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogParse, "failed to parse catalog from %s", path)
	}
	if len(raw.Settings) == 0 {
		return nil, errors.Newf(errors.ErrCatalogInvalid, "catalog %s contains no settings", path)
	}

	catalog := make(Catalog, 0, len(raw.Settings))
	for i, rs := range raw.Settings {
		s, err := rs.toSetting()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrCatalogParse, "entry %d", i)
		}
		catalog = append(catalog, s)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (rs rawSetting) toSetting() (Setting, error) {
	ensure, err := ParsePresence(rs.Ensure)
	if err != nil {
		return Setting{}, err
	}

	s := Setting{Ensure: ensure, Key: rs.Key, Name: rs.Name}
	if ensure == Absent {
		return s, nil
	}

	// Present entries default to a plain string when no type is declared.
	kindStr := rs.Type
	if kindStr == "" {
		kindStr = "sz"
	}
	kind, err := ParseKind(kindStr)
	if err != nil {
		return Setting{}, err
	}

	s.Value, err = coerceValue(kind, rs.Data)
	if err != nil {
		return Setting{}, err
	}
	return s, nil
}

// coerceValue converts the untyped parsed payload into the concrete value
// type for the declared kind.
func coerceValue(kind Kind, data interface{}) (Value, error) {
	if data == nil {
		return nil, errors.New(errors.ErrCatalogInvalid, "present setting has no data")
	}

	switch kind {
	case KindString:
		s, err := toString(data)
		return String(s), err
	case KindExpandString:
		s, err := toString(data)
		return ExpandString(s), err
	case KindBinary:
		s, err := toString(data)
		if err != nil {
			return nil, err
		}
		b, err := parseHexString(s)
		if err != nil {
			return nil, err
		}
		return Binary(b), nil
	case KindDWord:
		n, err := toUint(data, 32)
		return DWord(n), err
	case KindQWord:
		n, err := toUint(data, 64)
		return QWord(n), err
	case KindMultiString:
		list, ok := data.([]interface{})
		if !ok {
			return nil, errors.Newf(errors.ErrTypeMismatch, "multi_sz data must be a list, got %T", data)
		}
		out := make(MultiString, 0, len(list))
		for _, item := range list {
			s, err := toString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrUnsupportedKind, "unrecognized value kind %d", int(kind))
	}
}

func toString(data interface{}) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprintf("%v", v), nil
	default:
		return "", errors.Newf(errors.ErrTypeMismatch, "expected string data, got %T", data)
	}
}

// toUint accepts the integer shapes the YAML and TOML parsers produce, plus
// decimal/hex strings ("255", "0xff").
func toUint(data interface{}, bits int) (uint64, error) {
	var n uint64
	switch v := data.(type) {
	case int:
		if v < 0 {
			return 0, errors.Newf(errors.ErrTypeMismatch, "integer data must not be negative, got %d", v)
		}
		n = uint64(v)
	case int64:
		if v < 0 {
			return 0, errors.Newf(errors.ErrTypeMismatch, "integer data must not be negative, got %d", v)
		}
		n = uint64(v)
	case uint64:
		n = v
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, errors.Newf(errors.ErrTypeMismatch, "integer data must be a non-negative whole number, got %v", v)
		}
		n = uint64(v)
	case string:
		parsed, err := strconv.ParseUint(v, 0, bits)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrTypeMismatch, "invalid integer data %q", v)
		}
		n = parsed
	default:
		return 0, errors.Newf(errors.ErrTypeMismatch, "expected integer data, got %T", data)
	}

	if bits == 32 && n > 0xFFFFFFFF {
		return 0, errors.Newf(errors.ErrTypeMismatch, "value %d does not fit in 32 bits", n)
	}
	return n, nil
}

// parseHexString parses binary payload hex (with or without 0x prefix,
// tolerating space/comma/colon separators).
func parseHexString(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ":", "")

	if len(s)%2 != 0 {
		return nil, errors.New(errors.ErrCatalogParse, "hex string must have an even number of characters")
	}

	data := make([]byte, len(s)/2)
	for i := 0; i < len(data); i++ {
		val, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrCatalogParse, "invalid hex at position %d", i*2)
		}
		data[i] = byte(val)
	}
	return data, nil
}
