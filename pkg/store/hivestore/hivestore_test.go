package hivestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keywarden/keywarden/pkg/codec"
	"github.com/keywarden/keywarden/pkg/errors"
	"github.com/keywarden/keywarden/pkg/settings"
)

func encode(t *testing.T, v settings.Value) codec.Value {
	t.Helper()
	wire, err := codec.Encode(v)
	require.NoError(t, err)
	return wire
}

func TestOpenMissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SOFTWARE")

	_, err := Open(path, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreUnavailable))
}

func TestCloseWithoutMutationLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SOFTWARE")

	s := &Store{path: path}
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "double close is a no-op")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "close must not create a hive file")
}

func TestRelStripsRootAndPrefix(t *testing.T) {
	plain := &Store{}
	assert.Equal(t, `SOFTWARE\Vendor`, plain.rel(`HKLM\SOFTWARE\Vendor`))
	assert.Equal(t, "", plain.rel(`HKLM`))

	mounted := &Store{opts: Options{Prefix: "SOFTWARE"}}
	assert.Equal(t, `Vendor\App`, mounted.rel(`HKLM\SOFTWARE\Vendor\App`))
	assert.Equal(t, "", mounted.rel(`HKLM\SOFTWARE`), "the mount point itself is the root")
	assert.Equal(t, `Vendor`, mounted.rel(`hklm\software\Vendor`), "prefix match is case-insensitive")
	assert.Equal(t, `SYSTEM\Setup`, mounted.rel(`HKLM\SYSTEM\Setup`), "non-matching prefix passes through")
}

func TestSection(t *testing.T) {
	assert.Equal(t, `[HKEY_LOCAL_MACHINE\SOFTWARE\Vendor]`, section(`SOFTWARE\Vendor`))
	// A bare root keeps the trailing backslash so the merge layer maps it
	// to the hive's root key instead of a key literally named after the root.
	assert.Equal(t, `[HKEY_LOCAL_MACHINE\]`, section(""))
}

func TestValueLine(t *testing.T) {
	tests := []struct {
		name  string
		vname string
		value settings.Value
		want  string
	}{
		{
			name:  "string_is_quoted",
			vname: "Greeting",
			value: settings.String("hello"),
			want:  `"Greeting"="hello"`,
		},
		{
			name:  "string_escapes_backslashes_and_quotes",
			vname: "Path",
			value: settings.String(`C:\x "y"`),
			want:  `"Path"="C:\\x \"y\""`,
		},
		{
			name:  "default_value_uses_at_sign",
			vname: "",
			value: settings.String("v"),
			want:  `@="v"`,
		},
		{
			name:  "expand_string_is_typed_hex",
			vname: "Dir",
			value: settings.ExpandString("%x%"),
			want:  `"Dir"=hex(2):25,00,78,00,25,00,00,00`,
		},
		{
			name:  "multi_string_is_typed_hex",
			vname: "Servers",
			value: settings.MultiString{"a"},
			want:  `"Servers"=hex(7):61,00,00,00,00,00`,
		},
		{
			name:  "binary_is_plain_hex",
			vname: "Blob",
			value: settings.Binary{0xDE, 0xAD},
			want:  `"Blob"=hex:de,ad`,
		},
		{
			name:  "dword_is_eight_hex_digits",
			vname: "Flag",
			value: settings.DWord(255),
			want:  `"Flag"=dword:000000ff`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := valueLine(tt.vname, encode(t, tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestValueLineRejectsQWord(t *testing.T) {
	// The .reg merge grammar has no qword form that keeps its type tag, so
	// writing one must fail loudly instead of storing a REG_BINARY lookalike.
	_, err := valueLine("Quota", encode(t, settings.QWord(42)))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedKind))
}

func TestValueLineRejectsLineBreaks(t *testing.T) {
	_, err := valueLine("Banner", encode(t, settings.String("two\nlines")))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValueWrite))
}

func TestFormatHexBytes(t *testing.T) {
	assert.Equal(t, "", formatHexBytes(nil))
	assert.Equal(t, "00", formatHexBytes([]byte{0}))
	assert.Equal(t, "de,ad,be,ef", formatHexBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
}
