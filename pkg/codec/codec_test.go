package codec

import (
	"testing"

	"github.com/joshuapare/hivekit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keywarden/keywarden/pkg/errors"
	"github.com/keywarden/keywarden/pkg/settings"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		value    settings.Value
		wantType types.RegType
		wantData []byte
	}{
		{
			name:     "string_is_utf16le_with_terminator",
			value:    settings.String("hi"),
			wantType: types.REG_SZ,
			wantData: []byte{'h', 0, 'i', 0, 0, 0},
		},
		{
			name:     "empty_string_is_bare_terminator",
			value:    settings.String(""),
			wantType: types.REG_SZ,
			wantData: []byte{0, 0},
		},
		{
			name:     "expand_string_gets_expand_tag",
			value:    settings.ExpandString(`%SystemRoot%\x`),
			wantType: types.REG_EXPAND_SZ,
			wantData: []byte{'%', 0, 'S', 0, 'y', 0, 's', 0, 't', 0, 'e', 0, 'm', 0, 'R', 0, 'o', 0, 'o', 0, 't', 0, '%', 0, '\\', 0, 'x', 0, 0, 0},
		},
		{
			name:     "binary_passes_through",
			value:    settings.Binary{0xDE, 0xAD, 0xBE, 0xEF},
			wantType: types.REG_BINARY,
			wantData: []byte{0xDE, 0xAD, 0xBE, 0xEF},
		},
		{
			name:     "dword_is_little_endian",
			value:    settings.DWord(255),
			wantType: types.REG_DWORD,
			wantData: []byte{0xFF, 0, 0, 0},
		},
		{
			name:     "qword_is_little_endian",
			value:    settings.QWord(0x0102030405060708),
			wantType: types.REG_QWORD,
			wantData: []byte{8, 7, 6, 5, 4, 3, 2, 1},
		},
		{
			name:     "multi_string_is_double_nul_terminated",
			value:    settings.MultiString{"a", "b"},
			wantType: types.REG_MULTI_SZ,
			wantData: []byte{'a', 0, 0, 0, 'b', 0, 0, 0, 0, 0},
		},
		{
			name:     "empty_multi_string_is_single_empty_element",
			value:    settings.MultiString{},
			wantType: types.REG_MULTI_SZ,
			wantData: []byte{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantData, got.Data)
		})
	}
}

func TestEncodeNilValue(t *testing.T) {
	_, err := Encode(nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
}

func TestEqual(t *testing.T) {
	a, err := Encode(settings.DWord(1))
	require.NoError(t, err)
	b, err := Encode(settings.DWord(1))
	require.NoError(t, err)
	c, err := Encode(settings.DWord(2))
	require.NoError(t, err)
	d, err := Encode(settings.QWord(1))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "different payload must not compare equal")
	assert.False(t, a.Equal(d), "different type tag must not compare equal")
}

func TestDecodeRoundTrip(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		v, err := Encode(settings.String("Straße"))
		require.NoError(t, err)
		got, err := DecodeString(v)
		require.NoError(t, err)
		assert.Equal(t, "Straße", got)
	})

	t.Run("multi_string", func(t *testing.T) {
		v, err := Encode(settings.MultiString{"one", "two", "three"})
		require.NoError(t, err)
		got, err := DecodeStrings(v)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, got)
	})

	t.Run("dword", func(t *testing.T) {
		v, err := Encode(settings.DWord(0xFFFFFFFF))
		require.NoError(t, err)
		got, err := DecodeDWord(v)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xFFFFFFFF), got)
	})

	t.Run("qword", func(t *testing.T) {
		v, err := Encode(settings.QWord(42))
		require.NoError(t, err)
		got, err := DecodeQWord(v)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), got)
	})

	t.Run("surrogate_pairs_survive", func(t *testing.T) {
		v, err := Encode(settings.String("🔑"))
		require.NoError(t, err)
		got, err := DecodeString(v)
		require.NoError(t, err)
		assert.Equal(t, "🔑", got)
	})
}

func TestDecodeTypeChecks(t *testing.T) {
	v, err := Encode(settings.DWord(1))
	require.NoError(t, err)

	_, err = DecodeString(v)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
	_, err = DecodeQWord(v)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
	_, err = DecodeStrings(v)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
}

func TestValueString(t *testing.T) {
	v, err := Encode(settings.DWord(255))
	require.NoError(t, err)
	assert.Equal(t, "REG_DWORD 255", v.String())

	v, err = Encode(settings.String("x"))
	require.NoError(t, err)
	assert.Equal(t, `REG_SZ "x"`, v.String())
}
