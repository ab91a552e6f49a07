package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keywarden/keywarden/pkg/errors"
)

func TestParsePresence(t *testing.T) {
	p, err := ParsePresence("present")
	require.NoError(t, err)
	assert.Equal(t, Present, p)

	p, err = ParsePresence("Absent")
	require.NoError(t, err)
	assert.Equal(t, Absent, p)

	// Empty defaults to present for catalog ergonomics.
	p, err = ParsePresence("")
	require.NoError(t, err)
	assert.Equal(t, Present, p)

	_, err = ParsePresence("maybe")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"sz":           KindString,
		"REG_SZ":       KindString,
		"expand_sz":    KindExpandString,
		"binary":       KindBinary,
		"dword":        KindDWord,
		"REG_QWORD":    KindQWord,
		"multi_sz":     KindMultiString,
		"multi_string": KindMultiString,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("tzimtzum")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedKind))
}

func TestSettingValidate(t *testing.T) {
	t.Run("valid_present", func(t *testing.T) {
		s := Setting{Key: `HKLM\Software\Vendor`, Name: "Flag", Value: DWord(1)}
		assert.NoError(t, s.Validate())
	})

	t.Run("valid_absent", func(t *testing.T) {
		s := Setting{Ensure: Absent, Key: `HKLM\Software\Vendor`, Name: "Flag"}
		assert.NoError(t, s.Validate())
	})

	t.Run("empty_key_rejected", func(t *testing.T) {
		s := Setting{Name: "Flag", Value: DWord(1)}
		err := s.Validate()
		assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogInvalid))
	})

	t.Run("present_without_value_rejected", func(t *testing.T) {
		s := Setting{Key: `HKLM\Software\Vendor`, Name: "Flag"}
		err := s.Validate()
		assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogInvalid))
	})

	t.Run("absent_with_value_rejected", func(t *testing.T) {
		s := Setting{Ensure: Absent, Key: `HKLM\Software\Vendor`, Name: "Flag", Value: DWord(1)}
		err := s.Validate()
		assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogInvalid))
	})

	t.Run("unrecognized_presence_rejected", func(t *testing.T) {
		s := Setting{Ensure: Presence(7), Key: `HKLM\Software\Vendor`, Name: "Flag"}
		err := s.Validate()
		assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogInvalid))
	})
}

func TestCatalogValidateReportsEntryIndex(t *testing.T) {
	c := Catalog{
		{Key: `HKLM\Software\Vendor`, Name: "Ok", Value: String("v")},
		{Key: "", Name: "Broken", Value: String("v")},
	}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestDefaultBaseline(t *testing.T) {
	baseline := Default()
	require.NotEmpty(t, baseline)
	assert.NoError(t, baseline.Validate())

	// Every entry must target an explicit root.
	for _, s := range baseline {
		assert.Contains(t, s.Key, `HKLM\`)
	}

	// The baseline must contain both presence flavors.
	var present, absent int
	for _, s := range baseline {
		switch s.Ensure {
		case Present:
			present++
		case Absent:
			absent++
		}
	}
	assert.Greater(t, present, 0)
	assert.Greater(t, absent, 0)
}
