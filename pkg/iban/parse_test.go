package iban

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validIBAN          = "NL91ABNA0417164300"
	wrongChecksumIBAN  = "NL12ABNA0417164300"
	unknownCountryIBAN = "UU345678345543234"
)

func TestParse_AcceptsValidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Netherlands", "NL91ABNA0417164300"},
		{"Germany", "DE89370400440532013000"},
		{"United Kingdom", "GB29NWBK60161331926819"},
		{"Belgium", "BE68539007547034"},
		{"France", "FR1420041010050500013M02606"},
		{"Norway, shortest registered length", "NO9386011117947"},
		{"Malta, longest common length", "MT84MALT011000012345MTLCAST001S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)

			// Already-normalized input survives parsing byte for byte.
			assert.Equal(t, tt.input, parsed.String())
			assert.Equal(t, tt.input[:2], parsed.CountryCode())
			assert.Equal(t, tt.input[2:4], parsed.CheckDigits())
			assert.True(t, ChecksumValid(parsed.String()))
			assert.Equal(t, LengthForCountryCode(parsed.CountryCode()), len(parsed.String()))
		})
	}
}

func TestParse_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"garbage", "Shenanigans!"},
		{"leading whitespace", " " + validIBAN},
		{"trailing whitespace", validIBAN + " "},
		{"embedded pretty-print separators", "NL91 ABNA 0417 1643 00"},
		{"lowercase country code", "nl91ABNA0417164300"},
		{"lowercase body", "NL91abna0417164300"},
		{"letters in check digit positions", "NLAAABNA0417164300"},
		{"too short overall", "NL91"},
		{"too long overall", "NL91ABNA04171643000000000000000000000"},
		{"wrong length for country", "NL91ABNA041716430"},
		{"non-ASCII character", "NL91ABNA041716430é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var malformed *MalformedError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.input, malformed.Input)
		})
	}
}

func TestParse_RejectsUnknownCountryCode(t *testing.T) {
	_, err := Parse(unknownCountryIBAN)
	require.Error(t, err)

	var unknown *UnknownCountryError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, unknownCountryIBAN, unknown.Input)
}

func TestParse_RejectsChecksumFailure(t *testing.T) {
	_, err := Parse(wrongChecksumIBAN)
	require.Error(t, err)

	var checksum *ChecksumError
	require.ErrorAs(t, err, &checksum)

	// The error carries the submitted string exactly as given.
	assert.Equal(t, wrongChecksumIBAN, checksum.Input)
}

func TestParse_TaxonomyIsDisjoint(t *testing.T) {
	// Each rejection class matches exactly one error type.
	var malformed *MalformedError
	var unknown *UnknownCountryError
	var checksum *ChecksumError

	_, err := Parse("Shenanigans!")
	assert.True(t, errors.As(err, &malformed))
	assert.False(t, errors.As(err, &unknown))
	assert.False(t, errors.As(err, &checksum))

	_, err = Parse(unknownCountryIBAN)
	assert.False(t, errors.As(err, &malformed))
	assert.True(t, errors.As(err, &unknown))

	_, err = Parse(wrongChecksumIBAN)
	assert.False(t, errors.As(err, &malformed))
	assert.True(t, errors.As(err, &checksum))
}

func TestTryParse(t *testing.T) {
	t.Run("returns value for valid input", func(t *testing.T) {
		parsed, ok := TryParse(validIBAN)
		require.True(t, ok)
		assert.Equal(t, validIBAN, parsed.String())
	})

	t.Run("returns absent for empty input", func(t *testing.T) {
		parsed, ok := TryParse("")
		assert.False(t, ok)
		assert.True(t, parsed.IsZero())
	})

	t.Run("returns absent for any invalid input", func(t *testing.T) {
		for _, input := range []string{"Shenanigans!", wrongChecksumIBAN, unknownCountryIBAN} {
			parsed, ok := TryParse(input)
			assert.False(t, ok, "input %q", input)
			assert.True(t, parsed.IsZero(), "input %q", input)
		}
	})
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse(validIBAN) })
	assert.Panics(t, func() { MustParse(wrongChecksumIBAN) })
}
