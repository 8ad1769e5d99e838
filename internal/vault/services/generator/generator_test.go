package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/passvault/internal/common"
)

func TestGenerate_AllClasses(t *testing.T) {
	opts := Options{Length: 16, Lowercase: true, Uppercase: true, Digits: true, Symbols: true}
	pw, strength, err := Generate(opts)
	require.NoError(t, err)
	assert.Len(t, pw, 16)
	assert.Equal(t, StrengthStrong, strength)

	assert.True(t, strings.ContainsAny(pw, lowercase))
	assert.True(t, strings.ContainsAny(pw, uppercase))
	assert.True(t, strings.ContainsAny(pw, digits))
	assert.True(t, strings.ContainsAny(pw, symbols))
}

func TestGenerate_SingleClassOnly(t *testing.T) {
	pw, strength, err := Generate(Options{Length: 8, Digits: true})
	require.NoError(t, err)
	assert.Equal(t, StrengthWeak, strength)
	for _, r := range pw {
		assert.Contains(t, digits, string(r))
	}
}

func TestGenerate_NoClassSelected(t *testing.T) {
	_, _, err := Generate(Options{Length: 12})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGenerate_LengthBounds(t *testing.T) {
	_, _, err := Generate(Options{Length: MinLength - 1, Lowercase: true})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, _, err = Generate(Options{Length: MaxLength + 1, Lowercase: true})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGenerate_Varies(t *testing.T) {
	opts := Options{Length: 20, Lowercase: true, Uppercase: true, Digits: true}
	a, _, err := Generate(opts)
	require.NoError(t, err)
	b, _, err := Generate(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRate(t *testing.T) {
	_, s, err := Generate(Options{Length: 10, Lowercase: true, Digits: true})
	require.NoError(t, err)
	assert.Equal(t, StrengthMedium, s)
}
