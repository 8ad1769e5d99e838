package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	plaintext := []byte("private key bytes go here")

	nonce, ciphertext, err := Seal(plaintext, key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)

	got, err := Open(nonce, ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	key := common.GenerateRandByteArray(32)

	n1, c1, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	n2, c2, err := Seal([]byte("same"), key)
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2, "nonce must be fresh per seal")
	assert.NotEqual(t, c1, c2)
}

func TestOpen_WrongKey(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	nonce, ciphertext, err := Seal([]byte("payload"), key)
	require.NoError(t, err)

	other := common.GenerateRandByteArray(32)
	_, err = Open(nonce, ciphertext, other)
	assert.ErrorIs(t, err, common.ErrDecryption)
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	nonce, ciphertext, err := Seal([]byte("payload"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff
	_, err = Open(nonce, ciphertext, key)
	assert.ErrorIs(t, err, common.ErrDecryption)
}

func TestWrappedEncoding_RoundTrip(t *testing.T) {
	nonce := common.GenerateRandByteArray(12)
	ciphertext := common.GenerateRandByteArray(64)

	s := EncodeWrapped(nonce, ciphertext)
	gotNonce, gotCiphertext, err := DecodeWrapped(s)
	require.NoError(t, err)
	assert.Equal(t, nonce, gotNonce)
	assert.Equal(t, ciphertext, gotCiphertext)
}

func TestDecodeWrapped_Malformed(t *testing.T) {
	for _, s := range []string{"", "no-separator", "!!!:abc", "YWJj:???"} {
		_, _, err := DecodeWrapped(s)
		assert.ErrorIs(t, err, common.ErrDecryption, "input %q", s)
	}
}
