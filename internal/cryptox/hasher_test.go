package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerify(t *testing.T) {
	digest, err := HashSecret([]byte("correct-secret"), bcryptTestCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2"), "digest must be algorithm-tagged")

	assert.True(t, VerifySecret([]byte("correct-secret"), digest))
	assert.False(t, VerifySecret([]byte("wrong-secret"), digest))
}

func TestHashSecret_Salted(t *testing.T) {
	d1, err := HashSecret([]byte("same"), bcryptTestCost)
	require.NoError(t, err)
	d2, err := HashSecret([]byte("same"), bcryptTestCost)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2, "digests must carry unique salts")
}

func TestVerifySecret_MalformedDigest(t *testing.T) {
	assert.False(t, VerifySecret([]byte("x"), "not-a-bcrypt-digest"))
}

// bcryptTestCost keeps hashing fast in tests.
const bcryptTestCost = 4
