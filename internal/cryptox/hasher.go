// Package cryptox wraps the cryptographic primitives the vault composes:
// bcrypt hashing for login and root-secret verification, argon2id key
// derivation, AES-GCM wrapping of the private key, and RSA-OAEP encryption
// of record fields.
package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used unless config overrides it.
const DefaultHashCost = 10

// HashSecret returns a salted, algorithm-tagged bcrypt digest of secret.
// bcrypt truncates input beyond 72 bytes; vault secrets are short strings
// well under that bound.
func HashSecret(secret []byte, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(secret, cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifySecret reports whether secret matches the bcrypt digest.
// The comparison inside bcrypt is constant-time. A malformed digest is a
// precondition violation (digests only ever come from HashSecret) and
// reports false.
func VerifySecret(secret []byte, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), secret) == nil
}
