package cryptox

import "golang.org/x/crypto/argon2"

// KDFSaltSize is the number of random bytes in a per-account KDF salt.
const KDFSaltSize = 16

// DeriveKey turns a human secret and a salt into a 256-bit symmetric key
// using argon2id (1 pass, 64 MiB, 4 lanes). The derivation is deterministic
// for a given (secret, salt) pair and intentionally expensive, so callers
// must keep it off latency-sensitive paths.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}
