package models

import "time"

// RootEnvelope holds the per-account key material: a verification hash of
// the root secret, the KDF salt, the plaintext public key (PEM), and the
// private key wrapped under the derived symmetric key as
// "base64(nonce):base64(ciphertext)".
//
// Neither the derived symmetric key nor the unwrapped private key is ever
// stored; both exist only transiently in memory.
type RootEnvelope struct {
	AccountID         string
	VerificationHash  string
	Hint              string
	KDFSalt           string // hex-encoded
	PublicKey         string // PEM, PKIX
	WrappedPrivateKey string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
