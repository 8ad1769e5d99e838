package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// KeyBits is the RSA modulus size for account keypairs.
const KeyBits = 2048

// MaxPayloadSize is the largest plaintext RSA-OAEP with SHA-256 can carry
// under a 2048-bit key: 256 - 2*32 - 2 bytes. Record secrets are short
// strings; anything larger is a caller error.
const MaxPayloadSize = KeyBits/8 - 2*sha256.Size - 2

// GenerateKeyPair creates a fresh RSA-2048 keypair. It is called once per
// account when the root secret is first set; rotation re-wraps the same key.
func GenerateKeyPair() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, KeyBits)
}

// EncryptWithPublicKey encrypts plaintext with RSA-OAEP (SHA-256).
// Payloads over MaxPayloadSize are rejected with common.ErrValidation.
func EncryptWithPublicKey(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	if len(plaintext) > MaxPayloadSize {
		return nil, fmt.Errorf("payload exceeds %d bytes: %w", MaxPayloadSize, common.ErrValidation)
	}
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
}

// DecryptWithPrivateKey reverses EncryptWithPublicKey. Padding or integrity
// failures (wrong key, tampered ciphertext) yield common.ErrDecryption.
func DecryptWithPrivateKey(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, common.ErrDecryption
	}
	return plaintext, nil
}

// EncodePublicKeyPEM renders a public key in PKIX PEM form for storage.
// The public half is not sensitive and is stored plaintext.
func EncodePublicKeyPEM(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// ParsePublicKeyPEM parses a key produced by EncodePublicKeyPEM.
func ParsePublicKeyPEM(s string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(s))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return pub, nil
}

// MarshalPrivateKey renders the private key as PKCS#8 DER. The result is
// only ever stored after symmetric wrapping.
func MarshalPrivateKey(priv *rsa.PrivateKey) ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(priv)
}

// ParsePrivateKey parses PKCS#8 DER back into an RSA private key.
func ParsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, common.ErrDecryption
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, common.ErrDecryption
	}
	return priv, nil
}
