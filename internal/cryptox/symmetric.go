package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// wrappedSeparator joins the encoded nonce and ciphertext in storage.
const wrappedSeparator = ":"

// Seal encrypts plaintext with AES-256-GCM under key. A fresh random
// 12-byte nonce is generated on every call and returned alongside the
// ciphertext; it is never derived from the inputs, so nonce reuse under
// one key cannot happen by construction.
func Seal(plaintext, key []byte) (nonce, ciphertext []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return nonce, ciphertext, nil
}

// Open decrypts a Seal result. A wrong key or a tampered blob yields
// common.ErrDecryption, never garbage plaintext.
func Open(nonce, ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrDecryption
	}
	return plaintext, nil
}

// EncodeWrapped renders a (nonce, ciphertext) pair in the stored
// "base64(nonce):base64(ciphertext)" form.
func EncodeWrapped(nonce, ciphertext []byte) string {
	return base64.StdEncoding.EncodeToString(nonce) +
		wrappedSeparator +
		base64.StdEncoding.EncodeToString(ciphertext)
}

// DecodeWrapped parses the stored wrapped-key form back into its parts.
func DecodeWrapped(s string) (nonce, ciphertext []byte, err error) {
	parts := strings.SplitN(s, wrappedSeparator, 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("malformed wrapped blob: %w", common.ErrDecryption)
	}
	nonce, err = base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("malformed nonce encoding: %w", common.ErrDecryption)
	}
	ciphertext, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("malformed ciphertext encoding: %w", common.ErrDecryption)
	}
	return nonce, ciphertext, nil
}
