// Package common defines shared constants and sentinel errors used across
// passvault layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Caller-fault errors (duplicate identity, malformed input).
	ErrValidation = errors.New("validation error")

	// Login or root-secret mismatch. Always user-facing; the secret itself
	// must never appear in logs or messages.
	ErrWrongSecret = errors.New("wrong secret")

	// Illegal root-envelope state transitions.
	ErrAlreadySet = errors.New("root secret already set")
	ErrUnset      = errors.New("root secret not set")

	// Cryptographic unwrap/decrypt failure: wrong secret or corrupt data.
	// The distinction is not exposed to callers.
	ErrDecryption = errors.New("decryption failed")

	// Storage collaborator I/O failure, retryable from the caller's view.
	ErrStorage = errors.New("storage error")
)
