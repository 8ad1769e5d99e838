// Package envelope implements the Root Key Envelope lifecycle: setting the
// root secret, rotating it, and encrypting/decrypting record fields under
// the account keypair.
//
// The scheme is envelope encryption. The root secret never encrypts data
// directly: argon2id derives a symmetric key from it, that key wraps the
// RSA private key, and the RSA keypair encrypts record fields. Rotation
// therefore re-wraps the same private key under a new derived key and
// leaves every record ciphertext untouched.
package envelope

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
)

// Service manages Root Key Envelopes. All operations are safe for
// concurrent use; writes to one account's envelope are serialized by a
// per-account lock.
type Service struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	logger   logging.Logger
	hashCost int
	locks    *accountLocks
}

func NewService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger, hashCost int) *Service {
	return &Service{
		db:       db,
		repos:    repos,
		logger:   logger.With("component", "envelope"),
		hashCost: hashCost,
		locks:    newAccountLocks(),
	}
}

// Status reports whether the account has a root secret set and, if so, the
// stored hint.
func (s *Service) Status(ctx context.Context, accountID string) (set bool, hint string, err error) {
	env, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, "", nil
		}
		return false, "", err
	}
	return true, env.Hint, nil
}

// SetRootSecret establishes the account's root secret and generates its
// keypair. It succeeds at most once per account; a second call returns
// common.ErrAlreadySet. The caller keeps ownership of secret and may wipe
// it after the call returns.
func (s *Service) SetRootSecret(ctx context.Context, accountID string, secret []byte, hint string) error {
	lk := s.locks.get(accountID)
	lk.Lock()
	defer lk.Unlock()

	repo := s.repos.Envelopes(s.db)
	if _, err := repo.Get(ctx, accountID); err == nil {
		return common.ErrAlreadySet
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	verificationHash, err := cryptox.HashSecret(secret, s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash root secret: %w", err)
	}

	salt := common.GenerateRandByteArray(cryptox.KDFSaltSize)
	key := cryptox.DeriveKey(secret, salt)
	defer common.WipeByteArray(key)

	priv, err := cryptox.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}
	pubPEM, err := cryptox.EncodePublicKeyPEM(&priv.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to encode public key: %w", err)
	}
	der, err := cryptox.MarshalPrivateKey(priv)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}
	defer common.WipeByteArray(der)

	nonce, wrapped, err := cryptox.Seal(der, key)
	if err != nil {
		return fmt.Errorf("failed to wrap private key: %w", err)
	}

	now := time.Now().UTC()
	env := &models.RootEnvelope{
		AccountID:         accountID,
		VerificationHash:  verificationHash,
		Hint:              hint,
		KDFSalt:           hex.EncodeToString(salt),
		PublicKey:         pubPEM,
		WrappedPrivateKey: cryptox.EncodeWrapped(nonce, wrapped),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := repo.Create(ctx, env); err != nil {
		return err
	}

	s.logger.Info(ctx, "root secret set", "account_id", accountID)
	return nil
}

// RotateRootSecret replaces the root secret. The old secret must verify;
// otherwise common.ErrWrongSecret is returned and the envelope is left
// byte-for-byte unchanged. On success the same private key is re-wrapped
// under a key derived from the new secret with a fresh salt and a fresh
// nonce, so record ciphertexts remain decryptable without modification.
func (s *Service) RotateRootSecret(ctx context.Context, accountID string, oldSecret, newSecret []byte, newHint string) error {
	lk := s.locks.get(accountID)
	lk.Lock()
	defer lk.Unlock()

	repo := s.repos.Envelopes(s.db)
	env, err := repo.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnset
		}
		return err
	}

	if !cryptox.VerifySecret(oldSecret, env.VerificationHash) {
		return common.ErrWrongSecret
	}

	der, err := s.unwrapPrivateKeyDER(env, oldSecret)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(der)

	newHash, err := cryptox.HashSecret(newSecret, s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash root secret: %w", err)
	}

	newSalt := common.GenerateRandByteArray(cryptox.KDFSaltSize)
	newKey := cryptox.DeriveKey(newSecret, newSalt)
	defer common.WipeByteArray(newKey)

	nonce, wrapped, err := cryptox.Seal(der, newKey)
	if err != nil {
		return fmt.Errorf("failed to wrap private key: %w", err)
	}

	env.VerificationHash = newHash
	env.Hint = newHint
	env.KDFSalt = hex.EncodeToString(newSalt)
	env.WrappedPrivateKey = cryptox.EncodeWrapped(nonce, wrapped)
	if err := repo.Update(ctx, env); err != nil {
		return err
	}

	s.logger.Info(ctx, "root secret rotated", "account_id", accountID)
	return nil
}

// VerifyRootSecret checks secret against the stored verification hash.
// It returns common.ErrUnset when no root secret exists and
// common.ErrWrongSecret on mismatch.
func (s *Service) VerifyRootSecret(ctx context.Context, accountID string, secret []byte) error {
	env, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnset
		}
		return err
	}
	if !cryptox.VerifySecret(secret, env.VerificationHash) {
		return common.ErrWrongSecret
	}
	return nil
}

// EncryptField encrypts a record field under the account public key and
// returns the base64 ciphertext. Only the public half is touched, so no
// root secret and no lock is needed; concurrent rotation cannot interfere
// because the public key never changes.
func (s *Service) EncryptField(ctx context.Context, accountID string, plaintext []byte) (string, error) {
	env, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnset
		}
		return "", err
	}
	pub, err := cryptox.ParsePublicKeyPEM(env.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse stored public key: %w", err)
	}
	ct, err := cryptox.EncryptWithPublicKey(pub, plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

// DecryptField decrypts a base64 record-field ciphertext. The secret is
// checked against the verification hash first, so the common wrong-secret
// case fails with common.ErrWrongSecret before the expensive derivation.
// Corrupted envelopes or ciphertexts yield common.ErrDecryption.
func (s *Service) DecryptField(ctx context.Context, accountID string, secret []byte, ciphertext string) ([]byte, error) {
	lk := s.locks.get(accountID)
	lk.RLock()
	defer lk.RUnlock()

	env, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnset
		}
		return nil, err
	}
	if !cryptox.VerifySecret(secret, env.VerificationHash) {
		return nil, common.ErrWrongSecret
	}

	der, err := s.unwrapPrivateKeyDER(env, secret)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(der)

	priv, err := cryptox.ParsePrivateKey(der)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("malformed ciphertext encoding: %w", common.ErrDecryption)
	}
	return cryptox.DecryptWithPrivateKey(priv, raw)
}

// unwrapPrivateKeyDER derives the symmetric key from secret and the stored
// salt and unwraps the private key DER. The secret is assumed to have
// already passed verification, so a failure here means the envelope is
// corrupted and surfaces as common.ErrDecryption.
func (s *Service) unwrapPrivateKeyDER(env *models.RootEnvelope, secret []byte) ([]byte, error) {
	salt, err := hex.DecodeString(env.KDFSalt)
	if err != nil {
		return nil, fmt.Errorf("malformed KDF salt: %w", common.ErrDecryption)
	}
	key := cryptox.DeriveKey(secret, salt)
	defer common.WipeByteArray(key)

	nonce, wrapped, err := cryptox.DecodeWrapped(env.WrappedPrivateKey)
	if err != nil {
		return nil, err
	}
	return cryptox.Open(nonce, wrapped, key)
}
