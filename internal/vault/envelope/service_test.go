package envelope

import (
	"context"
	"database/sql"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
)

// low bcrypt cost keeps the tests fast
const testHashCost = 4

func setupService(t *testing.T) (*Service, string) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repos := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, repos.RunMigrations(context.Background(), db))

	accountID := uuid.NewString()
	err = repos.Accounts(db).Create(context.Background(), &models.Account{
		ID:           accountID,
		Username:     "owner",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(db, repos, logger, testHashCost), accountID
}

func TestSetRootSecret_Status(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	set, _, err := s.Status(ctx, accountID)
	require.NoError(t, err)
	assert.False(t, set)

	require.NoError(t, s.SetRootSecret(ctx, accountID, []byte("s3cret"), "first pet"))

	set, hint, err := s.Status(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, "first pet", hint)
}

func TestSetRootSecret_SecondCallRejected(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	require.NoError(t, s.SetRootSecret(ctx, accountID, []byte("s3cret"), ""))
	err := s.SetRootSecret(ctx, accountID, []byte("another"), "")
	assert.ErrorIs(t, err, common.ErrAlreadySet)
}

func TestEncryptDecryptField(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()
	secret := []byte("s3cret")

	require.NoError(t, s.SetRootSecret(ctx, accountID, secret, ""))

	ct, err := s.EncryptField(ctx, accountID, []byte("p@ssw0rd"))
	require.NoError(t, err)
	assert.NotContains(t, ct, "p@ssw0rd")

	pt, err := s.DecryptField(ctx, accountID, secret, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("p@ssw0rd"), pt)
}

func TestDecryptField_WrongSecret(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	require.NoError(t, s.SetRootSecret(ctx, accountID, []byte("s3cret"), ""))
	ct, err := s.EncryptField(ctx, accountID, []byte("data"))
	require.NoError(t, err)

	_, err = s.DecryptField(ctx, accountID, []byte("wrong"), ct)
	assert.ErrorIs(t, err, common.ErrWrongSecret)
}

func TestDecryptField_TamperedCiphertext(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()
	secret := []byte("s3cret")

	require.NoError(t, s.SetRootSecret(ctx, accountID, secret, ""))
	ct, err := s.EncryptField(ctx, accountID, []byte("data"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	raw[0] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = s.DecryptField(ctx, accountID, secret, tampered)
	assert.ErrorIs(t, err, common.ErrDecryption)
}

func TestEncryptField_Unset(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	_, err := s.EncryptField(ctx, accountID, []byte("data"))
	assert.ErrorIs(t, err, common.ErrUnset)

	_, err = s.DecryptField(ctx, accountID, []byte("s"), "whatever")
	assert.ErrorIs(t, err, common.ErrUnset)
}

func TestEncryptField_PayloadTooLarge(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	require.NoError(t, s.SetRootSecret(ctx, accountID, []byte("s3cret"), ""))

	_, err := s.EncryptField(ctx, accountID, make([]byte, cryptox.MaxPayloadSize+1))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRotateRootSecret_RecordsSurvive(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()
	oldSecret, newSecret := []byte("old-secret"), []byte("new-secret")

	require.NoError(t, s.SetRootSecret(ctx, accountID, oldSecret, "old hint"))
	ct, err := s.EncryptField(ctx, accountID, []byte("login-password"))
	require.NoError(t, err)

	before, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	require.NoError(t, err)

	require.NoError(t, s.RotateRootSecret(ctx, accountID, oldSecret, newSecret, "new hint"))

	after, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, before.PublicKey, after.PublicKey)
	assert.NotEqual(t, before.KDFSalt, after.KDFSalt)
	assert.NotEqual(t, before.WrappedPrivateKey, after.WrappedPrivateKey)
	assert.Equal(t, "new hint", after.Hint)

	// ciphertext written before rotation decrypts under the new secret
	pt, err := s.DecryptField(ctx, accountID, newSecret, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("login-password"), pt)

	_, err = s.DecryptField(ctx, accountID, oldSecret, ct)
	assert.ErrorIs(t, err, common.ErrWrongSecret)
}

func TestRotateRootSecret_WrongOldSecretLeavesEnvelopeUntouched(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	require.NoError(t, s.SetRootSecret(ctx, accountID, []byte("old-secret"), "hint"))
	before, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	require.NoError(t, err)

	err = s.RotateRootSecret(ctx, accountID, []byte("wrong"), []byte("new"), "")
	assert.ErrorIs(t, err, common.ErrWrongSecret)

	after, err := s.repos.Envelopes(s.db).Get(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRotateRootSecret_Unset(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	err := s.RotateRootSecret(ctx, accountID, []byte("a"), []byte("b"), "")
	assert.ErrorIs(t, err, common.ErrUnset)
}

func TestVerifyRootSecret(t *testing.T) {
	s, accountID := setupService(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.VerifyRootSecret(ctx, accountID, []byte("s")), common.ErrUnset)

	require.NoError(t, s.SetRootSecret(ctx, accountID, []byte("s3cret"), ""))
	assert.NoError(t, s.VerifyRootSecret(ctx, accountID, []byte("s3cret")))
	assert.ErrorIs(t, s.VerifyRootSecret(ctx, accountID, []byte("nope")), common.ErrWrongSecret)
}
