package api

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/config"
	"github.com/dmitrijs2005/passvault/internal/vault/envelope"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/vault/services/accounts"
	"github.com/dmitrijs2005/passvault/internal/vault/services/categories"
	"github.com/dmitrijs2005/passvault/internal/vault/services/maintenance"
	"github.com/dmitrijs2005/passvault/internal/vault/services/records"
)

const testHashCost = 4

func setupAPI(t *testing.T) *API {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = filepath.Join(dir, "vault.db")
	cfg.BackupDir = filepath.Join(dir, "backups")
	cfg.BcryptCost = testHashCost

	db, err := sql.Open("sqlite", cfg.DatabaseDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, repos.RunMigrations(context.Background(), db))

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	envSvc := envelope.NewService(db, repos, logger, cfg.BcryptCost)
	accSvc := accounts.NewService(db, repos, envSvc, logger, cfg.BcryptCost)
	catSvc := categories.NewService(db, repos, logger)
	recSvc := records.NewService(db, repos, envSvc, logger)
	mntSvc := maintenance.NewService(db, repos, cfg, logger, nil)

	return New(accSvc, envSvc, catSvc, recSvc, mntSvc, logger)
}

// registerAndUnlock creates an account with a root secret and a category,
// returning the ids most tests need.
func registerAndUnlock(t *testing.T, a *API) (accountID, categoryID string) {
	t.Helper()
	ctx := context.Background()

	reg := a.Register(ctx, &RegisterRequest{Username: "owner", Password: "login-pw", Name: "Owner"})
	require.True(t, reg.Success, reg.Message)

	set := a.SetRootSecret(ctx, &SetRootSecretRequest{
		AccountID: reg.AccountID,
		Secret:    []byte("root-secret"),
		Hint:      "the usual",
	})
	require.True(t, set.Success, set.Message)

	cat := a.CreateCategory(ctx, &CreateCategoryRequest{Code: "web", Name: "Websites"})
	require.True(t, cat.Success, cat.Message)

	return reg.AccountID, cat.Category.ID
}

func TestRegisterAndLogin(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	reg := a.Register(ctx, &RegisterRequest{Username: "owner", Password: "pw", Name: "Owner"})
	require.True(t, reg.Success)

	dup := a.Register(ctx, &RegisterRequest{Username: "owner", Password: "pw2"})
	assert.False(t, dup.Success)
	assert.Contains(t, dup.Message, "already taken")

	login := a.Login(ctx, &LoginRequest{Username: "owner", Password: "pw"})
	assert.True(t, login.Success)
	assert.Equal(t, reg.AccountID, login.AccountID)

	// wrong password and unknown username produce the same message
	bad := a.Login(ctx, &LoginRequest{Username: "owner", Password: "nope"})
	unknown := a.Login(ctx, &LoginRequest{Username: "ghost", Password: "pw"})
	assert.False(t, bad.Success)
	assert.False(t, unknown.Success)
	assert.Equal(t, bad.Message, unknown.Message)
}

func TestChangePassword(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	reg := a.Register(ctx, &RegisterRequest{Username: "owner", Password: "old-pw"})
	require.True(t, reg.Success)

	resp := a.ChangePassword(ctx, &ChangePasswordRequest{AccountID: reg.AccountID, OldPassword: "wrong", NewPassword: "new-pw"})
	assert.False(t, resp.Success)

	resp = a.ChangePassword(ctx, &ChangePasswordRequest{AccountID: reg.AccountID, OldPassword: "old-pw", NewPassword: "new-pw"})
	require.True(t, resp.Success)

	assert.True(t, a.Login(ctx, &LoginRequest{Username: "owner", Password: "new-pw"}).Success)
	assert.False(t, a.Login(ctx, &LoginRequest{Username: "owner", Password: "old-pw"}).Success)
}

func TestRootSecretLifecycle(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()
	accountID, _ := registerAndUnlock(t, a)

	status := a.RootStatus(ctx, &RootStatusRequest{AccountID: accountID})
	require.True(t, status.Success)
	assert.True(t, status.Set)
	assert.Equal(t, "the usual", status.Hint)

	again := a.SetRootSecret(ctx, &SetRootSecretRequest{AccountID: accountID, Secret: []byte("other")})
	assert.False(t, again.Success)

	rot := a.RotateRootSecret(ctx, &RotateRootSecretRequest{
		AccountID: accountID,
		OldSecret: []byte("wrong"),
		NewSecret: []byte("next"),
	})
	assert.False(t, rot.Success)

	rot = a.RotateRootSecret(ctx, &RotateRootSecretRequest{
		AccountID: accountID,
		OldSecret: []byte("root-secret"),
		NewSecret: []byte("next"),
		NewHint:   "rotated",
	})
	assert.True(t, rot.Success, rot.Message)
}

func TestRecordLifecycle(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()
	accountID, categoryID := registerAndUnlock(t, a)
	rootSecret := []byte("root-secret")

	created := a.CreateRecord(ctx, &CreateRecordRequest{
		AccountID: accountID,
		Input: RecordInput{
			CategoryID:      categoryID,
			PlatformName:    "example.com",
			PlatformAccount: "owner@example.com",
			Secret:          "p@ssw0rd",
			Extra:           "recovery code 1234",
		},
	})
	require.True(t, created.Success, created.Message)

	list := a.ListRecords(ctx, &ListRecordsRequest{AccountID: accountID})
	require.True(t, list.Success)
	require.Len(t, list.Records, 1)
	assert.Empty(t, list.Records[0].SecretCiphertext)
	assert.Equal(t, "Websites", list.Records[0].CategoryName)

	detail := a.RecordDetail(ctx, &RecordDetailRequest{
		AccountID:  accountID,
		RecordID:   created.RecordID,
		RootSecret: rootSecret,
	})
	require.True(t, detail.Success, detail.Message)
	assert.Equal(t, "p@ssw0rd", detail.Secret)
	assert.Equal(t, "recovery code 1234", detail.Extra)

	wrong := a.RecordDetail(ctx, &RecordDetailRequest{
		AccountID:  accountID,
		RecordID:   created.RecordID,
		RootSecret: []byte("nope"),
	})
	assert.False(t, wrong.Success)

	upd := a.UpdateRecord(ctx, &UpdateRecordRequest{
		AccountID:  accountID,
		RecordID:   created.RecordID,
		RootSecret: rootSecret,
		Input: RecordInput{
			CategoryID:      categoryID,
			PlatformName:    "example.com",
			PlatformAccount: "owner@example.com",
			Secret:          "changed",
		},
	})
	require.True(t, upd.Success, upd.Message)

	hist := a.RecordHistory(ctx, &RecordHistoryRequest{AccountID: accountID, RecordID: created.RecordID})
	require.True(t, hist.Success)
	require.Len(t, hist.Entries, 2)
	assert.Equal(t, models.OpUpdate, hist.Entries[0].Operation)
	assert.Equal(t, models.OpCreate, hist.Entries[1].Operation)

	// the pre-update snapshot still decrypts to the original secret
	hd := a.HistoryDetail(ctx, &HistoryDetailRequest{
		AccountID:  accountID,
		EntryID:    hist.Entries[1].ID,
		RootSecret: rootSecret,
	})
	require.True(t, hd.Success, hd.Message)
	assert.Equal(t, "p@ssw0rd", hd.Secret)

	del := a.DeleteRecord(ctx, &DeleteRecordRequest{AccountID: accountID, RecordID: created.RecordID, RootSecret: rootSecret})
	require.True(t, del.Success, del.Message)

	list = a.ListRecords(ctx, &ListRecordsRequest{AccountID: accountID})
	assert.Empty(t, list.Records)

	// history outlives the record
	hist = a.RecordHistory(ctx, &RecordHistoryRequest{AccountID: accountID, RecordID: created.RecordID})
	require.Len(t, hist.Entries, 3)
	assert.Equal(t, models.OpDelete, hist.Entries[0].Operation)
}

func TestRecordsReadableAfterRotation(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()
	accountID, categoryID := registerAndUnlock(t, a)

	created := a.CreateRecord(ctx, &CreateRecordRequest{
		AccountID: accountID,
		Input: RecordInput{
			CategoryID:      categoryID,
			PlatformName:    "bank",
			PlatformAccount: "owner",
			Secret:          "pin-0000",
		},
	})
	require.True(t, created.Success)

	rot := a.RotateRootSecret(ctx, &RotateRootSecretRequest{
		AccountID: accountID,
		OldSecret: []byte("root-secret"),
		NewSecret: []byte("new-root"),
	})
	require.True(t, rot.Success, rot.Message)

	detail := a.RecordDetail(ctx, &RecordDetailRequest{
		AccountID:  accountID,
		RecordID:   created.RecordID,
		RootSecret: []byte("new-root"),
	})
	require.True(t, detail.Success, detail.Message)
	assert.Equal(t, "pin-0000", detail.Secret)
}

func TestCategoryManagement(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()
	accountID, categoryID := registerAndUnlock(t, a)

	dup := a.CreateCategory(ctx, &CreateCategoryRequest{Code: "web", Name: "Other"})
	assert.False(t, dup.Success)

	second := a.CreateCategory(ctx, &CreateCategoryRequest{Code: "mail", Name: "Email"})
	require.True(t, second.Success)

	list := a.ListCategories(ctx, &ListCategoriesRequest{})
	require.True(t, list.Success)
	require.Len(t, list.Categories, 2)
	assert.Equal(t, "web", list.Categories[0].Code)

	reorder := a.ReorderCategories(ctx, &ReorderCategoriesRequest{IDs: []string{second.Category.ID, categoryID}})
	require.True(t, reorder.Success)

	list = a.ListCategories(ctx, &ListCategoriesRequest{})
	assert.Equal(t, "mail", list.Categories[0].Code)

	// a category in use cannot be deleted
	created := a.CreateRecord(ctx, &CreateRecordRequest{
		AccountID: accountID,
		Input: RecordInput{
			CategoryID:      categoryID,
			PlatformName:    "example.com",
			PlatformAccount: "owner",
			Secret:          "x",
		},
	})
	require.True(t, created.Success)

	del := a.DeleteCategory(ctx, &DeleteCategoryRequest{ID: categoryID})
	assert.False(t, del.Success)

	del = a.DeleteCategory(ctx, &DeleteCategoryRequest{ID: second.Category.ID})
	assert.True(t, del.Success, del.Message)
}

func TestAccountInfo(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()
	accountID, categoryID := registerAndUnlock(t, a)

	created := a.CreateRecord(ctx, &CreateRecordRequest{
		AccountID: accountID,
		Input: RecordInput{
			CategoryID:      categoryID,
			PlatformName:    "example.com",
			PlatformAccount: "owner",
			Secret:          "x",
		},
	})
	require.True(t, created.Success)

	info := a.AccountInfo(ctx, &AccountInfoRequest{AccountID: accountID})
	require.True(t, info.Success)
	assert.True(t, info.RootSecretSet)
	assert.Equal(t, 1, info.RecordCount)
	assert.Equal(t, "owner", info.Account.Username)
}

func TestDeleteAccount(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()
	accountID, _ := registerAndUnlock(t, a)

	resp := a.DeleteAccount(ctx, &DeleteAccountRequest{AccountID: accountID, Password: "wrong"})
	assert.False(t, resp.Success)

	resp = a.DeleteAccount(ctx, &DeleteAccountRequest{AccountID: accountID, Password: "login-pw"})
	require.True(t, resp.Success, resp.Message)

	login := a.Login(ctx, &LoginRequest{Username: "owner", Password: "login-pw"})
	assert.False(t, login.Success)
}

func TestGeneratePassword(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	resp := a.GeneratePassword(ctx, &GeneratePasswordRequest{Length: 16, Lowercase: true, Digits: true, Symbols: true})
	require.True(t, resp.Success)
	assert.Len(t, resp.Password, 16)
	assert.NotEmpty(t, resp.Strength)

	resp = a.GeneratePassword(ctx, &GeneratePasswordRequest{Length: 16})
	assert.False(t, resp.Success)
}

func TestBackupThroughAPI(t *testing.T) {
	a := setupAPI(t)
	ctx := context.Background()

	resp := a.Backup(ctx, &BackupRequest{Operator: "owner"})
	require.True(t, resp.Success, resp.Message)
	assert.NotEmpty(t, resp.FileName)

	list := a.ListBackups(ctx)
	require.True(t, list.Success)
	assert.Contains(t, list.FileNames, resp.FileName)

	logs := a.OperationLogs(ctx)
	require.True(t, logs.Success)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, maintenance.OpBackup, logs.Logs[0].Operation)
}
